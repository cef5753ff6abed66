package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is the version of the software. Bump on breaking changes to the
// listing or output formats.
const Version = "1.0.0"

func versionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the cellvol version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("cellvol", Version)
		},
	}
	return cmd
}
