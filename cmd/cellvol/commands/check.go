package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mbartelt/cellvol/lib"
	"github.com/mbartelt/cellvol/lib/meshio"
)

func checkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate the configuration and mesh without exporting",
		Run: func(cmd *cobra.Command, args []string) {
			cfg := loadConfig(cmd)

			d, err := meshio.ReadFile(cfg.MeshPath)
			if err != nil { lib.ExternalErrorf("%v", err) }

			fmt.Printf("Mesh '%s': %d threads, %d cells.\n",
				cfg.MeshPath, d.Threads(), d.Cells())
			fmt.Println("No errors detected.")
		},
	}
	return cmd
}
