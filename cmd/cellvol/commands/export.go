package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mbartelt/cellvol/lib"
	"github.com/mbartelt/cellvol/lib/export"
	"github.com/mbartelt/cellvol/lib/meshio"
)

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write one volume per cell to the output file",
		Run: func(cmd *cobra.Command, args []string) {
			cfg := loadConfig(cmd)

			d, err := meshio.ReadFile(cfg.MeshPath)
			if err != nil { lib.ExternalErrorf("%v", err) }

			res, err := export.ExportFile(d, cfg.OutPath, cfg.Truncate)
			if errors.Is(err, export.ErrSinkUnavailable) {
				lib.ExternalErrorf("%v", err)
			} else if err != nil {
				// A domain built by meshio can't be invalid, so anything
				// else here means a bug.
				lib.InternalErrorf("%v", err)
			}

			fmt.Printf("Wrote %d cell volumes to '%s'.\n", res.Cells, cfg.OutPath)
			fmt.Printf("Total volume: %g\n", res.Total)
		},
	}
	return cmd
}
