package commands

import (
	"github.com/spf13/cobra"

	"github.com/mbartelt/cellvol/lib"
	"github.com/mbartelt/cellvol/lib/config"
)

var (
	configPath string
	meshPath   string
	outPath    string
	truncate   bool
)

// Execute builds the command tree and runs it.
func Execute() error {
	root := &cobra.Command{
		Use:   "cellvol",
		Short: "Export per-cell volumes from a mesh to a text file",
	}

	root.PersistentFlags().StringVarP(&configPath, "config", "c", "",
		"config file (gcfg format)")
	root.PersistentFlags().StringVar(&meshPath, "mesh", "",
		"mesh volume listing to read (overrides the config file)")
	root.PersistentFlags().StringVar(&outPath, "out", "",
		"output file to write volumes to (overrides the config file)")
	root.PersistentFlags().BoolVar(&truncate, "truncate", false,
		"truncate the output file instead of appending")

	root.AddCommand(exportCmd(), checkCmd(), versionCmd())
	return root.Execute()
}

// loadConfig merges the config file (if any) with command-line flags and
// validates the result. Any failure here is the user's to fix, so it exits
// through lib.ExternalErrorf.
func loadConfig(cmd *cobra.Command) *config.Config {
	raw := &config.Raw{}
	if configPath != "" {
		var err error
		raw, err = config.ParseFile(configPath)
		if err != nil { lib.ExternalErrorf("%v", err) }
	}

	truncateSet := cmd.Root().PersistentFlags().Changed("truncate")
	raw.Overwrite(meshPath, outPath, truncate, truncateSet)

	cfg, err := raw.Process()
	if err != nil { lib.ExternalErrorf("%v", err) }
	return cfg
}
