// Package commands holds the wbdash command line.
package commands

import (
	"github.com/evanchen13/wb-sustainability/internal/providers"
	"github.com/evanchen13/wb-sustainability/internal/structures"
	"github.com/spf13/cobra"
)

// Linker flags set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const defaultConfigPath = "configs/config.yaml"

// NewRootCmd builds the command tree with the persistent --config and
// --debug flags.
func NewRootCmd() *cobra.Command {
	flags := &structures.CliFlags{}

	root := &cobra.Command{
		Use:   "wbdash",
		Short: "World Bank sustainability dashboard",
		Long: `wbdash fetches renewable energy consumption and CO2 emissions per capita
from the World Bank indicator API, joins them on country and year and serves
the resulting charts as a web dashboard.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVarP(&flags.ConfigPath, "config", "c", defaultConfigPath, "path to the YAML config file")
	root.PersistentFlags().BoolVarP(&flags.DebugMode, "debug", "d", false, "also log to the console")

	root.AddCommand(
		newServeCmd(flags),
		newExportCmd(flags),
		newMigrateCmd(flags),
		newMCPCmd(flags),
		newVersionCmd(),
	)
	return root
}

func loadConfig(flags *structures.CliFlags) (*structures.Config, error) {
	return providers.NewConfigProvider(flags)
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}
