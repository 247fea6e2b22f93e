package commands

import (
	"github.com/evanchen13/wb-sustainability/internal/di"
	"github.com/evanchen13/wb-sustainability/internal/mcpserver"
	"github.com/evanchen13/wb-sustainability/internal/structures"
	"github.com/spf13/cobra"
)

func newMCPCmd(flags *structures.CliFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Start the dashboard MCP server",
		Long:  `Launch an MCP server over stdio that lets AI agents query the dashboard figures and the joined indicator table.`,
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			conf, err := loadConfig(flags)
			if err != nil {
				return err
			}
			s, cleanup, err := di.InitMCPServer(conf)
			if err != nil {
				return err
			}
			defer cleanup()
			return mcpserver.Serve(s)
		},
	}
}
