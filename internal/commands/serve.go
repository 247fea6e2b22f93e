package commands

import (
	"github.com/evanchen13/wb-sustainability/internal/di"
	"github.com/evanchen13/wb-sustainability/internal/structures"
	"github.com/spf13/cobra"
)

func newServeCmd(flags *structures.CliFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the dashboard over HTTP",
		Long: `Start the web server. The first page load fetches both indicators; the
result is cached, snapshotted to disk and refreshed in the background when
refresh.interval is set.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			conf, err := loadConfig(flags)
			if err != nil {
				return err
			}
			app, cleanup, err := di.InitApp(conf)
			if err != nil {
				return err
			}
			defer cleanup()
			return app.Run(cmd.Context())
		},
	}
}
