package commands

import (
	"fmt"

	"github.com/evanchen13/wb-sustainability/internal/store"
	"github.com/evanchen13/wb-sustainability/internal/structures"
	"github.com/spf13/cobra"
)

func newMigrateCmd(flags *structures.CliFlags) *cobra.Command {
	var target int

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Migrate the observation archive schema",
		Long: `Apply the embedded schema migrations to the configured store backend.

By default the schema is migrated to the latest version. Use --target 0 to
roll back every migration or a positive number to move to that version.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			conf, err := loadConfig(flags)
			if err != nil {
				return err
			}
			res, err := store.Migrate(conf.Store.Backend, conf.Store.DSN, target)
			if err != nil {
				return err
			}

			if !res.Changed {
				return printDone(cmd, fmt.Sprintf("%s schema already at version %d", conf.Store.Backend, res.To))
			}
			return printDone(cmd, fmt.Sprintf("%s schema migrated %s %d -> %d",
				conf.Store.Backend, labelColor.Sprint("from"), res.From, res.To))
		},
	}
	cmd.Flags().IntVar(&target, "target", -1, "schema version to migrate to (-1 latest, 0 roll back all)")
	return cmd
}
