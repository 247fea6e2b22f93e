package commands

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			_, err := fmt.Fprintf(out, "%s %s\n%s %s\n%s %s\n%s %s\n",
				labelColor.Sprint("version:"), version,
				labelColor.Sprint("commit: "), commit,
				labelColor.Sprint("built:  "), date,
				labelColor.Sprint("go:     "), runtime.Version())
			return err
		},
	}
}
