package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	successColor = color.New(color.FgGreen, color.Bold)
	labelColor   = color.New(color.FgCyan)
)

// outputWriter returns stdout of the command or a created file.
func outputWriter(cmd *cobra.Command, path string) (io.Writer, func() error, error) {
	if path == "" {
		return cmd.OutOrStdout(), func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, f.Close, nil
}

func printDone(cmd *cobra.Command, msg string) error {
	_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", successColor.Sprint("✓"), msg)
	return err
}
