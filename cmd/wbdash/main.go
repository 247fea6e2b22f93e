package main

import (
	"fmt"
	"os"

	"github.com/evanchen13/wb-sustainability/internal/commands"
	"github.com/fatih/color"
)

func main() {
	if err := commands.Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, color.New(color.FgRed, color.Bold).Sprint("Error:"), err)
		os.Exit(1)
	}
}
