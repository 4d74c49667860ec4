package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bhandras/clawdeck/internal/version"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the clawdeck version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "clawdeck version %s\n", version.RichVersion())
		},
	}
}
