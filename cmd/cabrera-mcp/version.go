package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lacabrera/cabrera-mcp/internal/server"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version info",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "cabrera-mcp %s\n", server.Version)
		},
	}
}
