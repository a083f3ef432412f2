package main

import (
	"github.com/spf13/cobra"
)

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "cabrera-mcp",
		Short:         "Reservation and menu-rule MCP server for La Cabrera",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newServeCmd())
	root.AddCommand(newCheckMenuCmd())
	root.AddCommand(newVersionCmd())

	return root
}
