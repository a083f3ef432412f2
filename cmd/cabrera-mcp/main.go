// cabrera-mcp is the MCP server behind the La Cabrera reservation assistant.
//
// Usage:
//
//	cabrera-mcp serve                    # stdio transport
//	cabrera-mcp serve --transport http   # streamable HTTP on SERVER_HOST:SERVER_PORT
//	cabrera-mcp check-menu --menu manso --date 2025-01-13 --time 21:00
//	cabrera-mcp version
//
// Configuration is read from the environment and an optional .env file.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
