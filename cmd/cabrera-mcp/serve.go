package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/lacabrera/cabrera-mcp/internal/config"
	"github.com/lacabrera/cabrera-mcp/internal/logging"
	"github.com/lacabrera/cabrera-mcp/internal/server"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd() *cobra.Command {
	var (
		transport string
		addr      string
		envFile   string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadFrom(envFile)
			if err != nil {
				return err
			}
			if transport != "" {
				cfg.Transport = transport
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			if addr == "" {
				addr = cfg.Addr()
			}

			// stdout belongs to the stdio transport.
			log := logging.New(cfg.LogLevel, os.Stderr)

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			s, cleanup, err := server.New(ctx, cfg, log)
			if err != nil {
				return fmt.Errorf("creating server: %w", err)
			}
			defer cleanup()

			if cfg.Transport == config.TransportHTTP {
				return serveHTTP(ctx, s, addr, log)
			}
			log.Info().Str("version", server.Version).Msg("serving on stdio")
			return mcpserver.ServeStdio(s)
		},
	}

	cmd.Flags().StringVar(&transport, "transport", "", "transport to use: stdio or http (overrides TRANSPORT)")
	cmd.Flags().StringVar(&addr, "addr", "", "listen address for the http transport (default SERVER_HOST:SERVER_PORT)")
	cmd.Flags().StringVar(&envFile, "env-file", ".env", "optional env file to read before the environment")
	return cmd
}

func serveHTTP(ctx context.Context, s *mcpserver.MCPServer, addr string, log zerolog.Logger) error {
	httpServer := mcpserver.NewStreamableHTTPServer(s)

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Str("version", server.Version).Msg("serving streamable http")
		errCh <- httpServer.Start(addr)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
