package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/graphscape/pkg/graph"
	"github.com/matzehuels/graphscape/pkg/server"
)

// serveCommand creates the serve command for the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		preload string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		Long: `Run the HTTP API server.

The server exposes the engine under /api: graph import and export, layout,
clustering, analytics, filtering, and render optimization. An optional
graph.json can be preloaded at startup. The server shuts down cleanly on
SIGINT/SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr, preload, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, usually :8080)")
	cmd.Flags().StringVar(&preload, "graph", "", "graph.json to load at startup")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable result caching")

	return cmd
}

// runServe builds the engine, optionally preloads a graph, and serves until
// the context is cancelled.
func (c *CLI) runServe(ctx context.Context, addr, preload string, noCache bool) error {
	eng, cfg, err := c.newEngine(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize engine: %w", err)
	}
	defer eng.Close()

	if preload != "" {
		d, err := graph.ReadFile(preload)
		if err != nil {
			return fmt.Errorf("preload graph %s: %w", preload, err)
		}
		eng.SetData(d)
		c.Logger.Info("graph preloaded", "path", preload, "nodes", len(d.Nodes), "links", len(d.Links))
	}

	if addr == "" {
		addr = cfg.Server.Addr
	}

	api := server.New(eng, server.WithLogger(c.Logger))
	srv := &http.Server{
		Addr:              addr,
		Handler:           api,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		c.Logger.Info("serving API", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		c.Logger.Info("server stopped")
		return ctx.Err()
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
