package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/boxflow/pkg/observability"
	"github.com/matzehuels/boxflow/pkg/storage"
)

const (
	shutdownTimeout = 30 * time.Second
	requestTimeout  = 2 * time.Minute
	cleanupInterval = 10 * time.Minute

	// apiCacheScope keeps server entries apart from CLI entries in a
	// shared cache.
	apiCacheScope = "api:v1:"
)

// serveCommand runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr     string
		store    string
		storeDir string
		mongoURI string
		noCache  bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the layout pipeline over HTTP",
		Long: `Serve the layout pipeline over HTTP.

Routes:
  GET    /healthz
  POST   /api/v1/layout           lay out a document, store and return the snapshot
  GET    /api/v1/layouts          list stored layouts
  GET    /api/v1/layouts/{id}     fetch a stored snapshot
  DELETE /api/v1/layouts/{id}     delete a stored snapshot
  POST   /api/v1/render?format=   render a document (svg, png, pdf, json, dot, tree)

Documents are posted as JSON, or as TOML with Content-Type application/toml.
Query parameters width, height, rem, measurer, style, scale, detailed,
scrollbars and refresh override the configured defaults.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := c.Config.Server
			fl := cmd.Flags()
			if fl.Changed("addr") {
				cfg.Addr = addr
			}
			if fl.Changed("store") {
				cfg.Store = store
			}
			if fl.Changed("store-dir") {
				cfg.StoreDir = storeDir
			}
			if fl.Changed("mongo-uri") {
				cfg.MongoURI = mongoURI
			}
			return c.runServe(cmd.Context(), cfg, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default 127.0.0.1:8080)")
	cmd.Flags().StringVar(&store, "store", "", "layout store: file (default), memory, mongo")
	cmd.Flags().StringVar(&storeDir, "store-dir", "", "directory of the file store")
	cmd.Flags().StringVar(&mongoURI, "mongo-uri", "", "MongoDB connection string for the mongo store")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, cfg ServerConfig, noCache bool) error {
	store, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	runner, err := c.newRunner(ctx, noCache, apiCacheScope)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	observability.NewLogHooks(c.Logger).Install()
	defer observability.Reset()

	srv := &server{
		runner:   runner,
		store:    store,
		logger:   c.Logger,
		defaults: c.Config.Options(),
		ttl:      cfg.StoreTTL.Duration,
		maxBody:  cfg.MaxBodyBytes,
		timeout:  requestTimeout,
	}

	ln, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", cfg.Addr, err)
	}

	httpServer := &http.Server{
		Handler:           srv.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go c.cleanupLoop(ctx, store)

	errc := make(chan error, 1)
	go func() { errc <- httpServer.Serve(ln) }()

	printSuccess("Serving on http://%s", ln.Addr())
	printKeyValue("store", cfg.Store)
	printKeyValue("cache", c.Config.Cache.Backend)

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	c.Logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return ctx.Err()
}

// openStore opens the layout store named by cfg.Store.
func openStore(ctx context.Context, cfg ServerConfig) (storage.Store, error) {
	switch cfg.Store {
	case storeMemory:
		return storage.NewMemoryStore(), nil
	case storeMongo:
		s, err := storage.NewMongoStore(ctx, storage.MongoOptions{
			URI:        cfg.MongoURI,
			Database:   cfg.MongoDatabase,
			Collection: cfg.MongoCollection,
		})
		if err != nil {
			return nil, fmt.Errorf("open mongo store: %w", err)
		}
		return s, nil
	case storeFile, "":
		s, err := storage.NewFileStore(cfg.StoreDir)
		if err != nil {
			return nil, fmt.Errorf("open file store: %w", err)
		}
		return s, nil
	}
	return nil, fmt.Errorf("unknown store %q (want file, memory or mongo)", cfg.Store)
}

// cleanupLoop removes expired layouts until ctx is done.
func (c *CLI) cleanupLoop(ctx context.Context, store storage.Store) {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := store.Cleanup(ctx); err != nil {
				c.Logger.Warn("layout cleanup failed", "error", err)
			}
		}
	}
}
