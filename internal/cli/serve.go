package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/maflot/diceplot/internal/server"
	"github.com/maflot/diceplot/pkg/cache"
	"github.com/maflot/diceplot/pkg/pipeline"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr          string
	cacheDir      string
	redisAddr     string
	redisPassword string
	redisDB       int
	figureTTL     time.Duration
}

// serveCommand creates the serve command for running the HTTP figure service.
func (c *CLI) serveCommand() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP figure rendering service",
		Long: `Run the HTTP figure rendering service.

The service accepts datasets over POST /api/render and serves rendered
figures from GET /figures/{id}.{format}. Figures are cached on disk by
default; pass --redis to share the cache across instances.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), &opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&opts.cacheDir, "cache-dir", "", "figure cache directory (default ~/.cache/diceplot)")
	cmd.Flags().StringVar(&opts.redisAddr, "redis", "", "Redis address (host:port); overrides the file cache")
	cmd.Flags().StringVar(&opts.redisPassword, "redis-password", "", "Redis password")
	cmd.Flags().IntVar(&opts.redisDB, "redis-db", 0, "Redis database number")
	cmd.Flags().DurationVar(&opts.figureTTL, "figure-ttl", server.DefaultFigureTTL, "how long rendered figures stay fetchable")

	return cmd
}

// newServeCache builds the cache backend for the server.
func newServeCache(ctx context.Context, opts *serveOpts) (cache.Cache, error) {
	if opts.redisAddr != "" {
		return cache.NewRedisCache(ctx, opts.redisAddr, opts.redisPassword, opts.redisDB)
	}
	dir := opts.cacheDir
	if dir == "" {
		var err error
		dir, err = cacheDir()
		if err != nil {
			return nil, err
		}
	}
	return cache.NewFileCache(dir)
}

func (c *CLI) runServe(ctx context.Context, opts *serveOpts) error {
	logger := loggerFromContext(ctx)

	store, err := newServeCache(ctx, opts)
	if err != nil {
		return err
	}
	defer store.Close()

	runner := pipeline.NewRunner(store, nil, logger)
	srv := server.New(runner, store, logger, server.WithFigureTTL(opts.figureTTL))

	httpSrv := &http.Server{
		Addr:              opts.addr,
		Handler:           srv.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", opts.addr)
		errCh <- httpSrv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpSrv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
