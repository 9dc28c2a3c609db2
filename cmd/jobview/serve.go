package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"jobview-engine/internal/config"
	"jobview-engine/internal/httpapi"
	"jobview-engine/internal/scheduler"
	"jobview-engine/internal/secrets"
	"jobview-engine/internal/snapshot"
)

func newServeCmd(root *rootOptions) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the listing page and the JSON API",
		Long:  "Loads the listings once and serves the filter page, the listings, the chart data and the PDF report over HTTP until interrupted.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := root.setup(cmd)
			if err != nil {
				return err
			}
			snap, err := e.openSnapshot()
			if err != nil {
				return err
			}
			if addr == "" {
				addr = net.JoinHostPort(e.cfg.App.Host, strconv.Itoa(e.cfg.App.Port))
			}
			return serve(cmd.Context(), e, snap, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default app.host:app.port)")
	return cmd
}

func serve(parent context.Context, e *env, snap *snapshot.Store, addr string) error {
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load config and keep it reloadable
	var cfgVal atomic.Value // stores config.Config
	cfgVal.Store(e.cfg)

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}

	deps := httpapi.Deps{
		Snapshot:    snap,
		CfgVal:      &cfgVal,
		UserCfgPath: e.cfgPath,
		LoadCfg:     func() (config.Config, error) { return config.Load(e.cfgPath) },
		Logger:      e.logger,
		AdminToken:  secrets.GetAdminToken,
		// stop ends the errgroup below, which shuts the server down
		Shutdown: func(context.Context) error {
			stop()
			return nil
		},
	}
	if _, err := secrets.GetAdminToken(); err != nil {
		e.logger.Warn().Err(err).Msg("admin endpoints disabled")
	}

	srv := &http.Server{
		Handler:           httpapi.Handler(deps),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		e.logger.Info().
			Str("addr", "http://"+ln.Addr().String()).
			Str("data", snap.Path()).
			Int("records", snap.Current().Len()).
			Msg("jobview listening")
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if secs := e.cfg.App.ReloadSeconds; secs > 0 {
		g.Go(func() error {
			scheduler.Every(gctx, time.Duration(secs)*time.Second, "reload-listings", func(ctx context.Context) error {
				changed, err := snap.ReloadIfChanged(ctx)
				if changed {
					e.logger.Info().Int("records", snap.Current().Len()).Msg("listings reloaded")
				}
				return err
			}, e.logger)
			return nil
		})
	}

	err = g.Wait()
	e.logger.Info().Msg("jobview stopped")
	return err
}
