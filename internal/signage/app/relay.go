package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Leopold1975/signage_control/internal/pkg/config"
	"github.com/Leopold1975/signage_control/internal/signage/relay"
	"github.com/Leopold1975/signage_control/pkg/logger"
	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"
)

// RelayApp serves the sync relay websocket endpoint.
type RelayApp struct {
	hub  *relay.Hub
	serv *http.Server
	lg   logger.Logger
	cfg  config.Relay
}

func NewRelay(cfg config.Config) (RelayApp, error) {
	lg, err := logger.New(cfg.Logger)
	if err != nil {
		return RelayApp{}, fmt.Errorf("can't get logger error: %w", err)
	}

	return newRelay(cfg.Relay, lg), nil
}

func newRelay(cfg config.Relay, lg logger.Logger) RelayApp {
	hub := relay.NewHub(cfg, lg)

	r := chi.NewRouter()
	r.Get(cfg.Path, hub.ServeWS)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"status":"ok","clients":%d}`, hub.ClientCount())
	})

	return RelayApp{
		hub: hub,
		serv: &http.Server{ //nolint:exhaustruct
			Addr:              cfg.Addr,
			Handler:           r,
			ReadHeaderTimeout: 5 * time.Second, //nolint:gomnd
			IdleTimeout:       cfg.IdleTimeout,
		},
		lg:  lg,
		cfg: cfg,
	}
}

func (ra *RelayApp) Handler() http.Handler {
	return ra.serv.Handler
}

// Run serves until ctx is done, then stops the hub and the listener.
func (ra *RelayApp) Run(ctx context.Context) error {
	ra.lg.Infof("STARTED RELAY ON %s%s", ra.cfg.Addr, ra.cfg.Path)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := ra.hub.Run(gctx); err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("hub error: %w", err)
		}

		return nil
	})

	g.Go(func() error {
		if err := ra.serv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen and serve error: %w", err)
		}

		return nil
	})

	g.Go(func() error {
		<-gctx.Done()

		ctxS, cancel := context.WithTimeout(context.Background(), time.Second*5) //nolint:gomnd
		defer cancel()

		// hijacked websocket connections are closed by the hub, not by Shutdown
		if err := ra.serv.Shutdown(ctxS); err != nil { //nolint:contextcheck
			return fmt.Errorf("shutdown relay error: %w", err)
		}

		ra.lg.Info("Shutdowned successfully")

		return nil
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("relay error: %w", err)
	}

	return nil
}
