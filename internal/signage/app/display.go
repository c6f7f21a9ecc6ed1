package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Leopold1975/signage_control/internal/pkg/config"
	"github.com/Leopold1975/signage_control/internal/signage/client/contentapi"
	"github.com/Leopold1975/signage_control/internal/signage/client/reconciler"
	"github.com/Leopold1975/signage_control/internal/signage/client/relayclient"
	"github.com/Leopold1975/signage_control/internal/signage/domain/models"
	"github.com/Leopold1975/signage_control/pkg/logger"
)

// DisplayApp is a headless display: it keeps the active content in a local
// cache, patches it from the relay and logs what the screen would show.
type DisplayApp struct {
	cache *reconciler.Cache
	relay *relayclient.Client
	lg    logger.Logger
}

func NewDisplay(cfg config.Config) (DisplayApp, error) {
	lg, err := logger.New(cfg.Logger)
	if err != nil {
		return DisplayApp{}, fmt.Errorf("can't get logger error: %w", err)
	}

	api := contentapi.New(cfg.Client)
	rc := relayclient.New(cfg.Client, lg)
	cache := reconciler.NewDisplayCache(api, lg)

	da := DisplayApp{
		cache: cache,
		relay: rc,
		lg:    lg,
	}

	cache.OnChange(da.render)
	rc.OnConnect(func() { lg.Info("display live") })
	rc.OnDisconnect(func() { lg.Warnf("display offline, showing cached content") })

	return da, nil
}

func (da *DisplayApp) Run(ctx context.Context) error {
	detach := da.cache.Attach(da.relay)
	defer detach()

	if err := da.cache.Load(ctx); err != nil {
		return fmt.Errorf("initial load error: %w", err)
	}

	err := da.relay.Run(ctx)

	switch {
	case err == nil, errors.Is(err, context.Canceled):
		return nil
	case errors.Is(err, relayclient.ErrReconnectFailed):
		// content stays on screen, only live updates stop
		da.lg.Errorf("live updates stopped: %s", err.Error())
		<-ctx.Done()

		return nil
	default:
		return fmt.Errorf("relay error: %w", err)
	}
}

func (da *DisplayApp) render(c models.Collection) {
	if da.cache.Loading() {
		return
	}

	var titles []string

	switch c {
	case models.CollectionSlides:
		for _, s := range da.cache.Slides() {
			if s.IsActive {
				titles = append(titles, s.Title)
			}
		}
	case models.CollectionRates:
		for _, r := range da.cache.Rates() {
			if r.IsActive {
				titles = append(titles, r.Type+" "+r.Rate)
			}
		}
	case models.CollectionNews:
		for _, n := range da.cache.News() {
			if n.IsActive {
				titles = append(titles, n.Title)
			}
		}
	case models.CollectionExchangeRates:
		for _, e := range da.cache.ExchangeRates() {
			if e.IsActive {
				titles = append(titles, fmt.Sprintf("%s %.2f/%.2f", e.Code, e.Buy, e.Sell))
			}
		}
	}

	da.lg.Infof("%s (%d): %s", c, len(titles), strings.Join(titles, " | "))
}
