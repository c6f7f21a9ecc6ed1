package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Leopold1975/signage_control/internal/pkg/config"
	"github.com/Leopold1975/signage_control/internal/signage/client/contentapi"
	"github.com/Leopold1975/signage_control/internal/signage/client/reconciler"
	"github.com/Leopold1975/signage_control/internal/signage/client/relayclient"
	"github.com/Leopold1975/signage_control/internal/signage/domain/models"
	"github.com/Leopold1975/signage_control/pkg/logger"
	"github.com/goccy/go-json"
)

var ErrUnknownOp = errors.New("unknown console operation")

// ConsoleOp is one admin write issued from the command line.
type ConsoleOp struct {
	Name       string
	Collection models.Collection
	ID         string
	Body       string
}

// RunConsole logs in, joins the relay, performs op and leaves. When the relay
// cannot be reached in time the write still happens and the event is dropped.
func RunConsole(ctx context.Context, cfg config.Config, op ConsoleOp) error {
	lg, err := logger.New(cfg.Logger)
	if err != nil {
		return fmt.Errorf("can't get logger error: %w", err)
	}

	api := contentapi.New(cfg.Client)

	if cfg.Client.Token == "" {
		token, err := api.Login(ctx, cfg.Auth.AdminUsername, cfg.Auth.AdminPassword)
		if err != nil {
			return fmt.Errorf("login error: %w", err)
		}

		api = api.WithToken(token)
	}

	rc := relayclient.New(cfg.Client, lg)

	ctxR, cancel := context.WithCancel(ctx)
	defer cancel()

	go rc.Run(ctxR) //nolint:errcheck

	defer rc.Close()

	waitConnected(ctx, rc, cfg.Client.Timeout)

	cache := reconciler.NewAdminCache(api, lg)
	con := reconciler.NewConsole(api, cache, rc, lg)

	if err := cache.Load(ctx); err != nil {
		return fmt.Errorf("load error: %w", err)
	}

	switch op.Collection {
	case models.CollectionSlides:
		return runOp[models.Slide](ctx, con, op, lg)
	case models.CollectionRates:
		return runOp[models.InterestRate](ctx, con, op, lg)
	case models.CollectionNews:
		return runOp[models.NewsItem](ctx, con, op, lg)
	case models.CollectionExchangeRates:
		return runOp[models.ExchangeRate](ctx, con, op, lg)
	}

	return fmt.Errorf("%w: %q", models.ErrUnknownCollection, op.Collection)
}

func runOp[T any, PT models.Record[T]](ctx context.Context, con *reconciler.Console, op ConsoleOp,
	lg logger.Logger,
) error {
	var body map[string]interface{}

	if op.Body != "" {
		if err := json.Unmarshal([]byte(op.Body), &body); err != nil {
			return fmt.Errorf("decode body error: %w", err)
		}
	}

	var (
		rec T
		err error
	)

	switch op.Name {
	case "create":
		rec, err = reconciler.Create[T](ctx, con, body)
	case "update":
		rec, err = reconciler.Update[T](ctx, con, op.ID, body)
	case "toggle":
		rec, err = reconciler.Toggle[T, PT](ctx, con, op.ID)
	case "delete":
		if err := reconciler.Delete[T](ctx, con, op.ID); err != nil {
			return err //nolint:wrapcheck
		}

		lg.Infof("%s %s deleted", op.Collection, op.ID)

		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownOp, op.Name)
	}

	if err != nil {
		return err //nolint:wrapcheck
	}

	lg.Infof("%s %s done: %s", op.Collection, op.Name, PT(&rec).RecordID())

	return nil
}

func waitConnected(ctx context.Context, rc *relayclient.Client, timeout time.Duration) {
	t := time.NewTicker(20 * time.Millisecond) //nolint:gomnd
	defer t.Stop()

	deadline := time.After(timeout)

	for !rc.Connected() {
		select {
		case <-ctx.Done():
			return
		case <-deadline:
			return
		case <-t.C:
		}
	}
}
