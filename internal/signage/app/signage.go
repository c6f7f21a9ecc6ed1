package app

import (
	"context"
	"fmt"
	"time"

	"github.com/Leopold1975/signage_control/internal/pkg/config"
	"github.com/Leopold1975/signage_control/internal/signage/api/server"
	um "github.com/Leopold1975/signage_control/internal/signage/repository/userrepo/memory"
	ur "github.com/Leopold1975/signage_control/internal/signage/repository/userrepo/postgres"
	"github.com/Leopold1975/signage_control/internal/signage/services/authservice"
	"github.com/Leopold1975/signage_control/pkg/logger"
)

type Server interface {
	Start(context.Context) error
	Shutdown(context.Context) error
}

// SignageApp serves the Content API.
type SignageApp struct {
	s       Server
	content Content
	st      storage
	lg      logger.Logger
	cfg     config.Config
}

func NewSignage(ctx context.Context, cfg config.Config) (SignageApp, error) {
	lg, err := logger.New(cfg.Logger)
	if err != nil {
		return SignageApp{}, fmt.Errorf("can't get logger error: %w", err)
	}

	content, st, err := newContent(ctx, cfg, lg)
	if err != nil {
		return SignageApp{}, err
	}

	if cfg.PostgresDB.Seed {
		if err := content.Seed(ctx); err != nil {
			st.close() //nolint:errcheck

			return SignageApp{}, fmt.Errorf("seed error: %w", err)
		}
	}

	if st.rdb != nil {
		content.BackgroundRefresh(ctx, cfg.RedisCache.ExpTime)
	}

	var authService *authservice.AuthService
	if st.db != nil {
		authService = authservice.New(ur.New(st.db), cfg.Auth)
	} else {
		authService = authservice.New(um.New(), cfg.Auth)
	}

	if cfg.Auth.AdminUsername != "" {
		if err := authService.EnsureAdmin(ctx, cfg.Auth.AdminUsername, cfg.Auth.AdminPassword); err != nil {
			st.close() //nolint:errcheck

			return SignageApp{}, fmt.Errorf("bootstrap admin error: %w", err)
		}
	}

	s := server.New(cfg, content.APIs(), authService, lg)

	return SignageApp{
		s:       s,
		content: content,
		st:      st,
		lg:      lg,
		cfg:     cfg,
	}, nil
}

func (sa *SignageApp) Run(ctx context.Context) {
	sa.lg.Infof("STARTED SERVER ON %s", sa.cfg.Server.Addr)

	go func() {
		if err := sa.s.Start(ctx); err != nil {
			sa.lg.Errorf("server start error: %s", err.Error())

			return
		}
	}()

	<-ctx.Done()

	ctxS, cancel := context.WithTimeout(context.Background(), time.Second*5) //nolint:gomnd
	defer cancel()

	if err := sa.Stop(ctxS); err != nil { //nolint:contextcheck
		sa.lg.Errorf("shutdown error: %s", err.Error())
	}
}

func (sa *SignageApp) Stop(ctx context.Context) error {
	if err := sa.s.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	if sa.st.db != nil {
		if err := sa.content.Shutdown(ctx); err != nil {
			return fmt.Errorf("content shutdown error: %w", err)
		}
	}

	if err := sa.st.close(); err != nil {
		return err
	}

	sa.lg.Info("Shutdowned successfully")

	return nil
}
