package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Leopold1975/signage_control/internal/pkg/config"
	"github.com/Leopold1975/signage_control/internal/signage/domain/models"
	"github.com/Leopold1975/signage_control/internal/signage/repository/contentcache"
	"github.com/Leopold1975/signage_control/internal/signage/repository/contentcache/redis"
	"github.com/Leopold1975/signage_control/internal/signage/repository/contentrepo/memory"
	cr "github.com/Leopold1975/signage_control/internal/signage/repository/contentrepo/postgres"
	"github.com/Leopold1975/signage_control/internal/signage/services/contentservice"
	"github.com/Leopold1975/signage_control/pkg/logger"
	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"
)

const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

var ErrUnknownDriver = errors.New("unknown storage driver")

// Content bundles the services of the four collections.
type Content struct {
	Slides        *contentservice.ContentService[models.Slide]
	Rates         *contentservice.ContentService[models.InterestRate]
	News          *contentservice.ContentService[models.NewsItem]
	ExchangeRates *contentservice.ContentService[models.ExchangeRate]
}

// NewMemoryContent keeps everything in process and caches nothing.
func NewMemoryContent(lg logger.Logger) Content {
	return Content{
		Slides: contentservice.New[models.Slide](models.CollectionSlides,
			memory.New[models.Slide](memory.SlidesByOrder), contentcache.Nop[models.Slide]{},
			models.NewSlide, lg),
		Rates: contentservice.New[models.InterestRate](models.CollectionRates,
			memory.New[models.InterestRate](nil), contentcache.Nop[models.InterestRate]{},
			models.NewInterestRate, lg),
		News: contentservice.New[models.NewsItem](models.CollectionNews,
			memory.New[models.NewsItem](memory.NewsNewestFirst), contentcache.Nop[models.NewsItem]{},
			models.NewNewsItem, lg),
		ExchangeRates: contentservice.New[models.ExchangeRate](models.CollectionExchangeRates,
			memory.New[models.ExchangeRate](nil), contentcache.Nop[models.ExchangeRate]{},
			models.NewExchangeRate, lg),
	}
}

// newPostgresContent stores in db and, when rdb is set, caches active lists in
// redis.
func newPostgresContent(db *pgxpool.Pool, rdb *goredis.Client, exp time.Duration, lg logger.Logger) Content {
	return Content{
		Slides: contentservice.New[models.Slide](models.CollectionSlides,
			cr.New(db, cr.SlidesTable), cacheFor[models.Slide](rdb, models.CollectionSlides, exp),
			models.NewSlide, lg),
		Rates: contentservice.New[models.InterestRate](models.CollectionRates,
			cr.New(db, cr.RatesTable), cacheFor[models.InterestRate](rdb, models.CollectionRates, exp),
			models.NewInterestRate, lg),
		News: contentservice.New[models.NewsItem](models.CollectionNews,
			cr.New(db, cr.NewsTable), cacheFor[models.NewsItem](rdb, models.CollectionNews, exp),
			models.NewNewsItem, lg),
		ExchangeRates: contentservice.New[models.ExchangeRate](models.CollectionExchangeRates,
			cr.New(db, cr.ExchangeRatesTable), cacheFor[models.ExchangeRate](rdb, models.CollectionExchangeRates, exp),
			models.NewExchangeRate, lg),
	}
}

func cacheFor[T any](rdb *goredis.Client, c models.Collection, exp time.Duration) contentservice.Cache[T] {
	if rdb == nil {
		return contentcache.Nop[T]{}
	}

	return redis.New[T](rdb, c, exp)
}

// storage holds the connections behind the postgres driver. Both are nil for
// the memory driver; rdb is nil when the cache is disabled.
type storage struct {
	db  *pgxpool.Pool
	rdb *goredis.Client
}

func (st storage) close() error {
	if st.db != nil {
		st.db.Close()
	}

	if st.rdb != nil {
		if err := st.rdb.Close(); err != nil {
			return fmt.Errorf("close redis error: %w", err)
		}
	}

	return nil
}

func newContent(ctx context.Context, cfg config.Config, lg logger.Logger) (Content, storage, error) {
	switch cfg.PostgresDB.Driver {
	case DriverMemory:
		return NewMemoryContent(lg), storage{}, nil
	case DriverPostgres:
	default:
		return Content{}, storage{}, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.PostgresDB.Driver)
	}

	db, err := cr.Connect(ctx, cfg.PostgresDB)
	if err != nil {
		return Content{}, storage{}, fmt.Errorf("postgres content repo initializing error: %w", err)
	}

	st := storage{db: db, rdb: nil}

	if cfg.RedisCache.Addr != "" {
		st.rdb, err = redis.Connect(ctx, cfg.RedisCache)
		if err != nil {
			db.Close()

			return Content{}, storage{}, fmt.Errorf("redis content cache initializing error: %w", err)
		}
	}

	return newPostgresContent(st.db, st.rdb, cfg.RedisCache.ExpTime, lg), st, nil
}

func (c Content) APIs() map[models.Collection]contentservice.API {
	return map[models.Collection]contentservice.API{
		models.CollectionSlides:        c.Slides.API(),
		models.CollectionRates:         c.Rates.API(),
		models.CollectionNews:          c.News.API(),
		models.CollectionExchangeRates: c.ExchangeRates.API(),
	}
}

// Seed fills every empty collection with the default branch content.
func (c Content) Seed(ctx context.Context) error {
	if err := c.Slides.Seed(ctx, contentservice.DefaultSlides()); err != nil {
		return err //nolint:wrapcheck
	}

	if err := c.Rates.Seed(ctx, contentservice.DefaultRates()); err != nil {
		return err //nolint:wrapcheck
	}

	if err := c.News.Seed(ctx, contentservice.DefaultNews()); err != nil {
		return err //nolint:wrapcheck
	}

	return c.ExchangeRates.Seed(ctx, contentservice.DefaultExchangeRates()) //nolint:wrapcheck
}

func (c Content) BackgroundRefresh(ctx context.Context, ttl time.Duration) {
	go c.Slides.BackgroundRefresh(ctx, ttl)
	go c.Rates.BackgroundRefresh(ctx, ttl)
	go c.News.BackgroundRefresh(ctx, ttl)
	go c.ExchangeRates.BackgroundRefresh(ctx, ttl)
}

// Shutdown closes the store shared by every collection.
func (c Content) Shutdown(ctx context.Context) error {
	return c.Slides.Shutdown(ctx) //nolint:wrapcheck
}
