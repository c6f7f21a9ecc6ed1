// Package reconciler keeps a client-side projection of the four content
// collections and patches it from relay events without refetching.
package reconciler

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/Leopold1975/signage_control/internal/signage/client/contentapi"
	"github.com/Leopold1975/signage_control/internal/signage/client/relayclient"
	"github.com/Leopold1975/signage_control/internal/signage/domain/events"
	"github.com/Leopold1975/signage_control/internal/signage/domain/models"
	"github.com/Leopold1975/signage_control/pkg/logger"
	"golang.org/x/sync/errgroup"
)

var ErrNotCached = errors.New("record not in cache")

// Subscriber is the listening half of the relay client.
type Subscriber interface {
	On(event string, h relayclient.Handler) func()
}

// Cache is a disposable projection of the Content Store. Relay events and
// refetches mutate it under one lock.
type Cache struct {
	api *contentapi.Client
	all bool
	lg  logger.Logger

	mu       sync.RWMutex
	loading  bool
	slides   []models.Slide
	rates    []models.InterestRate
	news     []models.NewsItem
	exchange []models.ExchangeRate

	obsMu     sync.RWMutex
	observers []func(models.Collection)
}

// NewDisplayCache projects the active records only, as the display sees them.
func NewDisplayCache(api *contentapi.Client, lg logger.Logger) *Cache {
	return newCache(api, false, lg)
}

// NewAdminCache projects every record. api must carry an admin token.
func NewAdminCache(api *contentapi.Client, lg logger.Logger) *Cache {
	return newCache(api, true, lg)
}

func newCache(api *contentapi.Client, all bool, lg logger.Logger) *Cache {
	return &Cache{
		api:      api,
		all:      all,
		lg:       lg,
		loading:  true,
		slides:   []models.Slide{},
		rates:    []models.InterestRate{},
		news:     []models.NewsItem{},
		exchange: []models.ExchangeRate{},
	}
}

// Load fetches the four collections concurrently and replaces the cache
// content once all of them arrived.
func (c *Cache) Load(ctx context.Context) error {
	c.mu.Lock()
	c.loading = true
	c.mu.Unlock()

	var (
		slides   []models.Slide
		rates    []models.InterestRate
		news     []models.NewsItem
		exchange []models.ExchangeRate
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		slides, err = fetch[models.Slide](gctx, c)

		return err
	})
	g.Go(func() (err error) {
		rates, err = fetch[models.InterestRate](gctx, c)

		return err
	})
	g.Go(func() (err error) {
		news, err = fetch[models.NewsItem](gctx, c)

		return err
	})
	g.Go(func() (err error) {
		exchange, err = fetch[models.ExchangeRate](gctx, c)

		return err
	})

	err := g.Wait()

	c.mu.Lock()
	c.loading = false

	if err == nil {
		c.slides, c.rates, c.news, c.exchange = slides, rates, news, exchange
	}
	c.mu.Unlock()

	if err != nil {
		return fmt.Errorf("load error: %w", err)
	}

	for _, col := range models.Collections() {
		c.notify(col)
	}

	return nil
}

func (c *Cache) Loading() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.loading
}

// Refetch replaces one collection with the Content API's current list.
func (c *Cache) Refetch(ctx context.Context, collection models.Collection) error {
	var err error

	switch collection {
	case models.CollectionSlides:
		err = refetch[models.Slide](ctx, c)
	case models.CollectionRates:
		err = refetch[models.InterestRate](ctx, c)
	case models.CollectionNews:
		err = refetch[models.NewsItem](ctx, c)
	case models.CollectionExchangeRates:
		err = refetch[models.ExchangeRate](ctx, c)
	default:
		return models.ErrUnknownCollection
	}

	if err != nil {
		return fmt.Errorf("refetch %s error: %w", collection, err)
	}

	return nil
}

// Apply patches the cache with one relay event. It never touches the network.
func (c *Cache) Apply(event string, data []byte) error {
	kind, err := events.Parse(event)
	if err != nil {
		return fmt.Errorf("%w: %q", err, event)
	}

	var changed bool

	c.mu.Lock()
	switch kind.Entity {
	case events.EntitySlide:
		changed, err = patch[models.Slide](&c.slides, kind.Verb, data)
	case events.EntityRate:
		changed, err = patch[models.InterestRate](&c.rates, kind.Verb, data)
	case events.EntityNews:
		changed, err = patch[models.NewsItem](&c.news, kind.Verb, data)
	case events.EntityExchangeRate:
		changed, err = patch[models.ExchangeRate](&c.exchange, kind.Verb, data)
	}
	c.mu.Unlock()

	if err != nil {
		return fmt.Errorf("apply %s error: %w", event, err)
	}

	if changed {
		c.notify(kind.Entity.Collection())
	}

	return nil
}

// Attach subscribes the cache to the twelve canonical events. The returned
// func detaches every listener.
func (c *Cache) Attach(sub Subscriber) func() {
	kinds := events.All()
	offs := make([]func(), 0, len(kinds))

	for _, k := range kinds {
		name := k.String()

		offs = append(offs, sub.On(name, func(data []byte) {
			if err := c.Apply(name, data); err != nil {
				c.lg.Warnf("event ignored: %s", err.Error())
			}
		}))
	}

	return func() {
		for _, off := range offs {
			off()
		}
	}
}

// OnChange registers fn to run after every change with the affected collection.
func (c *Cache) OnChange(fn func(models.Collection)) {
	c.obsMu.Lock()
	c.observers = append(c.observers, fn)
	c.obsMu.Unlock()
}

func (c *Cache) Slides() []models.Slide { return snapshot[models.Slide](c) }

func (c *Cache) Rates() []models.InterestRate { return snapshot[models.InterestRate](c) }

func (c *Cache) News() []models.NewsItem { return snapshot[models.NewsItem](c) }

func (c *Cache) ExchangeRates() []models.ExchangeRate { return snapshot[models.ExchangeRate](c) }

func (c *Cache) notify(col models.Collection) {
	c.obsMu.RLock()
	obs := make([]func(models.Collection), len(c.observers))
	copy(obs, c.observers)
	c.obsMu.RUnlock()

	for _, fn := range obs {
		fn(col)
	}
}

func fetch[T any](ctx context.Context, c *Cache) ([]T, error) {
	col := collectionOf[T]()

	if c.all {
		return contentapi.ListAll[T](ctx, c.api, col) //nolint:wrapcheck
	}

	return contentapi.List[T](ctx, c.api, col) //nolint:wrapcheck
}

func refetch[T any](ctx context.Context, c *Cache) error {
	list, err := fetch[T](ctx, c)
	if err != nil {
		return err
	}

	c.mu.Lock()
	*slot[T](c) = list
	c.mu.Unlock()

	c.notify(collectionOf[T]())

	return nil
}

func snapshot[T any](c *Cache) []T {
	c.mu.RLock()
	defer c.mu.RUnlock()

	list := *slot[T](c)
	out := make([]T, len(list))
	copy(out, list)

	return out
}

// slot returns the list that holds T. Callers hold c.mu.
func slot[T any](c *Cache) *[]T {
	var p interface{}

	switch any(*new(T)).(type) {
	case models.Slide:
		p = &c.slides
	case models.InterestRate:
		p = &c.rates
	case models.NewsItem:
		p = &c.news
	case models.ExchangeRate:
		p = &c.exchange
	}

	return p.(*[]T) //nolint:forcetypeassert
}

func collectionOf[T any]() models.Collection {
	switch any(*new(T)).(type) {
	case models.Slide:
		return models.CollectionSlides
	case models.InterestRate:
		return models.CollectionRates
	case models.NewsItem:
		return models.CollectionNews
	case models.ExchangeRate:
		return models.CollectionExchangeRates
	}

	return ""
}
