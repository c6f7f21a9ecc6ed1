package reconciler

import (
	"context"
	"errors"
	"fmt"

	"github.com/Leopold1975/signage_control/internal/signage/client/contentapi"
	"github.com/Leopold1975/signage_control/internal/signage/client/relayclient"
	"github.com/Leopold1975/signage_control/internal/signage/domain/events"
	"github.com/Leopold1975/signage_control/internal/signage/domain/models"
	"github.com/Leopold1975/signage_control/pkg/logger"
)

// Emitter is the publishing half of the relay client.
type Emitter interface {
	Emit(event string, data interface{}) error
}

// Console performs admin writes. After every successful write it refetches
// its own collection and tells the other clients through the relay.
type Console struct {
	api   *contentapi.Client
	cache *Cache
	relay Emitter
	lg    logger.Logger
}

func NewConsole(api *contentapi.Client, cache *Cache, relay Emitter, lg logger.Logger) *Console {
	return &Console{
		api:   api,
		cache: cache,
		relay: relay,
		lg:    lg,
	}
}

func (con *Console) Cache() *Cache {
	return con.cache
}

func Create[T any](ctx context.Context, con *Console, body interface{}) (T, error) {
	col := collectionOf[T]()

	rec, err := contentapi.Create[T](ctx, con.api, col, body)
	if err != nil {
		return rec, fmt.Errorf("create %s error: %w", col, err)
	}

	con.afterWrite(ctx, col, events.VerbCreated, rec)

	return rec, nil
}

// Update sends a partial body; fields it omits keep their stored values.
func Update[T any](ctx context.Context, con *Console, id string, patch interface{}) (T, error) {
	col := collectionOf[T]()

	rec, err := contentapi.Update[T](ctx, con.api, col, id, patch)
	if err != nil {
		return rec, fmt.Errorf("update %s error: %w", col, err)
	}

	con.afterWrite(ctx, col, events.VerbUpdated, rec)

	return rec, nil
}

// Delete removes the record; peers receive the bare id.
func Delete[T any](ctx context.Context, con *Console, id string) error {
	col := collectionOf[T]()

	deleted, err := contentapi.Delete(ctx, con.api, col, id)
	if err != nil {
		return fmt.Errorf("delete %s error: %w", col, err)
	}

	con.afterWrite(ctx, col, events.VerbDeleted, deleted)

	return nil
}

// Toggle flips isActive of a cached record locally, then writes it through.
// A failed write puts the flag back.
func Toggle[T any, PT models.Record[T]](ctx context.Context, con *Console, id string) (T, error) {
	active, ok := flipActive[T, PT](con.cache, id)
	if !ok {
		var zero T

		return zero, fmt.Errorf("toggle %s %s: %w", collectionOf[T](), id, ErrNotCached)
	}

	rec, err := Update[T](ctx, con, id, map[string]bool{"isActive": active})
	if err != nil {
		setActive[T, PT](con.cache, id, !active)

		return rec, err
	}

	return rec, nil
}

// flipActive inverts the cached flag and returns its new value.
func flipActive[T any, PT models.Record[T]](c *Cache, id string) (bool, bool) {
	c.mu.Lock()
	list := *slot[T](c)

	i := indexOf[T, PT](list, id)
	if i < 0 {
		c.mu.Unlock()

		return false, false
	}

	active := !PT(&list[i]).Activated()
	PT(&list[i]).SetActive(active)
	c.mu.Unlock()

	c.notify(collectionOf[T]())

	return active, true
}

func setActive[T any, PT models.Record[T]](c *Cache, id string, active bool) {
	c.mu.Lock()
	list := *slot[T](c)

	i := indexOf[T, PT](list, id)
	if i >= 0 {
		PT(&list[i]).SetActive(active)
	}
	c.mu.Unlock()

	if i >= 0 {
		c.notify(collectionOf[T]())
	}
}

func (con *Console) afterWrite(ctx context.Context, col models.Collection, verb events.Verb, data interface{}) {
	if err := con.cache.Refetch(ctx, col); err != nil {
		con.lg.Errorf("%s", err.Error())
	}

	entity, err := events.EntityOf(col)
	if err != nil {
		con.lg.Errorf("no event for %s: %s", col, err.Error())

		return
	}

	name := events.Kind{Entity: entity, Verb: verb}.String()

	err = con.relay.Emit(name, data)

	switch {
	case err == nil:
	case errors.Is(err, relayclient.ErrNotConnected):
		con.lg.Warnf("relay not connected, %s dropped", name)
	default:
		con.lg.Errorf("emit %s error: %s", name, err.Error())
	}
}
