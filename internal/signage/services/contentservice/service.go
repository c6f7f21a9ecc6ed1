package contentservice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Leopold1975/signage_control/internal/signage/domain/models"
	"github.com/Leopold1975/signage_control/internal/signage/repository/contentcache"
	repo "github.com/Leopold1975/signage_control/internal/signage/repository/contentrepo"
	"github.com/Leopold1975/signage_control/pkg/logger"
)

type Repository[T any] interface {
	List(context.Context, repo.ListRequest) ([]T, error)
	Get(context.Context, string) (T, error)
	Create(context.Context, T) (T, error)
	Update(context.Context, string, T) (T, error)
	Delete(context.Context, string) (T, error)
	Count(context.Context) (int, error)
	Shutdown(context.Context) error
}

type Cache[T any] interface {
	GetActive(context.Context) ([]T, error)
	SetActive(context.Context, []T) error
	Invalidate(context.Context) error
}

// ContentService serves one collection. blank returns the record that a
// create body is decoded onto, so fields absent from the body keep its values.
type ContentService[T any] struct {
	collection models.Collection
	repo       Repository[T]
	cache      Cache[T]
	blank      func() T
	lg         logger.Logger
}

func New[T any](c models.Collection, r Repository[T], cache Cache[T], blank func() T,
	lg logger.Logger,
) *ContentService[T] {
	return &ContentService[T]{
		collection: c,
		repo:       r,
		cache:      cache,
		blank:      blank,
		lg:         lg,
	}
}

func (cs *ContentService[T]) Collection() models.Collection {
	return cs.collection
}

func (cs *ContentService[T]) List(ctx context.Context, onlyActive bool) ([]T, error) {
	if onlyActive {
		records, err := cs.cache.GetActive(ctx)
		if err == nil {
			return records, nil
		}

		if !errors.Is(err, contentcache.ErrMiss) {
			cs.lg.Errorf("%s cache get error: %s", cs.collection, err.Error())
		}
	}

	records, err := cs.repo.List(ctx, repo.ListRequest{OnlyActive: onlyActive})
	if err != nil {
		return nil, fmt.Errorf("list %s error: %w", cs.collection, err)
	}

	if onlyActive {
		if err := cs.cache.SetActive(ctx, records); err != nil {
			cs.lg.Errorf("%s cache set error: %s", cs.collection, err.Error())
		}
	}

	return records, nil
}

func (cs *ContentService[T]) Create(ctx context.Context, body []byte) (T, error) {
	rec := cs.blank()

	if err := json.Unmarshal(body, &rec); err != nil {
		return rec, fmt.Errorf("%w: %s", ErrInvalidBody, err.Error())
	}

	if err := validateRecord(rec); err != nil {
		return rec, err
	}

	created, err := cs.repo.Create(ctx, rec)
	if err != nil {
		return created, fmt.Errorf("create %s error: %w", cs.collection, err)
	}

	cs.invalidate(ctx)

	return created, nil
}

// Update merges the partial body onto the stored record and validates the
// result as a whole.
func (cs *ContentService[T]) Update(ctx context.Context, id string, patch []byte) (T, error) {
	rec, err := cs.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return rec, ErrNotFound
		}

		return rec, fmt.Errorf("get %s error: %w", cs.collection, err)
	}

	if err := json.Unmarshal(patch, &rec); err != nil {
		return rec, fmt.Errorf("%w: %s", ErrInvalidBody, err.Error())
	}

	if err := validateRecord(rec); err != nil {
		return rec, err
	}

	updated, err := cs.repo.Update(ctx, id, rec)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return updated, ErrNotFound
		}

		return updated, fmt.Errorf("update %s error: %w", cs.collection, err)
	}

	cs.invalidate(ctx)

	return updated, nil
}

func (cs *ContentService[T]) Delete(ctx context.Context, id string) (T, error) {
	deleted, err := cs.repo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return deleted, ErrNotFound
		}

		return deleted, fmt.Errorf("delete %s error: %w", cs.collection, err)
	}

	cs.invalidate(ctx)

	return deleted, nil
}

// Seed inserts defaults when the collection is empty.
func (cs *ContentService[T]) Seed(ctx context.Context, defaults []T) error {
	n, err := cs.repo.Count(ctx)
	if err != nil {
		return fmt.Errorf("count %s error: %w", cs.collection, err)
	}

	if n != 0 {
		return nil
	}

	cs.lg.Infof("seeding %d default %s", len(defaults), cs.collection)

	for _, rec := range defaults {
		if err := validateRecord(rec); err != nil {
			return fmt.Errorf("seed %s error: %w", cs.collection, err)
		}

		if _, err := cs.repo.Create(ctx, rec); err != nil {
			return fmt.Errorf("seed %s error: %w", cs.collection, err)
		}
	}

	cs.invalidate(ctx)

	return nil
}

func (cs *ContentService[T]) BackgroundRefresh(ctx context.Context, ttl time.Duration) {
	t := time.NewTicker(ttl)
	defer t.Stop()

	if err := cs.refresh(ctx); err != nil {
		cs.lg.Errorf("%s refresh error: %s", cs.collection, err.Error())
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if err := cs.refresh(ctx); err != nil {
				cs.lg.Errorf("%s refresh error: %s", cs.collection, err.Error())
			}
		}
	}
}

func (cs *ContentService[T]) Shutdown(ctx context.Context) error {
	if err := cs.repo.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown %s repo error: %w", cs.collection, err)
	}

	return nil
}

func (cs *ContentService[T]) refresh(ctx context.Context) error {
	records, err := cs.repo.List(ctx, repo.ListRequest{OnlyActive: true})
	if err != nil {
		return fmt.Errorf("list error: %w", err)
	}

	if err := cs.cache.SetActive(ctx, records); err != nil {
		return fmt.Errorf("cache set error: %w", err)
	}

	return nil
}

func (cs *ContentService[T]) invalidate(ctx context.Context) {
	if err := cs.cache.Invalidate(ctx); err != nil {
		cs.lg.Errorf("%s cache invalidate error: %s", cs.collection, err.Error())
	}
}
