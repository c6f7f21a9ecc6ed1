// Package memory is an in-process content store. It backs the "memory" driver
// and the service and API tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Leopold1975/signage_control/internal/signage/domain/models"
	repo "github.com/Leopold1975/signage_control/internal/signage/repository/contentrepo"
	"github.com/google/uuid"
)

// ContentMemoryRepo stores clones and hands out clones, so callers never share
// slice fields with stored records.
type ContentMemoryRepo[T any, PT models.Record[T]] struct {
	mu      sync.RWMutex
	records []T
	less    func(a, b T) bool
	now     func() time.Time
}

// New keeps records in insertion order unless less is given.
func New[T any, PT models.Record[T]](less func(a, b T) bool) *ContentMemoryRepo[T, PT] {
	return &ContentMemoryRepo[T, PT]{
		less: less,
		now:  func() time.Time { return time.Now().UTC() },
	}
}

func (cr *ContentMemoryRepo[T, PT]) List(_ context.Context, req repo.ListRequest) ([]T, error) {
	cr.mu.RLock()
	defer cr.mu.RUnlock()

	records := make([]T, 0, len(cr.records))

	for _, r := range cr.records {
		if req.OnlyActive && !PT(&r).Activated() {
			continue
		}

		records = append(records, PT(&r).Clone())
	}

	if cr.less != nil {
		sort.SliceStable(records, func(i, j int) bool { return cr.less(records[i], records[j]) })
	}

	return records, nil
}

func (cr *ContentMemoryRepo[T, PT]) Get(_ context.Context, id string) (T, error) {
	cr.mu.RLock()
	defer cr.mu.RUnlock()

	i := cr.index(id)
	if i < 0 {
		var zero T

		return zero, repo.ErrNotFound
	}

	return PT(&cr.records[i]).Clone(), nil
}

func (cr *ContentMemoryRepo[T, PT]) Create(_ context.Context, rec T) (T, error) {
	cr.mu.Lock()
	defer cr.mu.Unlock()

	now := cr.now()
	PT(&rec).Stamp(uuid.NewString(), now, now)
	cr.records = append(cr.records, PT(&rec).Clone())

	return rec, nil
}

func (cr *ContentMemoryRepo[T, PT]) Update(_ context.Context, id string, rec T) (T, error) {
	cr.mu.Lock()
	defer cr.mu.Unlock()

	i := cr.index(id)
	if i < 0 {
		var zero T

		return zero, repo.ErrNotFound
	}

	createdAt := PT(&cr.records[i]).Created()
	PT(&rec).Stamp(id, createdAt, cr.now())
	cr.records[i] = PT(&rec).Clone()

	return rec, nil
}

func (cr *ContentMemoryRepo[T, PT]) Delete(_ context.Context, id string) (T, error) {
	cr.mu.Lock()
	defer cr.mu.Unlock()

	i := cr.index(id)
	if i < 0 {
		var zero T

		return zero, repo.ErrNotFound
	}

	deleted := cr.records[i]
	cr.records = append(cr.records[:i], cr.records[i+1:]...)

	return deleted, nil
}

func (cr *ContentMemoryRepo[T, PT]) Count(_ context.Context) (int, error) {
	cr.mu.RLock()
	defer cr.mu.RUnlock()

	return len(cr.records), nil
}

func (cr *ContentMemoryRepo[T, PT]) Shutdown(context.Context) error {
	return nil
}

func (cr *ContentMemoryRepo[T, PT]) index(id string) int {
	for i := range cr.records {
		if PT(&cr.records[i]).RecordID() == id {
			return i
		}
	}

	return -1
}

func SlidesByOrder(a, b models.Slide) bool { return a.Order < b.Order }

func NewsNewestFirst(a, b models.NewsItem) bool { return a.CreatedAt.After(b.CreatedAt) }
