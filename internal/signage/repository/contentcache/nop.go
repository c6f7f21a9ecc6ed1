package contentcache

import "context"

// Nop is used when no cache backend is configured; every read misses.
type Nop[T any] struct{}

func (Nop[T]) GetActive(context.Context) ([]T, error) { return nil, ErrMiss }

func (Nop[T]) SetActive(context.Context, []T) error { return nil }

func (Nop[T]) Invalidate(context.Context) error { return nil }
