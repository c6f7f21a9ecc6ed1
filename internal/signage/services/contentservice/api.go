package contentservice

import "context"

// API erases the record type so one HTTP handler can serve every collection.
type API struct {
	List   func(ctx context.Context, onlyActive bool) (interface{}, error)
	Create func(ctx context.Context, body []byte) (interface{}, error)
	Update func(ctx context.Context, id string, patch []byte) (interface{}, error)
	Delete func(ctx context.Context, id string) (interface{}, error)
}

func (cs *ContentService[T]) API() API {
	return API{
		List: func(ctx context.Context, onlyActive bool) (interface{}, error) {
			return cs.List(ctx, onlyActive)
		},
		Create: func(ctx context.Context, body []byte) (interface{}, error) {
			return cs.Create(ctx, body)
		},
		Update: func(ctx context.Context, id string, patch []byte) (interface{}, error) {
			return cs.Update(ctx, id, patch)
		},
		Delete: func(ctx context.Context, id string) (interface{}, error) {
			return cs.Delete(ctx, id)
		},
	}
}
