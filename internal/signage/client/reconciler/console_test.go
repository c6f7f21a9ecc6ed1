package reconciler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Leopold1975/signage_control/internal/pkg/config"
	"github.com/Leopold1975/signage_control/internal/signage/client/contentapi"
	"github.com/Leopold1975/signage_control/internal/signage/client/reconciler"
	"github.com/Leopold1975/signage_control/internal/signage/domain/models"
	"github.com/Leopold1975/signage_control/pkg/logger"
	"github.com/stretchr/testify/require"
)

type recordingEmitter struct {
	mu     sync.Mutex
	events []string
}

func (re *recordingEmitter) Emit(event string, _ interface{}) error {
	re.mu.Lock()
	defer re.mu.Unlock()

	re.events = append(re.events, event)

	return nil
}

// toggleServer serves the fixed lists and answers PUT /v1/slides/S1 through put.
func toggleServer(t *testing.T, put http.HandlerFunc) *contentapi.Client {
	t.Helper()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		if r.Method == http.MethodPut && r.URL.Path == "/v1/slides/S1" {
			put(w, r)

			return
		}

		w.Write([]byte(lists[r.URL.Path])) //nolint:errcheck
	}))
	t.Cleanup(ts.Close)

	return contentapi.New(config.Client{APIURL: ts.URL + "/v1", Timeout: time.Second}) //nolint:exhaustruct
}

func slideActive(c *reconciler.Cache, id string) (bool, bool) {
	for _, s := range c.Slides() {
		if s.ID == id {
			return s.IsActive, true
		}
	}

	return false, false
}

func TestToggleFlipsLocallyBeforeWrite(t *testing.T) {
	var (
		cache       *reconciler.Cache
		activeAtPut atomic.Bool
	)

	api := toggleServer(t, func(w http.ResponseWriter, _ *http.Request) {
		active, _ := slideActive(cache, "S1")
		activeAtPut.Store(active)
		w.Write([]byte(`{"success":true,"data":{"id":"S1","title":"A","order":1,"isActive":false}}`)) //nolint:errcheck
	})

	cache = reconciler.NewDisplayCache(api, logger.Nop())
	require.NoError(t, cache.Load(context.Background()))
	activeAtPut.Store(true)

	emitter := &recordingEmitter{} //nolint:exhaustruct
	con := reconciler.NewConsole(api, cache, emitter, logger.Nop())

	rec, err := reconciler.Toggle[models.Slide](context.Background(), con, "S1")
	require.NoError(t, err)
	require.False(t, rec.IsActive)
	require.False(t, activeAtPut.Load())
	require.Equal(t, []string{"slide_updated"}, emitter.events)
}

func TestToggleRestoresFlagOnFailure(t *testing.T) {
	api := toggleServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"success":false,"error":"boom"}`)) //nolint:errcheck
	})

	cache := reconciler.NewDisplayCache(api, logger.Nop())
	require.NoError(t, cache.Load(context.Background()))

	var changes []models.Collection
	cache.OnChange(func(c models.Collection) { changes = append(changes, c) })

	emitter := &recordingEmitter{} //nolint:exhaustruct
	con := reconciler.NewConsole(api, cache, emitter, logger.Nop())

	_, err := reconciler.Toggle[models.Slide](context.Background(), con, "S1")
	require.ErrorIs(t, err, contentapi.ErrRequestFailed)
	active, ok := slideActive(cache, "S1")
	require.True(t, ok)
	require.True(t, active)
	require.Equal(t, []models.Collection{models.CollectionSlides, models.CollectionSlides}, changes)
	require.Empty(t, emitter.events)

	_, err = reconciler.Toggle[models.Slide](context.Background(), con, "missing")
	require.ErrorIs(t, err, reconciler.ErrNotCached)
}
