package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Leopold1975/signage_control/internal/pkg/config"
	"github.com/Leopold1975/signage_control/internal/signage/api/server"
	"github.com/Leopold1975/signage_control/internal/signage/client/contentapi"
	"github.com/Leopold1975/signage_control/internal/signage/client/reconciler"
	"github.com/Leopold1975/signage_control/internal/signage/client/relayclient"
	"github.com/Leopold1975/signage_control/internal/signage/domain/models"
	um "github.com/Leopold1975/signage_control/internal/signage/repository/userrepo/memory"
	"github.com/Leopold1975/signage_control/internal/signage/services/authservice"
	"github.com/Leopold1975/signage_control/pkg/logger"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	waitFor = 3 * time.Second
	tick    = 10 * time.Millisecond
)

// SyncSuite runs the Content API and the relay in process, with an admin
// console (client A) and a display (client B) connected to both.
type SyncSuite struct {
	suite.Suite
	ctx    context.Context //nolint:containedctx
	cancel context.CancelFunc

	relay    RelayApp
	apiTS    *httptest.Server
	relayTS  *httptest.Server
	clientCf config.Client

	// public reads, the only kind the display issues
	displayReads atomic.Int32

	console *reconciler.Console
	relayA  *relayclient.Client
	display *reconciler.Cache
	relayB  *relayclient.Client
	detachB func()
}

func (ss *SyncSuite) SetupTest() {
	ss.ctx, ss.cancel = context.WithCancel(context.Background())
	ss.displayReads.Store(0)

	lg := logger.Nop()
	cfg := config.Config{ //nolint:exhaustruct
		Auth: config.Auth{TTL: time.Hour, Secret: "sync-secret"}, //nolint:exhaustruct
	}

	auth := authservice.New(um.New(), cfg.Auth)
	ss.Require().NoError(auth.EnsureAdmin(ss.ctx, "admin", "admin-pass"))

	api := server.New(cfg, NewMemoryContent(lg).APIs(), auth, lg).Handler()
	ss.apiTS = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("token") == "" && r.Method == http.MethodGet {
			ss.displayReads.Add(1)
		}

		api.ServeHTTP(w, r)
	}))

	ss.relay = newRelay(config.Relay{Path: "/socket"}, lg) //nolint:exhaustruct
	ss.relayTS = httptest.NewServer(ss.relay.Handler())

	go ss.relay.hub.Run(ss.ctx) //nolint:errcheck

	ss.clientCf = config.Client{ //nolint:exhaustruct
		APIURL:            ss.apiTS.URL + "/v1",
		RelayURL:          "ws" + strings.TrimPrefix(ss.relayTS.URL, "http"),
		RelayPath:         "/socket",
		ReconnectAttempts: 5,
		ReconnectDelay:    20 * time.Millisecond,
		Timeout:           2 * time.Second,
	}

	adminAPI := contentapi.New(ss.clientCf)
	token, err := adminAPI.Login(ss.ctx, "admin", "admin-pass")
	ss.Require().NoError(err)

	adminAPI = adminAPI.WithToken(token)

	ss.relayA = relayclient.New(ss.clientCf, lg)
	ss.console = reconciler.NewConsole(adminAPI, reconciler.NewAdminCache(adminAPI, lg), ss.relayA, lg)

	go ss.relayA.Run(ss.ctx) //nolint:errcheck

	ss.display = reconciler.NewDisplayCache(contentapi.New(ss.clientCf), lg)
	ss.relayB = ss.connectDisplay()

	ss.Require().NoError(ss.console.Cache().Load(ss.ctx))
	ss.Require().NoError(ss.display.Load(ss.ctx))
	ss.waitClients(2)
}

func (ss *SyncSuite) TearDownTest() {
	ss.detachB()
	ss.relayA.Close()
	ss.relayB.Close()
	ss.cancel()
	ss.relayTS.Close()
	ss.apiTS.Close()
}

func (ss *SyncSuite) connectDisplay() *relayclient.Client {
	rc := relayclient.New(ss.clientCf, logger.Nop())
	ss.detachB = ss.display.Attach(rc)

	go rc.Run(ss.ctx) //nolint:errcheck

	return rc
}

func (ss *SyncSuite) waitClients(n int) {
	ss.Require().Eventually(func() bool {
		return ss.relay.hub.ClientCount() == n && ss.relayA.Connected()
	}, waitFor, tick)
}

func slideBody(title string, order int) map[string]interface{} {
	return map[string]interface{}{
		"title": title, "description": "d", "backgroundColor": "bg-blue",
		"textColor": "text-white", "order": order, "category": "Promo",
	}
}

func findSlide(slides []models.Slide, id string) (models.Slide, bool) {
	for _, s := range slides {
		if s.ID == id {
			return s, true
		}
	}

	return models.Slide{}, false
}

func (ss *SyncSuite) TestCreatePropagates() {
	reads := ss.displayReads.Load()

	s1, err := reconciler.Create[models.Slide](ss.ctx, ss.console, slideBody("X", 1))
	ss.Require().NoError(err)
	ss.Require().NotEmpty(s1.ID)

	// A sees its own write through the refetch
	_, ok := findSlide(ss.console.Cache().Slides(), s1.ID)
	ss.Require().True(ok)

	ss.Require().Eventually(func() bool {
		_, ok := findSlide(ss.display.Slides(), s1.ID)

		return ok
	}, waitFor, tick)

	got, _ := findSlide(ss.display.Slides(), s1.ID)
	ss.Require().Equal("X", got.Title)
	ss.Require().Equal(reads, ss.displayReads.Load())
}

func (ss *SyncSuite) TestToggleReplacesEntry() {
	s1, err := reconciler.Create[models.Slide](ss.ctx, ss.console, slideBody("X", 1))
	ss.Require().NoError(err)

	ss.Require().Eventually(func() bool {
		_, ok := findSlide(ss.display.Slides(), s1.ID)

		return ok
	}, waitFor, tick)

	toggled, err := reconciler.Toggle[models.Slide](ss.ctx, ss.console, s1.ID)
	ss.Require().NoError(err)
	ss.Require().False(toggled.IsActive)

	ss.Require().Eventually(func() bool {
		s, ok := findSlide(ss.display.Slides(), s1.ID)

		return ok && !s.IsActive
	}, waitFor, tick)

	ss.Require().Len(ss.display.Slides(), 1)

	// the admin projection keeps inactive records
	s, ok := findSlide(ss.console.Cache().Slides(), s1.ID)
	ss.Require().True(ok)
	ss.Require().False(s.IsActive)
}

func (ss *SyncSuite) TestDeleteRemovesOnlyTarget() {
	codes := []string{"USD", "EUR", "JPY"}
	created := make([]models.ExchangeRate, 0, len(codes))

	for _, code := range codes {
		e, err := reconciler.Create[models.ExchangeRate](ss.ctx, ss.console, map[string]interface{}{
			"currency": code, "code": code, "buy": 10, "sell": 11,
		})
		ss.Require().NoError(err)

		created = append(created, e)
	}

	ss.Require().Eventually(func() bool { return len(ss.display.ExchangeRates()) == 3 }, waitFor, tick)

	before := ss.display.ExchangeRates()

	ss.Require().NoError(reconciler.Delete[models.ExchangeRate](ss.ctx, ss.console, created[1].ID))

	ss.Require().Eventually(func() bool { return len(ss.display.ExchangeRates()) == 2 }, waitFor, tick)
	ss.Require().Equal([]models.ExchangeRate{before[0], before[2]}, ss.display.ExchangeRates())
}

func (ss *SyncSuite) TestNoReplayAfterReconnect() {
	ss.detachB()
	ss.Require().NoError(ss.relayB.Close())
	ss.waitClients(1)

	s3, err := reconciler.Create[models.Slide](ss.ctx, ss.console, slideBody("S3", 3))
	ss.Require().NoError(err)

	ss.relayB = ss.connectDisplay()
	ss.waitClients(2)

	// nothing is replayed to the returning display
	time.Sleep(100 * time.Millisecond)

	_, ok := findSlide(ss.display.Slides(), s3.ID)
	ss.Require().False(ok)

	ss.Require().NoError(ss.display.Refetch(ss.ctx, models.CollectionSlides))

	_, ok = findSlide(ss.display.Slides(), s3.ID)
	ss.Require().True(ok)
}

func (ss *SyncSuite) TestFailedWriteEmitsNothing() {
	var changes atomic.Int32

	ss.display.OnChange(func(models.Collection) { changes.Add(1) })

	_, err := reconciler.Create[models.NewsItem](ss.ctx, ss.console, map[string]interface{}{
		"title": "t", "description": "d", "category": "gossip", "date": "today",
	})

	var ve *contentapi.ValidationError
	ss.Require().ErrorAs(err, &ve)
	ss.Require().Equal("category", ve.Fields[0].Field)

	ss.Require().Error(reconciler.Delete[models.NewsItem](ss.ctx, ss.console, "missing"))

	_, err = reconciler.Toggle[models.NewsItem](ss.ctx, ss.console, "missing")
	ss.Require().ErrorIs(err, reconciler.ErrNotCached)

	// a later valid write is the first thing the display hears about
	n, err := reconciler.Create[models.NewsItem](ss.ctx, ss.console, map[string]interface{}{
		"title": "t", "description": "d", "category": "promo", "date": "today",
	})
	ss.Require().NoError(err)

	ss.Require().Eventually(func() bool { return changes.Load() == 1 }, waitFor, tick)
	ss.Require().Len(ss.display.News(), 1)
	ss.Require().Equal(n.ID, ss.display.News()[0].ID)
}

func (ss *SyncSuite) TestWriteWhileRelayDown() {
	ss.Require().NoError(ss.relayA.Close())
	ss.Require().Eventually(func() bool { return !ss.relayA.Connected() }, waitFor, tick)

	r, err := reconciler.Create[models.InterestRate](ss.ctx, ss.console, map[string]interface{}{
		"type": "Deposit", "rate": "6.00%", "period": "p.a",
	})
	ss.Require().NoError(err)
	ss.Require().NotEmpty(r.ID)
	ss.Require().Len(ss.console.Cache().Rates(), 1)

	time.Sleep(100 * time.Millisecond)
	ss.Require().Empty(ss.display.Rates())
}

func TestSyncSuite(t *testing.T) {
	suite.Run(t, new(SyncSuite))
}

func TestMemoryContentSeed(t *testing.T) {
	ctx := context.Background()

	content, st, err := newContent(ctx, config.Config{ //nolint:exhaustruct
		PostgresDB: config.PostgresDB{Driver: DriverMemory}, //nolint:exhaustruct
	}, logger.Nop())
	require.NoError(t, err)
	require.Nil(t, st.db)

	require.NoError(t, content.Seed(ctx))
	require.NoError(t, content.Seed(ctx))

	slides, err := content.Slides.List(ctx, false)
	require.NoError(t, err)
	require.Len(t, slides, 3)
	require.Equal(t, 1, slides[0].Order)

	rates, err := content.ExchangeRates.List(ctx, true)
	require.NoError(t, err)
	require.Len(t, rates, 5)

	_, _, err = newContent(ctx, config.Config{ //nolint:exhaustruct
		PostgresDB: config.PostgresDB{Driver: "sqlite"}, //nolint:exhaustruct
	}, logger.Nop())
	require.ErrorIs(t, err, ErrUnknownDriver)
}
