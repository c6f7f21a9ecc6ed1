package server_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Leopold1975/signage_control/internal/pkg/config"
	"github.com/Leopold1975/signage_control/internal/signage/api/server"
	"github.com/Leopold1975/signage_control/internal/signage/domain/models"
	"github.com/Leopold1975/signage_control/internal/signage/repository/contentcache"
	"github.com/Leopold1975/signage_control/internal/signage/repository/contentrepo/memory"
	um "github.com/Leopold1975/signage_control/internal/signage/repository/userrepo/memory"
	"github.com/Leopold1975/signage_control/internal/signage/services/authservice"
	"github.com/Leopold1975/signage_control/internal/signage/services/contentservice"
	"github.com/Leopold1975/signage_control/pkg/logger"
	"github.com/stretchr/testify/suite"
)

type response struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   json.RawMessage `json:"error"`
}

type ServerSuite struct {
	suite.Suite
	ts         *httptest.Server
	adminToken string
	userToken  string
}

func (ss *ServerSuite) SetupTest() {
	ctx := context.Background()
	lg := logger.Nop()

	cfg := config.Config{ //nolint:exhaustruct
		Auth: config.Auth{TTL: time.Hour, Secret: "test-secret"},
	}

	auth := authservice.New(um.New(), cfg.Auth)
	ss.Require().NoError(auth.EnsureAdmin(ctx, "admin", "admin-pass"))

	var err error

	ss.adminToken, err = auth.Login(ctx, "admin", "admin-pass")
	ss.Require().NoError(err)

	ss.userToken, err = auth.CreateUser(ctx, authservice.CreateUserRequest{ //nolint:exhaustruct
		Username: "viewer", Password: "viewer-pass", Role: authservice.UserRole,
	})
	ss.Require().NoError(err)

	content := map[models.Collection]contentservice.API{
		models.CollectionSlides: contentservice.New[models.Slide](models.CollectionSlides,
			memory.New[models.Slide](memory.SlidesByOrder), contentcache.Nop[models.Slide]{},
			models.NewSlide, lg).API(),
		models.CollectionRates: contentservice.New[models.InterestRate](models.CollectionRates,
			memory.New[models.InterestRate](nil), contentcache.Nop[models.InterestRate]{},
			models.NewInterestRate, lg).API(),
		models.CollectionNews: contentservice.New[models.NewsItem](models.CollectionNews,
			memory.New[models.NewsItem](memory.NewsNewestFirst), contentcache.Nop[models.NewsItem]{},
			models.NewNewsItem, lg).API(),
		models.CollectionExchangeRates: contentservice.New[models.ExchangeRate](models.CollectionExchangeRates,
			memory.New[models.ExchangeRate](nil), contentcache.Nop[models.ExchangeRate]{},
			models.NewExchangeRate, lg).API(),
	}

	ss.ts = httptest.NewServer(server.New(cfg, content, auth, lg).Handler())
}

func (ss *ServerSuite) TearDownTest() {
	ss.ts.Close()
}

func (ss *ServerSuite) do(method, path, token, body string) (int, response) {
	req, err := http.NewRequestWithContext(context.Background(), method, ss.ts.URL+path, bytes.NewBufferString(body))
	ss.Require().NoError(err)

	if token != "" {
		req.Header.Set("token", token)
	}

	resp, err := ss.ts.Client().Do(req)
	ss.Require().NoError(err)

	defer resp.Body.Close()

	ss.Require().Equal("application/json", resp.Header.Get("Content-Type"))

	var r response
	ss.Require().NoError(json.NewDecoder(resp.Body).Decode(&r))

	return resp.StatusCode, r
}

func (ss *ServerSuite) createSlide(title string, order int, active bool) models.Slide {
	body, err := json.Marshal(map[string]interface{}{
		"title": title, "description": "d", "backgroundColor": "bg-blue",
		"textColor": "text-white", "order": order, "category": "Promo", "isActive": active,
	})
	ss.Require().NoError(err)

	code, r := ss.do(http.MethodPost, "/v1/slides", ss.adminToken, string(body))
	ss.Require().Equal(http.StatusCreated, code, string(r.Error))
	ss.Require().True(r.Success)

	var s models.Slide
	ss.Require().NoError(json.Unmarshal(r.Data, &s))

	return s
}

func (ss *ServerSuite) TestHealthz() {
	code, r := ss.do(http.MethodGet, "/healthz", "", "")
	ss.Require().Equal(http.StatusOK, code)
	ss.Require().JSONEq(`{"status":"ok"}`, string(r.Data))
}

func (ss *ServerSuite) TestPublicListActiveOnlyOrdered() {
	ss.createSlide("third", 3, true)
	ss.createSlide("hidden", 2, false)
	ss.createSlide("first", 1, true)

	code, r := ss.do(http.MethodGet, "/v1/slides", "", "")
	ss.Require().Equal(http.StatusOK, code)
	ss.Require().True(r.Success)

	var slides []models.Slide
	ss.Require().NoError(json.Unmarshal(r.Data, &slides))
	ss.Require().Len(slides, 2)
	ss.Require().Equal("first", slides[0].Title)
	ss.Require().Equal("third", slides[1].Title)

	code, r = ss.do(http.MethodGet, "/v1/admin/slides", ss.adminToken, "")
	ss.Require().Equal(http.StatusOK, code)
	ss.Require().NoError(json.Unmarshal(r.Data, &slides))
	ss.Require().Len(slides, 3)
}

func (ss *ServerSuite) TestEmptyListIsArray() {
	code, r := ss.do(http.MethodGet, "/v1/exchange-rates", "", "")
	ss.Require().Equal(http.StatusOK, code)
	ss.Require().JSONEq(`[]`, string(r.Data))
}

func (ss *ServerSuite) TestNewsNewestFirst() {
	for _, title := range []string{"old", "new"} {
		code, _ := ss.do(http.MethodPost, "/v1/news", ss.adminToken,
			`{"title":"`+title+`","description":"d","category":"news","date":"today"}`)
		ss.Require().Equal(http.StatusCreated, code)
		time.Sleep(2 * time.Millisecond)
	}

	_, r := ss.do(http.MethodGet, "/v1/news", "", "")

	var news []models.NewsItem
	ss.Require().NoError(json.Unmarshal(r.Data, &news))
	ss.Require().Len(news, 2)
	ss.Require().Equal("new", news[0].Title)
}

func (ss *ServerSuite) TestAuthRequired() {
	code, r := ss.do(http.MethodGet, "/v1/admin/slides", "", "")
	ss.Require().Equal(http.StatusUnauthorized, code)
	ss.Require().False(r.Success)

	code, _ = ss.do(http.MethodGet, "/v1/admin/slides", "garbage", "")
	ss.Require().Equal(http.StatusUnauthorized, code)

	code, _ = ss.do(http.MethodPost, "/v1/rates", ss.userToken, `{"type":"t","rate":"1%","period":"1y"}`)
	ss.Require().Equal(http.StatusForbidden, code)

	code, _ = ss.do(http.MethodDelete, "/v1/rates/any", "", "")
	ss.Require().Equal(http.StatusUnauthorized, code)
}

func (ss *ServerSuite) TestCreateDefaultsActive() {
	code, r := ss.do(http.MethodPost, "/v1/rates", ss.adminToken, `{"type":"Deposit","rate":"8.50%","period":"12m"}`)
	ss.Require().Equal(http.StatusCreated, code)

	var rate models.InterestRate
	ss.Require().NoError(json.Unmarshal(r.Data, &rate))
	ss.Require().NotEmpty(rate.ID)
	ss.Require().True(rate.IsActive)
	ss.Require().False(rate.CreatedAt.IsZero())
}

func (ss *ServerSuite) TestValidationError() {
	code, r := ss.do(http.MethodPost, "/v1/exchange-rates", ss.adminToken,
		`{"currency":"US Dollar","code":"USD","buy":0,"sell":-1}`)
	ss.Require().Equal(http.StatusBadRequest, code)
	ss.Require().False(r.Success)

	var body server.ValidationErrorBody
	ss.Require().NoError(json.Unmarshal(r.Error, &body))
	ss.Require().NotEmpty(body.Message)

	fields := make([]string, 0, len(body.Fields))
	for _, f := range body.Fields {
		fields = append(fields, f.Field)
	}

	ss.Require().ElementsMatch([]string{"buy", "sell"}, fields)

	code, _ = ss.do(http.MethodPost, "/v1/news", ss.adminToken,
		`{"title":"t","description":"d","category":"gossip","date":"today"}`)
	ss.Require().Equal(http.StatusBadRequest, code)

	code, _ = ss.do(http.MethodPost, "/v1/news", ss.adminToken, `{not json`)
	ss.Require().Equal(http.StatusBadRequest, code)
}

func (ss *ServerSuite) TestUpdateMergesPartialBody() {
	s := ss.createSlide("before", 1, true)

	code, r := ss.do(http.MethodPut, "/v1/slides/"+s.ID, ss.adminToken, `{"title":"after","isActive":false}`)
	ss.Require().Equal(http.StatusOK, code, string(r.Error))

	var updated models.Slide
	ss.Require().NoError(json.Unmarshal(r.Data, &updated))
	ss.Require().Equal(s.ID, updated.ID)
	ss.Require().Equal("after", updated.Title)
	ss.Require().False(updated.IsActive)
	ss.Require().Equal(s.BackgroundColor, updated.BackgroundColor)
	ss.Require().Equal(s.Order, updated.Order)

	code, _ = ss.do(http.MethodPut, "/v1/slides/"+s.ID, ss.adminToken, `{"order":0}`)
	ss.Require().Equal(http.StatusBadRequest, code)

	code, _ = ss.do(http.MethodPut, "/v1/slides/missing", ss.adminToken, `{"title":"x"}`)
	ss.Require().Equal(http.StatusNotFound, code)
}

func (ss *ServerSuite) TestDeleteReturnsRecord() {
	s := ss.createSlide("gone", 1, true)

	code, r := ss.do(http.MethodDelete, "/v1/slides/"+s.ID, ss.adminToken, "")
	ss.Require().Equal(http.StatusOK, code)

	var deleted models.Slide
	ss.Require().NoError(json.Unmarshal(r.Data, &deleted))
	ss.Require().Equal(s.ID, deleted.ID)

	code, _ = ss.do(http.MethodDelete, "/v1/slides/"+s.ID, ss.adminToken, "")
	ss.Require().Equal(http.StatusNotFound, code)
}

func (ss *ServerSuite) TestUnknownCollection() {
	code, r := ss.do(http.MethodGet, "/v1/banners", "", "")
	ss.Require().Equal(http.StatusNotFound, code)
	ss.Require().False(r.Success)
}

func (ss *ServerSuite) TestAuthAndUserRoutes() {
	code, r := ss.do(http.MethodPost, "/v1/auth", "", `{"username":"admin","password":"admin-pass"}`)
	ss.Require().Equal(http.StatusOK, code)

	var tok server.AuthUserResponse
	ss.Require().NoError(json.Unmarshal(r.Data, &tok))
	ss.Require().NotEmpty(tok.Token)

	code, _ = ss.do(http.MethodPost, "/v1/auth", "", `{"username":"admin","password":"wrong"}`)
	ss.Require().Equal(http.StatusUnauthorized, code)

	code, _ = ss.do(http.MethodPost, "/v1/auth", "", `{"username":"admin"}`)
	ss.Require().Equal(http.StatusBadRequest, code)

	code, _ = ss.do(http.MethodPost, "/v1/user", ss.userToken,
		`{"username":"boss","password":"p","role":"admin"}`)
	ss.Require().Equal(http.StatusForbidden, code)

	code, _ = ss.do(http.MethodPost, "/v1/user", ss.adminToken,
		`{"username":"boss","password":"p","role":"admin"}`)
	ss.Require().Equal(http.StatusCreated, code)

	code, _ = ss.do(http.MethodPost, "/v1/user", "", `{"username":"boss","password":"p","role":"user"}`)
	ss.Require().Equal(http.StatusConflict, code)

	code, _ = ss.do(http.MethodPost, "/v1/user", "", `{"username":"x","password":"p","role":"root"}`)
	ss.Require().Equal(http.StatusBadRequest, code)
}

func TestServerSuite(t *testing.T) {
	suite.Run(t, new(ServerSuite))
}
