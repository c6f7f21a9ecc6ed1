package contentapi_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Leopold1975/signage_control/internal/pkg/config"
	"github.com/Leopold1975/signage_control/internal/signage/client/contentapi"
	"github.com/Leopold1975/signage_control/internal/signage/domain/models"
	"github.com/stretchr/testify/require"
)

type recorded struct {
	method string
	path   string
	token  string
	body   string
}

func newClient(t *testing.T, h func(w http.ResponseWriter, r *http.Request)) (*contentapi.Client, *recorded) {
	t.Helper()

	rec := &recorded{}
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		*rec = recorded{method: r.Method, path: r.URL.Path, token: r.Header.Get("token"), body: string(b)}

		w.Header().Set("Content-Type", "application/json")
		h(w, r)
	}))
	t.Cleanup(ts.Close)

	c := contentapi.New(config.Client{APIURL: ts.URL + "/v1/", Timeout: time.Second}) //nolint:exhaustruct

	return c, rec
}

func reply(code int, body string) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(code)
		io.WriteString(w, body) //nolint:errcheck
	}
}

func TestList(t *testing.T) {
	c, rec := newClient(t, reply(http.StatusOK,
		`{"success":true,"data":[{"id":"R1","type":"Deposit","rate":"8%","period":"1y","isActive":true}]}`))

	rates, err := contentapi.List[models.InterestRate](context.Background(), c, models.CollectionRates)
	require.NoError(t, err)
	require.Len(t, rates, 1)
	require.Equal(t, "R1", rates[0].ID)
	require.Equal(t, http.MethodGet, rec.method)
	require.Equal(t, "/v1/rates", rec.path)
	require.Empty(t, rec.token)
}

func TestListAllSendsToken(t *testing.T) {
	c, rec := newClient(t, reply(http.StatusOK, `{"success":true,"data":[]}`))

	news, err := contentapi.ListAll[models.NewsItem](context.Background(), c.WithToken("tkn"), models.CollectionNews)
	require.NoError(t, err)
	require.Empty(t, news)
	require.NotNil(t, news)
	require.Equal(t, "/v1/admin/news", rec.path)
	require.Equal(t, "tkn", rec.token)
}

func TestCreateAndUpdate(t *testing.T) {
	c, rec := newClient(t, reply(http.StatusCreated,
		`{"success":true,"data":{"id":"E1","currency":"Euro","code":"EUR","buy":1,"sell":2,"isActive":true}}`))
	ctx := context.Background()

	e, err := contentapi.Create[models.ExchangeRate](ctx, c, models.CollectionExchangeRates,
		map[string]interface{}{"currency": "Euro"})
	require.NoError(t, err)
	require.Equal(t, "E1", e.ID)
	require.Equal(t, http.MethodPost, rec.method)
	require.Equal(t, "/v1/exchange-rates", rec.path)
	require.JSONEq(t, `{"currency":"Euro"}`, rec.body)

	_, err = contentapi.Update[models.ExchangeRate](ctx, c, models.CollectionExchangeRates, "E1",
		map[string]bool{"isActive": false})
	require.NoError(t, err)
	require.Equal(t, http.MethodPut, rec.method)
	require.Equal(t, "/v1/exchange-rates/E1", rec.path)
}

func TestDeleteReturnsID(t *testing.T) {
	c, rec := newClient(t, reply(http.StatusOK, `{"success":true,"data":{"id":"S2","title":"gone"}}`))

	id, err := contentapi.Delete(context.Background(), c, models.CollectionSlides, "S2")
	require.NoError(t, err)
	require.Equal(t, "S2", id)
	require.Equal(t, http.MethodDelete, rec.method)
	require.Equal(t, "/v1/slides/S2", rec.path)
}

func TestValidationError(t *testing.T) {
	c, _ := newClient(t, reply(http.StatusBadRequest, `{"success":false,"error":{"message":"validation failed",
		"fields":[{"field":"title","tag":"required","message":"title is required"}]}}`))

	_, err := contentapi.Create[models.Slide](context.Background(), c, models.CollectionSlides, map[string]string{})

	var ve *contentapi.ValidationError
	require.ErrorAs(t, err, &ve)
	require.Len(t, ve.Fields, 1)
	require.Equal(t, "title", ve.Fields[0].Field)
	require.Contains(t, ve.Error(), "title is required")
}

func TestRequestFailures(t *testing.T) {
	ctx := context.Background()

	c, _ := newClient(t, reply(http.StatusNotFound, `{"success":false,"error":"record not found"}`))
	_, err := contentapi.Delete(ctx, c, models.CollectionSlides, "nope")
	require.ErrorIs(t, err, contentapi.ErrNotFound)
	require.ErrorIs(t, err, contentapi.ErrRequestFailed)

	c, _ = newClient(t, reply(http.StatusUnauthorized, `{"success":false,"error":"admin token required"}`))
	_, err = contentapi.ListAll[models.Slide](ctx, c, models.CollectionSlides)
	require.ErrorIs(t, err, contentapi.ErrRequestFailed)
	require.Contains(t, err.Error(), "admin token required")

	c, _ = newClient(t, reply(http.StatusBadGateway, `<html>bad gateway</html>`))
	_, err = contentapi.List[models.Slide](ctx, c, models.CollectionSlides)
	require.ErrorIs(t, err, contentapi.ErrRequestFailed)

	var ve *contentapi.ValidationError
	require.False(t, errors.As(err, &ve))

	c = contentapi.New(config.Client{APIURL: "http://127.0.0.1:1", Timeout: time.Second}) //nolint:exhaustruct
	_, err = contentapi.List[models.Slide](ctx, c, models.CollectionSlides)
	require.ErrorIs(t, err, contentapi.ErrRequestFailed)
}

func TestLogin(t *testing.T) {
	c, rec := newClient(t, reply(http.StatusOK, `{"success":true,"data":{"token":"jwt"}}`))

	token, err := c.Login(context.Background(), "admin", "pw")
	require.NoError(t, err)
	require.Equal(t, "jwt", token)
	require.Equal(t, "/v1/auth", rec.path)
	require.JSONEq(t, `{"username":"admin","password":"pw"}`, rec.body)
}
