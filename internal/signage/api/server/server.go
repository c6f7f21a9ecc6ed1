package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Leopold1975/signage_control/internal/pkg/config"
	"github.com/Leopold1975/signage_control/internal/signage/api/oapi"
	"github.com/Leopold1975/signage_control/internal/signage/domain/models"
	"github.com/Leopold1975/signage_control/internal/signage/repository/userrepo"
	"github.com/Leopold1975/signage_control/internal/signage/services/authservice"
	"github.com/Leopold1975/signage_control/internal/signage/services/contentservice"
	"github.com/Leopold1975/signage_control/pkg/logger"
	"github.com/go-chi/chi/v5"
)

const maxBodySize = 1 << 20

var (
	errTokenRequired     = errors.New("admin token required")
	errForbidden         = errors.New("admin role required")
	errUnknownCollection = errors.New("unknown collection")
	errTooManyRequests   = errors.New("too many requests")
)

type Server struct {
	serv        *http.Server
	content     map[models.Collection]contentservice.API
	authService AuthService
}

type AuthService interface {
	CreateUser(context.Context, authservice.CreateUserRequest) (string, error)
	Auth(string) (bool, error)
	Login(context.Context, string, string) (string, error)
}

// New builds the Content API. content holds one type-erased service per
// collection; collections missing from it answer 404.
func New(cfg config.Config, content map[models.Collection]contentservice.API, authService AuthService,
	lg logger.Logger,
) *Server {
	s := Server{
		content:     content,
		authService: authService,
	}

	r := chi.NewRouter()
	r.Use(corsMiddleware(cfg.CORS))
	r.Use(jsonMiddleware)
	r.Get("/healthz", s.GetHealthz)

	h := oapi.HandlerWithOptions(&s, oapi.ChiServerOptions{ //nolint:exhaustruct
		BaseURL:    "/v1",
		BaseRouter: r,
		Middlewares: []oapi.MiddlewareFunc{
			rateLimitMiddleware(cfg.RateLimit),
			loggingMiddleware(lg),
		},
		ErrorHandlerFunc: func(w http.ResponseWriter, _ *http.Request, err error) {
			handleError(w, err, http.StatusBadRequest)
		},
	})

	s.serv = &http.Server{ //nolint:exhaustruct
		Addr:         cfg.Server.Addr,
		Handler:      h,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return &s
}

func (s *Server) Handler() http.Handler {
	return s.serv.Handler
}

func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error)

	go func() {
		if err := s.serv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			close(errCh)
		}
	}()

	select {
	case <-ctx.Done():
		ctxS, cancel := context.WithTimeout(context.Background(), time.Second*5) //nolint:gomnd
		defer cancel()

		if err := s.Shutdown(ctxS); err != nil { //nolint:contextcheck
			return fmt.Errorf("context error: %w server error %w", ctxS.Err(), err)
		}

		if !errors.Is(ctx.Err(), context.Canceled) {
			return fmt.Errorf("context cancelled error: %w", ctx.Err())
		}

		return nil
	case err := <-errCh:
		return fmt.Errorf("listen and serve error: %w", err)
	}
}

func (s *Server) Shutdown(ctx context.Context) error {
	ctxS, cancel := context.WithTimeout(ctx, s.serv.IdleTimeout)
	defer cancel()

	if err := s.serv.Shutdown(ctxS); err != nil {
		return fmt.Errorf("shutdown server error: %w", err)
	}

	return nil
}

// (GET /healthz).
func (s *Server) GetHealthz(w http.ResponseWriter, _ *http.Request) {
	writeData(w, http.StatusOK, HealthResponse{Status: "ok"})
}

// Активные записи коллекции
// (GET /{collection}).
func (s *Server) GetContent(w http.ResponseWriter, r *http.Request, collection oapi.Collection) {
	api, ok := s.service(w, collection)
	if !ok {
		return
	}

	records, err := api.List(r.Context(), true)
	if err != nil {
		handleError(w, fmt.Errorf("list error: %w", err), http.StatusInternalServerError)

		return
	}

	writeData(w, http.StatusOK, records)
}

// Все записи коллекции, включая неактивные
// (GET /admin/{collection}).
func (s *Server) GetAdminContent(w http.ResponseWriter, r *http.Request, collection oapi.Collection,
	params oapi.GetAdminContentParams,
) {
	if !s.requireAdmin(w, params.Token) {
		return
	}

	api, ok := s.service(w, collection)
	if !ok {
		return
	}

	records, err := api.List(r.Context(), false)
	if err != nil {
		handleError(w, fmt.Errorf("list error: %w", err), http.StatusInternalServerError)

		return
	}

	writeData(w, http.StatusOK, records)
}

// Создание записи
// (POST /{collection}).
func (s *Server) PostContent(w http.ResponseWriter, r *http.Request, collection oapi.Collection,
	params oapi.PostContentParams,
) {
	if !s.requireAdmin(w, params.Token) {
		return
	}

	api, ok := s.service(w, collection)
	if !ok {
		return
	}

	body, err := readBody(r)
	if err != nil {
		handleError(w, err, http.StatusBadRequest)

		return
	}

	rec, err := api.Create(r.Context(), body)
	if err != nil {
		handleError(w, err, contentErrorCode(err))

		return
	}

	writeData(w, http.StatusCreated, rec)
}

// Обновление записи
// (PUT /{collection}/{id}).
func (s *Server) PutContentId(w http.ResponseWriter, r *http.Request, collection oapi.Collection, //nolint:revive,stylecheck
	id string, params oapi.PutContentIdParams,
) {
	if !s.requireAdmin(w, params.Token) {
		return
	}

	api, ok := s.service(w, collection)
	if !ok {
		return
	}

	body, err := readBody(r)
	if err != nil {
		handleError(w, err, http.StatusBadRequest)

		return
	}

	rec, err := api.Update(r.Context(), id, body)
	if err != nil {
		handleError(w, err, contentErrorCode(err))

		return
	}

	writeData(w, http.StatusOK, rec)
}

// Удаление записи по идентификатору
// (DELETE /{collection}/{id}).
func (s *Server) DeleteContentId(w http.ResponseWriter, r *http.Request, collection oapi.Collection, //nolint:revive,stylecheck
	id string, params oapi.DeleteContentIdParams,
) {
	if !s.requireAdmin(w, params.Token) {
		return
	}

	api, ok := s.service(w, collection)
	if !ok {
		return
	}

	rec, err := api.Delete(r.Context(), id)
	if err != nil {
		handleError(w, err, contentErrorCode(err))

		return
	}

	writeData(w, http.StatusOK, rec)
}

// Аутентификация пользователя
// (POST /auth).
func (s *Server) PostAuth(w http.ResponseWriter, r *http.Request) {
	var b oapi.PostAuthJSONBody

	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodySize))

	err := dec.Decode(&b)
	if err != nil {
		handleError(w, fmt.Errorf("decode error: %w", err), http.StatusBadRequest)

		return
	}

	if b.Password == nil || b.Username == nil {
		handleError(w, fmt.Errorf("not enought parameters to auth user"), http.StatusBadRequest) //nolint:perfsprint

		return
	}

	token, err := s.authService.Login(r.Context(), *b.Username, *b.Password)
	if err != nil {
		handleError(w, fmt.Errorf("login error: %w", err), http.StatusUnauthorized)

		return
	}

	writeData(w, http.StatusOK, AuthUserResponse{Token: token})
}

// Создание пользователя
// (POST /user).
func (s *Server) PostUser(w http.ResponseWriter, r *http.Request, params oapi.PostUserParams) {
	var b oapi.PostUserJSONBody

	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodySize))

	err := dec.Decode(&b)
	if err != nil {
		handleError(w, fmt.Errorf("decode error: %w", err), http.StatusBadRequest)

		return
	}

	if b.Password == nil || b.Username == nil || b.Role == nil {
		handleError(w, fmt.Errorf("not enought parameters to call create user"), http.StatusBadRequest) //nolint:perfsprint

		return
	}

	req := authservice.CreateUserRequest{
		Username: *b.Username,
		Password: *b.Password,
		Role:     *b.Role,
	}

	if params.Token != nil {
		req.Token = *params.Token
	}

	token, err := s.authService.CreateUser(r.Context(), req)
	if err != nil {
		handleError(w, fmt.Errorf("create user error: %w", err), createUserErrorCode(err))

		return
	}

	writeData(w, http.StatusCreated, CreateUserResponse{Token: token})
}

func (s *Server) requireAdmin(w http.ResponseWriter, token *string) bool {
	if token == nil {
		handleError(w, errTokenRequired, http.StatusUnauthorized)

		return false
	}

	isAdmin, err := s.authService.Auth(*token)
	if err != nil {
		handleError(w, fmt.Errorf("authorization error: %w", err), http.StatusUnauthorized)

		return false
	}

	if !isAdmin {
		handleError(w, errForbidden, http.StatusForbidden)

		return false
	}

	return true
}

func (s *Server) service(w http.ResponseWriter, collection oapi.Collection) (contentservice.API, bool) {
	c, err := models.ParseCollection(string(collection))
	if err == nil {
		if api, ok := s.content[c]; ok {
			return api, true
		}
	}

	handleError(w, fmt.Errorf("%w: %s", errUnknownCollection, collection), http.StatusNotFound)

	return contentservice.API{}, false
}

func readBody(r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("read body error: %w", err)
	}

	return body, nil
}

func createUserErrorCode(err error) int {
	switch {
	case errors.Is(err, authservice.ErrUnknownRole):
		return http.StatusBadRequest
	case errors.Is(err, authservice.ErrNotAllowed):
		return http.StatusForbidden
	case errors.Is(err, userrepo.ErrAleradyExists):
		return http.StatusConflict
	default:
		return http.StatusUnauthorized
	}
}
