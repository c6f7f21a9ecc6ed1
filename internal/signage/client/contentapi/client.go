// Package contentapi is the HTTP client of the Content API used by the
// display and the admin console.
package contentapi

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/Leopold1975/signage_control/internal/pkg/config"
	"github.com/Leopold1975/signage_control/internal/signage/domain/models"
	"github.com/goccy/go-json"
)

type Client struct {
	base  string
	token string
	http  *http.Client
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   json.RawMessage `json:"error"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

func New(cfg config.Client) *Client {
	return &Client{
		base:  strings.TrimRight(cfg.APIURL, "/"),
		token: cfg.Token,
		http:  &http.Client{Timeout: cfg.Timeout}, //nolint:exhaustruct
	}
}

// WithToken returns a copy of the client that sends token on every request.
func (c *Client) WithToken(token string) *Client {
	cp := *c
	cp.token = token

	return &cp
}

func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	var resp loginResponse
	if err := c.do(ctx, http.MethodPost, "/auth", loginRequest{username, password}, &resp); err != nil {
		return "", err
	}

	return resp.Token, nil
}

// List returns the active records of a collection in display order.
func List[T any](ctx context.Context, c *Client, collection models.Collection) ([]T, error) {
	records := make([]T, 0)
	if err := c.do(ctx, http.MethodGet, "/"+string(collection), nil, &records); err != nil {
		return nil, err
	}

	return records, nil
}

// ListAll returns every record of a collection, active or not. Requires an
// admin token.
func ListAll[T any](ctx context.Context, c *Client, collection models.Collection) ([]T, error) {
	records := make([]T, 0)
	if err := c.do(ctx, http.MethodGet, "/admin/"+string(collection), nil, &records); err != nil {
		return nil, err
	}

	return records, nil
}

func Create[T any](ctx context.Context, c *Client, collection models.Collection, body interface{}) (T, error) {
	var rec T
	err := c.do(ctx, http.MethodPost, "/"+string(collection), body, &rec)

	return rec, err
}

// Update sends a partial body; the server merges it onto the stored record.
func Update[T any](ctx context.Context, c *Client, collection models.Collection, id string,
	patch interface{},
) (T, error) {
	var rec T
	err := c.do(ctx, http.MethodPut, "/"+string(collection)+"/"+id, patch, &rec)

	return rec, err
}

// Delete removes a record and returns the id the server reported as deleted.
func Delete(ctx context.Context, c *Client, collection models.Collection, id string) (string, error) {
	var deleted struct {
		ID string `json:"id"`
	}

	if err := c.do(ctx, http.MethodDelete, "/"+string(collection)+"/"+id, nil, &deleted); err != nil {
		return "", err
	}

	if deleted.ID == "" {
		return id, nil
	}

	return deleted.ID, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var r io.Reader

	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal body error: %w", err)
		}

		r = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, r)
	if err != nil {
		return fmt.Errorf("new request error: %w", err)
	}

	req.Header.Set("Accept", "application/json")

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if c.token != "" {
		req.Header.Set("token", c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %s", ErrRequestFailed, method, path, err.Error())
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("%w: %s %s: status %d: decode error: %s",
			ErrRequestFailed, method, path, resp.StatusCode, err.Error())
	}

	if !env.Success || resp.StatusCode >= http.StatusBadRequest {
		return responseError(method, path, resp.StatusCode, env.Error)
	}

	if out == nil || len(env.Data) == 0 {
		return nil
	}

	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("%w: %s %s: decode data error: %s", ErrRequestFailed, method, path, err.Error())
	}

	return nil
}

func responseError(method, path string, code int, raw json.RawMessage) error {
	if code == http.StatusBadRequest {
		var ve ValidationError
		if err := json.Unmarshal(raw, &ve); err == nil && len(ve.Fields) != 0 {
			return &ve
		}
	}

	msg := string(raw)

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		msg = s
	}

	if code == http.StatusNotFound {
		return fmt.Errorf("%w: %w: %s %s: %s", ErrRequestFailed, ErrNotFound, method, path, msg)
	}

	return fmt.Errorf("%w: %s %s: status %d: %s", ErrRequestFailed, method, path, code, msg)
}
