// Package apiclient is the web client's typed view of the REST API.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	auth "personalportal/internal/auth/model"
	checklist "personalportal/internal/checklist/model"
	picture "personalportal/internal/picture/model"
	recipe "personalportal/internal/recipe/model"
	textnote "personalportal/internal/textnote/model"
)

// StatusError is returned for any non-2xx answer the caller did not expect.
type StatusError struct {
	Method string
	Path   string
	Code   int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.Code, strings.TrimSpace(e.Body))
}

type Client struct {
	BaseURL string
	HTTP    *http.Client
	// Token, when set, supplies the bearer token sent with every request.
	Token func() string

	TextNotes  *Resource[textnote.TextNote]
	Checklists *Resource[checklist.Checklist]
	Recipes    *Resource[recipe.Recipe]
	Pictures   *Resource[picture.Picture]
}

func New(baseURL string) *Client {
	c := &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: 30 * time.Second},
	}
	c.TextNotes = &Resource[textnote.TextNote]{c: c, path: "/api/textnotes"}
	c.Checklists = &Resource[checklist.Checklist]{c: c, path: "/api/checklists"}
	c.Recipes = &Resource[recipe.Recipe]{c: c, path: "/api/recipes"}
	c.Pictures = &Resource[picture.Picture]{c: c, path: "/api/pictures"}
	return c
}

// do sends body as JSON and returns the open response. Non-2xx answers are
// turned into *StatusError unless the status is listed in allow.
func (c *Client) do(ctx context.Context, method, path string, body any, allow ...int) (*http.Response, error) {
	var rdr io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode %s body: %w", path, err)
		}
		rdr = bytes.NewReader(buf)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, rdr)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if c.Token != nil {
		if tok := c.Token(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return resp, nil
	}
	for _, code := range allow {
		if resp.StatusCode == code {
			return resp, nil
		}
	}
	defer resp.Body.Close()
	msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
	return nil, &StatusError{Method: method, Path: path, Code: resp.StatusCode, Body: string(msg)}
}

func (c *Client) call(ctx context.Context, method, path string, body, out any) error {
	resp, err := c.do(ctx, method, path, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

// Resource is one content type of the API. Every type shares the same endpoints.
type Resource[T any] struct {
	c    *Client
	path string
}

func (r *Resource[T]) list(ctx context.Context, path string) ([]T, error) {
	var out []T
	if err := r.c.call(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Resource[T]) All(ctx context.Context) ([]T, error) {
	return r.list(ctx, r.path)
}

func (r *Resource[T]) Latest(ctx context.Context, count int) ([]T, error) {
	return r.list(ctx, r.path+"/latest/"+strconv.Itoa(count))
}

func (r *Resource[T]) Search(ctx context.Context, term string) ([]T, error) {
	return r.list(ctx, r.path+"/search/"+url.PathEscape(term))
}

// ByType is served for checklists and recipes only.
func (r *Resource[T]) ByType(ctx context.Context, typ string) ([]T, error) {
	return r.list(ctx, r.path+"/type/"+url.PathEscape(typ))
}

// Get returns nil, nil when the record does not exist.
func (r *Resource[T]) Get(ctx context.Context, id uuid.UUID) (*T, error) {
	resp, err := r.c.do(ctx, http.MethodGet, r.path+"/"+id.String(), nil, http.StatusNotFound)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	var out T
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode %s: %w", r.path, err)
	}
	return &out, nil
}

func (r *Resource[T]) Create(ctx context.Context, v T) (uuid.UUID, error) {
	var id uuid.UUID
	err := r.c.call(ctx, http.MethodPost, r.path, v, &id)
	return id, err
}

func (r *Resource[T]) Update(ctx context.Context, id uuid.UUID, v T) error {
	return r.c.call(ctx, http.MethodPut, r.path+"/"+id.String(), v, nil)
}

func (r *Resource[T]) Delete(ctx context.Context, id uuid.UUID) error {
	return r.c.call(ctx, http.MethodDelete, r.path+"/"+id.String(), nil, nil)
}

// PicturesByRecipe lists the pictures attached to a recipe.
func (c *Client) PicturesByRecipe(ctx context.Context, recipeID uuid.UUID) ([]picture.Picture, error) {
	return c.Pictures.list(ctx, "/api/pictures/recipe/"+recipeID.String())
}

// ChecklistPDF downloads the rendered checklist. It returns nil, nil when
// the checklist does not exist.
func (c *Client) ChecklistPDF(ctx context.Context, id uuid.UUID) ([]byte, error) {
	resp, err := c.do(ctx, http.MethodGet, "/api/checklists/"+id.String()+"/pdf", nil, http.StatusNotFound)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	return io.ReadAll(resp.Body)
}

func (c *Client) Login(ctx context.Context, req auth.LoginRequest) (*auth.LoginResponse, error) {
	var out auth.LoginResponse
	if err := c.call(ctx, http.MethodPost, "/api/auth/login", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Validate(ctx context.Context, token string) (bool, error) {
	var ok bool
	err := c.call(ctx, http.MethodPost, "/api/auth/validate", token, &ok)
	return ok, err
}
