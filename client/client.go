// Package client is the client side of the notes API: a thin HTTP client and
// a Store that keeps a local copy of the notes in sync with the server.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"notekeeper/model"
)

// ErrNotFound is returned when the server answers 404 for a note.
var ErrNotFound = errors.New("note not found on server")

// APIError is any other non-2xx answer.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server responded %d", e.Status)
	}
	return fmt.Sprintf("server responded %d: %s", e.Status, e.Message)
}

// Draft is what the client sends to create a note; id and date are left to
// the server.
type Draft struct {
	Content   string `json:"content"`
	Important bool   `json:"important"`
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

type ClientOption func(*Client)

func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient talks to the API mounted at baseURL + "/api/notes"
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/") + "/api/notes",
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) GetAll(ctx context.Context) ([]model.Note, error) {
	var notes []model.Note
	if err := c.do(ctx, http.MethodGet, c.baseURL, nil, &notes); err != nil {
		return nil, err
	}
	return notes, nil
}

func (c *Client) Get(ctx context.Context, id string) (model.Note, error) {
	var note model.Note
	err := c.do(ctx, http.MethodGet, c.noteURL(id), nil, &note)
	return note, err
}

func (c *Client) Create(ctx context.Context, draft Draft) (model.Note, error) {
	var note model.Note
	err := c.do(ctx, http.MethodPost, c.baseURL, draft, &note)
	return note, err
}

// Update sends the whole changed note; the server only applies the fields
// it allows to change.
func (c *Client) Update(ctx context.Context, id string, changed model.Note) (model.Note, error) {
	var note model.Note
	err := c.do(ctx, http.MethodPut, c.noteURL(id), changed, &note)
	return note, err
}

func (c *Client) Delete(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, c.noteURL(id), nil, nil)
}

func (c *Client) noteURL(id string) string {
	return c.baseURL + "/" + url.PathEscape(id)
}

func (c *Client) do(ctx context.Context, method, target string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, target, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		var apiErr struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		return &APIError{Status: resp.StatusCode, Message: apiErr.Error}
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
