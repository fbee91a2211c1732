// Package client implements store.Persistence against a remote todo server.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"reflect"
	"strconv"
	"strings"
	"time"

	"tableflip.dev/todo/pkg/store"
	"tableflip.dev/todo/pkg/todo"
)

// ErrStatus is wrapped by every error caused by an unexpected response code.
var ErrStatus = errors.New("client: unexpected status")

const rootPath = "/api/todos"

// Client talks to the /api/todos routes of a todo server.
type Client struct {
	base string
	http *http.Client

	// PollInterval paces Watch. Zero means two seconds.
	PollInterval time.Duration
}

var _ store.Persistence = (*Client)(nil)

// New returns a client for the server at endpoint.
func New(endpoint string, hc *http.Client) (*Client, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("client: parse endpoint: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("client: endpoint %q must be http or https", endpoint)
	}
	if hc == nil {
		hc = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{base: strings.TrimSuffix(u.String(), "/"), http: hc}, nil
}

func (c *Client) List(ctx context.Context) ([]*todo.Todo, error) {
	var todos []*todo.Todo
	if err := c.do(ctx, http.MethodGet, rootPath, nil, http.StatusOK, &todos); err != nil {
		return nil, err
	}
	if todos == nil {
		todos = []*todo.Todo{}
	}
	return todos, nil
}

func (c *Client) Create(ctx context.Context, f store.Fields) (*todo.Todo, error) {
	t := &todo.Todo{}
	if err := c.do(ctx, http.MethodPost, rootPath, encodeForm(f), http.StatusCreated, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (c *Client) Read(ctx context.Context, id int) (*todo.Todo, error) {
	t := &todo.Todo{}
	if err := c.do(ctx, http.MethodGet, todoPath(id), nil, http.StatusOK, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (c *Client) Update(ctx context.Context, id int, f store.Fields) (*todo.Todo, error) {
	t := &todo.Todo{}
	if err := c.do(ctx, http.MethodPut, todoPath(id), encodeForm(f), http.StatusOK, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (c *Client) Delete(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, todoPath(id), nil, http.StatusNoContent, nil)
}

func (c *Client) ToggleCompleted(ctx context.Context, id int) (*todo.Todo, error) {
	t := &todo.Todo{}
	if err := c.do(ctx, http.MethodPost, todoPath(id)+"/toggle_completed", nil, http.StatusOK, t); err != nil {
		return nil, err
	}
	return t, nil
}

// Watch polls the todo list and emits store.EventInvalidated whenever it
// differs from the previous poll.
func (c *Client) Watch(ctx context.Context) (<-chan store.Event, error) {
	last, err := c.List(ctx)
	if err != nil {
		return nil, err
	}
	interval := c.PollInterval
	if interval <= 0 {
		interval = 2 * time.Second
	}

	events := make(chan store.Event, 1)
	go func() {
		defer close(events)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				current, err := c.List(ctx)
				if err != nil {
					if ctx.Err() == nil {
						slog.Debug("client: poll failed", "error", err)
					}
					continue
				}
				if reflect.DeepEqual(current, last) {
					continue
				}
				last = current
				select {
				case events <- store.Event{Type: store.EventInvalidated}:
				default:
				}
			}
		}
	}()
	return events, nil
}

func todoPath(id int) string {
	return rootPath + "/" + strconv.Itoa(id)
}

func encodeForm(f store.Fields) url.Values {
	return url.Values{
		"title":       {f.Title},
		"day":         {f.Day},
		"month":       {f.Month},
		"year":        {f.Year},
		"description": {f.Description},
	}
}

func (c *Client) do(ctx context.Context, method, path string, form url.Values, want int, out any) error {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded; charset=UTF-8")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("client: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != want {
		return statusError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("client: decode %s %s: %w", method, path, err)
	}
	return nil
}

// statusError maps well known codes onto the store sentinels so callers can
// treat local and remote stores alike.
func statusError(resp *http.Response) error {
	var body struct {
		Error string `json:"error"`
	}
	_ = json.NewDecoder(io.LimitReader(resp.Body, 64<<10)).Decode(&body)
	msg := body.Error
	if msg == "" {
		msg = http.StatusText(resp.StatusCode)
	}

	switch resp.StatusCode {
	case http.StatusNotFound:
		return fmt.Errorf("%w %d: %w", ErrStatus, resp.StatusCode, store.ErrNotFound)
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return fmt.Errorf("%w %d: %w: %s", ErrStatus, resp.StatusCode, store.ErrInvalid, msg)
	default:
		return fmt.Errorf("%w %d: %s", ErrStatus, resp.StatusCode, msg)
	}
}
