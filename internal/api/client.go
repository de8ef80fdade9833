package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"retrochess/internal/logging"
)

// DefaultTimeout bounds every request made by a Client.
const DefaultTimeout = 10 * time.Second

// Client talks to the chess backend
type Client struct {
	baseURL string
	http    *http.Client
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout sets the per-request timeout
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		hc := *c.http
		hc.Timeout = d
		c.http = &hc
	}
}

// New creates a client for the backend at baseURL. Trailing slashes are ignored.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the backend address requests are sent to
func (c *Client) BaseURL() string { return c.baseURL }

// GetState fetches the current board and side to move
func (c *Client) GetState(ctx context.Context) (GameState, error) {
	var st GameState
	err := c.getJSON(ctx, "/state", &st)
	return st, err
}

// GetHistory fetches the chronological move history
func (c *Client) GetHistory(ctx context.Context) ([]HistoryEntry, error) {
	var resp historyResponse
	if err := c.getJSON(ctx, "/history", &resp); err != nil {
		return nil, err
	}
	if resp.History == nil {
		return []HistoryEntry{}, nil
	}
	return resp.History, nil
}

// SubmitMove posts a move. The reply is whatever the backend sends back.
func (c *Client) SubmitMove(ctx context.Context, m Move) (any, error) {
	res, err := c.request(ctx, http.MethodPost, "/move", m)
	if err != nil {
		return nil, err
	}
	return res.payload, nil
}

// Restart resets the game to the initial position
func (c *Client) Restart(ctx context.Context) (any, error) {
	res, err := c.request(ctx, http.MethodPost, "/restart", nil)
	if err != nil {
		return nil, err
	}
	return res.payload, nil
}

// Refresh reads state and history concurrently. The snapshot is only returned
// when both reads succeed.
func (c *Client) Refresh(ctx context.Context) (Snapshot, error) {
	var snap Snapshot
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		st, err := c.GetState(gctx)
		snap.State = st
		return err
	})
	g.Go(func() error {
		hist, err := c.GetHistory(gctx)
		snap.History = hist
		return err
	})
	if err := g.Wait(); err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}

type response struct {
	status  int
	raw     []byte
	payload any
}

func (c *Client) getJSON(ctx context.Context, path string, v any) error {
	res, err := c.request(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(res.raw, v); err != nil {
		return &Error{
			Message: fmt.Sprintf("GET %s: invalid response: %v", path, err),
			Status:  res.status,
			Payload: res.payload,
			cause:   err,
		}
	}
	return nil
}

func (c *Client) request(ctx context.Context, method, path string, body any) (*response, error) {
	op := method + " " + path

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, transportError(op, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, transportError(op, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		logging.Debugf("%s failed after %s: %v", op, time.Since(start), err)
		return nil, transportError(op, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, transportError(op, err)
	}
	logging.Debugf("%s -> %d in %s", op, resp.StatusCode, time.Since(start))

	res := &response{
		status:  resp.StatusCode,
		raw:     raw,
		payload: decodePayload(resp.Header.Get("Content-Type"), raw),
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, statusError(resp.StatusCode, res.payload)
	}
	return res, nil
}

// decodePayload returns the parsed JSON body for JSON responses and the text
// otherwise. A JSON response that does not parse yields nil.
func decodePayload(contentType string, raw []byte) any {
	if !strings.Contains(contentType, "application/json") {
		return string(raw)
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil
	}
	return v
}
