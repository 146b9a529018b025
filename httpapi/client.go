package httpapi

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/UniQw/longtask"
	"github.com/google/uuid"
)

// StatusError is returned for unexpected HTTP statuses.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("httpapi: unexpected status %d: %s", e.Code, e.Message)
}

// Client starts jobs and polls their state over HTTP.
type Client struct {
	base    string
	hc      *http.Client
	encoder longtask.Encoder
}

// NewClient creates a client for the server at baseURL. A nil hc uses http.DefaultClient.
func NewClient(baseURL string, hc *http.Client) *Client {
	if hc == nil {
		hc = http.DefaultClient
	}
	return &Client{base: strings.TrimRight(baseURL, "/"), hc: hc, encoder: &longtask.JSONEncoder{}}
}

// Start submits a job of the given kind and returns the task identifier.
func (c *Client) Start(ctx context.Context, kind string, payload any) (uuid.UUID, error) {
	data, err := c.encoder.Encode(payload)
	if err != nil {
		return uuid.Nil, err
	}
	var out Accepted
	if err := c.do(ctx, http.MethodPost, "/jobs/"+kind, data, http.StatusAccepted, &out); err != nil {
		return uuid.Nil, err
	}
	return out.ID, nil
}

// Status polls a task once. It returns ErrTaskNotFound for unknown,
// collected and expired tasks. A Done status is only delivered once.
func (c *Client) Status(ctx context.Context, id uuid.UUID) (longtask.TaskStatus, error) {
	var st longtask.TaskStatus
	err := c.do(ctx, http.MethodGet, "/tasks/"+id.String(), nil, http.StatusOK, &st)
	return st, err
}

// Wait polls every interval until the task is done and returns its outcome.
func (c *Client) Wait(ctx context.Context, id uuid.UUID, interval time.Duration) (longtask.Outcome, error) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		st, err := c.Status(ctx, id)
		if err != nil {
			return longtask.Outcome{}, err
		}
		if st.IsDone() {
			return st.Result, nil
		}
		select {
		case <-ctx.Done():
			return longtask.Outcome{}, ctx.Err()
		case <-ticker.C:
		}
	}
}

// Stats returns the server's pending and completed counts.
func (c *Client) Stats(ctx context.Context) (Stats, error) {
	var out Stats
	err := c.do(ctx, http.MethodGet, "/stats", nil, http.StatusOK, &out)
	return out, err
}

func (c *Client) do(ctx context.Context, method, path string, body []byte, want int, out any) error {
	var rd io.Reader
	if body != nil {
		rd = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, rd)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.hc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode == want {
		return c.encoder.Decode(raw, out)
	}

	var eb ErrorBody
	_ = c.encoder.Decode(raw, &eb)
	if resp.StatusCode == http.StatusNotFound && strings.HasPrefix(path, "/tasks/") {
		return longtask.ErrTaskNotFound
	}
	return &StatusError{Code: resp.StatusCode, Message: eb.Error}
}
