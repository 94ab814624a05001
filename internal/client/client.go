// Package client talks to a running healthdash server.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"healthdash/internal/assistant"
	"healthdash/internal/form"
	"healthdash/internal/insight"
	"healthdash/internal/model"
	"healthdash/internal/stats"
)

// APIError is a non-2xx response.
type APIError struct {
	Status  int
	Message string
	Fields  []form.FieldError
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.Status, e.Message)
}

// Client is a thin JSON client for the healthdash API.
type Client struct {
	baseURL string
	http    *http.Client
	retry   RetryPolicy
}

// New creates a client for baseURL, e.g. "http://localhost:8080".
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
		retry:   DefaultRetryPolicy(),
	}
}

// WithRetry replaces the retry policy.
func (c *Client) WithRetry(p RetryPolicy) *Client {
	c.retry = p
	return c
}

// do sends a request and decodes the JSON response into out.
// GET requests are retried on network errors and 5xx responses. Other
// methods change server state and are sent exactly once.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var payload []byte
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		payload = b
	}

	retryable := method == http.MethodGet

	return Retry(ctx, c.retry, func() error {
		var rdr io.Reader
		if payload != nil {
			rdr = bytes.NewReader(payload)
		}

		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rdr)
		if err != nil {
			return Permanent(err)
		}
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := c.http.Do(req)
		if err != nil {
			if !retryable {
				return Permanent(err)
			}
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 300 {
			apiErr := &APIError{Status: resp.StatusCode, Message: resp.Status}
			var e struct {
				Error  string            `json:"error"`
				Fields []form.FieldError `json:"fields"`
			}
			if json.NewDecoder(resp.Body).Decode(&e) == nil && e.Error != "" {
				apiErr.Message = e.Error
				apiErr.Fields = e.Fields
			}
			if resp.StatusCode >= 500 && retryable {
				return apiErr
			}
			return Permanent(apiErr)
		}

		if out == nil {
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return Permanent(fmt.Errorf("decode response: %w", err))
		}
		return nil
	})
}

func (c *Client) Readings(ctx context.Context, limit int) ([]model.Reading, error) {
	var out []model.Reading
	path := "/api/readings"
	if limit > 0 {
		path += "?limit=" + fmt.Sprint(limit)
	}
	err := c.do(ctx, http.MethodGet, path, nil, &out)
	return out, err
}

// MetricStats is the stats endpoint's response.
type MetricStats struct {
	stats.Stats
	Status  string `json:"status,omitempty"`
	Insight string `json:"insight"`
}

func (c *Client) Stats(ctx context.Context, m model.Metric) (MetricStats, error) {
	var out MetricStats
	err := c.do(ctx, http.MethodGet, "/api/stats/"+url.PathEscape(string(m)), nil, &out)
	return out, err
}

func (c *Client) Summary(ctx context.Context) (insight.Summary, error) {
	var out insight.Summary
	err := c.do(ctx, http.MethodGet, "/api/summary", nil, &out)
	return out, err
}

func (c *Client) Report(ctx context.Context, days int) (stats.Report, error) {
	var out stats.Report
	path := "/api/reports"
	if days > 0 {
		path += "?days=" + fmt.Sprint(days)
	}
	err := c.do(ctx, http.MethodGet, path, nil, &out)
	return out, err
}

func (c *Client) Submit(ctx context.Context, sub form.Submission) (model.Reading, error) {
	var out model.Reading
	err := c.do(ctx, http.MethodPost, "/api/readings", sub, &out)
	return out, err
}

func (c *Client) AddHydration(ctx context.Context, amountML int) (model.Reading, error) {
	var out model.Reading
	err := c.do(ctx, http.MethodPost, "/api/readings/latest/hydration", map[string]int{"amount_ml": amountML}, &out)
	return out, err
}

func (c *Client) Ask(ctx context.Context, question string) (model.ChatMessage, error) {
	var out struct {
		Answer model.ChatMessage `json:"answer"`
	}
	err := c.do(ctx, http.MethodPost, "/api/assistant/ask", map[string]string{"question": question}, &out)
	return out.Answer, err
}

func (c *Client) CreateSession(ctx context.Context) (assistant.Session, error) {
	var out assistant.Session
	err := c.do(ctx, http.MethodPost, "/api/assistant/sessions", nil, &out)
	return out, err
}

func (c *Client) SendMessage(ctx context.Context, sessionID, content string) (model.ChatMessage, error) {
	var out model.ChatMessage
	path := "/api/assistant/sessions/" + url.PathEscape(sessionID) + "/messages"
	err := c.do(ctx, http.MethodPost, path, map[string]string{"content": content}, &out)
	return out, err
}
