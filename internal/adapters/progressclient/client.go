// Package progressclient talks to the progress HTTP API.
package progressclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"studytrack/internal/application"
	"studytrack/internal/domain"
	"studytrack/internal/logging"
	"studytrack/internal/ports"
)

// Client implements ports.ProgressClient over HTTP
type Client struct {
	baseURL string
	http    *http.Client
}

var _ ports.ProgressClient = (*Client)(nil)

// New creates a client for baseURL (e.g. http://localhost:8080)
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

type subjectsResponse struct {
	OK      bool                 `json:"ok"`
	Rows    []domain.ProgressRow `json:"rows"`
	Warning string               `json:"warning"`
}

// Subjects fetches every progress row
func (c *Client) Subjects(ctx context.Context) ([]domain.ProgressRow, error) {
	var out subjectsResponse
	if err := c.do(ctx, http.MethodGet, "/api/progress/subjects", nil, &out); err != nil {
		return nil, err
	}
	if out.Warning != "" {
		logging.Debug("progress server warning", zap.String("warning", out.Warning))
	}
	return out.Rows, nil
}

type deltaResponse struct {
	OK  bool                `json:"ok"`
	Row *domain.ProgressRow `json:"row"`
}

// ApplyDelta posts one counter change
func (c *Client) ApplyDelta(ctx context.Context, req domain.DeltaRequest) (*domain.ProgressRow, error) {
	var out deltaResponse
	if err := c.do(ctx, http.MethodPost, "/api/progress", req, &out); err != nil {
		return nil, err
	}
	return out.Row, nil
}

// Init asks the server to create and seed the progress table
func (c *Client) Init(ctx context.Context) ([]int, error) {
	var out struct {
		IDs []int `json:"ids"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/progress/init", nil, &out); err != nil {
		return nil, err
	}
	return out.IDs, nil
}

// DailySeconds returns today's accumulated time; the server decides the day
func (c *Client) DailySeconds(ctx context.Context, _ time.Time) (int, error) {
	var out struct {
		Seconds int `json:"seconds"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/time", nil, &out); err != nil {
		return 0, err
	}
	return out.Seconds, nil
}

// AddDailySeconds adds seconds to today's total
func (c *Client) AddDailySeconds(ctx context.Context, _ time.Time, seconds int) (int, error) {
	var out struct {
		Seconds int `json:"seconds"`
	}
	body := map[string]int{"seconds": seconds}
	if err := c.do(ctx, http.MethodPost, "/api/time", body, &out); err != nil {
		return 0, err
	}
	return out.Seconds, nil
}

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set(logging.RequestIDHeader, uuid.NewString())

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var eb errorBody
		_ = json.Unmarshal(data, &eb)
		msg := eb.Error
		if eb.Message != "" {
			msg = strings.TrimSpace(msg + ": " + eb.Message)
		}
		return &application.RemoteError{Status: resp.StatusCode, Message: msg}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
