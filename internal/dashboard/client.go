package dashboard

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"eventflow/internal/domain"
)

// ErrConnection is what the dashboard shows for any transport or decoding failure.
var ErrConnection = errors.New("connection failed")

// ActionError is an ok=false answer from the action endpoint.
type ActionError struct {
	Message string
}

func (e *ActionError) Error() string { return e.Message }

// SummaryFetcher fetches one snapshot.
type SummaryFetcher interface {
	Summary(ctx context.Context) (*domain.Snapshot, error)
}

// Client calls the action endpoint.
type Client struct {
	url   string
	http  *http.Client
	token string
}

// NewClient returns a Client for the action endpoint URL. A nil httpClient uses http.DefaultClient.
func NewClient(url string, httpClient *http.Client, token string) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{url: url, http: httpClient, token: token}
}

type summaryResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
	domain.Snapshot
}

// Summary runs get_summary. Transport failures are reported as ErrConnection.
func (c *Client) Summary(ctx context.Context) (*domain.Snapshot, error) {
	var resp summaryResponse
	if err := c.do(ctx, map[string]any{"action": "get_summary"}, &resp); err != nil {
		return nil, err
	}
	if !resp.OK {
		return nil, &ActionError{Message: resp.Error}
	}
	snap := resp.Snapshot
	return &snap, nil
}

func (c *Client) do(ctx context.Context, body map[string]any, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrConnection, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrConnection, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d", ErrConnection, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %v", ErrConnection, err)
	}
	return nil
}
