package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/fuellog/internal/client/models"
	"github.com/dmitrijs2005/fuellog/internal/common"
	"github.com/dmitrijs2005/fuellog/internal/logging"
)

// EndpointFunc resolves the sheet endpoint URL at call time, so settings
// changes apply without rebuilding the client.
type EndpointFunc func(ctx context.Context) string

// envelope is the shared shape of every endpoint reply.
type envelope struct {
	OK      bool             `json:"ok"`
	Error   string           `json:"error,omitempty"`
	SentIDs []string         `json:"sentIds,omitempty"`
	Rows    []map[string]any `json:"rows,omitempty"`
}

// HTTPClient implements Client over the single-URL action protocol used by
// spreadsheet script endpoints: every call is a POST whose JSON body carries
// an "action" field.
type HTTPClient struct {
	endpoint EndpointFunc
	http     *http.Client
	logger   logging.Logger
	now      func() time.Time
}

// NewHTTPClient returns a client with the given per-request timeout.
func NewHTTPClient(endpoint EndpointFunc, timeout time.Duration, logger logging.Logger) *HTTPClient {
	if logger == nil {
		logger = logging.Nop{}
	}
	return &HTTPClient{
		endpoint: endpoint,
		http:     &http.Client{Timeout: timeout},
		logger:   logger.With("module", "sheet_client"),
		now:      time.Now,
	}
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	_, err := c.call(ctx, common.ActionPing, nil)
	return err
}

func (c *HTTPClient) Append(ctx context.Context, entries []models.Entry) ([]string, error) {
	resp, err := c.call(ctx, common.ActionAppendFuel, map[string]any{"rows": entries})
	if err != nil {
		return nil, err
	}
	if resp.SentIDs != nil {
		return resp.SentIDs, nil
	}

	// No echo: assume the whole batch landed.
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.ID)
	}
	return ids, nil
}

func (c *HTTPClient) List(ctx context.Context) ([]models.Entry, error) {
	resp, err := c.call(ctx, common.ActionListFuel, nil)
	if err != nil {
		return nil, err
	}

	now := c.now()
	result := make([]models.Entry, 0, len(resp.Rows))
	for _, row := range resp.Rows {
		result = append(result, NormalizeRow(row, now, models.NewEntryID))
	}
	return result, nil
}

func (c *HTTPClient) call(ctx context.Context, action string, payload map[string]any) (*envelope, error) {
	url := ""
	if c.endpoint != nil {
		url = strings.TrimSpace(c.endpoint(ctx))
	}
	if url == "" {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, ErrNotConfigured)
	}

	body := map[string]any{"action": action}
	maps.Copy(body, payload)
	raw, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encode %s request: %w", action, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrUnavailable, action, err)
	}
	req.Header.Set("Content-Type", common.RemoteContentType)

	start := c.now()
	res, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn(ctx, "sheet request failed", "action", action, "error", err)
		return nil, fmt.Errorf("%w: %s: %w", ErrUnavailable, action, err)
	}
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: read body: %w", ErrUnavailable, action, err)
	}
	if res.StatusCode < 200 || res.StatusCode > 299 {
		c.logger.Warn(ctx, "sheet request failed", "action", action, "status", res.StatusCode)
		return nil, fmt.Errorf("%w: %s: HTTP %d", ErrUnavailable, action, res.StatusCode)
	}

	var resp envelope
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("%w: %s: malformed response: %w", ErrUnavailable, action, err)
	}
	if !resp.OK {
		msg := resp.Error
		if msg == "" {
			msg = "unknown error"
		}
		return nil, &RejectedError{Action: action, Message: msg}
	}

	c.logger.Debug(ctx, "sheet request done", "action", action, "took", c.now().Sub(start))
	return &resp, nil
}
