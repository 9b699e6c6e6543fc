// Package handler implements the sheet endpoint's action protocol: a JSON
// body with an "action" field is POSTed and answered with {ok, ...}.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/fuellog/internal/common"
	"github.com/dmitrijs2005/fuellog/internal/logging"
	"github.com/dmitrijs2005/fuellog/internal/server/metrics"
	"github.com/dmitrijs2005/fuellog/internal/server/models"
	"github.com/dmitrijs2005/fuellog/internal/server/repositories/rows"
)

const maxBodyBytes = 4 << 20

type request struct {
	Action string           `json:"action"`
	Rows   []map[string]any `json:"rows"`
}

type response struct {
	OK      bool             `json:"ok"`
	Error   string           `json:"error,omitempty"`
	SentIDs []string         `json:"sentIds,omitempty"`
	Rows    []map[string]any `json:"rows,omitempty"`
}

type Handler struct {
	repo    rows.Repository
	metrics *metrics.Metrics
	logger  logging.Logger
	now     func() time.Time
}

func New(repo rows.Repository, m *metrics.Metrics, logger logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Nop{}
	}
	if m == nil {
		m = metrics.New()
	}
	return &Handler{
		repo:    repo,
		metrics: m,
		logger:  logger.With("module", "sheet_handler"),
		now:     time.Now,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		h.write(ctx, w, http.StatusMethodNotAllowed, response{Error: "method not allowed"})
		return
	}

	var req request
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		h.metrics.ObserveRequest("unknown", metrics.ResultError)
		h.write(ctx, w, http.StatusBadRequest, response{Error: "malformed request"})
		return
	}

	action := actionLabel(req.Action)
	resp, err := h.dispatch(ctx, req)
	switch {
	case err == nil:
		h.metrics.ObserveRequest(action, metrics.ResultOK)
		resp.OK = true
		h.write(ctx, w, http.StatusOK, resp)
	case errors.Is(err, common.ErrUnknownAction), errors.Is(err, common.ErrMissingRowID):
		h.metrics.ObserveRequest(action, metrics.ResultRejected)
		h.logger.Info(ctx, "request rejected", "action", req.Action, "error", err)
		h.write(ctx, w, http.StatusOK, response{Error: err.Error()})
	default:
		h.metrics.ObserveRequest(action, metrics.ResultError)
		h.logger.Error(ctx, "request failed", "action", req.Action, "error", err)
		h.write(ctx, w, http.StatusInternalServerError, response{Error: "internal error"})
	}
}

func (h *Handler) dispatch(ctx context.Context, req request) (response, error) {
	switch req.Action {
	case common.ActionPing:
		return response{}, nil
	case common.ActionAppendFuel:
		return h.appendFuel(ctx, req.Rows)
	case common.ActionListFuel:
		return h.listFuel(ctx)
	default:
		return response{}, fmt.Errorf("%w: %q", common.ErrUnknownAction, req.Action)
	}
}

// actionLabel keeps metric label cardinality bounded.
func actionLabel(action string) string {
	switch action {
	case common.ActionPing, common.ActionAppendFuel, common.ActionListFuel:
		return action
	default:
		return "unknown"
	}
}

func (h *Handler) appendFuel(ctx context.Context, data []map[string]any) (response, error) {
	batch := make([]models.Row, 0, len(data))
	for i, d := range data {
		row, err := h.toRow(d)
		if err != nil {
			return response{}, fmt.Errorf("row %d: %w", i, err)
		}
		batch = append(batch, row)
	}

	ids, err := h.repo.Append(ctx, batch)
	if err != nil {
		return response{}, err
	}
	h.metrics.AddStored(len(ids))
	h.logger.Debug(ctx, "rows appended", "count", len(ids))

	return response{SentIDs: ids}, nil
}

func (h *Handler) listFuel(ctx context.Context) (response, error) {
	stored, err := h.repo.List(ctx)
	if err != nil {
		return response{}, err
	}
	h.metrics.AddListed(len(stored))

	out := make([]map[string]any, 0, len(stored))
	for _, row := range stored {
		out = append(out, row.Data)
	}
	return response{Rows: out}, nil
}

// toRow takes id and ts from the row itself. A row without ts is stamped
// with the receive time.
func (h *Handler) toRow(data map[string]any) (models.Row, error) {
	id, _ := data["id"].(string)
	id = strings.TrimSpace(id)
	if id == "" {
		return models.Row{}, common.ErrMissingRowID
	}

	ts, ok := timestamp(data["ts"])
	if !ok {
		ts = h.now().UnixMilli()
		data["ts"] = ts
	}
	data["id"] = id

	return models.Row{ID: id, Timestamp: ts, Data: data}, nil
}

func timestamp(v any) (int64, bool) {
	switch t := v.(type) {
	case float64:
		return int64(t), true
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(t), 10, 64)
		return n, err == nil
	default:
		return 0, false
	}
}

func (h *Handler) write(ctx context.Context, w http.ResponseWriter, status int, resp response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.logger.Warn(ctx, "write response", "error", err)
	}
}
