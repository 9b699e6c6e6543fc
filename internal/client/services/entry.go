package services

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/fuellog/internal/client/client"
	"github.com/dmitrijs2005/fuellog/internal/client/derive"
	"github.com/dmitrijs2005/fuellog/internal/client/models"
	"github.com/dmitrijs2005/fuellog/internal/client/repositories/entries"
	"github.com/dmitrijs2005/fuellog/internal/logging"
)

// Outcome is the resolved state of a save or sync attempt.
type Outcome int

const (
	// OutcomeConfirmed: the endpoint stored the data and the ledger
	// reflects it as acknowledged.
	OutcomeConfirmed Outcome = iota
	// OutcomeQueued: the endpoint was unreachable or not configured; the
	// data stays queued locally.
	OutcomeQueued
	// OutcomeRejected: the endpoint refused the data; it stays queued for a
	// manual retry.
	OutcomeRejected
	// OutcomeCancelled: the user declined the confirmation prompt.
	OutcomeCancelled
	// OutcomeNothingToSend: a sync found no queued entries.
	OutcomeNothingToSend
)

func (o Outcome) String() string {
	switch o {
	case OutcomeConfirmed:
		return "confirmed"
	case OutcomeQueued:
		return "queued"
	case OutcomeRejected:
		return "rejected"
	case OutcomeCancelled:
		return "cancelled"
	case OutcomeNothingToSend:
		return "nothing-to-send"
	default:
		return "unknown"
	}
}

// ConfirmFunc is the yes/no gate awaited before save and sync mutate state.
// A nil ConfirmFunc approves everything.
type ConfirmFunc func(ctx context.Context, prompt string) (bool, error)

// SaveResult describes a finished save.
type SaveResult struct {
	Entry   models.Entry
	Derived derive.Result
	Outcome Outcome
	// Err is the classified endpoint error behind a queued or rejected
	// outcome. It is informational: the entry is safely in the ledger.
	Err error
	// Refreshed reports whether the post-save refresh replaced the
	// acknowledged history.
	Refreshed bool
}

// SyncResult describes a finished queue flush.
type SyncResult struct {
	Outcome      Outcome
	Submitted    int
	Acknowledged int
	// Remaining is the number of entries still queued afterwards.
	Remaining int
	Err       error
}

// EntryService reconciles the local ledger with the sheet endpoint.
//
// All mutating methods are serialized: a Save, Sync or Refresh never
// interleaves its ledger writes with another one.
type EntryService interface {
	Preview(ctx context.Context, d models.Draft) (derive.Result, error)
	Save(ctx context.Context, d models.Draft, confirm ConfirmFunc) (SaveResult, error)
	Sync(ctx context.Context, confirm ConfirmFunc) (SyncResult, error)
	Refresh(ctx context.Context) error
	List(ctx context.Context) ([]models.Entry, error)
	Get(ctx context.Context, id string) (*models.Entry, error)
	QueuedCount(ctx context.Context) (int, error)
}

type entryService struct {
	mu sync.Mutex

	client   client.Client
	repo     entries.Repository
	endpoint client.EndpointFunc
	logger   logging.Logger

	now   func() time.Time
	newID derive.IDFunc
}

// NewEntryService wires the reconciler. endpoint is consulted only to skip
// pointless prompts while no URL is configured; it may be nil.
func NewEntryService(c client.Client, repo entries.Repository, endpoint client.EndpointFunc, logger logging.Logger) EntryService {
	if logger == nil {
		logger = logging.Nop{}
	}
	return &entryService{
		client:   c,
		repo:     repo,
		endpoint: endpoint,
		logger:   logger.With("module", "entry_service"),
		now:      time.Now,
		newID:    models.NewEntryID,
	}
}

func (s *entryService) Preview(ctx context.Context, d models.Draft) (derive.Result, error) {
	history, err := s.repo.All(ctx)
	if err != nil {
		return derive.Result{}, fmt.Errorf("error retrieving entries: %w", err)
	}
	d.Vehicle = strings.TrimSpace(d.Vehicle)
	return derive.Derive(d, history), nil
}

// Save validates d, asks for confirmation, commits the entry locally and then
// tries to deliver it. Endpoint failures resolve into the result, never into
// the returned error, which is reserved for validation and ledger failures.
func (s *entryService) Save(ctx context.Context, d models.Draft, confirm ConfirmFunc) (SaveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	history, err := s.repo.All(ctx)
	if err != nil {
		return SaveResult{}, fmt.Errorf("error retrieving entries: %w", err)
	}

	entry, derived, err := derive.BuildEntry(d, history, s.now(), s.newID)
	if err != nil {
		return SaveResult{}, err
	}
	res := SaveResult{Entry: entry, Derived: derived}

	ok, err := ask(ctx, confirm, savePrompt(entry))
	if err != nil {
		return res, err
	}
	if !ok {
		res.Outcome = OutcomeCancelled
		return res, nil
	}

	if err := s.repo.Append(ctx, &entry); err != nil {
		return res, fmt.Errorf("saving error: %w", err)
	}
	s.logger.Info(ctx, "entry saved locally", "id", entry.ID, "vehicle", entry.Vehicle)

	ids, err := s.client.Append(ctx, []models.Entry{entry})
	if err != nil {
		res.Outcome, res.Err = classify(err), err
		s.logger.Warn(ctx, "entry left queued", "id", entry.ID, "outcome", res.Outcome, "error", err)
		return res, nil
	}

	if _, err := s.repo.MarkAcknowledged(ctx, ids); err != nil {
		return res, fmt.Errorf("error acknowledging entry: %w", err)
	}
	if !slices.Contains(ids, entry.ID) {
		// The endpoint answered but did not list our id.
		res.Outcome = OutcomeQueued
		return res, nil
	}
	res.Entry.Acknowledged = true
	res.Outcome = OutcomeConfirmed

	if err := s.refresh(ctx); err != nil {
		s.logger.Debug(ctx, "refresh after save failed", "error", err)
	} else {
		res.Refreshed = true
	}
	return res, nil
}

// Sync flushes every queued entry in one batch and acknowledges the subset
// the endpoint confirmed. On failure the ledger is left untouched.
func (s *entryService) Sync(ctx context.Context, confirm ConfirmFunc) (SyncResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pending, err := s.repo.GetAllPending(ctx)
	if err != nil {
		return SyncResult{}, fmt.Errorf("error retrieving entries: %w", err)
	}
	res := SyncResult{Remaining: len(pending)}

	if len(pending) == 0 {
		res.Outcome = OutcomeNothingToSend
		return res, nil
	}
	if !s.configured(ctx) {
		res.Outcome = OutcomeQueued
		res.Err = fmt.Errorf("%w: %w", client.ErrUnavailable, client.ErrNotConfigured)
		return res, nil
	}

	ok, err := ask(ctx, confirm, fmt.Sprintf("Send queued entries to the sheet?\n\nCount: %d", len(pending)))
	if err != nil {
		return res, err
	}
	if !ok {
		res.Outcome = OutcomeCancelled
		return res, nil
	}

	res.Submitted = len(pending)
	ids, err := s.client.Append(ctx, pending)
	if err != nil {
		res.Outcome, res.Err = classify(err), err
		s.logger.Warn(ctx, "sync failed", "queued", len(pending), "outcome", res.Outcome, "error", err)
		return res, nil
	}

	n, err := s.repo.MarkAcknowledged(ctx, ids)
	if err != nil {
		return res, fmt.Errorf("error acknowledging entries: %w", err)
	}
	res.Acknowledged = n
	res.Remaining, err = s.repo.CountPending(ctx)
	if err != nil {
		return res, fmt.Errorf("error counting entries: %w", err)
	}
	res.Outcome = OutcomeConfirmed

	s.logger.Info(ctx, "sync done", "submitted", res.Submitted, "acknowledged", n, "remaining", res.Remaining)
	return res, nil
}

// Refresh replaces the acknowledged history with the endpoint's rows. Queued
// entries are never touched; any error leaves the ledger as it was.
func (s *entryService) Refresh(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.refresh(ctx)
}

func (s *entryService) refresh(ctx context.Context) error {
	rows, err := s.client.List(ctx)
	if err != nil {
		return err
	}
	if err := s.repo.ReplaceAcknowledged(ctx, rows); err != nil {
		return fmt.Errorf("error replacing history: %w", err)
	}
	s.logger.Debug(ctx, "history refreshed", "rows", len(rows))
	return nil
}

// List returns the ledger newest first; equal timestamps order by id,
// descending.
func (s *entryService) List(ctx context.Context) ([]models.Entry, error) {
	rows, err := s.repo.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving entries: %w", err)
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Timestamp != rows[j].Timestamp {
			return rows[i].Timestamp > rows[j].Timestamp
		}
		return rows[i].ID > rows[j].ID
	})
	return rows, nil
}

// Get returns one ledger entry or common.ErrorNotFound.
func (s *entryService) Get(ctx context.Context, id string) (*models.Entry, error) {
	return s.repo.GetByID(ctx, strings.TrimSpace(id))
}

func (s *entryService) QueuedCount(ctx context.Context) (int, error) {
	return s.repo.CountPending(ctx)
}

func (s *entryService) configured(ctx context.Context) bool {
	if s.endpoint == nil {
		return true
	}
	return strings.TrimSpace(s.endpoint(ctx)) != ""
}

func ask(ctx context.Context, confirm ConfirmFunc, prompt string) (bool, error) {
	if confirm == nil {
		return true, nil
	}
	ok, err := confirm(ctx, prompt)
	if err != nil {
		return false, fmt.Errorf("confirmation failed: %w", err)
	}
	return ok, nil
}

func classify(err error) Outcome {
	if errors.Is(err, client.ErrRejected) {
		return OutcomeRejected
	}
	return OutcomeQueued
}

func savePrompt(e models.Entry) string {
	return fmt.Sprintf("Save fuel entry?\n\n%s %s\n%s\n%s\nOdometer: %s km\nLiters: %s l",
		e.Date, e.Time, e.Place, e.Vehicle, FormatNumber(e.OdometerKm, -1), FormatNumber(e.Liters, -1))
}

// FormatNumber renders an optional value with the given number of decimals
// (-1 for the shortest form). Nil renders as "-".
func FormatNumber(v *float64, decimals int) string {
	if v == nil {
		return "-"
	}
	return strconv.FormatFloat(*v, 'f', decimals, 64)
}
