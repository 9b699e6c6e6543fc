package services

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/dmitrijs2005/fuellog/internal/client/models"
	"github.com/dmitrijs2005/fuellog/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/fuellog/internal/logging"
)

// Metadata keys of the persisted blobs.
const (
	KeySettings = "fuel_cfg_v1"
	KeyVehicles = "fuel_vehicles_v1"
)

// Pinger is the part of the sheet client used by TestConnection.
type Pinger interface {
	Ping(ctx context.Context) error
}

// SettingsService manages the client configuration and the vehicle list.
// Reads never fail: absent or corrupt blobs fall back to defaults.
type SettingsService interface {
	Settings(ctx context.Context) models.Settings
	// SheetsURL returns the effective endpoint URL. It matches
	// client.EndpointFunc.
	SheetsURL(ctx context.Context) string
	SetSheetsURL(ctx context.Context, url string) error
	// Reset drops the stored settings. The vehicle list is kept.
	Reset(ctx context.Context) error
	// TestConnection pings the endpoint and records the success time.
	TestConnection(ctx context.Context, p Pinger) error

	Vehicles(ctx context.Context) []string
	AddVehicle(ctx context.Context, label string) ([]string, error)
}

type settingsService struct {
	repo     metadata.Repository
	override string
	logger   logging.Logger
	now      func() time.Time
}

// NewSettingsService returns a settings store over repo. A non-empty
// urlOverride (from flags) wins over the stored URL without replacing it.
func NewSettingsService(repo metadata.Repository, urlOverride string, logger logging.Logger) SettingsService {
	if logger == nil {
		logger = logging.Nop{}
	}
	return &settingsService{
		repo:     repo,
		override: strings.TrimSpace(urlOverride),
		logger:   logger.With("module", "settings_service"),
		now:      time.Now,
	}
}

func (s *settingsService) Settings(ctx context.Context) models.Settings {
	var cfg models.Settings
	if !s.load(ctx, KeySettings, &cfg) {
		return models.Settings{}
	}
	cfg.SheetsURL = strings.TrimSpace(cfg.SheetsURL)
	return cfg
}

func (s *settingsService) SheetsURL(ctx context.Context) string {
	if s.override != "" {
		return s.override
	}
	return s.Settings(ctx).SheetsURL
}

func (s *settingsService) SetSheetsURL(ctx context.Context, url string) error {
	cfg := s.Settings(ctx)
	cfg.SheetsURL = strings.TrimSpace(url)
	return s.store(ctx, KeySettings, cfg)
}

func (s *settingsService) Reset(ctx context.Context) error {
	if err := s.repo.Delete(ctx, KeySettings); err != nil {
		return fmt.Errorf("reset settings: %w", err)
	}
	return nil
}

func (s *settingsService) TestConnection(ctx context.Context, p Pinger) error {
	if err := p.Ping(ctx); err != nil {
		return err
	}
	cfg := s.Settings(ctx)
	cfg.LastOK = s.now().UTC().Format(time.RFC3339)
	return s.store(ctx, KeySettings, cfg)
}

func (s *settingsService) Vehicles(ctx context.Context) []string {
	var list []string
	if !s.load(ctx, KeyVehicles, &list) || list == nil {
		return slices.Clone(models.DefaultVehicles)
	}
	return list
}

// AddVehicle appends a trimmed label unless it is empty or already listed,
// and returns the resulting list.
func (s *settingsService) AddVehicle(ctx context.Context, label string) ([]string, error) {
	list := s.Vehicles(ctx)
	label = strings.TrimSpace(label)
	if label == "" || slices.Contains(list, label) {
		return list, nil
	}
	list = append(list, label)
	if err := s.store(ctx, KeyVehicles, list); err != nil {
		return nil, err
	}
	return list, nil
}

// load decodes key into v and reports whether a usable value was found.
func (s *settingsService) load(ctx context.Context, key string, v any) bool {
	raw, err := s.repo.Get(ctx, key)
	if err != nil {
		s.logger.Warn(ctx, "failed to read metadata, using defaults", "key", key, "error", err)
		return false
	}
	if len(raw) == 0 {
		return false
	}
	if err := json.Unmarshal(raw, v); err != nil {
		s.logger.Warn(ctx, "corrupt metadata, using defaults", "key", key, "error", err)
		return false
	}
	return true
}

func (s *settingsService) store(ctx context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.repo.Set(ctx, key, raw); err != nil {
		return fmt.Errorf("store %s: %w", key, err)
	}
	return nil
}
