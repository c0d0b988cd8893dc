package services

import (
	"context"
	"log/slog"

	"guess-the-guild/internal/core/domain"
	"guess-the-guild/internal/core/ports"
)

const keyDifficulty = "difficulty"

// SettingsService stores per-server preferences.
type SettingsService struct {
	store    ports.KeyValueStore
	fallback domain.Difficulty
}

func NewSettingsService(store ports.KeyValueStore, fallback domain.Difficulty) *SettingsService {
	return &SettingsService{store: store, fallback: fallback}
}

func serverNamespace(serverID string) string {
	return "server:" + serverID
}

func (s *SettingsService) SetDefaultDifficulty(ctx context.Context, serverID string, d domain.Difficulty) error {
	return s.store.Set(ctx, serverNamespace(serverID), keyDifficulty, string(d))
}

// DefaultDifficulty never fails: missing, unreadable or invalid settings fall back to the configured default.
func (s *SettingsService) DefaultDifficulty(ctx context.Context, serverID string) domain.Difficulty {
	if serverID == "" {
		return s.fallback
	}

	raw, ok, err := s.store.Get(ctx, serverNamespace(serverID), keyDifficulty)
	if err != nil {
		slog.Warn("Failed to read server difficulty", "server_id", serverID, "error", err)
		return s.fallback
	}
	if !ok {
		return s.fallback
	}

	d, err := domain.ParseDifficulty(raw)
	if err != nil {
		slog.Warn("Ignoring invalid server difficulty", "server_id", serverID, "value", raw)
		return s.fallback
	}
	return d
}
