package ports

import (
	"context"

	"guess-the-guild/internal/core/domain"
)

type ListGuildsParams struct {
	Limit  int
	Offset int
	Sort   string
}

type GuildFetcher interface {
	ListGuilds(ctx context.Context, params ListGuildsParams) ([]domain.GuildSummary, error)
}

// KeyValueStore holds string values grouped by namespace.
type KeyValueStore interface {
	Get(ctx context.Context, namespace, key string) (string, bool, error)
	Set(ctx context.Context, namespace, key, value string) error
	Close()
}

// Notifier receives session updates produced outside of a player interaction,
// such as the next round starting after a result was shown.
type Notifier interface {
	Publish(ctx context.Context, snap domain.Snapshot) error
}
