package guildapi

import (
	"context"
	"log/slog"

	"guess-the-guild/internal/adapters/guildapi/api"
	"guess-the-guild/internal/core/domain"
	"guess-the-guild/internal/core/ports"
)

type Adapter struct {
	client *api.Client
}

func NewAdapter(client *api.Client) *Adapter {
	return &Adapter{client: client}
}

// ListGuilds fetches a page of guild summaries. Entries without an ID or name are dropped.
func (a *Adapter) ListGuilds(ctx context.Context, params ports.ListGuildsParams) ([]domain.GuildSummary, error) {
	guilds, err := a.client.ListGuilds(ctx, api.ListGuildsQuery{
		Limit:  params.Limit,
		Offset: params.Offset,
		Sort:   params.Sort,
	})
	if err != nil {
		slog.Error("Failed to list guilds", "offset", params.Offset, "limit", params.Limit, "error", err)
		return nil, err
	}

	summaries := make([]domain.GuildSummary, 0, len(guilds))
	for _, g := range guilds {
		if s, ok := mapGuild(g); ok {
			summaries = append(summaries, s)
		}
	}
	slog.Debug("Fetched guilds", "offset", params.Offset, "count", len(summaries))

	return summaries, nil
}

func mapGuild(g api.Guild) (domain.GuildSummary, bool) {
	if g.ID == 0 || g.Name == "" {
		return domain.GuildSummary{}, false
	}
	return domain.GuildSummary{
		ID:          g.ID,
		Name:        g.Name,
		ImageURL:    g.ImageURL,
		RolesCount:  g.RolesCount,
		MemberCount: g.MemberCount,
	}, true
}
