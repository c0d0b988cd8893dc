package discord

import (
	"context"
	"errors"
	"log/slog"

	"guess-the-guild/internal/adapters/discord/formatting"
	"guess-the-guild/internal/core/domain"
	"guess-the-guild/internal/metrics"

	"github.com/bwmarrin/discordgo"
)

var ErrNoInteraction = errors.New("no interaction to update")

type DiscordSession interface {
	InteractionResponseEdit(interaction *discordgo.Interaction, newresp *discordgo.WebhookEdit, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// Publisher pushes deferred game updates to Discord by editing the player's
// last game message.
type Publisher struct {
	session DiscordSession
	cache   *interactionCache
}

func NewPublisher(session DiscordSession) *Publisher {
	return &Publisher{
		session: session,
		cache:   newInteractionCache(),
	}
}

// Track records the interaction whose message shows the player's game.
func (p *Publisher) Track(playerID string, i *discordgo.Interaction) {
	p.cache.Set(playerID, i)
}

// Forget drops the tracked interaction of a player whose session was evicted.
func (p *Publisher) Forget(playerID string) {
	p.cache.Invalidate(playerID)
}

func (p *Publisher) Publish(ctx context.Context, snap domain.Snapshot) error {
	interaction, ok := p.cache.Get(snap.PlayerID)
	if !ok {
		return ErrNoInteraction
	}

	view := formatting.RenderSnapshot(snap)
	if _, err := p.session.InteractionResponseEdit(interaction, view.WebhookEdit(), discordgo.WithContext(ctx)); err != nil {
		slog.Error("Failed to edit game message", "player", snap.PlayerID, "error", err)
		p.cache.Invalidate(snap.PlayerID)
		metrics.DiscordMessagesSent.WithLabelValues("deferred", "failure").Inc()
		return err
	}

	metrics.DiscordMessagesSent.WithLabelValues("deferred", "success").Inc()
	return nil
}
