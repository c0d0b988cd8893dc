package commands

import (
	"context"

	"guess-the-guild/internal/core/domain"

	"github.com/bwmarrin/discordgo"
)

type DiscordSession interface {
	InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse, options ...discordgo.RequestOption) error
	InteractionResponseEdit(interaction *discordgo.Interaction, newresp *discordgo.WebhookEdit, options ...discordgo.RequestOption) (*discordgo.Message, error)
	FollowupMessageCreate(interaction *discordgo.Interaction, wait bool, data *discordgo.WebhookParams, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

type CommandSession interface {
	ApplicationCommandCreate(appID, guildID string, cmd *discordgo.ApplicationCommand, options ...discordgo.RequestOption) (*discordgo.ApplicationCommand, error)
	ApplicationCommandDelete(appID, guildID, cmdID string, options ...discordgo.RequestOption) error
}

type GameService interface {
	Play(ctx context.Context, playerID string, difficulty domain.Difficulty) domain.Snapshot
	Guess(ctx context.Context, playerID, roundID string, guildID int) (domain.Snapshot, error)
	Retry(ctx context.Context, playerID, roundID string) (domain.Snapshot, error)
	Scores(ctx context.Context, playerID string) domain.ScoreState
}

// InteractionTracker remembers which message deferred updates should edit.
type InteractionTracker interface {
	Track(playerID string, i *discordgo.Interaction)
}
