package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"guess-the-guild/internal/adapters/discord/formatting"
	"guess-the-guild/internal/core/domain"
	"guess-the-guild/internal/core/services"
	"guess-the-guild/internal/core/services/game"

	"github.com/bwmarrin/discordgo"
)

const interactionTimeout = 30 * time.Second

type BotHandler struct {
	Games        GameService
	Settings     *services.SettingsService
	Interactions InteractionTracker
}

func ReadyHandler(session *discordgo.Session, ready *discordgo.Ready) {
	slog.Info("Guess the Guild is online!", "user", session.State.User.Username, "guilds", len(ready.Guilds))
}

// Play starts a new round for the caller. The guild listing fetch can exceed
// the initial response deadline, so the response is deferred and edited.
func (h *BotHandler) Play(s DiscordSession, i *discordgo.InteractionCreate) {
	ctx, cancel := context.WithTimeout(context.Background(), interactionTimeout)
	defer cancel()

	difficulty := h.Settings.DefaultDifficulty(ctx, i.GuildID)
	if raw := getStringOption(i.ApplicationCommandData().Options, optionDifficulty); raw != "" {
		d, err := domain.ParseDifficulty(raw)
		if err != nil {
			respond(s, i, formatting.MsgDifficultyInvalid, true)
			return
		}
		difficulty = d
	}

	player := playerID(i)
	if err := deferResponse(s, i, discordgo.InteractionResponseDeferredChannelMessageWithSource); err != nil {
		slog.Error("Failed to defer play response", "player", player, "error", err)
		return
	}
	h.Interactions.Track(player, i.Interaction)

	snap := h.Games.Play(ctx, player, difficulty)
	editResponse(s, i, formatting.RenderSnapshot(snap))
}

func (h *BotHandler) Score(s DiscordSession, i *discordgo.InteractionCreate) {
	ctx, cancel := context.WithTimeout(context.Background(), interactionTimeout)
	defer cancel()

	state := h.Games.Scores(ctx, playerID(i))
	respond(s, i, formatting.MsgScore(state), true)
}

func (h *BotHandler) SetDifficulty(s DiscordSession, i *discordgo.InteractionCreate) {
	if i.GuildID == "" {
		respond(s, i, formatting.MsgServerOnly, true)
		return
	}

	d, err := domain.ParseDifficulty(getStringOption(i.ApplicationCommandData().Options, optionDifficulty))
	if err != nil {
		respond(s, i, formatting.MsgDifficultyInvalid, true)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), interactionTimeout)
	defer cancel()

	if err := h.Settings.SetDefaultDifficulty(ctx, i.GuildID, d); err != nil {
		slog.Error("Failed to save default difficulty", "guild_id", i.GuildID, "error", err)
		respond(s, i, formatting.MsgSaveError, true)
		return
	}

	respond(s, i, formatting.MsgDifficultySet(d), false)
}

func (h *BotHandler) Guess(s DiscordSession, i *discordgo.InteractionCreate) {
	roundID, guildID, err := formatting.ParseGuessButtonID(i.MessageComponentData().CustomID)
	if err != nil {
		respond(s, i, formatting.MsgInvalidButton, true)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), interactionTimeout)
	defer cancel()

	player := playerID(i)
	snap, err := h.Games.Guess(ctx, player, roundID, guildID)
	if err != nil {
		slog.Debug("Guess rejected", "player", player, "round", roundID, "error", err)
		respond(s, i, errorMessage(err), true)
		return
	}

	h.Interactions.Track(player, i.Interaction)
	updateMessage(s, i, formatting.RenderSnapshot(snap))
}

func (h *BotHandler) Retry(s DiscordSession, i *discordgo.InteractionCreate) {
	roundID, err := formatting.ParseRetryButtonID(i.MessageComponentData().CustomID)
	if err != nil {
		respond(s, i, formatting.MsgInvalidButton, true)
		return
	}

	player := playerID(i)
	if err := deferResponse(s, i, discordgo.InteractionResponseDeferredMessageUpdate); err != nil {
		slog.Error("Failed to defer retry response", "player", player, "error", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), interactionTimeout)
	defer cancel()

	snap, err := h.Games.Retry(ctx, player, roundID)
	if err != nil {
		slog.Debug("Retry rejected", "player", player, "round", roundID, "error", err)
		followupEphemeral(s, i, errorMessage(err))
		return
	}

	h.Interactions.Track(player, i.Interaction)
	editResponse(s, i, formatting.RenderSnapshot(snap))
}

func errorMessage(err error) string {
	switch {
	case errors.Is(err, game.ErrStaleRound), errors.Is(err, game.ErrNoRoundsStarted):
		return formatting.MsgStaleRound
	case errors.Is(err, game.ErrRoundOver):
		return formatting.MsgRoundOver
	case errors.Is(err, game.ErrUnknownGuild):
		return formatting.MsgUnknownGuild
	case errors.Is(err, game.ErrNothingToRetry):
		return formatting.MsgNothingToRetry
	default:
		return formatting.MsgInvalidButton
	}
}
