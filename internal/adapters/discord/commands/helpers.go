package commands

import (
	"log/slog"

	"guess-the-guild/internal/adapters/discord/formatting"
	"guess-the-guild/internal/metrics"

	"github.com/bwmarrin/discordgo"
)

func respond(s DiscordSession, i *discordgo.InteractionCreate, msg string, ephemeral bool) {
	var flags discordgo.MessageFlags
	if ephemeral {
		flags = discordgo.MessageFlagsEphemeral
	}

	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: msg,
			Flags:   flags,
		},
	}); err != nil {
		slog.Error("Failed to respond to interaction", "error", err)
	}
}

func deferResponse(s DiscordSession, i *discordgo.InteractionCreate, responseType discordgo.InteractionResponseType) error {
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{Type: responseType})
}

// updateMessage replaces the message the clicked component belongs to.
func updateMessage(s DiscordSession, i *discordgo.InteractionCreate, view formatting.View) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: view.ResponseData(),
	})
	recordSent("update", err)
}

func editResponse(s DiscordSession, i *discordgo.InteractionCreate, view formatting.View) {
	_, err := s.InteractionResponseEdit(i.Interaction, view.WebhookEdit())
	recordSent("edit", err)
}

func followupEphemeral(s DiscordSession, i *discordgo.InteractionCreate, msg string) {
	if _, err := s.FollowupMessageCreate(i.Interaction, false, &discordgo.WebhookParams{
		Content: msg,
		Flags:   discordgo.MessageFlagsEphemeral,
	}); err != nil {
		slog.Error("Failed to send followup message", "error", err)
	}
}

func recordSent(kind string, err error) {
	if err != nil {
		slog.Error("Failed to send game message", "kind", kind, "error", err)
		metrics.DiscordMessagesSent.WithLabelValues(kind, "failure").Inc()
		return
	}
	metrics.DiscordMessagesSent.WithLabelValues(kind, "success").Inc()
}

func getStringOption(opts []*discordgo.ApplicationCommandInteractionDataOption, name string) string {
	for _, opt := range opts {
		if opt.Name == name {
			return opt.StringValue()
		}
	}
	return ""
}

// playerID identifies the user in both server and direct-message interactions.
func playerID(i *discordgo.InteractionCreate) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	}
	if i.User != nil {
		return i.User.ID
	}
	return ""
}
