package commands

import (
	"log/slog"

	"guess-the-guild/internal/adapters/discord/formatting"
	"guess-the-guild/internal/core/domain"

	"github.com/bwmarrin/discordgo"
)

const (
	CmdPlay          = "guess-the-guild"
	CmdScore         = "guess-the-guild-score"
	CmdSetDifficulty = "guess-the-guild-difficulty"

	optionDifficulty = "difficulty"
)

var adminPerms = int64(discordgo.PermissionAdministrator)

func GetApplicationCommands() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{
			Name:        CmdPlay,
			Description: "Start a new round of Guess the Guild",
			Options: []*discordgo.ApplicationCommandOption{
				difficultyOption("Difficulty of the round (defaults to the server setting)", false),
			},
		},
		{
			Name:        CmdScore,
			Description: "Show your current score and record",
		},
		{
			Name:                     CmdSetDifficulty,
			Description:              "Set the default difficulty for this server",
			DefaultMemberPermissions: &adminPerms,
			Options: []*discordgo.ApplicationCommandOption{
				difficultyOption("Default difficulty for new rounds", true),
			},
		},
	}
}

func difficultyOption(description string, required bool) *discordgo.ApplicationCommandOption {
	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(domain.Difficulties))
	for _, d := range domain.Difficulties {
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{
			Name:  formatting.DifficultyLabel(d),
			Value: string(d),
		})
	}

	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        optionDifficulty,
		Description: description,
		Required:    required,
		Choices:     choices,
	}
}

func RegisterCommands(session CommandSession, commands []*discordgo.ApplicationCommand, userID, guildID string) []*discordgo.ApplicationCommand {
	registered := make([]*discordgo.ApplicationCommand, len(commands))

	for i, cmd := range commands {
		result, err := session.ApplicationCommandCreate(userID, guildID, cmd)
		if err != nil {
			slog.Error("Cannot create command", "name", cmd.Name, "error", err)
			continue
		}
		registered[i] = result
		slog.Info("Registered command", "name", cmd.Name, "guild", guildID)
	}

	return registered
}

func CleanupCommands(session CommandSession, commands []*discordgo.ApplicationCommand, userID, guildID string) {
	for _, cmd := range commands {
		if cmd == nil {
			continue
		}
		if err := session.ApplicationCommandDelete(userID, guildID, cmd.ID); err != nil {
			slog.Error("Cannot delete command", "name", cmd.Name, "error", err)
		}
	}
}
