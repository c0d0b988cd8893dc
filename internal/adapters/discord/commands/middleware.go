package commands

import (
	"log/slog"
	"runtime/debug"

	"guess-the-guild/internal/adapters/discord/formatting"

	"github.com/bwmarrin/discordgo"
)

type Middleware func(CommandHandler) CommandHandler

// Chain applies middlewares so that the first one listed runs outermost.
func Chain(h CommandHandler, mws ...Middleware) CommandHandler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}

// WithAdmin only runs next for server members with the Administrator permission.
func WithAdmin(next CommandHandler) CommandHandler {
	return func(s DiscordSession, i *discordgo.InteractionCreate) {
		if i.Member == nil || i.Member.Permissions&discordgo.PermissionAdministrator == 0 {
			respond(s, i, formatting.MsgAdminRequired, true)
			return
		}
		next(s, i)
	}
}

// WithRecover keeps a panicking handler from taking the gateway connection down.
func WithRecover(next CommandHandler) CommandHandler {
	return func(s DiscordSession, i *discordgo.InteractionCreate) {
		defer func() {
			if r := recover(); r != nil {
				slog.Error("Interaction handler panicked",
					"panic", r,
					"interaction", i.ID,
					"player", playerID(i),
					"stack", string(debug.Stack()),
				)
			}
		}()
		next(s, i)
	}
}
