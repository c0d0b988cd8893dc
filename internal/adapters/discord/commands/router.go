package commands

import (
	"log/slog"

	"guess-the-guild/internal/adapters/discord/formatting"

	"github.com/bwmarrin/discordgo"
)

type CommandHandler func(s DiscordSession, i *discordgo.InteractionCreate)

type Router struct {
	routes     map[string]CommandHandler
	components map[string]CommandHandler
}

func NewRouter() *Router {
	slog.Info("Router initialized")
	return &Router{
		routes:     make(map[string]CommandHandler),
		components: make(map[string]CommandHandler),
	}
}

func (r *Router) Register(name string, handler CommandHandler) {
	r.routes[name] = handler
}

// RegisterComponent routes message components whose custom ID starts with route.
func (r *Router) RegisterComponent(route string, handler CommandHandler) {
	r.components[route] = handler
}

func (r *Router) Handle(s DiscordSession, i *discordgo.InteractionCreate) {
	switch {
	case isCommandInteraction(i.Type):
		name := i.ApplicationCommandData().Name
		slog.Info("Router received interaction", "type", i.Type, "name", name)

		handler, ok := r.routes[name]
		if !ok {
			slog.Warn("No handler found for command", "name", name)
			return
		}
		handler(s, i)

	case i.Type == discordgo.InteractionMessageComponent:
		customID := i.MessageComponentData().CustomID
		slog.Debug("Router received component", "custom_id", customID)

		handler, ok := r.components[formatting.Route(customID)]
		if !ok {
			slog.Warn("No handler found for component", "custom_id", customID)
			return
		}
		handler(s, i)
	}
}

func (r *Router) HandleFunc() func(*discordgo.Session, *discordgo.InteractionCreate) {
	return func(s *discordgo.Session, i *discordgo.InteractionCreate) {
		r.Handle(s, i)
	}
}

func isCommandInteraction(t discordgo.InteractionType) bool {
	return t == discordgo.InteractionApplicationCommand
}
