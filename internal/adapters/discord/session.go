package discord

import (
	"fmt"

	"guess-the-guild/internal/config"

	"github.com/bwmarrin/discordgo"
)

// Game traffic only needs interactions.
const (
	gatewayIntents = discordgo.IntentsGuilds
	maxRestRetries = 2
)

// NewSession builds a bot session from the configured token. The gateway
// connection is opened later by the caller.
func NewSession(cfg *config.Config) (*discordgo.Session, error) {
	session, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("creating discord session: %w", err)
	}

	session.Identify.Intents = gatewayIntents
	session.ShouldRetryOnRateLimit = true
	session.MaxRestRetries = maxRestRetries

	return session, nil
}
