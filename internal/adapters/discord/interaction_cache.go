package discord

import (
	"sync"

	"github.com/bwmarrin/discordgo"
)

// interactionCache remembers the latest interaction of each player so deferred
// updates can edit the message the player is looking at.
type interactionCache struct {
	mu    sync.RWMutex
	items map[string]*discordgo.Interaction
}

func newInteractionCache() *interactionCache {
	return &interactionCache{
		items: make(map[string]*discordgo.Interaction),
	}
}

func (c *interactionCache) Get(playerID string) (*discordgo.Interaction, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	i, ok := c.items[playerID]
	return i, ok
}

func (c *interactionCache) Set(playerID string, i *discordgo.Interaction) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[playerID] = i
}

func (c *interactionCache) Invalidate(playerID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, playerID)
}
