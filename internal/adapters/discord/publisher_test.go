package discord

import (
	"context"
	"errors"
	"strings"
	"testing"

	"guess-the-guild/internal/core/domain"

	"github.com/bwmarrin/discordgo"
)

type mockDiscordSession struct {
	interactionResponseEditFunc func(interaction *discordgo.Interaction, edit *discordgo.WebhookEdit) (*discordgo.Message, error)
}

func (m *mockDiscordSession) InteractionResponseEdit(interaction *discordgo.Interaction, edit *discordgo.WebhookEdit, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	if m.interactionResponseEditFunc != nil {
		return m.interactionResponseEditFunc(interaction, edit)
	}
	return &discordgo.Message{}, nil
}

func testSnapshot(playerID string) domain.Snapshot {
	g := domain.GuildSummary{ID: 1, Name: "Alpha", ImageURL: "https://img/a.png"}
	return domain.Snapshot{
		PlayerID: playerID,
		Round: &domain.Round{
			ID:           "r1",
			Mode:         domain.ModeLogo,
			Difficulty:   domain.DifficultyEasy,
			Pool:         []domain.GuildSummary{g},
			Target:       g,
			Presentation: []domain.GuildSummary{g},
		},
		Phase: domain.PhasePlaying,
		Score: domain.ScoreState{Current: 2, Record: 2},
	}
}

func TestNewPublisher(t *testing.T) {
	publisher := NewPublisher(&mockDiscordSession{})

	if publisher.session == nil {
		t.Error("Expected session to be set")
	}
	if publisher.cache == nil {
		t.Error("Expected interaction cache to be initialized")
	}
}

func TestPublisher_Publish(t *testing.T) {
	var editedInteraction *discordgo.Interaction
	var edit *discordgo.WebhookEdit

	session := &mockDiscordSession{
		interactionResponseEditFunc: func(interaction *discordgo.Interaction, e *discordgo.WebhookEdit) (*discordgo.Message, error) {
			editedInteraction = interaction
			edit = e
			return &discordgo.Message{ID: "msg-1"}, nil
		},
	}

	publisher := NewPublisher(session)
	interaction := &discordgo.Interaction{ID: "interaction-1", Token: "token"}
	publisher.Track("player-1", interaction)

	if err := publisher.Publish(context.Background(), testSnapshot("player-1")); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if editedInteraction != interaction {
		t.Error("Expected the tracked interaction to be edited")
	}
	if edit == nil || edit.Content == nil || !strings.Contains(*edit.Content, "Score: **2**") {
		t.Errorf("Expected rendered content, got %+v", edit)
	}
	if edit.Embeds == nil || len(*edit.Embeds) != 1 {
		t.Error("Expected the logo embed to be sent")
	}
}

func TestPublisher_Publish_LatestInteractionWins(t *testing.T) {
	var edited string
	session := &mockDiscordSession{
		interactionResponseEditFunc: func(interaction *discordgo.Interaction, e *discordgo.WebhookEdit) (*discordgo.Message, error) {
			edited = interaction.ID
			return &discordgo.Message{}, nil
		},
	}

	publisher := NewPublisher(session)
	publisher.Track("player-1", &discordgo.Interaction{ID: "first"})
	publisher.Track("player-1", &discordgo.Interaction{ID: "second"})

	if err := publisher.Publish(context.Background(), testSnapshot("player-1")); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if edited != "second" {
		t.Errorf("Expected latest interaction to be edited, got %s", edited)
	}
}

func TestPublisher_Publish_UnknownPlayer(t *testing.T) {
	called := false
	session := &mockDiscordSession{
		interactionResponseEditFunc: func(interaction *discordgo.Interaction, e *discordgo.WebhookEdit) (*discordgo.Message, error) {
			called = true
			return nil, nil
		},
	}

	publisher := NewPublisher(session)
	err := publisher.Publish(context.Background(), testSnapshot("stranger"))

	if !errors.Is(err, ErrNoInteraction) {
		t.Errorf("Expected ErrNoInteraction, got %v", err)
	}
	if called {
		t.Error("No edit should be sent without a tracked interaction")
	}
}

func TestPublisher_Publish_EditErrorInvalidatesCache(t *testing.T) {
	session := &mockDiscordSession{
		interactionResponseEditFunc: func(interaction *discordgo.Interaction, e *discordgo.WebhookEdit) (*discordgo.Message, error) {
			return nil, errors.New("unknown webhook")
		},
	}

	publisher := NewPublisher(session)
	publisher.Track("player-1", &discordgo.Interaction{ID: "expired"})

	if err := publisher.Publish(context.Background(), testSnapshot("player-1")); err == nil {
		t.Fatal("Expected error when edit fails")
	}
	if _, ok := publisher.cache.Get("player-1"); ok {
		t.Error("Expected failed interaction to be evicted")
	}
}

func TestInteractionCache(t *testing.T) {
	cache := newInteractionCache()

	if _, ok := cache.Get("p"); ok {
		t.Error("Expected empty cache")
	}

	i := &discordgo.Interaction{ID: "1"}
	cache.Set("p", i)
	if got, ok := cache.Get("p"); !ok || got != i {
		t.Error("Expected stored interaction")
	}

	cache.Invalidate("p")
	if _, ok := cache.Get("p"); ok {
		t.Error("Expected interaction to be removed")
	}
}

func TestPublisher_Forget(t *testing.T) {
	publisher := NewPublisher(&mockDiscordSession{})
	publisher.Track("player-1", &discordgo.Interaction{ID: "1"})

	publisher.Forget("player-1")

	if err := publisher.Publish(context.Background(), testSnapshot("player-1")); !errors.Is(err, ErrNoInteraction) {
		t.Errorf("Expected ErrNoInteraction after forget, got %v", err)
	}
}
