package formatting

import (
	"strings"
	"testing"

	"guess-the-guild/internal/core/domain"

	"github.com/bwmarrin/discordgo"
	"github.com/google/go-cmp/cmp"
)

var (
	guildA = domain.GuildSummary{ID: 1, Name: "Alpha", ImageURL: "https://img/a.png", RolesCount: 1, MemberCount: 1234}
	guildB = domain.GuildSummary{ID: 2, Name: "Beta", ImageURL: "https://img/b.png", RolesCount: 3, MemberCount: 12}
	guildC = domain.GuildSummary{ID: 3, Name: "Gamma", ImageURL: "https://img/c.png", RolesCount: 2, MemberCount: 5000}
)

func logoSnapshot(phase domain.Phase) domain.Snapshot {
	return domain.Snapshot{
		PlayerID: "p1",
		Round: &domain.Round{
			ID:           "r1",
			Mode:         domain.ModeLogo,
			Difficulty:   domain.DifficultyMedium,
			Pool:         []domain.GuildSummary{guildA, guildB, guildC},
			Target:       guildB,
			Presentation: []domain.GuildSummary{guildC, guildB, guildA},
		},
		Phase: phase,
		Score: domain.ScoreState{Current: 1, Record: 3},
	}
}

func pairSnapshot(phase domain.Phase, revealed ...domain.GuildSummary) domain.Snapshot {
	return domain.Snapshot{
		PlayerID: "p1",
		Round: &domain.Round{
			ID:           "r2",
			Mode:         domain.ModePair,
			Difficulty:   domain.DifficultyEasy,
			Pool:         []domain.GuildSummary{guildA, guildB, guildC},
			Target:       guildA,
			Presentation: []domain.GuildSummary{guildC, guildA, guildB},
		},
		Phase:    phase,
		Revealed: revealed,
	}
}

func buttons(t *testing.T, v View, row int) []discordgo.Button {
	t.Helper()
	if len(v.Components) <= row {
		t.Fatalf("expected at least %d component rows, got %d", row+1, len(v.Components))
	}
	ar, ok := v.Components[row].(discordgo.ActionsRow)
	if !ok {
		t.Fatalf("row %d is not an actions row", row)
	}
	var out []discordgo.Button
	for _, c := range ar.Components {
		out = append(out, c.(discordgo.Button))
	}
	return out
}

func TestRenderSnapshot_LogoPlaying(t *testing.T) {
	v := RenderSnapshot(logoSnapshot(domain.PhasePlaying))

	if !strings.Contains(v.Content, MsgLogoPrompt) {
		t.Errorf("expected prompt in content, got %q", v.Content)
	}
	if !strings.Contains(v.Content, "Difficulty: **Medium**") {
		t.Errorf("expected difficulty label in content, got %q", v.Content)
	}
	if len(v.Embeds) != 1 || v.Embeds[0].Image.URL != guildB.ImageURL {
		t.Fatalf("expected a single embed with the target logo, got %+v", v.Embeds)
	}

	got := buttons(t, v, 0)
	want := []discordgo.Button{
		{Label: "Gamma", Style: discordgo.PrimaryButton, CustomID: "gtg:guess:r1:3"},
		{Label: "Beta", Style: discordgo.PrimaryButton, CustomID: "gtg:guess:r1:2"},
		{Label: "Alpha", Style: discordgo.PrimaryButton, CustomID: "gtg:guess:r1:1"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("buttons mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderSnapshot_LogoFailed(t *testing.T) {
	v := RenderSnapshot(logoSnapshot(domain.PhaseFailed))

	if !strings.Contains(v.Content, "Wrong! The correct answer was: Beta") {
		t.Errorf("expected failure message, got %q", v.Content)
	}
	for _, b := range buttons(t, v, 0) {
		if !b.Disabled {
			t.Errorf("button %s should be disabled", b.Label)
		}
		if b.Label == "Beta" && b.Style != discordgo.SuccessButton {
			t.Error("correct answer should be highlighted")
		}
	}
}

func TestRenderSnapshot_NewRecordBanner(t *testing.T) {
	snap := logoSnapshot(domain.PhaseSucceeded)
	snap.NewRecord = true
	snap.Score = domain.ScoreState{Current: 4, Record: 4}

	v := RenderSnapshot(snap)

	if !strings.HasPrefix(v.Content, "**New record! 4 points! Congratulations!**") {
		t.Errorf("expected record banner first, got %q", v.Content)
	}
	if !strings.Contains(v.Content, MsgLogoSuccess) {
		t.Errorf("expected success message, got %q", v.Content)
	}
}

func TestRenderSnapshot_PairPlaying(t *testing.T) {
	v := RenderSnapshot(pairSnapshot(domain.PhasePlaying, guildC))

	if len(v.Embeds) != 4 {
		t.Fatalf("expected list embed plus 3 logos, got %d", len(v.Embeds))
	}

	wantList := "1. **Gamma** · 2 roles · 5k members → Logo 3\n" +
		"2. **Alpha** · 1 role · 1k members\n" +
		"3. **Beta** · 3 roles · 12 members\n"
	if diff := cmp.Diff(wantList, v.Embeds[0].Description); diff != "" {
		t.Errorf("list mismatch (-want +got):\n%s", diff)
	}
	for k, g := range []domain.GuildSummary{guildA, guildB, guildC} {
		if v.Embeds[k+1].Image.URL != g.ImageURL {
			t.Errorf("logo %d should show %s", k+1, g.Name)
		}
	}

	got := buttons(t, v, 0)
	if got[2].CustomID != "gtg:guess:r2:3" || !got[2].Disabled || got[2].Style != discordgo.SuccessButton {
		t.Errorf("revealed logo should be disabled and green, got %+v", got[2])
	}
	if got[0].Disabled || got[1].Disabled {
		t.Error("unrevealed logos should stay clickable")
	}
}

func TestRenderSnapshot_PairFailedRevealsOrder(t *testing.T) {
	v := RenderSnapshot(pairSnapshot(domain.PhaseFailed))

	if !strings.Contains(v.Content, MsgPairFailure) {
		t.Errorf("expected pair failure message, got %q", v.Content)
	}
	if strings.Count(v.Embeds[0].Description, "→ Logo") != 3 {
		t.Errorf("expected the full order to be revealed, got %q", v.Embeds[0].Description)
	}
	for _, b := range buttons(t, v, 0) {
		if !b.Disabled {
			t.Errorf("button %s should be disabled", b.Label)
		}
	}
}

func TestRenderSnapshot_LoadingFailed(t *testing.T) {
	snap := logoSnapshot(domain.PhaseLoadingFailed)
	v := RenderSnapshot(snap)

	if !strings.Contains(v.Content, MsgFetchFailure) {
		t.Errorf("expected fetch failure message, got %q", v.Content)
	}
	retry := buttons(t, v, 1)
	if len(retry) != 1 || retry[0].CustomID != "gtg:retry:r1" {
		t.Errorf("expected retry button, got %+v", retry)
	}
}

func TestRenderSnapshot_NoGuilds(t *testing.T) {
	snap := domain.Snapshot{
		Round: &domain.Round{ID: "empty", Difficulty: domain.DifficultyEasy},
		Phase: domain.PhaseLoadingFailed,
	}
	v := RenderSnapshot(snap)

	if !strings.Contains(v.Content, MsgNoGuilds) {
		t.Errorf("expected no guilds message, got %q", v.Content)
	}
	if len(v.Embeds) != 0 {
		t.Errorf("expected no embeds, got %d", len(v.Embeds))
	}
	retry := buttons(t, v, 0)
	if retry[0].CustomID != "gtg:retry:empty" {
		t.Errorf("unexpected retry id %q", retry[0].CustomID)
	}
}

func TestView_WebhookEditClearsMissingParts(t *testing.T) {
	edit := View{Content: "hi"}.WebhookEdit()

	if *edit.Content != "hi" {
		t.Errorf("unexpected content %q", *edit.Content)
	}
	if edit.Embeds == nil || len(*edit.Embeds) != 0 {
		t.Error("expected embeds to be cleared")
	}
	if edit.Components == nil || len(*edit.Components) != 0 {
		t.Error("expected components to be cleared")
	}
}

func TestTruncate(t *testing.T) {
	long := strings.Repeat("é", 100)
	got := truncate(long, maxButtonLabel)
	if len([]rune(got)) != maxButtonLabel {
		t.Errorf("expected %d runes, got %d", maxButtonLabel, len([]rune(got)))
	}
	if truncate("short", maxButtonLabel) != "short" {
		t.Error("short labels should be unchanged")
	}
}
