package formatting

import (
	"fmt"
	"strings"

	"guess-the-guild/internal/core/domain"

	"github.com/bwmarrin/discordgo"
)

const (
	colorPlaying = 0x5865F2
	colorSuccess = 0x57F287
	colorFailure = 0xED4245
	colorIdle    = 0x99AAB5

	// Discord rejects button labels longer than this.
	maxButtonLabel = 80
)

// View is a rendered game message.
type View struct {
	Content    string
	Embeds     []*discordgo.MessageEmbed
	Components []discordgo.MessageComponent
}

func (v View) ResponseData() *discordgo.InteractionResponseData {
	return &discordgo.InteractionResponseData{
		Content:    v.Content,
		Embeds:     v.Embeds,
		Components: v.Components,
	}
}

// WebhookEdit replaces every part of the message, clearing embeds and buttons the view does not have.
func (v View) WebhookEdit() *discordgo.WebhookEdit {
	content := v.Content
	embeds := v.Embeds
	if embeds == nil {
		embeds = []*discordgo.MessageEmbed{}
	}
	components := v.Components
	if components == nil {
		components = []discordgo.MessageComponent{}
	}
	return &discordgo.WebhookEdit{
		Content:    &content,
		Embeds:     &embeds,
		Components: &components,
	}
}

func RenderSnapshot(snap domain.Snapshot) View {
	v := View{Content: statusText(snap)}

	if !snap.Round.Empty() {
		switch snap.Round.Mode {
		case domain.ModePair:
			v.Embeds, v.Components = renderPair(snap)
		default:
			v.Embeds, v.Components = renderLogo(snap)
		}
	}

	if snap.Phase == domain.PhaseLoadingFailed {
		v.Components = append(v.Components, discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    "Retry",
					Style:    discordgo.PrimaryButton,
					CustomID: RetryButtonID(roundID(snap.Round)),
				},
			},
		})
	}
	return v
}

func statusText(snap domain.Snapshot) string {
	var lines []string
	if snap.NewRecord {
		lines = append(lines, "**"+MsgNewRecord(snap.Score.Record)+"**")
	}
	lines = append(lines, headline(snap))

	score := MsgScore(snap.Score)
	if snap.Round != nil && snap.Round.Difficulty != "" {
		score += " | Difficulty: **" + DifficultyLabel(snap.Round.Difficulty) + "**"
	}
	lines = append(lines, score)
	return strings.Join(lines, "\n")
}

func headline(snap domain.Snapshot) string {
	pair := snap.Round != nil && snap.Round.Mode == domain.ModePair

	switch snap.Phase {
	case domain.PhasePlaying:
		if pair {
			return MsgPairPrompt
		}
		return MsgLogoPrompt
	case domain.PhaseSucceeded:
		if pair {
			return MsgPairSuccess
		}
		return MsgLogoSuccess
	case domain.PhaseFailed:
		if pair {
			return MsgPairFailure
		}
		return MsgLogoFailure(snap.Round.Target.Name)
	default:
		if snap.Round.Empty() {
			return MsgNoGuilds
		}
		return MsgFetchFailure
	}
}

func renderLogo(snap domain.Snapshot) ([]*discordgo.MessageEmbed, []discordgo.MessageComponent) {
	round := snap.Round
	embed := &discordgo.MessageEmbed{
		Title: MsgLogoTitle,
		Color: phaseColor(snap.Phase),
		Image: &discordgo.MessageEmbedImage{URL: round.Target.ImageURL},
	}

	finished := snap.Phase.Finished()
	buttons := make([]discordgo.MessageComponent, 0, len(round.Presentation))
	for _, g := range round.Presentation {
		style := discordgo.PrimaryButton
		if finished {
			style = discordgo.SecondaryButton
			if g.ID == round.Target.ID {
				style = discordgo.SuccessButton
			}
		}
		buttons = append(buttons, discordgo.Button{
			Label:    truncate(g.Name, maxButtonLabel),
			Style:    style,
			Disabled: finished,
			CustomID: GuessButtonID(round.ID, g.ID),
		})
	}

	return []*discordgo.MessageEmbed{embed}, []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: buttons},
	}
}

func renderPair(snap domain.Snapshot) ([]*discordgo.MessageEmbed, []discordgo.MessageComponent) {
	round := snap.Round
	finished := snap.Phase.Finished()

	logoNumber := make(map[int]int, len(round.Pool))
	for k, g := range round.Pool {
		logoNumber[g.ID] = k + 1
	}

	var list strings.Builder
	for idx, g := range round.Presentation {
		fmt.Fprintf(&list, "%d. **%s** · %d %s · %s members",
			idx+1, g.Name, g.RolesCount, plural(g.RolesCount, "role"), FormatNumber(g.MemberCount))
		if idx < len(snap.Revealed) || finished {
			fmt.Fprintf(&list, " → Logo %d", logoNumber[g.ID])
		}
		list.WriteString("\n")
	}

	embeds := []*discordgo.MessageEmbed{{
		Title:       MsgPairTitle,
		Description: list.String(),
		Color:       phaseColor(snap.Phase),
	}}

	revealed := make(map[int]bool, len(snap.Revealed))
	for _, g := range snap.Revealed {
		revealed[g.ID] = true
	}

	buttons := make([]discordgo.MessageComponent, 0, len(round.Pool))
	for k, g := range round.Pool {
		label := fmt.Sprintf("Logo %d", k+1)
		embeds = append(embeds, &discordgo.MessageEmbed{
			Title: label,
			Color: phaseColor(snap.Phase),
			Image: &discordgo.MessageEmbedImage{URL: g.ImageURL},
		})

		style := discordgo.PrimaryButton
		switch {
		case revealed[g.ID] || snap.Phase == domain.PhaseSucceeded:
			style = discordgo.SuccessButton
		case finished:
			style = discordgo.SecondaryButton
		}
		buttons = append(buttons, discordgo.Button{
			Label:    label,
			Style:    style,
			Disabled: finished || revealed[g.ID],
			CustomID: GuessButtonID(round.ID, g.ID),
		})
	}

	return embeds, []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: buttons},
	}
}

func phaseColor(p domain.Phase) int {
	switch p {
	case domain.PhasePlaying:
		return colorPlaying
	case domain.PhaseSucceeded:
		return colorSuccess
	case domain.PhaseFailed:
		return colorFailure
	default:
		return colorIdle
	}
}

func roundID(r *domain.Round) string {
	if r == nil {
		return ""
	}
	return r.ID
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}

func truncate(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit-1]) + "…"
}
