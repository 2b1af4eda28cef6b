package slack

import (
	"fmt"
	"strings"

	"github.com/mauv0809/court-queue/internal/history"
	"github.com/mauv0809/court-queue/internal/notifier"
	"github.com/mauv0809/court-queue/internal/session"
	"github.com/slack-go/slack"
)

func bulletList(names []string) string {
	lines := make([]string, 0, len(names))
	for _, name := range names {
		lines = append(lines, fmt.Sprintf("• %s", name))
	}
	return strings.Join(lines, "\n")
}

func plainSection(text string) *slack.SectionBlock {
	return slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", text, true, false), nil, nil)
}

// formatCourtCall creates the message sending players to a court.
func formatCourtCall(call notifier.CourtCall) slack.Message {
	blocks := []slack.Block{
		slack.NewHeaderBlock(slack.NewTextBlockObject("plain_text", fmt.Sprintf("🏸 Court %d is ready! 🏸", call.CourtID), true, false)),
	}
	if len(call.Players) > 0 {
		blocks = append(blocks, plainSection("Players:\n"+bulletList(call.Players)))
	}
	return slack.NewBlockMessage(blocks...)
}

// formatCourtRelease creates the message for a finished game.
func formatCourtRelease(release notifier.CourtRelease) slack.Message {
	blocks := []slack.Block{
		slack.NewHeaderBlock(slack.NewTextBlockObject("plain_text", fmt.Sprintf("🏸 Game finished on court %d", release.CourtID), true, false)),
		plainSection("Back in the queue:\n" + bulletList(release.Released)),
	}
	if len(release.Next) > 0 {
		next := slack.NewTextBlockObject("plain_text", "Up next: "+strings.Join(release.Next, ", "), true, false)
		blocks = append(blocks, slack.NewContextBlock("", next))
	}
	return slack.NewBlockMessage(blocks...)
}

// formatPricing creates the message with what each player owes.
func formatPricing(mode history.PriceMode, records []history.Record) slack.Message {
	blocks := []slack.Block{
		slack.NewHeaderBlock(slack.NewTextBlockObject("plain_text", "💰 Session prices", true, false)),
	}
	if len(records) == 0 {
		blocks = append(blocks, plainSection("No players in the history yet."))
		return slack.NewBlockMessage(blocks...)
	}

	var sb strings.Builder
	for _, r := range records {
		price := "-"
		if r.Price != nil {
			price = *r.Price
		}
		fmt.Fprintf(&sb, "*%s* (%s): %d games, %.2f shuttlecocks, *%s*\n", r.Name, r.Rank, r.GamesPlayed, r.FeatherCount, price)
	}
	blocks = append(blocks,
		slack.NewSectionBlock(slack.NewTextBlockObject("mrkdwn", sb.String(), false, false), nil, nil),
		slack.NewContextBlock("", slack.NewTextBlockObject("plain_text", fmt.Sprintf("Mode: %s", mode), true, false)),
	)
	return slack.NewBlockMessage(blocks...)
}

// FormatQueueResponse creates the slash command reply listing the queue and courts.
func (s *Notifier) FormatQueueResponse(snap session.Snapshot) (any, error) {
	blocks := []slack.Block{
		slack.NewHeaderBlock(slack.NewTextBlockObject("plain_text", "🏸 Waiting queue", true, false)),
	}
	if len(snap.Queue) == 0 {
		blocks = append(blocks, plainSection("Nobody is waiting."))
	} else {
		var sb strings.Builder
		for _, e := range snap.Queue {
			fmt.Fprintf(&sb, "%d. *%s* (%s) %d games\n", e.Position, e.Name, e.Rank, e.Stats.Completed)
		}
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("mrkdwn", sb.String(), false, false), nil, nil))
	}

	var courts []slack.MixedElement
	for _, c := range snap.Courts {
		names := make([]string, 0, len(c.Players))
		for _, p := range c.Players {
			names = append(names, p.Name)
		}
		text := fmt.Sprintf("Court %d: free", c.ID)
		if len(names) > 0 {
			text = fmt.Sprintf("Court %d: %s", c.ID, strings.Join(names, ", "))
		}
		courts = append(courts, slack.NewTextBlockObject("plain_text", text, true, false))
	}
	if len(courts) > 0 {
		blocks = append(blocks, slack.NewContextBlock("", courts...))
	}

	msg := slack.NewBlockMessage(blocks...)
	msg.ResponseType = slack.ResponseTypeEphemeral
	return msg, nil
}
