package notify

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gameradar/radar/pkg/httputil"
	"github.com/gameradar/radar/pkg/logger"

	"github.com/gameradar/radar/internal/contracts"
)

// Discord allows at most this many embeds per webhook message; longer
// digests are chunked.
const maxEmbedsPerMessage = 10

const (
	colorTop      = 0xF1C40F // gold
	colorRegular  = 0x3498DB // blue
	colorDegraded = 0x95A5A6 // grey
)

// Notifier delivers run digests to a Discord webhook. Delivery failures are
// logged and returned but the caller treats them as non-fatal: the scan
// already succeeded.
type Notifier struct {
	http *httputil.Client
	log  *logger.Logger
}

func NewNotifier(hc *httputil.Client, log *logger.Logger) *Notifier {
	return &Notifier{
		http: hc,
		log:  log.WithField("component", "notify"),
	}
}

type webhookPayload struct {
	Content string  `json:"content,omitempty"`
	Embeds  []embed `json:"embeds,omitempty"`
}

type embed struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Color       int    `json:"color"`
	Footer      *struct {
		Text string `json:"text"`
	} `json:"footer,omitempty"`
}

// Send posts the digest to the webhook, chunked to Discord's embed limit.
func (n *Notifier) Send(ctx context.Context, webhookURL string, digest *contracts.Digest) error {
	if webhookURL == "" {
		return fmt.Errorf("notify: no webhook configured for horizon %s", digest.Horizon)
	}

	embeds := buildEmbeds(digest)

	for start := 0; start < len(embeds) || start == 0; start += maxEmbedsPerMessage {
		end := start + maxEmbedsPerMessage
		if end > len(embeds) {
			end = len(embeds)
		}

		payload := webhookPayload{Embeds: embeds[start:end]}
		if start == 0 {
			payload.Content = headline(digest)
		}

		resp, err := n.http.PostJSON(ctx, webhookURL, payload)
		if err != nil {
			return fmt.Errorf("notify: %w", err)
		}
		resp.Body.Close()
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return fmt.Errorf("notify: webhook returned %d", resp.StatusCode)
		}

		if len(embeds) == 0 {
			break
		}
	}

	n.log.WithFields(map[string]interface{}{
		"horizon": string(digest.Horizon),
		"games":   len(digest.Games),
	}).Info("digest delivered")
	return nil
}

func headline(d *contracts.Digest) string {
	if len(d.Games) == 0 {
		return fmt.Sprintf("📡 **Radar %s** — nothing above the bar today (%d candidates scanned)",
			d.Horizon, d.Candidates)
	}
	return fmt.Sprintf("📡 **Radar %s** — %d pick(s) from %d candidates, %s",
		d.Horizon, len(d.Games), d.Candidates, d.GeneratedAt.Format(time.RFC1123))
}

func buildEmbeds(d *contracts.Digest) []embed {
	var out []embed

	for _, g := range d.Games {
		e := embed{
			Title:       fmt.Sprintf("%s %s — %.1f pts", medal(g.Rank), g.Game.Name, g.Score),
			Description: describeGame(g),
			Color:       colorRegular,
		}
		if g.Rank == 1 {
			e.Color = colorTop
		}
		out = append(out, e)
	}

	if len(d.Degraded) > 0 {
		out = append(out, degradedEmbed(d.Degraded))
	}
	return out
}

func describeGame(g contracts.RankedGame) string {
	var lines []string
	if len(g.Tags) > 0 {
		lines = append(lines, strings.Join(g.Tags, " · "))
	}
	if g.Game.ViewerCount > 0 {
		lines = append(lines, fmt.Sprintf("%d viewers live now", g.Game.ViewerCount))
	}
	lines = append(lines, twitchLink(g.Game.Name))
	return strings.Join(lines, "\n")
}

func twitchLink(name string) string {
	return fmt.Sprintf("[open on Twitch](https://www.twitch.tv/directory/category/%s)",
		strings.ReplaceAll(strings.ToLower(name), " ", "-"))
}

func medal(rank int) string {
	switch rank {
	case 1:
		return "🥇"
	case 2:
		return "🥈"
	case 3:
		return "🥉"
	}
	return fmt.Sprintf("#%d", rank)
}

func degradedEmbed(degraded []contracts.DegradedGame) embed {
	var b strings.Builder
	for _, d := range degraded {
		fmt.Fprintf(&b, "• **%s**: %s\n", d.Name, d.Summary)
	}

	e := embed{
		Title:       "⚠️ Partial data",
		Description: b.String(),
		Color:       colorDegraded,
	}
	e.Footer = &struct {
		Text string `json:"text"`
	}{Text: "Scores for these games are missing one or more signals."}
	return e
}
