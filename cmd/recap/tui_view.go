package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"recap/cmd/recap/ui"
	"recap/internal/studio"
)

func (m studioModel) View() string {
	if !m.ready {
		return "Starting the studio..."
	}
	snap := m.session.Snapshot()

	left := lipgloss.JoinVertical(lipgloss.Left,
		m.renderCompose(),
		m.renderChannels(snap),
	)
	right := lipgloss.JoinVertical(lipgloss.Left,
		m.renderReview(snap),
		m.renderAnalysis(snap),
	)

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(snap),
		lipgloss.JoinHorizontal(lipgloss.Top, left, right),
		m.renderFooter(),
	)
}

func (m studioModel) renderHeader(snap studio.Snapshot) string {
	title := m.styles.Header.Render(" recap studio ")

	var status string
	switch {
	case snap.Loading:
		status = m.spinner.View() + " " + m.styles.Badge.Render(snap.BusyWith)
	case m.notice != "":
		status = m.styles.Warning.Render(m.notice)
	case snap.ErrorMessage != "":
		status = m.styles.Error.Render(snap.ErrorMessage)
	default:
		status = m.styles.Success.Render("ready")
	}

	gap := m.width - lipgloss.Width(title) - lipgloss.Width(status) - 1
	if gap < 1 {
		gap = 1
	}
	bar := title + strings.Repeat(" ", gap) + status
	return lipgloss.JoinVertical(lipgloss.Left, bar, m.styles.RenderDivider(m.width))
}

func (m studioModel) renderCompose() string {
	return m.paneStyle(paneCompose).Width(m.leftWidth() - 2).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			m.styles.PaneTitle.Render("Transcript"),
			m.compose.View(),
		),
	)
}

func (m studioModel) renderChannels(snap studio.Snapshot) string {
	var b strings.Builder
	b.WriteString(m.styles.PaneTitle.Render("Channels"))
	for i, ch := range snap.Channels {
		cursor := "  "
		if m.focus == paneChannels && i == m.selected {
			cursor = m.styles.Bold.Render("> ")
		}
		mark := "[ ]"
		if ch.Enabled {
			mark = "[x]"
		}
		line := fmt.Sprintf("\n%s%s %s", cursor, mark, ch.Name)
		if ch.Status != "" {
			line += " " + m.styles.StatusStyle(ch.Status).Render(ui.StatusGlyph(ch.Status))
		}
		b.WriteString(line)
	}
	return m.paneStyle(paneChannels).Width(m.leftWidth() - 2).Render(b.String())
}

func (m studioModel) renderReview(snap studio.Snapshot) string {
	parts := []string{m.styles.PaneTitle.Render("Summary")}

	if snap.Summary == nil {
		parts = append(parts, m.styles.Muted.Render("Nothing yet. Paste a transcript and press Ctrl+S."))
	} else {
		parts = append(parts, m.review.View())
		parts = append(parts, m.styles.Muted.Render(summaryMetaLine(snap.Summary.Metadata)))
	}
	if snap.Outcome != nil {
		parts = append(parts, m.renderOutcome(snap))
	}

	return m.paneStyle(paneReview).Width(m.rightWidth() - 2).Render(
		lipgloss.JoinVertical(lipgloss.Left, parts...),
	)
}

func (m studioModel) renderOutcome(snap studio.Snapshot) string {
	out := snap.Outcome
	var b strings.Builder
	b.WriteString(m.styles.Subtitle.Render("Delivery"))
	for _, ch := range snap.Channels {
		if !ch.Enabled {
			continue
		}
		res := out.Results[ch.ID]
		glyph := m.styles.StatusStyle(res.Status).Render(ui.StatusGlyph(res.Status))
		b.WriteString(fmt.Sprintf("\n %s %-10s", glyph, ch.Name))
		if res.Message != "" {
			b.WriteString(" " + m.styles.Muted.Render(res.Message))
		}
	}
	b.WriteString("\nOverall: " + valueOr(out.Overall, "unknown"))
	if out.Synthesized {
		b.WriteString(m.styles.Muted.Render(" (assumed)"))
	}
	return b.String()
}

func (m studioModel) renderAnalysis(snap studio.Snapshot) string {
	var body string
	if snap.Sentiment == nil {
		body = m.styles.Muted.Render("No analysis yet. Ctrl+R reads the room.")
	} else {
		body = m.analysis.View()
	}
	return m.paneStyle(paneAnalysis).Width(m.rightWidth() - 2).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			m.styles.PaneTitle.Render("Sentiment"),
			m.agentInput.View(),
			body,
		),
	)
}

func (m studioModel) renderFooter() string {
	keys := "Tab: focus | Ctrl+S: summarize | Ctrl+D: send | Ctrl+R: sentiment | Esc: cancel/quit"

	var stats string
	if m.stats.Words > 0 {
		stats = fmt.Sprintf("%d words, %d messages", m.stats.Words, m.stats.Messages)
		if n := len(m.stats.Participants); n > 0 {
			stats += fmt.Sprintf(", %d voices", n)
		}
		if m.stats.Language != "" {
			stats += ", " + m.stats.Language
		}
	}

	left := m.styles.Footer.Render(keys)
	right := m.styles.Muted.Render(stats)
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		m.styles.RenderDivider(m.width),
		left+strings.Repeat(" ", gap)+right,
	)
}

func (m studioModel) paneStyle(p pane) lipgloss.Style {
	if m.focus == p {
		return m.styles.PaneActive
	}
	return m.styles.PaneInactive
}

// renderMarkdown renders markdown through glamour, falling back to the
// raw text if the renderer chokes.
func (m studioModel) renderMarkdown(content string) (out string) {
	defer func() {
		if r := recover(); r != nil {
			out = content
		}
	}()
	if m.renderer == nil {
		return content
	}
	rendered, err := m.renderer.Render(content)
	if err != nil {
		return content
	}
	return rendered
}

func summaryMetaLine(md studio.SummaryMetadata) string {
	var parts []string
	if md.WordCount > 0 {
		parts = append(parts, fmt.Sprintf("%d words", md.WordCount))
	}
	if md.Tone != "" {
		parts = append(parts, "tone "+md.Tone)
	}
	if len(md.KeyPoints) > 0 {
		parts = append(parts, fmt.Sprintf("%d key points", len(md.KeyPoints)))
	}
	if len(parts) == 0 {
		return "edit freely, Ctrl+D sends this text"
	}
	return strings.Join(parts, " | ") + " | edits stick"
}

// analysisMarkdown lays the sentiment report out as markdown for the
// glamour renderer.
func analysisMarkdown(r studio.SentimentReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "**Overall:** %s (%.2f)\n\n", valueOr(r.Overall.Label, "unknown"), r.Overall.Score)
	if r.Engagement.Level != "" || r.Engagement.Score > 0 {
		fmt.Fprintf(&b, "**Engagement:** %s (%.2f)\n\n", valueOr(r.Engagement.Level, "unknown"), r.Engagement.Score)
	}
	if r.Confidence > 0 {
		fmt.Fprintf(&b, "**Confidence:** %.2f\n\n", r.Confidence)
	}
	if len(r.Emotions) > 0 {
		b.WriteString("**Emotions**\n\n")
		for _, name := range sortedEmotions(r.Emotions) {
			fmt.Fprintf(&b, "- %s %.2f\n", name, r.Emotions[name])
		}
		b.WriteString("\n")
	}
	if r.Quality != (studio.QualityMetrics{}) {
		fmt.Fprintf(&b, "**Quality:** clarity %.2f, responsiveness %.2f, depth %.2f\n\n",
			r.Quality.Clarity, r.Quality.Responsiveness, r.Quality.Depth)
	}
	if len(r.Insights) > 0 {
		b.WriteString("**Insights**\n\n")
		for _, in := range r.Insights {
			b.WriteString("- " + in + "\n")
		}
	}
	return b.String()
}
