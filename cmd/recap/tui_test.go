package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recap/cmd/recap/ui"
	"recap/internal/config"
	"recap/internal/studio"
)

type stubAgent struct {
	reply     string
	lastAgent string
}

func (s *stubAgent) Invoke(ctx context.Context, agentID, instruction string) (string, error) {
	s.lastAgent = agentID
	return s.reply, nil
}

func newTestModel(t *testing.T, client *stubAgent) studioModel {
	t.Helper()
	session := studio.NewSession(studio.Options{
		Client: client,
		Routes: config.RoutesConfig{Summarize: "summarizer", Distribute: "distributor"},
	})
	m := newStudioModel(session, ui.NewStyles(ui.LightTheme()))
	return press(t, m, tea.WindowSizeMsg{Width: 100, Height: 32})
}

func press(t *testing.T, m studioModel, msg tea.Msg) studioModel {
	t.Helper()
	next, _ := m.Update(msg)
	sm, ok := next.(studioModel)
	require.True(t, ok, "model type changed")
	return sm
}

func TestFocusCycle(t *testing.T) {
	m := newTestModel(t, &stubAgent{})
	assert.Equal(t, paneCompose, m.focus)

	order := []pane{paneChannels, paneReview, paneAnalysis, paneCompose}
	for _, want := range order {
		m = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
		assert.Equal(t, want, m.focus)
	}

	m = press(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, paneAnalysis, m.focus)
}

func TestComposeFlowsToSession(t *testing.T) {
	m := newTestModel(t, &stubAgent{})

	m = press(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("Alice: hi")})
	assert.Equal(t, "Alice: hi", m.session.Transcript())
}

func TestChannelToggle(t *testing.T) {
	m := newTestModel(t, &stubAgent{})
	m = press(t, m, tea.KeyMsg{Type: tea.KeyTab}) // channels pane

	m = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = press(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(" ")})

	channels := m.session.Channels()
	require.Greater(t, len(channels), 1)
	assert.True(t, channels[1].Enabled)
	for i, ch := range channels {
		if i != 1 {
			assert.False(t, ch.Enabled, ch.ID)
		}
	}

	// Toggling again puts it back.
	m = press(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(" ")})
	assert.False(t, m.session.Channels()[1].Enabled)
}

func TestWorkflowDoneSeedsReview(t *testing.T) {
	stub := &stubAgent{reply: `{"summary":"Short and sweet."}`}
	m := newTestModel(t, stub)
	m.session.SetTranscript("Alice: hi\nBob: hello")
	require.NoError(t, m.session.Summarize(context.Background()))

	m = press(t, m, workflowDoneMsg{})
	assert.Equal(t, "Short and sweet.", m.review.Value())
}

func TestAgentOverrideFlowsToAnalyze(t *testing.T) {
	stub := &stubAgent{reply: `{"sentiment_analysis":{"overall_sentiment":{"label":"positive","score":0.8}}}`}
	m := newTestModel(t, stub)
	m.session.SetTranscript("Alice: hi\nBob: hello")

	for i := 0; i < 3; i++ { // focus the analysis pane
		m = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	}
	require.Equal(t, paneAnalysis, m.focus)
	m = press(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("vibe-check")})
	assert.Equal(t, "vibe-check", m.agentInput.Value())

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlR})
	m = next.(studioModel)
	require.NotNil(t, cmd)
	batch, ok := cmd().(tea.BatchMsg)
	require.True(t, ok)
	for _, c := range batch {
		if msg := c(); msg != nil {
			if done, isDone := msg.(workflowDoneMsg); isDone {
				require.NoError(t, done.err)
			}
		}
	}

	assert.Equal(t, "vibe-check", stub.lastAgent)
	require.NotNil(t, m.session.Snapshot().Sentiment)
	assert.Equal(t, "positive", m.session.Snapshot().Sentiment.Report.Overall.Label)
}

func TestEscQuitsWhenIdle(t *testing.T) {
	m := newTestModel(t, &stubAgent{})
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	_ = next
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestViewSmoke(t *testing.T) {
	m := newTestModel(t, &stubAgent{})
	view := m.View()

	assert.Contains(t, view, "Transcript")
	assert.Contains(t, view, "Channels")
	assert.Contains(t, view, "Summary")
	assert.Contains(t, view, "Sentiment")
	assert.Contains(t, view, "ready")
}

func TestCommandRegistration(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"summarize", "send", "analyze", "channels", "doctor"} {
		assert.True(t, names[want], "command %s not registered", want)
	}

	assert.NotNil(t, summarizeCmd.Flags().Lookup("json"))
	assert.NotNil(t, summarizeCmd.Flags().Lookup("watch"))
	assert.NotNil(t, sendCmd.Flags().Lookup("channels"))
	assert.NotNil(t, analyzeCmd.Flags().Lookup("agent"))
}

func TestReadTranscript(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chat.txt")
	require.NoError(t, os.WriteFile(path, []byte("Alice: hi\n"), 0o644))

	got, err := readTranscript([]string{path})
	require.NoError(t, err)
	assert.Equal(t, "Alice: hi\n", got)

	_, err = readTranscript([]string{filepath.Join(t.TempDir(), "missing.txt")})
	assert.Error(t, err)
}

func TestAnalysisMarkdown(t *testing.T) {
	r := studio.SentimentReport{
		Overall:  studio.SentimentScore{Label: "positive", Score: 0.84},
		Emotions: map[string]float64{"joy": 0.8, "trust": 0.3},
		Insights: []string{"Quick consensus"},
	}
	md := analysisMarkdown(r)

	assert.Contains(t, md, "**Overall:** positive (0.84)")
	assert.Contains(t, md, "- joy 0.80")
	assert.Contains(t, md, "- Quick consensus")
	assert.Less(t, strings.Index(md, "joy"), strings.Index(md, "trust"), "emotions should sort by score")
}

func TestSummaryMetaLine(t *testing.T) {
	assert.Equal(t, "edit freely, Ctrl+D sends this text", summaryMetaLine(studio.SummaryMetadata{}))

	line := summaryMetaLine(studio.SummaryMetadata{WordCount: 42, Tone: "upbeat", KeyPoints: []string{"a", "b"}})
	assert.Contains(t, line, "42 words")
	assert.Contains(t, line, "tone upbeat")
	assert.Contains(t, line, "2 key points")
}

func TestSortedEmotions(t *testing.T) {
	got := sortedEmotions(map[string]float64{"b": 0.5, "a": 0.5, "c": 0.9})
	assert.Equal(t, []string{"c", "a", "b"}, got)
}
