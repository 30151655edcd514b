package transcript

import (
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "empty", input: "", wantErr: true},
		{name: "whitespace only", input: "   \n\t  \n", wantErr: true},
		{name: "real text", input: "Alice: hello", wantErr: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrEmpty))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAnalyze(t *testing.T) {
	sample := `Alice: Morning! Did the deploy finish overnight?
Bob: Yes, all green. The cache warmed up faster than expected.
Alice: Great. Then let's ship the release notes on Friday.
(pause while Charlie joins)
Bob: Sounds good to me.`

	got := Analyze(sample)

	assert.Equal(t, utf8.RuneCountInString(sample), got.Chars)
	assert.Equal(t, 5, got.Lines)
	assert.Equal(t, 37, got.Words)
	assert.Equal(t, 4, got.Messages)
	assert.Equal(t, []string{"Alice", "Bob"}, got.Participants)
	assert.Equal(t, "English", got.Language)
}

func TestAnalyzeEmpty(t *testing.T) {
	got := Analyze("   \n  ")
	assert.Equal(t, Stats{}, got)
}

func TestAnalyzeWithoutSpeakers(t *testing.T) {
	got := Analyze("just three lines\nof pasted text\nwithout any names")

	assert.Equal(t, 3, got.Lines)
	assert.Equal(t, 3, got.Messages, "speakerless lines count one message each")
	assert.Empty(t, got.Participants)
}

func TestAnalyzeDedupesParticipants(t *testing.T) {
	got := Analyze("alice: first message here\nAlice: and a second one\nBob: replying now too")

	assert.Equal(t, []string{"alice", "Bob"}, got.Participants, "case-insensitive dedupe keeps first spelling")
	assert.Equal(t, 3, got.Messages)
}

func TestAnalyzeSkipsLanguageForShortInput(t *testing.T) {
	got := Analyze("Alice: ok")
	assert.Empty(t, got.Language)
}

func TestSpeakerName(t *testing.T) {
	tests := []struct {
		line string
		name string
		ok   bool
	}{
		{line: "Alice: hello there", name: "Alice", ok: true},
		{line: "Bob Smith: hello", name: "Bob Smith", ok: true},
		{line: "dev.bot-2: build passed", name: "dev.bot-2", ok: true},
		{line: "no colon in this line", ok: false},
		{line: ": leading colon", ok: false},
		{line: "(aside): whisper", ok: false},
		{line: strings.Repeat("x", 40) + ": too long", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			name, ok := speakerName(tt.line)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.name, name)
		})
	}
}
