// Package transcript inspects chat transcripts locally: validation,
// counting, speaker detection, and language identification. Nothing in
// here talks to the agent service.
package transcript

import (
	"errors"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/pemistahl/lingua-go"
)

// ErrEmpty reports an empty or whitespace-only transcript.
var ErrEmpty = errors.New("transcript is empty")

// Validate rejects empty or whitespace-only transcripts before any
// agent call is made.
func Validate(text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrEmpty
	}
	return nil
}

// Stats describes a transcript without any agent involvement. It feeds
// the prompt builders and the studio footer.
type Stats struct {
	Chars        int
	Lines        int
	Words        int
	Messages     int
	Participants []string
	Language     string
}

// minDetectWords keeps the language detector away from one-liners it
// cannot classify reliably.
const minDetectWords = 5

// maxSpeakerLen bounds how long a "Name:" prefix may be before it is
// treated as message text (URLs, timestamps).
const maxSpeakerLen = 32

var (
	detectorOnce sync.Once
	detector     lingua.LanguageDetector
)

func languageDetector() lingua.LanguageDetector {
	detectorOnce.Do(func() {
		detector = lingua.NewLanguageDetectorBuilder().
			FromLanguages(
				lingua.English,
				lingua.Spanish,
				lingua.Portuguese,
				lingua.French,
				lingua.German,
				lingua.Italian,
			).
			Build()
	})
	return detector
}

// Analyze computes stats for a transcript. Speaker names are read from
// "Name: message" line prefixes; lines without such a prefix count as
// continuations of the previous message.
func Analyze(text string) Stats {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return Stats{}
	}

	stats := Stats{
		Chars: utf8.RuneCountInString(trimmed),
		Words: len(strings.Fields(trimmed)),
	}

	seen := make(map[string]bool)
	for _, line := range strings.Split(trimmed, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		stats.Lines++

		name, ok := speakerName(line)
		if !ok {
			continue
		}
		stats.Messages++
		key := strings.ToLower(name)
		if !seen[key] {
			seen[key] = true
			stats.Participants = append(stats.Participants, name)
		}
	}

	// A pasted blob with no "Name:" prefixes still has messages, one
	// per non-blank line.
	if stats.Messages == 0 {
		stats.Messages = stats.Lines
	}

	if stats.Words >= minDetectWords {
		if lang, ok := languageDetector().DetectLanguageOf(trimmed); ok {
			stats.Language = lang.String()
		}
	}

	return stats
}

// speakerName extracts the speaker from a "Name: message" line.
func speakerName(line string) (string, bool) {
	idx := strings.Index(line, ":")
	if idx <= 0 || idx > maxSpeakerLen {
		return "", false
	}
	name := strings.TrimSpace(line[:idx])
	if name == "" {
		return "", false
	}
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == ' ' || r == '_' || r == '-' || r == '.' {
			continue
		}
		return "", false
	}
	return name, true
}
