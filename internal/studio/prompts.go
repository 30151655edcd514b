package studio

import (
	"fmt"
	"strings"

	"recap/internal/channel"
	"recap/internal/transcript"
)

// Prompts describe the expected reply shape in prose plus a JSON
// sketch. The agents are opaque; the shape description is the only
// contract recap has with them.

// statsLine hands the agent the locally counted shape of the transcript
// so its metadata does not have to guess the numbers.
func statsLine(s transcript.Stats) string {
	if s.Words == 0 {
		return ""
	}
	line := fmt.Sprintf("Transcript stats: word count %d, message count %d", s.Words, s.Messages)
	if len(s.Participants) > 0 {
		line += ", participants " + strings.Join(s.Participants, ", ")
	}
	if s.Language != "" {
		line += ", language " + s.Language
	}
	return line + ".\n\n"
}

const summarizeShape = `Output JSON only, no other text:
{
  "summary": "concise recap of the conversation",
  "summary_metadata": {
    "word_count": 0,
    "message_count": 0,
    "participant_count": 0,
    "tone": "overall tone",
    "sentiment": "positive|neutral|negative",
    "key_points": ["short bullet"],
    "topics": ["topic"]
  },
  "distribution_results": {},
  "overall_status": "pending",
  "retry_channels": []
}`

func buildSummarizePrompt(text string, stats transcript.Stats) string {
	var b strings.Builder
	b.WriteString("You are a chat recap assistant. Summarize the transcript below into a short, factual recap a teammate can read in under a minute.\n\n")
	b.WriteString(statsLine(stats))
	b.WriteString("Rules:\n")
	b.WriteString("1. Keep every decision, owner, and date mentioned\n")
	b.WriteString("2. Drop greetings and small talk\n")
	b.WriteString("3. Leave distribution_results empty and overall_status as pending; delivery happens in a later step\n\n")
	b.WriteString(summarizeShape)
	b.WriteString("\n\nTranscript:\n")
	b.WriteString(text)
	return b.String()
}

const distributeShape = `Output JSON only, no other text:
{
  "distribution_results": {
    "<channel id>": {"status": "success|failed|skipped", "message": "optional detail", "url": "optional link to the delivered post"}
  },
  "overall_status": "success|partial|failed",
  "retry_channels": ["channel ids worth retrying"]
}`

func buildDistributePrompt(summary string, channels []channel.Channel) string {
	var b strings.Builder
	b.WriteString("Deliver the summary below to each of these channels:\n")
	for _, ch := range channels {
		fmt.Fprintf(&b, "- %s (id: %s)\n", ch.Name, ch.ID)
	}
	b.WriteString("\nReport the outcome for every channel, keyed by its id. Use status \"skipped\" with a message when a channel cannot be reached.\n\n")
	b.WriteString(distributeShape)
	b.WriteString("\n\nSummary:\n")
	b.WriteString(summary)
	return b.String()
}

const sentimentShape = `Output JSON only, no other text:
{
  "sentiment_analysis": {
    "overall_sentiment": {"label": "positive|neutral|negative", "score": 0.0},
    "emotions": {"joy": 0.0, "trust": 0.0, "anger": 0.0, "sadness": 0.0, "surprise": 0.0},
    "engagement": {"level": "low|medium|high", "score": 0.0, "message_frequency": "description", "participant_ratio": 0.0},
    "response_quality": {"clarity": 0.0, "responsiveness": 0.0, "depth": 0.0},
    "scoring": {"positive": 0.0, "negative": 0.0, "neutral": 0.0, "composite": 0.0},
    "insights": ["short observation"],
    "confidence": 0.0,
    "metadata": {"model_version": "", "processed_at": "", "duration_ms": 0, "message_count": 0}
  }
}`

func buildSentimentPrompt(text string, stats transcript.Stats) string {
	var b strings.Builder
	b.WriteString("You are a conversation analyst. Score the transcript below for sentiment, emotion, and engagement.\n\n")
	b.WriteString(statsLine(stats))
	b.WriteString("Rules:\n")
	b.WriteString("1. All numeric scores are in [0, 1]\n")
	b.WriteString("2. Base every score on the text alone; do not invent context\n")
	b.WriteString("3. Keep insights short and concrete\n\n")
	b.WriteString(sentimentShape)
	b.WriteString("\n\nTranscript:\n")
	b.WriteString(text)
	return b.String()
}
