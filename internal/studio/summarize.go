package studio

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"recap/internal/logging"
	"recap/internal/reply"
	"recap/internal/transcript"
)

// Summarize runs the transcript through the summarizer agent and
// stores the result as the summary under review. A fresh summary
// invalidates the previous delivery outcome; per-channel delivery
// history is left alone.
//
// Returns ErrBusy when another workflow holds the latch and
// ErrEmptyTranscript when there is nothing to summarize; neither
// touches the session beyond the error message slot.
func (s *Session) Summarize(ctx context.Context) error {
	s.mu.Lock()
	if s.busyWith != "" {
		s.mu.Unlock()
		return ErrBusy
	}
	text := strings.TrimSpace(s.transcript)
	if text == "" {
		s.errorMessage = ErrEmptyTranscript.Error()
		s.mu.Unlock()
		return ErrEmptyTranscript
	}
	route := s.routes.Summarize
	if route == "" {
		s.errorMessage = "summarize agent not configured"
		s.mu.Unlock()
		return ErrNoAgent
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	s.busyWith = kindSummarize
	s.cancel = cancel
	s.mu.Unlock()
	defer cancel()

	started := time.Now()
	stats := transcript.Analyze(text)
	s.logger.Info("summarize started",
		zap.String("agent", route),
		zap.Int("words", stats.Words),
		zap.Int("messages", stats.Messages))
	logging.Audit().WorkflowStart(kindSummarize)
	logging.Workflow("summarize started, %d words in %d messages", stats.Words, stats.Messages)

	raw, err := s.client.Invoke(ctx, route, buildSummarizePrompt(text, stats))
	if err != nil {
		return s.fail(kindSummarize, started, err, "failed to generate summary: "+err.Error())
	}

	var env summaryEnvelope
	if err := reply.Decode(raw, &env); err != nil {
		logging.Parse("summarize reply rejected: %v", err)
		logging.Audit().ParseFallback(kindSummarize, err.Error())
		return s.fail(kindSummarize, started, err, "failed to generate summary: agent reply was not usable")
	}
	text = strings.TrimSpace(env.Summary)
	if text == "" {
		err := errors.New("reply carried no summary text")
		return s.fail(kindSummarize, started, err, "failed to generate summary: agent reply was not usable")
	}

	s.mu.Lock()
	s.summary = &SummaryArtifact{
		ID:        uuid.New(),
		Text:      text,
		Metadata:  env.Metadata,
		CreatedAt: time.Now(),
	}
	s.outcome = nil
	s.errorMessage = ""
	s.busyWith = ""
	s.cancel = nil
	s.mu.Unlock()

	s.logger.Info("summarize completed",
		zap.Duration("took", time.Since(started)),
		zap.Int("summary_chars", len(text)))
	logging.Audit().WorkflowComplete(kindSummarize, time.Since(started))
	logging.Workflow("summarize completed in %v", time.Since(started))
	return nil
}
