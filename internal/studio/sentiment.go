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

// Analyze runs sentiment and engagement analysis over the transcript.
// agentID overrides the configured sentiment route for this call; when
// both are empty the workflow refuses rather than guess an agent.
//
// Analysis is independent of summarization: it never reads or writes
// the summary or the delivery outcome.
func (s *Session) Analyze(ctx context.Context, agentID string) error {
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
	route := strings.TrimSpace(agentID)
	if route == "" {
		route = s.routes.Sentiment
	}
	if route == "" {
		s.errorMessage = "sentiment agent not configured"
		s.mu.Unlock()
		return ErrNoAgent
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	s.busyWith = kindSentiment
	s.cancel = cancel
	s.mu.Unlock()
	defer cancel()

	started := time.Now()
	stats := transcript.Analyze(text)
	s.logger.Info("sentiment analysis started",
		zap.String("agent", route),
		zap.Int("words", stats.Words),
		zap.Int("messages", stats.Messages))
	logging.Audit().WorkflowStart(kindSentiment)
	logging.Workflow("sentiment analysis started, %d words in %d messages", stats.Words, stats.Messages)

	raw, err := s.client.Invoke(ctx, route, buildSentimentPrompt(text, stats))
	if err != nil {
		return s.fail(kindSentiment, started, err, "failed to analyze sentiment: "+err.Error())
	}

	var env sentimentEnvelope
	if err := reply.Decode(raw, &env); err != nil {
		logging.Parse("sentiment reply rejected: %v", err)
		logging.Audit().ParseFallback(kindSentiment, err.Error())
		return s.fail(kindSentiment, started, err, "failed to analyze sentiment: agent reply was not usable")
	}
	if env.Analysis == nil {
		err := errors.New("reply carried no sentiment_analysis object")
		return s.fail(kindSentiment, started, err, "failed to analyze sentiment: agent reply was not usable")
	}

	s.mu.Lock()
	s.sentiment = &SentimentArtifact{
		ID:        uuid.New(),
		Report:    *env.Analysis,
		CreatedAt: time.Now(),
	}
	s.errorMessage = ""
	s.busyWith = ""
	s.cancel = nil
	s.mu.Unlock()

	s.logger.Info("sentiment analysis completed",
		zap.Duration("took", time.Since(started)),
		zap.String("overall", env.Analysis.Overall.Label))
	logging.Audit().WorkflowComplete(kindSentiment, time.Since(started))
	logging.Workflow("sentiment analysis completed in %v", time.Since(started))
	return nil
}
