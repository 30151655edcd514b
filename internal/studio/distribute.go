package studio

import (
	"context"
	"time"

	"go.uber.org/zap"

	"recap/internal/channel"
	"recap/internal/logging"
	"recap/internal/reply"
)

// Distribute asks the distributor agent to deliver the current summary
// to the enabled channels and reconciles the reported outcomes into
// the channel set.
//
// Agents are not required to report per-channel outcomes. When the
// reply carries no distribution_results at all, or cannot be decoded,
// the session synthesizes a success result for every channel it asked
// for and marks the outcome accordingly. A present-but-empty result
// object is applied verbatim: the agent said "nothing delivered", and
// that stands.
func (s *Session) Distribute(ctx context.Context) error {
	s.mu.Lock()
	if s.busyWith != "" {
		s.mu.Unlock()
		return ErrBusy
	}
	if s.summary == nil {
		s.errorMessage = ErrNoSummary.Error()
		s.mu.Unlock()
		return ErrNoSummary
	}
	summaryText := s.summary.Text
	enabled := s.channels.Enabled()
	if len(enabled) == 0 {
		s.errorMessage = ErrNoChannels.Error()
		s.mu.Unlock()
		return ErrNoChannels
	}
	route := s.routes.Distribute
	if route == "" {
		s.errorMessage = "distribute agent not configured"
		s.mu.Unlock()
		return ErrNoAgent
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	s.busyWith = kindDistribute
	s.cancel = cancel
	s.mu.Unlock()
	defer cancel()

	started := time.Now()
	s.logger.Info("distribute started",
		zap.String("agent", route),
		zap.Int("channels", len(enabled)))
	logging.Audit().WorkflowStart(kindDistribute)
	logging.Workflow("distribute started for %d channels", len(enabled))

	raw, err := s.client.Invoke(ctx, route, buildDistributePrompt(summaryText, enabled))
	if err != nil {
		return s.fail(kindDistribute, started, err, "failed to distribute summary: "+err.Error())
	}

	var env summaryEnvelope
	decodeErr := reply.Decode(raw, &env)

	var (
		results     channel.ResultSet
		overall     string
		retry       []string
		synthesized bool
	)
	if decodeErr != nil || env.DistributionResults == nil {
		reason := "distribution_results missing from reply"
		if decodeErr != nil {
			reason = decodeErr.Error()
			logging.Parse("distribute reply rejected: %v", decodeErr)
		}
		results = channel.Synthesize(enabled)
		overall = string(channel.StatusSuccess)
		synthesized = true
		s.logger.Warn("synthesizing distribution results",
			zap.String("reason", reason),
			zap.Int("channels", len(enabled)))
		logging.Audit().ParseFallback(kindDistribute, reason)
		logging.Workflow("distribute reply carried no results, synthesized success for %d channels", len(enabled))
	} else {
		results = *env.DistributionResults
		overall = env.OverallStatus
		retry = env.RetryChannels
	}

	s.mu.Lock()
	s.channels.Apply(results)
	s.outcome = &DistributionOutcome{
		Results:       results,
		Overall:       overall,
		RetryChannels: retry,
		Synthesized:   synthesized,
		At:            time.Now(),
	}
	s.errorMessage = ""
	s.busyWith = ""
	s.cancel = nil
	s.mu.Unlock()

	logging.Get(logging.CategoryChannel).Info("applied %d delivery results, overall=%s synthesized=%v",
		len(results), overall, synthesized)
	logging.Audit().ReconcileApplied(len(results), synthesized)
	s.logger.Info("distribute completed",
		zap.Duration("took", time.Since(started)),
		zap.String("overall", overall),
		zap.Bool("synthesized", synthesized))
	logging.Audit().WorkflowComplete(kindDistribute, time.Since(started))
	logging.Workflow("distribute completed in %v", time.Since(started))
	return nil
}
