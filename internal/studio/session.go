// Package studio holds the session state and the three workflows that
// drive it: summarize, distribute, analyze. A session owns the
// transcript, the channel selection, and the artifacts the workflows
// produce; the CLI and the TUI are thin surfaces over it.
//
// Workflows run strictly one at a time. The busy latch lives here in
// the data layer, so a second trigger is rejected even if a surface
// forgets to disable its controls.
package studio

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"recap/internal/agent"
	"recap/internal/channel"
	"recap/internal/config"
	"recap/internal/logging"
)

// Validation failures, detected before any agent call.
var (
	ErrEmptyTranscript = errors.New("transcript is empty")
	ErrNoChannels      = errors.New("select at least one channel")
	ErrNoSummary       = errors.New("no summary to send")
	ErrNoAgent         = errors.New("agent not configured")
	ErrBusy            = errors.New("another workflow is in flight")
)

// Workflow kinds as they appear in logs and the busy latch.
const (
	kindSummarize  = "summarize"
	kindDistribute = "distribute"
	kindSentiment  = "sentiment"
)

const defaultTimeout = 120 * time.Second

// Options configures a session.
type Options struct {
	Client agent.Client

	// Routes names the agent each workflow invokes.
	Routes config.RoutesConfig

	// Timeout bounds each agent invocation. Zero means the default.
	Timeout time.Duration

	// Channels is the catalog the session works against. Nil means the
	// built-in catalog.
	Channels *channel.Set

	Logger *zap.Logger
}

// Session is the in-memory state for one studio run. Nothing in it
// survives the process.
type Session struct {
	mu sync.Mutex

	client  agent.Client
	routes  config.RoutesConfig
	timeout time.Duration
	logger  *zap.Logger

	channels *channel.Set

	transcript string

	summary   *SummaryArtifact
	outcome   *DistributionOutcome
	sentiment *SentimentArtifact

	// errorMessage is the single flat slot the surfaces render. Set on
	// failure, cleared on the next success.
	errorMessage string

	// busyWith holds the kind of the in-flight workflow, "" when idle.
	busyWith string
	cancel   context.CancelFunc
}

// NewSession creates a session.
func NewSession(opts Options) *Session {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.Channels == nil {
		opts.Channels = channel.NewSet(channel.DefaultCatalog()...)
	}
	return &Session{
		client:   opts.Client,
		routes:   opts.Routes,
		timeout:  opts.Timeout,
		logger:   opts.Logger,
		channels: opts.Channels,
	}
}

// SetTranscript replaces the transcript text.
func (s *Session) SetTranscript(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transcript = text
}

// Transcript returns the current transcript text.
func (s *Session) Transcript() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.transcript
}

// SetSummaryText applies a user edit to the summary under review. A
// no-op when no summary exists yet.
func (s *Session) SetSummaryText(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.summary == nil {
		return
	}
	s.summary.Text = text
}

// ToggleChannel flips a channel's enabled flag. Returns false when the
// id is unknown.
func (s *Session) ToggleChannel(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.channels.Toggle(id)
}

// EnableChannels enables exactly the named channels and disables the
// rest. Names resolve by id or display name, case-insensitively.
func (s *Session) EnableChannels(names ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.channels.EnableOnly(names...)
}

// Channels returns a copy of the channel catalog in order.
func (s *Session) Channels() []channel.Channel {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.channels.All()
}

// Busy reports whether a workflow is in flight.
func (s *Session) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.busyWith != ""
}

// Cancel aborts the in-flight invocation, if any. The canceled
// workflow finishes through its failure path.
func (s *Session) Cancel() {
	s.mu.Lock()
	cancel := s.cancel
	s.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

// Snapshot is an immutable copy of the session for rendering.
type Snapshot struct {
	Transcript   string
	Loading      bool
	BusyWith     string
	ErrorMessage string
	Channels     []channel.Channel
	Summary      *SummaryArtifact
	Outcome      *DistributionOutcome
	Sentiment    *SentimentArtifact
}

// Snapshot copies the session state for rendering.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		Transcript:   s.transcript,
		Loading:      s.busyWith != "",
		BusyWith:     s.busyWith,
		ErrorMessage: s.errorMessage,
		Channels:     s.channels.All(),
	}
	if s.summary != nil {
		c := *s.summary
		snap.Summary = &c
	}
	if s.outcome != nil {
		c := *s.outcome
		snap.Outcome = &c
	}
	if s.sentiment != nil {
		c := *s.sentiment
		snap.Sentiment = &c
	}
	return snap
}

// fail records a workflow failure in the flat message slot and releases
// the latch. The returned error wraps err with the workflow kind; prior
// artifacts stay untouched.
func (s *Session) fail(kind string, started time.Time, err error, message string) error {
	s.mu.Lock()
	s.errorMessage = message
	s.busyWith = ""
	s.cancel = nil
	s.mu.Unlock()

	s.logger.Warn("workflow failed",
		zap.String("workflow", kind),
		zap.Duration("took", time.Since(started)),
		zap.Error(err))
	logging.Audit().WorkflowError(kind, time.Since(started), err)
	logging.Workflow("%s failed: %v", kind, err)

	return fmt.Errorf("%s: %w", kind, err)
}
