// Audit logging: structured JSONL events covering workflow runs and
// agent traffic. One line per event in .recap/logs/<date>_audit.log,
// written only in debug mode.
package logging

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// AuditEventType defines the type of audit event.
type AuditEventType string

const (
	// Workflow lifecycle
	AuditWorkflowStart    AuditEventType = "workflow_start"
	AuditWorkflowComplete AuditEventType = "workflow_complete"
	AuditWorkflowError    AuditEventType = "workflow_error"

	// Agent traffic
	AuditAgentRequest  AuditEventType = "agent_request"
	AuditAgentResponse AuditEventType = "agent_response"
	AuditAgentError    AuditEventType = "agent_error"

	// Parsing and reconciliation
	AuditParseFallback AuditEventType = "parse_fallback"
	AuditReconcile     AuditEventType = "reconcile_applied"
)

// AuditEvent is one structured audit line.
type AuditEvent struct {
	Timestamp  int64                  `json:"ts"` // Unix milliseconds
	EventType  AuditEventType         `json:"event"`
	Workflow   string                 `json:"workflow,omitempty"`
	SessionID  string                 `json:"session,omitempty"`
	RequestID  string                 `json:"req,omitempty"`
	AgentID    string                 `json:"agent,omitempty"`
	Success    bool                   `json:"success"`
	DurationMs int64                  `json:"dur_ms,omitempty"`
	Error      string                 `json:"error,omitempty"`
	Message    string                 `json:"msg,omitempty"`
	Fields     map[string]interface{} `json:"fields,omitempty"`
}

var (
	auditFile   *os.File
	auditMu     sync.Mutex
	auditLogger *AuditLogger
)

// AuditLogger writes audit events, optionally scoped to a session.
type AuditLogger struct {
	sessionID string
}

// InitAudit opens the audit log. No-op outside debug mode.
func InitAudit() error {
	if !IsDebugMode() {
		return nil
	}

	auditMu.Lock()
	defer auditMu.Unlock()

	if auditFile != nil {
		return nil
	}

	date := time.Now().Format("2006-01-02")
	auditPath := filepath.Join(logsDir, fmt.Sprintf("%s_audit.log", date))

	file, err := os.OpenFile(auditPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to create audit log: %w", err)
	}
	auditFile = file

	auditFile.WriteString(fmt.Sprintf("# audit log started at %s\n", time.Now().Format(time.RFC3339)))
	return nil
}

// CloseAudit closes the audit log file.
func CloseAudit() {
	auditMu.Lock()
	defer auditMu.Unlock()

	if auditFile != nil {
		auditFile.Close()
		auditFile = nil
	}
}

// Audit returns the global audit logger.
func Audit() *AuditLogger {
	if auditLogger == nil {
		auditLogger = &AuditLogger{}
	}
	return auditLogger
}

// AuditWithSession creates an audit logger scoped to a session.
func AuditWithSession(sessionID string) *AuditLogger {
	return &AuditLogger{sessionID: sessionID}
}

// Log writes one audit event.
func (a *AuditLogger) Log(event AuditEvent) {
	if !IsDebugMode() || auditFile == nil {
		return
	}

	if event.Timestamp == 0 {
		event.Timestamp = time.Now().UnixMilli()
	}
	if event.SessionID == "" && a.sessionID != "" {
		event.SessionID = a.sessionID
	}

	auditMu.Lock()
	defer auditMu.Unlock()

	data, err := json.Marshal(event)
	if err == nil {
		auditFile.WriteString(string(data) + "\n")
	}
}

// WorkflowStart records the start of a workflow run.
func (a *AuditLogger) WorkflowStart(kind string) {
	a.Log(AuditEvent{EventType: AuditWorkflowStart, Workflow: kind, Success: true})
}

// WorkflowComplete records a successful workflow run.
func (a *AuditLogger) WorkflowComplete(kind string, dur time.Duration) {
	a.Log(AuditEvent{
		EventType:  AuditWorkflowComplete,
		Workflow:   kind,
		Success:    true,
		DurationMs: dur.Milliseconds(),
	})
}

// WorkflowError records a failed workflow run.
func (a *AuditLogger) WorkflowError(kind string, dur time.Duration, err error) {
	e := AuditEvent{
		EventType:  AuditWorkflowError,
		Workflow:   kind,
		DurationMs: dur.Milliseconds(),
	}
	if err != nil {
		e.Error = err.Error()
	}
	a.Log(e)
}

// AgentRequest records an outbound agent invocation.
func (a *AuditLogger) AgentRequest(requestID, agentID string, promptLen int) {
	a.Log(AuditEvent{
		EventType: AuditAgentRequest,
		RequestID: requestID,
		AgentID:   agentID,
		Success:   true,
		Fields:    map[string]interface{}{"prompt_len": promptLen},
	})
}

// AgentResponse records a completed agent invocation.
func (a *AuditLogger) AgentResponse(requestID string, dur time.Duration, respLen int) {
	a.Log(AuditEvent{
		EventType:  AuditAgentResponse,
		RequestID:  requestID,
		Success:    true,
		DurationMs: dur.Milliseconds(),
		Fields:     map[string]interface{}{"response_len": respLen},
	})
}

// AgentFailure records a failed agent invocation.
func (a *AuditLogger) AgentFailure(requestID string, dur time.Duration, err error) {
	e := AuditEvent{
		EventType:  AuditAgentError,
		RequestID:  requestID,
		DurationMs: dur.Milliseconds(),
	}
	if err != nil {
		e.Error = err.Error()
	}
	a.Log(e)
}

// ParseFallback records a reply that needed span extraction or failed
// parsing entirely.
func (a *AuditLogger) ParseFallback(workflow, reason string) {
	a.Log(AuditEvent{
		EventType: AuditParseFallback,
		Workflow:  workflow,
		Message:   reason,
	})
}

// ReconcileApplied records a distribution result set landing on the
// channel list.
func (a *AuditLogger) ReconcileApplied(updated int, synthesized bool) {
	a.Log(AuditEvent{
		EventType: AuditReconcile,
		Success:   true,
		Fields: map[string]interface{}{
			"channels_updated": updated,
			"synthesized":      synthesized,
		},
	})
}
