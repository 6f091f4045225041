// Package events defines the typed outcome events the pipeline and
// synchronization client emit toward the notification sink. The sink is an
// explicit dependency with fire-and-forget semantics; emission failures never
// block or fail the operation that produced the event.
package events

import (
	"context"
	"time"
)

// Type enumerates the terminal outcomes reported per message and per case.
type Type string

const (
	// Message-level outcomes: exactly one per feed payload.
	TypeMessageReceived     Type = "message_received"
	TypeMessageParseFailure Type = "message_parse_failure"
	TypeMessageProcessed    Type = "message_processed"

	// Per-case terminal outcomes: exactly one per case in a valid document.
	TypeCaseUpdated       Type = "case_updated"
	TypeCaseUpdateFailure Type = "case_update_failure"

	// Matching telemetry.
	TypeOffenderMatched      Type = "offender_matched"
	TypeOffenderMatchFailure Type = "offender_match_failure"

	// Reconciliation telemetry.
	TypeMatchPostFailure Type = "match_post_failure"
	TypePurgeFailure     Type = "purge_failure"
)

// Event is one notification. Free-text fields must already be redacted;
// defendant names never travel on events.
type Event struct {
	ID        string    `json:"id"`
	Type      Type      `json:"type"`
	Timestamp time.Time `json:"timestamp"`

	CourtCode string `json:"courtCode,omitempty"`
	CaseNo    string `json:"caseNo,omitempty"`
	CRN       string `json:"crn,omitempty"`

	MatchedBy      string `json:"matchedBy,omitempty"`
	CandidateCount int    `json:"candidateCount,omitempty"`
	Attempts       int    `json:"attempts,omitempty"`
	CaseCount      int    `json:"caseCount,omitempty"`

	// Detail describes the outcome without personally identifying content.
	Detail string `json:"detail,omitempty"`

	// RawMessage carries the offending payload on parse failures so operators
	// can replay it. Redacted before emission.
	RawMessage string `json:"rawMessage,omitempty"`
}

// Sink receives events. Implementations must not block on downstream
// delivery; Emit errors are advisory and callers only log them.
type Sink interface {
	Emit(ctx context.Context, event Event) error
}

// MultiSink fans one event out to several sinks, preserving the
// at-least-one-listener contract without a global registry.
type MultiSink []Sink

func (m MultiSink) Emit(ctx context.Context, event Event) error {
	var firstErr error
	for _, s := range m {
		if err := s.Emit(ctx, event); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
