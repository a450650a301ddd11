// Package storage declares the persistence interfaces the match service
// depends on. The engine itself never touches storage; only the app layer
// journals reconciler actions through these interfaces.
package storage

import (
	"context"
	"time"

	apperrors "github.com/louisbranch/scrimmage.space/internal/platform/errors"
)

// ErrNotFound indicates a requested persistence record is missing.
var ErrNotFound = apperrors.New(apperrors.CodeNotFound, "record not found")

// AuditEvent is one journaled observation of the engine: a reconciler action
// or a lifecycle operation, with the fields that action carried.
type AuditEvent struct {
	Seq           int64
	SessionID     string
	Kind          string
	Reason        string
	RoundID       string
	FromRoundID   string
	ToRoundID     string
	ParticipantID string
	PendingRounds int
	Timestamp     time.Time
}

// AuditEventStore persists the action journal.
type AuditEventStore interface {
	// AppendAuditEvent records an event and assigns its sequence number.
	AppendAuditEvent(ctx context.Context, evt AuditEvent) (AuditEvent, error)
	// ListAuditEvents returns a session's events in append order. A limit of
	// zero means no limit.
	ListAuditEvents(ctx context.Context, sessionID string, limit int) ([]AuditEvent, error)
}
