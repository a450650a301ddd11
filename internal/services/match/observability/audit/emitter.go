// Package audit journals the engine's corrective actions.
//
// The reconciler's action list is the engine's only observability surface;
// the emitter turns each action into a durable audit event. This is
// operational journaling, distinct from the entity state the store holds.
package audit

import (
	"context"
	"time"

	"github.com/louisbranch/scrimmage.space/internal/services/match/domain/reconcile"
	"github.com/louisbranch/scrimmage.space/internal/services/match/storage"
)

// Emitter records audit events.
type Emitter struct {
	store storage.AuditEventStore
	clock func() time.Time
}

// NewEmitter creates an audit event emitter. A nil store makes every emit a no-op.
func NewEmitter(store storage.AuditEventStore) *Emitter {
	return &Emitter{store: store, clock: time.Now}
}

// Emit records an audit event. It is a no-op when the store is nil.
func (e *Emitter) Emit(ctx context.Context, evt storage.AuditEvent) error {
	if e == nil || e.store == nil {
		return nil
	}
	if evt.Timestamp.IsZero() {
		clock := e.clock
		if clock == nil {
			clock = time.Now
		}
		evt.Timestamp = clock().UTC()
	}
	_, err := e.store.AppendAuditEvent(ctx, evt)
	return err
}

// EmitAction journals one reconciler action for a session.
func (e *Emitter) EmitAction(ctx context.Context, sessionID string, action reconcile.Action) error {
	return e.Emit(ctx, storage.AuditEvent{
		SessionID:     sessionID,
		Kind:          string(action.Type),
		Reason:        string(action.Reason),
		RoundID:       action.RoundID,
		FromRoundID:   action.FromRoundID,
		ToRoundID:     action.ToRoundID,
		ParticipantID: action.ParticipantID,
		PendingRounds: action.PendingRounds,
	})
}
