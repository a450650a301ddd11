// Package app composes the match engine for a host: it owns the entity store,
// the reconciler, and the audit emitter, and serializes every mutating
// operation behind a single writer lock.
//
// The engine's read-then-write sequences are not individually atomic, so a
// multi-threaded host must funnel all mutations through one Service.
package app

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/louisbranch/scrimmage.space/internal/services/match/domain/entity"
	"github.com/louisbranch/scrimmage.space/internal/services/match/domain/reconcile"
	"github.com/louisbranch/scrimmage.space/internal/services/match/domain/store"
	"github.com/louisbranch/scrimmage.space/internal/services/match/domain/view"
	"github.com/louisbranch/scrimmage.space/internal/services/match/observability/audit"
	"github.com/louisbranch/scrimmage.space/internal/services/match/storage"
)

const tracerName = "github.com/louisbranch/scrimmage.space/internal/services/match/app"

// Service is the single writer over one session engine.
type Service struct {
	mu         sync.Mutex
	store      *store.Store
	reconciler *reconcile.Reconciler
	views      *view.Builder
	emitter    *audit.Emitter
	tracer     trace.Tracer
}

// Option configures a Service.
type Option func(*Service)

// WithAuditStore journals reconciler actions to the given store.
func WithAuditStore(auditStore storage.AuditEventStore) Option {
	return func(s *Service) {
		s.emitter = audit.NewEmitter(auditStore)
	}
}

// New creates a Service with an empty engine.
func New(opts ...Option) *Service {
	engineStore := store.New()
	s := &Service{
		store:      engineStore,
		reconciler: reconcile.New(engineStore),
		views:      view.NewBuilder(),
		emitter:    audit.NewEmitter(nil),
		tracer:     otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Hydrate loads a full session snapshot. It does not reconcile; callers chain
// VerifyIntegrity explicitly, matching the remote service's contract.
func (s *Service) Hydrate(ctx context.Context, snap store.Snapshot) error {
	ctx, span := s.tracer.Start(ctx, "match.Hydrate",
		trace.WithAttributes(attribute.String("session.id", snap.Session.ID)))
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Hydrate(snap)
}

// RegisterResult appends one result and applies the round completion rule.
func (s *Service) RegisterResult(ctx context.Context, input store.ResultInput) (entity.Result, error) {
	ctx, span := s.tracer.Start(ctx, "match.RegisterResult",
		trace.WithAttributes(
			attribute.String("round.id", input.RoundID),
			attribute.String("participant.id", input.ParticipantID),
		))
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.RegisterResult(input)
}

// VerifyIntegrity runs one reconciliation pass and journals every action.
func (s *Service) VerifyIntegrity(ctx context.Context, lockRoundAdvance bool) ([]reconcile.Action, error) {
	ctx, span := s.tracer.Start(ctx, "match.VerifyIntegrity",
		trace.WithAttributes(attribute.Bool("lock_round_advance", lockRoundAdvance)))
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	sessionID := s.store.ActiveSessionID()
	actions := s.reconciler.VerifyIntegrity(lockRoundAdvance)
	span.SetAttributes(attribute.Int("actions", len(actions)))

	for _, action := range actions {
		if err := s.emitter.EmitAction(ctx, sessionID, action); err != nil {
			return actions, err
		}
	}
	return actions, nil
}

// SetCurrentRound manually points the session at a round. Guarded no-op when
// unchanged.
func (s *Service) SetCurrentRound(ctx context.Context, roundID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.SetCurrentRound(roundID)
}

// SetCurrentParticipant manually points the session at a participant. Guarded
// no-op when unchanged.
func (s *Service) SetCurrentParticipant(ctx context.Context, participantID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.SetCurrentParticipant(participantID)
}

// Reset clears all engine state.
func (s *Service) Reset(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.store.Reset()
}

// Views returns the memoized derived views of the active session.
func (s *Service) Views() *view.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.views.Snapshot(s.store)
}
