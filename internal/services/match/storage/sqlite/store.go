// Package sqlite provides the SQLite-backed audit journal store.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/louisbranch/scrimmage.space/internal/platform/storage/sqlitemigrate"
	"github.com/louisbranch/scrimmage.space/internal/services/match/storage"
	"github.com/louisbranch/scrimmage.space/internal/services/match/storage/sqlite/migrations"
)

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Store is a SQLite-backed storage.AuditEventStore.
type Store struct {
	sqlDB *sql.DB
}

// Open opens (and migrates) the journal database at path.
func Open(path string) (*Store, error) {
	sqlDB, err := sql.Open("sqlite", "file:"+path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlitemigrate.ApplyMigrations(sqlDB, migrations.FS, "."); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("apply migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// AppendAuditEvent records an event and assigns its sequence number.
func (s *Store) AppendAuditEvent(ctx context.Context, evt storage.AuditEvent) (storage.AuditEvent, error) {
	if err := ctx.Err(); err != nil {
		return storage.AuditEvent{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.AuditEvent{}, fmt.Errorf("storage is not configured")
	}
	if evt.Timestamp.IsZero() {
		evt.Timestamp = time.Now().UTC()
	}
	evt.Timestamp = evt.Timestamp.UTC().Truncate(time.Millisecond)

	res, err := s.sqlDB.ExecContext(ctx, `
INSERT INTO audit_events (
    session_id, kind, reason, round_id, from_round_id, to_round_id,
    participant_id, pending_rounds, timestamp
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		evt.SessionID, evt.Kind, evt.Reason, evt.RoundID, evt.FromRoundID,
		evt.ToRoundID, evt.ParticipantID, evt.PendingRounds, toMillis(evt.Timestamp),
	)
	if err != nil {
		return storage.AuditEvent{}, fmt.Errorf("append audit event: %w", err)
	}
	seq, err := res.LastInsertId()
	if err != nil {
		return storage.AuditEvent{}, fmt.Errorf("audit event seq: %w", err)
	}
	evt.Seq = seq
	return evt, nil
}

// ListAuditEvents returns a session's events in append order.
func (s *Store) ListAuditEvents(ctx context.Context, sessionID string, limit int) ([]storage.AuditEvent, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}

	query := `
SELECT seq, session_id, kind, reason, round_id, from_round_id, to_round_id,
       participant_id, pending_rounds, timestamp
FROM audit_events
WHERE session_id = ?
ORDER BY seq ASC`
	args := []any{sessionID}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.sqlDB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list audit events: %w", err)
	}
	defer rows.Close()

	var out []storage.AuditEvent
	for rows.Next() {
		var evt storage.AuditEvent
		var millis int64
		if err := rows.Scan(
			&evt.Seq, &evt.SessionID, &evt.Kind, &evt.Reason, &evt.RoundID,
			&evt.FromRoundID, &evt.ToRoundID, &evt.ParticipantID,
			&evt.PendingRounds, &millis,
		); err != nil {
			return nil, fmt.Errorf("scan audit event: %w", err)
		}
		evt.Timestamp = fromMillis(millis)
		out = append(out, evt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit events: %w", err)
	}
	return out, nil
}
