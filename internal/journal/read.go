package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/euclid/internal/stepper"
)

// ErrNotFound reports a lookup for a session the journal has never seen.
var ErrNotFound = errors.New("session not found")

// SessionRecord is one journaled session.
type SessionRecord struct {
	Token     string
	PropID    string
	CreatedAt string
}

// ActionRecord is one journaled action, decoded and ready to dispatch.
type ActionRecord struct {
	ID       string
	Seq      int64
	Kind     string
	Accepted bool
	Action   stepper.Action
}

// Session returns one session's record.
func (s *Store) Session(ctx context.Context, token string) (SessionRecord, error) {
	var rec SessionRecord
	err := s.db.QueryRowContext(ctx,
		`SELECT token, prop_id, created_at FROM sessions WHERE token = ?`,
		token).Scan(&rec.Token, &rec.PropID, &rec.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return SessionRecord{}, fmt.Errorf("session %s: %w", token, ErrNotFound)
	}
	if err != nil {
		return SessionRecord{}, fmt.Errorf("read session %s: %w", token, err)
	}
	return rec, nil
}

// ListSessions returns all sessions, oldest first. UUIDv7 tokens sort
// chronologically, so token order is creation order.
func (s *Store) ListSessions(ctx context.Context) ([]SessionRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT token, prop_id, created_at FROM sessions ORDER BY token`)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var out []SessionRecord
	for rows.Next() {
		var rec SessionRecord
		if err := rows.Scan(&rec.Token, &rec.PropID, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("list sessions: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	return out, nil
}

// Actions returns a session's journaled actions in sequence order.
func (s *Store) Actions(ctx context.Context, token string) ([]ActionRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, seq, kind, payload, accepted FROM actions
		 WHERE session_token = ? ORDER BY seq`,
		token)
	if err != nil {
		return nil, fmt.Errorf("read actions for %s: %w", token, err)
	}
	defer rows.Close()

	var out []ActionRecord
	for rows.Next() {
		var (
			rec      ActionRecord
			payload  string
			accepted int
		)
		if err := rows.Scan(&rec.ID, &rec.Seq, &rec.Kind, &payload, &accepted); err != nil {
			return nil, fmt.Errorf("read actions for %s: %w", token, err)
		}
		rec.Accepted = accepted != 0

		val, err := UnmarshalCanonical([]byte(payload))
		if err != nil {
			return nil, fmt.Errorf("action %s: %w", rec.ID, err)
		}
		obj, ok := val.(VObject)
		if !ok {
			return nil, fmt.Errorf("action %s: payload is not an object", rec.ID)
		}
		rec.Action, err = DecodeAction(obj)
		if err != nil {
			return nil, fmt.Errorf("action %s: %w", rec.ID, err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read actions for %s: %w", token, err)
	}
	return out, nil
}
