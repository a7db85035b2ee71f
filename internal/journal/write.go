package journal

import (
	"context"
	"fmt"

	"github.com/roach88/euclid/internal/stepper"
)

// AppendResult reports one append. Inserted is false when the identical
// action was already journaled, which a replayed append always hits.
type AppendResult struct {
	ID       string
	Inserted bool
}

// CreateSession records a session. Idempotent: re-creating an existing
// token is a no-op.
func (s *Store) CreateSession(ctx context.Context, token, propID string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO sessions (token, prop_id) VALUES (?, ?)`,
		token, propID)
	if err != nil {
		return fmt.Errorf("create session %s: %w", token, err)
	}
	return nil
}

// AppendAction journals one dispatched action under its content-addressed
// ID. Idempotency is structural: the same (session, seq, payload) triple
// hashes to the same ID, and INSERT OR IGNORE makes the duplicate write a
// no-op, so replaying a log through the same code path cannot double-write.
func (s *Store) AppendAction(ctx context.Context, token string, seq int64, action stepper.Action, accepted bool) (AppendResult, error) {
	payload, err := EncodeAction(action)
	if err != nil {
		return AppendResult{}, fmt.Errorf("append action: %w", err)
	}
	canonical, err := MarshalCanonical(payload)
	if err != nil {
		return AppendResult{}, fmt.Errorf("append action: %w", err)
	}
	id, err := ActionID(token, seq, payload)
	if err != nil {
		return AppendResult{}, fmt.Errorf("append action: %w", err)
	}

	kind, err := stringField(payload, "kind")
	if err != nil {
		return AppendResult{}, fmt.Errorf("append action: %w", err)
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO actions (id, session_token, seq, kind, payload, accepted)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		id, token, seq, kind, string(canonical), boolToInt(accepted))
	if err != nil {
		return AppendResult{}, fmt.Errorf("append action %s: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return AppendResult{}, fmt.Errorf("append action %s: %w", id, err)
	}
	return AppendResult{ID: id, Inserted: affected > 0}, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
