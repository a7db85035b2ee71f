package journal

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/euclid/internal/construction"
	"github.com/roach88/euclid/internal/intersect"
	"github.com/roach88/euclid/internal/prop"
	"github.com/roach88/euclid/internal/stepper"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "journal.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.db")

	s1, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s1.Close())

	s2, err := Open(path)
	require.NoError(t, err)
	assert.NoError(t, s2.Close())
}

func TestEncodeDecodeActions(t *testing.T) {
	actions := []stepper.Action{
		stepper.CommitCompass{CenterID: "A", RadiusPointID: "B"},
		stepper.CommitSegment{FromID: "C", ToID: "A"},
		stepper.MarkIntersection{Candidate: intersect.Candidate{
			X: 0, Y: 3.4641016151377544, OfA: "c1", OfB: "c2", Which: 0,
		}},
		stepper.InvokeMacro{PropID: "I.1", InputPointIDs: []string{"A", "B"}},
		stepper.CommitExtend{BaseID: "A", ThroughID: "B"},
	}
	for _, a := range actions {
		obj, err := EncodeAction(a)
		require.NoError(t, err)
		back, err := DecodeAction(obj)
		require.NoError(t, err)
		assert.Equal(t, a, back)
	}
}

func TestDecodeActionUnknownKind(t *testing.T) {
	_, err := DecodeAction(VObject{"kind": VString("teleport")})
	assert.Error(t, err)

	_, err = DecodeAction(VObject{})
	assert.Error(t, err)
}

func TestAppendAndReadBack(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.CreateSession(ctx, "session-1", "I.1"))

	actions := []stepper.Action{
		stepper.CommitCompass{CenterID: "A", RadiusPointID: "B"},
		stepper.CommitCompass{CenterID: "B", RadiusPointID: "A"},
	}
	for i, a := range actions {
		res, err := s.AppendAction(ctx, "session-1", int64(i+1), a, true)
		require.NoError(t, err)
		assert.True(t, res.Inserted)
		assert.Len(t, res.ID, 64)
	}

	rec, err := s.Session(ctx, "session-1")
	require.NoError(t, err)
	assert.Equal(t, "I.1", rec.PropID)
	assert.NotEmpty(t, rec.CreatedAt)

	got, err := s.Actions(ctx, "session-1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	for i, r := range got {
		assert.Equal(t, int64(i+1), r.Seq)
		assert.Equal(t, "compass", r.Kind)
		assert.True(t, r.Accepted)
		assert.Equal(t, actions[i], r.Action)
	}
}

func TestAppendIsIdempotent(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.CreateSession(ctx, "session-1", "I.1"))

	a := stepper.CommitCompass{CenterID: "A", RadiusPointID: "B"}
	first, err := s.AppendAction(ctx, "session-1", 1, a, true)
	require.NoError(t, err)
	assert.True(t, first.Inserted)

	second, err := s.AppendAction(ctx, "session-1", 1, a, true)
	require.NoError(t, err)
	assert.False(t, second.Inserted)
	assert.Equal(t, first.ID, second.ID)

	got, err := s.Actions(ctx, "session-1")
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestCreateSessionIsIdempotent(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.CreateSession(ctx, "session-1", "I.1"))
	require.NoError(t, s.CreateSession(ctx, "session-1", "I.1"))

	sessions, err := s.ListSessions(ctx)
	require.NoError(t, err)
	assert.Len(t, sessions, 1)
}

func TestSessionNotFound(t *testing.T) {
	s := openTestStore(t)
	_, err := s.Session(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestJournaledSessionReplaysIdentically(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	reg := prop.Builtin()

	// Play I.1 live and journal every dispatch, rejections included.
	live, err := stepper.NewSession(reg, "I.1", stepper.Options{
		TokenGen: stepper.NewFixedGenerator("session-1"),
	})
	require.NoError(t, err)
	require.NoError(t, s.CreateSession(ctx, live.Token, "I.1"))

	dispatchAndJournal := func(seq int64, a stepper.Action) {
		out := live.Dispatch(a)
		_, err := s.AppendAction(ctx, live.Token, seq, a, out.Accepted)
		require.NoError(t, err)
	}

	dispatchAndJournal(1, stepper.CommitCompass{CenterID: "A", RadiusPointID: "B"})
	dispatchAndJournal(2, stepper.CommitSegment{FromID: "A", ToID: "B"}) // rejected
	dispatchAndJournal(3, stepper.CommitCompass{CenterID: "B", RadiusPointID: "A"})

	circles := construction.AllCircles(live.State)
	require.Len(t, circles, 2)
	cands := intersect.Candidates(live.State, circles[0].ID, circles[1].ID, intersect.Options{})
	pick, ok := intersect.Pick(cands)
	require.True(t, ok)
	dispatchAndJournal(4, stepper.MarkIntersection{Candidate: pick})
	dispatchAndJournal(5, stepper.CommitSegment{FromID: "C", ToID: "A"})
	dispatchAndJournal(6, stepper.CommitSegment{FromID: "C", ToID: "B"})
	require.True(t, live.Complete)

	// Read the full log back and replay it through a fresh session.
	records, err := s.Actions(ctx, live.Token)
	require.NoError(t, err)
	require.Len(t, records, 6)

	replayed, err := stepper.NewSession(reg, "I.1", stepper.Options{
		TokenGen: stepper.NewFixedGenerator("session-1"),
	})
	require.NoError(t, err)
	for _, r := range records {
		out := replayed.Dispatch(r.Action)
		assert.Equal(t, r.Accepted, out.Accepted)
	}

	assert.True(t, replayed.Complete)
	assert.Equal(t, live.State, replayed.State)
	assert.Equal(t, live.Facts.Facts, replayed.Facts.Facts)
}
