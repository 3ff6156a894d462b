package roster

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spikeware/courtside/internal/database"
	"github.com/spikeware/courtside/internal/schedule"
)

func setupTestDB(t *testing.T) (*sql.DB, func()) {
	t.Helper()
	db, teardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err, "Failed to initialize test database")
	return db, teardown
}

func createTestMatch(t *testing.T, db *sql.DB, capacity int) *schedule.Match {
	t.Helper()
	match, err := schedule.New(db).CreateMatch("2026-09-01", "lunch", "12:00", "Open", capacity)
	require.NoError(t, err)
	return match
}

func createTestUser(t *testing.T, db *sql.DB, id string) {
	t.Helper()
	_, err := db.Exec(
		"INSERT INTO users (id, name, team, avatar, created_at) VALUES (?, ?, 'Team', '', 0)",
		id, "User "+id,
	)
	require.NoError(t, err)
}

func matchStatus(t *testing.T, db *sql.DB, matchID string) string {
	t.Helper()
	var status string
	require.NoError(t, db.QueryRow("SELECT status FROM matches WHERE id = ?", matchID).Scan(&status))
	return status
}

func TestJoin_ConfirmsUntilCapacity(t *testing.T) {
	db, teardown := setupTestDB(t)
	defer teardown()
	store := New(db)
	match := createTestMatch(t, db, 2)
	for _, u := range []string{"a", "b", "c"} {
		createTestUser(t, db, u)
	}

	first, err := store.Join(match.ID, "a")
	require.NoError(t, err)
	assert.Equal(t, StatusConfirmed, first.RSVP.Status)
	assert.False(t, first.MatchFull)
	assert.Equal(t, schedule.StatusOpen, matchStatus(t, db, match.ID))

	second, err := store.Join(match.ID, "b")
	require.NoError(t, err)
	assert.Equal(t, StatusConfirmed, second.RSVP.Status)
	assert.True(t, second.MatchFull, "second join fills the last slot")
	assert.Equal(t, schedule.StatusFull, matchStatus(t, db, match.ID))

	third, err := store.Join(match.ID, "c")
	require.NoError(t, err)
	assert.Equal(t, StatusWaitlisted, third.RSVP.Status)
	assert.False(t, third.MatchFull)

	count, err := store.ConfirmedCount(match.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestJoin_Errors(t *testing.T) {
	db, teardown := setupTestDB(t)
	defer teardown()
	store := New(db)
	match := createTestMatch(t, db, 4)
	createTestUser(t, db, "a")

	_, err := store.Join("missing", "a")
	assert.ErrorIs(t, err, ErrMatchNotFound)

	_, err = store.Join(match.ID, "a")
	require.NoError(t, err)
	_, err = store.Join(match.ID, "a")
	assert.ErrorIs(t, err, ErrAlreadyJoined)

	// A waitlisted player joining again is also rejected.
	small := createTestMatch(t, db, 0)
	createTestUser(t, db, "b")
	res, err := store.Join(small.ID, "b")
	require.NoError(t, err)
	assert.Equal(t, StatusWaitlisted, res.RSVP.Status)
	_, err = store.Join(small.ID, "b")
	assert.ErrorIs(t, err, ErrAlreadyJoined)
}

func TestJoin_CancelledMatch(t *testing.T) {
	db, teardown := setupTestDB(t)
	defer teardown()
	store := New(db)
	match := createTestMatch(t, db, 4)
	createTestUser(t, db, "a")

	require.NoError(t, schedule.New(db).CancelMatch(match.ID))
	_, err := store.Join(match.ID, "a")
	assert.ErrorIs(t, err, ErrMatchCancelled)
}

func TestJoin_ZeroCapacityWaitlistsImmediately(t *testing.T) {
	db, teardown := setupTestDB(t)
	defer teardown()
	store := New(db)
	match := createTestMatch(t, db, 0)
	createTestUser(t, db, "a")

	res, err := store.Join(match.ID, "a")
	require.NoError(t, err)
	assert.Equal(t, StatusWaitlisted, res.RSVP.Status)
	assert.Equal(t, schedule.StatusFull, matchStatus(t, db, match.ID))
}

func TestLeave_PromotesInJoinOrder(t *testing.T) {
	db, teardown := setupTestDB(t)
	defer teardown()
	store := New(db)
	match := createTestMatch(t, db, 2)
	for _, u := range []string{"a", "b", "c", "d"} {
		createTestUser(t, db, u)
		_, err := store.Join(match.ID, u)
		require.NoError(t, err)
	}

	// a and b hold the slots, c and d wait in join order.
	res, err := store.Leave(match.ID, "a")
	require.NoError(t, err)
	assert.True(t, res.WasConfirmed)
	require.NotNil(t, res.Promoted)
	assert.Equal(t, "c", res.Promoted.UserID)
	assert.Equal(t, schedule.StatusFull, matchStatus(t, db, match.ID), "promotion keeps the match full")

	res, err = store.Leave(match.ID, "b")
	require.NoError(t, err)
	require.NotNil(t, res.Promoted)
	assert.Equal(t, "d", res.Promoted.UserID)

	count, err := store.ConfirmedCount(match.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestLeave_NoWaitlistReopensMatch(t *testing.T) {
	db, teardown := setupTestDB(t)
	defer teardown()
	store := New(db)
	match := createTestMatch(t, db, 1)
	createTestUser(t, db, "a")

	_, err := store.Join(match.ID, "a")
	require.NoError(t, err)
	assert.Equal(t, schedule.StatusFull, matchStatus(t, db, match.ID))

	res, err := store.Leave(match.ID, "a")
	require.NoError(t, err)
	assert.True(t, res.WasConfirmed)
	assert.Nil(t, res.Promoted)
	assert.Equal(t, schedule.StatusOpen, matchStatus(t, db, match.ID))
}

func TestLeave_WaitlistedLeaveDoesNotPromote(t *testing.T) {
	db, teardown := setupTestDB(t)
	defer teardown()
	store := New(db)
	match := createTestMatch(t, db, 1)
	for _, u := range []string{"a", "b", "c"} {
		createTestUser(t, db, u)
		_, err := store.Join(match.ID, u)
		require.NoError(t, err)
	}

	res, err := store.Leave(match.ID, "b")
	require.NoError(t, err)
	assert.False(t, res.WasConfirmed)
	assert.Nil(t, res.Promoted)

	rsvps, err := store.RSVPsForMatch(match.ID)
	require.NoError(t, err)
	require.Len(t, rsvps, 2)
	assert.Equal(t, StatusConfirmed, rsvps[0].Status)
	assert.Equal(t, "a", rsvps[0].UserID)
	assert.Equal(t, StatusWaitlisted, rsvps[1].Status)
}

func TestLeave_Errors(t *testing.T) {
	db, teardown := setupTestDB(t)
	defer teardown()
	store := New(db)
	match := createTestMatch(t, db, 2)
	createTestUser(t, db, "a")

	_, err := store.Leave("missing", "a")
	assert.ErrorIs(t, err, ErrMatchNotFound)

	_, err = store.Leave(match.ID, "a")
	assert.ErrorIs(t, err, ErrNotJoined)
}

func TestPromote_Standalone(t *testing.T) {
	db, teardown := setupTestDB(t)
	defer teardown()
	store := New(db)
	match := createTestMatch(t, db, 2)
	for _, u := range []string{"a", "b", "c"} {
		createTestUser(t, db, u)
		_, err := store.Join(match.ID, u)
		require.NoError(t, err)
	}

	// Match is full, so there is nothing to promote into.
	promoted, err := store.Promote(match.ID)
	require.NoError(t, err)
	assert.Nil(t, promoted)

	// Free a slot without going through Leave.
	_, err = db.Exec("DELETE FROM rsvps WHERE match_id = ? AND user_id = 'a'", match.ID)
	require.NoError(t, err)

	promoted, err = store.Promote(match.ID)
	require.NoError(t, err)
	require.NotNil(t, promoted)
	assert.Equal(t, "c", promoted.UserID)
	assert.Equal(t, StatusConfirmed, promoted.Status)
	assert.Equal(t, schedule.StatusFull, matchStatus(t, db, match.ID))

	// Empty waitlist is a no-op, not an error.
	_, err = db.Exec("DELETE FROM rsvps WHERE match_id = ? AND user_id = 'b'", match.ID)
	require.NoError(t, err)
	promoted, err = store.Promote(match.ID)
	require.NoError(t, err)
	assert.Nil(t, promoted)
}

func TestPromote_CancelledMatch(t *testing.T) {
	db, teardown := setupTestDB(t)
	defer teardown()
	store := New(db)
	match := createTestMatch(t, db, 2)
	require.NoError(t, schedule.New(db).CancelMatch(match.ID))

	_, err := store.Promote(match.ID)
	assert.ErrorIs(t, err, ErrMatchCancelled)
}

func TestRSVPsForUser(t *testing.T) {
	db, teardown := setupTestDB(t)
	defer teardown()
	store := New(db)
	first := createTestMatch(t, db, 4)
	second := createTestMatch(t, db, 4)
	createTestUser(t, db, "a")

	_, err := store.Join(first.ID, "a")
	require.NoError(t, err)
	_, err = store.Join(second.ID, "a")
	require.NoError(t, err)

	rsvps, err := store.RSVPsForUser("a")
	require.NoError(t, err)
	assert.Len(t, rsvps, 2)
}
