package stats

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spikeware/courtside/internal/database"
	"github.com/spikeware/courtside/internal/identity"
	"github.com/spikeware/courtside/internal/roster"
	"github.com/spikeware/courtside/internal/schedule"
)

func setupTestDB(t *testing.T) (*sql.DB, func()) {
	t.Helper()
	db, teardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err, "Failed to initialize test database")
	return db, teardown
}

func seedUser(t *testing.T, db *sql.DB, name string) *identity.User {
	t.Helper()
	user, err := identity.New(db).ResolveUser(name, "")
	require.NoError(t, err)
	return user
}

func seedMatch(t *testing.T, db *sql.DB, date string, capacity int) *schedule.Match {
	t.Helper()
	match, err := schedule.New(db).CreateMatch(date, "lunch", "12:00", "Open", capacity)
	require.NoError(t, err)
	return match
}

func join(t *testing.T, db *sql.DB, matchID, userID string) {
	t.Helper()
	_, err := roster.New(db).Join(matchID, userID)
	require.NoError(t, err)
}

func TestPlayerStats_CountsAndOrder(t *testing.T) {
	db, teardown := setupTestDB(t)
	defer teardown()

	x := seedUser(t, db, "User X")
	y := seedUser(t, db, "User Y")
	m1 := seedMatch(t, db, "2026-09-01", 4)
	m2 := seedMatch(t, db, "2026-09-02", 4)

	join(t, db, m1.ID, x.ID)
	join(t, db, m1.ID, y.ID)
	join(t, db, m2.ID, x.ID)

	standings, err := New(db).PlayerStats("2026-08-31", "2026-09-06")
	require.NoError(t, err)
	require.Len(t, standings, 2)
	assert.Equal(t, x.ID, standings[0].UserID)
	assert.Equal(t, 2, standings[0].Matches)
	assert.Equal(t, y.ID, standings[1].UserID)
	assert.Equal(t, 1, standings[1].Matches)
}

func TestPlayerStats_TiesKeepFirstAppearanceOrder(t *testing.T) {
	db, teardown := setupTestDB(t)
	defer teardown()

	a := seedUser(t, db, "User A")
	b := seedUser(t, db, "User B")
	m := seedMatch(t, db, "2026-09-01", 4)

	join(t, db, m.ID, b.ID)
	join(t, db, m.ID, a.ID)

	standings, err := New(db).PlayerStats("2026-09-01", "2026-09-01")
	require.NoError(t, err)
	require.Len(t, standings, 2)
	assert.Equal(t, b.ID, standings[0].UserID, "equal counts keep join order")
	assert.Equal(t, a.ID, standings[1].UserID)
}

func TestPlayerStats_ExcludesOutOfRangeAndWaitlisted(t *testing.T) {
	db, teardown := setupTestDB(t)
	defer teardown()

	x := seedUser(t, db, "User X")
	y := seedUser(t, db, "User Y")
	inRange := seedMatch(t, db, "2026-09-01", 1)
	outOfRange := seedMatch(t, db, "2026-10-01", 4)

	join(t, db, inRange.ID, x.ID)
	join(t, db, inRange.ID, y.ID) // capacity 1, so y is waitlisted
	join(t, db, outOfRange.ID, y.ID)

	standings, err := New(db).PlayerStats("2026-08-31", "2026-09-06")
	require.NoError(t, err)
	require.Len(t, standings, 1)
	assert.Equal(t, x.ID, standings[0].UserID)
}

func TestPlayerStats_LeavingRemovesFromTally(t *testing.T) {
	db, teardown := setupTestDB(t)
	defer teardown()

	x := seedUser(t, db, "User X")
	m := seedMatch(t, db, "2026-09-01", 4)
	join(t, db, m.ID, x.ID)

	agg := New(db)
	standings, err := agg.PlayerStats("2026-09-01", "2026-09-01")
	require.NoError(t, err)
	require.Len(t, standings, 1)

	_, err = roster.New(db).Leave(m.ID, x.ID)
	require.NoError(t, err)

	standings, err = agg.PlayerStats("2026-09-01", "2026-09-01")
	require.NoError(t, err)
	assert.Empty(t, standings)
}

func TestUserStats(t *testing.T) {
	db, teardown := setupTestDB(t)
	defer teardown()

	x := seedUser(t, db, "User X")
	thisWeek := seedMatch(t, db, "2026-09-02", 4)
	lastMonth := seedMatch(t, db, "2026-08-05", 4)
	waitlist := seedMatch(t, db, "2026-09-03", 0)

	join(t, db, thisWeek.ID, x.ID)
	join(t, db, lastMonth.ID, x.ID)
	join(t, db, waitlist.ID, x.ID)

	stats, err := New(db).UserStats(x.ID, "2026-08-31", "2026-09-06")
	require.NoError(t, err)
	assert.Equal(t, "User X", stats.Name)
	assert.Equal(t, 1, stats.ThisWeek)
	assert.Equal(t, 2, stats.AllTime)
	assert.Equal(t, 1, stats.Waitlisted)
}

func TestUserStats_UnknownUser(t *testing.T) {
	db, teardown := setupTestDB(t)
	defer teardown()

	_, err := New(db).UserStats("missing", "2026-08-31", "2026-09-06")
	assert.ErrorIs(t, err, identity.ErrUserNotFound)
}
