package schedule

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spikeware/courtside/internal/database"
)

func setupTestDB(t *testing.T) (*sql.DB, func()) {
	t.Helper()
	db, teardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err, "Failed to initialize test database")
	return db, teardown
}

func TestEnsureWeeklySlots_SkipsWeekends(t *testing.T) {
	db, teardown := setupTestDB(t)
	defer teardown()
	store := New(db)

	// 2026-08-31 is a Monday, so the seven-day window holds five weekdays.
	base := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	created, err := store.EnsureWeeklySlots(base)
	require.NoError(t, err)
	assert.Equal(t, 5*len(DefaultSlots), created)

	matches, err := store.MatchesInRange("2026-08-31", "2026-09-06")
	require.NoError(t, err)
	assert.Len(t, matches, 15)
	for _, m := range matches {
		day, err := time.Parse(DateFormat, m.Date)
		require.NoError(t, err)
		assert.NotEqual(t, time.Saturday, day.Weekday())
		assert.NotEqual(t, time.Sunday, day.Weekday())
		assert.Equal(t, DefaultCapacity, m.Capacity)
		assert.Equal(t, StatusOpen, m.Status)
	}
}

func TestEnsureWeeklySlots_Idempotent(t *testing.T) {
	db, teardown := setupTestDB(t)
	defer teardown()
	store := New(db)

	base := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	_, err := store.EnsureWeeklySlots(base)
	require.NoError(t, err)

	created, err := store.EnsureWeeklySlots(base)
	require.NoError(t, err)
	assert.Equal(t, 0, created, "second run should create nothing")
}

func TestEnsureWeeklySlots_MidWeekStart(t *testing.T) {
	db, teardown := setupTestDB(t)
	defer teardown()
	store := New(db)

	// Starting on a Thursday covers Thu+Fri then Mon+Tue+Wed of the next week.
	base := time.Date(2026, 9, 3, 0, 0, 0, 0, time.UTC)
	created, err := store.EnsureWeeklySlots(base)
	require.NoError(t, err)
	assert.Equal(t, 5*len(DefaultSlots), created)
}

func TestCreateAndGetMatch(t *testing.T) {
	db, teardown := setupTestDB(t)
	defer teardown()
	store := New(db)

	match, err := store.CreateMatch("2026-09-01", "lunch", "12:00", "", 4)
	require.NoError(t, err)
	assert.Equal(t, "Open", match.MatchType)

	got, err := store.GetMatch(match.ID)
	require.NoError(t, err)
	assert.Equal(t, match.ID, got.ID)
	assert.Equal(t, "lunch", got.TimeSlot)
	assert.Equal(t, StatusOpen, got.Status)
}

func TestGetMatch_NotFound(t *testing.T) {
	db, teardown := setupTestDB(t)
	defer teardown()
	store := New(db)

	_, err := store.GetMatch("missing")
	assert.ErrorIs(t, err, ErrMatchNotFound)
}

func TestCancelMatch(t *testing.T) {
	db, teardown := setupTestDB(t)
	defer teardown()
	store := New(db)

	match, err := store.CreateMatch("2026-09-01", "morning", "07:30", "Open", 4)
	require.NoError(t, err)

	require.NoError(t, store.CancelMatch(match.ID))
	got, err := store.GetMatch(match.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, got.Status)

	assert.ErrorIs(t, store.CancelMatch("missing"), ErrMatchNotFound)
}

func TestWeekBounds(t *testing.T) {
	tests := []struct {
		day   time.Time
		start string
		end   string
	}{
		{time.Date(2026, 9, 2, 15, 0, 0, 0, time.UTC), "2026-08-31", "2026-09-06"}, // Wednesday
		{time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC), "2026-08-31", "2026-09-06"}, // Monday
		{time.Date(2026, 9, 6, 23, 0, 0, 0, time.UTC), "2026-08-31", "2026-09-06"}, // Sunday
	}
	for _, tc := range tests {
		start, end := WeekBounds(tc.day)
		assert.Equal(t, tc.start, start)
		assert.Equal(t, tc.end, end)
	}
}
