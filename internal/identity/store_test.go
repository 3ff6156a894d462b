package identity

import (
	"database/sql"
	"testing"

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

func TestResolveUser_CreatesWhenMissing(t *testing.T) {
	db, teardown := setupTestDB(t)
	defer teardown()
	store := New(db)

	user, err := store.ResolveUser("Sofia Berg", "")
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "Sofia Berg", user.Name)
	assert.Equal(t, "Team", user.Team)
	assert.Equal(t, "SB", user.Avatar)
}

func TestResolveUser_ReturnsExisting(t *testing.T) {
	db, teardown := setupTestDB(t)
	defer teardown()
	store := New(db)

	first, err := store.ResolveUser("Sofia Berg", "")
	require.NoError(t, err)

	// Resolving the same name again must not create a second user, and must
	// not overwrite the stored team.
	second, err := store.ResolveUser("Sofia Berg", "Engineering")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "Team", second.Team)

	all, err := store.GetAllUsers()
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestResolveUser_Initials(t *testing.T) {
	db, teardown := setupTestDB(t)
	defer teardown()
	store := New(db)

	tests := []struct {
		name string
		want string
	}{
		{"Anna Maria Svensson", "AM"},
		{"Bo", "B"},
		{"erik lund", "EL"},
	}
	for _, tc := range tests {
		user, err := store.ResolveUser(tc.name, "")
		require.NoError(t, err)
		assert.Equal(t, tc.want, user.Avatar, "initials for %q", tc.name)
	}
}

func TestLookupByName_DoesNotCreate(t *testing.T) {
	db, teardown := setupTestDB(t)
	defer teardown()
	store := New(db)

	_, err := store.LookupByName("Nobody Here")
	assert.ErrorIs(t, err, ErrUserNotFound)

	all, err := store.GetAllUsers()
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestGetUsers(t *testing.T) {
	db, teardown := setupTestDB(t)
	defer teardown()
	store := New(db)

	a, err := store.ResolveUser("Alice A", "")
	require.NoError(t, err)
	b, err := store.ResolveUser("Bob B", "")
	require.NoError(t, err)

	users, err := store.GetUsers([]string{a.ID, b.ID, "missing-id"})
	require.NoError(t, err)
	assert.Len(t, users, 2)
	assert.Equal(t, "Alice A", users[a.ID].Name)
	assert.Equal(t, "Bob B", users[b.ID].Name)

	empty, err := store.GetUsers(nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestGetUser_NotFound(t *testing.T) {
	db, teardown := setupTestDB(t)
	defer teardown()
	store := New(db)

	_, err := store.GetUser("nope")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
