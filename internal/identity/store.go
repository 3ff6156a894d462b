package identity

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// ErrUserNotFound is returned by lookups that refuse to create.
var ErrUserNotFound = errors.New("user not found")

type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new UserStore backed by the given database.
func New(db *sql.DB) UserStore {
	return &store{db: db}
}

func (s *store) ResolveUser(name string, team string) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, err := s.getByName(name)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, ErrUserNotFound) {
		return nil, err
	}

	if team == "" {
		team = "Team"
	}
	user = &User{
		ID:        uuid.NewString(),
		Name:      name,
		Team:      team,
		Avatar:    initials(name),
		CreatedAt: time.Now(),
	}
	_, err = s.db.Exec(
		"INSERT INTO users (id, name, team, avatar, created_at) VALUES (?, ?, ?, ?, ?)",
		user.ID, user.Name, user.Team, user.Avatar, user.CreatedAt.Unix(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create user %q: %w", name, err)
	}
	log.Info("Created user", "id", user.ID, "name", user.Name)
	return user, nil
}

func (s *store) LookupByName(name string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.getByName(name)
}

func (s *store) getByName(name string) (*User, error) {
	row := s.db.QueryRow("SELECT id, name, team, avatar, created_at FROM users WHERE name = ?", name)
	return scanUser(row)
}

func (s *store) GetUser(id string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRow("SELECT id, name, team, avatar, created_at FROM users WHERE id = ?", id)
	return scanUser(row)
}

func (s *store) GetUsers(ids []string) (map[string]*User, error) {
	if len(ids) == 0 {
		return map[string]*User{}, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	placeholders := strings.Repeat("?,", len(ids)-1) + "?"
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	rows, err := s.db.Query(
		"SELECT id, name, team, avatar, created_at FROM users WHERE id IN ("+placeholders+")", args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	users := make(map[string]*User)
	for rows.Next() {
		user, err := scanUserRows(rows)
		if err != nil {
			return nil, err
		}
		users[user.ID] = user
	}
	return users, rows.Err()
}

func (s *store) GetAllUsers() ([]*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query("SELECT id, name, team, avatar, created_at FROM users ORDER BY name ASC")
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	var users []*User
	for rows.Next() {
		user, err := scanUserRows(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

func scanUser(row *sql.Row) (*User, error) {
	var user User
	var createdAt int64
	err := row.Scan(&user.ID, &user.Name, &user.Team, &user.Avatar, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}
	user.CreatedAt = time.Unix(createdAt, 0)
	return &user, nil
}

func scanUserRows(rows *sql.Rows) (*User, error) {
	var user User
	var createdAt int64
	if err := rows.Scan(&user.ID, &user.Name, &user.Team, &user.Avatar, &createdAt); err != nil {
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}
	user.CreatedAt = time.Unix(createdAt, 0)
	return &user, nil
}

// initials derives an avatar tag from a display name, e.g. "Sofia Berg" -> "SB".
func initials(name string) string {
	var out []rune
	for _, part := range strings.Fields(name) {
		first := []rune(part)[0]
		out = append(out, []rune(strings.ToUpper(string(first)))...)
	}
	if len(out) > 2 {
		out = out[:2]
	}
	return string(out)
}
