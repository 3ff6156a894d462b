package identity

// UserStore manages player identities.
type UserStore interface {
	// ResolveUser returns the user with the given display name, creating it
	// first if no user by that name exists.
	ResolveUser(name string, team string) (*User, error)
	// LookupByName returns the user with the given display name or
	// ErrUserNotFound. It never creates.
	LookupByName(name string) (*User, error)
	GetUser(id string) (*User, error)
	GetUsers(ids []string) (map[string]*User, error)
	GetAllUsers() ([]*User, error)
}
