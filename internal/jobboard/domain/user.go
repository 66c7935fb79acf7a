package domain

import "time"

// Roles a user can hold. Role changes must take effect on the next guarded
// call, which is why identity is always rebuilt from the stored row.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

type User struct {
	ID             string // UUIDv4
	Username       string
	Email          string
	HashedPassword string // argon2id, PHC encoded
	Role           string
	CreatedAt      time.Time
	UpdatedAt      *time.Time
}

// AuthenticatedIdentity is the minimal projection of a user that guards and
// resolvers work with. It is only ever derived from a freshly fetched row;
// token claims locate the row but are never trusted as its current state.
type AuthenticatedIdentity struct {
	ID       string
	Username string
	Email    string
}
