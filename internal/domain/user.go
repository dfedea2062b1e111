package domain

import "time"

// UserRole enumerates portal access levels.
type UserRole string

const (
	UserRoleUsuario UserRole = "usuario"
	UserRoleAdmin   UserRole = "admin"
)

// User is the domain model for portal accounts. Accounts are never
// hard-deleted; deactivation happens at the auth provider level.
type User struct {
	UID          string    `bson:"_id"`
	DisplayName  string    `bson:"displayName"`
	Email        string    `bson:"email"`
	PasswordHash string    `bson:"passwordHash,omitempty"`
	Role         UserRole  `bson:"role"`
	Providers    []string  `bson:"providers"`
	IsOnline     bool      `bson:"isOnline"`
	LastLogin    time.Time `bson:"lastLogin,omitempty"`
	LastLogout   time.Time `bson:"lastLogout,omitempty"`
	CreatedAt    time.Time `bson:"createdAt"`
}

// HasProvider reports whether the given identity provider is linked.
func (u *User) HasProvider(provider string) bool {
	for _, p := range u.Providers {
		if p == provider {
			return true
		}
	}
	return false
}
