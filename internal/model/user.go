package model

import "time"

// Role names stored in users.role.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User mirrors the `users` table. PasswordHash never leaves the
// repository layer; handlers build their own response types.
type User struct {
	ID           uint64    // users.id
	Username     string    // users.username
	Email        string    // users.email
	PasswordHash string    // users.password_hash
	Reputation   int       // users.reputation
	Role         string    // users.role ('user' or 'admin')
	CreatedAt    time.Time // users.created_at
	UpdatedAt    time.Time // users.updated_at
}

// Actor is the identity resolved from a bearer token: who is making the
// request and with which role. The zero value is the anonymous actor.
type Actor struct {
	ID       uint64
	Username string
	Role     string
}

// Anonymous reports whether the actor carries no authenticated identity.
func (a Actor) Anonymous() bool { return a.ID == 0 }
