package model

import "time"

// Role names stored in the users.role column and embedded in JWT claims.
// There is no hierarchy between them: each protected route names the exact
// roles it accepts.
const (
	RoleAdmin      = "ADMIN"
	RoleUser       = "USER"
	RoleStoreOwner = "STORE_OWNER"
)

// ValidRole reports whether s is one of the three known role names.
func ValidRole(s string) bool {
	return s == RoleAdmin || s == RoleUser || s == RoleStoreOwner
}

// User represents an application user record as stored in the `users`
// table. Handlers define separate response types with JSON tags; the
// password hash must never be serialized.
//
// Fields:
//  ID           – opaque UUID primary key.
//  Name         – display name (2–60 characters).
//  Email        – unique email address, stored lower-cased.
//  Address      – postal address (up to 400 characters).
//  PasswordHash – bcrypt hashed password.
//  Role         – one of ADMIN, USER, STORE_OWNER.
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update.
type User struct {
	ID           string    // users.id
	Name         string    // users.name
	Email        string    // users.email
	Address      string    // users.address
	PasswordHash string    // users.password_hash
	Role         string    // users.role
	CreatedAt    time.Time // users.created_at
	UpdatedAt    time.Time // users.updated_at
}
