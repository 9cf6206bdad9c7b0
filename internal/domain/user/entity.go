package user

import (
	"strings"
	"time"
)

// Type enumerates the user roles supported by the system.
type Type string

const (
	TypeAdmin    Type = "admin"    // full access, may manage other users
	TypeStandard Type = "standard" // regular account without management rights
)

// Valid reports whether t is one of the supported user types.
func (t Type) Valid() bool {
	return t == TypeAdmin || t == TypeStandard
}

// User represents a user record in the system.
// Password holds the bcrypt hash; it is serialized only into the
// persistence snapshot and must never appear in an API response.
type User struct {
	ID        int64     `json:"id"`        // ID is the unique, monotonically assigned identifier
	Email     string    `json:"email"`     // Email is unique across all live users (lowercased)
	Name      string    `json:"name"`      // Name is the full name of the user
	Type      Type      `json:"type"`      // Type is the user role (admin or standard)
	Password  string    `json:"password,omitempty"` // Password is the bcrypt hash; empty (omitted) on sanitized copies
	CreatedAt time.Time `json:"createdAt"` // CreatedAt is set once on creation
	UpdatedAt time.Time `json:"updatedAt"` // UpdatedAt is refreshed on every update
}

// Sanitized returns a copy of the user with the password hash removed.
// Every outward-facing representation of a user goes through this.
func (u *User) Sanitized() *User {
	s := *u
	s.Password = ""
	return &s
}

// Clone returns a copy of the user.
func (u *User) Clone() *User {
	c := *u
	return &c
}

// NormalizeEmail canonicalizes an email address for storage and
// comparison: trimmed and lowercased. Uniqueness checks run on the
// normalized form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
