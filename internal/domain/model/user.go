package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// User represents a registered board account.
type User struct {
	ID           uuid.UUID
	FirstName    string
	LastName     string
	LoginID      string
	PasswordHash string
	Member       bool
	CreatedAt    time.Time
}

// Identity is the authenticated view of a user attached to a request.
type Identity struct {
	ID        uuid.UUID
	FirstName string
	LastName  string
	LoginID   string
	Member    bool
}

// Identity strips credentials from the user record.
func (u *User) Identity() *Identity {
	return &Identity{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		LoginID:   u.LoginID,
		Member:    u.Member,
	}
}

// DisplayName joins first and last name.
func (i *Identity) DisplayName() string {
	return i.FirstName + " " + i.LastName
}

// NormalizeLoginID trims and lower-cases a login id so lookups and the
// uniqueness constraint agree.
func NormalizeLoginID(loginID string) string {
	return strings.ToLower(strings.TrimSpace(loginID))
}
