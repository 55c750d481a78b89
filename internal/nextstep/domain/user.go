package domain

import "time"

type UserStatus string

const (
	UserActive  UserStatus = "ACTIVE"
	UserBlocked UserStatus = "BLOCKED"
	UserRemoved UserStatus = "REMOVED"
)

// User is the identity credentials and OTPs hang off. Profile data lives elsewhere.
type User struct {
	ID        string
	Status    UserStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

type ContactType string

const (
	ContactPhone ContactType = "PHONE"
	ContactEmail ContactType = "EMAIL"
	ContactOther ContactType = "OTHER"
)

// UserContact is a named delivery address. At most one contact per type is primary.
type UserContact struct {
	UserID    string
	Name      string
	Type      ContactType
	Value     string
	Primary   bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
