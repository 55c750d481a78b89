package domain

import "time"

// AuthMethodDefinition registers an auth method and how user preferences apply to it.
type AuthMethodDefinition struct {
	Method           AuthMethod
	OrderNumber      int
	CheckUserPrefs   bool
	UserPrefsDefault bool
	HasUserInterface bool
	DisplayNameKey   string
	CreatedAt        time.Time
}

// UserAuthMethod is a user's stored preference for one method.
type UserAuthMethod struct {
	UserID    string
	Method    AuthMethod
	Enabled   bool
	Config    map[string]string
	UpdatedAt time.Time
}
