package domain

import "strings"

// User identifies a chat member under verification
type User struct {
	ID        int64
	Username  string
	FirstName string
	LastName  string
}

// DisplayName builds a human-readable name for mentions,
// falling back to "User" when both name parts are blank
func (u User) DisplayName() string {
	parts := make([]string, 0, 2)
	if strings.TrimSpace(u.LastName) != "" {
		parts = append(parts, u.LastName)
	}
	if strings.TrimSpace(u.FirstName) != "" {
		parts = append(parts, u.FirstName)
	}
	if len(parts) == 0 {
		return "User"
	}
	return strings.Join(parts, " ")
}

// Mention renders a plain-text mention of the user
func (u User) Mention() string {
	if u.Username != "" {
		return "@" + u.Username
	}
	return u.DisplayName()
}
