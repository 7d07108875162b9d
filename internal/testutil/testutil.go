package testutil

import (
	"go.uber.org/zap"

	"gatekeeper/internal/domain"
)

// NewTestLogger creates a no-op logger for tests
func NewTestLogger() *zap.Logger {
	return zap.NewNop()
}

// NewTestUser creates a test user
func NewTestUser(userID int64, firstName string) domain.User {
	return domain.User{
		ID:        userID,
		FirstName: firstName,
	}
}

// NewTestSettings creates chat settings with the given provider
func NewTestSettings(chatID int64, provider domain.ProviderConfig) *domain.ChatSettings {
	settings := domain.DefaultSettings(chatID)
	settings.Provider = provider
	return settings
}
