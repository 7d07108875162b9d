package repository

import "gatekeeper/internal/domain"

// SettingsRepository defines per-chat settings storage keyed by chat id
type SettingsRepository interface {
	// Get returns the chat's settings, or nil when the chat has none stored
	Get(chatID int64) (*domain.ChatSettings, error)
	Create(settings *domain.ChatSettings) error
	Update(settings *domain.ChatSettings) error
	Contains(chatID int64) (bool, error)
}
