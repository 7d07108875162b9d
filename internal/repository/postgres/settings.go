package postgres

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"gatekeeper/internal/domain"
)

// SettingsRepo implements repository.SettingsRepository.
// The provider configuration is stored as a JSON column so the tagged
// variant round-trips without per-variant tables.
type SettingsRepo struct {
	db *sql.DB
}

// NewSettingsRepo creates a new settings repository
func NewSettingsRepo(db *sql.DB) *SettingsRepo {
	return &SettingsRepo{db: db}
}

// Get returns the chat's settings, or nil when the chat has none stored
func (r *SettingsRepo) Get(chatID int64) (*domain.ChatSettings, error) {
	query := `
		SELECT chat_id, provider, auto_remove_commands, auto_remove_events, enabled
		FROM chat_settings
		WHERE chat_id = $1
	`

	var (
		s           domain.ChatSettings
		providerRaw []byte
	)
	err := r.db.QueryRow(query, chatID).Scan(
		&s.ChatID, &providerRaw, &s.AutoRemoveCommands, &s.AutoRemoveEvents, &s.Enabled,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(providerRaw, &s.Provider); err != nil {
		return nil, fmt.Errorf("failed to decode provider config: %w", err)
	}

	return &s, nil
}

// Create inserts settings for a chat
func (r *SettingsRepo) Create(settings *domain.ChatSettings) error {
	providerRaw, err := json.Marshal(settings.Provider)
	if err != nil {
		return fmt.Errorf("failed to encode provider config: %w", err)
	}

	query := `
		INSERT INTO chat_settings (chat_id, provider, auto_remove_commands, auto_remove_events, enabled)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err = r.db.Exec(query,
		settings.ChatID, providerRaw, settings.AutoRemoveCommands, settings.AutoRemoveEvents, settings.Enabled,
	)
	return err
}

// Update overwrites settings for a chat
func (r *SettingsRepo) Update(settings *domain.ChatSettings) error {
	providerRaw, err := json.Marshal(settings.Provider)
	if err != nil {
		return fmt.Errorf("failed to encode provider config: %w", err)
	}

	query := `
		UPDATE chat_settings
		SET provider = $2, auto_remove_commands = $3, auto_remove_events = $4, enabled = $5
		WHERE chat_id = $1
	`
	_, err = r.db.Exec(query,
		settings.ChatID, providerRaw, settings.AutoRemoveCommands, settings.AutoRemoveEvents, settings.Enabled,
	)
	return err
}

// Contains reports whether the chat has settings stored
func (r *SettingsRepo) Contains(chatID int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM chat_settings WHERE chat_id = $1)`
	err := r.db.QueryRow(query, chatID).Scan(&exists)
	return exists, err
}
