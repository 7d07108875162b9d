package service

import (
	"fmt"

	"go.uber.org/zap"

	"gatekeeper/internal/domain"
	"gatekeeper/internal/repository"
)

// SettingsService handles per-chat captcha configuration
type SettingsService struct {
	repo   repository.SettingsRepository
	logger *zap.Logger
}

// NewSettingsService creates a new settings service
func NewSettingsService(repo repository.SettingsRepository, logger *zap.Logger) *SettingsService {
	return &SettingsService{
		repo:   repo,
		logger: logger,
	}
}

// Settings returns the chat's settings, lazily creating defaults on first
// access. Absent settings are never an error.
func (s *SettingsService) Settings(chatID int64) (*domain.ChatSettings, error) {
	settings, err := s.repo.Get(chatID)
	if err != nil {
		return nil, err
	}
	if settings != nil {
		return settings, nil
	}

	settings = domain.DefaultSettings(chatID)
	if err := s.repo.Create(settings); err != nil {
		return nil, fmt.Errorf("failed to create default settings: %w", err)
	}

	s.logger.Info("created default settings for chat", zap.Int64("chat_id", chatID))
	return settings, nil
}

// SetProvider switches the chat's captcha provider. The new provider starts
// from its own defaults; nothing carries over from the previous one.
func (s *SettingsService) SetProvider(chatID int64, provider domain.ProviderConfig) error {
	if err := provider.Validate(); err != nil {
		return err
	}

	settings, err := s.Settings(chatID)
	if err != nil {
		return err
	}
	settings.Provider = provider

	return s.save(settings)
}

// SetAutoRemoveCommands toggles auto-deletion of captcha command messages
func (s *SettingsService) SetAutoRemoveCommands(chatID int64, enabled bool) error {
	return s.mutate(chatID, func(settings *domain.ChatSettings) {
		settings.AutoRemoveCommands = enabled
	})
}

// SetAutoRemoveEvents toggles auto-deletion of join service messages
func (s *SettingsService) SetAutoRemoveEvents(chatID int64, enabled bool) error {
	return s.mutate(chatID, func(settings *domain.ChatSettings) {
		settings.AutoRemoveEvents = enabled
	})
}

// SetEnabled toggles the captcha for a chat
func (s *SettingsService) SetEnabled(chatID int64, enabled bool) error {
	return s.mutate(chatID, func(settings *domain.ChatSettings) {
		settings.Enabled = enabled
	})
}

func (s *SettingsService) mutate(chatID int64, apply func(*domain.ChatSettings)) error {
	settings, err := s.Settings(chatID)
	if err != nil {
		return err
	}
	apply(settings)
	return s.save(settings)
}

func (s *SettingsService) save(settings *domain.ChatSettings) error {
	exists, err := s.repo.Contains(settings.ChatID)
	if err != nil {
		return err
	}
	if exists {
		return s.repo.Update(settings)
	}
	return s.repo.Create(settings)
}
