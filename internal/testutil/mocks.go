package testutil

import (
	"github.com/stretchr/testify/mock"

	"gatekeeper/internal/domain"
)

// MockSettingsRepository is a mock for repository.SettingsRepository
type MockSettingsRepository struct {
	mock.Mock
}

func (m *MockSettingsRepository) Get(chatID int64) (*domain.ChatSettings, error) {
	args := m.Called(chatID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ChatSettings), args.Error(1)
}

func (m *MockSettingsRepository) Create(settings *domain.ChatSettings) error {
	args := m.Called(settings)
	return args.Error(0)
}

func (m *MockSettingsRepository) Update(settings *domain.ChatSettings) error {
	args := m.Called(settings)
	return args.Error(0)
}

func (m *MockSettingsRepository) Contains(chatID int64) (bool, error) {
	args := m.Called(chatID)
	return args.Bool(0), args.Error(1)
}

// StaticAdmins is an AdminChecker backed by a fixed user set
type StaticAdmins map[int64]bool

func (s StaticAdmins) IsAdmin(chatID, userID int64) bool {
	return s[userID]
}
