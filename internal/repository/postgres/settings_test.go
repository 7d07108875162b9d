package postgres

import (
	"database/sql"
	"encoding/json"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"gatekeeper/internal/domain"
)

func TestSettingsRepo_Get(t *testing.T) {
	providerJSON, err := json.Marshal(domain.DefaultExpressionConfig())
	assert.NoError(t, err)

	tests := []struct {
		name          string
		chatID        int64
		mockRows      *sqlmock.Rows
		mockError     error
		expectedNil   bool
		expectedError bool
		expectedType  domain.ProviderType
	}{
		{
			name:   "settings found",
			chatID: -100,
			mockRows: sqlmock.NewRows([]string{"chat_id", "provider", "auto_remove_commands", "auto_remove_events", "enabled"}).
				AddRow(-100, providerJSON, false, true, true),
			expectedType: domain.ProviderExpression,
		},
		{
			name:        "no settings stored",
			chatID:      -200,
			mockError:   sql.ErrNoRows,
			expectedNil: true,
		},
		{
			name:   "broken provider column",
			chatID: -100,
			mockRows: sqlmock.NewRows([]string{"chat_id", "provider", "auto_remove_commands", "auto_remove_events", "enabled"}).
				AddRow(-100, []byte(`{"type":"unknown"}`), false, true, true),
			expectedNil:   true,
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			assert.NoError(t, err)
			defer db.Close()

			repo := NewSettingsRepo(db)

			query := "SELECT chat_id, provider, auto_remove_commands, auto_remove_events, enabled"
			expect := mock.ExpectQuery(query).WithArgs(tt.chatID)
			if tt.mockRows != nil {
				expect.WillReturnRows(tt.mockRows)
			} else {
				expect.WillReturnError(tt.mockError)
			}

			settings, err := repo.Get(tt.chatID)

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			if tt.expectedNil {
				assert.Nil(t, settings)
			} else {
				assert.Equal(t, tt.chatID, settings.ChatID)
				assert.Equal(t, tt.expectedType, settings.Provider.Type)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestSettingsRepo_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewSettingsRepo(db)
	settings := domain.DefaultSettings(-100)

	providerJSON, err := json.Marshal(settings.Provider)
	assert.NoError(t, err)

	mock.ExpectExec("INSERT INTO chat_settings").
		WithArgs(settings.ChatID, providerJSON, false, true, true).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.Create(settings))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSettingsRepo_Update(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewSettingsRepo(db)
	settings := domain.DefaultSettings(-100)
	settings.Provider = domain.DefaultSlotMachineConfig()
	settings.Enabled = false

	providerJSON, err := json.Marshal(settings.Provider)
	assert.NoError(t, err)

	mock.ExpectExec("UPDATE chat_settings").
		WithArgs(settings.ChatID, providerJSON, false, true, false).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.Update(settings))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSettingsRepo_Contains(t *testing.T) {
	tests := []struct {
		name   string
		exists bool
	}{
		{name: "row exists", exists: true},
		{name: "row absent", exists: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			assert.NoError(t, err)
			defer db.Close()

			repo := NewSettingsRepo(db)

			mock.ExpectQuery("SELECT EXISTS").
				WithArgs(int64(-100)).
				WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(tt.exists))

			exists, err := repo.Contains(-100)

			assert.NoError(t, err)
			assert.Equal(t, tt.exists, exists)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestSettingsRepo_ProviderRoundTrip(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewSettingsRepo(db)

	original := domain.DefaultSettings(-100)
	original.Provider = domain.DefaultExpressionConfig()
	original.Provider.Expression.MaxOperand = 25

	providerJSON, err := json.Marshal(original.Provider)
	assert.NoError(t, err)

	mock.ExpectQuery("SELECT chat_id, provider").
		WithArgs(int64(-100)).
		WillReturnRows(sqlmock.NewRows([]string{"chat_id", "provider", "auto_remove_commands", "auto_remove_events", "enabled"}).
			AddRow(-100, providerJSON, false, true, true))

	settings, err := repo.Get(-100)

	assert.NoError(t, err)
	assert.Equal(t, original.Provider, settings.Provider)
	assert.NoError(t, mock.ExpectationsWereMet())
}
