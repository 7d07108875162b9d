package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUser_DisplayName(t *testing.T) {
	tests := []struct {
		name     string
		user     User
		expected string
	}{
		{
			name:     "first and last name",
			user:     User{FirstName: "Jane", LastName: "Doe"},
			expected: "Doe Jane",
		},
		{
			name:     "first name only",
			user:     User{FirstName: "Jane"},
			expected: "Jane",
		},
		{
			name:     "last name only",
			user:     User{LastName: "Doe"},
			expected: "Doe",
		},
		{
			name:     "blank names",
			user:     User{FirstName: "  ", LastName: ""},
			expected: "User",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.user.DisplayName())
		})
	}
}

func TestUser_Mention(t *testing.T) {
	assert.Equal(t, "@jdoe", User{Username: "jdoe", FirstName: "Jane"}.Mention())
	assert.Equal(t, "Jane", User{FirstName: "Jane"}.Mention())
}
