package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/AchilleasB/gordon-events/student-identity-service/internal/core/services"
)

func TestEqualityComparers(t *testing.T) {
	comparers := map[string]interface {
		Matches(stored, supplied string) bool
	}{
		"plaintext":     services.PlaintextComparer{},
		"constant_time": services.ConstantTimeComparer{},
	}

	for name, c := range comparers {
		t.Run(name, func(t *testing.T) {
			assert.True(t, c.Matches("Secret1", "Secret1"))
			assert.False(t, c.Matches("Secret1", "secret1"))
			assert.False(t, c.Matches("Secret1", "Secret1 "))
			assert.False(t, c.Matches("Secret1", ""))
			assert.True(t, c.Matches("", ""))
		})
	}
}

func TestBcryptComparer(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("Secret1"), bcrypt.MinCost)
	require.NoError(t, err)

	c := services.BcryptComparer{}
	assert.True(t, c.Matches(string(hash), "Secret1"))
	assert.False(t, c.Matches(string(hash), "Secret2"))
	assert.False(t, c.Matches("not-a-hash", "not-a-hash"))
}

func TestNewSecretComparer(t *testing.T) {
	tests := []struct {
		name    string
		want    any
		wantErr bool
	}{
		{"", services.ConstantTimeComparer{}, false},
		{"constant_time", services.ConstantTimeComparer{}, false},
		{"PLAINTEXT", services.PlaintextComparer{}, false},
		{"bcrypt", services.BcryptComparer{}, false},
		{"md5", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := services.NewSecretComparer(tt.name)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, c)
		})
	}
}
