package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	hashService := &HashService{}

	t.Run("hashes a non-empty password", func(t *testing.T) {
		hashed, err := hashService.HashPassword("securepassword")
		require.NoError(t, err)
		assert.NotEmpty(t, hashed)
		assert.NotEqual(t, "securepassword", hashed)
	})

	t.Run("rejects an empty password", func(t *testing.T) {
		hashed, err := hashService.HashPassword("")
		assert.Error(t, err)
		assert.Empty(t, hashed)
	})
}

func TestComparePassword(t *testing.T) {
	hashService := &HashService{}

	hashed, err := hashService.HashPassword("securepassword")
	require.NoError(t, err)

	tests := []struct {
		name     string
		password string
		want     bool
	}{
		{name: "matching password", password: "securepassword", want: true},
		{name: "wrong password", password: "wrongpassword", want: false},
		{name: "empty password", password: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, hashService.ComparePassword(hashed, tt.password))
		})
	}
}
