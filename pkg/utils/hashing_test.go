package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndComparePasswords(t *testing.T) {
	hash, err := HashPassword("kusanyiko-2026")
	require.NoError(t, err)
	assert.NotEqual(t, "kusanyiko-2026", hash)

	assert.NoError(t, ComparePasswords(hash, "kusanyiko-2026"))
	assert.Error(t, ComparePasswords(hash, "wrong-password"))
}

func TestGenerateSecureToken(t *testing.T) {
	token, err := GenerateSecureToken(16)
	require.NoError(t, err)
	assert.Len(t, token, 32) // hex-encoded

	other, err := GenerateSecureToken(16)
	require.NoError(t, err)
	assert.NotEqual(t, token, other)

	_, err = GenerateSecureToken(0)
	assert.Error(t, err)
}

func TestGenerateTempPassword(t *testing.T) {
	password, err := GenerateTempPassword(12)
	require.NoError(t, err)
	assert.Len(t, password, 12)

	for _, r := range password {
		assert.Contains(t, tempPasswordAlphabet, string(r))
	}

	_, err = GenerateTempPassword(-1)
	assert.Error(t, err)
}
