package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shelfapi/bookshelf/internal/pkg/apperrors"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("password1")
	require.NoError(t, err)
	assert.NotEqual(t, "password1", hash)

	assert.True(t, CheckPassword(hash, "password1"))
	assert.False(t, CheckPassword(hash, "password2"))
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, ValidatePassword("password1"))

	err := ValidatePassword("short1")
	assert.ErrorIs(t, err, apperrors.ErrInvalidPassword)

	err = ValidatePassword("passwordonly")
	assert.ErrorIs(t, err, apperrors.ErrInvalidPassword)

	err = ValidatePassword("12345678")
	assert.ErrorIs(t, err, apperrors.ErrInvalidPassword)
}
