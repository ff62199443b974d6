package auth

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/athena/internal/pkg/apperrors"
	"golang.org/x/crypto/bcrypt"
)

func TestAPIKey_RoundTrip(t *testing.T) {
	key := NewAPIKey(uuid.New())
	assert.Len(t, key.Secret, 32)

	parsed, err := ParseAPIKey(key.String())
	require.NoError(t, err)
	assert.Equal(t, key, parsed)
}

func TestNewAPIKey_SecretsDiffer(t *testing.T) {
	id := uuid.New()
	assert.NotEqual(t, NewAPIKey(id).Secret, NewAPIKey(id).Secret)
}

func TestParseAPIKey_Malformed(t *testing.T) {
	for _, raw := range []string{"", "nodot", "not-a-uuid.secret", uuid.NewString() + "."} {
		_, err := ParseAPIKey(raw)
		assert.ErrorIs(t, err, apperrors.ErrInvalidAPIKey, raw)
	}
}

func TestParseAuthorization(t *testing.T) {
	key := NewAPIKey(uuid.New())

	got, err := ParseAuthorization("ApiKey " + key.String())
	require.NoError(t, err)
	assert.Equal(t, key, got)

	got, err = ParseAuthorization("apikey " + key.String())
	require.NoError(t, err)
	assert.Equal(t, key, got)

	_, err = ParseAuthorization("Bearer " + key.String())
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)

	_, err = ParseAuthorization("")
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestHashAndCheckSecret(t *testing.T) {
	BcryptCost = bcrypt.MinCost
	t.Cleanup(func() { BcryptCost = 12 })

	hash, err := HashSecret("s3cret")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret", hash)

	assert.True(t, CheckSecret(hash, "s3cret"))
	assert.False(t, CheckSecret(hash, "wrong"))
	assert.False(t, CheckSecret("not-a-hash", "s3cret"))
}
