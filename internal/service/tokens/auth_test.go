package tokens

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserJWTRoundTrip(t *testing.T) {
	key := []byte("secret")
	userID := uuid.New()

	tokenStr, err := GenerateUserJWT(userID, time.Hour, key)
	require.NoError(t, err)
	require.NotEmpty(t, tokenStr)

	claims, err := ValidateUserJWT(tokenStr, key)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, userID.String(), claims.Subject)
}

func TestUserJWTWrongKey(t *testing.T) {
	tokenStr, err := GenerateUserJWT(uuid.New(), time.Hour, []byte("secret"))
	require.NoError(t, err)

	claims, err := ValidateUserJWT(tokenStr, []byte("another secret"))
	require.Error(t, err)
	assert.Nil(t, claims)
}

func TestUserJWTExpired(t *testing.T) {
	key := []byte("secret")

	tokenStr, err := GenerateUserJWT(uuid.New(), -time.Minute, key)
	require.NoError(t, err)

	claims, err := ValidateUserJWT(tokenStr, key)
	require.ErrorIs(t, err, ErrTokenExpired)
	assert.Nil(t, claims)
}
