package token

import (
	"crypto/rand"
	"encoding/base64"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSecret(t *testing.T) string {
	t.Helper()
	bytes := make([]byte, 32)
	_, err := rand.Read(bytes)
	require.NoError(t, err)
	return base64.URLEncoding.EncodeToString(bytes)
}

func TestJwtService(t *testing.T) {
	secretKey := newSecret(t)
	svc := NewJwtService(secretKey, "lightning-maze")

	t.Run("Generate and Decode driver token", func(t *testing.T) {
		sessionID := uuid.NewString()
		token, err := svc.Generate(map[string]interface{}{"sessionID": sessionID}, 5*time.Minute)
		require.NoError(t, err)
		assert.NotEmpty(t, token)

		claims, err := svc.Decode(token)
		require.NoError(t, err)
		assert.Equal(t, sessionID, claims["sessionID"])
		assert.Equal(t, "lightning-maze", claims["iss"])
	})

	t.Run("Decode invalid token", func(t *testing.T) {
		_, err := svc.Decode("invalidTokenString")
		assert.Error(t, err)
	})

	t.Run("Decode expired token", func(t *testing.T) {
		token, err := svc.Generate(map[string]interface{}{"sessionID": uuid.NewString()}, -time.Minute)
		require.NoError(t, err)

		_, err = svc.Decode(token)
		assert.Error(t, err)
	})

	t.Run("Decode token from another issuer", func(t *testing.T) {
		other := NewJwtService(secretKey, "someone-else")
		token, err := other.Generate(map[string]interface{}{}, time.Minute)
		require.NoError(t, err)

		_, err = svc.Decode(token)
		assert.ErrorIs(t, err, ErrIssuerMismatch)
	})

	t.Run("Decode token signed with another key", func(t *testing.T) {
		other := NewJwtService(newSecret(t), "lightning-maze")
		token, err := other.Generate(map[string]interface{}{}, time.Minute)
		require.NoError(t, err)

		_, err = svc.Decode(token)
		assert.Error(t, err)
	})
}
