package auth_test

import (
	"testing"
	"time"

	"urswat-backend/pkg/auth"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundtrip(t *testing.T) {
	tokens := auth.NewTokenManager("test-secret")

	token, err := tokens.Issue(42, "staff@urswat.com")
	require.NoError(t, err)

	claims, err := tokens.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "staff@urswat.com", claims.Email)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	token, err := auth.NewTokenManager("secret-a").Issue(1, "staff@urswat.com")
	require.NoError(t, err)

	_, err = auth.NewTokenManager("secret-b").Verify(token)
	assert.Error(t, err)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	claims := auth.Claims{
		UserID: 1,
		Email:  "staff@urswat.com",
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-48 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-24 * time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = auth.NewTokenManager("test-secret").Verify(token)
	assert.Error(t, err)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	tokens := auth.NewTokenManager("test-secret")

	for _, bad := range []string{"", "not-a-token", "aaaa.bbbb.cccc"} {
		_, err := tokens.Verify(bad)
		assert.Error(t, err, "token %q should not verify", bad)
	}
}
