package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hongminglow/vi-sinh-loi-be/internal/models"
)

func TestGenerateAndVerify(t *testing.T) {
	tm := NewTokenManager("secret", "vi-sinh-loi-backend", time.Hour)
	token, err := tm.Generate(models.User{ID: 42, Username: "mai", Email: "mai@example.com"})
	require.NoError(t, err)

	id, err := tm.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
}

func TestVerifyRejects(t *testing.T) {
	tm := NewTokenManager("secret", "vi-sinh-loi-backend", time.Hour)
	token, err := tm.Generate(models.User{ID: 42})
	require.NoError(t, err)

	other := NewTokenManager("other-secret", "vi-sinh-loi-backend", time.Hour)
	_, err = other.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	wrongIssuer := NewTokenManager("secret", "someone-else", time.Hour)
	_, err = wrongIssuer.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	expired := NewTokenManager("secret", "vi-sinh-loi-backend", time.Hour)
	expired.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, err = expired.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = tm.Verify("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"sub": "42", "iss": "vi-sinh-loi-backend"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = tm.Verify(none)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
