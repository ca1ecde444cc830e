package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhinandan-jain01/nearmart/apperrors"
)

func TestGenerateAndVerify(t *testing.T) {
	maker := NewMaker("test-secret", time.Hour)

	tok, err := maker.Generate("507f1f77bcf86cd799439011", "customer")
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	claims, err := maker.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, "507f1f77bcf86cd799439011", claims.UserID)
	assert.Equal(t, "customer", claims.Role)
}

func TestVerifyWrongSecret(t *testing.T) {
	maker := NewMaker("test-secret", time.Hour)
	other := NewMaker("another-secret", time.Hour)

	tok, err := maker.Generate("507f1f77bcf86cd799439011", "retailer")
	require.NoError(t, err)

	_, err = other.Verify(tok)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.KindUnauthorized))
}

func TestVerifyExpired(t *testing.T) {
	maker := NewMaker("test-secret", time.Hour)
	maker.ttl = -time.Minute

	tok, err := maker.Generate("507f1f77bcf86cd799439011", "customer")
	require.NoError(t, err)

	_, err = maker.Verify(tok)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.KindUnauthorized))
}

func TestVerifyGarbage(t *testing.T) {
	maker := NewMaker("test-secret", time.Hour)
	_, err := maker.Verify("not.a.token")
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.KindUnauthorized))
}
