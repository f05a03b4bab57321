package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"

	apperrors "threadapi/internal/errors"
)

func TestJWTService_IssueAndVerify(t *testing.T) {
	svc := NewJWTService("test-secret")

	token, err := svc.Issue(42)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	userID, err := svc.Verify(token)
	assert.NoError(t, err)
	assert.Equal(t, uint(42), userID)
}

func TestJWTService_Verify_WrongSecret(t *testing.T) {
	token, err := NewJWTService("secret-a").Issue(42)
	assert.NoError(t, err)

	userID, err := NewJWTService("secret-b").Verify(token)
	assert.Equal(t, apperrors.ErrInvalidToken, err)
	assert.Zero(t, userID)
}

func TestJWTService_Verify_Expired(t *testing.T) {
	secret := "test-secret"
	past := time.Now().Add(-2 * time.Hour)
	claims := &Claims{
		UserID: 42,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(past.Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(past),
			NotBefore: jwt.NewNumericDate(past),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	assert.NoError(t, err)

	userID, err := NewJWTService(secret).Verify(token)
	assert.Equal(t, apperrors.ErrInvalidToken, err)
	assert.Zero(t, userID)
}

func TestJWTService_Verify_WrongSigningMethod(t *testing.T) {
	// alg "none" must be rejected outright, not treated as unsigned-but-valid
	claims := &Claims{
		UserID: 42,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	assert.NoError(t, err)

	userID, err := NewJWTService("test-secret").Verify(token)
	assert.Equal(t, apperrors.ErrInvalidToken, err)
	assert.Zero(t, userID)
}

func TestJWTService_Verify_Malformed(t *testing.T) {
	for _, input := range []string{"", "garbage", "a.b.c"} {
		userID, err := NewJWTService("test-secret").Verify(input)
		assert.Equal(t, apperrors.ErrInvalidToken, err)
		assert.Zero(t, userID)
	}
}
