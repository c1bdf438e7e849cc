package auth

import (
	"encoding/base64"
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSecret(t *testing.T, raw string) string {
	t.Helper()
	return base64.StdEncoding.EncodeToString([]byte(raw))
}

func newTestCodec(t *testing.T) *TokenCodec {
	t.Helper()
	codec, err := NewTokenCodec(testSecret(t, "0123456789abcdef0123456789abcdef"), 60)
	require.NoError(t, err)
	return codec
}

func TestNewTokenCodecRejectsShortKey(t *testing.T) {
	_, err := NewTokenCodec(testSecret(t, "too-short"), 60)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "too short")
}

func TestNewTokenCodecRejectsInvalidBase64(t *testing.T) {
	_, err := NewTokenCodec("!!! not base64 !!!", 60)
	require.Error(t, err)
}

func TestSignVerifyRoundTrip(t *testing.T) {
	codec := newTestCodec(t)

	token, exp, err := codec.Sign("seller@test.com", "SELLER")
	require.NoError(t, err)
	assert.True(t, exp.After(time.Now()))

	claims, err := codec.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "seller@test.com", claims.Subject)
	assert.Equal(t, "SELLER", claims.Role)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	codec := newTestCodec(t)

	claims := &Claims{
		Role: "SELLER",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "seller@test.com",
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(codec.key)
	require.NoError(t, err)

	_, err = codec.Verify(expired)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsWrongKey(t *testing.T) {
	codec := newTestCodec(t)
	other, err := NewTokenCodec(testSecret(t, "ffffffffffffffffffffffffffffffff"), 60)
	require.NoError(t, err)

	token, _, err := codec.Sign("seller@test.com", "SELLER")
	require.NoError(t, err)

	_, err = other.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsMalformedToken(t *testing.T) {
	codec := newTestCodec(t)

	for _, token := range []string{"", "garbage", "a.b", "a.b.c"} {
		_, err := codec.Verify(token)
		assert.ErrorIs(t, err, ErrInvalidToken, "token %q", token)
	}
}

func TestVerifyRejectsUnexpectedSigningMethod(t *testing.T) {
	codec := newTestCodec(t)

	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "seller@test.com",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS384, claims).SignedString(codec.key)
	require.NoError(t, err)

	_, err = codec.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
