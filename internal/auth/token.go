package auth

import (
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken covers every verification failure: bad signature,
// malformed structure, or expiry. Callers must not branch on the sub-reason.
var ErrInvalidToken = errors.New("invalid token")

// minKeyBytes is the minimum HMAC-SHA256 key length accepted at startup.
const minKeyBytes = 32

// TokenCodec signs and verifies the self-contained identity tokens shared
// across services.
type TokenCodec struct {
	key []byte
	ttl time.Duration
}

// NewTokenCodec decodes the base64 secret and validates key strength. A key
// shorter than 32 bytes is rejected here so a weak deployment fails at
// startup rather than per request.
func NewTokenCodec(base64Secret string, ttlMinutes int) (*TokenCodec, error) {
	key, err := base64.StdEncoding.DecodeString(base64Secret)
	if err != nil {
		return nil, fmt.Errorf("jwt secret is not valid base64: %w", err)
	}
	if len(key) < minKeyBytes {
		return nil, fmt.Errorf("jwt secret too short: got %d bytes, need at least %d", len(key), minKeyBytes)
	}
	if ttlMinutes <= 0 {
		ttlMinutes = 60
	}
	return &TokenCodec{key: key, ttl: time.Duration(ttlMinutes) * time.Minute}, nil
}

// Claims describes the JWT payload. Only the subject and role are
// interpreted by the services; anything else in the token is ignored.
type Claims struct {
	Role string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// Sign builds and signs a token for the subject with an optional role claim.
func (tc *TokenCodec) Sign(subject, role string) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(tc.ttl)
	claims := &Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(tc.key)
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// Verify validates signature, structure and expiry. Verification is
// all-or-nothing; every failure surfaces as ErrInvalidToken.
func (tc *TokenCodec) Verify(tokenStr string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return tc.key, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
