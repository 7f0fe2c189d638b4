// internal/auth/token.go
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenManager mints and verifies lease session tokens. A token names the
// demo account a returning browser was previously assigned; it is a hint,
// not proof of a lease — callers re-validate against the account's current
// state before honoring it.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{secret: []byte(secret), ttl: ttl}
}

// Claims represents the lease token payload.
type Claims struct {
	AccountEmail string `json:"account_email"`
	jwt.RegisteredClaims
}

// Issue creates a signed token bound to the given account, expiring with the
// lease window.
func (m *TokenManager) Issue(accountEmail string) (string, error) {
	if len(m.secret) == 0 {
		return "", errors.New("token secret not set")
	}

	claims := Claims{
		AccountEmail: accountEmail,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(m.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Verify parses a token string and returns the account email it names.
func (m *TokenManager) Verify(tokenStr string) (string, error) {
	if len(m.secret) == 0 {
		return "", errors.New("token secret not set")
	}

	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return "", errors.New("invalid or expired token")
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || claims.AccountEmail == "" {
		return "", errors.New("invalid claims")
	}

	return claims.AccountEmail, nil
}
