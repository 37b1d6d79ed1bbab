// Package jwtauth issues and verifies the bearer tokens used by the HTTP
// adapter. Tokens are HS256-signed JWTs carrying the username as subject
// and the user's role as a custom claim.
package jwtauth

import (
	"errors"
	"fmt"
	"time"

	"fooddelivery/internal/core/domain/model/user"
	"fooddelivery/internal/pkg/errs"

	"github.com/golang-jwt/jwt/v5"
)

// ErrTokenIsInvalid is returned for expired, malformed, or forged tokens.
var ErrTokenIsInvalid = errors.New("token is invalid")

// Claims is the JWT payload of an access token.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies HS256 access tokens.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenService creates a token service with the given signing secret and
// token lifetime.
func NewTokenService(secret []byte, ttl time.Duration) (*TokenService, error) {
	if len(secret) == 0 {
		return nil, errs.NewValueIsRequiredError("secret")
	}
	if ttl <= 0 {
		return nil, errs.NewValueIsInvalidError("ttl")
	}

	return &TokenService{
		secret: secret,
		ttl:    ttl,
	}, nil
}

// Issue creates a signed token for the user with the configured lifetime.
func (s *TokenService) Issue(aggregate *user.User) (string, error) {
	if err := aggregate.Validate(); err != nil {
		return "", err
	}

	now := time.Now().UTC()
	claims := Claims{
		Role: aggregate.Role().String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   aggregate.Username(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify parses and validates a token, returning the username it was
// issued to. Returns ErrTokenIsInvalid for anything that does not verify.
func (s *TokenService) Verify(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return "", ErrTokenIsInvalid
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || claims.Subject == "" {
		return "", ErrTokenIsInvalid
	}

	return claims.Subject, nil
}
