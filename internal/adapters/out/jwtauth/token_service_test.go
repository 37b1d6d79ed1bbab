package jwtauth_test

import (
	"testing"
	"time"

	"fooddelivery/internal/adapters/out/jwtauth"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T, ttl time.Duration) *jwtauth.TokenService {
	t.Helper()
	svc, err := jwtauth.NewTokenService([]byte("test-secret"), ttl)
	require.NoError(t, err)
	return svc
}

func newUser(t *testing.T) *user.User {
	t.Helper()
	u, err := user.NewUser(kernel.NewUUID(), "alice", "alice@example.com", user.RoleCustomer, "hash")
	require.NoError(t, err)
	return u
}

func TestNewTokenService(t *testing.T) {
	t.Run("requires_secret", func(t *testing.T) {
		_, err := jwtauth.NewTokenService(nil, time.Minute)
		require.Error(t, err)
	})

	t.Run("requires_positive_ttl", func(t *testing.T) {
		_, err := jwtauth.NewTokenService([]byte("secret"), 0)
		require.Error(t, err)
	})
}

func TestTokenService_IssueAndVerify(t *testing.T) {
	svc := newService(t, 30*time.Minute)
	u := newUser(t)

	token, err := svc.Issue(u)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	username, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", username)
}

func TestTokenService_Verify_RejectsGarbage(t *testing.T) {
	svc := newService(t, 30*time.Minute)

	_, err := svc.Verify("not.a.token")
	require.ErrorIs(t, err, jwtauth.ErrTokenIsInvalid)
}

func TestTokenService_Verify_RejectsExpired(t *testing.T) {
	svc := newService(t, time.Nanosecond)
	u := newUser(t)

	token, err := svc.Issue(u)
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)

	_, err = svc.Verify(token)
	require.ErrorIs(t, err, jwtauth.ErrTokenIsInvalid)
}

func TestTokenService_Verify_RejectsForeignSecret(t *testing.T) {
	issuer, err := jwtauth.NewTokenService([]byte("secret-a"), time.Minute)
	require.NoError(t, err)
	verifier, err := jwtauth.NewTokenService([]byte("secret-b"), time.Minute)
	require.NoError(t, err)

	token, err := issuer.Issue(newUser(t))
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	require.ErrorIs(t, err, jwtauth.ErrTokenIsInvalid)
}
