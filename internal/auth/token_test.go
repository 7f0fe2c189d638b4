package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestIssueAndVerify(t *testing.T) {
	m := NewTokenManager("secret", time.Hour)

	token, err := m.Issue("demo_abc123@demo.example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	email, err := m.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "demo_abc123@demo.example.com", email)
}

func TestVerifyExpiredToken(t *testing.T) {
	m := NewTokenManager("secret", -time.Minute)

	token, err := m.Issue("demo_abc123@demo.example.com")
	require.NoError(t, err)

	_, err = m.Verify(token)
	require.Error(t, err)
}

func TestVerifyWrongSecret(t *testing.T) {
	m := NewTokenManager("secret", time.Hour)
	other := NewTokenManager("other-secret", time.Hour)

	token, err := m.Issue("demo_abc123@demo.example.com")
	require.NoError(t, err)

	_, err = other.Verify(token)
	require.Error(t, err)
}

func TestVerifyTamperedToken(t *testing.T) {
	m := NewTokenManager("secret", time.Hour)

	token, err := m.Issue("demo_abc123@demo.example.com")
	require.NoError(t, err)

	_, err = m.Verify(token + "x")
	require.Error(t, err)

	_, err = m.Verify("not-a-jwt")
	require.Error(t, err)
}

func TestIssueWithoutSecret(t *testing.T) {
	m := NewTokenManager("", time.Hour)

	_, err := m.Issue("demo_abc123@demo.example.com")
	require.Error(t, err)
}
