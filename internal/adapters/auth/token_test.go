package auth

import (
	"testing"
	"time"

	"devevent/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTTokensIssueAndVerify(t *testing.T) {
	tokens := NewJWTTokens("test-secret")

	tokenString, err := tokens.Issue(domain.AdminRole, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)

	role, err := tokens.Verify(tokenString)
	require.NoError(t, err)
	assert.Equal(t, domain.AdminRole, role)
}

func TestJWTTokensVerifyRejectsExpired(t *testing.T) {
	tokens := NewJWTTokens("test-secret")

	tokenString, err := tokens.Issue(domain.AdminRole, -time.Minute)
	require.NoError(t, err)

	_, err = tokens.Verify(tokenString)
	require.Error(t, err)
}

func TestJWTTokensVerifyRejectsWrongSecret(t *testing.T) {
	tokenString, err := NewJWTTokens("secret-a").Issue(domain.AdminRole, time.Hour)
	require.NoError(t, err)

	_, err = NewJWTTokens("secret-b").Verify(tokenString)
	require.Error(t, err)
}

func TestJWTTokensVerifyRejectsGarbage(t *testing.T) {
	_, err := NewJWTTokens("test-secret").Verify("not.a.token")
	require.Error(t, err)
}

func TestJWTTokensVerifyRejectsEmptyRole(t *testing.T) {
	tokens := NewJWTTokens("test-secret")

	tokenString, err := tokens.Issue("", time.Hour)
	require.NoError(t, err)

	_, err = tokens.Verify(tokenString)
	require.Error(t, err)
}
