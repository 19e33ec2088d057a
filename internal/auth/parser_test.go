package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"workorder-service/internal/model"
)

func TestIssueAndParseRoundTrip(t *testing.T) {
	issuer := NewIssuer("test-secret", time.Minute)
	parser := NewParser("test-secret")

	userID := uuid.New()
	token, err := issuer.Issue(userID, model.UserRoleTecnico)
	require.NoError(t, err)

	claims, err := parser.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, model.UserRoleTecnico, claims.Role)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	issuer := NewIssuer("secret-a", time.Minute)
	parser := NewParser("secret-b")

	token, err := issuer.Issue(uuid.New(), model.UserRoleAdmin)
	require.NoError(t, err)

	_, err = parser.Parse(token)
	assert.Error(t, err)
}

func TestParseRejectsExpiredToken(t *testing.T) {
	issuer := NewIssuer("test-secret", -time.Minute)
	parser := NewParser("test-secret")

	token, err := issuer.Issue(uuid.New(), model.UserRoleTecnico)
	require.NoError(t, err)

	_, err = parser.Parse(token)
	assert.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("correct horse battery")
	require.NoError(t, err)

	assert.True(t, CheckPassword("correct horse battery", hash))
	assert.False(t, CheckPassword("wrong", hash))
}
