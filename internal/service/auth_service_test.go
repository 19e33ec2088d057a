package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"workorder-service/internal/auth"
	"workorder-service/internal/model"
	"workorder-service/internal/repository"
)

func TestLoginIssuesToken(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	techRepo := repository.NewTechnicianRepository(f.db)
	techs := NewTechnicianService(techRepo)
	issuer := auth.NewIssuer("test-secret", time.Minute)
	logins := NewAuthService(techRepo, issuer)

	created, err := techs.Create(ctx, f.admin, CreateTechnicianInput{
		Name:     "Rafael Souza",
		CNPJ:     "11.222.333/0001-44",
		CPF:      "111.222.333-44",
		Email:    "Rafael@Example.com",
		Password: "compressor42",
	})
	require.NoError(t, err)
	assert.Equal(t, model.UserRoleTecnico, created.Role)
	assert.Equal(t, "rafael@example.com", created.Email)

	// Case and surrounding whitespace in the email must not matter.
	token, err := logins.Login(ctx, "  RAFAEL@example.com ", "compressor42")
	require.NoError(t, err)

	claims, err := auth.NewParser("test-secret").Parse(token)
	require.NoError(t, err)
	assert.Equal(t, created.ID, claims.UserID)
	assert.Equal(t, model.UserRoleTecnico, claims.Role)
}

func TestLoginFailuresAreUniform(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	techRepo := repository.NewTechnicianRepository(f.db)
	techs := NewTechnicianService(techRepo)
	logins := NewAuthService(techRepo, auth.NewIssuer("test-secret", time.Minute))

	created, err := techs.Create(ctx, f.admin, CreateTechnicianInput{
		Name:     "Rafael Souza",
		CNPJ:     "11.222.333/0001-44",
		CPF:      "111.222.333-44",
		Email:    "rafael@example.com",
		Password: "compressor42",
	})
	require.NoError(t, err)

	_, err = logins.Login(ctx, "nobody@example.com", "compressor42")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = logins.Login(ctx, "rafael@example.com", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	require.NoError(t, techs.Deactivate(ctx, f.admin, created.ID))
	_, err = logins.Login(ctx, "rafael@example.com", "compressor42")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestTechnicianCRUDIsAdminOnly(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	techs := NewTechnicianService(repository.NewTechnicianRepository(f.db))

	_, err := techs.Create(ctx, f.techPrincipal(), CreateTechnicianInput{
		Name:     "Mallory",
		Email:    "mallory@example.com",
		Password: "longenough",
	})
	assert.ErrorIs(t, err, ErrPermissionDenied)

	_, err = techs.List(ctx, f.techPrincipal(), nil)
	assert.ErrorIs(t, err, ErrPermissionDenied)

	// A technician may still read their own record.
	own, err := techs.Get(ctx, f.techPrincipal(), f.tech.ID)
	require.NoError(t, err)
	assert.Equal(t, f.tech.ID, own.ID)

	_, err = techs.Get(ctx, f.techPrincipal(), uuid.New())
	assert.ErrorIs(t, err, ErrPermissionDenied)
}

func TestCreateTechnicianValidatesPassword(t *testing.T) {
	f := newFixture(t)

	techs := NewTechnicianService(repository.NewTechnicianRepository(f.db))

	_, err := techs.Create(context.Background(), f.admin, CreateTechnicianInput{
		Name:     "Rafael Souza",
		Email:    "rafael@example.com",
		Password: "short",
	})
	assert.ErrorIs(t, err, ErrValidation)
}
