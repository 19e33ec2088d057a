package service

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"workorder-service/internal/auth"
	"workorder-service/internal/repository"
)

type AuthService struct {
	techRepo *repository.TechnicianRepository
	issuer   *auth.Issuer
}

func NewAuthService(techRepo *repository.TechnicianRepository, issuer *auth.Issuer) *AuthService {
	return &AuthService{techRepo: techRepo, issuer: issuer}
}

// Login authenticates a technician by email and password and returns a
// signed access token. Failed lookups and bad passwords are reported
// identically so the endpoint does not leak which accounts exist.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	tech, err := s.techRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}
	if !tech.IsActive {
		return "", ErrInvalidCredentials
	}
	if !auth.CheckPassword(password, tech.PasswordHash) {
		return "", ErrInvalidCredentials
	}
	return s.issuer.Issue(tech.ID, tech.Role)
}
