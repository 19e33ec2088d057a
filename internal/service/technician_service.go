package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"workorder-service/internal/auth"
	"workorder-service/internal/model"
	"workorder-service/internal/repository"
)

type TechnicianService struct {
	techRepo *repository.TechnicianRepository
}

func NewTechnicianService(techRepo *repository.TechnicianRepository) *TechnicianService {
	return &TechnicianService{techRepo: techRepo}
}

type CreateTechnicianInput struct {
	Name              string
	CNPJ              string
	CPF               string
	StateRegistration string
	Email             string
	Phone             string
	Password          string
	Role              model.UserRole
	BankDetails       *model.BankDetails
}

type UpdateTechnicianInput struct {
	Name              *string
	CNPJ              *string
	CPF               *string
	StateRegistration *string
	Email             *string
	Phone             *string
	Password          *string
	Role              *model.UserRole
	IsActive          *bool
	BankDetails       *model.BankDetails
}

func (s *TechnicianService) Create(ctx context.Context, principal model.Principal, input CreateTechnicianInput) (*model.Technician, error) {
	if !principal.IsAdmin() {
		return nil, ErrPermissionDenied
	}

	if strings.TrimSpace(input.Email) == "" || strings.TrimSpace(input.Name) == "" {
		return nil, fmt.Errorf("%w: name and email are required", ErrValidation)
	}
	if len(input.Password) < 8 {
		return nil, fmt.Errorf("%w: password must have at least 8 characters", ErrValidation)
	}

	role := input.Role
	if role == "" {
		role = model.UserRoleTecnico
	}
	if role != model.UserRoleAdmin && role != model.UserRoleTecnico {
		return nil, fmt.Errorf("%w: unknown role %q", ErrValidation, role)
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	tech := &model.Technician{
		Name:              input.Name,
		CNPJ:              input.CNPJ,
		CPF:               input.CPF,
		StateRegistration: input.StateRegistration,
		Email:             strings.ToLower(strings.TrimSpace(input.Email)),
		Phone:             input.Phone,
		PasswordHash:      hash,
		Role:              role,
		IsActive:          true,
		BankDetails:       input.BankDetails,
	}
	if err := s.techRepo.Create(ctx, tech); err != nil {
		return nil, err
	}
	return tech, nil
}

func (s *TechnicianService) Get(ctx context.Context, principal model.Principal, id uuid.UUID) (*model.Technician, error) {
	if !principal.IsAdmin() && principal.UserID != id {
		return nil, ErrPermissionDenied
	}
	tech, err := s.techRepo.GetByID(ctx, id)
	if err != nil {
		return nil, translateNotFound(err)
	}
	return tech, nil
}

func (s *TechnicianService) List(ctx context.Context, principal model.Principal, isActive *bool) ([]model.Technician, error) {
	if !principal.IsAdmin() {
		return nil, ErrPermissionDenied
	}
	return s.techRepo.List(ctx, isActive)
}

func (s *TechnicianService) Update(ctx context.Context, principal model.Principal, id uuid.UUID, input UpdateTechnicianInput) (*model.Technician, error) {
	if !principal.IsAdmin() {
		return nil, ErrPermissionDenied
	}

	tech, err := s.techRepo.GetByID(ctx, id)
	if err != nil {
		return nil, translateNotFound(err)
	}

	if input.Name != nil {
		tech.Name = *input.Name
	}
	if input.CNPJ != nil {
		tech.CNPJ = *input.CNPJ
	}
	if input.CPF != nil {
		tech.CPF = *input.CPF
	}
	if input.StateRegistration != nil {
		tech.StateRegistration = *input.StateRegistration
	}
	if input.Email != nil {
		tech.Email = strings.ToLower(strings.TrimSpace(*input.Email))
	}
	if input.Phone != nil {
		tech.Phone = *input.Phone
	}
	if input.Role != nil {
		if *input.Role != model.UserRoleAdmin && *input.Role != model.UserRoleTecnico {
			return nil, fmt.Errorf("%w: unknown role %q", ErrValidation, *input.Role)
		}
		tech.Role = *input.Role
	}
	if input.IsActive != nil {
		tech.IsActive = *input.IsActive
	}
	if input.BankDetails != nil {
		tech.BankDetails = input.BankDetails
	}
	if input.Password != nil {
		if len(*input.Password) < 8 {
			return nil, fmt.Errorf("%w: password must have at least 8 characters", ErrValidation)
		}
		hash, err := auth.HashPassword(*input.Password)
		if err != nil {
			return nil, err
		}
		tech.PasswordHash = hash
	}

	if err := s.techRepo.Save(ctx, tech); err != nil {
		return nil, err
	}
	return tech, nil
}

// Deactivate is the delete operation: technicians are never removed, only
// marked inactive so existing orders keep their history.
func (s *TechnicianService) Deactivate(ctx context.Context, principal model.Principal, id uuid.UUID) error {
	if !principal.IsAdmin() {
		return ErrPermissionDenied
	}
	return translateNotFound(s.techRepo.Deactivate(ctx, id))
}
