package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"workorder-service/internal/model"
	"workorder-service/internal/repository"
)

type ClientService struct {
	clientRepo *repository.ClientRepository
}

func NewClientService(clientRepo *repository.ClientRepository) *ClientService {
	return &ClientService{clientRepo: clientRepo}
}

type CreateClientInput struct {
	CorporateName string
	Code          *int
	ContactName   string
	ContactPhone  string
	Phone         string
	Address       string
	Number        string
	District      string
	City          string
	State         string
}

type UpdateClientInput struct {
	CorporateName *string
	Code          *int
	ContactName   *string
	ContactPhone  *string
	Phone         *string
	Address       *string
	Number        *string
	District      *string
	City          *string
	State         *string
	IsActive      *bool
}

func (s *ClientService) Create(ctx context.Context, principal model.Principal, input CreateClientInput) (*model.Client, error) {
	if !principal.IsAdmin() {
		return nil, ErrPermissionDenied
	}
	if strings.TrimSpace(input.CorporateName) == "" {
		return nil, fmt.Errorf("%w: corporate_name is required", ErrValidation)
	}
	if len(strings.TrimSpace(input.State)) != 2 {
		return nil, fmt.Errorf("%w: state must be a two-letter code", ErrValidation)
	}

	client := &model.Client{
		CorporateName: input.CorporateName,
		Code:          input.Code,
		ContactName:   input.ContactName,
		ContactPhone:  input.ContactPhone,
		Phone:         input.Phone,
		Address:       input.Address,
		Number:        input.Number,
		District:      input.District,
		City:          input.City,
		State:         strings.ToUpper(strings.TrimSpace(input.State)),
		IsActive:      true,
	}
	if err := s.clientRepo.Create(ctx, client); err != nil {
		return nil, err
	}
	return client, nil
}

func (s *ClientService) Get(ctx context.Context, principal model.Principal, id uuid.UUID) (*model.Client, error) {
	client, err := s.clientRepo.GetByID(ctx, id)
	if err != nil {
		return nil, translateNotFound(err)
	}
	return client, nil
}

func (s *ClientService) List(ctx context.Context, principal model.Principal, isActive *bool) ([]model.Client, error) {
	if !principal.IsAdmin() {
		return nil, ErrPermissionDenied
	}
	return s.clientRepo.List(ctx, isActive)
}

func (s *ClientService) Update(ctx context.Context, principal model.Principal, id uuid.UUID, input UpdateClientInput) (*model.Client, error) {
	if !principal.IsAdmin() {
		return nil, ErrPermissionDenied
	}

	client, err := s.clientRepo.GetByID(ctx, id)
	if err != nil {
		return nil, translateNotFound(err)
	}

	if input.CorporateName != nil {
		client.CorporateName = *input.CorporateName
	}
	if input.Code != nil {
		client.Code = input.Code
	}
	if input.ContactName != nil {
		client.ContactName = *input.ContactName
	}
	if input.ContactPhone != nil {
		client.ContactPhone = *input.ContactPhone
	}
	if input.Phone != nil {
		client.Phone = *input.Phone
	}
	if input.Address != nil {
		client.Address = *input.Address
	}
	if input.Number != nil {
		client.Number = *input.Number
	}
	if input.District != nil {
		client.District = *input.District
	}
	if input.City != nil {
		client.City = *input.City
	}
	if input.State != nil {
		if len(strings.TrimSpace(*input.State)) != 2 {
			return nil, fmt.Errorf("%w: state must be a two-letter code", ErrValidation)
		}
		client.State = strings.ToUpper(strings.TrimSpace(*input.State))
	}
	if input.IsActive != nil {
		client.IsActive = *input.IsActive
	}

	if err := s.clientRepo.Save(ctx, client); err != nil {
		return nil, err
	}
	return client, nil
}

func (s *ClientService) Deactivate(ctx context.Context, principal model.Principal, id uuid.UUID) error {
	if !principal.IsAdmin() {
		return ErrPermissionDenied
	}
	return translateNotFound(s.clientRepo.Deactivate(ctx, id))
}
