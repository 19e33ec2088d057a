package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"workorder-service/internal/model"
)

type TechnicianRepository struct {
	db *gorm.DB
}

func NewTechnicianRepository(db *gorm.DB) *TechnicianRepository {
	return &TechnicianRepository{db: db}
}

func (r *TechnicianRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Technician, error) {
	var tech model.Technician
	if err := r.db.WithContext(ctx).First(&tech, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &tech, nil
}

func (r *TechnicianRepository) GetByEmail(ctx context.Context, email string) (*model.Technician, error) {
	var tech model.Technician
	if err := r.db.WithContext(ctx).First(&tech, "email = ?", email).Error; err != nil {
		return nil, err
	}
	return &tech, nil
}

func (r *TechnicianRepository) List(ctx context.Context, isActive *bool) ([]model.Technician, error) {
	query := r.db.WithContext(ctx).Model(&model.Technician{})
	if isActive != nil {
		query = query.Where("is_active = ?", *isActive)
	}
	var technicians []model.Technician
	if err := query.Order("name ASC").Find(&technicians).Error; err != nil {
		return nil, err
	}
	return technicians, nil
}

func (r *TechnicianRepository) Create(ctx context.Context, tech *model.Technician) error {
	return r.db.WithContext(ctx).Create(tech).Error
}

func (r *TechnicianRepository) Save(ctx context.Context, tech *model.Technician) error {
	return r.db.WithContext(ctx).Save(tech).Error
}

// Deactivate soft-deletes the technician. Orders keep referencing it; the
// services refuse new assignments to inactive technicians.
func (r *TechnicianRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Model(&model.Technician{}).
		Where("id = ?", id).
		Update("is_active", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
