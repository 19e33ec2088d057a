package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BankDetails struct {
	Bank    string `json:"bank"`
	Branch  string `json:"branch"`
	Account string `json:"account"`
	Pix     string `json:"pix,omitempty"`
}

type Technician struct {
	ID                uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	Name              string       `gorm:"type:varchar(100);not null" json:"name"`
	CNPJ              string       `gorm:"type:varchar(18);not null;uniqueIndex" json:"cnpj"`
	CPF               string       `gorm:"type:varchar(14);not null" json:"cpf"`
	StateRegistration string       `gorm:"type:varchar(50)" json:"state_registration"`
	Email             string       `gorm:"type:varchar(100);not null;uniqueIndex" json:"email"`
	Phone             string       `gorm:"type:varchar(20)" json:"phone"`
	PasswordHash      string       `gorm:"type:varchar(100);not null" json:"-"`
	Role              UserRole     `gorm:"type:varchar(16);not null;default:'TECNICO'" json:"role"`
	IsActive          bool         `gorm:"not null;default:true" json:"is_active"`
	BankDetails       *BankDetails `gorm:"serializer:json" json:"bank_details"`
	CreatedAt         time.Time    `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time    `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Technician) TableName() string {
	return "technicians"
}

func (t *Technician) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
