package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Client struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CorporateName string    `gorm:"type:varchar(100);not null" json:"corporate_name"`
	Code          *int      `gorm:"uniqueIndex" json:"code"`
	ContactName   string    `gorm:"type:varchar(100)" json:"contact_name"`
	ContactPhone  string    `gorm:"type:varchar(20)" json:"contact_phone"`
	Phone         string    `gorm:"type:varchar(20)" json:"phone"`
	Address       string    `gorm:"type:varchar(200)" json:"address"`
	Number        string    `gorm:"type:varchar(20)" json:"number"`
	District      string    `gorm:"type:varchar(100)" json:"district"`
	City          string    `gorm:"type:varchar(100)" json:"city"`
	State         string    `gorm:"type:varchar(2);not null" json:"state"`
	IsActive      bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Client) TableName() string {
	return "clients"
}

func (c *Client) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
