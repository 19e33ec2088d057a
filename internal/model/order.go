package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderStatus string

const (
	OrderStatusOpen      OrderStatus = "OPEN"
	OrderStatusScheduled OrderStatus = "SCHEDULED"
	OrderStatusInService OrderStatus = "IN_SERVICE"
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusFinalized OrderStatus = "FINALIZED"
)

// KnownOrderStatus reports whether value is one of the lifecycle statuses.
// Cancellation is a separate flag on the order, not a status.
func KnownOrderStatus(value OrderStatus) bool {
	switch value {
	case OrderStatusOpen, OrderStatusScheduled, OrderStatusInService, OrderStatusPending, OrderStatusFinalized:
		return true
	}
	return false
}

type ServiceOrder struct {
	ID           uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	ClientID     uuid.UUID   `gorm:"type:uuid;not null" json:"client_id"`
	TechnicianID *uuid.UUID  `gorm:"type:uuid" json:"technician_id"`
	Status       OrderStatus `gorm:"type:varchar(32);not null;default:'OPEN'" json:"status"`
	IsCancelled  bool        `gorm:"not null;default:false" json:"is_cancelled"`
	OpenedOn     time.Time   `gorm:"type:date;not null" json:"opened_on"`
	ScheduledOn  *time.Time  `gorm:"type:date" json:"scheduled_on"`
	CompletedOn  *time.Time  `gorm:"type:date" json:"completed_on"`
	Description  string      `gorm:"type:text" json:"description"`
	Warranty     bool        `gorm:"not null;default:true" json:"warranty"`
	CreatedAt    time.Time   `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time   `gorm:"autoUpdateTime" json:"updated_at"`

	Client     *Client     `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	Technician *Technician `gorm:"foreignKey:TechnicianID" json:"technician,omitempty"`
	Visits     []Visit     `gorm:"foreignKey:OrderID" json:"visits"`
}

func (ServiceOrder) TableName() string {
	return "service_orders"
}

func (o *ServiceOrder) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// VisitBySeq returns the visit with the given per-order sequence number.
func (o *ServiceOrder) VisitBySeq(seq int) *Visit {
	for i := range o.Visits {
		if o.Visits[i].Seq == seq {
			return &o.Visits[i]
		}
	}
	return nil
}
