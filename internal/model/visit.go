package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Visit records one technician trip against a service order. The externally
// visible identifier is Seq, assigned sequentially per order starting at 1.
type Visit struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey" json:"-"`
	OrderID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uniq_visit_order_seq" json:"order_id"`
	Seq     int       `gorm:"not null;uniqueIndex:uniq_visit_order_seq" json:"id"`

	VisitDate time.Time `gorm:"type:date;not null" json:"visit_date"`

	// Clock times in HH:MM, date-less. Used only for duration arithmetic.
	DepartureStart  string `gorm:"type:varchar(5)" json:"departure_start"`
	ArrivalAtClient string `gorm:"type:varchar(5)" json:"arrival_at_client"`
	ServiceStart    string `gorm:"type:varchar(5)" json:"service_start"`
	ServiceEnd      string `gorm:"type:varchar(5)" json:"service_end"`

	DistanceKM          int     `gorm:"not null;default:0" json:"distance_km"`
	TollAmount          float64 `gorm:"not null;default:0" json:"toll_amount"`
	ReturnFreightAmount float64 `gorm:"not null;default:0" json:"return_freight_amount"`

	WorkDescription string `gorm:"type:text" json:"work_description"`
	HelperName      string `gorm:"type:varchar(100)" json:"helper_name"`
	HelperPhone     string `gorm:"type:varchar(20)" json:"helper_phone"`

	Completed   bool    `gorm:"not null;default:false" json:"completed"`
	PendingNote *string `gorm:"type:text" json:"pending_note"`

	OdometerStartRef   *string  `gorm:"type:varchar(255)" json:"odometer_start_ref"`
	OdometerEndRef     *string  `gorm:"type:varchar(255)" json:"odometer_end_ref"`
	ClientSignatureRef *string  `gorm:"type:varchar(255)" json:"client_signature_ref"`
	TollProofRefs      []string `gorm:"serializer:json" json:"toll_proof_refs"`
	FreightProofRefs   []string `gorm:"serializer:json" json:"freight_proof_refs"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Works []ServiceWork `gorm:"foreignKey:VisitID" json:"works"`
}

func (Visit) TableName() string {
	return "visits"
}

func (v *Visit) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}

// HasPendingNote reports whether the visit leaves work outstanding.
func (v *Visit) HasPendingNote() bool {
	return v.PendingNote != nil && strings.TrimSpace(*v.PendingNote) != ""
}

// ServiceWork is the work performed on one physical unit during a visit.
type ServiceWork struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"-"`
	VisitID      uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`
	SerialNumber string    `gorm:"type:varchar(100);not null" json:"serial_number"`
	DefectTags   []string  `gorm:"serializer:json" json:"defect_tags"`
	DefectNotes  string    `gorm:"type:text" json:"defect_notes"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`

	Materials []Material `gorm:"foreignKey:WorkID" json:"materials"`
}

func (ServiceWork) TableName() string {
	return "service_works"
}

func (w *ServiceWork) BeforeCreate(tx *gorm.DB) error {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	return nil
}

type Material struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"-"`
	WorkID    uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`
	Name      string    `gorm:"type:varchar(100);not null" json:"name"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	UnitValue float64   `gorm:"not null" json:"unit_value"`
}

func (Material) TableName() string {
	return "materials"
}

func (m *Material) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
