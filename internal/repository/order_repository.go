package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"workorder-service/internal/model"
)

type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// GetByID loads the full aggregate: visits in creation order with their
// works and materials, plus client and technician. Cancelled orders are
// hidden from normal traffic and surface as gorm.ErrRecordNotFound.
func (r *OrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.ServiceOrder, error) {
	var order model.ServiceOrder
	err := r.db.WithContext(ctx).
		Where("id = ? AND is_cancelled = ?", id, false).
		Preload("Visits", func(db *gorm.DB) *gorm.DB {
			return db.Order("visits.seq ASC")
		}).
		Preload("Visits.Works").
		Preload("Visits.Works.Materials").
		Preload("Client").
		Preload("Technician").
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *OrderRepository) List(ctx context.Context) ([]model.ServiceOrder, error) {
	var orders []model.ServiceOrder
	err := r.db.WithContext(ctx).
		Where("is_cancelled = ?", false).
		Preload("Visits", func(db *gorm.DB) *gorm.DB {
			return db.Order("visits.seq ASC")
		}).
		Preload("Visits.Works").
		Preload("Visits.Works.Materials").
		Preload("Client").
		Preload("Technician").
		Order("service_orders.created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *OrderRepository) Create(ctx context.Context, order *model.ServiceOrder) error {
	return r.db.WithContext(ctx).Create(order).Error
}

// UpdateFields applies a partial update to a non-cancelled order.
func (r *OrderRepository) UpdateFields(ctx context.Context, orderID uuid.UUID, fields map[string]interface{}) error {
	res := r.db.WithContext(ctx).
		Model(&model.ServiceOrder{}).
		Where("id = ? AND is_cancelled = ?", orderID, false).
		Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Cancel marks the order cancelled. Repeated cancellation is a no-op that
// still succeeds; only a truly absent order reports not found.
func (r *OrderRepository) Cancel(ctx context.Context, orderID uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Model(&model.ServiceOrder{}).
		Where("id = ?", orderID).
		Update("is_cancelled", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *OrderRepository) LogStatusChange(ctx context.Context, logEntry *model.OrderStatusLog) error {
	return r.db.WithContext(ctx).Create(logEntry).Error
}

// CreateVisit persists a new visit (with nested works and materials) and the
// accompanying order changes as one transaction.
func (r *OrderRepository) CreateVisit(ctx context.Context, visit *model.Visit, orderFields map[string]interface{}, logEntry *model.OrderStatusLog) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(visit).Error; err != nil {
			return err
		}
		if len(orderFields) > 0 {
			if err := tx.Model(&model.ServiceOrder{}).
				Where("id = ?", visit.OrderID).
				Updates(orderFields).Error; err != nil {
				return err
			}
		}
		if logEntry != nil {
			if err := tx.Create(logEntry).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// SaveVisitAndOrder commits the merged post-state of a visit together with
// the derived order changes atomically. When replaceWorks is set the visit's
// work list (and its materials) is replaced wholesale.
func (r *OrderRepository) SaveVisitAndOrder(ctx context.Context, visit *model.Visit, replaceWorks bool, orderFields map[string]interface{}, logEntry *model.OrderStatusLog) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if replaceWorks {
			var workIDs []uuid.UUID
			if err := tx.Model(&model.ServiceWork{}).
				Where("visit_id = ?", visit.ID).
				Pluck("id", &workIDs).Error; err != nil {
				return err
			}
			if len(workIDs) > 0 {
				if err := tx.Where("work_id IN ?", workIDs).Delete(&model.Material{}).Error; err != nil {
					return err
				}
				if err := tx.Where("visit_id = ?", visit.ID).Delete(&model.ServiceWork{}).Error; err != nil {
					return err
				}
			}
		}

		if err := tx.Omit(clause.Associations).Save(visit).Error; err != nil {
			return err
		}

		if replaceWorks && len(visit.Works) > 0 {
			for i := range visit.Works {
				visit.Works[i].ID = uuid.Nil
				visit.Works[i].VisitID = visit.ID
			}
			if err := tx.Create(&visit.Works).Error; err != nil {
				return err
			}
		}

		if len(orderFields) > 0 {
			if err := tx.Model(&model.ServiceOrder{}).
				Where("id = ?", visit.OrderID).
				Updates(orderFields).Error; err != nil {
				return err
			}
		}
		if logEntry != nil {
			if err := tx.Create(logEntry).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
