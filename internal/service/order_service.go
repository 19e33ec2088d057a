package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"workorder-service/internal/model"
	"workorder-service/internal/repository"
)

type OrderService struct {
	orderRepo  *repository.OrderRepository
	techRepo   *repository.TechnicianRepository
	clientRepo *repository.ClientRepository
	cost       *CostService
}

func NewOrderService(
	orderRepo *repository.OrderRepository,
	techRepo *repository.TechnicianRepository,
	clientRepo *repository.ClientRepository,
	cost *CostService,
) *OrderService {
	return &OrderService{
		orderRepo:  orderRepo,
		techRepo:   techRepo,
		clientRepo: clientRepo,
		cost:       cost,
	}
}

type CreateOrderInput struct {
	ClientID     uuid.UUID
	TechnicianID *uuid.UUID
	Description  string
	Warranty     bool
}

func (s *OrderService) Create(ctx context.Context, principal model.Principal, input CreateOrderInput) (*model.ServiceOrder, error) {
	client, err := s.clientRepo.GetByID(ctx, input.ClientID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: client", ErrNotFound)
		}
		return nil, err
	}
	if !client.IsActive {
		return nil, fmt.Errorf("%w: client", ErrInactiveReference)
	}

	if input.TechnicianID != nil {
		if err := s.checkTechnician(ctx, *input.TechnicianID); err != nil {
			return nil, err
		}
	}

	order := &model.ServiceOrder{
		ClientID:     input.ClientID,
		TechnicianID: input.TechnicianID,
		Status:       model.OrderStatusOpen,
		OpenedOn:     today(),
		Description:  input.Description,
		Warranty:     input.Warranty,
	}
	if input.TechnicianID != nil {
		order.Status = model.OrderStatusScheduled
		scheduled := today()
		order.ScheduledOn = &scheduled
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, err
	}

	if err := s.orderRepo.LogStatusChange(ctx, &model.OrderStatusLog{
		OrderID:   order.ID,
		NewStatus: order.Status,
		Note:      "order opened",
		ChangedBy: &principal.UserID,
	}); err != nil {
		return nil, err
	}

	return s.orderRepo.GetByID(ctx, order.ID)
}

func (s *OrderService) Get(ctx context.Context, principal model.Principal, orderID uuid.UUID) (*model.ServiceOrder, error) {
	order, err := s.loadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !principal.OwnsOrder(order) {
		return nil, ErrPermissionDenied
	}
	return order, nil
}

// List returns every live order for admins, and only the orders assigned to
// the caller for technicians.
func (s *OrderService) List(ctx context.Context, principal model.Principal) ([]model.ServiceOrder, error) {
	orders, err := s.orderRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if principal.IsAdmin() {
		return orders, nil
	}
	own := make([]model.ServiceOrder, 0, len(orders))
	for _, order := range orders {
		if order.TechnicianID != nil && *order.TechnicianID == principal.UserID {
			own = append(own, order)
		}
	}
	return own, nil
}

// AssignTechnician sets or changes the assigned technician. Only an order
// still in OPEN is promoted to SCHEDULED; reassignment never downgrades an
// order already past that point.
func (s *OrderService) AssignTechnician(ctx context.Context, principal model.Principal, orderID, technicianID uuid.UUID) (*model.ServiceOrder, error) {
	if !principal.IsAdmin() {
		return nil, ErrPermissionDenied
	}

	order, err := s.loadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err := s.checkTechnician(ctx, technicianID); err != nil {
		return nil, err
	}

	fields := map[string]interface{}{"technician_id": technicianID}
	if order.Status == model.OrderStatusOpen {
		fields["status"] = model.OrderStatusScheduled
		fields["scheduled_on"] = today()
	}

	if err := s.orderRepo.UpdateFields(ctx, order.ID, fields); err != nil {
		return nil, translateNotFound(err)
	}

	if order.Status == model.OrderStatusOpen {
		if err := s.logTransition(ctx, order, model.OrderStatusScheduled, "technician assigned", principal); err != nil {
			return nil, err
		}
	}

	return s.orderRepo.GetByID(ctx, order.ID)
}

// StartService moves the order to IN_SERVICE. Only the assigned technician
// may call it, and only from SCHEDULED or PENDING.
func (s *OrderService) StartService(ctx context.Context, principal model.Principal, orderID uuid.UUID) (*model.ServiceOrder, error) {
	order, err := s.loadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if !principal.IsTecnico() || order.TechnicianID == nil || *order.TechnicianID != principal.UserID {
		return nil, fmt.Errorf("%w: only the assigned technician can start service", ErrPermissionDenied)
	}

	if order.Status != model.OrderStatusScheduled && order.Status != model.OrderStatusPending {
		return nil, fmt.Errorf("%w: cannot start service from %s", ErrInvalidStatus, order.Status)
	}

	fields := map[string]interface{}{"status": model.OrderStatusInService}
	if err := s.orderRepo.UpdateFields(ctx, order.ID, fields); err != nil {
		return nil, translateNotFound(err)
	}
	if err := s.logTransition(ctx, order, model.OrderStatusInService, "service started", principal); err != nil {
		return nil, err
	}

	return s.orderRepo.GetByID(ctx, order.ID)
}

// SetStatus is the manual status edit. Admins may set any status;
// technicians may only edit orders assigned to them and never set FINALIZED
// directly, which is reachable only through visit finalization.
func (s *OrderService) SetStatus(ctx context.Context, principal model.Principal, orderID uuid.UUID, target model.OrderStatus) (*model.ServiceOrder, error) {
	order, err := s.loadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if !principal.OwnsOrder(order) {
		return nil, ErrPermissionDenied
	}
	if principal.IsTecnico() && target == model.OrderStatusFinalized {
		return nil, fmt.Errorf("%w: technicians finalize orders by completing a visit", ErrPermissionDenied)
	}
	if !model.KnownOrderStatus(target) {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidStatus, target)
	}

	fields := map[string]interface{}{"status": target}
	if target == model.OrderStatusFinalized {
		fields["completed_on"] = today()
	} else {
		fields["completed_on"] = nil
	}

	if err := s.orderRepo.UpdateFields(ctx, order.ID, fields); err != nil {
		return nil, translateNotFound(err)
	}
	if order.Status != target {
		if err := s.logTransition(ctx, order, target, "manual status edit", principal); err != nil {
			return nil, err
		}
	}

	return s.orderRepo.GetByID(ctx, order.ID)
}

// Cancel soft-terminates the order. It does not touch the status field and
// is idempotent; from here on the order is invisible to every other
// operation.
func (s *OrderService) Cancel(ctx context.Context, principal model.Principal, orderID uuid.UUID) error {
	if !principal.IsAdmin() {
		return ErrPermissionDenied
	}
	if err := s.orderRepo.Cancel(ctx, orderID); err != nil {
		return translateNotFound(err)
	}
	return nil
}

func (s *OrderService) CostBreakdown(ctx context.Context, principal model.Principal, orderID uuid.UUID) (*model.CostBreakdown, error) {
	order, err := s.loadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !principal.OwnsOrder(order) {
		return nil, ErrPermissionDenied
	}
	breakdown := s.cost.Breakdown(order)
	return &breakdown, nil
}

func (s *OrderService) loadOrder(ctx context.Context, orderID uuid.UUID) (*model.ServiceOrder, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, translateNotFound(err)
	}
	return order, nil
}

func (s *OrderService) checkTechnician(ctx context.Context, technicianID uuid.UUID) error {
	tech, err := s.techRepo.GetByID(ctx, technicianID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: technician", ErrNotFound)
		}
		return err
	}
	if !tech.IsActive {
		return fmt.Errorf("%w: technician", ErrInactiveReference)
	}
	return nil
}

func (s *OrderService) logTransition(ctx context.Context, order *model.ServiceOrder, target model.OrderStatus, note string, principal model.Principal) error {
	prev := order.Status
	return s.orderRepo.LogStatusChange(ctx, &model.OrderStatusLog{
		OrderID:   order.ID,
		OldStatus: &prev,
		NewStatus: target,
		Note:      note,
		ChangedBy: &principal.UserID,
	})
}

func translateNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

func today() time.Time {
	year, month, day := time.Now().UTC().Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
