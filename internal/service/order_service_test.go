package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"workorder-service/internal/model"
	"workorder-service/internal/repository"
)

type fixture struct {
	db     *gorm.DB
	orders *OrderService
	visits *VisitService
	admin  model.Principal
	tech   *model.Technician
	client *model.Client
}

func (f *fixture) techPrincipal() model.Principal {
	return model.Principal{UserID: f.tech.ID, Role: model.UserRoleTecnico}
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&model.Client{},
		&model.Technician{},
		&model.ServiceOrder{},
		&model.Visit{},
		&model.ServiceWork{},
		&model.Material{},
		&model.OrderStatusLog{},
	))

	tech := &model.Technician{
		Name:         "Carlos Pereira",
		CNPJ:         "12.345.678/0001-90",
		CPF:          "123.456.789-00",
		Email:        "carlos@example.com",
		PasswordHash: "unused",
		Role:         model.UserRoleTecnico,
		IsActive:     true,
	}
	require.NoError(t, db.Create(tech).Error)

	client := &model.Client{
		CorporateName: "Padaria Central Ltda",
		City:          "Campinas",
		State:         "SP",
		IsActive:      true,
	}
	require.NoError(t, db.Create(client).Error)

	orderRepo := repository.NewOrderRepository(db)
	techRepo := repository.NewTechnicianRepository(db)
	clientRepo := repository.NewClientRepository(db)
	cost := NewCostService(testRates())

	return &fixture{
		db:     db,
		orders: NewOrderService(orderRepo, techRepo, clientRepo, cost),
		visits: NewVisitService(orderRepo),
		admin:  model.Principal{UserID: uuid.New(), Role: model.UserRoleAdmin},
		tech:   tech,
		client: client,
	}
}

func (f *fixture) createOrder(t *testing.T, technicianID *uuid.UUID) *model.ServiceOrder {
	t.Helper()
	order, err := f.orders.Create(context.Background(), f.admin, CreateOrderInput{
		ClientID:     f.client.ID,
		TechnicianID: technicianID,
		Description:  "cold room compressor not starting",
		Warranty:     true,
	})
	require.NoError(t, err)
	return order
}

func (f *fixture) statusLogCount(t *testing.T, orderID uuid.UUID) int64 {
	t.Helper()
	var count int64
	require.NoError(t, f.db.Model(&model.OrderStatusLog{}).Where("order_id = ?", orderID).Count(&count).Error)
	return count
}

func TestCreateOrderStartsOpen(t *testing.T) {
	f := newFixture(t)

	order := f.createOrder(t, nil)

	assert.Equal(t, model.OrderStatusOpen, order.Status)
	assert.False(t, order.OpenedOn.IsZero())
	assert.Nil(t, order.ScheduledOn)
	assert.Nil(t, order.CompletedOn)
	assert.Nil(t, order.TechnicianID)
	assert.True(t, order.Warranty)
	assert.EqualValues(t, 1, f.statusLogCount(t, order.ID))
}

func TestCreateOrderWithTechnicianIsScheduled(t *testing.T) {
	f := newFixture(t)

	order := f.createOrder(t, &f.tech.ID)

	assert.Equal(t, model.OrderStatusScheduled, order.Status)
	require.NotNil(t, order.ScheduledOn)
	require.NotNil(t, order.TechnicianID)
	assert.Equal(t, f.tech.ID, *order.TechnicianID)
}

func TestCreateOrderRejectsBadReferences(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.orders.Create(ctx, f.admin, CreateOrderInput{ClientID: uuid.New()})
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, f.db.Model(f.client).Update("is_active", false).Error)
	_, err = f.orders.Create(ctx, f.admin, CreateOrderInput{ClientID: f.client.ID})
	assert.ErrorIs(t, err, ErrInactiveReference)

	require.NoError(t, f.db.Model(f.client).Update("is_active", true).Error)
	unknownTech := uuid.New()
	_, err = f.orders.Create(ctx, f.admin, CreateOrderInput{ClientID: f.client.ID, TechnicianID: &unknownTech})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAssignTechnicianPromotesOpenOrder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	order := f.createOrder(t, nil)

	updated, err := f.orders.AssignTechnician(ctx, f.admin, order.ID, f.tech.ID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusScheduled, updated.Status)
	require.NotNil(t, updated.ScheduledOn)
	require.NotNil(t, updated.TechnicianID)
	assert.Equal(t, f.tech.ID, *updated.TechnicianID)
}

func TestAssignTechnicianRequiresAdmin(t *testing.T) {
	f := newFixture(t)

	order := f.createOrder(t, nil)

	_, err := f.orders.AssignTechnician(context.Background(), f.techPrincipal(), order.ID, f.tech.ID)
	assert.ErrorIs(t, err, ErrPermissionDenied)
}

func TestReassignDoesNotDowngradeStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	order := f.createOrder(t, &f.tech.ID)

	_, err := f.orders.StartService(ctx, f.techPrincipal(), order.ID)
	require.NoError(t, err)

	other := &model.Technician{
		Name:         "Joana Lima",
		CNPJ:         "98.765.432/0001-10",
		CPF:          "987.654.321-00",
		Email:        "joana@example.com",
		PasswordHash: "unused",
		Role:         model.UserRoleTecnico,
		IsActive:     true,
	}
	require.NoError(t, f.db.Create(other).Error)

	updated, err := f.orders.AssignTechnician(ctx, f.admin, order.ID, other.ID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusInService, updated.Status)
	require.NotNil(t, updated.TechnicianID)
	assert.Equal(t, other.ID, *updated.TechnicianID)
}

func TestStartServiceByAssignedTechnician(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	order := f.createOrder(t, &f.tech.ID)

	updated, err := f.orders.StartService(ctx, f.techPrincipal(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusInService, updated.Status)

	// Already in service, not a startable state anymore.
	_, err = f.orders.StartService(ctx, f.techPrincipal(), order.ID)
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestStartServiceRejectsOtherCallers(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	order := f.createOrder(t, &f.tech.ID)

	_, err := f.orders.StartService(ctx, f.admin, order.ID)
	assert.ErrorIs(t, err, ErrPermissionDenied)

	stranger := model.Principal{UserID: uuid.New(), Role: model.UserRoleTecnico}
	_, err = f.orders.StartService(ctx, stranger, order.ID)
	assert.ErrorIs(t, err, ErrPermissionDenied)
}

func TestSetStatusKeepsCompletionDateConsistent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	order := f.createOrder(t, &f.tech.ID)

	finalized, err := f.orders.SetStatus(ctx, f.admin, order.ID, model.OrderStatusFinalized)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusFinalized, finalized.Status)
	assert.NotNil(t, finalized.CompletedOn)

	reopened, err := f.orders.SetStatus(ctx, f.admin, order.ID, model.OrderStatusInService)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusInService, reopened.Status)
	assert.Nil(t, reopened.CompletedOn)
}

func TestSetStatusTechnicianCannotFinalize(t *testing.T) {
	f := newFixture(t)

	order := f.createOrder(t, &f.tech.ID)

	_, err := f.orders.SetStatus(context.Background(), f.techPrincipal(), order.ID, model.OrderStatusFinalized)
	assert.ErrorIs(t, err, ErrPermissionDenied)
}

func TestSetStatusRejectsUnknownValue(t *testing.T) {
	f := newFixture(t)

	order := f.createOrder(t, &f.tech.ID)

	_, err := f.orders.SetStatus(context.Background(), f.admin, order.ID, model.OrderStatus("ARCHIVED"))
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestCancelHidesOrderAndStaysIdempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	order := f.createOrder(t, &f.tech.ID)

	require.NoError(t, f.orders.Cancel(ctx, f.admin, order.ID))

	_, err := f.orders.Get(ctx, f.admin, order.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	// Cancelling again succeeds without touching anything.
	assert.NoError(t, f.orders.Cancel(ctx, f.admin, order.ID))

	assert.ErrorIs(t, f.orders.Cancel(ctx, f.admin, uuid.New()), ErrNotFound)
	assert.ErrorIs(t, f.orders.Cancel(ctx, f.techPrincipal(), order.ID), ErrPermissionDenied)
}

func TestListScopesTechniciansToOwnOrders(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	assigned := f.createOrder(t, &f.tech.ID)
	unassigned := f.createOrder(t, nil)

	mine, err := f.orders.List(ctx, f.techPrincipal())
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, assigned.ID, mine[0].ID)

	all, err := f.orders.List(ctx, f.admin)
	require.NoError(t, err)
	ids := make(map[uuid.UUID]bool, len(all))
	for _, o := range all {
		ids[o.ID] = true
	}
	assert.True(t, ids[assigned.ID])
	assert.True(t, ids[unassigned.ID])
}

func TestGetEnforcesOwnership(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	order := f.createOrder(t, nil)

	_, err := f.orders.Get(ctx, f.techPrincipal(), order.ID)
	assert.ErrorIs(t, err, ErrPermissionDenied)

	got, err := f.orders.Get(ctx, f.admin, order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.ID, got.ID)
}

func TestCostBreakdownOverPersistedVisits(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	order := f.createOrder(t, &f.tech.ID)

	_, err := f.visits.Add(ctx, f.techPrincipal(), order.ID, VisitInput{
		VisitDate:       time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		DepartureStart:  "07:30",
		ArrivalAtClient: "08:45",
		ServiceStart:    "09:00",
		ServiceEnd:      "10:30",
		DistanceKM:      55,
		TollAmount:      9.80,
		Works: []ServiceWorkInput{
			{
				SerialNumber: "CP-1001",
				Materials: []MaterialInput{
					{Name: "Contactor 32A", Quantity: 2, UnitValue: 50.00},
					{Name: "Pressure switch", Quantity: 1, UnitValue: 85.00},
				},
			},
		},
	})
	require.NoError(t, err)

	breakdown, err := f.orders.CostBreakdown(ctx, f.admin, order.ID)
	require.NoError(t, err)
	require.Len(t, breakdown.Visits, 1)
	assert.Equal(t, 407.22, breakdown.Visits[0].Subtotal)
	assert.Equal(t, 407.22, breakdown.GrandTotal)

	stranger := model.Principal{UserID: uuid.New(), Role: model.UserRoleTecnico}
	_, err = f.orders.CostBreakdown(ctx, stranger, order.ID)
	assert.ErrorIs(t, err, ErrPermissionDenied)
}
