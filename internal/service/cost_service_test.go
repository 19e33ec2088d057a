package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"workorder-service/internal/model"
)

func testRates() model.RateTable {
	return model.RateTable{
		FirstHourTechnician:  87.01,
		HourTechnician:       62.15,
		HourHelper:           27.57,
		TravelHourTechnician: 24.86,
		TravelHourHelper:     12.43,
		PerKM:                1.15,
	}
}

func TestBreakdownSingleVisit(t *testing.T) {
	svc := NewCostService(testRates())

	order := &model.ServiceOrder{
		ID: uuid.New(),
		Visits: []model.Visit{
			{
				Seq:             1,
				VisitDate:       time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
				DepartureStart:  "07:30",
				ArrivalAtClient: "08:45",
				ServiceStart:    "09:00",
				ServiceEnd:      "10:30",
				DistanceKM:      55,
				TollAmount:      9.80,
				Works: []model.ServiceWork{
					{
						SerialNumber: "CP-1001",
						Materials: []model.Material{
							{Name: "Contactor 32A", Quantity: 2, UnitValue: 50.00},
							{Name: "Pressure switch", Quantity: 1, UnitValue: 85.00},
						},
					},
				},
			},
		},
	}

	breakdown := svc.Breakdown(order)
	require.Len(t, breakdown.Visits, 1)

	visit := breakdown.Visits[0]
	assert.Equal(t, 1, visit.VisitSeq)
	assert.Equal(t, "2025-03-10", visit.VisitDate)
	assert.Equal(t, 185.00, visit.Materials)
	assert.Equal(t, 63.25, visit.Distance)
	assert.Equal(t, 9.80, visit.Toll)
	assert.Equal(t, 0.00, visit.Freight)
	assert.Equal(t, 31.08, visit.Travel)
	assert.Equal(t, 118.09, visit.Service)
	assert.Equal(t, 407.22, visit.Subtotal)

	assert.Equal(t, order.ID, breakdown.OrderID)
	assert.Equal(t, 407.22, breakdown.GrandTotal)
}

func TestBreakdownNoVisits(t *testing.T) {
	svc := NewCostService(testRates())

	breakdown := svc.Breakdown(&model.ServiceOrder{ID: uuid.New()})

	assert.Empty(t, breakdown.Visits)
	assert.Empty(t, breakdown.Materials)
	assert.Equal(t, 0.0, breakdown.MaterialsTotal)
	assert.Equal(t, 0.0, breakdown.DistanceTotal)
	assert.Equal(t, 0.0, breakdown.TollTotal)
	assert.Equal(t, 0.0, breakdown.FreightTotal)
	assert.Equal(t, 0.0, breakdown.ServiceTotal)
	assert.Equal(t, 0.0, breakdown.TravelTotal)
	assert.Equal(t, 0.0, breakdown.GrandTotal)
}

func TestBreakdownCompilesMaterialsAcrossVisits(t *testing.T) {
	svc := NewCostService(testRates())

	order := &model.ServiceOrder{
		ID: uuid.New(),
		Visits: []model.Visit{
			{
				Seq:       1,
				VisitDate: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
				Works: []model.ServiceWork{
					{
						SerialNumber: "CP-1001",
						Materials: []model.Material{
							{Name: "Capacitor 40uF", Quantity: 3, UnitValue: 19.90},
						},
					},
				},
			},
			{
				Seq:       2,
				VisitDate: time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC),
				Works: []model.ServiceWork{
					{
						SerialNumber: "CP-1002",
						Materials: []model.Material{
							{Name: "Capacitor 40uF", Quantity: 2, UnitValue: 19.90},
						},
					},
				},
			},
		},
	}

	breakdown := svc.Breakdown(order)

	require.Len(t, breakdown.Materials, 1)
	compiled := breakdown.Materials[0]
	assert.Equal(t, "Capacitor 40uF", compiled.Name)
	assert.Equal(t, 5, compiled.Quantity)
	assert.Equal(t, 19.90, compiled.UnitValue)
	assert.Equal(t, 99.50, compiled.Total)

	assert.Equal(t, 59.70, breakdown.Visits[0].Materials)
	assert.Equal(t, 39.80, breakdown.Visits[1].Materials)
	assert.Equal(t, 99.50, breakdown.MaterialsTotal)
	assert.Equal(t, 99.50, breakdown.GrandTotal)
}

func TestBreakdownMalformedTimesCostNothing(t *testing.T) {
	svc := NewCostService(testRates())

	order := &model.ServiceOrder{
		ID: uuid.New(),
		Visits: []model.Visit{
			{
				Seq:             1,
				VisitDate:       time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
				DepartureStart:  "",
				ArrivalAtClient: "08:00",
				ServiceStart:    "9h",
				ServiceEnd:      "10:00",
			},
		},
	}

	breakdown := svc.Breakdown(order)
	require.Len(t, breakdown.Visits, 1)
	assert.Equal(t, 0.0, breakdown.Visits[0].Travel)
	assert.Equal(t, 0.0, breakdown.Visits[0].Service)
}

func TestBreakdownFirstHourMinimum(t *testing.T) {
	svc := NewCostService(testRates())

	order := &model.ServiceOrder{
		ID: uuid.New(),
		Visits: []model.Visit{
			{
				Seq:          1,
				VisitDate:    time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
				ServiceStart: "09:00",
				ServiceEnd:   "09:20",
			},
		},
	}

	breakdown := svc.Breakdown(order)
	require.Len(t, breakdown.Visits, 1)
	assert.Equal(t, 87.01, breakdown.Visits[0].Service)
}

func TestBreakdownFreightComponent(t *testing.T) {
	svc := NewCostService(testRates())

	order := &model.ServiceOrder{
		ID: uuid.New(),
		Visits: []model.Visit{
			{
				Seq:                 1,
				VisitDate:           time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
				ReturnFreightAmount: 140.50,
			},
		},
	}

	breakdown := svc.Breakdown(order)
	require.Len(t, breakdown.Visits, 1)
	assert.Equal(t, 140.50, breakdown.Visits[0].Freight)
	assert.Equal(t, 140.50, breakdown.FreightTotal)
	assert.Equal(t, 140.50, breakdown.GrandTotal)
}
