package model

import "github.com/google/uuid"

// RateTable is the externally configured rate card injected into the cost
// engine. Values are currency per hour or per kilometre.
type RateTable struct {
	FirstHourTechnician  float64
	HourTechnician       float64
	HourHelper           float64
	TravelHourTechnician float64
	TravelHourHelper     float64
	PerKM                float64
}

// MaterialCost is one line of the compiled material list, merged by exact
// name across every visit of the order.
type MaterialCost struct {
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitValue float64 `json:"unit_value"`
	Total     float64 `json:"total"`
}

type VisitCost struct {
	VisitSeq  int     `json:"visit_id"`
	VisitDate string  `json:"visit_date"`
	Materials float64 `json:"materials"`
	Distance  float64 `json:"distance"`
	Toll      float64 `json:"toll"`
	Freight   float64 `json:"freight"`
	Service   float64 `json:"service"`
	Travel    float64 `json:"travel"`
	Subtotal  float64 `json:"subtotal"`
}

// CostBreakdown is derived on demand from an order's visit list. It is never
// persisted.
type CostBreakdown struct {
	OrderID        uuid.UUID      `json:"order_id"`
	MaterialsTotal float64        `json:"materials_total"`
	DistanceTotal  float64        `json:"distance_total"`
	TollTotal      float64        `json:"toll_total"`
	FreightTotal   float64        `json:"freight_total"`
	ServiceTotal   float64        `json:"service_total"`
	TravelTotal    float64        `json:"travel_total"`
	GrandTotal     float64        `json:"grand_total"`
	Visits         []VisitCost    `json:"visits"`
	Materials      []MaterialCost `json:"materials"`
}
