package service

import (
	"math"
	"time"

	"workorder-service/internal/model"
)

// CostService derives a cost breakdown from an order's visit list. It is
// deterministic, performs no I/O and never mutates the order.
type CostService struct {
	rates model.RateTable
}

func NewCostService(rates model.RateTable) *CostService {
	return &CostService{rates: rates}
}

func (s *CostService) Breakdown(order *model.ServiceOrder) model.CostBreakdown {
	var materialsTotal, distanceTotal, tollTotal, freightTotal, serviceTotal, travelTotal float64

	visits := make([]model.VisitCost, 0, len(order.Visits))
	compiledIndex := make(map[string]int)
	compiled := make([]model.MaterialCost, 0)

	for i := range order.Visits {
		visit := &order.Visits[i]

		var materials float64
		for _, work := range visit.Works {
			for _, mat := range work.Materials {
				line := round2(float64(mat.Quantity) * mat.UnitValue)
				materials += line

				idx, ok := compiledIndex[mat.Name]
				if !ok {
					compiledIndex[mat.Name] = len(compiled)
					compiled = append(compiled, model.MaterialCost{
						Name:      mat.Name,
						UnitValue: mat.UnitValue,
					})
					idx = compiledIndex[mat.Name]
				}
				compiled[idx].Quantity += mat.Quantity
				compiled[idx].Total += line
			}
		}
		materials = round2(materials)

		distance := round2(float64(visit.DistanceKM) * s.rates.PerKM)
		toll := round2(visit.TollAmount)
		freight := round2(visit.ReturnFreightAmount)

		travelHours := clockSpanHours(visit.DepartureStart, visit.ArrivalAtClient)
		travel := round2(travelHours * s.rates.TravelHourTechnician)

		serviceHours := clockSpanHours(visit.ServiceStart, visit.ServiceEnd)
		var serviceCost float64
		if serviceHours > 0 {
			if serviceHours <= 1 {
				serviceCost = s.rates.FirstHourTechnician
			} else {
				serviceCost = s.rates.FirstHourTechnician + (serviceHours-1)*s.rates.HourTechnician
			}
		}
		serviceCost = round2(serviceCost)

		subtotal := round2(materials + distance + toll + freight + travel + serviceCost)

		visits = append(visits, model.VisitCost{
			VisitSeq:  visit.Seq,
			VisitDate: visit.VisitDate.Format("2006-01-02"),
			Materials: materials,
			Distance:  distance,
			Toll:      toll,
			Freight:   freight,
			Service:   serviceCost,
			Travel:    travel,
			Subtotal:  subtotal,
		})

		materialsTotal += materials
		distanceTotal += distance
		tollTotal += toll
		freightTotal += freight
		serviceTotal += serviceCost
		travelTotal += travel
	}

	for i := range compiled {
		compiled[i].Total = round2(compiled[i].Total)
	}

	// The grand total is rounded once from the unrounded accumulators so
	// rounding error does not compound across visits.
	return model.CostBreakdown{
		OrderID:        order.ID,
		MaterialsTotal: round2(materialsTotal),
		DistanceTotal:  round2(distanceTotal),
		TollTotal:      round2(tollTotal),
		FreightTotal:   round2(freightTotal),
		ServiceTotal:   round2(serviceTotal),
		TravelTotal:    round2(travelTotal),
		GrandTotal:     round2(materialsTotal + distanceTotal + tollTotal + freightTotal + serviceTotal + travelTotal),
		Visits:         visits,
		Materials:      compiled,
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// clockSpanHours returns end minus start in fractional hours. Malformed
// times degrade to 0 rather than raising an error.
func clockSpanHours(start, end string) float64 {
	t1, err := time.Parse("15:04", start)
	if err != nil {
		return 0
	}
	t2, err := time.Parse("15:04", end)
	if err != nil {
		return 0
	}
	return t2.Sub(t1).Hours()
}
