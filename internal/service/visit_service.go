package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"workorder-service/internal/model"
	"workorder-service/internal/repository"
)

type VisitService struct {
	orderRepo *repository.OrderRepository
}

func NewVisitService(orderRepo *repository.OrderRepository) *VisitService {
	return &VisitService{orderRepo: orderRepo}
}

type MaterialInput struct {
	Name      string
	Quantity  int
	UnitValue float64
}

type ServiceWorkInput struct {
	SerialNumber string
	DefectTags   []string
	DefectNotes  string
	Materials    []MaterialInput
}

type VisitInput struct {
	VisitDate           time.Time
	DepartureStart      string
	ArrivalAtClient     string
	ServiceStart        string
	ServiceEnd          string
	DistanceKM          int
	TollAmount          float64
	ReturnFreightAmount float64
	WorkDescription     string
	HelperName          string
	HelperPhone         string
	Completed           bool
	PendingNote         *string
	OdometerStartRef    *string
	OdometerEndRef      *string
	ClientSignatureRef  *string
	TollProofRefs       []string
	FreightProofRefs    []string
	Works               []ServiceWorkInput
}

// VisitPatch is a merge-patch: nil fields are left untouched. Proof ref
// lists are append-only, a blank PendingNote clears the note and a non-nil
// Works replaces the work list wholesale.
type VisitPatch struct {
	VisitDate           *time.Time
	DepartureStart      *string
	ArrivalAtClient     *string
	ServiceStart        *string
	ServiceEnd          *string
	DistanceKM          *int
	TollAmount          *float64
	ReturnFreightAmount *float64
	WorkDescription     *string
	HelperName          *string
	HelperPhone         *string
	Completed           *bool
	PendingNote         *string
	OdometerStartRef    *string
	OdometerEndRef      *string
	ClientSignatureRef  *string
	AddTollProofRefs    []string
	AddFreightProofRefs []string
	Works               []ServiceWorkInput
}

// Add appends a new visit to the order and derives the resulting order
// status. A visit can never be created already completed.
func (s *VisitService) Add(ctx context.Context, principal model.Principal, orderID uuid.UUID, input VisitInput) (*model.Visit, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, translateNotFound(err)
	}
	if !principal.OwnsOrder(order) {
		return nil, ErrPermissionDenied
	}

	if input.Completed {
		return nil, fmt.Errorf("%w: a visit cannot be created as completed", ErrValidation)
	}
	if err := validateVisitAmounts(input.DistanceKM, input.TollAmount, input.ReturnFreightAmount, input.Works); err != nil {
		return nil, err
	}

	visit := &model.Visit{
		OrderID:             order.ID,
		Seq:                 len(order.Visits) + 1,
		VisitDate:           input.VisitDate,
		DepartureStart:      input.DepartureStart,
		ArrivalAtClient:     input.ArrivalAtClient,
		ServiceStart:        input.ServiceStart,
		ServiceEnd:          input.ServiceEnd,
		DistanceKM:          input.DistanceKM,
		TollAmount:          input.TollAmount,
		ReturnFreightAmount: input.ReturnFreightAmount,
		WorkDescription:     input.WorkDescription,
		HelperName:          input.HelperName,
		HelperPhone:         input.HelperPhone,
		PendingNote:         normalizeNote(input.PendingNote),
		OdometerStartRef:    input.OdometerStartRef,
		OdometerEndRef:      input.OdometerEndRef,
		ClientSignatureRef:  input.ClientSignatureRef,
		TollProofRefs:       input.TollProofRefs,
		FreightProofRefs:    input.FreightProofRefs,
		Works:               buildWorks(input.Works),
	}

	var target model.OrderStatus
	switch {
	case visit.HasPendingNote():
		target = model.OrderStatusPending
	case order.Status == model.OrderStatusScheduled:
		target = model.OrderStatusInService
	}

	var orderFields map[string]interface{}
	var logEntry *model.OrderStatusLog
	if target != "" && target != order.Status {
		orderFields = map[string]interface{}{"status": target, "completed_on": nil}
		prev := order.Status
		logEntry = &model.OrderStatusLog{
			OrderID:   order.ID,
			OldStatus: &prev,
			NewStatus: target,
			Note:      "visit added",
			ChangedBy: &principal.UserID,
		}
	}

	if err := s.orderRepo.CreateVisit(ctx, visit, orderFields, logEntry); err != nil {
		return nil, err
	}
	return visit, nil
}

// Update applies a merge-patch to the visit and commits visit and derived
// order state as one unit. When the merged visit is completed it must pass
// finalization validation first; a failure leaves visit and order untouched.
func (s *VisitService) Update(ctx context.Context, principal model.Principal, orderID uuid.UUID, visitSeq int, patch VisitPatch) (*model.Visit, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, translateNotFound(err)
	}
	if !principal.OwnsOrder(order) {
		return nil, ErrPermissionDenied
	}

	stored := order.VisitBySeq(visitSeq)
	if stored == nil {
		return nil, fmt.Errorf("%w: visit", ErrNotFound)
	}

	merged := *stored
	applyPatch(&merged, patch)
	if err := validateVisitAmounts(merged.DistanceKM, merged.TollAmount, merged.ReturnFreightAmount, patch.Works); err != nil {
		return nil, err
	}

	var target model.OrderStatus
	orderFields := map[string]interface{}{}
	if merged.Completed {
		if err := ValidateFinalization(&merged); err != nil {
			return nil, err
		}
		target = model.OrderStatusFinalized
		orderFields["status"] = target
		orderFields["completed_on"] = today()
	} else {
		if merged.HasPendingNote() {
			target = model.OrderStatusPending
		} else {
			target = model.OrderStatusInService
		}
		orderFields["status"] = target
		orderFields["completed_on"] = nil
	}

	var logEntry *model.OrderStatusLog
	if target != order.Status {
		prev := order.Status
		logEntry = &model.OrderStatusLog{
			OrderID:   order.ID,
			OldStatus: &prev,
			NewStatus: target,
			Note:      fmt.Sprintf("visit %d updated", visitSeq),
			ChangedBy: &principal.UserID,
		}
	}

	replaceWorks := patch.Works != nil
	if replaceWorks {
		merged.Works = buildWorks(patch.Works)
	}

	if err := s.orderRepo.SaveVisitAndOrder(ctx, &merged, replaceWorks, orderFields, logEntry); err != nil {
		return nil, err
	}
	return &merged, nil
}

// ValidateFinalization checks that a visit carries every legally required
// proof artifact before it can be marked completed. It runs against the
// merged visit state, never against a patch alone.
func ValidateFinalization(v *model.Visit) error {
	if !refPresent(v.ClientSignatureRef) {
		return fmt.Errorf("%w: client signature is required to finalize a visit", ErrValidation)
	}
	if v.DistanceKM > 0 {
		if !refPresent(v.OdometerStartRef) || !refPresent(v.OdometerEndRef) {
			return fmt.Errorf("%w: odometer photos (start and end) are required when distance_km > 0", ErrValidation)
		}
	}
	if v.TollAmount > 0 && len(v.TollProofRefs) == 0 {
		return fmt.Errorf("%w: toll proof is required when toll_amount > 0", ErrValidation)
	}
	if v.ReturnFreightAmount > 0 && len(v.FreightProofRefs) == 0 {
		return fmt.Errorf("%w: freight proof is required when return_freight_amount > 0", ErrValidation)
	}
	return nil
}

func applyPatch(v *model.Visit, patch VisitPatch) {
	if patch.VisitDate != nil {
		v.VisitDate = *patch.VisitDate
	}
	if patch.DepartureStart != nil {
		v.DepartureStart = *patch.DepartureStart
	}
	if patch.ArrivalAtClient != nil {
		v.ArrivalAtClient = *patch.ArrivalAtClient
	}
	if patch.ServiceStart != nil {
		v.ServiceStart = *patch.ServiceStart
	}
	if patch.ServiceEnd != nil {
		v.ServiceEnd = *patch.ServiceEnd
	}
	if patch.DistanceKM != nil {
		v.DistanceKM = *patch.DistanceKM
	}
	if patch.TollAmount != nil {
		v.TollAmount = *patch.TollAmount
	}
	if patch.ReturnFreightAmount != nil {
		v.ReturnFreightAmount = *patch.ReturnFreightAmount
	}
	if patch.WorkDescription != nil {
		v.WorkDescription = *patch.WorkDescription
	}
	if patch.HelperName != nil {
		v.HelperName = *patch.HelperName
	}
	if patch.HelperPhone != nil {
		v.HelperPhone = *patch.HelperPhone
	}
	if patch.Completed != nil {
		v.Completed = *patch.Completed
	}
	if patch.PendingNote != nil {
		v.PendingNote = normalizeNote(patch.PendingNote)
	}
	if patch.OdometerStartRef != nil {
		v.OdometerStartRef = patch.OdometerStartRef
	}
	if patch.OdometerEndRef != nil {
		v.OdometerEndRef = patch.OdometerEndRef
	}
	if patch.ClientSignatureRef != nil {
		v.ClientSignatureRef = patch.ClientSignatureRef
	}
	if len(patch.AddTollProofRefs) > 0 {
		v.TollProofRefs = append(v.TollProofRefs, patch.AddTollProofRefs...)
	}
	if len(patch.AddFreightProofRefs) > 0 {
		v.FreightProofRefs = append(v.FreightProofRefs, patch.AddFreightProofRefs...)
	}
}

func validateVisitAmounts(distanceKM int, toll, freight float64, works []ServiceWorkInput) error {
	if distanceKM < 0 {
		return fmt.Errorf("%w: distance_km must not be negative", ErrValidation)
	}
	if toll < 0 {
		return fmt.Errorf("%w: toll_amount must not be negative", ErrValidation)
	}
	if freight < 0 {
		return fmt.Errorf("%w: return_freight_amount must not be negative", ErrValidation)
	}
	for _, work := range works {
		if strings.TrimSpace(work.SerialNumber) == "" {
			return fmt.Errorf("%w: serial_number is required for each work item", ErrValidation)
		}
		for _, mat := range work.Materials {
			if mat.Quantity < 0 {
				return fmt.Errorf("%w: material quantity must not be negative", ErrValidation)
			}
			if mat.UnitValue < 0 {
				return fmt.Errorf("%w: material unit_value must not be negative", ErrValidation)
			}
		}
	}
	return nil
}

func buildWorks(inputs []ServiceWorkInput) []model.ServiceWork {
	works := make([]model.ServiceWork, 0, len(inputs))
	for _, in := range inputs {
		work := model.ServiceWork{
			SerialNumber: in.SerialNumber,
			DefectTags:   in.DefectTags,
			DefectNotes:  in.DefectNotes,
		}
		for _, mat := range in.Materials {
			work.Materials = append(work.Materials, model.Material{
				Name:      mat.Name,
				Quantity:  mat.Quantity,
				UnitValue: mat.UnitValue,
			})
		}
		works = append(works, work)
	}
	return works
}

func normalizeNote(note *string) *string {
	if note == nil || strings.TrimSpace(*note) == "" {
		return nil
	}
	return note
}

func refPresent(ref *string) bool {
	return ref != nil && strings.TrimSpace(*ref) != ""
}
