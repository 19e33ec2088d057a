package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"workorder-service/internal/http/middleware"
	"workorder-service/internal/model"
	"workorder-service/internal/service"
)

type Handler struct {
	authService   *service.AuthService
	orderService  *service.OrderService
	visitService  *service.VisitService
	techService   *service.TechnicianService
	clientService *service.ClientService
	log           zerolog.Logger
}

func NewHandler(
	authService *service.AuthService,
	orderService *service.OrderService,
	visitService *service.VisitService,
	techService *service.TechnicianService,
	clientService *service.ClientService,
	log zerolog.Logger,
) *Handler {
	return &Handler{
		authService:   authService,
		orderService:  orderService,
		visitService:  visitService,
		techService:   techService,
		clientService: clientService,
		log:           log,
	}
}

func (h *Handler) login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	token, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(gin.H{"access_token": token, "token_type": "bearer"}))
}

func (h *Handler) listOrders(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}

	orders, err := h.orderService.List(c.Request.Context(), principal)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(gin.H{"items": orders}))
}

func (h *Handler) getOrder(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}

	id, err := uuid.Parse(strings.TrimSpace(c.Param("id")))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid order id"))
		return
	}

	order, err := h.orderService.Get(c.Request.Context(), principal, id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(order))
}

func (h *Handler) createOrder(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}

	var req struct {
		ClientID     string `json:"client_id" binding:"required"`
		TechnicianID string `json:"technician_id"`
		Description  string `json:"description"`
		Warranty     *bool  `json:"warranty"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	clientID, err := uuid.Parse(strings.TrimSpace(req.ClientID))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid client_id"))
		return
	}

	input := service.CreateOrderInput{
		ClientID:    clientID,
		Description: req.Description,
		Warranty:    true,
	}
	if req.Warranty != nil {
		input.Warranty = *req.Warranty
	}
	if strings.TrimSpace(req.TechnicianID) != "" {
		techID, err := uuid.Parse(strings.TrimSpace(req.TechnicianID))
		if err != nil {
			c.JSON(http.StatusBadRequest, errorResponse("invalid technician_id"))
			return
		}
		input.TechnicianID = &techID
	}

	order, err := h.orderService.Create(c.Request.Context(), principal, input)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, successResponse(order))
}

func (h *Handler) assignTechnician(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}

	orderID, err := uuid.Parse(strings.TrimSpace(c.Param("id")))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid order id"))
		return
	}

	var req struct {
		TechnicianID string `json:"technician_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	techID, err := uuid.Parse(strings.TrimSpace(req.TechnicianID))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid technician_id"))
		return
	}

	order, err := h.orderService.AssignTechnician(c.Request.Context(), principal, orderID, techID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(order))
}

func (h *Handler) startService(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}

	orderID, err := uuid.Parse(strings.TrimSpace(c.Param("id")))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid order id"))
		return
	}

	order, err := h.orderService.StartService(c.Request.Context(), principal, orderID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(order))
}

func (h *Handler) setOrderStatus(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}

	orderID, err := uuid.Parse(strings.TrimSpace(c.Param("id")))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid order id"))
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	status := model.OrderStatus(strings.ToUpper(strings.TrimSpace(req.Status)))

	order, err := h.orderService.SetStatus(c.Request.Context(), principal, orderID, status)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(order))
}

func (h *Handler) cancelOrder(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}

	orderID, err := uuid.Parse(strings.TrimSpace(c.Param("id")))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid order id"))
		return
	}

	if err := h.orderService.Cancel(c.Request.Context(), principal, orderID); err != nil {
		h.handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) getCostBreakdown(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}

	orderID, err := uuid.Parse(strings.TrimSpace(c.Param("id")))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid order id"))
		return
	}

	breakdown, err := h.orderService.CostBreakdown(c.Request.Context(), principal, orderID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(breakdown))
}

type workPayload struct {
	SerialNumber string            `json:"serial_number" binding:"required"`
	DefectTags   []string          `json:"defect_tags"`
	DefectNotes  string            `json:"defect_notes"`
	Materials    []materialPayload `json:"materials"`
}

type materialPayload struct {
	Name      string  `json:"name" binding:"required"`
	Quantity  int     `json:"quantity"`
	UnitValue float64 `json:"unit_value"`
}

func convertWorkPayloads(payloads []workPayload) []service.ServiceWorkInput {
	works := make([]service.ServiceWorkInput, 0, len(payloads))
	for _, p := range payloads {
		work := service.ServiceWorkInput{
			SerialNumber: p.SerialNumber,
			DefectTags:   p.DefectTags,
			DefectNotes:  p.DefectNotes,
		}
		for _, m := range p.Materials {
			work.Materials = append(work.Materials, service.MaterialInput{
				Name:      m.Name,
				Quantity:  m.Quantity,
				UnitValue: m.UnitValue,
			})
		}
		works = append(works, work)
	}
	return works
}

func (h *Handler) addVisit(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}

	orderID, err := uuid.Parse(strings.TrimSpace(c.Param("id")))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid order id"))
		return
	}

	var req struct {
		VisitDate           string        `json:"visit_date" binding:"required"`
		DepartureStart      string        `json:"departure_start"`
		ArrivalAtClient     string        `json:"arrival_at_client"`
		ServiceStart        string        `json:"service_start"`
		ServiceEnd          string        `json:"service_end"`
		DistanceKM          int           `json:"distance_km"`
		TollAmount          float64       `json:"toll_amount"`
		ReturnFreightAmount float64       `json:"return_freight_amount"`
		WorkDescription     string        `json:"work_description"`
		HelperName          string        `json:"helper_name"`
		HelperPhone         string        `json:"helper_phone"`
		Completed           bool          `json:"completed"`
		PendingNote         *string       `json:"pending_note"`
		OdometerStartRef    *string       `json:"odometer_start_ref"`
		OdometerEndRef      *string       `json:"odometer_end_ref"`
		ClientSignatureRef  *string       `json:"client_signature_ref"`
		TollProofRefs       []string      `json:"toll_proof_refs"`
		FreightProofRefs    []string      `json:"freight_proof_refs"`
		Works               []workPayload `json:"works"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	visitDate, err := time.Parse("2006-01-02", req.VisitDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid visit_date"))
		return
	}

	input := service.VisitInput{
		VisitDate:           visitDate,
		DepartureStart:      req.DepartureStart,
		ArrivalAtClient:     req.ArrivalAtClient,
		ServiceStart:        req.ServiceStart,
		ServiceEnd:          req.ServiceEnd,
		DistanceKM:          req.DistanceKM,
		TollAmount:          req.TollAmount,
		ReturnFreightAmount: req.ReturnFreightAmount,
		WorkDescription:     req.WorkDescription,
		HelperName:          req.HelperName,
		HelperPhone:         req.HelperPhone,
		Completed:           req.Completed,
		PendingNote:         req.PendingNote,
		OdometerStartRef:    req.OdometerStartRef,
		OdometerEndRef:      req.OdometerEndRef,
		ClientSignatureRef:  req.ClientSignatureRef,
		TollProofRefs:       req.TollProofRefs,
		FreightProofRefs:    req.FreightProofRefs,
		Works:               convertWorkPayloads(req.Works),
	}

	visit, err := h.visitService.Add(c.Request.Context(), principal, orderID, input)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, successResponse(visit))
}

func (h *Handler) updateVisit(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}

	orderID, err := uuid.Parse(strings.TrimSpace(c.Param("id")))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid order id"))
		return
	}

	visitSeq, err := strconv.Atoi(strings.TrimSpace(c.Param("seq")))
	if err != nil || visitSeq < 1 {
		c.JSON(http.StatusBadRequest, errorResponse("invalid visit id"))
		return
	}

	var req struct {
		VisitDate           *string       `json:"visit_date"`
		DepartureStart      *string       `json:"departure_start"`
		ArrivalAtClient     *string       `json:"arrival_at_client"`
		ServiceStart        *string       `json:"service_start"`
		ServiceEnd          *string       `json:"service_end"`
		DistanceKM          *int          `json:"distance_km"`
		TollAmount          *float64      `json:"toll_amount"`
		ReturnFreightAmount *float64      `json:"return_freight_amount"`
		WorkDescription     *string       `json:"work_description"`
		HelperName          *string       `json:"helper_name"`
		HelperPhone         *string       `json:"helper_phone"`
		Completed           *bool         `json:"completed"`
		PendingNote         *string       `json:"pending_note"`
		OdometerStartRef    *string       `json:"odometer_start_ref"`
		OdometerEndRef      *string       `json:"odometer_end_ref"`
		ClientSignatureRef  *string       `json:"client_signature_ref"`
		AddTollProofRefs    []string      `json:"add_toll_proof_refs"`
		AddFreightProofRefs []string      `json:"add_freight_proof_refs"`
		Works               []workPayload `json:"works"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	patch := service.VisitPatch{
		DepartureStart:      req.DepartureStart,
		ArrivalAtClient:     req.ArrivalAtClient,
		ServiceStart:        req.ServiceStart,
		ServiceEnd:          req.ServiceEnd,
		DistanceKM:          req.DistanceKM,
		TollAmount:          req.TollAmount,
		ReturnFreightAmount: req.ReturnFreightAmount,
		WorkDescription:     req.WorkDescription,
		HelperName:          req.HelperName,
		HelperPhone:         req.HelperPhone,
		Completed:           req.Completed,
		PendingNote:         req.PendingNote,
		OdometerStartRef:    req.OdometerStartRef,
		OdometerEndRef:      req.OdometerEndRef,
		ClientSignatureRef:  req.ClientSignatureRef,
		AddTollProofRefs:    req.AddTollProofRefs,
		AddFreightProofRefs: req.AddFreightProofRefs,
	}
	if req.VisitDate != nil {
		visitDate, err := time.Parse("2006-01-02", *req.VisitDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, errorResponse("invalid visit_date"))
			return
		}
		patch.VisitDate = &visitDate
	}
	if req.Works != nil {
		patch.Works = convertWorkPayloads(req.Works)
	}

	visit, err := h.visitService.Update(c.Request.Context(), principal, orderID, visitSeq, patch)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(visit))
}

func (h *Handler) createTechnician(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}

	var req struct {
		Name              string             `json:"name" binding:"required"`
		CNPJ              string             `json:"cnpj"`
		CPF               string             `json:"cpf"`
		StateRegistration string             `json:"state_registration"`
		Email             string             `json:"email" binding:"required"`
		Phone             string             `json:"phone"`
		Password          string             `json:"password" binding:"required"`
		Role              string             `json:"role"`
		BankDetails       *model.BankDetails `json:"bank_details"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	input := service.CreateTechnicianInput{
		Name:              req.Name,
		CNPJ:              req.CNPJ,
		CPF:               req.CPF,
		StateRegistration: req.StateRegistration,
		Email:             req.Email,
		Phone:             req.Phone,
		Password:          req.Password,
		Role:              model.UserRole(strings.ToUpper(strings.TrimSpace(req.Role))),
		BankDetails:       req.BankDetails,
	}

	tech, err := h.techService.Create(c.Request.Context(), principal, input)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, successResponse(tech))
}

func (h *Handler) listTechnicians(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}

	isActive, err := parseBoolQuery(c, "is_active")
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	technicians, err := h.techService.List(c.Request.Context(), principal, isActive)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(gin.H{"items": technicians}))
}

func (h *Handler) getTechnician(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}

	id, err := uuid.Parse(strings.TrimSpace(c.Param("id")))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid technician id"))
		return
	}

	tech, err := h.techService.Get(c.Request.Context(), principal, id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(tech))
}

func (h *Handler) updateTechnician(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}

	id, err := uuid.Parse(strings.TrimSpace(c.Param("id")))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid technician id"))
		return
	}

	var req struct {
		Name              *string            `json:"name"`
		CNPJ              *string            `json:"cnpj"`
		CPF               *string            `json:"cpf"`
		StateRegistration *string            `json:"state_registration"`
		Email             *string            `json:"email"`
		Phone             *string            `json:"phone"`
		Password          *string            `json:"password"`
		Role              *string            `json:"role"`
		IsActive          *bool              `json:"is_active"`
		BankDetails       *model.BankDetails `json:"bank_details"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	input := service.UpdateTechnicianInput{
		Name:              req.Name,
		CNPJ:              req.CNPJ,
		CPF:               req.CPF,
		StateRegistration: req.StateRegistration,
		Email:             req.Email,
		Phone:             req.Phone,
		Password:          req.Password,
		IsActive:          req.IsActive,
		BankDetails:       req.BankDetails,
	}
	if req.Role != nil {
		role := model.UserRole(strings.ToUpper(strings.TrimSpace(*req.Role)))
		input.Role = &role
	}

	tech, err := h.techService.Update(c.Request.Context(), principal, id, input)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(tech))
}

func (h *Handler) deactivateTechnician(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}

	id, err := uuid.Parse(strings.TrimSpace(c.Param("id")))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid technician id"))
		return
	}

	if err := h.techService.Deactivate(c.Request.Context(), principal, id); err != nil {
		h.handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) createClient(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}

	var req struct {
		CorporateName string `json:"corporate_name" binding:"required"`
		Code          *int   `json:"code"`
		ContactName   string `json:"contact_name"`
		ContactPhone  string `json:"contact_phone"`
		Phone         string `json:"phone"`
		Address       string `json:"address"`
		Number        string `json:"number"`
		District      string `json:"district"`
		City          string `json:"city"`
		State         string `json:"state" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	client, err := h.clientService.Create(c.Request.Context(), principal, service.CreateClientInput{
		CorporateName: req.CorporateName,
		Code:          req.Code,
		ContactName:   req.ContactName,
		ContactPhone:  req.ContactPhone,
		Phone:         req.Phone,
		Address:       req.Address,
		Number:        req.Number,
		District:      req.District,
		City:          req.City,
		State:         req.State,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, successResponse(client))
}

func (h *Handler) listClients(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}

	isActive, err := parseBoolQuery(c, "is_active")
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	clients, err := h.clientService.List(c.Request.Context(), principal, isActive)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(gin.H{"items": clients}))
}

func (h *Handler) getClient(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}

	id, err := uuid.Parse(strings.TrimSpace(c.Param("id")))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid client id"))
		return
	}

	client, err := h.clientService.Get(c.Request.Context(), principal, id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(client))
}

func (h *Handler) updateClient(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}

	id, err := uuid.Parse(strings.TrimSpace(c.Param("id")))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid client id"))
		return
	}

	var req struct {
		CorporateName *string `json:"corporate_name"`
		Code          *int    `json:"code"`
		ContactName   *string `json:"contact_name"`
		ContactPhone  *string `json:"contact_phone"`
		Phone         *string `json:"phone"`
		Address       *string `json:"address"`
		Number        *string `json:"number"`
		District      *string `json:"district"`
		City          *string `json:"city"`
		State         *string `json:"state"`
		IsActive      *bool   `json:"is_active"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	client, err := h.clientService.Update(c.Request.Context(), principal, id, service.UpdateClientInput{
		CorporateName: req.CorporateName,
		Code:          req.Code,
		ContactName:   req.ContactName,
		ContactPhone:  req.ContactPhone,
		Phone:         req.Phone,
		Address:       req.Address,
		Number:        req.Number,
		District:      req.District,
		City:          req.City,
		State:         req.State,
		IsActive:      req.IsActive,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(client))
}

func (h *Handler) deactivateClient(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}

	id, err := uuid.Parse(strings.TrimSpace(c.Param("id")))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid client id"))
		return
	}

	if err := h.clientService.Deactivate(c.Request.Context(), principal, id); err != nil {
		h.handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, errorResponse(err.Error()))
	case errors.Is(err, service.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, errorResponse(err.Error()))
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, errorResponse(err.Error()))
	case errors.Is(err, service.ErrValidation):
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
	case errors.Is(err, service.ErrInactiveReference):
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
	case errors.Is(err, service.ErrInvalidStatus):
		c.JSON(http.StatusConflict, errorResponse(err.Error()))
	default:
		h.log.Error().Err(err).Msg("handler error")
		c.JSON(http.StatusInternalServerError, errorResponse("internal error"))
	}
}

func parseBoolQuery(c *gin.Context, name string) (*bool, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, err
	}
	return &value, nil
}

type responseEnvelope struct {
	Data interface{} `json:"data"`
}

func successResponse(data interface{}) responseEnvelope {
	return responseEnvelope{Data: data}
}

func errorResponse(msg string) gin.H {
	return gin.H{"error": msg}
}
