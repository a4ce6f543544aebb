package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	domain "github.com/trimsync/barbershop-api/internal/domain/appointment"
	"github.com/trimsync/barbershop-api/internal/dto"
	"github.com/trimsync/barbershop-api/internal/engine"
	"github.com/trimsync/barbershop-api/internal/httperr"
	"github.com/trimsync/barbershop-api/internal/httpresp"
	"github.com/trimsync/barbershop-api/internal/middleware"
	"github.com/trimsync/barbershop-api/internal/models"
	"github.com/trimsync/barbershop-api/internal/timezone"
	"github.com/trimsync/barbershop-api/internal/validators"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	db       *gorm.DB
	validate *validators.Request

	createUC       *engine.CreateAppointment
	confirmUC      *engine.ConfirmAppointment
	cancelUC       *engine.CancelAppointment
	completeUC     *engine.CompleteAppointment
	rescheduleUC   *engine.RescheduleAppointment
	detailsUC      *engine.GetAppointmentDetails
	scheduleUC     *engine.GetBarberSchedule
	historyUC      *engine.GetCustomerHistory
	availabilityUC *engine.GetAvailability
}

func NewAppointmentHandler(
	db *gorm.DB,
	validate *validators.Request,
	createUC *engine.CreateAppointment,
	confirmUC *engine.ConfirmAppointment,
	cancelUC *engine.CancelAppointment,
	completeUC *engine.CompleteAppointment,
	rescheduleUC *engine.RescheduleAppointment,
	detailsUC *engine.GetAppointmentDetails,
	scheduleUC *engine.GetBarberSchedule,
	historyUC *engine.GetCustomerHistory,
	availabilityUC *engine.GetAvailability,
) *AppointmentHandler {
	return &AppointmentHandler{
		db:             db,
		validate:       validate,
		createUC:       createUC,
		confirmUC:      confirmUC,
		cancelUC:       cancelUC,
		completeUC:     completeUC,
		rescheduleUC:   rescheduleUC,
		detailsUC:      detailsUC,
		scheduleUC:     scheduleUC,
		historyUC:      historyUC,
		availabilityUC: availabilityUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	BarberID    string   `json:"barber_id" binding:"required" validate:"required,uuid"`
	CustomerID  string   `json:"customer_id" binding:"required" validate:"required,uuid"`
	ServiceIDs  []string `json:"service_ids" binding:"required" validate:"required,min=1,dive,uuid"`
	StartTime   string   `json:"start_time" binding:"required" validate:"required"`
	DurationMin int      `json:"duration_min" binding:"required" validate:"required,gt=0,lte=480"`
	Notes       string   `json:"notes" validate:"max=255"`
}

type RescheduleAppointmentRequest struct {
	StartTime   string `json:"start_time" binding:"required" validate:"required"`
	DurationMin int    `json:"duration_min" binding:"required" validate:"required,gt=0,lte=480"`
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	scope := middleware.MustScope(c)

	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		httperr.From(c, err)
		return
	}

	start, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		httperr.BadRequest(c, "invalid_start_time", "start_time must be RFC3339")
		return
	}

	barberID, _ := uuid.Parse(req.BarberID)
	customerID, _ := uuid.Parse(req.CustomerID)
	serviceIDs := make([]uuid.UUID, 0, len(req.ServiceIDs))
	for _, raw := range req.ServiceIDs {
		id, _ := uuid.Parse(raw)
		serviceIDs = append(serviceIDs, id)
	}

	ap, err := h.createUC.Execute(c.Request.Context(), scope, engine.CreateInput{
		BarberID:    barberID,
		CustomerID:  customerID,
		ServiceIDs:  serviceIDs,
		StartTime:   start,
		DurationMin: req.DurationMin,
		Notes:       req.Notes,
	})
	if err != nil {
		httperr.From(c, err)
		return
	}

	httpresp.Created(c, dto.FromModel(ap))
}

// ======================================================
// STATE TRANSITIONS
// ======================================================

func (h *AppointmentHandler) Confirm(c *gin.Context) {
	h.transition(c, func(c *gin.Context, id uuid.UUID) (*models.Appointment, error) {
		return h.confirmUC.Execute(c.Request.Context(), middleware.MustScope(c), id)
	})
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	h.transition(c, func(c *gin.Context, id uuid.UUID) (*models.Appointment, error) {
		return h.cancelUC.Execute(c.Request.Context(), middleware.MustScope(c), id)
	})
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	h.transition(c, func(c *gin.Context, id uuid.UUID) (*models.Appointment, error) {
		return h.completeUC.Execute(c.Request.Context(), middleware.MustScope(c), id)
	})
}

func (h *AppointmentHandler) transition(
	c *gin.Context,
	exec func(c *gin.Context, id uuid.UUID) (*models.Appointment, error),
) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_appointment_id", "appointment id must be a uuid")
		return
	}

	ap, err := exec(c, id)
	if err != nil {
		httperr.From(c, err)
		return
	}

	httpresp.OK(c, dto.FromModel(ap))
}

// ======================================================
// RESCHEDULE
// ======================================================

func (h *AppointmentHandler) Reschedule(c *gin.Context) {
	scope := middleware.MustScope(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_appointment_id", "appointment id must be a uuid")
		return
	}

	var req RescheduleAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		httperr.From(c, err)
		return
	}

	start, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		httperr.BadRequest(c, "invalid_start_time", "start_time must be RFC3339")
		return
	}

	ap, err := h.rescheduleUC.Execute(c.Request.Context(), scope, id, engine.RescheduleInput{
		StartTime:   start,
		DurationMin: req.DurationMin,
	})
	if err != nil {
		httperr.From(c, err)
		return
	}

	httpresp.OK(c, dto.FromModel(ap))
}

// ======================================================
// READS
// ======================================================

func (h *AppointmentHandler) Get(c *gin.Context) {
	scope := middleware.MustScope(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_appointment_id", "appointment id must be a uuid")
		return
	}

	ap, err := h.detailsUC.Execute(c.Request.Context(), scope, id)
	if err != nil {
		httperr.From(c, err)
		return
	}

	httpresp.OK(c, dto.FromModel(ap))
}

func (h *AppointmentHandler) BarberSchedule(c *gin.Context) {
	scope := middleware.MustScope(c)

	barberID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_barber_id", "barber id must be a uuid")
		return
	}

	shop, ok := h.loadShop(c, scope.TenantID)
	if !ok {
		return
	}

	from, err := timezone.ParseDate(shop.Timezone, c.Query("from"))
	if err != nil {
		httperr.BadRequest(c, "invalid_from", "from must be YYYY-MM-DD")
		return
	}

	to := from.AddDate(0, 0, 1)
	if raw := c.Query("to"); raw != "" {
		parsed, err := timezone.ParseDate(shop.Timezone, raw)
		if err != nil {
			httperr.BadRequest(c, "invalid_to", "to must be YYYY-MM-DD")
			return
		}
		// `to` is the last requested day, the range excludes the next midnight
		to = parsed.AddDate(0, 0, 1)
	}

	aps, err := h.scheduleUC.Execute(c.Request.Context(), scope, barberID, from, to)
	if err != nil {
		httperr.From(c, err)
		return
	}

	httpresp.List(c, dto.FromModels(aps))
}

func (h *AppointmentHandler) CustomerHistory(c *gin.Context) {
	scope := middleware.MustScope(c)

	customerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_customer_id", "customer id must be a uuid")
		return
	}

	var statusFilter *domain.Status
	if raw := c.Query("status"); raw != "" {
		st := domain.Status(raw)
		if !st.Valid() {
			httperr.BadRequest(c, "invalid_status", "unknown status filter")
			return
		}
		statusFilter = &st
	}

	aps, err := h.historyUC.Execute(c.Request.Context(), scope, customerID, statusFilter)
	if err != nil {
		httperr.From(c, err)
		return
	}

	httpresp.List(c, dto.FromModels(aps))
}

func (h *AppointmentHandler) Availability(c *gin.Context) {
	scope := middleware.MustScope(c)

	barberID, err := uuid.Parse(c.Query("barber_id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_barber_id", "barber_id must be a uuid")
		return
	}
	serviceID, err := uuid.Parse(c.Query("service_id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_service_id", "service_id must be a uuid")
		return
	}

	shop, ok := h.loadShop(c, scope.TenantID)
	if !ok {
		return
	}

	date, err := timezone.ParseDate(shop.Timezone, c.Query("date"))
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "date must be YYYY-MM-DD")
		return
	}

	slots, err := h.availabilityUC.Execute(c.Request.Context(), scope, barberID, serviceID, date)
	if err != nil {
		httperr.From(c, err)
		return
	}

	httpresp.List(c, slots)
}

func (h *AppointmentHandler) loadShop(c *gin.Context, tenantID uuid.UUID) (*models.Barbershop, bool) {
	var shop models.Barbershop
	if err := h.db.Where("id = ?", tenantID).First(&shop).Error; err != nil {
		httperr.Internal(c, "barbershop_not_found", "could not load barbershop")
		return nil, false
	}
	return &shop, true
}
