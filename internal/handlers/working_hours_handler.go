package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/trimsync/barbershop-api/internal/httperr"
	"github.com/trimsync/barbershop-api/internal/httpresp"
	"github.com/trimsync/barbershop-api/internal/middleware"
	"github.com/trimsync/barbershop-api/internal/models"
)

type WorkingHoursHandler struct {
	db *gorm.DB
}

func NewWorkingHoursHandler(db *gorm.DB) *WorkingHoursHandler {
	return &WorkingHoursHandler{db: db}
}

type WorkingHoursEntry struct {
	Weekday    int    `json:"weekday" binding:"min=0,max=6"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	LunchStart string `json:"lunch_start"`
	LunchEnd   string `json:"lunch_end"`
	Active     bool   `json:"active"`
}

// Get returns the caller's own weekly hours, or another barber's when
// barber_id is given.
func (h *WorkingHoursHandler) Get(c *gin.Context) {
	scope := middleware.MustScope(c)

	barberID := scope.CallerID
	if raw := c.Query("barber_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			httperr.BadRequest(c, "invalid_barber_id", "barber_id must be a uuid")
			return
		}
		barberID = id
	}

	var hours []models.WorkingHours
	h.db.
		Where("barbershop_id = ? AND barber_id = ?", scope.TenantID, barberID).
		Order("weekday ASC").
		Find(&hours)

	httpresp.List(c, hours)
}

// Update replaces the caller's full week in one shot.
func (h *WorkingHoursHandler) Update(c *gin.Context) {
	scope := middleware.MustScope(c)

	var entries []WorkingHoursEntry
	if err := c.ShouldBindJSON(&entries); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("barbershop_id = ? AND barber_id = ?", scope.TenantID, scope.CallerID).
			Delete(&models.WorkingHours{}).Error; err != nil {
			return err
		}

		for _, e := range entries {
			wh := models.WorkingHours{
				BarbershopID: scope.TenantID,
				BarberID:     scope.CallerID,
				Weekday:      e.Weekday,
				StartTime:    e.StartTime,
				EndTime:      e.EndTime,
				LunchStart:   e.LunchStart,
				LunchEnd:     e.LunchEnd,
				Active:       e.Active,
			}
			if err := tx.Create(&wh).Error; err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		httperr.Internal(c, "failed_to_update_working_hours", "could not update working hours")
		return
	}

	var hours []models.WorkingHours
	h.db.
		Where("barbershop_id = ? AND barber_id = ?", scope.TenantID, scope.CallerID).
		Order("weekday ASC").
		Find(&hours)

	httpresp.List(c, hours)
}
