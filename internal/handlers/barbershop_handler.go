package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/trimsync/barbershop-api/internal/httperr"
	"github.com/trimsync/barbershop-api/internal/httpresp"
	"github.com/trimsync/barbershop-api/internal/middleware"
	"github.com/trimsync/barbershop-api/internal/models"
	"github.com/trimsync/barbershop-api/internal/timezone"
)

type BarbershopHandler struct {
	db *gorm.DB
}

func NewBarbershopHandler(db *gorm.DB) *BarbershopHandler {
	return &BarbershopHandler{db: db}
}

type UpdateBarbershopRequest struct {
	Name              *string `json:"name"`
	Phone             *string `json:"phone"`
	Address           *string `json:"address"`
	Timezone          *string `json:"timezone"`
	MinAdvanceMinutes *int    `json:"min_advance_minutes"`
}

func (h *BarbershopHandler) Get(c *gin.Context) {
	scope := middleware.MustScope(c)

	var shop models.Barbershop
	if err := h.db.Where("id = ?", scope.TenantID).First(&shop).Error; err != nil {
		httperr.NotFound(c, "barbershop_not_found", "barbershop not found")
		return
	}

	httpresp.OK(c, shop)
}

func (h *BarbershopHandler) Update(c *gin.Context) {
	scope := middleware.MustScope(c)

	var shop models.Barbershop
	if err := h.db.Where("id = ?", scope.TenantID).First(&shop).Error; err != nil {
		httperr.NotFound(c, "barbershop_not_found", "barbershop not found")
		return
	}

	var req UpdateBarbershopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if req.Name != nil {
		shop.Name = *req.Name
	}
	if req.Phone != nil {
		shop.Phone = *req.Phone
	}
	if req.Address != nil {
		shop.Address = *req.Address
	}
	if req.Timezone != nil {
		if !timezone.IsValid(*req.Timezone) {
			httperr.BadRequest(c, "invalid_timezone", "unknown IANA timezone")
			return
		}
		shop.Timezone = *req.Timezone
	}
	if req.MinAdvanceMinutes != nil {
		if *req.MinAdvanceMinutes < 0 {
			httperr.BadRequest(c, "invalid_min_advance", "min_advance_minutes must be >= 0")
			return
		}
		shop.MinAdvanceMinutes = *req.MinAdvanceMinutes
	}

	if err := h.db.Save(&shop).Error; err != nil {
		httperr.Internal(c, "failed_to_update_barbershop", "could not update barbershop")
		return
	}

	httpresp.OK(c, shop)
}
