package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/trimsync/barbershop-api/internal/catalog"
	"github.com/trimsync/barbershop-api/internal/httperr"
	"github.com/trimsync/barbershop-api/internal/httpresp"
	"github.com/trimsync/barbershop-api/internal/middleware"
	"github.com/trimsync/barbershop-api/internal/models"
	"github.com/trimsync/barbershop-api/internal/tenant"
)

// CatalogHandler manages the tenant's barbers and services. Writes invalidate
// the catalog cache the scheduler reads through.
type CatalogHandler struct {
	db    *gorm.DB
	store *catalog.Store
}

func NewCatalogHandler(db *gorm.DB, store *catalog.Store) *CatalogHandler {
	return &CatalogHandler{db: db, store: store}
}

// ======================================================
// BARBERS
// ======================================================

type CreateBarberRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Phone    string `json:"phone"`
}

type UpdateBarberRequest struct {
	Name     *string `json:"name"`
	Phone    *string `json:"phone"`
	IsActive *bool   `json:"is_active"`
}

func (h *CatalogHandler) ListBarbers(c *gin.Context) {
	scope := middleware.MustScope(c)

	var barbers []models.Barber
	h.db.
		Where("barbershop_id = ?", scope.TenantID).
		Order("name ASC").
		Find(&barbers)

	httpresp.List(c, barbers)
}

func (h *CatalogHandler) CreateBarber(c *gin.Context) {
	scope := middleware.MustScope(c)
	if !scope.IsOwner() {
		httperr.Write(c, http.StatusForbidden, "owner_only", "only the owner can add barbers")
		return
	}

	var req CreateBarberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "failed_to_hash_password", "could not create barber")
		return
	}

	barber := models.Barber{
		BarbershopID: scope.TenantID,
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Phone:        req.Phone,
		Role:         tenant.RoleBarber,
		IsActive:     true,
	}

	if err := h.db.Create(&barber).Error; err != nil {
		httperr.Internal(c, "failed_to_create_barber", "could not create barber")
		return
	}

	httpresp.Created(c, barber)
}

func (h *CatalogHandler) UpdateBarber(c *gin.Context) {
	scope := middleware.MustScope(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_barber_id", "barber id must be a uuid")
		return
	}

	var barber models.Barber
	if err := h.db.
		Where("id = ? AND barbershop_id = ?", id, scope.TenantID).
		First(&barber).Error; err != nil {
		httperr.NotFound(c, "barber_not_found", "barber not found")
		return
	}

	var req UpdateBarberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if req.Name != nil {
		barber.Name = *req.Name
	}
	if req.Phone != nil {
		barber.Phone = *req.Phone
	}
	if req.IsActive != nil {
		barber.IsActive = *req.IsActive
	}

	if err := h.db.Save(&barber).Error; err != nil {
		httperr.Internal(c, "failed_to_update_barber", "could not update barber")
		return
	}

	h.store.InvalidateBarber(c.Request.Context(), barber.ID)

	httpresp.OK(c, barber)
}

// ======================================================
// SERVICES
// ======================================================

type CreateServiceRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	DurationMin int     `json:"duration_min" binding:"required,gt=0"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
}

type UpdateServiceRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	DurationMin *int     `json:"duration_min"`
	Price       *float64 `json:"price"`
	Category    *string  `json:"category"`
	IsActive    *bool    `json:"is_active"`
}

func (h *CatalogHandler) ListServices(c *gin.Context) {
	scope := middleware.MustScope(c)

	var services []models.Service
	h.db.
		Where("barbershop_id = ?", scope.TenantID).
		Order("name ASC").
		Find(&services)

	httpresp.List(c, services)
}

func (h *CatalogHandler) CreateService(c *gin.Context) {
	scope := middleware.MustScope(c)
	if !scope.IsOwner() {
		httperr.Write(c, http.StatusForbidden, "owner_only", "only the owner can add services")
		return
	}

	var req CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	svc := models.Service{
		BarbershopID: scope.TenantID,
		Name:         req.Name,
		Description:  req.Description,
		DurationMin:  req.DurationMin,
		Price:        req.Price,
		Category:     req.Category,
		IsActive:     true,
	}

	if err := h.db.Create(&svc).Error; err != nil {
		httperr.Internal(c, "failed_to_create_service", "could not create service")
		return
	}

	httpresp.Created(c, svc)
}

func (h *CatalogHandler) UpdateService(c *gin.Context) {
	scope := middleware.MustScope(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_service_id", "service id must be a uuid")
		return
	}

	var svc models.Service
	if err := h.db.
		Where("id = ? AND barbershop_id = ?", id, scope.TenantID).
		First(&svc).Error; err != nil {
		httperr.NotFound(c, "service_not_found", "service not found")
		return
	}

	var req UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}
	if req.DurationMin != nil && *req.DurationMin <= 0 {
		httperr.BadRequest(c, "invalid_duration", "duration must be positive")
		return
	}

	if req.Name != nil {
		svc.Name = *req.Name
	}
	if req.Description != nil {
		svc.Description = *req.Description
	}
	if req.DurationMin != nil {
		svc.DurationMin = *req.DurationMin
	}
	if req.Price != nil {
		svc.Price = *req.Price
	}
	if req.Category != nil {
		svc.Category = *req.Category
	}
	if req.IsActive != nil {
		svc.IsActive = *req.IsActive
	}

	if err := h.db.Save(&svc).Error; err != nil {
		httperr.Internal(c, "failed_to_update_service", "could not update service")
		return
	}

	h.store.InvalidateService(c.Request.Context(), svc.ID)

	httpresp.OK(c, svc)
}
