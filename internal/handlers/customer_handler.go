package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/trimsync/barbershop-api/internal/httperr"
	"github.com/trimsync/barbershop-api/internal/httpresp"
	"github.com/trimsync/barbershop-api/internal/middleware"
	"github.com/trimsync/barbershop-api/internal/models"
)

type CustomerHandler struct {
	db *gorm.DB
}

func NewCustomerHandler(db *gorm.DB) *CustomerHandler {
	return &CustomerHandler{db: db}
}

type CreateCustomerRequest struct {
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone" binding:"required"`
	Email string `json:"email"`
}

func (h *CustomerHandler) List(c *gin.Context) {
	scope := middleware.MustScope(c)

	var customers []models.Customer
	h.db.
		Where("barbershop_id = ?", scope.TenantID).
		Order("name ASC").
		Find(&customers)

	httpresp.List(c, customers)
}

// Create registers a walk-in customer. Phone is the dedup key inside one
// barbershop; an existing phone returns the existing record.
func (h *CustomerHandler) Create(c *gin.Context) {
	scope := middleware.MustScope(c)

	var req CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	var existing models.Customer
	if err := h.db.
		Where("barbershop_id = ? AND phone = ?", scope.TenantID, req.Phone).
		First(&existing).Error; err == nil {
		httpresp.OK(c, existing)
		return
	}

	customer := models.Customer{
		BarbershopID: scope.TenantID,
		Name:         req.Name,
		Phone:        req.Phone,
		Email:        req.Email,
	}

	if err := h.db.Create(&customer).Error; err != nil {
		httperr.Internal(c, "failed_to_create_customer", "could not create customer")
		return
	}

	httpresp.Created(c, customer)
}
