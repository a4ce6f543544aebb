package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/trimsync/barbershop-api/internal/httpresp"
	"github.com/trimsync/barbershop-api/internal/middleware"
	"github.com/trimsync/barbershop-api/internal/models"
)

type AuditLogsHandler struct {
	db *gorm.DB
}

func NewAuditLogsHandler(db *gorm.DB) *AuditLogsHandler {
	return &AuditLogsHandler{db: db}
}

func (h *AuditLogsHandler) List(c *gin.Context) {
	scope := middleware.MustScope(c)

	limit := 50
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 200 {
			limit = n
		}
	}

	q := h.db.
		Where("barbershop_id = ?", scope.TenantID).
		Order("created_at DESC").
		Limit(limit)

	if action := c.Query("action"); action != "" {
		q = q.Where("action = ?", action)
	}

	var logs []models.AuditLog
	q.Find(&logs)

	httpresp.List(c, logs)
}
