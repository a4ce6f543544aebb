package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/trimsync/barbershop-api/internal/config"
	"github.com/trimsync/barbershop-api/internal/httperr"
	"github.com/trimsync/barbershop-api/internal/models"
	"github.com/trimsync/barbershop-api/internal/tenant"
	"github.com/trimsync/barbershop-api/internal/timezone"
	"github.com/trimsync/barbershop-api/internal/validators"
)

type AuthHandler struct {
	db     *gorm.DB
	config *config.Config
}

func NewAuthHandler(db *gorm.DB, cfg *config.Config) *AuthHandler {
	return &AuthHandler{db: db, config: cfg}
}

// --------- Requests ---------

type RegisterRequest struct {
	BarbershopName     string `json:"barbershop_name" binding:"required"`
	BarbershopSlug     string `json:"barbershop_slug" binding:"required"`
	BarbershopPhone    string `json:"barbershop_phone"`
	BarbershopAddress  string `json:"barbershop_address"`
	BarbershopTimezone string `json:"barbershop_timezone"`

	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Phone    string `json:"phone"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// --------- Handlers ---------

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if !validators.IsEmailDomainValid(req.Email) {
		httperr.BadRequest(c, "invalid_email_domain", "email domain does not exist")
		return
	}

	slug := strings.ToLower(strings.TrimSpace(req.BarbershopSlug))

	var count int64
	h.db.Model(&models.Barbershop{}).Where("slug = ?", slug).Count(&count)
	if count > 0 {
		httperr.BadRequest(c, "slug_already_exists", "barbershop slug already in use")
		return
	}

	tz := req.BarbershopTimezone
	if !timezone.IsValid(tz) {
		tz = timezone.DefaultTimezone
	}

	shop := models.Barbershop{
		Name:     req.BarbershopName,
		Slug:     slug,
		Phone:    req.BarbershopPhone,
		Address:  req.BarbershopAddress,
		Timezone: tz,
	}

	if err := h.db.Create(&shop).Error; err != nil {
		httperr.Internal(c, "failed_to_create_barbershop", "could not create barbershop")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "failed_to_hash_password", "could not create account")
		return
	}

	owner := models.Barber{
		BarbershopID: shop.ID,
		Name:         req.Name,
		Email:        strings.ToLower(req.Email),
		PasswordHash: string(hash),
		Phone:        req.Phone,
		Role:         tenant.RoleOwner,
		IsActive:     true,
	}

	if err := h.db.Create(&owner).Error; err != nil {
		httperr.Internal(c, "failed_to_create_owner", "could not create account")
		return
	}

	token, err := h.signToken(&owner)
	if err != nil {
		httperr.Internal(c, "failed_to_sign_token", "could not issue token")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"token":      token,
		"barbershop": shop,
		"barber":     owner,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	var barber models.Barber
	if err := h.db.
		Where("email = ?", strings.ToLower(req.Email)).
		First(&barber).Error; err != nil {
		httperr.Unauthorized(c, "invalid_credentials", "invalid email or password")
		return
	}

	if err := bcrypt.CompareHashAndPassword(
		[]byte(barber.PasswordHash),
		[]byte(req.Password),
	); err != nil {
		httperr.Unauthorized(c, "invalid_credentials", "invalid email or password")
		return
	}

	token, err := h.signToken(&barber)
	if err != nil {
		httperr.Internal(c, "failed_to_sign_token", "could not issue token")
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

func (h *AuthHandler) signToken(b *models.Barber) (string, error) {
	claims := jwt.MapClaims{
		"sub":      b.ID.String(),
		"tenantId": b.BarbershopID.String(),
		"role":     b.Role,
		"exp":      time.Now().Add(24 * time.Hour).Unix(),
		"iat":      time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.config.JWTSecret))
}
