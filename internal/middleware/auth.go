package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/trimsync/barbershop-api/internal/config"
	"github.com/trimsync/barbershop-api/internal/tenant"
)

const ContextScope = "tenantScope"

// AuthMiddleware validates the bearer token and resolves the caller into a
// tenant.Scope. Handlers read the scope once and pass it down explicitly.
func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing_authorization_header"})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_authorization_header"})
			return
		}

		token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrTokenMalformed
			}
			return []byte(cfg.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_token"})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_token_claims"})
			return
		}

		callerStr, ok1 := claims["sub"].(string)
		tenantStr, ok2 := claims["tenantId"].(string)
		role, _ := claims["role"].(string)
		if !ok1 || !ok2 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_token_payload"})
			return
		}

		callerID, err1 := uuid.Parse(callerStr)
		tenantID, err2 := uuid.Parse(tenantStr)
		if err1 != nil || err2 != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_token_payload"})
			return
		}

		c.Set(ContextScope, tenant.NewScope(tenantID, callerID, role))

		c.Next()
	}
}

// MustScope returns the scope resolved by AuthMiddleware. Only call it behind
// the middleware.
func MustScope(c *gin.Context) tenant.Scope {
	return c.MustGet(ContextScope).(tenant.Scope)
}
