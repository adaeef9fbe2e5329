package middleware

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	appauth "github.com/shelfapi/bookshelf/internal/app/auth"
	"github.com/shelfapi/bookshelf/internal/app/models"
	"github.com/shelfapi/bookshelf/internal/app/models/dto"
	"github.com/shelfapi/bookshelf/internal/pkg/auth"
)

// Context keys set by the auth middleware
const (
	ContextUserID    = "userID"
	ContextUserEmail = "userEmail"
	ContextUserRole  = "userRole"
)

func abortUnauthorized(c *gin.Context, code dto.ErrorCode, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.APIResponse{
		Error:     dto.NewErrorDetail(code, message),
		Timestamp: time.Now(),
	})
}

func abortForbidden(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusForbidden, dto.APIResponse{
		Error:     dto.NewErrorDetail(dto.ErrorCodeForbidden, message),
		Timestamp: time.Now(),
	})
}

func authenticate(c *gin.Context, jwtService *auth.JWTService) (*auth.Claims, bool) {
	tokenString, err := auth.ExtractBearerToken(c.GetHeader("Authorization"))
	if err != nil || tokenString == "" {
		abortUnauthorized(c, dto.ErrorCodeUnauthorized, "Authentication required")
		return nil, false
	}

	claims, err := jwtService.ValidateAndExtractClaims(tokenString)
	if err != nil {
		if errors.Is(err, auth.ErrExpiredToken) {
			abortUnauthorized(c, dto.ErrorCodeExpiredToken, "Token has expired")
		} else {
			abortUnauthorized(c, dto.ErrorCodeInvalidToken, "Invalid token")
		}
		return nil, false
	}

	c.Set(ContextUserID, claims.UserID)
	c.Set(ContextUserEmail, claims.Email)
	c.Set(ContextUserRole, claims.Role)

	return claims, true
}

// JWTAuth requires a valid bearer token on every request
func JWTAuth(jwtService *auth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := authenticate(c, jwtService); !ok {
			return
		}
		c.Next()
	}
}

// ReadOnlyOrAuth lets safe methods through unauthenticated and requires a
// valid bearer token for everything else.
func ReadOnlyOrAuth(jwtService *auth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}

		if _, ok := authenticate(c, jwtService); !ok {
			return
		}
		c.Next()
	}
}

// RoleRequired requires the authenticated user to hold the given profile role
func RoleRequired(jwtService *auth.JWTService, role models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := authenticate(c, jwtService)
		if !ok {
			return
		}

		if claims.Role != string(role) {
			abortForbidden(c, "This dashboard requires the "+string(role)+" role")
			return
		}

		c.Next()
	}
}

// PermissionRequired requires the authenticated user to hold a named
// permission, resolved through group membership.
func PermissionRequired(jwtService *auth.JWTService, authz *appauth.AuthorizationService, codename string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := authenticate(c, jwtService)
		if !ok {
			return
		}

		allowed, err := authz.HasPermission(c.Request.Context(), claims.UserID, models.Role(claims.Role), codename)
		if err != nil {
			HandleAPIError(c, err)
			return
		}
		if !allowed {
			abortForbidden(c, "Missing required permission: "+codename)
			return
		}

		c.Next()
	}
}

// GetUserID extracts the authenticated user's ID from the context
func GetUserID(c *gin.Context) (int64, bool) {
	value, exists := c.Get(ContextUserID)
	if !exists {
		return 0, false
	}
	id, ok := value.(int64)
	return id, ok
}

// GetUserEmail extracts the authenticated user's email from the context
func GetUserEmail(c *gin.Context) string {
	return c.GetString(ContextUserEmail)
}

// GetUserRole extracts the authenticated user's role from the context
func GetUserRole(c *gin.Context) models.Role {
	return models.Role(c.GetString(ContextUserRole))
}
