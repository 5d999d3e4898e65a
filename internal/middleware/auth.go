package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"

	pkgauth "github.com/careops/hospital-api/pkg/auth"

	"github.com/careops/hospital-api/internal/model"
	"github.com/careops/hospital-api/internal/service/auth"
)

const (
	ContextAccountID = "account_id"
	ContextRole      = "role"
)

type AuthMiddleware struct {
	authService *auth.Service
	claimsCache *cache.Cache
}

func NewAuthMiddleware(authService *auth.Service) *AuthMiddleware {
	return &AuthMiddleware{
		authService: authService,
		claimsCache: cache.New(time.Minute, 5*time.Minute),
	}
}

// Authenticate verifies the JWT token and sets account info in context.
// Validated claims are cached briefly to skip repeated signature checks.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "missing authorization header"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "invalid authorization format"})
			c.Abort()
			return
		}

		var claims *pkgauth.TokenClaims
		if cached, ok := m.claimsCache.Get(parts[1]); ok {
			claims = cached.(*pkgauth.TokenClaims)
		} else {
			validated, err := m.authService.ValidateToken(c.Request.Context(), parts[1])
			if err != nil {
				c.JSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "invalid token"})
				c.Abort()
				return
			}
			claims = validated
			m.claimsCache.Set(parts[1], claims, cache.DefaultExpiration)
		}

		c.Set(ContextAccountID, claims.AccountID)
		c.Set(ContextRole, claims.Role)
		c.Next()
	}
}

// RequireRoleFor gates one HTTP method within a group to a single role;
// other methods pass through.
func (m *AuthMiddleware) RequireRoleFor(method string, role model.Role) gin.HandlerFunc {
	gate := m.RequireRole(role)
	return func(c *gin.Context) {
		if c.Request.Method == method {
			gate(c)
			return
		}
		c.Next()
	}
}

// RequireRole gates a route group to a single role.
func (m *AuthMiddleware) RequireRole(role model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(ContextRole) != string(role) {
			c.JSON(http.StatusForbidden, gin.H{"status": "error", "message": "insufficient role"})
			c.Abort()
			return
		}
		c.Next()
	}
}
