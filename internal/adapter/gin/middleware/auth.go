package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	domain "sps-user-service/internal/domain/user"
	"sps-user-service/pkg/security"
)

// identityKey is the gin context key holding the authenticated identity.
const identityKey = "identity"

// Identity is the decoded token payload attached to the request context
// for downstream authorization checks.
type Identity struct {
	UserID int64
	Email  string
	Type   domain.Type
}

// SetIdentity attaches an identity to the request context. Auth does
// this after token verification.
func SetIdentity(c *gin.Context, id Identity) {
	c.Set(identityKey, id)
}

// GetIdentity returns the authenticated identity attached by Auth.
func GetIdentity(c *gin.Context) (Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return Identity{}, false
	}
	id, ok := v.(Identity)
	return id, ok
}

// Auth verifies the Bearer token on incoming requests and attaches the
// decoded identity to the request context. Requests without a
// well-formed Authorization header are rejected before any parsing.
func Auth(tokens *security.TokenManager, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Access denied. No token provided.",
			})
			return
		}

		tokenStr := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		if tokenStr == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Access denied. No token provided.",
			})
			return
		}

		claims, err := tokens.Parse(tokenStr)
		if err != nil {
			log.Warn("token verification failed", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid token.",
			})
			return
		}

		SetIdentity(c, Identity{
			UserID: claims.UserID,
			Email:  claims.Email,
			Type:   domain.Type(claims.Type),
		})
		c.Next()
	}
}

// RequireAdmin rejects authenticated requests whose identity is not an
// admin. Must run after Auth.
func RequireAdmin(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := GetIdentity(c)
		if !ok || id.Type != domain.TypeAdmin {
			log.Warn("admin-only route denied", zap.Int64("user_id", id.UserID), zap.String("type", string(id.Type)))
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "Insufficient permissions",
			})
			return
		}
		c.Next()
	}
}
