package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	domain "sps-user-service/internal/domain/user"
	"sps-user-service/pkg/security"
)

func setupAuthRouter(t *testing.T, tokens *security.TokenManager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	log := zaptest.NewLogger(t)

	r := gin.New()
	r.GET("/protected", Auth(tokens, log), func(c *gin.Context) {
		id, _ := GetIdentity(c)
		c.JSON(http.StatusOK, gin.H{"user_id": id.UserID})
	})
	r.GET("/admin", Auth(tokens, log), RequireAdmin(log), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func signToken(t *testing.T, tokens *security.TokenManager, userType domain.Type) string {
	t.Helper()
	token, err := tokens.Sign(&domain.User{ID: 1, Email: "a@example.com", Type: userType})
	require.NoError(t, err)
	return token
}

func doRequest(r *gin.Engine, authHeader string, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestAuth_MissingHeader(t *testing.T) {
	tokens := security.NewTokenManager("test-secret", time.Hour)
	r := setupAuthRouter(t, tokens)

	w := doRequest(r, "", "/protected")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Access denied. No token provided.")
}

func TestAuth_NotBearer(t *testing.T) {
	tokens := security.NewTokenManager("test-secret", time.Hour)
	r := setupAuthRouter(t, tokens)

	w := doRequest(r, "Basic abc123", "/protected")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Access denied. No token provided.")
}

func TestAuth_EmptyBearer(t *testing.T) {
	tokens := security.NewTokenManager("test-secret", time.Hour)
	r := setupAuthRouter(t, tokens)

	w := doRequest(r, "Bearer ", "/protected")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Access denied. No token provided.")
}

func TestAuth_InvalidToken(t *testing.T) {
	tokens := security.NewTokenManager("test-secret", time.Hour)
	r := setupAuthRouter(t, tokens)

	w := doRequest(r, "Bearer garbage", "/protected")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid token.")
}

func TestAuth_WrongSecret(t *testing.T) {
	tokens := security.NewTokenManager("test-secret", time.Hour)
	other := security.NewTokenManager("other-secret", time.Hour)
	r := setupAuthRouter(t, tokens)

	w := doRequest(r, "Bearer "+signToken(t, other, domain.TypeAdmin), "/protected")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid token.")
}

func TestAuth_ExpiredToken(t *testing.T) {
	tokens := security.NewTokenManager("test-secret", time.Hour)
	expired := security.NewTokenManager("test-secret", -time.Hour)
	r := setupAuthRouter(t, tokens)

	w := doRequest(r, "Bearer "+signToken(t, expired, domain.TypeAdmin), "/protected")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid token.")
}

func TestAuth_ValidToken(t *testing.T) {
	tokens := security.NewTokenManager("test-secret", time.Hour)
	r := setupAuthRouter(t, tokens)

	w := doRequest(r, "Bearer "+signToken(t, tokens, domain.TypeStandard), "/protected")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":1`)
}

func TestRequireAdmin_StandardUserForbidden(t *testing.T) {
	tokens := security.NewTokenManager("test-secret", time.Hour)
	r := setupAuthRouter(t, tokens)

	w := doRequest(r, "Bearer "+signToken(t, tokens, domain.TypeStandard), "/admin")

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "Insufficient permissions")
}

func TestRequireAdmin_AdminAllowed(t *testing.T) {
	tokens := security.NewTokenManager("test-secret", time.Hour)
	r := setupAuthRouter(t, tokens)

	w := doRequest(r, "Bearer "+signToken(t, tokens, domain.TypeAdmin), "/admin")

	assert.Equal(t, http.StatusOK, w.Code)
}
