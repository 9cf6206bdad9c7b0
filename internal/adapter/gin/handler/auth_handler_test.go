package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap/zaptest"

	"sps-user-service/internal/adapter/gin/middleware"
	domain "sps-user-service/internal/domain/user"
	"sps-user-service/internal/usecase/auth"
	apperrors "sps-user-service/pkg/errors"
)

// MockAuthUsecase is a mock implementation of auth.Usecase
type MockAuthUsecase struct {
	mock.Mock
}

func (m *MockAuthUsecase) Login(ctx context.Context, in auth.LoginRequest) (*auth.LoginResponse, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.LoginResponse), args.Error(1)
}

func (m *MockAuthUsecase) Profile(ctx context.Context, userID int64) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func setupAuthTest(t *testing.T) (*gin.Engine, *AuthHandler, *MockAuthUsecase) {
	gin.SetMode(gin.TestMode)
	mockUsecase := new(MockAuthUsecase)
	handler := NewAuthHandler(mockUsecase, zaptest.NewLogger(t))

	r := gin.New()
	return r, handler, mockUsecase
}

func TestLogin(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		r, handler, mockUsecase := setupAuthTest(t)
		r.POST("/auth/login", handler.Login)

		admin := &domain.User{ID: 1, Email: "admin@admin.com", Name: "Administrator", Type: domain.TypeAdmin}
		mockUsecase.On("Login", mock.Anything, auth.LoginRequest{Email: "admin@admin.com", Password: "admin123"}).
			Return(&auth.LoginResponse{Token: "signed-token", User: admin}, nil)

		body, _ := json.Marshal(LoginRequest{Email: "admin@admin.com", Password: "admin123"})
		w := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/auth/login", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Message string       `json:"message"`
			Token   string       `json:"token"`
			User    *domain.User `json:"user"`
		}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "Login successful", resp.Message)
		assert.Equal(t, "signed-token", resp.Token)
		assert.Equal(t, int64(1), resp.User.ID)
		assert.NotContains(t, w.Body.String(), "password")
	})

	t.Run("Malformed JSON", func(t *testing.T) {
		r, handler, _ := setupAuthTest(t)
		r.POST("/auth/login", handler.Login)

		w := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/auth/login", bytes.NewBufferString("{bad"))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Invalid JSON format")
	})

	t.Run("Missing Fields", func(t *testing.T) {
		r, handler, mockUsecase := setupAuthTest(t)
		r.POST("/auth/login", handler.Login)

		mockUsecase.On("Login", mock.Anything, mock.Anything).
			Return(nil, apperrors.NewValidationError("", "Email and password are required"))

		w := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/auth/login", bytes.NewBufferString(`{"email":"a@example.com"}`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Email and password are required")
	})

	t.Run("Invalid Credentials", func(t *testing.T) {
		r, handler, mockUsecase := setupAuthTest(t)
		r.POST("/auth/login", handler.Login)

		mockUsecase.On("Login", mock.Anything, mock.Anything).Return(nil, apperrors.ErrInvalidCredentials)

		w := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/auth/login", bytes.NewBufferString(`{"email":"a@example.com","password":"wrong"}`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Invalid credentials")
	})
}

func TestProfile(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		r, handler, mockUsecase := setupAuthTest(t)
		r.GET("/auth/profile", func(c *gin.Context) {
			middleware.SetIdentity(c, middleware.Identity{UserID: 1, Email: "admin@admin.com", Type: domain.TypeAdmin})
		}, handler.Profile)

		admin := &domain.User{ID: 1, Email: "admin@admin.com", Name: "Administrator", Type: domain.TypeAdmin}
		mockUsecase.On("Profile", mock.Anything, int64(1)).Return(admin, nil)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest("GET", "/auth/profile", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "admin@admin.com")
	})

	t.Run("No Identity", func(t *testing.T) {
		r, handler, _ := setupAuthTest(t)
		r.GET("/auth/profile", handler.Profile)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest("GET", "/auth/profile", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("User Gone", func(t *testing.T) {
		r, handler, mockUsecase := setupAuthTest(t)
		r.GET("/auth/profile", func(c *gin.Context) {
			middleware.SetIdentity(c, middleware.Identity{UserID: 42, Type: domain.TypeStandard})
		}, handler.Profile)

		mockUsecase.On("Profile", mock.Anything, int64(42)).Return(nil, apperrors.ErrUserNotFound)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest("GET", "/auth/profile", nil))

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "User not found")
	})
}
