package di

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	ginhandler "sps-user-service/internal/adapter/gin/handler"
	"sps-user-service/internal/adapter/persistence"
	"sps-user-service/internal/config"
	"sps-user-service/internal/store"
	authuc "sps-user-service/internal/usecase/auth"
	useruc "sps-user-service/internal/usecase/user"
	"sps-user-service/pkg/security"
)

// Container holds all application dependencies
type Container struct {
	Config      *config.Config
	Logger      *zap.Logger
	FileStore   *persistence.FileStore
	Store       *store.Store
	Tokens      *security.TokenManager
	AuthUC      authuc.Usecase
	UserUC      useruc.Usecase
	AuthHandler *ginhandler.AuthHandler
	UserHandler *ginhandler.UserHandler
}

// NewContainer creates and initializes all application dependencies
func NewContainer(cfg *config.Config, l *zap.Logger) (*Container, error) {
	// Validate configuration before initializing any dependencies
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	// Initialize persistence adapter
	fileStore := persistence.NewFileStore(cfg.Store.DataDir, cfg.Store.DataFile, l)

	// Initialize user store. Durable-write failures are swallowed by
	// design; the hook surfaces them so operators can spot silent
	// data-loss risk.
	userStore := store.New(fileStore, store.Bootstrap{
		Email:    cfg.Bootstrap.AdminEmail,
		Name:     cfg.Bootstrap.AdminName,
		Password: cfg.Bootstrap.AdminPassword,
	}, l, store.WithSaveErrorHook(func(err error) {
		l.Error("durable write failed; latest mutations exist only in memory", zap.Error(err))
	}))

	// Initialize token manager
	tokens := security.NewTokenManager(
		cfg.Auth.JWTSecret,
		time.Duration(cfg.Auth.TokenTTLHours)*time.Hour,
	)

	// Initialize use cases
	authUC := authuc.New(userStore, tokens, l)
	userUC := useruc.New(userStore, l)

	// Initialize handlers
	authHandler := ginhandler.NewAuthHandler(authUC, l)
	userHandler := ginhandler.NewUserHandler(userUC, l)

	return &Container{
		Config:      cfg,
		Logger:      l,
		FileStore:   fileStore,
		Store:       userStore,
		Tokens:      tokens,
		AuthUC:      authUC,
		UserUC:      userUC,
		AuthHandler: authHandler,
		UserHandler: userHandler,
	}, nil
}

// Close flushes resources held by the container. Waiting for in-flight
// saves narrows the window where a mutation exists only in memory.
func (c *Container) Close() error {
	if c.Store != nil {
		c.Store.Flush()
	}
	return nil
}
