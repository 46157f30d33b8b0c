package handlers

import (
	"go.uber.org/zap"

	"github.com/stillpoint/practice-api/internal/services"
	"github.com/stillpoint/practice-api/internal/store"
)

// Handler carries the dependencies every route needs: the persistence layer,
// the notification and sanitization services, and the JWT secret for login.
type Handler struct {
	Store           store.Store
	NotificationSvc *services.NotificationService
	Sanitizer       *services.Sanitizer
	Logger          *zap.Logger
	JWTSecret       string
	GeminiAPIKey    string
}

func NewHandler(st store.Store, notificationSvc *services.NotificationService, sanitizer *services.Sanitizer, logger *zap.Logger, jwtSecret, geminiKey string) *Handler {
	return &Handler{
		Store:           st,
		NotificationSvc: notificationSvc,
		Sanitizer:       sanitizer,
		Logger:          logger,
		JWTSecret:       jwtSecret,
		GeminiAPIKey:    geminiKey,
	}
}
