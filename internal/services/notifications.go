package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/stillpoint/practice-api/internal/models"
)

// NotificationService sends booking confirmations over SMS via Textbelt.
// Delivery is best effort; failures are logged, never surfaced to the caller.
type NotificationService struct {
	textbeltKey string
	logger      *zap.Logger
}

func NewNotificationService(textbeltKey string, logger *zap.Logger) *NotificationService {
	return &NotificationService{textbeltKey: textbeltKey, logger: logger}
}

// SendAppointmentSMS notifies the user about the current state of their
// consultation booking.
func (s *NotificationService) SendAppointmentSMS(user *models.User, apt *models.Appointment) {
	if user.Phone == "" {
		s.logger.Debug("SMS not sent: user has no phone number", zap.String("userID", user.ID.String()))
		return
	}

	smsBody := fmt.Sprintf(
		"Stillpoint: your %s consultation on %s at %s is %s.",
		apt.ConsultationType,
		apt.Date,
		apt.Time,
		apt.Status,
	)

	// Send in a goroutine so it doesn't block the API response
	go s.sendSMSWithTextbelt(user.Phone, smsBody)
}

func (s *NotificationService) sendSMSWithTextbelt(phone, message string) {
	postBody, _ := json.Marshal(map[string]string{
		"phone":   phone,
		"message": message,
		"key":     s.textbeltKey,
	})

	resp, err := http.Post("https://textbelt.com/text", "application/json", bytes.NewBuffer(postBody))
	if err != nil {
		s.logger.Warn("Textbelt request failed", zap.String("phone", phone), zap.Error(err))
		return
	}
	defer resp.Body.Close()

	var result map[string]interface{}
	json.NewDecoder(resp.Body).Decode(&result)

	success, _ := result["success"].(bool)
	if !success {
		errorMsg, _ := result["error"].(string)
		s.logger.Warn("Textbelt rejected SMS", zap.String("phone", phone), zap.String("reason", errorMsg))
		return
	}
	s.logger.Info("SMS sent", zap.String("phone", phone))
}
