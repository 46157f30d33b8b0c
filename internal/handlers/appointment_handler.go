package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/stillpoint/practice-api/internal/middleware"
	"github.com/stillpoint/practice-api/internal/models"
	"github.com/stillpoint/practice-api/internal/store"
)

func validConsultationType(t models.ConsultationType) bool {
	switch t {
	case models.ConsultationGeneral, models.ConsultationSports,
		models.ConsultationRehabilitation, models.ConsultationChronic:
		return true
	}
	return false
}

func validAppointmentStatus(s models.AppointmentStatus) bool {
	switch s {
	case models.AppointmentPending, models.AppointmentConfirmed,
		models.AppointmentCompleted, models.AppointmentCancelled:
		return true
	}
	return false
}

// CreateAppointment books a consultation for the authenticated user. The
// user's name and email are copied onto the record at booking time and not
// kept in sync afterwards.
func (h *Handler) CreateAppointment(c *gin.Context) {
	var req struct {
		Date             string                  `json:"date" binding:"required"`
		Time             string                  `json:"time" binding:"required"`
		ConsultationType models.ConsultationType `json:"consultationType" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date, use YYYY-MM-DD"})
		return
	}
	if !validConsultationType(req.ConsultationType) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown consultation type"})
		return
	}

	userID := models.ID(c.GetString(middleware.CtxUserID))
	user, err := h.Store.GetUser(c.Request.Context(), userID)
	if err != nil || user == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not find user details"})
		return
	}

	apt, err := h.Store.CreateAppointment(c.Request.Context(), &models.Appointment{
		UserID:           user.ID,
		UserName:         user.Name,
		UserEmail:        user.Email,
		Date:             req.Date,
		Time:             req.Time,
		ConsultationType: req.ConsultationType,
		Status:           models.AppointmentPending,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create appointment"})
		return
	}

	h.NotificationSvc.SendAppointmentSMS(user, apt)

	c.JSON(http.StatusCreated, apt)
}

// GetAppointments lists appointments. Admins see everything and may filter by
// status or userId; regular users only ever see their own. An empty result is
// an empty array, never an error.
func (h *Handler) GetAppointments(c *gin.Context) {
	ctx := c.Request.Context()
	userRole := c.GetString(middleware.CtxUserRole)

	if userRole != string(models.RoleAdmin) {
		apts, err := h.Store.ListAppointmentsByUser(ctx, models.ID(c.GetString(middleware.CtxUserID)))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve appointments"})
			return
		}
		c.JSON(http.StatusOK, apts)
		return
	}

	var (
		apts []models.Appointment
		err  error
	)
	if userID := c.Query("userId"); userID != "" {
		apts, err = h.Store.ListAppointmentsByUser(ctx, models.ID(userID))
	} else {
		apts, err = h.Store.ListAppointments(ctx)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve appointments"})
		return
	}

	if status := c.Query("status"); status != "" {
		filtered := make([]models.Appointment, 0, len(apts))
		for _, a := range apts {
			if a.Status == models.AppointmentStatus(status) {
				filtered = append(filtered, a)
			}
		}
		apts = filtered
	}

	c.JSON(http.StatusOK, apts)
}

// UpdateAppointment lets an admin change slot details or status. Status
// transitions are unconstrained: any known status may replace any other.
func (h *Handler) UpdateAppointment(c *gin.Context) {
	var req struct {
		Date             *string                   `json:"date,omitempty"`
		Time             *string                   `json:"time,omitempty"`
		ConsultationType *models.ConsultationType  `json:"consultationType,omitempty"`
		Status           *models.AppointmentStatus `json:"status,omitempty"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if req.Date == nil && req.Time == nil && req.ConsultationType == nil && req.Status == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No fields to update"})
		return
	}
	if req.Date != nil {
		if _, err := time.Parse("2006-01-02", *req.Date); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date, use YYYY-MM-DD"})
			return
		}
	}
	if req.ConsultationType != nil && !validConsultationType(*req.ConsultationType) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown consultation type"})
		return
	}
	if req.Status != nil && !validAppointmentStatus(*req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown status"})
		return
	}

	apt, err := h.Store.UpdateAppointment(c.Request.Context(), models.ID(c.Param("id")), store.AppointmentUpdate{
		Date:             req.Date,
		Time:             req.Time,
		ConsultationType: req.ConsultationType,
		Status:           req.Status,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update appointment"})
		return
	}
	if apt == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Appointment not found"})
		return
	}
	c.JSON(http.StatusOK, apt)
}

// CancelAppointment sets the status to cancelled. Admins may cancel any
// appointment, users only their own.
func (h *Handler) CancelAppointment(c *gin.Context) {
	ctx := c.Request.Context()
	id := models.ID(c.Param("id"))

	apt, err := h.Store.GetAppointment(ctx, id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cancel appointment"})
		return
	}
	if apt == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Appointment not found"})
		return
	}

	userRole := c.GetString(middleware.CtxUserRole)
	userID := models.ID(c.GetString(middleware.CtxUserID))
	if userRole != string(models.RoleAdmin) && apt.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Permission denied."})
		return
	}

	cancelled := models.AppointmentCancelled
	apt, err = h.Store.UpdateAppointment(ctx, id, store.AppointmentUpdate{Status: &cancelled})
	if err != nil || apt == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cancel appointment"})
		return
	}

	if user, err := h.Store.GetUser(ctx, apt.UserID); err == nil && user != nil {
		h.NotificationSvc.SendAppointmentSMS(user, apt)
	}

	c.JSON(http.StatusOK, apt)
}

// DeleteAppointment removes the record entirely. Admin only.
func (h *Handler) DeleteAppointment(c *gin.Context) {
	apt, err := h.Store.DeleteAppointment(c.Request.Context(), models.ID(c.Param("id")))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete appointment"})
		return
	}
	if apt == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Appointment not found"})
		return
	}
	c.JSON(http.StatusOK, apt)
}
