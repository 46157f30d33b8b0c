package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stillpoint/practice-api/internal/middleware"
	"github.com/stillpoint/practice-api/internal/models"
	"github.com/stillpoint/practice-api/internal/store"
)

func validWorkbookStatus(s models.WorkbookStatus) bool {
	switch s {
	case models.WorkbookAssigned, models.WorkbookInProgress,
		models.WorkbookSubmitted, models.WorkbookReviewed:
		return true
	}
	return false
}

// CreateWorkbook creates a workbook, optionally already assigned. Admin only.
// Choice-like questions must carry options; question ids are filled in when
// the client omits them.
func (h *Handler) CreateWorkbook(c *gin.Context) {
	var req struct {
		Title       string            `json:"title" binding:"required"`
		Description string            `json:"description"`
		Content     string            `json:"content"`
		Questions   []models.Question `json:"questions"`
		AssignedTo  models.ID         `json:"assignedTo"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	for i := range req.Questions {
		q := &req.Questions[i]
		if q.ID == "" {
			q.ID = fmt.Sprintf("q%d", i+1)
		}
		if q.Type.NeedsOptions() && len(q.Options) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Question %s requires options", q.ID)})
			return
		}
		if !q.Type.NeedsOptions() && len(q.Options) > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Question %s must not carry options", q.ID)})
			return
		}
	}

	wb, err := h.Store.CreateWorkbook(c.Request.Context(), &models.Workbook{
		Title:       req.Title,
		Description: req.Description,
		Content:     req.Content,
		Questions:   req.Questions,
		Status:      models.WorkbookAssigned,
		AssignedTo:  req.AssignedTo,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create workbook"})
		return
	}
	c.JSON(http.StatusCreated, wb)
}

// GetWorkbooks lists workbooks: everything for admins (with optional status
// and userId filters), only assigned ones for users. Empty results are empty
// arrays, never errors.
func (h *Handler) GetWorkbooks(c *gin.Context) {
	ctx := c.Request.Context()
	userRole := c.GetString(middleware.CtxUserRole)

	if userRole != string(models.RoleAdmin) {
		wbs, err := h.Store.ListWorkbooksByUser(ctx, models.ID(c.GetString(middleware.CtxUserID)))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve workbooks"})
			return
		}
		c.JSON(http.StatusOK, wbs)
		return
	}

	var (
		wbs []models.Workbook
		err error
	)
	if userID := c.Query("userId"); userID != "" {
		wbs, err = h.Store.ListWorkbooksByUser(ctx, models.ID(userID))
	} else {
		wbs, err = h.Store.ListWorkbooks(ctx)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve workbooks"})
		return
	}

	if status := c.Query("status"); status != "" {
		filtered := make([]models.Workbook, 0, len(wbs))
		for _, w := range wbs {
			if w.Status == models.WorkbookStatus(status) {
				filtered = append(filtered, w)
			}
		}
		wbs = filtered
	}

	c.JSON(http.StatusOK, wbs)
}

// GetWorkbook fetches a single workbook. Users only see workbooks assigned to
// them; anything else reads as not found rather than forbidden.
func (h *Handler) GetWorkbook(c *gin.Context) {
	wb, err := h.Store.GetWorkbook(c.Request.Context(), models.ID(c.Param("id")))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve workbook"})
		return
	}
	if wb == nil || !h.canSeeWorkbook(c, wb) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Workbook not found"})
		return
	}
	c.JSON(http.StatusOK, wb)
}

func (h *Handler) canSeeWorkbook(c *gin.Context, wb *models.Workbook) bool {
	if c.GetString(middleware.CtxUserRole) == string(models.RoleAdmin) {
		return true
	}
	return wb.AssignedTo == models.ID(c.GetString(middleware.CtxUserID))
}

// UpdateWorkbook serves two flows on one route. Admins edit content fields
// and leave feedback, which moves the workbook to reviewed. Assigned users
// save or submit their answers: saving moves the status to in_progress,
// submitting to submitted. Free text passes through the sanitizer.
func (h *Handler) UpdateWorkbook(c *gin.Context) {
	if c.GetString(middleware.CtxUserRole) == string(models.RoleAdmin) {
		h.adminUpdateWorkbook(c)
		return
	}
	h.userUpdateWorkbook(c)
}

func (h *Handler) adminUpdateWorkbook(c *gin.Context) {
	var req struct {
		Title         *string                `json:"title,omitempty"`
		Description   *string                `json:"description,omitempty"`
		Content       *string                `json:"content,omitempty"`
		Status        *models.WorkbookStatus `json:"status,omitempty"`
		AdminFeedback *string                `json:"adminFeedback,omitempty"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if req.Title == nil && req.Description == nil && req.Content == nil && req.Status == nil && req.AdminFeedback == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No fields to update"})
		return
	}
	if req.Status != nil && !validWorkbookStatus(*req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown status"})
		return
	}

	upd := store.WorkbookUpdate{
		Title:       req.Title,
		Description: req.Description,
		Content:     req.Content,
		Status:      req.Status,
	}
	if req.AdminFeedback != nil {
		clean := h.Sanitizer.Clean(*req.AdminFeedback)
		upd.AdminFeedback = &clean
		// Feedback closes the loop unless the admin set a status explicitly.
		if req.Status == nil {
			reviewed := models.WorkbookReviewed
			upd.Status = &reviewed
		}
	}

	wb, err := h.Store.UpdateWorkbook(c.Request.Context(), models.ID(c.Param("id")), upd)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update workbook"})
		return
	}
	if wb == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Workbook not found"})
		return
	}
	c.JSON(http.StatusOK, wb)
}

func (h *Handler) userUpdateWorkbook(c *gin.Context) {
	ctx := c.Request.Context()
	id := models.ID(c.Param("id"))

	wb, err := h.Store.GetWorkbook(ctx, id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update workbook"})
		return
	}
	if wb == nil || !h.canSeeWorkbook(c, wb) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Workbook not found"})
		return
	}

	var req struct {
		UserResponse *string             `json:"userResponse,omitempty"`
		Answers      map[string][]string `json:"answers,omitempty"`
		Submit       bool                `json:"submit"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	upd := store.WorkbookUpdate{}
	if req.UserResponse != nil {
		clean := h.Sanitizer.Clean(*req.UserResponse)
		upd.UserResponse = &clean
	}
	if len(req.Answers) > 0 {
		questions := wb.Questions
		for i := range questions {
			if ans, ok := req.Answers[questions[i].ID]; ok {
				questions[i].UserAnswer = ans
			}
		}
		upd.Questions = &questions
	}

	next := models.WorkbookInProgress
	if req.Submit {
		next = models.WorkbookSubmitted
	}
	upd.Status = &next

	wb, err = h.Store.UpdateWorkbook(ctx, id, upd)
	if err != nil || wb == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update workbook"})
		return
	}
	c.JSON(http.StatusOK, wb)
}

// AssignWorkbook hands a workbook to a user; reassignment always resets its
// status to assigned. Admin only.
func (h *Handler) AssignWorkbook(c *gin.Context) {
	var req struct {
		UserID models.ID `json:"userId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userId is required"})
		return
	}

	ctx := c.Request.Context()
	user, err := h.Store.GetUser(ctx, req.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to assign workbook"})
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	wb, err := h.Store.AssignWorkbook(ctx, models.ID(c.Param("id")), req.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to assign workbook"})
		return
	}
	if wb == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Workbook not found"})
		return
	}
	c.JSON(http.StatusOK, wb)
}

// DeleteWorkbook removes the workbook. Admin only.
func (h *Handler) DeleteWorkbook(c *gin.Context) {
	wb, err := h.Store.DeleteWorkbook(c.Request.Context(), models.ID(c.Param("id")))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete workbook"})
		return
	}
	if wb == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Workbook not found"})
		return
	}
	c.JSON(http.StatusOK, wb)
}
