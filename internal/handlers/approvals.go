package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"medispa-app-server/internal/approval"
	"medispa-app-server/internal/models"
	"medispa-app-server/internal/utils"
)

// ApprovalHandler exposes the care-instruction approval workflow. The
// workflow owns the transient review cards; decisions are persisted onto
// the appointment's notification columns here.
type ApprovalHandler struct {
	DB       *gorm.DB
	Workflow *approval.Workflow
}

// NewApprovalHandler creates a new ApprovalHandler.
func NewApprovalHandler(db *gorm.DB, workflow *approval.Workflow) *ApprovalHandler {
	return &ApprovalHandler{DB: db, Workflow: workflow}
}

// GetPendingApprovals lists the open review cards, opening cards for any
// appointments whose notifications entered pending outside the sweep job.
func (h *ApprovalHandler) GetPendingApprovals(c *gin.Context) {
	var appointments []models.Appointment
	if err := h.DB.Preload("Patient").
		Where("notification_status = ?", models.NotificationPending).
		Find(&appointments).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch pending notifications: "+err.Error())
		return
	}

	for _, appt := range appointments {
		// Already-open cards are returned as-is; only genuinely new
		// pending notifications get a fresh card.
		_, _ = h.Workflow.Open(appt)
	}

	utils.Success(c, "Pending approvals fetched successfully", h.Workflow.Pending())
}

// ApproveRequest carries the reviewer's (possibly edited) final message.
type ApproveRequest struct {
	Message string `json:"message"`
}

// Approve settles a card and persists the approved message on the
// appointment. Approving a card that is not pending is rejected.
func (h *ApprovalHandler) Approve(c *gin.Context) {
	appointmentID := c.Param("id")

	var req ApproveRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		utils.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	update, err := h.Workflow.Approve(appointmentID, req.Message)
	if err != nil {
		h.decisionError(c, err)
		return
	}

	if !h.persistDecision(c, update) {
		return
	}
	utils.Success(c, "Notification approved", update)
}

// Decline disapproves the message and starts regeneration; the card
// returns to pending once the replacement is ready.
func (h *ApprovalHandler) Decline(c *gin.Context) {
	update, err := h.Workflow.Decline(c.Param("id"))
	if err != nil {
		h.decisionError(c, err)
		return
	}

	if !h.persistDecision(c, update) {
		return
	}
	utils.Success(c, "Notification declined, regenerating message", update)
}

// CycleVariant rotates the displayed message variant on a card. Purely a
// view concern; nothing is persisted.
func (h *ApprovalHandler) CycleVariant(c *gin.Context) {
	card, err := h.Workflow.CycleVariant(c.Param("id"))
	if err != nil {
		h.decisionError(c, err)
		return
	}
	utils.Success(c, "Message variant cycled", card)
}

// persistDecision writes the workflow's decision onto the appointment row.
func (h *ApprovalHandler) persistDecision(c *gin.Context, update approval.Update) bool {
	var appointment models.Appointment
	if err := h.DB.First(&appointment, "id = ?", update.AppointmentID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Appointment not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return false
	}

	appointment.Notification.Status = update.Status
	appointment.Notification.Sent = update.Sent
	if update.EditedMessage != "" {
		appointment.Notification.EditedMessage = update.EditedMessage
	}

	if err := h.DB.Save(&appointment).Error; err != nil {
		utils.InternalServerError(c, "Failed to persist notification decision: "+err.Error())
		return false
	}
	return true
}

func (h *ApprovalHandler) decisionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, approval.ErrCardNotFound):
		utils.NotFound(c, err.Error())
	case errors.Is(err, approval.ErrRegenerating), errors.Is(err, approval.ErrNotPending):
		utils.Conflict(c, err.Error())
	default:
		utils.InternalServerError(c, err.Error())
	}
}
