package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"medispa-app-server/internal/approval"
	"medispa-app-server/internal/calendar"
	"medispa-app-server/internal/config"
	"medispa-app-server/internal/middleware"
	"medispa-app-server/internal/models"
	"medispa-app-server/internal/utils"
)

// AppointmentHandler handles appointment related requests.
type AppointmentHandler struct {
	DB       *gorm.DB
	Cfg      *config.Config
	Workflow *approval.Workflow
}

// NewAppointmentHandler creates a new AppointmentHandler.
func NewAppointmentHandler(db *gorm.DB, cfg *config.Config, workflow *approval.Workflow) *AppointmentHandler {
	return &AppointmentHandler{DB: db, Cfg: cfg, Workflow: workflow}
}

// withinClinicHours reports whether a booking falls inside the practice's
// configured opening hours. End is half-open, so a booking ending exactly
// at closing time is allowed.
func (h *AppointmentHandler) withinClinicHours(start, end time.Time) bool {
	openMinutes := h.Cfg.ClinicOpenHour * 60
	closeMinutes := h.Cfg.ClinicCloseHour * 60
	startMinutes := start.Hour()*60 + start.Minute()
	endMinutes := end.Hour()*60 + end.Minute()
	if endMinutes == 0 && end.After(start) {
		endMinutes = 24 * 60
	}
	return startMinutes >= openMinutes && endMinutes <= closeMinutes
}

// CreateAppointmentRequest is the committed drag-to-create range plus the
// booking details the dialog collects.
type CreateAppointmentRequest struct {
	PatientID  string                 `json:"patientId" binding:"required,uuid"`
	ProviderID string                 `json:"providerId" binding:"required,uuid"`
	StartTime  time.Time              `json:"startTime" binding:"required"`
	EndTime    time.Time              `json:"endTime" binding:"required"`
	Type       models.AppointmentType `json:"type" binding:"omitempty,oneof=therapy consultation followup general"`
	Notes      string                 `json:"notes"`
}

// CreateAppointment books the range a drag-to-create gesture committed.
// Zero-length ranges are widened to the minimum slot; inverted ranges are
// rejected so the dialog can surface the error and keep its state.
func (h *AppointmentHandler) CreateAppointment(c *gin.Context) {
	var req CreateAppointmentRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	start, end := req.StartTime, req.EndTime
	if end.Equal(start) {
		end = start.Add(calendar.MinSlotDuration)
	}
	if !end.After(start) {
		utils.BadRequest(c, calendar.ErrInvalidRange.Error())
		return
	}
	if !h.withinClinicHours(start, end) {
		utils.BadRequest(c, "Appointment falls outside clinic opening hours")
		return
	}

	// Verify provider exists and is a provider
	var provider models.User
	if err := h.DB.Where("id = ? AND role = ?", req.ProviderID, models.RoleProvider).First(&provider).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Provider not found or user is not a provider")
		} else {
			utils.InternalServerError(c, "Database error verifying provider: "+err.Error())
		}
		return
	}
	// Verify patient exists
	var patient models.User
	if err := h.DB.Where("id = ? AND role = ?", req.PatientID, models.RolePatient).First(&patient).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Patient not found")
		} else {
			utils.InternalServerError(c, "Database error verifying patient: "+err.Error())
		}
		return
	}

	apptType := req.Type
	if apptType == "" {
		apptType = models.TypeGeneral
	}

	appointment := models.Appointment{
		PatientID:  req.PatientID,
		ProviderID: req.ProviderID,
		StartTime:  start,
		EndTime:    end,
		Status:     models.StatusScheduled,
		Type:       apptType,
		Notes:      req.Notes,
	}

	if err := h.DB.Create(&appointment).Error; err != nil {
		utils.InternalServerError(c, "Failed to create appointment: "+err.Error())
		return
	}

	utils.Created(c, "Appointment created successfully", appointment)
}

// GetAppointments fetches appointments for the scheduler, optionally
// narrowed to a date window and provider.
func (h *AppointmentHandler) GetAppointments(c *gin.Context) {
	userIDStr, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}
	userRole, _ := middleware.GetUserRoleFromContext(c)

	query := h.DB.Preload("Patient").Preload("Provider").Order("start_time asc")

	// Patients only ever see their own bookings
	if userRole == models.RolePatient {
		query = query.Where("patient_id = ?", userIDStr)
	} else if providerID := c.Query("providerId"); providerID != "" {
		query = query.Where("provider_id = ?", providerID)
	}

	if from := c.Query("from"); from != "" {
		t, err := time.Parse(time.RFC3339, from)
		if err != nil {
			utils.BadRequest(c, "Invalid 'from' timestamp, expected RFC3339")
			return
		}
		query = query.Where("start_time >= ?", t)
	}
	if to := c.Query("to"); to != "" {
		t, err := time.Parse(time.RFC3339, to)
		if err != nil {
			utils.BadRequest(c, "Invalid 'to' timestamp, expected RFC3339")
			return
		}
		query = query.Where("start_time < ?", t)
	}

	var appointments []models.Appointment
	if err := query.Find(&appointments).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch appointments: "+err.Error())
		return
	}

	utils.Success(c, "Appointments fetched successfully", appointments)
}

// GetAppointmentByID handles fetching a single appointment by its ID.
func (h *AppointmentHandler) GetAppointmentByID(c *gin.Context) {
	var appointment models.Appointment
	if err := h.DB.Preload("Patient").Preload("Provider").First(&appointment, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Appointment not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	userIDStr, _ := middleware.GetUserIDFromContext(c)
	userRole, _ := middleware.GetUserRoleFromContext(c)
	if userRole == models.RolePatient && userIDStr != appointment.PatientID {
		utils.Forbidden(c, "You are not authorized to view this appointment")
		return
	}

	utils.Success(c, "Appointment fetched successfully", appointment)
}

// MoveAppointmentRequest is the command a drag-to-move gesture emits.
type MoveAppointmentRequest struct {
	NewStartTime time.Time `json:"newStartTime" binding:"required"`
	NewEndTime   time.Time `json:"newEndTime" binding:"required"`
}

// MoveAppointment applies a drag-to-move command: the booking shifts to the
// new slot, keeping its original duration. The server re-derives the end
// time from the stored duration rather than trusting the client's.
func (h *AppointmentHandler) MoveAppointment(c *gin.Context) {
	var req MoveAppointmentRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	if !req.NewEndTime.After(req.NewStartTime) {
		utils.BadRequest(c, calendar.ErrInvalidRange.Error())
		return
	}

	var appointment models.Appointment
	if err := h.DB.First(&appointment, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Appointment not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	if appointment.Status == models.StatusCancelled || appointment.Status == models.StatusCompleted {
		utils.Conflict(c, "Cancelled or completed appointments cannot be moved")
		return
	}

	duration := appointment.Duration()
	newStart := req.NewStartTime
	newEnd := newStart.Add(duration)
	if !h.withinClinicHours(newStart, newEnd) {
		utils.BadRequest(c, "Appointment falls outside clinic opening hours")
		return
	}
	appointment.StartTime = newStart
	appointment.EndTime = newEnd

	if err := h.DB.Save(&appointment).Error; err != nil {
		utils.InternalServerError(c, "Failed to move appointment: "+err.Error())
		return
	}

	utils.Success(c, "Appointment moved successfully", appointment)
}

// UpdateAppointmentRequest is the edit-dialog payload; only supplied
// fields change.
type UpdateAppointmentRequest struct {
	StartTime *time.Time                `json:"startTime"`
	EndTime   *time.Time                `json:"endTime"`
	Type      *models.AppointmentType   `json:"type" binding:"omitempty,oneof=therapy consultation followup general"`
	Status    *models.AppointmentStatus `json:"status" binding:"omitempty,oneof=scheduled completed cancelled pending"`
	Notes     *string                   `json:"notes"`
}

// UpdateAppointment handles the edit dialog's save action.
func (h *AppointmentHandler) UpdateAppointment(c *gin.Context) {
	var req UpdateAppointmentRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var appointment models.Appointment
	if err := h.DB.First(&appointment, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Appointment not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	if req.StartTime != nil {
		appointment.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		appointment.EndTime = *req.EndTime
	}
	if !appointment.EndTime.After(appointment.StartTime) {
		utils.BadRequest(c, calendar.ErrInvalidRange.Error())
		return
	}
	if req.Type != nil {
		appointment.Type = *req.Type
	}
	if req.Status != nil {
		appointment.Status = *req.Status
	}
	if req.Notes != nil {
		appointment.Notes = *req.Notes
	}

	if err := h.DB.Save(&appointment).Error; err != nil {
		utils.InternalServerError(c, "Failed to update appointment: "+err.Error())
		return
	}

	utils.Success(c, "Appointment updated successfully", appointment)
}

// DeleteAppointment removes a booking and discards any open approval card
// for it so a stale regeneration cannot land on a deleted row.
func (h *AppointmentHandler) DeleteAppointment(c *gin.Context) {
	id := c.Param("id")

	var appointment models.Appointment
	if err := h.DB.First(&appointment, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Appointment not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	if err := h.DB.Delete(&appointment).Error; err != nil {
		utils.InternalServerError(c, "Failed to delete appointment: "+err.Error())
		return
	}
	h.Workflow.Remove(id)

	utils.Success(c, "Appointment deleted successfully", nil)
}
