package handlers

import (
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"medispa-app-server/internal/middleware"
	"medispa-app-server/internal/models"
	"medispa-app-server/internal/utils"
)

// ChartHandler handles patient chart note requests.
type ChartHandler struct {
	DB *gorm.DB
}

// NewChartHandler creates a new ChartHandler.
func NewChartHandler(db *gorm.DB) *ChartHandler {
	return &ChartHandler{DB: db}
}

// CreateChartNoteRequest represents the request body for creating a chart note.
type CreateChartNoteRequest struct {
	PatientID string               `json:"patientId" binding:"required,uuid"`
	NoteType  models.ChartNoteType `json:"noteType" binding:"required"`
	NoteDate  string               `json:"date"`
	Title     string               `json:"title" binding:"required"`
	Summary   string               `json:"summary"`
	Details   string               `json:"details"`
}

// CreateChartNote handles creating a new chart entry. Providers only.
func (h *ChartHandler) CreateChartNote(c *gin.Context) {
	var req CreateChartNoteRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	providerID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "Provider ID not found in token")
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

	noteDate := time.Now()
	if req.NoteDate != "" {
		parsed, err := time.Parse(time.RFC3339, req.NoteDate)
		if err != nil {
			utils.BadRequest(c, "Invalid date format. Please use ISO 8601 format (YYYY-MM-DDTHH:MM:SSZ)")
			return
		}
		noteDate = parsed
	}

	note := models.ChartNote{
		PatientID:  req.PatientID,
		ProviderID: providerID,
		NoteType:   req.NoteType,
		NoteDate:   noteDate,
		Title:      req.Title,
		Summary:    req.Summary,
		Details:    req.Details,
	}

	if err := h.DB.Create(&note).Error; err != nil {
		utils.InternalServerError(c, "Failed to create chart note: "+err.Error())
		return
	}

	utils.Created(c, "Chart note created successfully", note)
}

// GetChartNotesForPatient lists a patient's chart, newest first.
// Accessible by the patient themselves, providers and admins.
func (h *ChartHandler) GetChartNotesForPatient(c *gin.Context) {
	patientID := c.Param("patientId")

	userID, _ := middleware.GetUserIDFromContext(c)
	userRole, _ := middleware.GetUserRoleFromContext(c)
	if userRole == models.RolePatient && userID != patientID {
		utils.Forbidden(c, "You are not authorized to view this chart")
		return
	}

	var notes []models.ChartNote
	if err := h.DB.Preload("Attachments").
		Where("patient_id = ?", patientID).
		Order("note_date desc").
		Find(&notes).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch chart notes: "+err.Error())
		return
	}

	utils.Success(c, "Chart notes fetched successfully", notes)
}

// GetChartNoteByID fetches a single chart entry.
func (h *ChartHandler) GetChartNoteByID(c *gin.Context) {
	var note models.ChartNote
	if err := h.DB.Preload("Attachments").First(&note, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Chart note not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	userID, _ := middleware.GetUserIDFromContext(c)
	userRole, _ := middleware.GetUserRoleFromContext(c)
	if userRole == models.RolePatient && userID != note.PatientID {
		utils.Forbidden(c, "You are not authorized to view this chart note")
		return
	}

	utils.Success(c, "Chart note fetched successfully", note)
}

// UpdateChartNoteRequest represents the request body for updating a chart note.
type UpdateChartNoteRequest struct {
	Title   string `json:"title"`
	Summary string `json:"summary"`
	Details string `json:"details"`
}

// UpdateChartNote handles editing a chart entry. The authoring provider or
// an admin only.
func (h *ChartHandler) UpdateChartNote(c *gin.Context) {
	var req UpdateChartNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	var note models.ChartNote
	if err := h.DB.First(&note, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Chart note not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	userID, _ := middleware.GetUserIDFromContext(c)
	userRole, _ := middleware.GetUserRoleFromContext(c)
	if userRole != models.RoleAdmin && userID != note.ProviderID {
		utils.Forbidden(c, "Only the authoring provider can edit this note")
		return
	}

	if req.Title != "" {
		note.Title = req.Title
	}
	if req.Summary != "" {
		note.Summary = req.Summary
	}
	if req.Details != "" {
		note.Details = req.Details
	}

	if err := h.DB.Save(&note).Error; err != nil {
		utils.InternalServerError(c, "Failed to update chart note: "+err.Error())
		return
	}

	utils.Success(c, "Chart note updated successfully", note)
}

// DeleteChartNote removes a chart entry and its attachments.
func (h *ChartHandler) DeleteChartNote(c *gin.Context) {
	var note models.ChartNote
	if err := h.DB.First(&note, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Chart note not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	userID, _ := middleware.GetUserIDFromContext(c)
	userRole, _ := middleware.GetUserRoleFromContext(c)
	if userRole != models.RoleAdmin && userID != note.ProviderID {
		utils.Forbidden(c, "Only the authoring provider can delete this note")
		return
	}

	if err := h.DB.Where("chart_note_id = ?", note.ID).Delete(&models.ChartNoteAttachment{}).Error; err != nil {
		utils.InternalServerError(c, "Failed to delete attachments: "+err.Error())
		return
	}
	if err := h.DB.Delete(&note).Error; err != nil {
		utils.InternalServerError(c, "Failed to delete chart note: "+err.Error())
		return
	}

	utils.Success(c, "Chart note deleted successfully", nil)
}

// UploadChartNoteAttachment stores a multipart file against a chart note.
func (h *ChartHandler) UploadChartNoteAttachment(c *gin.Context) {
	noteID := c.Param("id")

	var note models.ChartNote
	if err := h.DB.First(&note, "id = ?", noteID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Chart note not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		utils.BadRequest(c, "file is required: "+err.Error())
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		utils.InternalServerError(c, "Failed to open uploaded file: "+err.Error())
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		utils.InternalServerError(c, "Failed to read uploaded file: "+err.Error())
		return
	}

	attachment := models.ChartNoteAttachment{
		ChartNoteID: note.ID,
		FileName:    fileHeader.Filename,
		FileType:    fileHeader.Header.Get("Content-Type"),
		FileData:    data,
	}
	if err := h.DB.Create(&attachment).Error; err != nil {
		utils.InternalServerError(c, "Failed to store attachment: "+err.Error())
		return
	}

	utils.Created(c, "Attachment uploaded successfully", gin.H{
		"id":       attachment.ID,
		"fileName": attachment.FileName,
		"fileType": attachment.FileType,
	})
}

// GetChartNoteAttachment streams an attachment's bytes.
func (h *ChartHandler) GetChartNoteAttachment(c *gin.Context) {
	var attachment models.ChartNoteAttachment
	if err := h.DB.First(&attachment, "id = ?", c.Param("attachmentId")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Attachment not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	// Patients may only fetch attachments from their own chart
	userID, _ := middleware.GetUserIDFromContext(c)
	userRole, _ := middleware.GetUserRoleFromContext(c)
	if userRole == models.RolePatient {
		var note models.ChartNote
		if err := h.DB.First(&note, "id = ?", attachment.ChartNoteID).Error; err != nil || note.PatientID != userID {
			utils.Forbidden(c, "You are not authorized to fetch this attachment")
			return
		}
	}

	c.Header("Content-Disposition", `attachment; filename="`+attachment.FileName+`"`)
	c.Data(http.StatusOK, attachment.FileType, attachment.FileData)
}
