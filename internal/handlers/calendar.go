package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"medispa-app-server/internal/calendar"
	"medispa-app-server/internal/models"
	"medispa-app-server/internal/utils"
)

// CalendarHandler serves the scheduler's computed layout: appointments
// packed into overlap groups and positioned, per visible day.
type CalendarHandler struct {
	DB *gorm.DB
}

// NewCalendarHandler creates a new CalendarHandler.
func NewCalendarHandler(db *gorm.DB) *CalendarHandler {
	return &CalendarHandler{DB: db}
}

// DayLayout is one visible day's worth of positioned cards.
type DayLayout struct {
	Date  time.Time                        `json:"date"`
	Cards []calendar.PositionedAppointment `json:"cards"`
}

// LayoutResponse is the full scheduler layout for the requested view.
type LayoutResponse struct {
	View ViewParam   `json:"view"`
	Days []DayLayout `json:"days"`
}

// ViewParam echoes the resolved view parameters back to the client.
type ViewParam struct {
	Mode calendar.ViewMode `json:"mode"`
	Date time.Time         `json:"date"`
}

// GetLayout computes the card layout for a day, week or month view.
// Query params: view (day|week|month, default week), date (RFC3339 or
// 2006-01-02, default today), providerId (optional filter).
func (h *CalendarHandler) GetLayout(c *gin.Context) {
	mode := calendar.ViewMode(c.DefaultQuery("view", string(calendar.ViewWeek)))
	switch mode {
	case calendar.ViewDay, calendar.ViewWeek, calendar.ViewMonth:
	default:
		utils.BadRequest(c, "Invalid view, expected day, week or month")
		return
	}

	reference := time.Now()
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			parsed, err = time.Parse("2006-01-02", raw)
		}
		if err != nil {
			utils.BadRequest(c, "Invalid date, expected RFC3339 or YYYY-MM-DD")
			return
		}
		reference = parsed
	}

	orch := calendar.NewOrchestrator(mode, reference, calendar.Listener{}, nil)
	days := orch.VisibleDays()
	windowStart := days[0]
	windowEnd := days[len(days)-1].AddDate(0, 0, 1)

	query := h.DB.Preload("Patient").Preload("Provider").
		Where("start_time >= ? AND start_time < ?", windowStart, windowEnd).
		Where("status <> ?", models.StatusCancelled).
		Order("start_time asc")
	if providerID := c.Query("providerId"); providerID != "" {
		query = query.Where("provider_id = ?", providerID)
	}

	var appointments []models.Appointment
	if err := query.Find(&appointments).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch appointments: "+err.Error())
		return
	}

	layout := orch.Layout(appointments)
	resp := LayoutResponse{View: ViewParam{Mode: mode, Date: calendar.DayOf(reference)}}
	for _, day := range days {
		resp.Days = append(resp.Days, DayLayout{Date: day, Cards: layout[day]})
	}

	utils.Success(c, "Calendar layout computed successfully", resp)
}

// GetProviderColumns computes the day view's side-by-side provider
// columns for a single date.
func (h *CalendarHandler) GetProviderColumns(c *gin.Context) {
	raw := c.Query("date")
	if raw == "" {
		utils.BadRequest(c, "date is required")
		return
	}
	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		parsed, err = time.Parse("2006-01-02", raw)
	}
	if err != nil {
		utils.BadRequest(c, "Invalid date, expected RFC3339 or YYYY-MM-DD")
		return
	}
	day := calendar.DayOf(parsed)

	var providers []models.User
	if err := h.DB.Where("role = ?", models.RoleProvider).Order("last_name asc").Find(&providers).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch providers: "+err.Error())
		return
	}

	var appointments []models.Appointment
	if err := h.DB.Preload("Patient").Preload("Provider").
		Where("start_time >= ? AND start_time < ?", day, day.AddDate(0, 0, 1)).
		Where("status <> ?", models.StatusCancelled).
		Order("start_time asc").
		Find(&appointments).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch appointments: "+err.Error())
		return
	}

	providerIDs := make([]string, len(providers))
	for i, p := range providers {
		providerIDs[i] = p.ID
	}
	columns := calendar.ProviderColumns(appointments, day, providerIDs)

	type providerColumn struct {
		Provider models.UserSanitized             `json:"provider"`
		Cards    []calendar.PositionedAppointment `json:"cards"`
	}
	out := make([]providerColumn, len(providers))
	for i, p := range providers {
		out[i] = providerColumn{Provider: p.Sanitize(), Cards: columns[p.ID]}
	}

	utils.Success(c, "Provider columns computed successfully", gin.H{
		"date":    day,
		"columns": out,
	})
}
