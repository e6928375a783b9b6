package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/clinicbase/clinic-scheduler/internal/httperr"
	"github.com/clinicbase/clinic-scheduler/internal/httpresp"
	"github.com/clinicbase/clinic-scheduler/internal/models"
	ucAppointment "github.com/clinicbase/clinic-scheduler/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

// Ledger reads are orphan-tolerant: entries whose appointment (or even
// client) has since been deleted still render, with the reference left
// dangling.
type RescheduleHandler struct {
	db         *gorm.DB
	importRows *ucAppointment.ImportReschedules
}

func NewRescheduleHandler(db *gorm.DB, importRows *ucAppointment.ImportReschedules) *RescheduleHandler {
	return &RescheduleHandler{db: db, importRows: importRows}
}

func (h *RescheduleHandler) List(c *gin.Context) {
	var entries []models.Reschedule
	if err := h.db.
		Preload("Client").
		Order("created_at DESC").
		Find(&entries).Error; err != nil {
		httperr.Internal(c, "failed_to_list_reschedules", "Error listing reschedule records.")
		return
	}

	views := make([]models.RescheduleView, len(entries))
	for i := range entries {
		views[i] = entries[i].View()
	}
	httpresp.List(c, views)
}

func (h *RescheduleHandler) GetByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid ID format")
		return
	}

	var entry models.Reschedule
	if err := h.db.
		Preload("Client").
		First(&entry, uint(id)).Error; err != nil {
		httperr.NotFound(c, "reschedule_not_found", "Reschedule record not found")
		return
	}
	httpresp.OK(c, entry.View())
}

// ======================================================
// IMPORT
// ======================================================

type ImportRescheduleRequest struct {
	Client     clientBody `json:"client" binding:"required"`
	Prestart   string     `json:"prestart" binding:"required"`
	Preend     string     `json:"preend" binding:"required"`
	NewStart   string     `json:"new_start" binding:"required"`
	NewEnd     string     `json:"new_end" binding:"required"`
	ScheduleBy string     `json:"scheduleBy"`
}

type ImportReschedulesRequest struct {
	Rows []ImportRescheduleRequest `json:"rows" binding:"required"`
}

func (h *RescheduleHandler) Import(c *gin.Context) {
	var req ImportReschedulesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	rows := make([]ucAppointment.ImportRescheduleRow, len(req.Rows))
	for i, r := range req.Rows {
		rows[i] = ucAppointment.ImportRescheduleRow{
			ClientName:    r.Client.Name,
			ClientAge:     r.Client.Age,
			ClientGender:  r.Client.Gender,
			ClientContact: r.Client.Contact,
			ClientAddress: r.Client.Address,
			Prestart:      r.Prestart,
			Preend:        r.Preend,
			NewStart:      r.NewStart,
			NewEnd:        r.NewEnd,
			ScheduleBy:    r.ScheduleBy,
		}
	}

	result, err := h.importRows.Execute(c.Request.Context(), ucAppointment.ImportReschedulesInput{Rows: rows})
	if err != nil {
		httperr.Internal(c, "failed_to_import", "Error importing reschedule records.")
		return
	}
	httpresp.OK(c, result)
}

// Delete is administrative only; the ledger is otherwise append-only.
func (h *RescheduleHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid ID format")
		return
	}

	var entry models.Reschedule
	if err := h.db.First(&entry, uint(id)).Error; err != nil {
		httperr.NotFound(c, "reschedule_not_found", "Reschedule record not found")
		return
	}

	if err := h.db.Delete(&entry).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_reschedule", "Error deleting reschedule record.")
		return
	}
	httpresp.OKMessage(c, "Reschedule record deleted", nil)
}
