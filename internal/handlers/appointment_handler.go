package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/clinicbase/clinic-scheduler/internal/httperr"
	"github.com/clinicbase/clinic-scheduler/internal/httpresp"
	"github.com/clinicbase/clinic-scheduler/internal/middleware"
	"github.com/clinicbase/clinic-scheduler/internal/models"
	ucAppointment "github.com/clinicbase/clinic-scheduler/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	create      *ucAppointment.CreateAppointment
	update      *ucAppointment.UpdateAppointment
	delete      *ucAppointment.DeleteAppointment
	get         *ucAppointment.GetAppointment
	list        *ucAppointment.ListAppointments
	listByDate  *ucAppointment.ListAppointmentsByDate
	listByMonth *ucAppointment.ListAppointmentsByMonth
	importRows  *ucAppointment.ImportAppointments
}

func NewAppointmentHandler(
	create *ucAppointment.CreateAppointment,
	update *ucAppointment.UpdateAppointment,
	delete_ *ucAppointment.DeleteAppointment,
	get *ucAppointment.GetAppointment,
	list *ucAppointment.ListAppointments,
	listByDate *ucAppointment.ListAppointmentsByDate,
	listByMonth *ucAppointment.ListAppointmentsByMonth,
	importRows *ucAppointment.ImportAppointments,
) *AppointmentHandler {
	return &AppointmentHandler{
		create:      create,
		update:      update,
		delete:      delete_,
		get:         get,
		list:        list,
		listByDate:  listByDate,
		listByMonth: listByMonth,
		importRows:  importRows,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type clientBody struct {
	Name    string `json:"name" binding:"required"`
	Age     int    `json:"age"`
	Gender  string `json:"gender"`
	Contact string `json:"contact"`
	Address string `json:"address"`
}

type CreateAppointmentRequest struct {
	Client      clientBody `json:"client" binding:"required"`
	Start       string     `json:"start" binding:"required"`
	End         string     `json:"end" binding:"required"`
	Platform    string     `json:"platform" binding:"required"`
	Type        string     `json:"type" binding:"required"`
	Category    string     `json:"category"`
	SubCategory string     `json:"sub_category"`
	Notes       string     `json:"notes"`
}

type UpdateAppointmentRequest struct {
	Status     *string `json:"status"`
	Start      *string `json:"start"`
	End        *string `json:"end"`
	Platform   *string `json:"platform"`
	Type       *string `json:"type"`
	ScheduleBy *string `json:"scheduleBy"`
}

type ImportAppointmentsRequest struct {
	Rows []CreateAppointmentRequest `json:"rows" binding:"required"`
}

func (r CreateAppointmentRequest) toInput() ucAppointment.CreateAppointmentInput {
	return ucAppointment.CreateAppointmentInput{
		ClientName:    r.Client.Name,
		ClientAge:     r.Client.Age,
		ClientGender:  r.Client.Gender,
		ClientContact: r.Client.Contact,
		ClientAddress: r.Client.Address,
		Start:         r.Start,
		End:           r.End,
		Platform:      r.Platform,
		Type:          r.Type,
		Category:      r.Category,
		SubCategory:   r.SubCategory,
		Notes:         r.Notes,
	}
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "missing_client", "Client data is missing or invalid.")
		return
	}

	ap, err := h.create.Execute(c.Request.Context(), req.toInput())
	if err != nil {
		respondBusiness(c, err, "failed_to_create_appointment", "Error creating appointment.")
		return
	}

	httpresp.Created(c, ap.View())
}

// ======================================================
// LIST / GET
// ======================================================

func (h *AppointmentHandler) List(c *gin.Context) {
	aps, err := h.list.Execute(c.Request.Context())
	if err != nil {
		httperr.Internal(c, "failed_to_list_appointments", "Error listing appointments.")
		return
	}
	httpresp.List(c, views(aps))
}

func (h *AppointmentHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	ap, err := h.get.Execute(c.Request.Context(), id)
	if err != nil {
		respondBusiness(c, err, "failed_to_get_appointment", "Error fetching appointment.")
		return
	}
	httpresp.OK(c, ap.View())
}

func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	aps, err := h.listByDate.Execute(c.Request.Context(), c.Query("date"))
	if err != nil {
		respondBusiness(c, err, "failed_to_list_appointments", "Error listing appointments.")
		return
	}
	httpresp.List(c, views(aps))
}

func (h *AppointmentHandler) ListByMonth(c *gin.Context) {
	year, err1 := strconv.Atoi(c.Query("year"))
	month, err2 := strconv.Atoi(c.Query("month"))
	if err1 != nil || err2 != nil {
		httperr.BadRequest(c, "missing_year_or_month", "Both year and month query parameters are required.")
		return
	}

	aps, err := h.listByMonth.Execute(c.Request.Context(), year, month)
	if err != nil {
		respondBusiness(c, err, "failed_to_list_appointments", "Error listing appointments.")
		return
	}
	httpresp.List(c, views(aps))
}

// ======================================================
// UPDATE (reschedule state machine)
// ======================================================

func (h *AppointmentHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	result, err := h.update.Execute(c.Request.Context(), ucAppointment.UpdateAppointmentInput{
		ID:         id,
		Status:     req.Status,
		Start:      req.Start,
		End:        req.End,
		Platform:   req.Platform,
		Type:       req.Type,
		ScheduleBy: req.ScheduleBy,
		Actor:      middleware.Username(c),
	})
	if err != nil {
		respondBusiness(c, err, "failed_to_update_appointment", "Error updating appointment.")
		return
	}

	msg := "Appointment updated successfully"
	if result.Rescheduled {
		msg = "Appointment rescheduled successfully"
	}
	httpresp.OKMessage(c, msg, result.Appointment.View())
}

// ======================================================
// DELETE
// ======================================================

func (h *AppointmentHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if _, err := h.delete.Execute(c.Request.Context(), id); err != nil {
		respondBusiness(c, err, "failed_to_delete_appointment", "Error deleting appointment.")
		return
	}
	httpresp.OKMessage(c, "Appointment deleted", nil)
}

// ======================================================
// IMPORT
// ======================================================

func (h *AppointmentHandler) Import(c *gin.Context) {
	var req ImportAppointmentsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	rows := make([]ucAppointment.CreateAppointmentInput, len(req.Rows))
	for i, r := range req.Rows {
		rows[i] = r.toInput()
	}

	result, err := h.importRows.Execute(c.Request.Context(), ucAppointment.ImportAppointmentsInput{Rows: rows})
	if err != nil {
		httperr.Internal(c, "failed_to_import", "Error importing appointments.")
		return
	}
	httpresp.OK(c, result)
}

// ======================================================
// HELPERS
// ======================================================

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid appointment ID")
		return 0, false
	}
	return uint(id), true
}

func views(aps []models.Appointment) []models.AppointmentView {
	out := make([]models.AppointmentView, len(aps))
	for i := range aps {
		out[i] = aps[i].View()
	}
	return out
}

// respondBusiness maps usecase business errors onto the HTTP taxonomy:
// not-found, conflict and validation are distinct signals.
func respondBusiness(c *gin.Context, err error, fallbackCode, fallbackMsg string) {
	var be httperr.BusinessError
	if !errors.As(err, &be) {
		httperr.Internal(c, fallbackCode, fallbackMsg)
		return
	}

	msg := be.Message
	if msg == "" {
		msg = be.Code
	}

	switch be.Code {
	case "appointment_not_found", "reschedule_not_found", "client_not_found":
		httperr.NotFound(c, be.Code, msg)
	case "time_slot_taken":
		httperr.Conflict(c, be.Code, msg)
	default:
		httperr.BadRequest(c, be.Code, msg)
	}
}
