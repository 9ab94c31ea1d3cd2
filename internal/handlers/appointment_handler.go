package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/turnera-api/internal/access"
	"github.com/BruksfildServices01/turnera-api/internal/httperr"
	"github.com/BruksfildServices01/turnera-api/internal/httpresp"
	"github.com/BruksfildServices01/turnera-api/internal/listing"
	"github.com/BruksfildServices01/turnera-api/internal/middleware"
	"github.com/BruksfildServices01/turnera-api/internal/models"
	appointmentUC "github.com/BruksfildServices01/turnera-api/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	create   *appointmentUC.CreateAppointment
	get      *appointmentUC.GetAppointment
	update   *appointmentUC.UpdateAppointment
	confirm  *appointmentUC.ConfirmAppointment
	cancel   *appointmentUC.CancelAppointment
	complete *appointmentUC.CompleteAppointment
	remove   *appointmentUC.SoftDeleteAppointment
	restore  *appointmentUC.RestoreAppointment
	list     *appointmentUC.ListAppointments
	byDate   *appointmentUC.ListAppointmentsByDate
	loc      *time.Location
}

func NewAppointmentHandler(
	create *appointmentUC.CreateAppointment,
	get *appointmentUC.GetAppointment,
	update *appointmentUC.UpdateAppointment,
	confirm *appointmentUC.ConfirmAppointment,
	cancel *appointmentUC.CancelAppointment,
	complete *appointmentUC.CompleteAppointment,
	remove *appointmentUC.SoftDeleteAppointment,
	restore *appointmentUC.RestoreAppointment,
	list *appointmentUC.ListAppointments,
	byDate *appointmentUC.ListAppointmentsByDate,
	loc *time.Location,
) *AppointmentHandler {
	return &AppointmentHandler{
		create:   create,
		get:      get,
		update:   update,
		confirm:  confirm,
		cancel:   cancel,
		complete: complete,
		remove:   remove,
		restore:  restore,
		list:     list,
		byDate:   byDate,
		loc:      loc,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	PatientID   string  `json:"patient_id" binding:"required,max=9"`
	DoctorID    uint    `json:"doctor_id" binding:"required"`
	OfficeID    uint    `json:"office_id" binding:"required"`
	DateTime    string  `json:"date_time" binding:"required"`
	DurationMin *int    `json:"duration_min"`
	State       *string `json:"state"`
}

type UpdateAppointmentRequest struct {
	PatientID   *string `json:"patient_id" binding:"omitempty,max=9"`
	DoctorID    *uint   `json:"doctor_id"`
	OfficeID    *uint   `json:"office_id"`
	DateTime    *string `json:"date_time"`
	DurationMin *int    `json:"duration_min"`
	State       *string `json:"state"`
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if !bindJSON(c, &req) {
		return
	}

	ap, err := h.create.Execute(c.Request.Context(), appointmentUC.CreateAppointmentInput{
		Actor:       middleware.ClaimsFrom(c),
		PatientID:   req.PatientID,
		DoctorID:    req.DoctorID,
		OfficeID:    req.OfficeID,
		DateTime:    req.DateTime,
		DurationMin: req.DurationMin,
		State:       req.State,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, ap)
}

// ======================================================
// LISTS
// ======================================================

func (h *AppointmentHandler) respondPage(c *gin.Context, p listing.Params, page *appointmentUC.Page, err error) {
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.Paged(c, page.Items, page.Total, p)
}

func (h *AppointmentHandler) List(c *gin.Context) {
	p := listing.FromValues(c.Request.URL.Query())
	page, err := h.list.FindAll(c.Request.Context(), middleware.ClaimsFrom(c), p)
	h.respondPage(c, p, page, err)
}

func (h *AppointmentHandler) ListInactive(c *gin.Context) {
	p := listing.FromValues(c.Request.URL.Query())
	page, err := h.list.FindInactive(c.Request.Context(), p)
	h.respondPage(c, p, page, err)
}

func (h *AppointmentHandler) ListMine(c *gin.Context) {
	p := listing.FromValues(c.Request.URL.Query())
	page, err := h.list.FindMine(c.Request.Context(), middleware.ClaimsFrom(c), p)
	h.respondPage(c, p, page, err)
}

func (h *AppointmentHandler) ListByState(c *gin.Context) {
	p := listing.FromValues(c.Request.URL.Query())
	page, err := h.list.FindByState(c.Request.Context(), middleware.ClaimsFrom(c), c.Param("estado"), p)
	h.respondPage(c, p, page, err)
}

func (h *AppointmentHandler) ListByPatient(c *gin.Context) {
	p := listing.FromValues(c.Request.URL.Query())
	page, err := h.list.FindByPatient(c.Request.Context(), middleware.ClaimsFrom(c), c.Param("dni"), p)
	h.respondPage(c, p, page, err)
}

func (h *AppointmentHandler) ListByDoctor(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	p := listing.FromValues(c.Request.URL.Query())
	page, err := h.list.FindByDoctor(c.Request.Context(), middleware.ClaimsFrom(c), id, p)
	h.respondPage(c, p, page, err)
}

// ListByDate is the daily agenda for ?fecha=YYYY-MM-DD in clinic time.
func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	date, err := queryDate(c, "fecha", h.loc)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	rows, err := h.byDate.Execute(c.Request.Context(), middleware.ClaimsFrom(c), date)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, rows)
}

// ListByRange covers ?desde= through ?hasta= inclusive, both YYYY-MM-DD.
func (h *AppointmentHandler) ListByRange(c *gin.Context) {
	from, err := queryDate(c, "desde", h.loc)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	to, err := queryDate(c, "hasta", h.loc)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	p := listing.FromValues(c.Request.URL.Query())
	page, err := h.list.FindByDateRange(
		c.Request.Context(),
		middleware.ClaimsFrom(c),
		from,
		to.AddDate(0, 0, 1),
		p,
	)
	h.respondPage(c, p, page, err)
}

// ======================================================
// SINGLE
// ======================================================

func (h *AppointmentHandler) Get(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	ap, err := h.get.Execute(c.Request.Context(), middleware.ClaimsFrom(c), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Update(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	var req UpdateAppointmentRequest
	if !bindJSON(c, &req) {
		return
	}

	ap, err := h.update.Execute(c.Request.Context(), middleware.ClaimsFrom(c), id, appointmentUC.UpdateAppointmentInput{
		PatientID:   req.PatientID,
		DoctorID:    req.DoctorID,
		OfficeID:    req.OfficeID,
		DateTime:    req.DateTime,
		DurationMin: req.DurationMin,
		State:       req.State,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, ap)
}

// ======================================================
// STATE CHANGES
// ======================================================

func (h *AppointmentHandler) Confirm(c *gin.Context) {
	h.transition(c, h.confirm.Execute)
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	h.transition(c, h.cancel.Execute)
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	h.transition(c, h.complete.Execute)
}

func (h *AppointmentHandler) Restore(c *gin.Context) {
	h.transition(c, h.restore.Execute)
}

func (h *AppointmentHandler) Delete(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	if err := h.remove.Execute(c.Request.Context(), middleware.ClaimsFrom(c), id); err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": id, "active": false})
}

type transitionFunc func(ctx context.Context, actor *access.Claims, id uint) (*models.Appointment, error)

func (h *AppointmentHandler) transition(c *gin.Context, fn transitionFunc) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	ap, err := fn(c.Request.Context(), middleware.ClaimsFrom(c), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, ap)
}
