package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/turnera-api/internal/audit"
	domain "github.com/BruksfildServices01/turnera-api/internal/domain/appointment"
	"github.com/BruksfildServices01/turnera-api/internal/httperr"
	"github.com/BruksfildServices01/turnera-api/internal/httpresp"
	"github.com/BruksfildServices01/turnera-api/internal/infra/repository"
	"github.com/BruksfildServices01/turnera-api/internal/listing"
	"github.com/BruksfildServices01/turnera-api/internal/models"
	appointmentUC "github.com/BruksfildServices01/turnera-api/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

// ScheduleHandler manages the weekly availability templates
// (horarios disponibles) and answers availability for a day.
type ScheduleHandler struct {
	catalog[models.Schedule]
	doctors      *repository.LifecycleStore[models.Doctor]
	offices      *repository.LifecycleStore[models.Office]
	availability *appointmentUC.GetAvailability
	loc          *time.Location
}

func NewScheduleHandler(
	schedules *repository.LifecycleStore[models.Schedule],
	doctors *repository.LifecycleStore[models.Doctor],
	offices *repository.LifecycleStore[models.Office],
	availability *appointmentUC.GetAvailability,
	d *audit.Dispatcher,
	loc *time.Location,
) *ScheduleHandler {
	return &ScheduleHandler{
		catalog: catalog[models.Schedule]{
			store:    schedules,
			audit:    d,
			entity:   "schedule",
			notFound: httperr.ErrNotFound("schedule_not_found", "Horario no encontrado."),
		},
		doctors:      doctors,
		offices:      offices,
		availability: availability,
		loc:          loc,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateScheduleRequest struct {
	DoctorID    uint   `json:"doctor_id" binding:"required"`
	OfficeID    uint   `json:"office_id" binding:"required"`
	Weekday     string `json:"weekday" binding:"required"`
	StartTime   string `json:"start_time" binding:"required"`
	EndTime     string `json:"end_time" binding:"required"`
	SlotMinutes int    `json:"slot_minutes" binding:"omitempty,min=5,max=240"`
}

type UpdateScheduleRequest struct {
	DoctorID    *uint   `json:"doctor_id"`
	OfficeID    *uint   `json:"office_id"`
	Weekday     *string `json:"weekday"`
	StartTime   *string `json:"start_time"`
	EndTime     *string `json:"end_time"`
	SlotMinutes *int    `json:"slot_minutes" binding:"omitempty,min=5,max=240"`
}

var (
	errInvalidWeekday = httperr.ErrInvalid("invalid_weekday", "Día inválido, use lunes a domingo.")
	errInvalidWindow  = httperr.ErrInvalid("invalid_time_window", "Horario inválido, use HH:MM con inicio anterior al fin.")
	errScheduleDoctor = httperr.ErrNotFound("doctor_not_found", "Doctor no encontrado.")
	errScheduleOffice = httperr.ErrNotFound("office_not_found", "Consultorio no encontrado.")
)

// validate normalizes the weekday and checks the window and references.
func (h *ScheduleHandler) validate(c *gin.Context, s *models.Schedule) error {
	day, ok := domain.ParseWeekday(s.Weekday)
	if !ok {
		return errInvalidWeekday
	}
	s.Weekday = day

	if err := domain.ValidateWindow(s.StartTime, s.EndTime); err != nil {
		return errInvalidWindow
	}
	if s.SlotMinutes <= 0 {
		s.SlotMinutes = domain.DefaultDurationMinutes
	}

	ctx := c.Request.Context()
	if _, err := h.doctors.FindByKey(ctx, s.DoctorID, listing.ActiveOnly); err != nil {
		return errScheduleDoctor
	}
	if _, err := h.offices.FindByKey(ctx, s.OfficeID, listing.ActiveOnly); err != nil {
		return errScheduleOffice
	}
	return nil
}

// ======================================================
// CRUD
// ======================================================

func (h *ScheduleHandler) Create(c *gin.Context) {
	var req CreateScheduleRequest
	if !bindJSON(c, &req) {
		return
	}

	s := models.Schedule{
		DoctorID:    req.DoctorID,
		OfficeID:    req.OfficeID,
		Weekday:     req.Weekday,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		SlotMinutes: req.SlotMinutes,
	}
	if err := h.validate(c, &s); err != nil {
		httperr.Respond(c, err)
		return
	}

	h.create(c, &s,
		func(s *models.Schedule) any { return s.ID },
		func(s *models.Schedule) string { return strconv.FormatUint(uint64(s.ID), 10) },
	)
}

func (h *ScheduleHandler) List(c *gin.Context) {
	h.list(c, nil, listing.IncludeInactive)
}

func (h *ScheduleHandler) ListByDoctor(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	h.list(c, repository.Criteria{"doctor_id": id}, listing.IncludeInactive)
}

func (h *ScheduleHandler) ListByOffice(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	h.list(c, repository.Criteria{"office_id": id}, listing.IncludeInactive)
}

// ListByWeekday reads the day from ?dia=.
func (h *ScheduleHandler) ListByWeekday(c *gin.Context) {
	day, ok := domain.ParseWeekday(c.Query("dia"))
	if !ok {
		httperr.Respond(c, errInvalidWeekday)
		return
	}
	h.list(c, repository.Criteria{"weekday": day}, listing.IncludeInactive)
}

func (h *ScheduleHandler) Get(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	h.get(c, id)
}

func (h *ScheduleHandler) Update(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	var req UpdateScheduleRequest
	if !bindJSON(c, &req) {
		return
	}

	s, ok := h.load(c, id)
	if !ok {
		return
	}

	if req.DoctorID != nil {
		s.DoctorID = *req.DoctorID
		s.Doctor = nil
	}
	if req.OfficeID != nil {
		s.OfficeID = *req.OfficeID
		s.Office = nil
	}
	if req.Weekday != nil {
		s.Weekday = *req.Weekday
	}
	if req.StartTime != nil {
		s.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		s.EndTime = *req.EndTime
	}
	if req.SlotMinutes != nil {
		s.SlotMinutes = *req.SlotMinutes
	}

	if err := h.validate(c, s); err != nil {
		httperr.Respond(c, err)
		return
	}

	h.update(c, s, id, c.Param("id"))
}

func (h *ScheduleHandler) Delete(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	h.hardDelete(c, id, c.Param("id"))
}

// ======================================================
// AVAILABILITY
// ======================================================

func (h *ScheduleHandler) Availability(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	date, err := queryDate(c, "fecha", h.loc)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	slots, err := h.availability.Execute(c.Request.Context(), domain.AvailabilityInput{
		DoctorID: id,
		Date:     date,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, slots)
}
