package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/turnera-api/internal/audit"
	"github.com/BruksfildServices01/turnera-api/internal/httperr"
	"github.com/BruksfildServices01/turnera-api/internal/infra/repository"
	"github.com/BruksfildServices01/turnera-api/internal/listing"
	"github.com/BruksfildServices01/turnera-api/internal/models"
)

type PatientHandler struct {
	catalog[models.Patient]
	insurers  *repository.LifecycleStore[models.Insurer]
	coverages *repository.LifecycleStore[models.Coverage]
}

func NewPatientHandler(
	patients *repository.LifecycleStore[models.Patient],
	insurers *repository.LifecycleStore[models.Insurer],
	coverages *repository.LifecycleStore[models.Coverage],
	d *audit.Dispatcher,
) *PatientHandler {
	return &PatientHandler{
		catalog: catalog[models.Patient]{
			store:    patients,
			audit:    d,
			entity:   "patient",
			notFound: httperr.ErrNotFound("patient_not_found", "Paciente no encontrado."),
			conflict: httperr.ErrConflict("patient_exists", "Ya existe un paciente con ese DNI."),
		},
		insurers:  insurers,
		coverages: coverages,
	}
}

type CreatePatientRequest struct {
	DNI          string  `json:"dni" binding:"required,numeric,max=9"`
	FirstName    string  `json:"first_name" binding:"required,max=50"`
	LastName     string  `json:"last_name" binding:"required,max=50"`
	BirthDate    string  `json:"birth_date" binding:"required"`
	Address      string  `json:"address" binding:"max=255"`
	Phone        string  `json:"phone" binding:"required,max=15"`
	Email        string  `json:"email" binding:"omitempty,email,max=100"`
	Active       *bool   `json:"active"`
	InsurerCode  *string `json:"insurer_code" binding:"omitempty,max=6"`
	MemberNumber string  `json:"member_number" binding:"max=50"`
	CoverageID   *uint   `json:"coverage_id"`
}

type UpdatePatientRequest struct {
	FirstName    *string `json:"first_name" binding:"omitempty,max=50"`
	LastName     *string `json:"last_name" binding:"omitempty,max=50"`
	BirthDate    *string `json:"birth_date"`
	Address      *string `json:"address" binding:"omitempty,max=255"`
	Phone        *string `json:"phone" binding:"omitempty,max=15"`
	Email        *string `json:"email" binding:"omitempty,email,max=100"`
	Active       *bool   `json:"active"`
	InsurerCode  *string `json:"insurer_code" binding:"omitempty,max=6"`
	MemberNumber *string `json:"member_number" binding:"omitempty,max=50"`
	CoverageID   *uint   `json:"coverage_id"`
}

var (
	errInvalidBirthDate = httperr.ErrInvalid("invalid_birth_date", "Fecha de nacimiento inválida, use YYYY-MM-DD.")
	errUnknownInsurer   = httperr.ErrInvalid("insurer_not_found", "Obra social inexistente o inactiva.")
	errUnknownCoverage  = httperr.ErrInvalid("coverage_not_found", "Cobertura inexistente.")
)

func parseBirthDate(raw string) (*time.Time, error) {
	d, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, errInvalidBirthDate
	}
	return &d, nil
}

// checkRefs verifies the insurer and coverage a patient points at.
func (h *PatientHandler) checkRefs(c *gin.Context, insurer *string, coverage *uint) error {
	ctx := c.Request.Context()
	if insurer != nil && *insurer != "" {
		if _, err := h.insurers.FindByKey(ctx, *insurer, listing.ActiveOnly); err != nil {
			return errUnknownInsurer
		}
	}
	if coverage != nil {
		if _, err := h.coverages.FindByKey(ctx, *coverage, listing.IncludeInactive); err != nil {
			return errUnknownCoverage
		}
	}
	return nil
}

func (h *PatientHandler) Create(c *gin.Context) {
	var req CreatePatientRequest
	if !bindJSON(c, &req) {
		return
	}

	birth, err := parseBirthDate(req.BirthDate)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	if err := h.checkRefs(c, req.InsurerCode, req.CoverageID); err != nil {
		httperr.Respond(c, err)
		return
	}

	p := models.Patient{
		DNI:          req.DNI,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		BirthDate:    birth,
		Address:      req.Address,
		Phone:        req.Phone,
		Email:        req.Email,
		InsurerCode:  req.InsurerCode,
		MemberNumber: req.MemberNumber,
		CoverageID:   req.CoverageID,
		Lifecycle:    models.Lifecycle{Active: req.Active == nil || *req.Active},
	}

	h.create(c, &p,
		func(p *models.Patient) any { return p.DNI },
		func(p *models.Patient) string { return p.DNI },
	)
}

func (h *PatientHandler) List(c *gin.Context) {
	h.list(c, nil, callerVisibility(c))
}

func (h *PatientHandler) ListActive(c *gin.Context) {
	h.list(c, nil, listing.ActiveOnly)
}

func (h *PatientHandler) Get(c *gin.Context) {
	h.get(c, c.Param("dni"))
}

func (h *PatientHandler) Update(c *gin.Context) {
	dni := c.Param("dni")

	var req UpdatePatientRequest
	if !bindJSON(c, &req) {
		return
	}

	p, ok := h.load(c, dni)
	if !ok {
		return
	}

	if err := h.checkRefs(c, req.InsurerCode, req.CoverageID); err != nil {
		httperr.Respond(c, err)
		return
	}

	if req.FirstName != nil {
		p.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		p.LastName = *req.LastName
	}
	if req.BirthDate != nil {
		birth, err := parseBirthDate(*req.BirthDate)
		if err != nil {
			httperr.Respond(c, err)
			return
		}
		p.BirthDate = birth
	}
	if req.Address != nil {
		p.Address = *req.Address
	}
	if req.Phone != nil {
		p.Phone = *req.Phone
	}
	if req.Email != nil {
		p.Email = *req.Email
	}
	if req.Active != nil {
		p.Active = *req.Active
	}
	if req.InsurerCode != nil {
		p.InsurerCode = req.InsurerCode
		p.Insurer = nil
	}
	if req.MemberNumber != nil {
		p.MemberNumber = *req.MemberNumber
	}
	if req.CoverageID != nil {
		p.CoverageID = req.CoverageID
		p.Coverage = nil
	}

	h.update(c, p, dni, dni)
}

func (h *PatientHandler) Delete(c *gin.Context) {
	dni := c.Param("dni")
	h.softDelete(c, dni, dni)
}

func (h *PatientHandler) Restore(c *gin.Context) {
	dni := c.Param("dni")
	h.restore(c, dni, dni)
}
