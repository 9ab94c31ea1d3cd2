package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/turnera-api/internal/audit"
	"github.com/BruksfildServices01/turnera-api/internal/httperr"
	"github.com/BruksfildServices01/turnera-api/internal/infra/repository"
	"github.com/BruksfildServices01/turnera-api/internal/listing"
	"github.com/BruksfildServices01/turnera-api/internal/models"
)

// ======================================================
// HANDLER
// ======================================================

type DoctorHandler struct {
	catalog[models.Doctor]
	specialties *repository.LifecycleStore[models.Specialty]
}

func NewDoctorHandler(
	doctors *repository.LifecycleStore[models.Doctor],
	specialties *repository.LifecycleStore[models.Specialty],
	d *audit.Dispatcher,
) *DoctorHandler {
	return &DoctorHandler{
		catalog: catalog[models.Doctor]{
			store:    doctors,
			audit:    d,
			entity:   "doctor",
			notFound: httperr.ErrNotFound("doctor_not_found", "Doctor no encontrado."),
			conflict: httperr.ErrConflict("doctor_exists", "Ya existe un doctor con ese email o matrícula."),
		},
		specialties: specialties,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateDoctorRequest struct {
	FirstName     string `json:"first_name" binding:"required,max=50"`
	LastName      string `json:"last_name" binding:"required,max=50"`
	Phone         string `json:"phone" binding:"required,max=15"`
	Email         string `json:"email" binding:"required,email,max=100"`
	LicenseNumber string `json:"license_number" binding:"required,max=20"`
	Active        *bool  `json:"active"`
	SpecialtyIDs  []uint `json:"specialty_ids"`
}

type UpdateDoctorRequest struct {
	FirstName     *string `json:"first_name" binding:"omitempty,max=50"`
	LastName      *string `json:"last_name" binding:"omitempty,max=50"`
	Phone         *string `json:"phone" binding:"omitempty,max=15"`
	Email         *string `json:"email" binding:"omitempty,email,max=100"`
	LicenseNumber *string `json:"license_number" binding:"omitempty,max=20"`
	Active        *bool   `json:"active"`
	SpecialtyIDs  []uint  `json:"specialty_ids"`
}

// ======================================================
// HELPERS
// ======================================================

var errUnknownSpecialty = httperr.ErrInvalid("specialty_not_found", "Alguna especialidad indicada no existe.")

func (h *DoctorHandler) resolveSpecialties(c *gin.Context, ids []uint) ([]models.Specialty, error) {
	seen := map[uint]bool{}
	unique := make([]uint, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			unique = append(unique, id)
		}
	}
	if len(unique) == 0 {
		return []models.Specialty{}, nil
	}

	specs, _, err := h.specialties.FindMany(
		c.Request.Context(),
		repository.Criteria{"id": unique},
		listing.Params{},
		listing.IncludeInactive,
	)
	if err != nil {
		return nil, err
	}
	if len(specs) != len(unique) {
		return nil, errUnknownSpecialty
	}
	return specs, nil
}

// ======================================================
// ENDPOINTS
// ======================================================

func (h *DoctorHandler) Create(c *gin.Context) {
	var req CreateDoctorRequest
	if !bindJSON(c, &req) {
		return
	}

	specs, err := h.resolveSpecialties(c, req.SpecialtyIDs)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	doc := models.Doctor{
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Phone:         req.Phone,
		Email:         req.Email,
		LicenseNumber: req.LicenseNumber,
		Specialties:   specs,
		Lifecycle:     models.Lifecycle{Active: req.Active == nil || *req.Active},
	}

	h.create(c, &doc,
		func(d *models.Doctor) any { return d.ID },
		func(d *models.Doctor) string { return strconv.FormatUint(uint64(d.ID), 10) },
	)
}

// List accepts exact-match filters nombre, apellido, matricula and activo.
func (h *DoctorHandler) List(c *gin.Context) {
	crit := repository.Criteria{}
	if v := c.Query("nombre"); v != "" {
		crit["first_name"] = v
	}
	if v := c.Query("apellido"); v != "" {
		crit["last_name"] = v
	}
	if v := c.Query("matricula"); v != "" {
		crit["license_number"] = v
	}

	vis := callerVisibility(c)
	if v, err := strconv.ParseBool(c.Query("activo")); err == nil {
		crit["active"] = v
		vis = listing.IncludeInactive
	}

	h.list(c, crit, vis)
}

func (h *DoctorHandler) ListActive(c *gin.Context) {
	h.list(c, nil, listing.ActiveOnly)
}

func (h *DoctorHandler) Get(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	h.get(c, id)
}

func (h *DoctorHandler) Update(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	var req UpdateDoctorRequest
	if !bindJSON(c, &req) {
		return
	}

	doc, ok := h.load(c, id)
	if !ok {
		return
	}

	if req.FirstName != nil {
		doc.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		doc.LastName = *req.LastName
	}
	if req.Phone != nil {
		doc.Phone = *req.Phone
	}
	if req.Email != nil {
		doc.Email = *req.Email
	}
	if req.LicenseNumber != nil {
		doc.LicenseNumber = *req.LicenseNumber
	}
	if req.Active != nil {
		doc.Active = *req.Active
	}

	if req.SpecialtyIDs != nil {
		specs, err := h.resolveSpecialties(c, req.SpecialtyIDs)
		if err != nil {
			httperr.Respond(c, err)
			return
		}
		if err := h.store.ReplaceAssociation(c.Request.Context(), doc, "Specialties", specs); err != nil {
			httperr.Respond(c, h.storeError(err))
			return
		}
	}

	h.update(c, doc, id, c.Param("id"))
}

func (h *DoctorHandler) Delete(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	h.softDelete(c, id, c.Param("id"))
}

func (h *DoctorHandler) Restore(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	h.restore(c, id, c.Param("id"))
}
