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
// LOOKUP TABLES
// ======================================================

// LookupHandler serves the name-only tables (specialties and coverages),
// which are hard deleted.
type LookupHandler[T any] struct {
	catalog[T]
	build func(id uint, name string) T
	id    func(*T) uint
	set   func(*T, string)
}

type LookupRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

func NewSpecialtyHandler(store *repository.LifecycleStore[models.Specialty], d *audit.Dispatcher) *LookupHandler[models.Specialty] {
	return &LookupHandler[models.Specialty]{
		catalog: catalog[models.Specialty]{
			store:    store,
			audit:    d,
			entity:   "specialty",
			notFound: httperr.ErrNotFound("specialty_not_found", "Especialidad no encontrada."),
			conflict: httperr.ErrConflict("specialty_exists", "Ya existe una especialidad con ese nombre."),
		},
		build: func(id uint, name string) models.Specialty { return models.Specialty{ID: id, Name: name} },
		id:    func(s *models.Specialty) uint { return s.ID },
		set:   func(s *models.Specialty, name string) { s.Name = name },
	}
}

func NewCoverageHandler(store *repository.LifecycleStore[models.Coverage], d *audit.Dispatcher) *LookupHandler[models.Coverage] {
	return &LookupHandler[models.Coverage]{
		catalog: catalog[models.Coverage]{
			store:    store,
			audit:    d,
			entity:   "coverage",
			notFound: httperr.ErrNotFound("coverage_not_found", "Cobertura no encontrada."),
			conflict: httperr.ErrConflict("coverage_exists", "Ya existe una cobertura con ese nombre."),
		},
		build: func(id uint, name string) models.Coverage { return models.Coverage{ID: id, Name: name} },
		id:    func(c *models.Coverage) uint { return c.ID },
		set:   func(c *models.Coverage, name string) { c.Name = name },
	}
}

func (h *LookupHandler[T]) Create(c *gin.Context) {
	var req LookupRequest
	if !bindJSON(c, &req) {
		return
	}

	v := h.build(0, req.Name)
	h.create(c, &v,
		func(v *T) any { return h.id(v) },
		func(v *T) string { return strconv.FormatUint(uint64(h.id(v)), 10) },
	)
}

func (h *LookupHandler[T]) List(c *gin.Context) {
	h.list(c, nil, listing.IncludeInactive)
}

func (h *LookupHandler[T]) Get(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	h.get(c, id)
}

func (h *LookupHandler[T]) Update(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	var req LookupRequest
	if !bindJSON(c, &req) {
		return
	}

	v, ok := h.load(c, id)
	if !ok {
		return
	}
	h.set(v, req.Name)

	h.update(c, v, id, c.Param("id"))
}

func (h *LookupHandler[T]) Delete(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	h.hardDelete(c, id, c.Param("id"))
}
