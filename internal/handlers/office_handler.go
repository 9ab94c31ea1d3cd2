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

type OfficeHandler struct {
	catalog[models.Office]
}

func NewOfficeHandler(store *repository.LifecycleStore[models.Office], d *audit.Dispatcher) *OfficeHandler {
	return &OfficeHandler{catalog[models.Office]{
		store:    store,
		audit:    d,
		entity:   "office",
		notFound: httperr.ErrNotFound("office_not_found", "Consultorio no encontrado."),
	}}
}

type OfficeRequest struct {
	Name   string `json:"name" binding:"required,max=100"`
	Active *bool  `json:"active"`
}

func (h *OfficeHandler) Create(c *gin.Context) {
	var req OfficeRequest
	if !bindJSON(c, &req) {
		return
	}

	o := models.Office{
		Name:      req.Name,
		Lifecycle: models.Lifecycle{Active: req.Active == nil || *req.Active},
	}

	h.create(c, &o,
		func(o *models.Office) any { return o.ID },
		func(o *models.Office) string { return strconv.FormatUint(uint64(o.ID), 10) },
	)
}

// List shows inactive offices to admins only.
func (h *OfficeHandler) List(c *gin.Context) {
	h.list(c, nil, callerVisibility(c))
}

func (h *OfficeHandler) ListActive(c *gin.Context) {
	h.list(c, nil, listing.ActiveOnly)
}

func (h *OfficeHandler) ListInactive(c *gin.Context) {
	h.list(c, nil, listing.InactiveOnly)
}

func (h *OfficeHandler) Get(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	h.get(c, id)
}

func (h *OfficeHandler) Update(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	var req OfficeRequest
	if !bindJSON(c, &req) {
		return
	}

	o, ok := h.load(c, id)
	if !ok {
		return
	}
	o.Name = req.Name
	if req.Active != nil {
		o.Active = *req.Active
	}

	h.update(c, o, id, c.Param("id"))
}

func (h *OfficeHandler) Delete(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	h.softDelete(c, id, c.Param("id"))
}

func (h *OfficeHandler) Restore(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	h.restore(c, id, c.Param("id"))
}
