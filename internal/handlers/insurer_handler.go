package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/turnera-api/internal/audit"
	"github.com/BruksfildServices01/turnera-api/internal/httperr"
	"github.com/BruksfildServices01/turnera-api/internal/infra/repository"
	"github.com/BruksfildServices01/turnera-api/internal/listing"
	"github.com/BruksfildServices01/turnera-api/internal/models"
)

// InsurerHandler serves the obras sociales, keyed by their code.
type InsurerHandler struct {
	catalog[models.Insurer]
	coverages *repository.LifecycleStore[models.Coverage]
}

func NewInsurerHandler(
	insurers *repository.LifecycleStore[models.Insurer],
	coverages *repository.LifecycleStore[models.Coverage],
	d *audit.Dispatcher,
) *InsurerHandler {
	return &InsurerHandler{
		catalog: catalog[models.Insurer]{
			store:    insurers,
			audit:    d,
			entity:   "insurer",
			notFound: httperr.ErrNotFound("insurer_not_found", "Obra social no encontrada."),
			conflict: httperr.ErrConflict("insurer_exists", "Ya existe una obra social con ese código o email."),
		},
		coverages: coverages,
	}
}

type CreateInsurerRequest struct {
	Code       string `json:"code" binding:"required,max=6"`
	Name       string `json:"name" binding:"required,max=100"`
	Phone      string `json:"phone" binding:"max=20"`
	Email      string `json:"email" binding:"omitempty,email,max=100"`
	CoverageID *uint  `json:"coverage_id"`
	Active     *bool  `json:"active"`
}

type UpdateInsurerRequest struct {
	Name       *string `json:"name" binding:"omitempty,max=100"`
	Phone      *string `json:"phone" binding:"omitempty,max=20"`
	Email      *string `json:"email" binding:"omitempty,email,max=100"`
	CoverageID *uint   `json:"coverage_id"`
	Active     *bool   `json:"active"`
}

func (h *InsurerHandler) checkCoverage(c *gin.Context, id *uint) error {
	if id == nil {
		return nil
	}
	if _, err := h.coverages.FindByKey(c.Request.Context(), *id, listing.IncludeInactive); err != nil {
		return errUnknownCoverage
	}
	return nil
}

func (h *InsurerHandler) Create(c *gin.Context) {
	var req CreateInsurerRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.checkCoverage(c, req.CoverageID); err != nil {
		httperr.Respond(c, err)
		return
	}

	ins := models.Insurer{
		Code:       strings.ToUpper(strings.TrimSpace(req.Code)),
		Name:       req.Name,
		Phone:      req.Phone,
		Email:      req.Email,
		CoverageID: req.CoverageID,
		Lifecycle:  models.Lifecycle{Active: req.Active == nil || *req.Active},
	}

	h.create(c, &ins,
		func(i *models.Insurer) any { return i.Code },
		func(i *models.Insurer) string { return i.Code },
	)
}

func (h *InsurerHandler) List(c *gin.Context) {
	h.list(c, nil, callerVisibility(c))
}

func (h *InsurerHandler) ListActive(c *gin.Context) {
	h.list(c, nil, listing.ActiveOnly)
}

func (h *InsurerHandler) Get(c *gin.Context) {
	h.get(c, strings.ToUpper(c.Param("code")))
}

func (h *InsurerHandler) Update(c *gin.Context) {
	code := strings.ToUpper(c.Param("code"))

	var req UpdateInsurerRequest
	if !bindJSON(c, &req) {
		return
	}

	ins, ok := h.load(c, code)
	if !ok {
		return
	}
	if err := h.checkCoverage(c, req.CoverageID); err != nil {
		httperr.Respond(c, err)
		return
	}

	if req.Name != nil {
		ins.Name = *req.Name
	}
	if req.Phone != nil {
		ins.Phone = *req.Phone
	}
	if req.Email != nil {
		ins.Email = *req.Email
	}
	if req.CoverageID != nil {
		ins.CoverageID = req.CoverageID
		ins.Coverage = nil
	}
	if req.Active != nil {
		ins.Active = *req.Active
	}

	h.update(c, ins, code, code)
}

func (h *InsurerHandler) Delete(c *gin.Context) {
	code := strings.ToUpper(c.Param("code"))
	h.softDelete(c, code, code)
}

func (h *InsurerHandler) Restore(c *gin.Context) {
	code := strings.ToUpper(c.Param("code"))
	h.restore(c, code, code)
}
