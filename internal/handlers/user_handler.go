package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/turnera-api/internal/audit"
	"github.com/BruksfildServices01/turnera-api/internal/httperr"
	"github.com/BruksfildServices01/turnera-api/internal/httpresp"
	"github.com/BruksfildServices01/turnera-api/internal/infra/repository"
	"github.com/BruksfildServices01/turnera-api/internal/listing"
	"github.com/BruksfildServices01/turnera-api/internal/middleware"
	"github.com/BruksfildServices01/turnera-api/internal/models"
	authUC "github.com/BruksfildServices01/turnera-api/internal/usecase/auth"
)

// UserHandler is the admin user management. Creation goes through the
// credential service so passwords are hashed and references validated.
type UserHandler struct {
	catalog[models.User]
	register   *authUC.Register
	updateUser *authUC.UpdateUser
}

func NewUserHandler(
	store *repository.LifecycleStore[models.User],
	register *authUC.Register,
	updateUser *authUC.UpdateUser,
	d *audit.Dispatcher,
) *UserHandler {
	return &UserHandler{
		catalog: catalog[models.User]{
			store:    store,
			audit:    d,
			entity:   "user",
			notFound: httperr.ErrNotFound("user_not_found", "Usuario no encontrado."),
			conflict: httperr.ErrConflict("email_taken", "El email ya está registrado."),
		},
		register:   register,
		updateUser: updateUser,
	}
}

type CreateUserRequest struct {
	Email     string `json:"email" binding:"required,email,max=100"`
	Password  string `json:"password" binding:"required,min=6"`
	Name      string `json:"name" binding:"max=100"`
	Role      string `json:"role" binding:"required"`
	Reference string `json:"reference"`
}

type UpdateUserRequest struct {
	Name      *string `json:"name" binding:"omitempty,max=100"`
	Email     *string `json:"email" binding:"omitempty,email,max=100"`
	Password  *string `json:"password" binding:"omitempty,min=6"`
	Role      *string `json:"role"`
	Reference *string `json:"reference"`
}

var errSelfDeactivate = httperr.ErrInvalid("cannot_deactivate_self", "No puede desactivar su propio usuario.")

func (h *UserHandler) Create(c *gin.Context) {
	var req CreateUserRequest
	if !bindJSON(c, &req) {
		return
	}

	session, err := h.register.Execute(c.Request.Context(), authUC.RegisterInput{
		Email:     req.Email,
		Password:  req.Password,
		Name:      req.Name,
		Role:      req.Role,
		Reference: req.Reference,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, session.User)
}

func (h *UserHandler) List(c *gin.Context) {
	h.list(c, nil, callerVisibility(c))
}

func (h *UserHandler) ListInactive(c *gin.Context) {
	h.list(c, nil, listing.InactiveOnly)
}

func (h *UserHandler) Get(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	h.get(c, id)
}

func (h *UserHandler) Update(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	var req UpdateUserRequest
	if !bindJSON(c, &req) {
		return
	}

	view, err := h.updateUser.Execute(c.Request.Context(), middleware.ClaimsFrom(c), id, authUC.UpdateUserInput{
		Name:      req.Name,
		Email:     req.Email,
		Password:  req.Password,
		Role:      req.Role,
		Reference: req.Reference,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, view)
}

func (h *UserHandler) Delete(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	if claims := middleware.ClaimsFrom(c); claims != nil && claims.UserID == id {
		httperr.Respond(c, errSelfDeactivate)
		return
	}
	h.softDelete(c, id, c.Param("id"))
}

func (h *UserHandler) Restore(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	h.restore(c, id, c.Param("id"))
}
