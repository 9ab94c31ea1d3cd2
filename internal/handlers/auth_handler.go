package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/turnera-api/internal/access"
	"github.com/BruksfildServices01/turnera-api/internal/httperr"
	"github.com/BruksfildServices01/turnera-api/internal/httpresp"
	"github.com/BruksfildServices01/turnera-api/internal/middleware"
	authUC "github.com/BruksfildServices01/turnera-api/internal/usecase/auth"
)

type AuthHandler struct {
	register *authUC.Register
	login    *authUC.Login
	me       *authUC.Me
}

func NewAuthHandler(register *authUC.Register, login *authUC.Login, me *authUC.Me) *AuthHandler {
	return &AuthHandler{register: register, login: login, me: me}
}

// --------- Requests ---------

type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email,max=100"`
	Password  string `json:"password" binding:"required,min=6"`
	Name      string `json:"name" binding:"max=100"`
	Role      string `json:"role"`
	Reference string `json:"reference"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

var errSelfRegisterRole = httperr.ErrForbidden(
	"role_not_allowed",
	"El registro público sólo admite pacientes; los demás usuarios los crea un administrador.",
)

// --------- Handlers ---------

// Register is the public sign-up. Only patients register themselves.
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	if req.Role != "" {
		role, ok := access.ParseRole(req.Role)
		if ok && role != access.RolePaciente {
			httperr.Respond(c, errSelfRegisterRole)
			return
		}
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

	httpresp.Created(c, session)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	session, err := h.login.Execute(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, session)
}

func (h *AuthHandler) Me(c *gin.Context) {
	view, err := h.me.Execute(c.Request.Context(), middleware.ClaimsFrom(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, view)
}
