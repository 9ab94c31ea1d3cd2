package auth

import (
	"time"

	"github.com/BruksfildServices01/turnera-api/internal/access"
	"github.com/BruksfildServices01/turnera-api/internal/httperr"
	"github.com/BruksfildServices01/turnera-api/internal/models"
)

// TokenIssuer signs session tokens for authenticated identities.
type TokenIssuer interface {
	Issue(c access.Claims) (string, error)
}

// UserView is the redacted user projection returned to callers.
type UserView struct {
	ID        uint      `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	Reference string    `json:"reference,omitempty"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

type Session struct {
	Token string   `json:"access_token"`
	User  UserView `json:"user"`
}

func ViewOf(u *models.User) UserView {
	return UserView{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		Reference: u.Reference,
		Active:    u.Active,
		CreatedAt: u.CreatedAt,
	}
}

func ClaimsOf(u *models.User) access.Claims {
	return access.Claims{
		UserID:    u.ID,
		Email:     u.Email,
		Role:      access.Role(u.Role),
		Reference: u.Reference,
	}
}

func newSession(tokens TokenIssuer, u *models.User) (*Session, error) {
	tok, err := tokens.Issue(ClaimsOf(u))
	if err != nil {
		return nil, err
	}
	return &Session{Token: tok, User: ViewOf(u)}, nil
}

var (
	errInvalidCredentials = httperr.ErrUnauthorized("invalid_credentials", "Credenciales inválidas.")
	errInactiveUser       = httperr.ErrUnauthorized("inactive_user", "Usuario inactivo.")
	errEmailTaken         = httperr.ErrConflict("email_already_registered", "El email ya está registrado.")
	errUserNotFound       = httperr.ErrNotFound("user_not_found", "Usuario no encontrado.")
	errInvalidEmailDomain = httperr.ErrInvalid("invalid_email_domain", "El dominio del email no existe.")
)
