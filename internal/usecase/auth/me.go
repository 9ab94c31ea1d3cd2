package auth

import (
	"context"

	"github.com/BruksfildServices01/turnera-api/internal/access"
	"github.com/BruksfildServices01/turnera-api/internal/httperr"
)

type Me struct {
	validate *Validate
}

func NewMe(validate *Validate) *Me {
	return &Me{validate: validate}
}

func (uc *Me) Execute(ctx context.Context, claims *access.Claims) (*UserView, error) {
	if claims == nil {
		return nil, httperr.ErrUnauthorized("unauthenticated", "No autenticado.")
	}
	user, err := uc.validate.Execute(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	view := ViewOf(user)
	return &view, nil
}
