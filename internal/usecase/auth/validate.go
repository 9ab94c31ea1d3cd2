package auth

import (
	"context"
	"errors"

	"github.com/BruksfildServices01/turnera-api/internal/domain/identity"
	"github.com/BruksfildServices01/turnera-api/internal/listing"
	"github.com/BruksfildServices01/turnera-api/internal/models"
)

// Validate re-fetches the identity behind a token. Inactive or deleted
// identities are not found, which forces a new login.
type Validate struct {
	repo identity.Repository
}

func NewValidate(repo identity.Repository) *Validate {
	return &Validate{repo: repo}
}

func (uc *Validate) Execute(ctx context.Context, userID uint) (*models.User, error) {
	user, err := uc.repo.FindByID(ctx, userID, listing.ActiveOnly)
	if err != nil {
		if errors.Is(err, identity.ErrUserNotFound) {
			return nil, errUserNotFound
		}
		return nil, err
	}
	return user, nil
}
