package appointment

import (
	"context"

	"github.com/BruksfildServices01/turnera-api/internal/access"
	domain "github.com/BruksfildServices01/turnera-api/internal/domain/appointment"
	"github.com/BruksfildServices01/turnera-api/internal/models"
)

type GetAppointment struct {
	repo domain.Repository
}

func NewGetAppointment(repo domain.Repository) *GetAppointment {
	return &GetAppointment{repo: repo}
}

// Execute hides inactive appointments from non-admins and keeps doctors and
// patients to their own.
func (uc *GetAppointment) Execute(
	ctx context.Context,
	actor *access.Claims,
	id uint,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, id, visibilityFor(actor))
	if err != nil {
		return nil, mapDomainError(err)
	}

	if err := requireOwner(actor, ap); err != nil {
		return nil, err
	}

	return ap, nil
}
