package appointment

import (
	"context"

	"github.com/BruksfildServices01/turnera-api/internal/access"
	"github.com/BruksfildServices01/turnera-api/internal/audit"
	domain "github.com/BruksfildServices01/turnera-api/internal/domain/appointment"
	"github.com/BruksfildServices01/turnera-api/internal/listing"
	"github.com/BruksfildServices01/turnera-api/internal/models"
)

// RestoreAppointment reactivates a soft-deleted appointment. Active or
// missing ids are not found.
type RestoreAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewRestoreAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *RestoreAppointment {
	return &RestoreAppointment{repo: repo, audit: audit}
}

func (uc *RestoreAppointment) Execute(
	ctx context.Context,
	actor *access.Claims,
	id uint,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, id, listing.InactiveOnly)
	if err != nil {
		return nil, mapDomainError(err)
	}

	ap.Restore()
	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, mapDomainError(err)
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   actorID(actor),
		Action:   "appointment_restored",
		Entity:   "appointment",
		EntityID: idString(ap.ID),
	})

	return ap, nil
}
