package appointment

import (
	"context"

	"github.com/BruksfildServices01/turnera-api/internal/access"
	"github.com/BruksfildServices01/turnera-api/internal/audit"
	domain "github.com/BruksfildServices01/turnera-api/internal/domain/appointment"
	"github.com/BruksfildServices01/turnera-api/internal/listing"
)

// SoftDeleteAppointment deactivates an appointment whatever its state.
// Deleting an already inactive appointment succeeds.
type SoftDeleteAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewSoftDeleteAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *SoftDeleteAppointment {
	return &SoftDeleteAppointment{repo: repo, audit: audit}
}

func (uc *SoftDeleteAppointment) Execute(
	ctx context.Context,
	actor *access.Claims,
	id uint,
) error {

	ap, err := uc.repo.GetAppointment(ctx, id, listing.IncludeInactive)
	if err != nil {
		return mapDomainError(err)
	}

	if !ap.IsActive() {
		return nil
	}

	ap.Deactivate()
	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return mapDomainError(err)
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   actorID(actor),
		Action:   "appointment_deleted",
		Entity:   "appointment",
		EntityID: idString(ap.ID),
	})

	return nil
}
