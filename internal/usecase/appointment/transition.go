package appointment

import (
	"context"

	"github.com/BruksfildServices01/turnera-api/internal/access"
	"github.com/BruksfildServices01/turnera-api/internal/audit"
	domain "github.com/BruksfildServices01/turnera-api/internal/domain/appointment"
	"github.com/BruksfildServices01/turnera-api/internal/listing"
	"github.com/BruksfildServices01/turnera-api/internal/models"
)

// stateChange is shared by the confirm, cancel and complete operations.
// Transitions are unguarded: any state may move to the target.
type stateChange struct {
	repo   domain.Repository
	audit  *audit.Dispatcher
	apply  func(*models.Appointment)
	action string

	// owned restricts doctors and patients to their own appointments.
	owned bool
}

func (s *stateChange) execute(
	ctx context.Context,
	actor *access.Claims,
	id uint,
) (*models.Appointment, error) {

	ap, err := s.repo.GetAppointment(ctx, id, visibilityFor(actor))
	if err != nil {
		return nil, mapDomainError(err)
	}

	if s.owned {
		if err := requireOwner(actor, ap); err != nil {
			return nil, err
		}
	}

	from := ap.State
	s.apply(ap)

	if err := s.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, mapDomainError(err)
	}

	s.audit.Dispatch(audit.Event{
		UserID:   actorID(actor),
		Action:   s.action,
		Entity:   "appointment",
		EntityID: idString(ap.ID),
		Metadata: map[string]any{"from": from, "to": ap.State},
	})

	updated, err := s.repo.GetAppointment(ctx, id, listing.IncludeInactive)
	if err != nil {
		return nil, mapDomainError(err)
	}
	return updated, nil
}
