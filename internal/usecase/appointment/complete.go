package appointment

import (
	"context"

	"github.com/BruksfildServices01/turnera-api/internal/access"
	"github.com/BruksfildServices01/turnera-api/internal/audit"
	domain "github.com/BruksfildServices01/turnera-api/internal/domain/appointment"
	"github.com/BruksfildServices01/turnera-api/internal/models"
)

type CompleteAppointment struct {
	change stateChange
}

func NewCompleteAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CompleteAppointment {
	return &CompleteAppointment{
		change: stateChange{
			repo:   repo,
			audit:  audit,
			apply:  domain.Complete,
			action: "appointment_completed",
		},
	}
}

func (uc *CompleteAppointment) Execute(
	ctx context.Context,
	actor *access.Claims,
	appointmentID uint,
) (*models.Appointment, error) {
	return uc.change.execute(ctx, actor, appointmentID)
}
