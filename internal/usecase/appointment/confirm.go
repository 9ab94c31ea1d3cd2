package appointment

import (
	"context"

	"github.com/BruksfildServices01/turnera-api/internal/access"
	"github.com/BruksfildServices01/turnera-api/internal/audit"
	domain "github.com/BruksfildServices01/turnera-api/internal/domain/appointment"
	"github.com/BruksfildServices01/turnera-api/internal/models"
)

type ConfirmAppointment struct {
	change stateChange
}

func NewConfirmAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *ConfirmAppointment {
	return &ConfirmAppointment{
		change: stateChange{
			repo:   repo,
			audit:  audit,
			apply:  domain.Confirm,
			action: "appointment_confirmed",
		},
	}
}

func (uc *ConfirmAppointment) Execute(
	ctx context.Context,
	actor *access.Claims,
	appointmentID uint,
) (*models.Appointment, error) {
	return uc.change.execute(ctx, actor, appointmentID)
}
