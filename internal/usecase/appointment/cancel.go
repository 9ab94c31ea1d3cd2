package appointment

import (
	"context"

	"github.com/BruksfildServices01/turnera-api/internal/access"
	"github.com/BruksfildServices01/turnera-api/internal/audit"
	domain "github.com/BruksfildServices01/turnera-api/internal/domain/appointment"
	"github.com/BruksfildServices01/turnera-api/internal/models"
)

type CancelAppointment struct {
	change stateChange
}

func NewCancelAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CancelAppointment {
	return &CancelAppointment{
		change: stateChange{
			repo:   repo,
			audit:  audit,
			apply:  domain.Cancel,
			action: "appointment_cancelled",
			owned:  true,
		},
	}
}

// Execute cancels the appointment. Doctors and patients may only cancel
// their own.
func (uc *CancelAppointment) Execute(
	ctx context.Context,
	actor *access.Claims,
	appointmentID uint,
) (*models.Appointment, error) {
	return uc.change.execute(ctx, actor, appointmentID)
}
