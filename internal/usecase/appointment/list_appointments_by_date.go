package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/turnera-api/internal/access"
	domain "github.com/BruksfildServices01/turnera-api/internal/domain/appointment"
	"github.com/BruksfildServices01/turnera-api/internal/dto"
)

// ListAppointmentsByDate is the daily agenda: every appointment on a
// calendar day in clinic time, earliest first.
type ListAppointmentsByDate struct {
	repo domain.Repository
	loc  *time.Location
}

func NewListAppointmentsByDate(
	repo domain.Repository,
	loc *time.Location,
) *ListAppointmentsByDate {
	if loc == nil {
		loc = time.UTC
	}
	return &ListAppointmentsByDate{
		repo: repo,
		loc:  loc,
	}
}

func (uc *ListAppointmentsByDate) Execute(
	ctx context.Context,
	actor *access.Claims,
	date time.Time,
) ([]dto.AppointmentListDTO, error) {

	start, end := domain.DayRange(date, uc.loc)
	from, to := start.UTC(), end.UTC()

	appointments, _, err := uc.repo.ListAppointments(ctx, domain.Query{
		From:       &from,
		To:         &to,
		Visibility: visibilityFor(actor),
		OrderBy:    "date_time",
	})
	if err != nil {
		return nil, err
	}

	out := make([]dto.AppointmentListDTO, 0, len(appointments))
	for _, ap := range appointments {
		out = append(out, dto.AppointmentRow(ap, uc.loc))
	}

	return out, nil
}
