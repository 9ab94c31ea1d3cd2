package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/turnera-api/internal/access"
	"github.com/BruksfildServices01/turnera-api/internal/audit"
	domain "github.com/BruksfildServices01/turnera-api/internal/domain/appointment"
	"github.com/BruksfildServices01/turnera-api/internal/listing"
	"github.com/BruksfildServices01/turnera-api/internal/models"
)

type UpdateAppointmentInput struct {
	PatientID   *string
	DoctorID    *uint
	OfficeID    *uint
	DateTime    *string
	DurationMin *int
	State       *string
}

// UpdateAppointment overwrites the given fields. Rescheduling does not re-run
// the slot check; the confirmed-slot index still rejects a second confirmed
// booking at the same instant.
type UpdateAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	loc   *time.Location
}

func NewUpdateAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
	loc *time.Location,
) *UpdateAppointment {
	if loc == nil {
		loc = time.UTC
	}
	return &UpdateAppointment{repo: repo, audit: audit, loc: loc}
}

func (uc *UpdateAppointment) Execute(
	ctx context.Context,
	actor *access.Claims,
	id uint,
	in UpdateAppointmentInput,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, id, visibilityFor(actor))
	if err != nil {
		return nil, mapDomainError(err)
	}

	changed := map[string]any{}

	if in.PatientID != nil && *in.PatientID != ap.PatientID {
		if _, err := uc.repo.GetPatient(ctx, *in.PatientID); err != nil {
			return nil, mapDomainError(err)
		}
		ap.PatientID = *in.PatientID
		ap.Patient = nil
		changed["patient_id"] = ap.PatientID
	}
	if in.DoctorID != nil && *in.DoctorID != ap.DoctorID {
		if _, err := uc.repo.GetDoctor(ctx, *in.DoctorID); err != nil {
			return nil, mapDomainError(err)
		}
		ap.DoctorID = *in.DoctorID
		ap.Doctor = nil
		changed["doctor_id"] = ap.DoctorID
	}
	if in.OfficeID != nil && *in.OfficeID != ap.OfficeID {
		if _, err := uc.repo.GetOffice(ctx, *in.OfficeID); err != nil {
			return nil, mapDomainError(err)
		}
		ap.OfficeID = *in.OfficeID
		ap.Office = nil
		changed["office_id"] = ap.OfficeID
	}
	if in.DateTime != nil {
		at, err := domain.ParseDateTime(*in.DateTime, uc.loc)
		if err != nil {
			return nil, errInvalidDateTime
		}
		ap.DateTime = at
		changed["date_time"] = at
	}
	if in.DurationMin != nil {
		if *in.DurationMin <= 0 {
			return nil, errInvalidDuration
		}
		ap.DurationMin = *in.DurationMin
		changed["duration_min"] = ap.DurationMin
	}
	if in.State != nil {
		s, ok := domain.ParseStatus(*in.State)
		if !ok {
			return nil, errInvalidState
		}
		domain.Transition(ap, s)
		changed["state"] = ap.State
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, mapDomainError(err)
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   actorID(actor),
		Action:   "appointment_updated",
		Entity:   "appointment",
		EntityID: idString(ap.ID),
		Metadata: changed,
	})

	updated, err := uc.repo.GetAppointment(ctx, id, listing.IncludeInactive)
	if err != nil {
		return nil, mapDomainError(err)
	}
	return updated, nil
}
