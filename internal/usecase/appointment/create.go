package appointment

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/BruksfildServices01/turnera-api/internal/access"
	"github.com/BruksfildServices01/turnera-api/internal/audit"
	domain "github.com/BruksfildServices01/turnera-api/internal/domain/appointment"
	"github.com/BruksfildServices01/turnera-api/internal/listing"
	"github.com/BruksfildServices01/turnera-api/internal/lock"
	"github.com/BruksfildServices01/turnera-api/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	Actor *access.Claims

	PatientID string
	DoctorID  uint
	OfficeID  uint

	// DateTime is RFC3339 or a naive local date-time in clinic time.
	DateTime string

	DurationMin *int
	State       *string
}

type Options struct {
	Location *time.Location

	// Strict makes pending bookings block the slot as well.
	Strict bool
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo   domain.Repository
	locker lock.Locker
	audit  *audit.Dispatcher
	opts   Options
}

func NewCreateAppointment(
	repo domain.Repository,
	locker lock.Locker,
	audit *audit.Dispatcher,
	opts Options,
) *CreateAppointment {
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if locker == nil {
		locker = lock.NewLocalLocker()
	}
	return &CreateAppointment{
		repo:   repo,
		locker: locker,
		audit:  audit,
		opts:   opts,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// 1. Fecha / hora normalizada
	// --------------------------------------------------
	at, err := domain.ParseDateTime(in.DateTime, uc.opts.Location)
	if err != nil {
		return nil, errInvalidDateTime
	}

	state := domain.InitialStatus()
	if in.State != nil && *in.State != "" {
		s, ok := domain.ParseStatus(*in.State)
		if !ok {
			return nil, errInvalidState
		}
		state = s
	}

	duration := domain.DefaultDurationMinutes
	if in.DurationMin != nil {
		if *in.DurationMin <= 0 {
			return nil, errInvalidDuration
		}
		duration = *in.DurationMin
	}

	// --------------------------------------------------
	// 2. Un paciente sólo reserva para sí mismo
	// --------------------------------------------------
	if in.Actor != nil && in.Actor.Role == access.RolePaciente {
		if err := access.RequireOwnership(in.Actor, in.PatientID); err != nil {
			return nil, err
		}
	}

	// --------------------------------------------------
	// 3. Paciente, doctor y consultorio
	// --------------------------------------------------
	if _, err := uc.repo.GetPatient(ctx, in.PatientID); err != nil {
		return nil, mapDomainError(err)
	}
	if _, err := uc.repo.GetDoctor(ctx, in.DoctorID); err != nil {
		return nil, mapDomainError(err)
	}
	if _, err := uc.repo.GetOffice(ctx, in.OfficeID); err != nil {
		return nil, mapDomainError(err)
	}

	ap := &models.Appointment{
		PatientID:   in.PatientID,
		DoctorID:    in.DoctorID,
		OfficeID:    in.OfficeID,
		DateTime:    at,
		DurationMin: duration,
		State:       string(state),
		Lifecycle:   models.Lifecycle{Active: true},
	}

	// --------------------------------------------------
	// 4. Conflicto + creación bajo lock del slot
	// --------------------------------------------------
	key := lock.SlotKey(in.DoctorID, in.OfficeID, at)
	err = uc.locker.WithLock(ctx, key, func(ctx context.Context) error {
		taken, err := uc.repo.HasSlotConflict(
			ctx,
			in.DoctorID,
			in.OfficeID,
			at,
			domain.BlockingStatuses(uc.opts.Strict),
		)
		if err != nil {
			return err
		}
		if taken {
			return domain.ErrSlotTaken
		}
		return uc.repo.CreateAppointment(ctx, ap)
	})

	if err != nil {
		if errors.Is(err, domain.ErrSlotTaken) || errors.Is(err, lock.ErrLockNotAcquired) {
			log.Warn().
				Uint("doctor_id", in.DoctorID).
				Uint("office_id", in.OfficeID).
				Time("date_time", at).
				Err(err).
				Msg("appointment slot conflict")

			uc.audit.Dispatch(audit.Event{
				UserID: actorID(in.Actor),
				Action: "appointment_conflict",
				Entity: "appointment",
				Metadata: map[string]any{
					"doctor_id": in.DoctorID,
					"office_id": in.OfficeID,
					"date_time": at,
				},
			})

			if errors.Is(err, lock.ErrLockNotAcquired) {
				return nil, errSlotLocked
			}
			return nil, errSlotConfirmed
		}
		return nil, mapDomainError(err)
	}

	// --------------------------------------------------
	// 5. Auditoría
	// --------------------------------------------------
	uc.audit.Dispatch(audit.Event{
		UserID:   actorID(in.Actor),
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: idString(ap.ID),
		Metadata: map[string]any{"state": ap.State},
	})

	created, err := uc.repo.GetAppointment(ctx, ap.ID, listing.IncludeInactive)
	if err != nil {
		return nil, mapDomainError(err)
	}
	return created, nil
}
