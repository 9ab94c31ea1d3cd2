package appointment

import (
	"errors"
	"strconv"

	"github.com/BruksfildServices01/turnera-api/internal/access"
	domain "github.com/BruksfildServices01/turnera-api/internal/domain/appointment"
	"github.com/BruksfildServices01/turnera-api/internal/httperr"
	"github.com/BruksfildServices01/turnera-api/internal/listing"
	"github.com/BruksfildServices01/turnera-api/internal/models"
)

var (
	errNotFound        = httperr.ErrNotFound("appointment_not_found", "Turno no encontrado.")
	errPatientNotFound = httperr.ErrNotFound("patient_not_found", "Paciente no encontrado.")
	errDoctorNotFound  = httperr.ErrNotFound("doctor_not_found", "Doctor no encontrado.")
	errOfficeNotFound  = httperr.ErrNotFound("office_not_found", "Consultorio no encontrado.")
	errSlotConfirmed   = httperr.ErrConflict("slot_already_confirmed", "Ya existe un turno confirmado para ese doctor, consultorio y horario.")
	errSlotLocked      = httperr.ErrConflict("slot_being_booked", "El horario se está reservando en este momento, intente nuevamente.")
	errInvalidDateTime = httperr.ErrInvalid("invalid_date_time", "Fecha y hora inválidas.")
	errInvalidState    = httperr.ErrInvalid("invalid_state", "Estado de turno inválido.")
	errInvalidDuration = httperr.ErrInvalid("invalid_duration", "La duración debe ser mayor a cero.")
)

// mapDomainError turns store sentinels into business errors.
func mapDomainError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, domain.ErrNotFound):
		return errNotFound
	case errors.Is(err, domain.ErrPatientNotFound):
		return errPatientNotFound
	case errors.Is(err, domain.ErrDoctorNotFound):
		return errDoctorNotFound
	case errors.Is(err, domain.ErrOfficeNotFound):
		return errOfficeNotFound
	case errors.Is(err, domain.ErrSlotTaken):
		return errSlotConfirmed
	default:
		return err
	}
}

// OwnerRef is the reference a doctor or patient must carry to own ap.
func OwnerRef(ap *models.Appointment, role access.Role) string {
	switch role {
	case access.RoleDoctor:
		return strconv.FormatUint(uint64(ap.DoctorID), 10)
	case access.RolePaciente:
		return ap.PatientID
	default:
		return ""
	}
}

func requireOwner(actor *access.Claims, ap *models.Appointment) error {
	if actor == nil {
		return nil
	}
	return access.RequireOwnership(actor, OwnerRef(ap, actor.Role))
}

func visibilityFor(actor *access.Claims) listing.Visibility {
	return listing.VisibilityFor(access.IsPrivileged(actor))
}

func actorID(actor *access.Claims) *uint {
	if actor == nil {
		return nil
	}
	id := actor.UserID
	return &id
}

func idString(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
