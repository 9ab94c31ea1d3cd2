package appointment

import (
	"context"
	"errors"
	"time"

	"github.com/BruksfildServices01/turnera-api/internal/listing"
	"github.com/BruksfildServices01/turnera-api/internal/models"
)

var (
	ErrNotFound        = errors.New("appointment not found")
	ErrPatientNotFound = errors.New("patient not found")
	ErrDoctorNotFound  = errors.New("doctor not found")
	ErrOfficeNotFound  = errors.New("office not found")

	// ErrSlotTaken is returned by the store when the confirmed-slot unique
	// index rejects a write.
	ErrSlotTaken = errors.New("slot already confirmed")
)

// Query selects appointments. Zero-valued fields do not filter.
type Query struct {
	PatientID string
	DoctorID  uint
	State     Status
	From      *time.Time
	To        *time.Time

	// Filter is a substring matched against patient, doctor and office names.
	Filter     string
	Visibility listing.Visibility

	OrderBy string // column, see SortColumns
	Desc    bool

	// Limit 0 returns every match.
	Limit  int
	Offset int
}

// SortColumns maps the public sort names to appointment columns.
var SortColumns = map[string]string{
	"id":             "id",
	"fechaHora":      "date_time",
	"date_time":      "date_time",
	"estado":         "state",
	"state":          "state",
	"fechaSolicitud": "requested_at",
	"requested_at":   "requested_at",
	"duracion":       "duration_min",
}

type Repository interface {
	// -------- References --------
	GetPatient(ctx context.Context, dni string) (*models.Patient, error)
	GetDoctor(ctx context.Context, id uint) (*models.Doctor, error)
	GetOffice(ctx context.Context, id uint) (*models.Office, error)

	// -------- Appointment (create / conflict) --------
	CreateAppointment(ctx context.Context, ap *models.Appointment) error

	HasSlotConflict(
		ctx context.Context,
		doctorID uint,
		officeID uint,
		at time.Time,
		states []Status,
	) (bool, error)

	// -------- Appointment (read / update) --------
	GetAppointment(
		ctx context.Context,
		id uint,
		vis listing.Visibility,
	) (*models.Appointment, error)

	UpdateAppointment(ctx context.Context, ap *models.Appointment) error

	ListAppointments(ctx context.Context, q Query) ([]models.Appointment, int64, error)

	// -------- Availability --------
	ListSchedules(
		ctx context.Context,
		doctorID uint,
		weekday string,
	) ([]models.Schedule, error)

	ListBookedForDoctor(
		ctx context.Context,
		doctorID uint,
		from time.Time,
		to time.Time,
		states []Status,
	) ([]models.Appointment, error)
}
