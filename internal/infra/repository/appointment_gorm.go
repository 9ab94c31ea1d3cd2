package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/turnera-api/internal/domain/appointment"
	"github.com/BruksfildServices01/turnera-api/internal/listing"
	"github.com/BruksfildServices01/turnera-api/internal/models"
)

// ConfirmedSlotIndex is the partial unique index that keeps one confirmed
// appointment per (doctor, office, instant).
const ConfirmedSlotIndex = "ux_appointments_confirmed_slot"

type AppointmentGormRepository struct {
	db *gorm.DB
}

var _ domain.Repository = (*AppointmentGormRepository)(nil)

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// References
// --------------------------------------------------

func (r *AppointmentGormRepository) GetPatient(
	ctx context.Context,
	dni string,
) (*models.Patient, error) {

	var p models.Patient
	if err := r.db.WithContext(ctx).
		Where("dni = ? AND active = ?", dni, true).
		First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPatientNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *AppointmentGormRepository) GetDoctor(
	ctx context.Context,
	id uint,
) (*models.Doctor, error) {

	var d models.Doctor
	if err := r.db.WithContext(ctx).
		Where("id = ? AND active = ?", id, true).
		First(&d).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrDoctorNotFound
		}
		return nil, err
	}
	return &d, nil
}

func (r *AppointmentGormRepository) GetOffice(
	ctx context.Context,
	id uint,
) (*models.Office, error) {

	var o models.Office
	if err := r.db.WithContext(ctx).
		Where("id = ? AND active = ?", id, true).
		First(&o).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrOfficeNotFound
		}
		return nil, err
	}
	return &o, nil
}

// --------------------------------------------------
// Appointment (create / conflict)
// --------------------------------------------------

func (r *AppointmentGormRepository) HasSlotConflict(
	ctx context.Context,
	doctorID uint,
	officeID uint,
	at time.Time,
	states []domain.Status,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where(
			"doctor_id = ? AND office_id = ? AND date_time = ? AND state IN ? AND active = ?",
			doctorID,
			officeID,
			at,
			statusStrings(states),
			true,
		).
		Count(&count).Error; err != nil {
		return false, err
	}

	return count > 0, nil
}

func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(ap).Error
	if IsUniqueViolation(err, ConfirmedSlotIndex) {
		return domain.ErrSlotTaken
	}
	return err
}

// --------------------------------------------------
// Appointment (read / update)
// --------------------------------------------------

func (r *AppointmentGormRepository) withProjections(tx *gorm.DB) *gorm.DB {
	return tx.
		Preload("Patient").
		Preload("Doctor").
		Preload("Office")
}

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	id uint,
	vis listing.Visibility,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.withProjections(r.db.WithContext(ctx)).
		Scopes(visibility(vis, "appointments.active")).
		Where("appointments.id = ?", id).
		First(&ap).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	return &ap, nil
}

func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Save(ap).Error
	if IsUniqueViolation(err, ConfirmedSlotIndex) {
		return domain.ErrSlotTaken
	}
	return err
}

func (r *AppointmentGormRepository) ListAppointments(
	ctx context.Context,
	q domain.Query,
) ([]models.Appointment, int64, error) {

	base := func() *gorm.DB {
		tx := r.db.WithContext(ctx).
			Model(&models.Appointment{}).
			Scopes(visibility(q.Visibility, "appointments.active"))

		if q.PatientID != "" {
			tx = tx.Where("appointments.patient_id = ?", q.PatientID)
		}
		if q.DoctorID != 0 {
			tx = tx.Where("appointments.doctor_id = ?", q.DoctorID)
		}
		if q.State != "" {
			tx = tx.Where("appointments.state = ?", string(q.State))
		}
		if q.From != nil {
			tx = tx.Where("appointments.date_time >= ?", *q.From)
		}
		if q.To != nil {
			tx = tx.Where("appointments.date_time < ?", *q.To)
		}

		if q.Filter != "" {
			like := "%" + strings.ToLower(q.Filter) + "%"
			tx = tx.
				Joins("LEFT JOIN patients ON patients.dni = appointments.patient_id").
				Joins("LEFT JOIN doctors ON doctors.id = appointments.doctor_id").
				Joins("LEFT JOIN offices ON offices.id = appointments.office_id").
				Where(
					"(LOWER(patients.first_name || ' ' || patients.last_name) LIKE ? "+
						"OR LOWER(doctors.first_name || ' ' || doctors.last_name) LIKE ? "+
						"OR LOWER(offices.name) LIKE ?)",
					like, like, like,
				)
		}
		return tx
	}

	var total int64
	if err := base().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	col := sortColumn(q.OrderBy)
	order := "appointments." + col + " ASC"
	if q.Desc {
		order = "appointments." + col + " DESC"
	}

	var list []models.Appointment
	if err := r.withProjections(base()).
		Select("appointments.*").
		Order(order).
		Order("appointments.id ASC").
		Scopes(paginate(q.Limit, q.Offset)).
		Find(&list).Error; err != nil {
		return nil, 0, err
	}

	return list, total, nil
}

// --------------------------------------------------
// Availability
// --------------------------------------------------

func (r *AppointmentGormRepository) ListSchedules(
	ctx context.Context,
	doctorID uint,
	weekday string,
) ([]models.Schedule, error) {

	var schedules []models.Schedule
	if err := r.db.WithContext(ctx).
		Where("doctor_id = ? AND weekday = ?", doctorID, weekday).
		Order("start_time ASC").
		Find(&schedules).Error; err != nil {
		return nil, err
	}

	return schedules, nil
}

func (r *AppointmentGormRepository) ListBookedForDoctor(
	ctx context.Context,
	doctorID uint,
	from time.Time,
	to time.Time,
	states []domain.Status,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Select("id", "office_id", "date_time", "duration_min", "state").
		Where(
			"doctor_id = ? AND active = ? AND state IN ? AND date_time >= ? AND date_time < ?",
			doctorID, true, statusStrings(states), from, to,
		).
		Order("date_time ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}

	return apps, nil
}

// sortColumn accepts only the columns listed in domain.SortColumns.
func sortColumn(col string) string {
	for _, allowed := range domain.SortColumns {
		if col == allowed {
			return col
		}
	}
	return "date_time"
}

func statusStrings(states []domain.Status) []string {
	out := make([]string, len(states))
	for i, s := range states {
		out[i] = string(s)
	}
	return out
}
