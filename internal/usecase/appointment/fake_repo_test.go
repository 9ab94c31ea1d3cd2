package appointment

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	domain "github.com/BruksfildServices01/turnera-api/internal/domain/appointment"
	"github.com/BruksfildServices01/turnera-api/internal/listing"
	"github.com/BruksfildServices01/turnera-api/internal/models"
)

// memoryRepo mimics the gorm repository, including the confirmed-slot
// unique index.
type memoryRepo struct {
	mu        sync.Mutex
	patients  map[string]models.Patient
	doctors   map[uint]models.Doctor
	offices   map[uint]models.Office
	schedules []models.Schedule
	apps      map[uint]models.Appointment
	nextID    uint
}

func newMemoryRepo() *memoryRepo {
	r := &memoryRepo{
		patients: map[string]models.Patient{},
		doctors:  map[uint]models.Doctor{},
		offices:  map[uint]models.Office{},
		apps:     map[uint]models.Appointment{},
	}
	active := models.Lifecycle{Active: true}
	r.patients["12345678"] = models.Patient{DNI: "12345678", FirstName: "Ana", LastName: "Pérez", Lifecycle: active}
	r.patients["87654321"] = models.Patient{DNI: "87654321", FirstName: "Luis", LastName: "Gómez", Lifecycle: active}
	r.doctors[1] = models.Doctor{ID: 1, FirstName: "Juan", LastName: "García", Lifecycle: active}
	r.doctors[3] = models.Doctor{ID: 3, FirstName: "Marta", LastName: "Ruiz", Lifecycle: active}
	r.offices[2] = models.Office{ID: 2, Name: "Consultorio 2", Lifecycle: active}
	r.offices[4] = models.Office{ID: 4, Name: "Consultorio 4", Lifecycle: active}
	return r
}

func (r *memoryRepo) GetPatient(_ context.Context, dni string) (*models.Patient, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.patients[dni]
	if !ok || !p.Active {
		return nil, domain.ErrPatientNotFound
	}
	return &p, nil
}

func (r *memoryRepo) GetDoctor(_ context.Context, id uint) (*models.Doctor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.doctors[id]
	if !ok || !d.Active {
		return nil, domain.ErrDoctorNotFound
	}
	return &d, nil
}

func (r *memoryRepo) GetOffice(_ context.Context, id uint) (*models.Office, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.offices[id]
	if !ok || !o.Active {
		return nil, domain.ErrOfficeNotFound
	}
	return &o, nil
}

func (r *memoryRepo) HasSlotConflict(
	_ context.Context,
	doctorID, officeID uint,
	at time.Time,
	states []domain.Status,
) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ap := range r.apps {
		if ap.Active && ap.DoctorID == doctorID && ap.OfficeID == officeID && ap.DateTime.Equal(at) && hasState(states, ap.State) {
			return true, nil
		}
	}
	return false, nil
}

func hasState(states []domain.Status, s string) bool {
	for _, st := range states {
		if string(st) == s {
			return true
		}
	}
	return false
}

// violatesIndex reports a second active confirmed row on the same slot.
func (r *memoryRepo) violatesIndex(ap models.Appointment) bool {
	if !ap.Active || ap.State != string(domain.StatusConfirmed) {
		return false
	}
	for id, other := range r.apps {
		if id == ap.ID {
			continue
		}
		if other.Active && other.State == ap.State && other.DoctorID == ap.DoctorID &&
			other.OfficeID == ap.OfficeID && other.DateTime.Equal(ap.DateTime) {
			return true
		}
	}
	return false
}

func (r *memoryRepo) CreateAppointment(_ context.Context, ap *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.violatesIndex(*ap) {
		return domain.ErrSlotTaken
	}
	r.nextID++
	ap.ID = r.nextID
	ap.RequestedAt = time.Now()
	r.apps[ap.ID] = *ap
	return nil
}

func (r *memoryRepo) project(ap models.Appointment) models.Appointment {
	if p, ok := r.patients[ap.PatientID]; ok {
		ap.Patient = &p
	}
	if d, ok := r.doctors[ap.DoctorID]; ok {
		ap.Doctor = &d
	}
	if o, ok := r.offices[ap.OfficeID]; ok {
		ap.Office = &o
	}
	return ap
}

func visible(vis listing.Visibility, active bool) bool {
	switch vis {
	case listing.IncludeInactive:
		return true
	case listing.InactiveOnly:
		return !active
	default:
		return active
	}
}

func (r *memoryRepo) GetAppointment(_ context.Context, id uint, vis listing.Visibility) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ap, ok := r.apps[id]
	if !ok || !visible(vis, ap.Active) {
		return nil, domain.ErrNotFound
	}
	out := r.project(ap)
	return &out, nil
}

func (r *memoryRepo) UpdateAppointment(_ context.Context, ap *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.violatesIndex(*ap) {
		return domain.ErrSlotTaken
	}
	stored := *ap
	stored.Patient, stored.Doctor, stored.Office = nil, nil, nil
	r.apps[ap.ID] = stored
	return nil
}

func (r *memoryRepo) ListAppointments(_ context.Context, q domain.Query) ([]models.Appointment, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.Appointment
	for _, ap := range r.apps {
		if !visible(q.Visibility, ap.Active) {
			continue
		}
		if q.PatientID != "" && ap.PatientID != q.PatientID {
			continue
		}
		if q.DoctorID != 0 && ap.DoctorID != q.DoctorID {
			continue
		}
		if q.State != "" && ap.State != string(q.State) {
			continue
		}
		if q.From != nil && ap.DateTime.Before(*q.From) {
			continue
		}
		if q.To != nil && !ap.DateTime.Before(*q.To) {
			continue
		}
		p := r.project(ap)
		if q.Filter != "" {
			f := strings.ToLower(q.Filter)
			names := strings.ToLower(p.Patient.FullName() + "|" + p.Doctor.FullName() + "|" + p.Office.Name)
			if !strings.Contains(names, f) {
				continue
			}
		}
		out = append(out, p)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].DateTime.Equal(out[j].DateTime) {
			return out[i].ID < out[j].ID
		}
		if q.Desc {
			return out[i].DateTime.After(out[j].DateTime)
		}
		return out[i].DateTime.Before(out[j].DateTime)
	})

	total := int64(len(out))
	if q.Limit > 0 {
		if q.Offset >= len(out) {
			return []models.Appointment{}, total, nil
		}
		end := q.Offset + q.Limit
		if end > len(out) {
			end = len(out)
		}
		out = out[q.Offset:end]
	}
	return out, total, nil
}

func (r *memoryRepo) ListSchedules(_ context.Context, doctorID uint, weekday string) ([]models.Schedule, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Schedule
	for _, s := range r.schedules {
		if s.DoctorID == doctorID && s.Weekday == weekday {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *memoryRepo) ListBookedForDoctor(
	_ context.Context,
	doctorID uint,
	from, to time.Time,
	states []domain.Status,
) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Appointment
	for _, ap := range r.apps {
		if ap.Active && ap.DoctorID == doctorID && hasState(states, ap.State) &&
			!ap.DateTime.Before(from) && ap.DateTime.Before(to) {
			out = append(out, ap)
		}
	}
	return out, nil
}
