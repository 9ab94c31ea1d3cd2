package repository

import (
	"gorm.io/gorm"

	"github.com/BruksfildServices01/turnera-api/internal/models"
)

// Stores for the reference entities. Sort keys accept both the Spanish
// query names and the column names.

func NewDoctorStore(db *gorm.DB) *LifecycleStore[models.Doctor] {
	return NewLifecycleStore[models.Doctor](db, StoreOptions{
		Key:           "id",
		SoftDelete:    true,
		Preload:       []string{"Specialties"},
		FilterColumns: []string{"first_name", "last_name", "license_number", "email"},
		SortColumns: map[string]string{
			"id":             "id",
			"nombre":         "first_name",
			"first_name":     "first_name",
			"apellido":       "last_name",
			"last_name":      "last_name",
			"matricula":      "license_number",
			"license_number": "license_number",
			"email":          "email",
		},
		DefaultSort: "last_name",
	})
}

func NewPatientStore(db *gorm.DB) *LifecycleStore[models.Patient] {
	return NewLifecycleStore[models.Patient](db, StoreOptions{
		Key:           "dni",
		SoftDelete:    true,
		Preload:       []string{"Insurer", "Coverage"},
		FilterColumns: []string{"dni", "first_name", "last_name", "email"},
		SortColumns: map[string]string{
			"dni":           "dni",
			"nombre":        "first_name",
			"first_name":    "first_name",
			"apellido":      "last_name",
			"last_name":     "last_name",
			"fechaRegistro": "registered_at",
			"registered_at": "registered_at",
		},
		DefaultSort: "last_name",
	})
}

func NewOfficeStore(db *gorm.DB) *LifecycleStore[models.Office] {
	return NewLifecycleStore[models.Office](db, StoreOptions{
		Key:           "id",
		SoftDelete:    true,
		FilterColumns: []string{"name"},
		SortColumns: map[string]string{
			"id":     "id",
			"nombre": "name",
			"name":   "name",
		},
		DefaultSort: "id",
	})
}

func NewSpecialtyStore(db *gorm.DB) *LifecycleStore[models.Specialty] {
	return NewLifecycleStore[models.Specialty](db, StoreOptions{
		Key:           "id",
		FilterColumns: []string{"name"},
		SortColumns: map[string]string{
			"id":     "id",
			"nombre": "name",
			"name":   "name",
		},
		DefaultSort: "name",
	})
}

func NewCoverageStore(db *gorm.DB) *LifecycleStore[models.Coverage] {
	return NewLifecycleStore[models.Coverage](db, StoreOptions{
		Key:           "id",
		FilterColumns: []string{"name"},
		SortColumns: map[string]string{
			"id":     "id",
			"nombre": "name",
			"name":   "name",
		},
		DefaultSort: "name",
	})
}

func NewInsurerStore(db *gorm.DB) *LifecycleStore[models.Insurer] {
	return NewLifecycleStore[models.Insurer](db, StoreOptions{
		Key:           "code",
		SoftDelete:    true,
		Preload:       []string{"Coverage"},
		FilterColumns: []string{"code", "name"},
		SortColumns: map[string]string{
			"codigo": "code",
			"code":   "code",
			"nombre": "name",
			"name":   "name",
		},
		DefaultSort: "name",
	})
}

func NewScheduleStore(db *gorm.DB) *LifecycleStore[models.Schedule] {
	return NewLifecycleStore[models.Schedule](db, StoreOptions{
		Key:     "id",
		Preload: []string{"Doctor", "Office"},
		SortColumns: map[string]string{
			"id":         "id",
			"dia":        "weekday",
			"weekday":    "weekday",
			"horaInicio": "start_time",
			"start_time": "start_time",
			"doctor":     "doctor_id",
			"doctor_id":  "doctor_id",
		},
		DefaultSort: "start_time",
	})
}
