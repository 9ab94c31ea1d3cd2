package dto

import (
	"time"

	"github.com/BruksfildServices01/turnera-api/internal/models"
)

// AppointmentListDTO is the flattened row of the daily agenda.
type AppointmentListDTO struct {
	ID          uint      `json:"id"`
	DateTime    time.Time `json:"date_time"`
	EndTime     time.Time `json:"end_time"`
	DurationMin int       `json:"duration_min"`
	State       string    `json:"state"`
	Active      bool      `json:"active"`
	PatientID   string    `json:"patient_id"`
	PatientName string    `json:"patient_name"`
	DoctorID    uint      `json:"doctor_id"`
	DoctorName  string    `json:"doctor_name"`
	OfficeID    uint      `json:"office_id"`
	OfficeName  string    `json:"office_name"`
}

func AppointmentRow(ap models.Appointment, loc *time.Location) AppointmentListDTO {
	start := ap.DateTime
	if loc != nil {
		start = start.In(loc)
	}

	row := AppointmentListDTO{
		ID:          ap.ID,
		DateTime:    start,
		EndTime:     start.Add(time.Duration(ap.DurationMin) * time.Minute),
		DurationMin: ap.DurationMin,
		State:       ap.State,
		Active:      ap.Active,
		PatientID:   ap.PatientID,
		DoctorID:    ap.DoctorID,
		OfficeID:    ap.OfficeID,
	}
	if ap.Patient != nil {
		row.PatientName = ap.Patient.FullName()
	}
	if ap.Doctor != nil {
		row.DoctorName = ap.Doctor.FullName()
	}
	if ap.Office != nil {
		row.OfficeName = ap.Office.Name
	}
	return row
}
