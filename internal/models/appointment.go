package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	PatientID string   `gorm:"size:9;not null;index" json:"patient_id"`
	Patient   *Patient `gorm:"foreignKey:PatientID;references:DNI;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"patient,omitempty"`

	DoctorID uint    `gorm:"not null;index" json:"doctor_id"`
	Doctor   *Doctor `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"doctor,omitempty"`

	OfficeID uint    `gorm:"not null;index" json:"office_id"`
	Office   *Office `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"office,omitempty"`

	// DateTime is stored in UTC, truncated to the second.
	DateTime    time.Time `gorm:"not null;index" json:"date_time"`
	RequestedAt time.Time `gorm:"autoCreateTime;<-:create" json:"requested_at"`
	DurationMin int       `gorm:"not null;default:30" json:"duration_min"`

	State string `gorm:"size:20;not null;default:'pendiente';index" json:"state"`

	Lifecycle

	UpdatedAt time.Time `json:"updated_at"`
}
