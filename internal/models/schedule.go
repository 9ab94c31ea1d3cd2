package models

import "time"

// Schedule is a weekly availability template for a doctor in an office.
type Schedule struct {
	ID uint `gorm:"primaryKey" json:"id"`

	DoctorID uint    `gorm:"not null;index" json:"doctor_id"`
	Doctor   *Doctor `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"doctor,omitempty"`

	OfficeID uint    `gorm:"not null;index" json:"office_id"`
	Office   *Office `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"office,omitempty"`

	// Weekday is lunes..domingo.
	Weekday string `gorm:"size:10;not null;index" json:"weekday"`

	StartTime   string `gorm:"size:5;not null" json:"start_time"`
	EndTime     string `gorm:"size:5;not null" json:"end_time"`
	SlotMinutes int    `gorm:"not null;default:30" json:"slot_minutes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
