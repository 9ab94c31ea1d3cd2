package models

import "time"

type Doctor struct {
	ID uint `gorm:"primaryKey" json:"id"`

	FirstName     string `gorm:"size:100;not null" json:"first_name"`
	LastName      string `gorm:"size:100;not null" json:"last_name"`
	Phone         string `gorm:"size:20" json:"phone"`
	Email         string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	LicenseNumber string `gorm:"size:50;uniqueIndex;not null" json:"license_number"`

	Specialties []Specialty `gorm:"many2many:doctor_specialties;" json:"specialties,omitempty"`

	Lifecycle

	RegisteredAt time.Time `gorm:"autoCreateTime" json:"registered_at"`
}

func (d Doctor) FullName() string {
	return d.FirstName + " " + d.LastName
}
