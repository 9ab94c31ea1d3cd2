package models

import "time"

type User struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name         string `gorm:"size:100;not null;default:'Usuario'" json:"name"`
	Email        string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Role         string `gorm:"size:20;not null;default:'paciente'" json:"role"`

	// Reference points at the doctor id (role doctor) or patient DNI
	// (role paciente). Empty for admin and secretaria.
	Reference string `gorm:"size:20" json:"reference,omitempty"`

	Lifecycle

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
