package models

import "time"

type Patient struct {
	DNI string `gorm:"primaryKey;size:9" json:"dni"`

	FirstName string     `gorm:"size:100;not null" json:"first_name"`
	LastName  string     `gorm:"size:100;not null" json:"last_name"`
	BirthDate *time.Time `gorm:"type:date" json:"birth_date,omitempty"`
	Address   string     `gorm:"size:255" json:"address"`
	Phone     string     `gorm:"size:20" json:"phone"`
	Email     string     `gorm:"size:100" json:"email,omitempty"`

	InsurerCode  *string  `gorm:"size:6" json:"insurer_code,omitempty"`
	Insurer      *Insurer `gorm:"foreignKey:InsurerCode;references:Code;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"insurer,omitempty"`
	MemberNumber string   `gorm:"size:30" json:"member_number,omitempty"`

	CoverageID *uint     `json:"coverage_id,omitempty"`
	Coverage   *Coverage `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"coverage,omitempty"`

	Lifecycle

	RegisteredAt time.Time `gorm:"autoCreateTime" json:"registered_at"`
}

func (p Patient) FullName() string {
	return p.FirstName + " " + p.LastName
}
