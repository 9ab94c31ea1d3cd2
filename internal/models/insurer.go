package models

// Insurer is an obra social, keyed by its short code.
type Insurer struct {
	Code  string `gorm:"primaryKey;size:6" json:"code"`
	Name  string `gorm:"size:100;not null" json:"name"`
	Phone string `gorm:"size:20" json:"phone"`
	Email string `gorm:"size:100;uniqueIndex" json:"email"`

	CoverageID *uint     `json:"coverage_id,omitempty"`
	Coverage   *Coverage `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"coverage,omitempty"`

	Lifecycle
}
