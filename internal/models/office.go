package models

// Office is a consulting room (consultorio).
type Office struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:100;not null" json:"name"`

	Lifecycle
}
