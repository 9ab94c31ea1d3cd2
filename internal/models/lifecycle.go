package models

// Lifecycle is the soft-delete state shared by every deactivatable entity.
// Rows are never removed; they are hidden from non-admin reads instead.
// There is no column default: creates must set Active explicitly.
type Lifecycle struct {
	Active bool `gorm:"not null;index" json:"active"`
}

func (l Lifecycle) IsActive() bool {
	return l.Active
}

func (l *Lifecycle) Deactivate() {
	l.Active = false
}

func (l *Lifecycle) Restore() {
	l.Active = true
}
