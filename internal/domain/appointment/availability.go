package appointment

import "time"

type AvailabilityInput struct {
	DoctorID uint
	Date     time.Time // any instant on the requested day, in clinic time
}

type TimeSlot struct {
	OfficeID uint      `json:"office_id"`
	Start    string    `json:"start"`
	End      string    `json:"end"`
	At       time.Time `json:"date_time"`
}
