package appointment

import "strings"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPending   Status = "pendiente"
	StatusConfirmed Status = "confirmado"
	StatusCancelled Status = "cancelado"
	StatusCompleted Status = "completado"
)

var allStatuses = []Status{StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted}

func ParseStatus(s string) (Status, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, st := range allStatuses {
		if string(st) == s {
			return st, true
		}
	}
	return "", false
}

// InitialStatus is the state of a booking created without one.
func InitialStatus() Status {
	return StatusPending
}

// BlockingStatuses are the states that occupy a (doctor, office, instant)
// slot. Only confirmed bookings block unless strict exclusivity is on.
func BlockingStatuses(strict bool) []Status {
	if strict {
		return []Status{StatusPending, StatusConfirmed}
	}
	return []Status{StatusConfirmed}
}
