package appointment

import (
	"errors"
	"strings"
	"time"

	"github.com/BruksfildServices01/turnera-api/internal/models"
)

const DefaultDurationMinutes = 30

var ErrInvalidDateTime = errors.New("invalid date time")

// naive layouts are read in the clinic timezone
var naiveLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// ParseDateTime accepts RFC3339 with an offset, or a naive local date-time
// interpreted in loc. The result is normalized.
func ParseDateTime(raw string, loc *time.Location) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, ErrInvalidDateTime
	}

	if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return Normalize(t), nil
	}

	if loc == nil {
		loc = time.UTC
	}
	for _, layout := range naiveLayouts {
		if t, err := time.ParseInLocation(layout, raw, loc); err == nil {
			return Normalize(t), nil
		}
	}

	return time.Time{}, ErrInvalidDateTime
}

// Normalize is the storage form of an appointment instant.
func Normalize(t time.Time) time.Time {
	return t.UTC().Truncate(time.Second)
}

// DayRange returns [start, end) of the calendar day of day in loc.
func DayRange(day time.Time, loc *time.Location) (time.Time, time.Time) {
	d := day.In(loc)
	start := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 0, 1)
}

// ===============================
// Domain Actions
// ===============================

// Transition sets the state. Any state may move to any other.
func Transition(ap *models.Appointment, to Status) {
	ap.State = string(to)
}

func Confirm(ap *models.Appointment) { Transition(ap, StatusConfirmed) }

func Cancel(ap *models.Appointment) { Transition(ap, StatusCancelled) }

func Complete(ap *models.Appointment) { Transition(ap, StatusCompleted) }
