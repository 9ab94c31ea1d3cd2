package appointment

import (
	"fmt"
	"strings"
	"time"
)

var weekdayNames = [...]string{
	time.Sunday:    "domingo",
	time.Monday:    "lunes",
	time.Tuesday:   "martes",
	time.Wednesday: "miercoles",
	time.Thursday:  "jueves",
	time.Friday:    "viernes",
	time.Saturday:  "sabado",
}

// WeekdayName is the schedule weekday for t in its own location.
func WeekdayName(t time.Time) string {
	return weekdayNames[t.Weekday()]
}

// ParseWeekday accepts the schedule weekday names, with or without accents.
func ParseWeekday(s string) (string, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.NewReplacer("é", "e", "á", "a").Replace(s)
	for _, n := range weekdayNames {
		if n == s {
			return n, true
		}
	}
	return "", false
}

// ParseHM parses "HH:MM" into minutes since midnight.
func ParseHM(hm string) (int, error) {
	t, err := time.Parse("15:04", strings.TrimSpace(hm))
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: %w", hm, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// ValidateWindow checks a schedule window: both ends parse and start < end.
func ValidateWindow(start, end string) error {
	s, err := ParseHM(start)
	if err != nil {
		return err
	}
	e, err := ParseHM(end)
	if err != nil {
		return err
	}
	if s >= e {
		return fmt.Errorf("start %s must be before end %s", start, end)
	}
	return nil
}
