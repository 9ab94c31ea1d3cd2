package appointment

import (
	"testing"
	"time"

	"github.com/BruksfildServices01/turnera-api/internal/models"
)

func TestParseDateTime(t *testing.T) {
	ba, err := time.LoadLocation("America/Argentina/Buenos_Aires")
	if err != nil {
		t.Skipf("tzdata not available: %v", err)
	}

	want := time.Date(2025, 10, 20, 13, 0, 0, 0, time.UTC)

	tests := []struct {
		raw string
	}{
		{"2025-10-20T13:00:00Z"},
		{"2025-10-20T10:00:00-03:00"},
		{"2025-10-20T13:00:00.750Z"},
		{"2025-10-20T10:00"},
		{"2025-10-20 10:00:00"},
	}

	for _, tt := range tests {
		got, err := ParseDateTime(tt.raw, ba)
		if err != nil {
			t.Errorf("%s: unexpected error %v", tt.raw, err)
			continue
		}
		if !got.Equal(want) {
			t.Errorf("%s: expected %s, got %s", tt.raw, want, got)
		}
		if got.Location() != time.UTC {
			t.Errorf("%s: expected UTC, got %s", tt.raw, got.Location())
		}
	}
}

func TestParseDateTime_Invalid(t *testing.T) {
	for _, raw := range []string{"", "mañana", "2025-13-40T10:00"} {
		if _, err := ParseDateTime(raw, time.UTC); err != ErrInvalidDateTime {
			t.Errorf("%q: expected ErrInvalidDateTime, got %v", raw, err)
		}
	}
}

func TestTransition_Unguarded(t *testing.T) {
	ap := &models.Appointment{State: string(StatusCancelled)}

	Confirm(ap)
	if ap.State != string(StatusConfirmed) {
		t.Errorf("expected confirmado, got %s", ap.State)
	}

	Complete(ap)
	Cancel(ap)
	if ap.State != string(StatusCancelled) {
		t.Errorf("expected cancelado, got %s", ap.State)
	}
}

func TestBlockingStatuses(t *testing.T) {
	if got := BlockingStatuses(false); len(got) != 1 || got[0] != StatusConfirmed {
		t.Errorf("lenient mode should only block on confirmado, got %v", got)
	}
	if got := BlockingStatuses(true); len(got) != 2 {
		t.Errorf("strict mode should block on pendiente and confirmado, got %v", got)
	}
}

func TestParseStatus(t *testing.T) {
	if s, ok := ParseStatus(" Confirmado "); !ok || s != StatusConfirmed {
		t.Errorf("expected confirmado, got %q %v", s, ok)
	}
	if _, ok := ParseStatus("archivado"); ok {
		t.Error("unknown state must be rejected")
	}
}

func TestWeekdayName(t *testing.T) {
	// 2025-10-20 is a Monday
	if got := WeekdayName(time.Date(2025, 10, 20, 9, 0, 0, 0, time.UTC)); got != "lunes" {
		t.Errorf("expected lunes, got %s", got)
	}
	if got, ok := ParseWeekday("Miércoles"); !ok || got != "miercoles" {
		t.Errorf("expected miercoles, got %q %v", got, ok)
	}
}

func TestValidateWindow(t *testing.T) {
	if err := ValidateWindow("08:00", "12:30"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := ValidateWindow("12:00", "08:00"); err == nil {
		t.Error("expected error for inverted window")
	}
	if err := ValidateWindow("8am", "12:00"); err == nil {
		t.Error("expected error for malformed start")
	}
}

func TestDayRange(t *testing.T) {
	loc := time.FixedZone("ART", -3*60*60)
	start, end := DayRange(time.Date(2025, 10, 20, 2, 0, 0, 0, time.UTC), loc)

	// 02:00Z is still the 19th at -03:00
	if start.Day() != 19 || end.Sub(start) != 24*time.Hour {
		t.Errorf("unexpected range %s - %s", start, end)
	}
}
