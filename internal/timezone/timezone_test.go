package timezone

import "testing"

func TestLocation_Fallback(t *testing.T) {
	if got := Location("Not/AZone"); got.String() != DefaultTimezone {
		t.Errorf("expected fallback to %s, got %s", DefaultTimezone, got)
	}
	if got := Location(""); got.String() != DefaultTimezone {
		t.Errorf("expected fallback for empty tz, got %s", got)
	}
	if got := Location("UTC"); got.String() != "UTC" {
		t.Errorf("expected UTC, got %s", got)
	}
}

func TestParseDate(t *testing.T) {
	loc := Location(DefaultTimezone)
	d, err := ParseDate("2025-10-20", loc)
	if err != nil {
		t.Fatal(err)
	}
	if d.Location() != loc || d.Hour() != 0 {
		t.Errorf("expected local midnight, got %s", d)
	}
	if _, err := ParseDate("20/10/2025", loc); err == nil {
		t.Error("expected error for wrong layout")
	}
}
