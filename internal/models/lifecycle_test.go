package models

import "testing"

func TestLifecycle_DeactivateRestore(t *testing.T) {
	ap := Appointment{Lifecycle: Lifecycle{Active: true}}

	ap.Deactivate()
	if ap.IsActive() {
		t.Fatal("expected inactive after Deactivate")
	}

	// idempotent
	ap.Deactivate()
	if ap.IsActive() {
		t.Fatal("expected inactive after second Deactivate")
	}

	ap.Restore()
	if !ap.IsActive() {
		t.Fatal("expected active after Restore")
	}
}
