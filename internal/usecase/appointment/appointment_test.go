package appointment

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/BruksfildServices01/turnera-api/internal/access"
	domain "github.com/BruksfildServices01/turnera-api/internal/domain/appointment"
	"github.com/BruksfildServices01/turnera-api/internal/httperr"
	"github.com/BruksfildServices01/turnera-api/internal/listing"
	"github.com/BruksfildServices01/turnera-api/internal/lock"
	"github.com/BruksfildServices01/turnera-api/internal/models"
)

var (
	admin      = &access.Claims{UserID: 1, Role: access.RoleAdmin}
	secretaria = &access.Claims{UserID: 2, Role: access.RoleSecretaria}
	paciente   = &access.Claims{UserID: 3, Role: access.RolePaciente, Reference: "12345678"}
	doctor     = &access.Claims{UserID: 4, Role: access.RoleDoctor, Reference: "1"}
)

func strPtr(s string) *string { return &s }

func newCreate(repo *memoryRepo, strict bool) *CreateAppointment {
	return NewCreateAppointment(repo, lock.NewLocalLocker(), nil, Options{Location: time.UTC, Strict: strict})
}

func book(t *testing.T, uc *CreateAppointment, state string) *models.Appointment {
	t.Helper()
	in := CreateAppointmentInput{
		Actor:     secretaria,
		PatientID: "12345678",
		DoctorID:  1,
		OfficeID:  2,
		DateTime:  "2025-10-18T10:00:00Z",
	}
	if state != "" {
		in.State = strPtr(state)
	}
	ap, err := uc.Execute(context.Background(), in)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	return ap
}

func TestCreate_Defaults(t *testing.T) {
	repo := newMemoryRepo()
	ap := book(t, newCreate(repo, false), "")

	if ap.State != string(domain.StatusPending) {
		t.Errorf("expected pendiente, got %s", ap.State)
	}
	if ap.DurationMin != 30 {
		t.Errorf("expected 30 minutes, got %d", ap.DurationMin)
	}
	if !ap.Active {
		t.Error("new appointments are active")
	}
	if ap.Patient == nil || ap.Doctor == nil || ap.Office == nil {
		t.Error("expected projections to be loaded")
	}
}

func TestCreate_ConflictOnConfirmedSlot(t *testing.T) {
	repo := newMemoryRepo()
	uc := newCreate(repo, false)

	book(t, uc, "confirmado")

	for _, state := range []string{"", "confirmado"} {
		in := CreateAppointmentInput{
			Actor:     secretaria,
			PatientID: "87654321",
			DoctorID:  1,
			OfficeID:  2,
			DateTime:  "2025-10-18T07:00:00-03:00",
		}
		if state != "" {
			in.State = strPtr(state)
		}
		_, err := uc.Execute(context.Background(), in)
		if httperr.KindOf(err) != httperr.KindConflict {
			t.Errorf("state %q: expected conflict, got %v", state, err)
		}
	}
}

func TestCreate_PendingDoesNotBlock(t *testing.T) {
	repo := newMemoryRepo()
	uc := newCreate(repo, false)

	book(t, uc, "")
	book(t, uc, "")
	book(t, uc, "confirmado")

	if len(repo.apps) != 3 {
		t.Errorf("expected 3 appointments, got %d", len(repo.apps))
	}
}

func TestCreate_StrictModeBlocksPending(t *testing.T) {
	repo := newMemoryRepo()
	uc := newCreate(repo, true)

	book(t, uc, "")

	_, err := uc.Execute(context.Background(), CreateAppointmentInput{
		Actor:     secretaria,
		PatientID: "87654321",
		DoctorID:  1,
		OfficeID:  2,
		DateTime:  "2025-10-18T10:00:00Z",
	})
	if httperr.KindOf(err) != httperr.KindConflict {
		t.Errorf("expected conflict in strict mode, got %v", err)
	}
}

func TestCreate_ConcurrentConfirmedBookings(t *testing.T) {
	repo := newMemoryRepo()
	uc := newCreate(repo, false)

	var wg sync.WaitGroup
	var mu sync.Mutex
	ok := 0

	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.Execute(context.Background(), CreateAppointmentInput{
				PatientID: "12345678",
				DoctorID:  1,
				OfficeID:  2,
				DateTime:  "2025-10-18T10:00:00Z",
				State:     strPtr("confirmado"),
			})
			if err == nil {
				mu.Lock()
				ok++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if ok != 1 {
		t.Errorf("expected exactly one confirmed booking, got %d", ok)
	}
}

func TestCreate_Validation(t *testing.T) {
	repo := newMemoryRepo()
	uc := newCreate(repo, false)
	ctx := context.Background()

	base := CreateAppointmentInput{Actor: secretaria, PatientID: "12345678", DoctorID: 1, OfficeID: 2, DateTime: "2025-10-18T10:00:00Z"}

	bad := base
	bad.DateTime = "18/10/2025"
	if _, err := uc.Execute(ctx, bad); !httperr.IsBusiness(err, "invalid_date_time") {
		t.Errorf("expected invalid_date_time, got %v", err)
	}

	bad = base
	bad.DoctorID = 99
	if _, err := uc.Execute(ctx, bad); !httperr.IsBusiness(err, "doctor_not_found") {
		t.Errorf("expected doctor_not_found, got %v", err)
	}

	bad = base
	bad.PatientID = "00000000"
	if _, err := uc.Execute(ctx, bad); !httperr.IsBusiness(err, "patient_not_found") {
		t.Errorf("expected patient_not_found, got %v", err)
	}

	bad = base
	bad.State = strPtr("archivado")
	if _, err := uc.Execute(ctx, bad); !httperr.IsBusiness(err, "invalid_state") {
		t.Errorf("expected invalid_state, got %v", err)
	}

	bad = base
	bad.Actor = paciente
	bad.PatientID = "87654321"
	if _, err := uc.Execute(ctx, bad); httperr.KindOf(err) != httperr.KindForbidden {
		t.Errorf("patients may only book for themselves, got %v", err)
	}
}

func TestConfirm_OnCancelledAppointment(t *testing.T) {
	repo := newMemoryRepo()
	ap := book(t, newCreate(repo, false), "cancelado")

	got, err := NewConfirmAppointment(repo, nil).Execute(context.Background(), secretaria, ap.ID)
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if got.State != string(domain.StatusConfirmed) {
		t.Errorf("expected confirmado, got %s", got.State)
	}
}

func TestConfirm_SecondConfirmedIsConflict(t *testing.T) {
	repo := newMemoryRepo()
	uc := newCreate(repo, false)

	pending := book(t, uc, "")
	book(t, uc, "confirmado")

	_, err := NewConfirmAppointment(repo, nil).Execute(context.Background(), secretaria, pending.ID)
	if httperr.KindOf(err) != httperr.KindConflict {
		t.Errorf("expected conflict from the slot index, got %v", err)
	}
}

func TestCancel_Ownership(t *testing.T) {
	repo := newMemoryRepo()
	ap := book(t, newCreate(repo, false), "")
	cancel := NewCancelAppointment(repo, nil)
	ctx := context.Background()

	other := &access.Claims{UserID: 9, Role: access.RolePaciente, Reference: "87654321"}
	if _, err := cancel.Execute(ctx, other, ap.ID); httperr.KindOf(err) != httperr.KindForbidden {
		t.Errorf("expected forbidden for another patient, got %v", err)
	}

	got, err := cancel.Execute(ctx, paciente, ap.ID)
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if got.State != string(domain.StatusCancelled) {
		t.Errorf("expected cancelado, got %s", got.State)
	}

	got, err = NewCompleteAppointment(repo, nil).Execute(ctx, doctor, ap.ID)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if got.State != string(domain.StatusCompleted) {
		t.Errorf("expected completado, got %s", got.State)
	}
}

func TestSoftDelete_IdempotentAndRestore(t *testing.T) {
	repo := newMemoryRepo()
	ap := book(t, newCreate(repo, false), "confirmado")
	ctx := context.Background()

	del := NewSoftDeleteAppointment(repo, nil)
	if err := del.Execute(ctx, admin, ap.ID); err != nil {
		t.Fatalf("first delete: %v", err)
	}
	if err := del.Execute(ctx, admin, ap.ID); err != nil {
		t.Fatalf("second delete: %v", err)
	}
	if repo.apps[ap.ID].Active {
		t.Fatal("expected inactive after delete")
	}

	if err := del.Execute(ctx, admin, 999); httperr.KindOf(err) != httperr.KindNotFound {
		t.Errorf("expected not found for unknown id, got %v", err)
	}

	restore := NewRestoreAppointment(repo, nil)
	restored, err := restore.Execute(ctx, admin, ap.ID)
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	if !restored.Active || restored.State != ap.State || !restored.DateTime.Equal(ap.DateTime) ||
		restored.PatientID != ap.PatientID || restored.DurationMin != ap.DurationMin {
		t.Errorf("restore should only flip active, got %+v", restored)
	}

	if _, err := restore.Execute(ctx, admin, ap.ID); httperr.KindOf(err) != httperr.KindNotFound {
		t.Errorf("restoring an active appointment must be not found, got %v", err)
	}
}

func TestRestore_RebookedSlotIsConflict(t *testing.T) {
	repo := newMemoryRepo()
	uc := newCreate(repo, false)
	ctx := context.Background()

	first := book(t, uc, "confirmado")
	if err := NewSoftDeleteAppointment(repo, nil).Execute(ctx, admin, first.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	// an inactive confirmado no longer holds the slot
	book(t, uc, "confirmado")

	_, err := NewRestoreAppointment(repo, nil).Execute(ctx, admin, first.ID)
	if httperr.KindOf(err) != httperr.KindConflict {
		t.Fatalf("expected conflict restoring into a taken slot, got %v", err)
	}
	if repo.apps[first.ID].Active {
		t.Error("the deleted appointment must stay inactive")
	}
}

func TestVisibility(t *testing.T) {
	repo := newMemoryRepo()
	uc := newCreate(repo, false)
	ctx := context.Background()

	kept := book(t, uc, "")
	gone := book(t, uc, "")
	if err := NewSoftDeleteAppointment(repo, nil).Execute(ctx, admin, gone.ID); err != nil {
		t.Fatal(err)
	}

	list := NewListAppointments(repo)
	params := listing.Params{Page: 1, Limit: 10}

	page, err := list.FindAll(ctx, secretaria, params)
	if err != nil {
		t.Fatal(err)
	}
	if page.Total != 1 || page.Items[0].ID != kept.ID {
		t.Errorf("non-admin must only see active appointments, got %d", page.Total)
	}

	page, err = list.FindAll(ctx, admin, params)
	if err != nil {
		t.Fatal(err)
	}
	if page.Total != 2 {
		t.Errorf("admin should see inactive appointments too, got %d", page.Total)
	}

	page, err = list.FindInactive(ctx, params)
	if err != nil {
		t.Fatal(err)
	}
	if page.Total != 1 || page.Items[0].ID != gone.ID {
		t.Errorf("expected only the inactive appointment, got %d", page.Total)
	}

	get := NewGetAppointment(repo)
	if _, err := get.Execute(ctx, secretaria, gone.ID); httperr.KindOf(err) != httperr.KindNotFound {
		t.Errorf("inactive appointment should be not found for non-admin, got %v", err)
	}
	if _, err := get.Execute(ctx, admin, gone.ID); err != nil {
		t.Errorf("admin should read inactive appointment, got %v", err)
	}
}

func TestUpdate_ReschedulesWithoutOverlapCheck(t *testing.T) {
	repo := newMemoryRepo()
	uc := newCreate(repo, false)
	ctx := context.Background()

	ap := book(t, uc, "")

	newOffice := uint(4)
	got, err := NewUpdateAppointment(repo, nil, time.UTC).Execute(ctx, secretaria, ap.ID, UpdateAppointmentInput{
		OfficeID: &newOffice,
		DateTime: strPtr("2025-10-19T11:30:00Z"),
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.OfficeID != 4 || got.Office == nil || got.Office.Name != "Consultorio 4" {
		t.Errorf("expected office 4 projection, got %+v", got.Office)
	}
	if !got.DateTime.Equal(time.Date(2025, 10, 19, 11, 30, 0, 0, time.UTC)) {
		t.Errorf("unexpected date time %s", got.DateTime)
	}

	missing := uint(77)
	_, err = NewUpdateAppointment(repo, nil, time.UTC).Execute(ctx, secretaria, ap.ID, UpdateAppointmentInput{OfficeID: &missing})
	if !httperr.IsBusiness(err, "office_not_found") {
		t.Errorf("expected office_not_found, got %v", err)
	}
}

func TestListQueries(t *testing.T) {
	repo := newMemoryRepo()
	uc := newCreate(repo, false)
	ctx := context.Background()

	for _, dt := range []string{"2025-10-18T10:00:00Z", "2025-10-19T10:00:00Z", "2025-10-20T10:00:00Z"} {
		if _, err := uc.Execute(ctx, CreateAppointmentInput{PatientID: "12345678", DoctorID: 1, OfficeID: 2, DateTime: dt}); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := uc.Execute(ctx, CreateAppointmentInput{PatientID: "87654321", DoctorID: 3, OfficeID: 2, DateTime: "2025-10-18T11:00:00Z", State: strPtr("confirmado")}); err != nil {
		t.Fatal(err)
	}

	list := NewListAppointments(repo)
	p := listing.Params{Page: 1, Limit: 10}

	byPatient, err := list.FindByPatient(ctx, secretaria, "12345678", p)
	if err != nil {
		t.Fatal(err)
	}
	if byPatient.Total != 3 || byPatient.Items[0].DateTime.Day() != 20 {
		t.Errorf("expected 3 appointments newest first, got %d", byPatient.Total)
	}

	byState, err := list.FindByState(ctx, secretaria, "confirmado", p)
	if err != nil {
		t.Fatal(err)
	}
	if byState.Total != 1 {
		t.Errorf("expected 1 confirmed, got %d", byState.Total)
	}

	if _, err := list.FindByDoctor(ctx, doctor, 3, p); httperr.KindOf(err) != httperr.KindForbidden {
		t.Errorf("a doctor may not list another doctor's agenda, got %v", err)
	}

	mine, err := list.FindMine(ctx, doctor, p)
	if err != nil {
		t.Fatal(err)
	}
	if mine.Total != 3 {
		t.Errorf("expected doctor 1 to have 3 appointments, got %d", mine.Total)
	}

	from := time.Date(2025, 10, 18, 0, 0, 0, 0, time.UTC)
	rng, err := list.FindByDateRange(ctx, secretaria, from, from.AddDate(0, 0, 2), p)
	if err != nil {
		t.Fatal(err)
	}
	if rng.Total != 3 {
		t.Errorf("expected 3 in range, got %d", rng.Total)
	}

	filtered, err := list.FindAll(ctx, secretaria, listing.Params{Page: 1, Limit: 10, Filter: "ruiz"})
	if err != nil {
		t.Fatal(err)
	}
	if filtered.Total != 1 {
		t.Errorf("expected doctor name filter to match 1, got %d", filtered.Total)
	}

	paged, err := list.FindAll(ctx, secretaria, listing.Params{Page: 2, Limit: 3})
	if err != nil {
		t.Fatal(err)
	}
	if paged.Total != 4 || len(paged.Items) != 1 {
		t.Errorf("expected total 4 with one item on page 2, got %d/%d", paged.Total, len(paged.Items))
	}

	agenda, err := NewListAppointmentsByDate(repo, time.UTC).Execute(ctx, secretaria, from)
	if err != nil {
		t.Fatal(err)
	}
	if len(agenda) != 2 || agenda[0].DoctorName != "Juan García" {
		t.Errorf("unexpected agenda %+v", agenda)
	}
}

func TestGetAvailability(t *testing.T) {
	repo := newMemoryRepo()
	repo.schedules = []models.Schedule{
		{ID: 1, DoctorID: 1, OfficeID: 2, Weekday: "lunes", StartTime: "09:00", EndTime: "11:00", SlotMinutes: 30},
	}
	ctx := context.Background()

	// 2025-10-20 is a Monday
	if _, err := newCreate(repo, false).Execute(ctx, CreateAppointmentInput{
		PatientID: "12345678", DoctorID: 1, OfficeID: 2, DateTime: "2025-10-20T09:30:00Z",
	}); err != nil {
		t.Fatal(err)
	}

	uc := NewGetAvailability(repo, time.UTC)
	uc.now = func() time.Time { return time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC) }

	slots, err := uc.Execute(ctx, domain.AvailabilityInput{DoctorID: 1, Date: time.Date(2025, 10, 20, 0, 0, 0, 0, time.UTC)})
	if err != nil {
		t.Fatal(err)
	}

	want := []string{"09:00", "10:00", "10:30"}
	if len(slots) != len(want) {
		t.Fatalf("expected %d slots, got %+v", len(want), slots)
	}
	for i, s := range slots {
		if s.Start != want[i] {
			t.Errorf("slot %d: expected %s, got %s", i, want[i], s.Start)
		}
	}

	tuesday, err := uc.Execute(ctx, domain.AvailabilityInput{DoctorID: 1, Date: time.Date(2025, 10, 21, 0, 0, 0, 0, time.UTC)})
	if err != nil {
		t.Fatal(err)
	}
	if len(tuesday) != 0 {
		t.Errorf("expected no slots on tuesday, got %d", len(tuesday))
	}

	if _, err := uc.Execute(ctx, domain.AvailabilityInput{DoctorID: 42, Date: time.Now()}); !httperr.IsBusiness(err, "doctor_not_found") {
		t.Errorf("expected doctor_not_found, got %v", err)
	}
}
