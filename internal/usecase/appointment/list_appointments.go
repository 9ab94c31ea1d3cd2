package appointment

import (
	"context"
	"strconv"
	"time"

	"github.com/BruksfildServices01/turnera-api/internal/access"
	domain "github.com/BruksfildServices01/turnera-api/internal/domain/appointment"
	"github.com/BruksfildServices01/turnera-api/internal/httperr"
	"github.com/BruksfildServices01/turnera-api/internal/listing"
	"github.com/BruksfildServices01/turnera-api/internal/models"
)

type Page struct {
	Items []models.Appointment
	Total int64
}

// ListAppointments serves the paginated appointment queries. Admins see
// inactive appointments; everybody else only active ones.
type ListAppointments struct {
	repo domain.Repository
}

func NewListAppointments(repo domain.Repository) *ListAppointments {
	return &ListAppointments{repo: repo}
}

func (uc *ListAppointments) run(ctx context.Context, q domain.Query, p listing.Params) (*Page, error) {
	if col, ok := domain.SortColumns[p.SortBy]; ok {
		q.OrderBy = col
		q.Desc = p.Desc
	} else if q.OrderBy == "" {
		q.OrderBy = "date_time"
		q.Desc = p.Desc
	}
	q.Filter = p.Filter
	q.Limit = p.Limit
	q.Offset = p.Offset()

	items, total, err := uc.repo.ListAppointments(ctx, q)
	if err != nil {
		return nil, err
	}
	return &Page{Items: items, Total: total}, nil
}

func (uc *ListAppointments) FindAll(ctx context.Context, actor *access.Claims, p listing.Params) (*Page, error) {
	return uc.run(ctx, domain.Query{Visibility: visibilityFor(actor)}, p)
}

func (uc *ListAppointments) FindInactive(ctx context.Context, p listing.Params) (*Page, error) {
	return uc.run(ctx, domain.Query{Visibility: listing.InactiveOnly}, p)
}

// FindByPatient sorts newest first unless another sort is requested.
func (uc *ListAppointments) FindByPatient(
	ctx context.Context,
	actor *access.Claims,
	dni string,
	p listing.Params,
) (*Page, error) {
	q := domain.Query{PatientID: dni, Visibility: visibilityFor(actor)}
	if p.SortBy == "" {
		q.OrderBy = "date_time"
		q.Desc = true
	}
	return uc.run(ctx, q, p)
}

func (uc *ListAppointments) FindByDoctor(
	ctx context.Context,
	actor *access.Claims,
	doctorID uint,
	p listing.Params,
) (*Page, error) {
	if actor != nil && actor.Role == access.RoleDoctor {
		if err := access.RequireOwnership(actor, strconv.FormatUint(uint64(doctorID), 10)); err != nil {
			return nil, err
		}
	}
	return uc.run(ctx, domain.Query{DoctorID: doctorID, Visibility: visibilityFor(actor)}, p)
}

func (uc *ListAppointments) FindByState(
	ctx context.Context,
	actor *access.Claims,
	state string,
	p listing.Params,
) (*Page, error) {
	s, ok := domain.ParseStatus(state)
	if !ok {
		return nil, errInvalidState
	}
	return uc.run(ctx, domain.Query{State: s, Visibility: visibilityFor(actor)}, p)
}

// FindByDateRange returns appointments in [from, to).
func (uc *ListAppointments) FindByDateRange(
	ctx context.Context,
	actor *access.Claims,
	from time.Time,
	to time.Time,
	p listing.Params,
) (*Page, error) {
	if !to.After(from) {
		return nil, httperr.ErrInvalid("invalid_range", "El fin del rango debe ser posterior al inicio.")
	}
	from, to = from.UTC(), to.UTC()
	return uc.run(ctx, domain.Query{From: &from, To: &to, Visibility: visibilityFor(actor)}, p)
}

// FindMine lists the caller's own appointments: by doctor id for doctors,
// by DNI for patients.
func (uc *ListAppointments) FindMine(ctx context.Context, actor *access.Claims, p listing.Params) (*Page, error) {
	if err := access.RequireRole(actor, access.RoleDoctor, access.RolePaciente); err != nil {
		return nil, err
	}
	if actor.Reference == "" {
		return nil, httperr.ErrForbidden("missing_reference", "El usuario no está vinculado a un doctor o paciente.")
	}

	switch actor.Role {
	case access.RoleDoctor:
		id, err := strconv.ParseUint(actor.Reference, 10, 64)
		if err != nil {
			return nil, httperr.ErrForbidden("missing_reference", "El usuario no está vinculado a un doctor.")
		}
		return uc.FindByDoctor(ctx, actor, uint(id), p)
	default:
		return uc.FindByPatient(ctx, actor, actor.Reference, p)
	}
}
