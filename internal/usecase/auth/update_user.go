package auth

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/turnera-api/internal/access"
	"github.com/BruksfildServices01/turnera-api/internal/audit"
	"github.com/BruksfildServices01/turnera-api/internal/domain/identity"
	"github.com/BruksfildServices01/turnera-api/internal/listing"
)

type UpdateUserInput struct {
	Name      *string
	Email     *string
	Password  *string
	Role      *string
	Reference *string
}

// UpdateUser edits an identity on behalf of an admin. Role and reference are
// validated together so the reference stays consistent with the role.
type UpdateUser struct {
	repo  identity.Repository
	cost  int
	audit *audit.Dispatcher
}

func NewUpdateUser(repo identity.Repository, cost int, audit *audit.Dispatcher) *UpdateUser {
	if cost < bcrypt.DefaultCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &UpdateUser{repo: repo, cost: cost, audit: audit}
}

func (uc *UpdateUser) Execute(
	ctx context.Context,
	actor *access.Claims,
	id uint,
	in UpdateUserInput,
) (*UserView, error) {

	user, err := uc.repo.FindByID(ctx, id, listing.VisibilityFor(access.IsPrivileged(actor)))
	if err != nil {
		if errors.Is(err, identity.ErrUserNotFound) {
			return nil, errUserNotFound
		}
		return nil, err
	}

	if in.Name != nil && strings.TrimSpace(*in.Name) != "" {
		user.Name = strings.TrimSpace(*in.Name)
	}
	if in.Email != nil {
		user.Email = strings.ToLower(strings.TrimSpace(*in.Email))
	}

	if in.Role != nil || in.Reference != nil {
		role := access.Role(user.Role)
		if in.Role != nil {
			if role, err = resolveRole(*in.Role); err != nil {
				return nil, err
			}
		}
		ref := user.Reference
		if in.Reference != nil {
			ref = *in.Reference
		}
		if ref, err = resolveReference(ctx, uc.repo, role, ref); err != nil {
			return nil, err
		}
		user.Role = string(role)
		user.Reference = ref
	}

	if in.Password != nil && *in.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), uc.cost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}

	if err := uc.repo.Update(ctx, user); err != nil {
		if errors.Is(err, identity.ErrEmailTaken) {
			return nil, errEmailTaken
		}
		return nil, err
	}

	var actorID *uint
	if actor != nil {
		actorID = &actor.UserID
	}
	uc.audit.Dispatch(audit.Event{
		UserID:   actorID,
		Action:   "user_updated",
		Entity:   "user",
		EntityID: uintString(user.ID),
	})

	view := ViewOf(user)
	return &view, nil
}

func uintString(v uint) string {
	return strconv.FormatUint(uint64(v), 10)
}
