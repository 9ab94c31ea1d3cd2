package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/turnera-api/internal/audit"
	"github.com/BruksfildServices01/turnera-api/internal/domain/identity"
	"github.com/BruksfildServices01/turnera-api/internal/models"
)

const defaultDisplayName = "Usuario"

// ======================================================
// INPUT
// ======================================================

type RegisterInput struct {
	Email     string
	Password  string
	Name      string
	Role      string
	Reference string
}

// ======================================================
// USE CASE
// ======================================================

type Register struct {
	repo   identity.Repository
	tokens TokenIssuer
	cost   int
	audit  *audit.Dispatcher

	// checkDomain, when set, rejects emails whose domain does not resolve.
	checkDomain func(ctx context.Context, email string) bool
}

func NewRegister(
	repo identity.Repository,
	tokens TokenIssuer,
	cost int,
	audit *audit.Dispatcher,
) *Register {
	if cost < bcrypt.DefaultCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Register{
		repo:   repo,
		tokens: tokens,
		cost:   cost,
		audit:  audit,
	}
}

// WithDomainCheck enables an extra email domain check on registration.
func (uc *Register) WithDomainCheck(fn func(ctx context.Context, email string) bool) *Register {
	uc.checkDomain = fn
	return uc
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *Register) Execute(ctx context.Context, in RegisterInput) (*Session, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))

	// --------------------------------------------------
	// 1. Email único
	// --------------------------------------------------
	if _, err := uc.repo.FindByEmail(ctx, email); err == nil {
		return nil, errEmailTaken
	} else if !errors.Is(err, identity.ErrUserNotFound) {
		return nil, err
	}

	if uc.checkDomain != nil && !uc.checkDomain(ctx, email) {
		return nil, errInvalidEmailDomain
	}

	// --------------------------------------------------
	// 2. Rol y referencia
	// --------------------------------------------------
	role, err := resolveRole(in.Role)
	if err != nil {
		return nil, err
	}

	ref, err := resolveReference(ctx, uc.repo, role, in.Reference)
	if err != nil {
		log.Warn().Str("email", email).Str("role", string(role)).Err(err).Msg("registration rejected")
		return nil, err
	}

	// --------------------------------------------------
	// 3. Hash + persistencia
	// --------------------------------------------------
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), uc.cost)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(in.Name)
	if name == "" {
		name = defaultDisplayName
	}

	user := &models.User{
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
		Role:         string(role),
		Reference:    ref,
		Lifecycle:    models.Lifecycle{Active: true},
	}

	if err := uc.repo.Create(ctx, user); err != nil {
		if errors.Is(err, identity.ErrEmailTaken) {
			return nil, errEmailTaken
		}
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &user.ID,
		Action:   "user_registered",
		Entity:   "user",
		EntityID: uintString(user.ID),
		Metadata: map[string]any{"role": user.Role},
	})

	return newSession(uc.tokens, user)
}
