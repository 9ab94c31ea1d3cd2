package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/turnera-api/internal/audit"
	"github.com/BruksfildServices01/turnera-api/internal/domain/identity"
)

type Login struct {
	repo   identity.Repository
	tokens TokenIssuer
	audit  *audit.Dispatcher
}

func NewLogin(
	repo identity.Repository,
	tokens TokenIssuer,
	audit *audit.Dispatcher,
) *Login {
	return &Login{
		repo:   repo,
		tokens: tokens,
		audit:  audit,
	}
}

// Execute answers unknown email and wrong password with the same error.
func (uc *Login) Execute(ctx context.Context, email, password string) (*Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := uc.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, identity.ErrUserNotFound) {
			uc.failed(email, "unknown_email", nil)
			return nil, errInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		uc.failed(email, "wrong_password", &user.ID)
		return nil, errInvalidCredentials
	}

	if !user.IsActive() {
		uc.failed(email, "inactive_user", &user.ID)
		return nil, errInactiveUser
	}

	return newSession(uc.tokens, user)
}

func (uc *Login) failed(email, reason string, userID *uint) {
	log.Warn().Str("email", email).Str("reason", reason).Msg("login failed")

	uc.audit.Dispatch(audit.Event{
		UserID:   userID,
		Action:   "login_failed",
		Entity:   "user",
		Metadata: map[string]any{"email": email, "reason": reason},
	})
}
