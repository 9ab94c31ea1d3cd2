package identity

import (
	"context"
	"errors"

	"github.com/BruksfildServices01/turnera-api/internal/listing"
	"github.com/BruksfildServices01/turnera-api/internal/models"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailTaken   = errors.New("email already registered")
)

type Repository interface {
	// -------- Users --------
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id uint, vis listing.Visibility) (*models.User, error)
	Create(ctx context.Context, u *models.User) error
	Update(ctx context.Context, u *models.User) error
	List(ctx context.Context, p listing.Params, vis listing.Visibility) ([]models.User, int64, error)

	// -------- References --------
	DoctorExists(ctx context.Context, id uint) (bool, error)
	PatientExists(ctx context.Context, dni string) (bool, error)
}
