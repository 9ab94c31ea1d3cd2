package repository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/turnera-api/internal/domain/identity"
	"github.com/BruksfildServices01/turnera-api/internal/listing"
	"github.com/BruksfildServices01/turnera-api/internal/models"
)

type UserGormRepository struct {
	db    *gorm.DB
	store *LifecycleStore[models.User]
}

var _ identity.Repository = (*UserGormRepository)(nil)

func NewUserGormRepository(db *gorm.DB) *UserGormRepository {
	return &UserGormRepository{
		db: db,
		store: NewLifecycleStore[models.User](db, StoreOptions{
			Key:           "id",
			SoftDelete:    true,
			FilterColumns: []string{"name", "email"},
			SortColumns: map[string]string{
				"id":     "id",
				"nombre": "name",
				"name":   "name",
				"email":  "email",
				"rol":    "role",
				"role":   "role",
			},
			DefaultSort: "id",
		}),
	}
}

// Store exposes the lifecycle operations (deactivate, restore) on users.
func (r *UserGormRepository) Store() *LifecycleStore[models.User] {
	return r.store
}

func (r *UserGormRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := r.db.WithContext(ctx).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, identity.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserGormRepository) FindByID(ctx context.Context, id uint, vis listing.Visibility) (*models.User, error) {
	u, err := r.store.FindByKey(ctx, id, vis)
	if errors.Is(err, ErrNotFound) {
		return nil, identity.ErrUserNotFound
	}
	return u, err
}

func (r *UserGormRepository) Create(ctx context.Context, u *models.User) error {
	err := r.store.Create(ctx, u)
	if errors.Is(err, ErrDuplicate) {
		return identity.ErrEmailTaken
	}
	return err
}

func (r *UserGormRepository) Update(ctx context.Context, u *models.User) error {
	err := r.store.Update(ctx, u)
	if errors.Is(err, ErrDuplicate) {
		return identity.ErrEmailTaken
	}
	return err
}

func (r *UserGormRepository) List(
	ctx context.Context,
	p listing.Params,
	vis listing.Visibility,
) ([]models.User, int64, error) {
	return r.store.FindMany(ctx, nil, p, vis)
}

func (r *UserGormRepository) DoctorExists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Doctor{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *UserGormRepository) PatientExists(ctx context.Context, dni string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Patient{}).Where("dni = ?", dni).Count(&count).Error
	return count > 0, err
}
