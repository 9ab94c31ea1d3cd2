package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/turnera-api/internal/listing"
)

type StoreOptions struct {
	// Key is the primary key column.
	Key string

	// SoftDelete marks tables carrying the lifecycle active column.
	SoftDelete bool

	Preload []string

	// FilterColumns are matched case-insensitively against Params.Filter.
	FilterColumns []string

	SortColumns map[string]string
	DefaultSort string
}

// Criteria are equality filters, column to value. Keys are never user input.
type Criteria map[string]any

// LifecycleStore is the gorm storage collaborator shared by the reference
// entities. Lifecycle operations require SoftDelete.
type LifecycleStore[T any] struct {
	db   *gorm.DB
	opts StoreOptions
}

func NewLifecycleStore[T any](db *gorm.DB, opts StoreOptions) *LifecycleStore[T] {
	if opts.Key == "" {
		opts.Key = "id"
	}
	if opts.DefaultSort == "" {
		opts.DefaultSort = opts.Key
	}
	return &LifecycleStore[T]{db: db, opts: opts}
}

func (s *LifecycleStore[T]) preloaded(tx *gorm.DB) *gorm.DB {
	for _, p := range s.opts.Preload {
		tx = tx.Preload(p)
	}
	return tx
}

func (s *LifecycleStore[T]) scoped(tx *gorm.DB, vis listing.Visibility) *gorm.DB {
	if !s.opts.SoftDelete {
		return tx
	}
	return tx.Scopes(visibility(vis, "active"))
}

func (s *LifecycleStore[T]) FindByKey(ctx context.Context, key any, vis listing.Visibility) (*T, error) {
	var v T
	tx := s.preloaded(s.db.WithContext(ctx))
	tx = s.scoped(tx, vis)

	if err := tx.Where(s.opts.Key+" = ?", key).First(&v).Error; err != nil {
		return nil, translate(err)
	}
	return &v, nil
}

func (s *LifecycleStore[T]) FindMany(
	ctx context.Context,
	crit Criteria,
	p listing.Params,
	vis listing.Visibility,
) ([]T, int64, error) {

	base := func() *gorm.DB {
		tx := s.db.WithContext(ctx).Model(new(T))
		tx = s.scoped(tx, vis)
		if len(crit) > 0 {
			tx = tx.Where(map[string]any(crit))
		}
		if p.Filter != "" && len(s.opts.FilterColumns) > 0 {
			like := "%" + strings.ToLower(p.Filter) + "%"
			conds := make([]string, 0, len(s.opts.FilterColumns))
			args := make([]any, 0, len(s.opts.FilterColumns))
			for _, col := range s.opts.FilterColumns {
				conds = append(conds, "LOWER("+col+") LIKE ?")
				args = append(args, like)
			}
			tx = tx.Where("("+strings.Join(conds, " OR ")+")", args...)
		}
		return tx
	}

	var total int64
	if err := base().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []T
	err := s.preloaded(base()).
		Order(p.OrderClause(s.opts.SortColumns, s.opts.DefaultSort)).
		Scopes(paginate(p.Limit, p.Offset())).
		Find(&items).Error
	if err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

func (s *LifecycleStore[T]) Create(ctx context.Context, v *T) error {
	return translate(s.db.WithContext(ctx).Create(v).Error)
}

// Update writes every column of v. Associations are left untouched; use
// ReplaceAssociation for those.
func (s *LifecycleStore[T]) Update(ctx context.Context, v *T) error {
	return translate(s.db.WithContext(ctx).Omit(clause.Associations).Save(v).Error)
}

func (s *LifecycleStore[T]) ReplaceAssociation(ctx context.Context, v *T, name string, values any) error {
	return translate(s.db.WithContext(ctx).Model(v).Association(name).Replace(values))
}

// SoftDelete deactivates the row. Deactivating an inactive row succeeds.
func (s *LifecycleStore[T]) SoftDelete(ctx context.Context, key any) error {
	res := s.db.WithContext(ctx).
		Model(new(T)).
		Where(s.opts.Key+" = ?", key).
		Update("active", false)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Restore reactivates an inactive row; active or missing rows are ErrNotFound.
func (s *LifecycleStore[T]) Restore(ctx context.Context, key any) error {
	res := s.db.WithContext(ctx).
		Model(new(T)).
		Where(s.opts.Key+" = ? AND active = ?", key, false).
		Update("active", true)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the row for good.
func (s *LifecycleStore[T]) Delete(ctx context.Context, key any) error {
	res := s.db.WithContext(ctx).
		Where(s.opts.Key+" = ?", key).
		Delete(new(T))
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
