package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func TestIsUniqueViolation(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: ConfirmedSlotIndex}
	wrapped := fmt.Errorf("insert: %w", pgErr)

	if !IsUniqueViolation(wrapped) {
		t.Error("expected unique violation")
	}
	if !IsUniqueViolation(wrapped, ConfirmedSlotIndex) {
		t.Error("expected match on constraint name")
	}
	if IsUniqueViolation(wrapped, "idx_users_email") {
		t.Error("constraint name should not match")
	}
	if IsUniqueViolation(&pgconn.PgError{Code: "23503"}) {
		t.Error("foreign key violation is not a unique violation")
	}
}

func TestTranslate(t *testing.T) {
	if !errors.Is(translate(gorm.ErrRecordNotFound), ErrNotFound) {
		t.Error("record not found should map to ErrNotFound")
	}
	if !errors.Is(translate(&pgconn.PgError{Code: "23505", ConstraintName: "idx_users_email"}), ErrDuplicate) {
		t.Error("unique violation should map to ErrDuplicate")
	}
	if translate(nil) != nil {
		t.Error("nil stays nil")
	}
}
