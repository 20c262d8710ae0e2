package repository

import (
	"context"
	"errors"

	"exam-clearance/internal/domain"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("not found")

// UserRepository defines read access to login accounts.
type UserRepository interface {
	GetByStudentID(ctx context.Context, studentID string) (*domain.User, error)
}
