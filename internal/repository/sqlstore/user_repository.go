package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"exam-clearance/internal/domain"
	"exam-clearance/internal/repository"
)

type UserRepository struct {
	db *DB
	sb sq.StatementBuilderType
}

func NewUserRepository(db *DB) repository.UserRepository {
	return &UserRepository{db: db, sb: db.Dialect.Builder()}
}

func (r *UserRepository) GetByStudentID(ctx context.Context, studentID string) (*domain.User, error) {
	query, args, err := r.sb.Select("id", "student_id", "password_hash", "role").
		From("users").
		Where(sq.Eq{"student_id": studentID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build user query: %w", err)
	}

	var (
		user domain.User
		role string
	)
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(
		&user.ID,
		&user.StudentID,
		&user.PasswordHash,
		&role,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user %q: %w", studentID, repository.ErrNotFound)
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	user.Role = domain.Role(role)
	return &user, nil
}
