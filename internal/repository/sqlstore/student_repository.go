package sqlstore

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"exam-clearance/internal/domain"
	"exam-clearance/internal/repository"
)

type StudentRepository struct {
	db *DB
	sb sq.StatementBuilderType
}

func NewStudentRepository(db *DB) repository.StudentRepository {
	return &StudentRepository{db: db, sb: db.Dialect.Builder()}
}

func (r *StudentRepository) ExamSchedule(ctx context.Context, studentID string) ([]domain.ExamEntry, error) {
	query, args, err := r.sb.Select(
		"s.full_name",
		"s.roll_no",
		"s.department",
		r.db.Dialect.AsText("s.semester", "semester"),
		"sub.code",
		"sub.title",
		r.db.Dialect.AsText("es.exam_date", "exam_date"),
		r.db.Dialect.AsText("es.exam_time", "exam_time"),
	).
		From("students s").
		Join("users u ON u.id = s.user_id").
		Join("student_subjects ss ON ss.student_id = s.id").
		Join("subjects sub ON sub.id = ss.subject_id").
		Join("exam_schedules es ON es.subject_id = sub.id").
		Where(sq.Eq{"u.student_id": studentID}).
		OrderBy("es.exam_date", "es.exam_time", "sub.code", "es.id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build exam schedule query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query exam schedule: %w", err)
	}
	defer rows.Close()

	entries := make([]domain.ExamEntry, 0)
	for rows.Next() {
		var e domain.ExamEntry
		if err := rows.Scan(
			&e.FullName,
			&e.RollNo,
			&e.Department,
			&e.Semester,
			&e.Code,
			&e.Title,
			&e.ExamDate,
			&e.ExamTime,
		); err != nil {
			return nil, fmt.Errorf("scan exam entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate exam schedule: %w", err)
	}
	return entries, nil
}

func (r *StudentRepository) List(ctx context.Context) ([]domain.StudentProfile, error) {
	query, args, err := r.sb.Select(
		"id",
		"user_id",
		"full_name",
		"roll_no",
		"department",
		r.db.Dialect.AsText("semester", "semester"),
	).
		From("students").
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build student list query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query students: %w", err)
	}
	defer rows.Close()

	students := make([]domain.StudentProfile, 0)
	for rows.Next() {
		var s domain.StudentProfile
		if err := rows.Scan(&s.ID, &s.UserID, &s.FullName, &s.RollNo, &s.Department, &s.Semester); err != nil {
			return nil, fmt.Errorf("scan student: %w", err)
		}
		students = append(students, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate students: %w", err)
	}
	return students, nil
}
