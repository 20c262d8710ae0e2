package repository

import (
	"context"

	"exam-clearance/internal/domain"
)

// StudentRepository exposes the read model over profiles, enrollments and exam schedules.
type StudentRepository interface {
	// ExamSchedule returns the student's enrolled subjects joined with their exam
	// schedules. A subject with several schedules yields several rows.
	ExamSchedule(ctx context.Context, studentID string) ([]domain.ExamEntry, error)
	List(ctx context.Context) ([]domain.StudentProfile, error)
}
