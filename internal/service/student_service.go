package service

import (
	"context"
	"errors"
	"fmt"

	"exam-clearance/internal/domain"
	"exam-clearance/internal/repository"
)

// ErrNoEnrollments is returned when a clearance slip is requested for a
// student without any scheduled exams.
var ErrNoEnrollments = errors.New("no enrolled subjects")

// StudentService serves the schedule, slip and admin read models.
type StudentService interface {
	Schedule(ctx context.Context, studentID string) ([]domain.ExamEntry, error)
	SlipRows(ctx context.Context, studentID string) ([]domain.ExamEntry, error)
	ListStudents(ctx context.Context) ([]domain.StudentProfile, error)
}

type studentService struct {
	students repository.StudentRepository
}

func NewStudentService(students repository.StudentRepository) StudentService {
	return &studentService{students: students}
}

// Schedule returns every (subject, exam) row of the student's own enrollments.
// Zero enrollments is not an error.
func (s *studentService) Schedule(ctx context.Context, studentID string) ([]domain.ExamEntry, error) {
	rows, err := s.students.ExamSchedule(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("load exam schedule: %w", err)
	}
	if rows == nil {
		rows = []domain.ExamEntry{}
	}
	return rows, nil
}

func (s *studentService) SlipRows(ctx context.Context, studentID string) ([]domain.ExamEntry, error) {
	rows, err := s.Schedule(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNoEnrollments
	}
	return rows, nil
}

func (s *studentService) ListStudents(ctx context.Context) ([]domain.StudentProfile, error) {
	students, err := s.students.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	if students == nil {
		students = []domain.StudentProfile{}
	}
	return students, nil
}
