package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"exam-clearance/internal/domain"
	"exam-clearance/internal/repository"
)

type fakeUsers struct {
	users map[string]domain.User
	err   error
}

func (f *fakeUsers) GetByStudentID(_ context.Context, studentID string) (*domain.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.users[studentID]
	if !ok {
		return nil, fmt.Errorf("user %q: %w", studentID, repository.ErrNotFound)
	}
	return &u, nil
}

type fakeStudents struct {
	rows     map[string][]domain.ExamEntry
	students []domain.StudentProfile
	err      error
}

func (f *fakeStudents) ExamSchedule(_ context.Context, studentID string) ([]domain.ExamEntry, error) {
	return f.rows[studentID], f.err
}

func (f *fakeStudents) List(context.Context) ([]domain.StudentProfile, error) {
	return f.students, f.err
}

func newFakeUsers(t *testing.T) *fakeUsers {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("correct"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	return &fakeUsers{users: map[string]domain.User{
		"2021-1-60-001": {ID: 1, StudentID: "2021-1-60-001", PasswordHash: string(hash), Role: domain.RoleStudent},
	}}
}

func TestAuthenticate(t *testing.T) {
	svc := NewUserService(newFakeUsers(t))

	user, err := svc.Authenticate(context.Background(), " 2021-1-60-001 ", "correct")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if user.ID != 1 || user.Role != domain.RoleStudent {
		t.Fatalf("unexpected user %+v", user)
	}
	if user.PasswordHash != "" {
		t.Fatalf("password hash must not leave the service")
	}
}

func TestAuthenticateFailuresAreIndistinguishable(t *testing.T) {
	svc := NewUserService(newFakeUsers(t))

	tests := []struct {
		name      string
		studentID string
		password  string
	}{
		{"wrong password", "2021-1-60-001", "wrong"},
		{"unknown identifier", "2021-1-60-999", "correct"},
		{"empty identifier", "", "correct"},
		{"empty password", "2021-1-60-001", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Authenticate(context.Background(), tt.studentID, tt.password)
			if !errors.Is(err, ErrInvalidCredentials) {
				t.Fatalf("expected ErrInvalidCredentials, got %v", err)
			}
		})
	}
}

func TestAuthenticateStoreFailure(t *testing.T) {
	boom := errors.New("connection refused")
	svc := NewUserService(&fakeUsers{err: boom})
	_, err := svc.Authenticate(context.Background(), "x", "y")
	if !errors.Is(err, boom) || errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected store error to pass through, got %v", err)
	}
}

func TestScheduleAndSlipRows(t *testing.T) {
	rows := []domain.ExamEntry{{Code: "CSE-101"}, {Code: "MAT-201"}}
	svc := NewStudentService(&fakeStudents{rows: map[string][]domain.ExamEntry{"a": rows}})

	got, err := svc.Schedule(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("schedule: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty slice, got %#v", got)
	}

	if _, err := svc.SlipRows(context.Background(), "nobody"); !errors.Is(err, ErrNoEnrollments) {
		t.Fatalf("expected ErrNoEnrollments, got %v", err)
	}

	got, err = svc.SlipRows(context.Background(), "a")
	if err != nil {
		t.Fatalf("slip rows: %v", err)
	}
	if len(got) != 2 || got[0].Code != "CSE-101" {
		t.Fatalf("unexpected rows %+v", got)
	}
}

func TestListStudentsWrapsErrors(t *testing.T) {
	boom := errors.New("db down")
	svc := NewStudentService(&fakeStudents{err: boom})
	if _, err := svc.ListStudents(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped error, got %v", err)
	}

	svc = NewStudentService(&fakeStudents{})
	students, err := svc.ListStudents(context.Background())
	if err != nil || students == nil {
		t.Fatalf("expected empty list, got %v %v", students, err)
	}
}
