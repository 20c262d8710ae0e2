package service

import (
	"context"
	"errors"
	"strings"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"exam-clearance/internal/domain"
	"exam-clearance/internal/repository"
)

var (
	// ErrInvalidCredentials indicates that provided login credentials are incorrect.
	// Unknown identifiers and wrong passwords both map to it.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// dummyHash is compared against when the identifier does not exist so that
// both failure paths spend one bcrypt comparison.
var dummyHash = sync.OnceValue(func() []byte {
	hash, _ := bcrypt.GenerateFromPassword([]byte("not-a-real-password"), bcrypt.DefaultCost)
	return hash
})

// UserService authenticates login accounts.
type UserService interface {
	Authenticate(ctx context.Context, studentID, password string) (*domain.User, error)
}

type userService struct {
	users repository.UserRepository
}

func NewUserService(users repository.UserRepository) UserService {
	return &userService{users: users}
}

func (s *userService) Authenticate(ctx context.Context, studentID, password string) (*domain.User, error) {
	studentID = strings.TrimSpace(studentID)
	if studentID == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.users.GetByStudentID(ctx, studentID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			_ = bcrypt.CompareHashAndPassword(dummyHash(), []byte(password))
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return sanitizeUser(user), nil
}

func sanitizeUser(user *domain.User) *domain.User {
	if user == nil {
		return nil
	}
	return &domain.User{
		ID:        user.ID,
		StudentID: user.StudentID,
		Role:      user.Role,
	}
}
