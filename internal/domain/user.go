package domain

// Role is the authorization role stored on a user account.
type Role string

const (
	RoleStudent Role = "student"
	RoleAdmin   Role = "admin"
)

// User represents an account that can log in to the system.
type User struct {
	ID           int64
	StudentID    string
	PasswordHash string
	Role         Role
}
