// Package sqlstoretest provides an in-memory SQLite database with the
// students schema for tests.
package sqlstoretest

import (
	"context"
	_ "embed"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"exam-clearance/internal/domain"
	"exam-clearance/internal/repository/sqlstore"
)

//go:embed schema.sql
var schema string

// Open returns a fresh in-memory database with the schema applied.
func Open(t testing.TB) *sqlstore.DB {
	t.Helper()
	db, err := sqlstore.Open(context.Background(), sqlstore.Options{
		Driver: sqlstore.DriverSQLite,
		DSN:    ":memory:",
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	for _, stmt := range strings.Split(schema, ";") {
		if strings.TrimSpace(stmt) == "" {
			continue
		}
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("apply schema: %v", err)
		}
	}
	return db
}

// AddUser inserts a login account with a bcrypt hash of password.
func AddUser(t testing.TB, db *sqlstore.DB, studentID, password string, role domain.Role) int64 {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return insert(t, db, `INSERT INTO users (student_id, password_hash, role) VALUES (?, ?, ?)`,
		studentID, string(hash), string(role))
}

// AddStudent inserts the profile for userID.
func AddStudent(t testing.TB, db *sqlstore.DB, userID int64, fullName, rollNo, department string, semester int) int64 {
	t.Helper()
	return insert(t, db, `INSERT INTO students (user_id, full_name, roll_no, department, semester) VALUES (?, ?, ?, ?, ?)`,
		userID, fullName, rollNo, department, semester)
}

func AddSubject(t testing.TB, db *sqlstore.DB, code, title string) int64 {
	t.Helper()
	return insert(t, db, `INSERT INTO subjects (code, title) VALUES (?, ?)`, code, title)
}

func Enroll(t testing.TB, db *sqlstore.DB, studentRowID, subjectID int64) {
	t.Helper()
	insert(t, db, `INSERT INTO student_subjects (student_id, subject_id) VALUES (?, ?)`, studentRowID, subjectID)
}

// AddExam schedules an exam; date is YYYY-MM-DD and clock is HH:MM:SS.
func AddExam(t testing.TB, db *sqlstore.DB, subjectID int64, date, clock string) int64 {
	t.Helper()
	return insert(t, db, `INSERT INTO exam_schedules (subject_id, exam_date, exam_time) VALUES (?, ?, ?)`,
		subjectID, date, clock)
}

func insert(t testing.TB, db *sqlstore.DB, query string, args ...any) int64 {
	t.Helper()
	res, err := db.Exec(query, args...)
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		t.Fatalf("last insert id: %v", err)
	}
	return id
}
