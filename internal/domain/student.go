package domain

// StudentProfile is the one-to-one profile attached to a student user.
type StudentProfile struct {
	ID         int64
	UserID     int64
	FullName   string
	RollNo     string
	Department string
	Semester   string
}

// ExamEntry is one row of a student's schedule: the profile joined with an
// enrolled subject and one exam schedule of that subject.
type ExamEntry struct {
	FullName   string
	RollNo     string
	Department string
	Semester   string
	Code       string
	Title      string
	ExamDate   string
	ExamTime   string
}
