package models

import (
	"time"

	"github.com/jmoiron/sqlx/types"
)

// Batch represents a student cohort scoped to a department semester.
type Batch struct {
	ID                string         `db:"id" json:"id"`
	Name              string         `db:"name" json:"name"`
	Department        string         `db:"department" json:"department"`
	ProgramLevel      string         `db:"program_level" json:"program_level"`
	Semester          int            `db:"semester" json:"semester"`
	AcademicYear      string         `db:"academic_year" json:"academic_year"`
	Enrolled          int            `db:"enrolled" json:"enrolled"`
	MaxCapacity       int            `db:"max_capacity" json:"max_capacity"`
	MaxSessionsPerDay int            `db:"max_sessions_per_day" json:"max_sessions_per_day"`
	Blocked           types.JSONText `db:"blocked" json:"blocked,omitempty"`
	CreatedAt         time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time      `db:"updated_at" json:"updated_at"`
}

// BatchSubject links a batch to a subject it takes, optionally with a
// pre-assigned instructor.
type BatchSubject struct {
	ID        string    `db:"id" json:"id"`
	BatchID   string    `db:"batch_id" json:"batch_id"`
	SubjectID string    `db:"subject_id" json:"subject_id"`
	FacultyID *string   `db:"faculty_id" json:"faculty_id,omitempty"`
	Position  int       `db:"position" json:"position"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// BatchFilter captures filtering options for listing batches.
type BatchFilter struct {
	Department   string
	AcademicYear string
	Semester     int
	Search       string
	Page         int
	PageSize     int
	SortBy       string
	SortOrder    string
}
