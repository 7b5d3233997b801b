package models

import (
	"time"

	"github.com/jmoiron/sqlx/types"
)

// TimetableStatus represents lifecycle phases for generated timetables.
type TimetableStatus string

const (
	TimetableStatusDraft     TimetableStatus = "DRAFT"
	TimetableStatusPublished TimetableStatus = "PUBLISHED"
	TimetableStatusArchived  TimetableStatus = "ARCHIVED"
)

// Timetable captures a versioned generated schedule for one
// (academic year, semester, department) scope.
type Timetable struct {
	ID           string          `db:"id" json:"id"`
	AcademicYear string          `db:"academic_year" json:"academic_year"`
	Semester     int             `db:"semester" json:"semester"`
	Department   string          `db:"department" json:"department"`
	Version      int             `db:"version" json:"version"`
	Status       TimetableStatus `db:"status" json:"status"`
	Score        int             `db:"score" json:"score"`
	Success      bool            `db:"success" json:"success"`
	Meta         types.JSONText  `db:"meta" json:"meta"`
	CreatedAt    time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time       `db:"updated_at" json:"updated_at"`
}

// TimetableAssignment is one persisted session placement inside a
// timetable version.
type TimetableAssignment struct {
	ID          string    `db:"id" json:"id"`
	TimetableID string    `db:"timetable_id" json:"timetable_id"`
	DayOfWeek   string    `db:"day_of_week" json:"day_of_week"`
	StartMinute int       `db:"start_minute" json:"start_minute"`
	EndMinute   int       `db:"end_minute" json:"end_minute"`
	SubjectID   string    `db:"subject_id" json:"subject_id"`
	BatchID     string    `db:"batch_id" json:"batch_id"`
	GroupLabel  string    `db:"group_label" json:"group_label"`
	FacultyID   string    `db:"faculty_id" json:"faculty_id"`
	RoomID      string    `db:"room_id" json:"room_id"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// TimetableQuery filters timetable summaries by generation scope.
type TimetableQuery struct {
	AcademicYear string
	Semester     int
	Department   string
}
