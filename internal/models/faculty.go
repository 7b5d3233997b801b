package models

import (
	"time"

	"github.com/jmoiron/sqlx/types"
	"github.com/lib/pq"
)

// Faculty represents an instructor record. Blocked windows and the
// weekly availability map are stored as JSON documents keyed by day.
type Faculty struct {
	ID                string         `db:"id" json:"id"`
	FullName          string         `db:"full_name" json:"full_name"`
	Email             string         `db:"email" json:"email"`
	Rank              string         `db:"rank" json:"rank"`
	Departments       pq.StringArray `db:"departments" json:"departments"`
	Specializations   pq.StringArray `db:"specializations" json:"specializations"`
	WeeklyLoadLimit   int            `db:"weekly_load_limit" json:"weekly_load_limit"`
	MaxSessionsPerDay int            `db:"max_sessions_per_day" json:"max_sessions_per_day"`
	Availability      types.JSONText `db:"availability" json:"availability,omitempty"`
	Blocked           types.JSONText `db:"blocked" json:"blocked,omitempty"`
	Active            bool           `db:"active" json:"active"`
	CreatedAt         time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time      `db:"updated_at" json:"updated_at"`
}

// TimeWindow is the JSON shape used for availability and blocked
// windows on faculty, room and batch records.
type TimeWindow struct {
	Day   string `json:"day"`
	Start string `json:"start"`
	End   string `json:"end"`
}

// FacultyFilter captures filtering options for listing faculty.
type FacultyFilter struct {
	Department string
	Active     *bool
	Search     string
	Page       int
	PageSize   int
	SortBy     string
	SortOrder  string
}
