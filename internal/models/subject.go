package models

import (
	"time"

	"github.com/lib/pq"
)

// Subject represents one academic subject offered by a department.
type Subject struct {
	ID              string         `db:"id" json:"id"`
	Code            string         `db:"code" json:"code"`
	Name            string         `db:"name" json:"name"`
	Department      string         `db:"department" json:"department"`
	Credits         int            `db:"credits" json:"credits"`
	Kind            string         `db:"kind" json:"kind"`
	SessionsPerWeek int            `db:"sessions_per_week" json:"sessions_per_week"`
	DurationMinutes int            `db:"duration_minutes" json:"duration_minutes"`
	RoomKind        string         `db:"room_kind" json:"room_kind"`
	MinCapacity     int            `db:"min_capacity" json:"min_capacity"`
	Facilities      pq.StringArray `db:"facilities" json:"facilities"`
	Specializations pq.StringArray `db:"specializations" json:"specializations"`
	MinimumRank     string         `db:"minimum_rank" json:"minimum_rank"`
	CreatedAt       time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time      `db:"updated_at" json:"updated_at"`
}

// SubjectFilter captures supported filters for listing subjects.
type SubjectFilter struct {
	Department string
	Kind       string
	Search     string
	Page       int
	PageSize   int
	SortBy     string
	SortOrder  string
}
