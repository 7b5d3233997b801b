package models

import (
	"time"

	"github.com/jmoiron/sqlx/types"
	"github.com/lib/pq"
)

// Room represents a physical teaching room.
type Room struct {
	ID          string         `db:"id" json:"id"`
	Building    string         `db:"building" json:"building"`
	RoomNumber  string         `db:"room_number" json:"room_number"`
	Capacity    int            `db:"capacity" json:"capacity"`
	Kind        string         `db:"kind" json:"kind"`
	Facilities  pq.StringArray `db:"facilities" json:"facilities"`
	Departments pq.StringArray `db:"departments" json:"departments"`
	Blocked     types.JSONText `db:"blocked" json:"blocked,omitempty"`
	Active      bool           `db:"active" json:"active"`
	CreatedAt   time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at" json:"updated_at"`
}

// RoomFilter captures filtering options for listing rooms.
type RoomFilter struct {
	Department  string
	Kind        string
	MinCapacity int
	Active      *bool
	Page        int
	PageSize    int
	SortBy      string
	SortOrder   string
}
