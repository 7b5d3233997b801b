package engine

import (
	"fmt"
	"strings"
)

// SubjectKind classifies how a subject is delivered.
type SubjectKind string

const (
	KindTheory   SubjectKind = "theory"
	KindLab      SubjectKind = "lab"
	KindTutorial SubjectKind = "tutorial"
	KindSeminar  SubjectKind = "seminar"
	KindProject  SubjectKind = "project"
)

// RoomKind classifies physical rooms.
type RoomKind string

const (
	RoomLectureHall  RoomKind = "lecture_hall"
	RoomLaboratory   RoomKind = "laboratory"
	RoomSeminarRoom  RoomKind = "seminar_room"
	RoomComputerLab  RoomKind = "computer_lab"
	RoomTutorialRoom RoomKind = "tutorial_room"
	RoomAuditorium   RoomKind = "auditorium"
)

// TimeRange is a half-open [Start, End) window in minutes from midnight.
// Ranges that exactly touch do not overlap.
type TimeRange struct {
	Start int
	End   int
}

// Overlaps reports whether two ranges share at least one minute.
func (r TimeRange) Overlaps(o TimeRange) bool {
	return r.Start < o.End && o.Start < r.End
}

// Contains reports whether o lies fully inside r.
func (r TimeRange) Contains(o TimeRange) bool {
	return r.Start <= o.Start && o.End <= r.End
}

// Minutes returns the length of the range.
func (r TimeRange) Minutes() int {
	return r.End - r.Start
}

func (r TimeRange) String() string {
	return fmt.Sprintf("%s-%s", FormatClock(r.Start), FormatClock(r.End))
}

// ParseClock converts "HH:MM" into minutes from midnight.
func ParseClock(value string) (int, error) {
	parts := strings.SplitN(strings.TrimSpace(value), ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid clock value %q", value)
	}
	var h, m int
	if _, err := fmt.Sscanf(parts[0]+" "+parts[1], "%d %d", &h, &m); err != nil {
		return 0, fmt.Errorf("invalid clock value %q: %w", value, err)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("clock value %q out of range", value)
	}
	return h*60 + m, nil
}

// FormatClock renders minutes from midnight as "HH:MM".
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// RoomRequirements captures what a subject demands from its room.
type RoomRequirements struct {
	Kind        RoomKind
	MinCapacity int
	Facilities  []string
}

// FacultyRequirements captures who may teach a subject.
type FacultyRequirements struct {
	Specializations []string
	MinimumRank     string
}

// Subject is an immutable snapshot of one academic subject.
type Subject struct {
	ID              string
	Code            string
	Name            string
	Department      string
	Credits         int
	Kind            SubjectKind
	SessionsPerWeek int
	DurationMinutes int
	Room            RoomRequirements
	Faculty         FacultyRequirements
}

// Faculty is an immutable snapshot of one instructor. Workload counters
// are tracked by the resolver, never on the entity itself.
type Faculty struct {
	ID                string
	Name              string
	Rank              string
	Departments       []string
	Specializations   []string
	WeeklyLoadLimit   int // teaching hours per week
	MaxSessionsPerDay int // 0 means no per-day cap
	Availability      map[string]TimeRange   // day -> teachable window, absent day means whole working day
	Blocked           map[string][]TimeRange // day -> explicitly blocked windows
}

// Room is an immutable snapshot of one physical room.
type Room struct {
	ID          string
	Building    string
	Number      string
	Capacity    int
	Kind        RoomKind
	Facilities  []string
	Departments []string               // restriction list, empty means unrestricted
	Blocked     map[string][]TimeRange // maintenance windows
}

// Label renders a human readable room identity.
func (r *Room) Label() string {
	if r.Building == "" {
		return r.Number
	}
	return r.Building + "-" + r.Number
}

// BatchSubject pairs a subject with an optional pre-assigned instructor.
type BatchSubject struct {
	SubjectID string
	FacultyID string
}

// Batch is an immutable snapshot of one student cohort.
type Batch struct {
	ID                string
	Name              string
	Department        string
	Level             string
	Semester          int
	Enrolled          int
	MaxCapacity       int
	Subjects          []BatchSubject
	MaxSessionsPerDay int // 0 falls back to the global default
	Blocked           map[string][]TimeRange
}

// TimeSlot is one candidate placement window produced by the grid builder.
type TimeSlot struct {
	Day      string
	Start    int
	End      int
	Duration int
	Lunch    bool
}

// Range returns the slot as a TimeRange.
func (s TimeSlot) Range() TimeRange {
	return TimeRange{Start: s.Start, End: s.End}
}

// GroupAll marks a requirement covering a whole batch.
const GroupAll = "All"

// SessionRequirement is one atomic unit of teaching time to place.
type SessionRequirement struct {
	Subject     *Subject
	Batch       *Batch
	Group       string
	MaxStudents int
	Duration    int
	Priority    int
	Faculty     *Faculty // nil until resolved
}

// Key identifies a requirement in logs and failure records.
func (r *SessionRequirement) Key() string {
	return fmt.Sprintf("%s/%s/%s", r.Batch.ID, r.Subject.Code, r.Group)
}

// Assignment binds a requirement to a concrete slot and room.
type Assignment struct {
	Requirement *SessionRequirement
	Slot        TimeSlot
	Room        *Room
}

// ConflictKind classifies residual clashes.
type ConflictKind string

const (
	ConflictFaculty ConflictKind = "faculty_clash"
	ConflictRoom    ConflictKind = "room_clash"
	ConflictBatch   ConflictKind = "batch_clash"
)

// Conflict records a pair of clashing assignment indices.
type Conflict struct {
	First    int
	Second   int
	Kind     ConflictKind
	Severity string
}

// FailureReason classifies why a requirement was left unscheduled.
type FailureReason string

const (
	FailureUnassignable FailureReason = "faculty_unassignable"
	FailureUnplaceable  FailureReason = "unplaceable"
	FailureUnknownRef   FailureReason = "unknown_subject"
)

// Failure records a requirement the run could not satisfy.
type Failure struct {
	Requirement *SessionRequirement
	Reason      FailureReason
	Detail      string
}

// Stats summarises one generation run.
type Stats struct {
	TotalSessions     int
	ScheduledSessions int
	FailedSessions    int
	PerDay            map[string]int
	FacultyHours      map[string]float64
	RoomUtilization   map[string]float64
	ConstraintChecks  int64
	Backtracks        int64
	BudgetExhausted   bool
}

// Result is the outcome of one generation run. Assignments may be
// partial; Success is false whenever any session failed.
type Result struct {
	Success     bool
	Assignments []Assignment
	Conflicts   []Conflict
	Score       int
	Failures    []Failure
	Stats       Stats
}
