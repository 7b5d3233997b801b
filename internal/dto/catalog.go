package dto

// TimeWindowPayload is the JSON shape for availability and blocked
// windows on catalog records. Times use "HH:MM".
type TimeWindowPayload struct {
	Day   string `json:"day" validate:"required,oneof=Monday Tuesday Wednesday Thursday Friday Saturday Sunday"`
	Start string `json:"start" validate:"required,len=5"`
	End   string `json:"end" validate:"required,len=5"`
}

// CreateSubjectRequest registers a subject in the catalog.
type CreateSubjectRequest struct {
	Code            string   `json:"code" validate:"required"`
	Name            string   `json:"name" validate:"required"`
	Department      string   `json:"department" validate:"required"`
	Credits         int      `json:"credits" validate:"required,min=1,max=10"`
	Kind            string   `json:"kind" validate:"required,oneof=theory lab tutorial seminar"`
	SessionsPerWeek int      `json:"sessionsPerWeek" validate:"required,min=1,max=10"`
	DurationMinutes int      `json:"durationMinutes" validate:"required,min=30,max=480"`
	RoomKind        string   `json:"roomKind" validate:"omitempty"`
	MinCapacity     int      `json:"minCapacity" validate:"omitempty,min=1"`
	Facilities      []string `json:"facilities"`
	Specializations []string `json:"specializations"`
	MinimumRank     string   `json:"minimumRank"`
}

// CreateFacultyRequest registers an instructor.
type CreateFacultyRequest struct {
	FullName          string              `json:"fullName" validate:"required"`
	Email             string              `json:"email" validate:"required,email"`
	Rank              string              `json:"rank" validate:"required"`
	Departments       []string            `json:"departments" validate:"required,min=1"`
	Specializations   []string            `json:"specializations"`
	WeeklyLoadLimit   int                 `json:"weeklyLoadLimit" validate:"required,min=1,max=40"`
	MaxSessionsPerDay int                 `json:"maxSessionsPerDay" validate:"omitempty,min=1,max=10"`
	Availability      []TimeWindowPayload `json:"availability" validate:"omitempty,dive"`
	Blocked           []TimeWindowPayload `json:"blocked" validate:"omitempty,dive"`
}

// CreateRoomRequest registers a room.
type CreateRoomRequest struct {
	Building    string              `json:"building" validate:"required"`
	RoomNumber  string              `json:"roomNumber" validate:"required"`
	Capacity    int                 `json:"capacity" validate:"required,min=1"`
	Kind        string              `json:"kind" validate:"required"`
	Facilities  []string            `json:"facilities"`
	Departments []string            `json:"departments"`
	Blocked     []TimeWindowPayload `json:"blocked" validate:"omitempty,dive"`
}

// BatchSubjectRequest links a subject (optionally with a pinned
// instructor) to a batch.
type BatchSubjectRequest struct {
	SubjectID string `json:"subjectId" validate:"required"`
	FacultyID string `json:"facultyId"`
}

// CreateBatchRequest registers a student batch with its subject list.
type CreateBatchRequest struct {
	Name         string                `json:"name" validate:"required"`
	Department   string                `json:"department" validate:"required"`
	ProgramLevel string                `json:"programLevel" validate:"omitempty"`
	Semester     int                   `json:"semester" validate:"required,min=1,max=12"`
	AcademicYear string                `json:"academicYear" validate:"required"`
	Enrolled     int                   `json:"enrolled" validate:"required,min=1"`
	Blocked      []TimeWindowPayload   `json:"blocked" validate:"omitempty,dive"`
	Subjects     []BatchSubjectRequest `json:"subjects" validate:"required,min=1,dive"`
}

// CatalogListQuery carries shared list filters.
type CatalogListQuery struct {
	Department string `form:"department" json:"department"`
	Kind       string `form:"kind" json:"kind"`
	Search     string `form:"search" json:"search"`
	Page       int    `form:"page" json:"page"`
	PageSize   int    `form:"pageSize" json:"pageSize"`
	SortBy     string `form:"sortBy" json:"sortBy"`
	SortOrder  string `form:"sortOrder" json:"sortOrder"`
}
