package dto

// ConstraintsRequest overrides the configured engine defaults for one
// generation run. Times use "HH:MM", durations are minutes.
type ConstraintsRequest struct {
	WorkingDays          []string `json:"workingDays" validate:"omitempty,min=1,dive,oneof=Monday Tuesday Wednesday Thursday Friday Saturday Sunday"`
	WorkStart            string   `json:"workStart" validate:"omitempty,len=5"`
	WorkEnd              string   `json:"workEnd" validate:"omitempty,len=5"`
	LunchStart           string   `json:"lunchStart" validate:"omitempty,len=5"`
	LunchEnd             string   `json:"lunchEnd" validate:"omitempty,len=5"`
	AllowedDurations     []int    `json:"allowedDurations" validate:"omitempty,min=1,dive,min=15,max=480"`
	SlotStepMinutes      int      `json:"slotStepMinutes" validate:"omitempty,min=5,max=120"`
	MaxClassesPerDay     int      `json:"maxClassesPerDay" validate:"omitempty,min=1,max=16"`
	BreakDurationMinutes int      `json:"breakDurationMinutes" validate:"omitempty,min=0,max=120"`
	GroupSizeLimit       int      `json:"groupSizeLimit" validate:"omitempty,min=1,max=200"`
	CheckBudget          int      `json:"checkBudget"`
}

// PreassignmentRequest pins a subject for a batch to a specific
// instructor ahead of the resolver.
type PreassignmentRequest struct {
	BatchID   string `json:"batchId" validate:"required"`
	SubjectID string `json:"subjectId" validate:"required"`
	FacultyID string `json:"facultyId" validate:"required"`
}

// GenerateTimetableRequest instructs the engine to build a proposal
// for one department scope.
type GenerateTimetableRequest struct {
	AcademicYear   string                 `json:"academicYear" validate:"required"`
	Semester       int                    `json:"semester" validate:"required,min=1,max=12"`
	Department     string                 `json:"department" validate:"required"`
	Constraints    *ConstraintsRequest    `json:"constraints" validate:"omitempty"`
	Preassignments []PreassignmentRequest `json:"preassignments" validate:"omitempty,dive"`
}

// AssignmentPayload is one placed session in a proposal or a stored
// timetable.
type AssignmentPayload struct {
	DayOfWeek   string `json:"dayOfWeek"`
	Start       string `json:"start"`
	End         string `json:"end"`
	SubjectID   string `json:"subjectId"`
	SubjectName string `json:"subjectName,omitempty"`
	BatchID     string `json:"batchId"`
	GroupLabel  string `json:"groupLabel"`
	FacultyID   string `json:"facultyId"`
	RoomID      string `json:"roomId"`
	RoomLabel   string `json:"roomLabel,omitempty"`
}

// ConflictPayload reports a residual clash in a generated schedule.
type ConflictPayload struct {
	Kind     string             `json:"kind"`
	Severity string             `json:"severity"`
	Message  string             `json:"message"`
	First    *AssignmentPayload `json:"first,omitempty"`
	Second   *AssignmentPayload `json:"second,omitempty"`
}

// FailurePayload reports a session requirement that could not be
// placed or staffed.
type FailurePayload struct {
	Reason     string `json:"reason"`
	SubjectID  string `json:"subjectId"`
	BatchID    string `json:"batchId"`
	GroupLabel string `json:"groupLabel,omitempty"`
	Detail     string `json:"detail,omitempty"`
}

// StatsPayload summarises one engine run.
type StatsPayload struct {
	TotalSessions     int                `json:"totalSessions"`
	ScheduledSessions int                `json:"scheduledSessions"`
	FailedSessions    int                `json:"failedSessions"`
	Backtracks        int                `json:"backtracks"`
	ConstraintChecks  int                `json:"constraintChecks"`
	BudgetExhausted   bool               `json:"budgetExhausted"`
	PerDay            map[string]int     `json:"perDay"`
	FacultyHours      map[string]float64 `json:"facultyHours"`
	RoomUtilization   map[string]float64 `json:"roomUtilization"`
	ElapsedMillis     int64              `json:"elapsedMillis"`
}

// GenerateTimetableResponse returns a generated proposal. Proposals
// are held in memory until saved or expired.
type GenerateTimetableResponse struct {
	ProposalID  string              `json:"proposalId"`
	Success     bool                `json:"success"`
	Score       int                 `json:"score"`
	Assignments []AssignmentPayload `json:"assignments"`
	Conflicts   []ConflictPayload   `json:"conflicts"`
	Failures    []FailurePayload    `json:"failures"`
	Stats       StatsPayload        `json:"stats"`
}

// SaveTimetableRequest persists a proposal as a versioned timetable.
type SaveTimetableRequest struct {
	ProposalID string `json:"proposalId" validate:"required"`
}

// TimetableSummary is the list-side view of a stored timetable.
type TimetableSummary struct {
	ID           string `json:"id"`
	AcademicYear string `json:"academicYear"`
	Semester     int    `json:"semester"`
	Department   string `json:"department"`
	Version      int    `json:"version"`
	Status       string `json:"status"`
	Score        int    `json:"score"`
	Success      bool   `json:"success"`
	CreatedAt    string `json:"createdAt"`
}

// TimetableQuery filters stored timetables by generation scope.
type TimetableQuery struct {
	AcademicYear string `form:"academicYear" json:"academicYear" validate:"required"`
	Semester     int    `form:"semester" json:"semester" validate:"required,min=1,max=12"`
	Department   string `form:"department" json:"department" validate:"required"`
}

// TimetableDetailResponse returns a stored timetable with its
// assignments.
type TimetableDetailResponse struct {
	Timetable   TimetableSummary    `json:"timetable"`
	Assignments []AssignmentPayload `json:"assignments"`
}

// UpdateTimetableStatusRequest moves a timetable through its
// lifecycle.
type UpdateTimetableStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=DRAFT PUBLISHED ARCHIVED"`
}

// BulkGenerateRequest queues async generation runs for several
// departments at once.
type BulkGenerateRequest struct {
	AcademicYear string              `json:"academicYear" validate:"required"`
	Semester     int                 `json:"semester" validate:"required,min=1,max=12"`
	Departments  []string            `json:"departments" validate:"required,min=1,dive,required"`
	Constraints  *ConstraintsRequest `json:"constraints" validate:"omitempty"`
}

// BulkGenerateResponse acknowledges queued runs.
type BulkGenerateResponse struct {
	Queued []string `json:"queued"`
}
