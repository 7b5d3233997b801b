// Package engine implements the timetable generation core: a
// constraint-satisfaction search that turns subject, faculty, room and
// batch snapshots into a conflict-free weekly schedule. The engine is
// storage-free and side-effect free; one Engine value serves one run,
// and independent runs may execute concurrently.
package engine

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Input wraps the immutable snapshots a run consumes. The engine never
// mutates these values; callers must snapshot-and-generate.
type Input struct {
	Subjects []*Subject
	Faculty  []*Faculty
	Rooms    []*Room
	Batches  []*Batch
}

// ErrEmptyInput rejects runs with nothing to schedule against.
var ErrEmptyInput = errors.New("empty engine input")

// Engine executes generation runs against a fixed configuration.
type Engine struct {
	cons     Constraints
	observer Observer
	logger   *zap.Logger
}

// Option customises engine construction.
type Option func(*Engine)

// WithObserver installs a trace observer for search events.
func WithObserver(observer Observer) Option {
	return func(e *Engine) { e.observer = observer }
}

// WithLogger attaches a logger for run-level diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

// New validates the constraints and builds an engine. Configuration
// problems are the only errors this package raises eagerly.
func New(cons Constraints, opts ...Option) (*Engine, error) {
	if err := cons.Normalize(); err != nil {
		return nil, err
	}
	e := &Engine{cons: cons, observer: NopObserver, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Constraints returns the normalized run configuration.
func (e *Engine) Constraints() Constraints {
	return e.cons
}

// Generate runs the full pipeline: grid, expansion, faculty
// resolution, difficulty ordering, backtracking search, then conflict
// detection and scoring. Infeasibility is not an error: the result
// carries Success=false together with the partial schedule and failure
// records. Only invalid input rejects the call.
func (e *Engine) Generate(input Input) (*Result, error) {
	if len(input.Rooms) == 0 {
		return nil, fmt.Errorf("%w: at least one room is required", ErrEmptyInput)
	}
	if len(input.Batches) == 0 {
		return nil, fmt.Errorf("%w: at least one batch is required", ErrEmptyInput)
	}
	if len(input.Subjects) == 0 {
		return nil, fmt.Errorf("%w: at least one subject is required", ErrEmptyInput)
	}

	started := time.Now()

	slots := BuildTimeGrid(&e.cons)

	subjectsByID := make(map[string]*Subject, len(input.Subjects))
	for _, subject := range input.Subjects {
		subjectsByID[subject.ID] = subject
	}

	reqs, failures := ExpandRequirements(input.Batches, subjectsByID, e.cons.GroupSizeLimit)
	total := len(reqs) + len(failures)

	resolved, resolveFailures := ResolveFaculty(reqs, PreassignmentIndex(input.Batches), input.Faculty)
	for _, failure := range resolveFailures {
		e.observer.Skipped(failure.Requirement, failure.Reason)
	}
	failures = append(failures, resolveFailures...)

	OrderByDifficulty(resolved, slots, input.Rooms)

	state := newSearchState(&e.cons, slots, input.Rooms, e.observer)
	failures = append(failures, state.Run(resolved)...)

	assignments := state.schedule
	conflicts := DetectConflicts(assignments)
	score := ScoreSchedule(assignments, &e.cons, len(input.Rooms))

	result := &Result{
		Success:     len(failures) == 0,
		Assignments: assignments,
		Conflicts:   conflicts,
		Score:       score,
		Failures:    failures,
		Stats:       e.buildStats(assignments, total, len(failures), state),
	}

	e.logger.Info("generation run finished",
		zap.Bool("success", result.Success),
		zap.Int("scheduled", result.Stats.ScheduledSessions),
		zap.Int("failed", result.Stats.FailedSessions),
		zap.Int("score", result.Score),
		zap.Int64("constraint_checks", state.checks),
		zap.Int64("backtracks", state.backtracks),
		zap.Duration("elapsed", time.Since(started)),
	)
	return result, nil
}

func (e *Engine) buildStats(assignments []Assignment, total, failed int, state *searchState) Stats {
	stats := Stats{
		TotalSessions:     total,
		ScheduledSessions: len(assignments),
		FailedSessions:    failed,
		PerDay:            make(map[string]int, len(e.cons.WorkingDays)),
		FacultyHours:      make(map[string]float64),
		RoomUtilization:   make(map[string]float64),
		ConstraintChecks:  state.checks,
		Backtracks:        state.backtracks,
		BudgetExhausted:   state.exhausted,
	}
	for _, day := range e.cons.WorkingDays {
		stats.PerDay[day] = 0
	}

	roomMinutes := make(map[string]int)
	for _, a := range assignments {
		stats.PerDay[a.Slot.Day]++
		stats.FacultyHours[a.Requirement.Faculty.ID] += float64(a.Slot.Duration) / 60
		roomMinutes[a.Room.ID] += a.Slot.Duration
	}

	weeklyCapacity := (e.cons.WorkingHours.Minutes() - e.cons.LunchBreak.Minutes()) * len(e.cons.WorkingDays)
	if weeklyCapacity > 0 {
		for roomID, minutes := range roomMinutes {
			stats.RoomUtilization[roomID] = float64(minutes) / float64(weeklyCapacity) * 100
		}
	}
	return stats
}
