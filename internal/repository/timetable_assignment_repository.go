package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/uni-timetable-api/internal/models"
)

// TimetableAssignmentRepository persists the individual session
// placements of a timetable version.
type TimetableAssignmentRepository struct {
	db *sqlx.DB
}

// NewTimetableAssignmentRepository constructs the repository.
func NewTimetableAssignmentRepository(db *sqlx.DB) *TimetableAssignmentRepository {
	return &TimetableAssignmentRepository{db: db}
}

func (r *TimetableAssignmentRepository) exec(exec sqlx.ExtContext) sqlx.ExtContext {
	if exec != nil {
		return exec
	}
	return r.db
}

// InsertBatch stores all assignments belonging to one timetable.
func (r *TimetableAssignmentRepository) InsertBatch(ctx context.Context, exec sqlx.ExtContext, timetableID string, assignments []models.TimetableAssignment) error {
	if timetableID == "" {
		return fmt.Errorf("timetable id is required")
	}
	if len(assignments) == 0 {
		return nil
	}

	target := r.exec(exec)
	now := time.Now().UTC()
	const insertQuery = `
INSERT INTO timetable_assignments (id, timetable_id, day_of_week, start_minute, end_minute, subject_id, batch_id, group_label, faculty_id, room_id, created_at)
VALUES (:id, :timetable_id, :day_of_week, :start_minute, :end_minute, :subject_id, :batch_id, :group_label, :faculty_id, :room_id, :created_at)`

	for i := range assignments {
		assignment := &assignments[i]
		if assignment.ID == "" {
			assignment.ID = uuid.NewString()
		}
		assignment.TimetableID = timetableID
		if assignment.CreatedAt.IsZero() {
			assignment.CreatedAt = now
		}
		if _, err := sqlx.NamedExecContext(ctx, target, insertQuery, assignment); err != nil {
			return fmt.Errorf("insert timetable assignment: %w", err)
		}
	}
	return nil
}

// ListByTimetable returns every placement for one timetable version,
// ordered for stable rendering.
func (r *TimetableAssignmentRepository) ListByTimetable(ctx context.Context, timetableID string) ([]models.TimetableAssignment, error) {
	const query = `SELECT id, timetable_id, day_of_week, start_minute, end_minute, subject_id, batch_id, group_label, faculty_id, room_id, created_at
FROM timetable_assignments WHERE timetable_id = $1
ORDER BY CASE day_of_week
	WHEN 'Monday' THEN 1
	WHEN 'Tuesday' THEN 2
	WHEN 'Wednesday' THEN 3
	WHEN 'Thursday' THEN 4
	WHEN 'Friday' THEN 5
	WHEN 'Saturday' THEN 6
	ELSE 7 END, start_minute, batch_id, group_label`
	var assignments []models.TimetableAssignment
	if err := r.db.SelectContext(ctx, &assignments, query, timetableID); err != nil {
		return nil, fmt.Errorf("list timetable assignments: %w", err)
	}
	return assignments, nil
}

// DeleteByTimetable clears stored placements, used when a draft is
// regenerated or removed.
func (r *TimetableAssignmentRepository) DeleteByTimetable(ctx context.Context, exec sqlx.ExtContext, timetableID string) error {
	const query = `DELETE FROM timetable_assignments WHERE timetable_id = $1`
	if _, err := r.exec(exec).ExecContext(ctx, query, timetableID); err != nil {
		return fmt.Errorf("delete timetable assignments: %w", err)
	}
	return nil
}
