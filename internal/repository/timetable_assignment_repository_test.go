package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/uni-timetable-api/internal/models"
)

func newAssignmentRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestTimetableAssignmentRepositoryInsertBatch(t *testing.T) {
	db, mock, cleanup := newAssignmentRepoMock(t)
	defer cleanup()
	repo := NewTimetableAssignmentRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO timetable_assignments")).
		WithArgs(sqlmock.AnyArg(), "tt-1", "Monday", 540, 600, "sub-1", "batch-1", "All", "fac-1", "room-1", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO timetable_assignments")).
		WithArgs(sqlmock.AnyArg(), "tt-1", "Tuesday", 600, 720, "sub-2", "batch-1", "Group 1", "fac-2", "room-2", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	assignments := []models.TimetableAssignment{
		{DayOfWeek: "Monday", StartMinute: 540, EndMinute: 600, SubjectID: "sub-1", BatchID: "batch-1", GroupLabel: "All", FacultyID: "fac-1", RoomID: "room-1"},
		{DayOfWeek: "Tuesday", StartMinute: 600, EndMinute: 720, SubjectID: "sub-2", BatchID: "batch-1", GroupLabel: "Group 1", FacultyID: "fac-2", RoomID: "room-2"},
	}
	err := repo.InsertBatch(context.Background(), nil, "tt-1", assignments)
	require.NoError(t, err)
	assert.Equal(t, "tt-1", assignments[0].TimetableID)
	assert.NotEmpty(t, assignments[1].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTimetableAssignmentRepositoryInsertBatchEmpty(t *testing.T) {
	db, mock, cleanup := newAssignmentRepoMock(t)
	defer cleanup()
	repo := NewTimetableAssignmentRepository(db)

	require.NoError(t, repo.InsertBatch(context.Background(), nil, "tt-1", nil))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTimetableAssignmentRepositoryListByTimetable(t *testing.T) {
	db, mock, cleanup := newAssignmentRepoMock(t)
	defer cleanup()
	repo := NewTimetableAssignmentRepository(db)

	rows := sqlmock.NewRows([]string{"id", "timetable_id", "day_of_week", "start_minute", "end_minute", "subject_id", "batch_id", "group_label", "faculty_id", "room_id", "created_at"}).
		AddRow("asg-1", "tt-1", "Monday", 540, 600, "sub-1", "batch-1", "All", "fac-1", "room-1", time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("FROM timetable_assignments WHERE timetable_id = $1")).
		WithArgs("tt-1").
		WillReturnRows(rows)

	list, err := repo.ListByTimetable(context.Background(), "tt-1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Monday", list[0].DayOfWeek)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTimetableAssignmentRepositoryDeleteByTimetable(t *testing.T) {
	db, mock, cleanup := newAssignmentRepoMock(t)
	defer cleanup()
	repo := NewTimetableAssignmentRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM timetable_assignments WHERE timetable_id = $1")).
		WithArgs("tt-1").
		WillReturnResult(sqlmock.NewResult(1, 4))

	require.NoError(t, repo.DeleteByTimetable(context.Background(), nil, "tt-1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
