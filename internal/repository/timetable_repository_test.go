package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/jmoiron/sqlx/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/uni-timetable-api/internal/models"
)

func newTimetableRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestTimetableRepositoryCreateVersioned(t *testing.T) {
	db, mock, cleanup := newTimetableRepoMock(t)
	defer cleanup()
	repo := NewTimetableRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COALESCE(MAX(version), 0) + 1 FROM timetables")).
		WithArgs("2026-27", 1, "CSE").
		WillReturnRows(sqlmock.NewRows([]string{"next"}).AddRow(3))

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO timetables")).
		WithArgs(sqlmock.AnyArg(), "2026-27", 1, "CSE", 3, string(models.TimetableStatusDraft), 92, true, sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	payload := &models.Timetable{
		AcademicYear: "2026-27",
		Semester:     1,
		Department:   "CSE",
		Score:        92,
		Success:      true,
		Meta:         types.JSONText(`{"backtracks":4}`),
	}
	err := repo.CreateVersioned(context.Background(), nil, payload)
	require.NoError(t, err)
	assert.Equal(t, 3, payload.Version)
	assert.NotEmpty(t, payload.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTimetableRepositoryCreateVersionedMissingScope(t *testing.T) {
	db, _, cleanup := newTimetableRepoMock(t)
	defer cleanup()
	repo := NewTimetableRepository(db)

	err := repo.CreateVersioned(context.Background(), nil, &models.Timetable{Department: "CSE"})
	assert.Error(t, err)
}

func TestTimetableRepositoryListByScope(t *testing.T) {
	db, mock, cleanup := newTimetableRepoMock(t)
	defer cleanup()
	repo := NewTimetableRepository(db)

	rows := sqlmock.NewRows([]string{"id", "academic_year", "semester", "department", "version", "status", "score", "success", "meta", "created_at", "updated_at"}).
		AddRow("tt-2", "2026-27", 1, "CSE", 2, string(models.TimetableStatusDraft), 88, true, types.JSONText(`{}`), time.Now(), time.Now()).
		AddRow("tt-1", "2026-27", 1, "CSE", 1, string(models.TimetableStatusArchived), 81, false, types.JSONText(`{}`), time.Now(), time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("FROM timetables WHERE academic_year = $1 AND semester = $2 AND department = $3 ORDER BY version DESC")).
		WithArgs("2026-27", 1, "CSE").
		WillReturnRows(rows)

	list, err := repo.ListByScope(context.Background(), models.TimetableQuery{AcademicYear: "2026-27", Semester: 1, Department: "CSE"})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, 2, list[0].Version)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTimetableRepositoryUpdateStatus(t *testing.T) {
	db, mock, cleanup := newTimetableRepoMock(t)
	defer cleanup()
	repo := NewTimetableRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE timetables SET status = $2, updated_at = $3 WHERE id = $1")).
		WithArgs("tt-1", string(models.TimetableStatusPublished), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.UpdateStatus(context.Background(), nil, "tt-1", models.TimetableStatusPublished)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTimetableRepositoryUpdateStatusNotFound(t *testing.T) {
	db, mock, cleanup := newTimetableRepoMock(t)
	defer cleanup()
	repo := NewTimetableRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE timetables SET status = $2, updated_at = $3 WHERE id = $1")).
		WithArgs("tt-missing", string(models.TimetableStatusArchived), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 0))

	err := repo.UpdateStatus(context.Background(), nil, "tt-missing", models.TimetableStatusArchived)
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTimetableRepositoryDeleteNotFound(t *testing.T) {
	db, mock, cleanup := newTimetableRepoMock(t)
	defer cleanup()
	repo := NewTimetableRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM timetables WHERE id = $1")).
		WithArgs("tt-missing").
		WillReturnResult(sqlmock.NewResult(1, 0))

	err := repo.Delete(context.Background(), "tt-missing")
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}
