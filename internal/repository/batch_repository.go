package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/uni-timetable-api/internal/models"
)

const batchColumns = `id, name, department, program_level, semester, academic_year, enrolled,
max_capacity, max_sessions_per_day, blocked, created_at, updated_at`

// BatchRepository handles persistence for student batches and their
// subject enrolments.
type BatchRepository struct {
	db *sqlx.DB
}

// NewBatchRepository creates a new repository instance.
func NewBatchRepository(db *sqlx.DB) *BatchRepository {
	return &BatchRepository{db: db}
}

// List returns batches matching filters with pagination metadata.
func (r *BatchRepository) List(ctx context.Context, filter models.BatchFilter) ([]models.Batch, int, error) {
	base := "FROM batches WHERE 1=1"
	var conditions []string
	var args []interface{}

	if filter.Department != "" {
		conditions = append(conditions, fmt.Sprintf("department = $%d", len(args)+1))
		args = append(args, filter.Department)
	}
	if filter.AcademicYear != "" {
		conditions = append(conditions, fmt.Sprintf("academic_year = $%d", len(args)+1))
		args = append(args, filter.AcademicYear)
	}
	if filter.Semester > 0 {
		conditions = append(conditions, fmt.Sprintf("semester = $%d", len(args)+1))
		args = append(args, filter.Semester)
	}
	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("LOWER(name) LIKE $%d", len(args)+1))
		args = append(args, "%"+strings.ToLower(filter.Search)+"%")
	}

	if len(conditions) > 0 {
		base += " AND " + strings.Join(conditions, " AND ")
	}

	sortBy := filter.SortBy
	allowedSorts := map[string]bool{
		"name":       true,
		"semester":   true,
		"created_at": true,
	}
	if !allowedSorts[sortBy] {
		sortBy = "created_at"
	}
	order := strings.ToUpper(filter.SortOrder)
	if order != "ASC" && order != "DESC" {
		order = "DESC"
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 100 {
		size = 20
	}
	offset := (page - 1) * size

	query := fmt.Sprintf("SELECT %s %s ORDER BY %s %s LIMIT %d OFFSET %d", batchColumns, base, sortBy, order, size, offset)
	var batches []models.Batch
	if err := r.db.SelectContext(ctx, &batches, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list batches: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", base)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count batches: %w", err)
	}
	return batches, total, nil
}

// ListByScope returns the batch snapshot for one generation scope.
func (r *BatchRepository) ListByScope(ctx context.Context, academicYear string, semester int, department string) ([]models.Batch, error) {
	query := fmt.Sprintf(`SELECT %s FROM batches
WHERE academic_year = $1 AND semester = $2 AND department = $3 ORDER BY name ASC`, batchColumns)
	var batches []models.Batch
	if err := r.db.SelectContext(ctx, &batches, query, academicYear, semester, department); err != nil {
		return nil, fmt.Errorf("list batches by scope: %w", err)
	}
	return batches, nil
}

// ListSubjects returns the ordered subject references of a batch.
func (r *BatchRepository) ListSubjects(ctx context.Context, batchID string) ([]models.BatchSubject, error) {
	const query = `SELECT id, batch_id, subject_id, faculty_id, position, created_at
FROM batch_subjects WHERE batch_id = $1 ORDER BY position ASC`
	var subjects []models.BatchSubject
	if err := r.db.SelectContext(ctx, &subjects, query, batchID); err != nil {
		return nil, fmt.Errorf("list batch subjects: %w", err)
	}
	return subjects, nil
}

// FindByID returns a batch by id.
func (r *BatchRepository) FindByID(ctx context.Context, id string) (*models.Batch, error) {
	query := fmt.Sprintf("SELECT %s FROM batches WHERE id = $1", batchColumns)
	var batch models.Batch
	if err := r.db.GetContext(ctx, &batch, query, id); err != nil {
		return nil, err
	}
	return &batch, nil
}

// Create inserts a batch together with its subject references.
func (r *BatchRepository) Create(ctx context.Context, batch *models.Batch, subjects []models.BatchSubject) error {
	if batch.ID == "" {
		batch.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	batch.CreatedAt = now
	batch.UpdatedAt = now

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin batch insert: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	const insertBatch = `
INSERT INTO batches (id, name, department, program_level, semester, academic_year, enrolled,
max_capacity, max_sessions_per_day, blocked, created_at, updated_at)
VALUES (:id, :name, :department, :program_level, :semester, :academic_year, :enrolled,
:max_capacity, :max_sessions_per_day, :blocked, :created_at, :updated_at)`
	if _, err = tx.NamedExecContext(ctx, insertBatch, batch); err != nil {
		return fmt.Errorf("insert batch: %w", err)
	}

	const insertSubject = `
INSERT INTO batch_subjects (id, batch_id, subject_id, faculty_id, position, created_at)
VALUES (:id, :batch_id, :subject_id, :faculty_id, :position, :created_at)`
	for i := range subjects {
		subjects[i].BatchID = batch.ID
		if subjects[i].ID == "" {
			subjects[i].ID = uuid.NewString()
		}
		subjects[i].Position = i
		subjects[i].CreatedAt = now
		if _, err = tx.NamedExecContext(ctx, insertSubject, subjects[i]); err != nil {
			return fmt.Errorf("insert batch subject: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit batch insert: %w", err)
	}
	return nil
}
