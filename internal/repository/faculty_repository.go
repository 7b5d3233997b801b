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

const facultyColumns = `id, full_name, email, rank, departments, specializations, weekly_load_limit,
max_sessions_per_day, availability, blocked, active, created_at, updated_at`

// FacultyRepository handles persistence for faculty records.
type FacultyRepository struct {
	db *sqlx.DB
}

// NewFacultyRepository creates a new repository instance.
func NewFacultyRepository(db *sqlx.DB) *FacultyRepository {
	return &FacultyRepository{db: db}
}

// List returns faculty matching filters with pagination metadata.
func (r *FacultyRepository) List(ctx context.Context, filter models.FacultyFilter) ([]models.Faculty, int, error) {
	base := "FROM faculty WHERE 1=1"
	var conditions []string
	var args []interface{}

	if filter.Department != "" {
		conditions = append(conditions, fmt.Sprintf("$%d = ANY(departments)", len(args)+1))
		args = append(args, filter.Department)
	}
	if filter.Active != nil {
		conditions = append(conditions, fmt.Sprintf("active = $%d", len(args)+1))
		args = append(args, *filter.Active)
	}
	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(LOWER(full_name) LIKE $%d OR LOWER(email) LIKE $%d)", len(args)+1, len(args)+1))
		args = append(args, "%"+strings.ToLower(filter.Search)+"%")
	}

	if len(conditions) > 0 {
		base += " AND " + strings.Join(conditions, " AND ")
	}

	sortBy := filter.SortBy
	allowedSorts := map[string]bool{
		"full_name":  true,
		"email":      true,
		"created_at": true,
		"updated_at": true,
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

	query := fmt.Sprintf("SELECT %s %s ORDER BY %s %s LIMIT %d OFFSET %d", facultyColumns, base, sortBy, order, size, offset)
	var faculty []models.Faculty
	if err := r.db.SelectContext(ctx, &faculty, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list faculty: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", base)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count faculty: %w", err)
	}
	return faculty, total, nil
}

// ListActiveByDepartment returns the instructor snapshot for one department.
func (r *FacultyRepository) ListActiveByDepartment(ctx context.Context, department string) ([]models.Faculty, error) {
	query := fmt.Sprintf("SELECT %s FROM faculty WHERE active = TRUE AND $1 = ANY(departments) ORDER BY full_name ASC", facultyColumns)
	var faculty []models.Faculty
	if err := r.db.SelectContext(ctx, &faculty, query, department); err != nil {
		return nil, fmt.Errorf("list faculty by department: %w", err)
	}
	return faculty, nil
}

// FindByID returns a faculty member by id.
func (r *FacultyRepository) FindByID(ctx context.Context, id string) (*models.Faculty, error) {
	query := fmt.Sprintf("SELECT %s FROM faculty WHERE id = $1", facultyColumns)
	var member models.Faculty
	if err := r.db.GetContext(ctx, &member, query, id); err != nil {
		return nil, err
	}
	return &member, nil
}

// Create inserts a faculty record.
func (r *FacultyRepository) Create(ctx context.Context, member *models.Faculty) error {
	if member.ID == "" {
		member.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	member.CreatedAt = now
	member.UpdatedAt = now

	const query = `
INSERT INTO faculty (id, full_name, email, rank, departments, specializations, weekly_load_limit,
max_sessions_per_day, availability, blocked, active, created_at, updated_at)
VALUES (:id, :full_name, :email, :rank, :departments, :specializations, :weekly_load_limit,
:max_sessions_per_day, :availability, :blocked, :active, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, member); err != nil {
		return fmt.Errorf("insert faculty: %w", err)
	}
	return nil
}

// Deactivate marks a faculty member inactive without deleting history.
func (r *FacultyRepository) Deactivate(ctx context.Context, id string) error {
	const query = `UPDATE faculty SET active = FALSE, updated_at = $2 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, time.Now().UTC()); err != nil {
		return fmt.Errorf("deactivate faculty: %w", err)
	}
	return nil
}
