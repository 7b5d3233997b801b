package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx/types"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/noah-isme/uni-timetable-api/internal/dto"
	"github.com/noah-isme/uni-timetable-api/internal/models"
	appErrors "github.com/noah-isme/uni-timetable-api/pkg/errors"
)

type subjectRepository interface {
	List(ctx context.Context, filter models.SubjectFilter) ([]models.Subject, int, error)
	FindByID(ctx context.Context, id string) (*models.Subject, error)
	Create(ctx context.Context, subject *models.Subject) error
	Update(ctx context.Context, subject *models.Subject) error
	Delete(ctx context.Context, id string) error
}

type facultyRepository interface {
	List(ctx context.Context, filter models.FacultyFilter) ([]models.Faculty, int, error)
	FindByID(ctx context.Context, id string) (*models.Faculty, error)
	Create(ctx context.Context, member *models.Faculty) error
	Deactivate(ctx context.Context, id string) error
}

type roomRepository interface {
	List(ctx context.Context, filter models.RoomFilter) ([]models.Room, int, error)
	FindByID(ctx context.Context, id string) (*models.Room, error)
	Create(ctx context.Context, room *models.Room) error
	Deactivate(ctx context.Context, id string) error
}

type batchRepository interface {
	List(ctx context.Context, filter models.BatchFilter) ([]models.Batch, int, error)
	FindByID(ctx context.Context, id string) (*models.Batch, error)
	ListSubjects(ctx context.Context, batchID string) ([]models.BatchSubject, error)
	Create(ctx context.Context, batch *models.Batch, subjects []models.BatchSubject) error
}

// CatalogService manages the scheduling catalog: subjects, faculty,
// rooms and batches.
type CatalogService struct {
	subjects  subjectRepository
	faculty   facultyRepository
	rooms     roomRepository
	batches   batchRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewCatalogService constructs the catalog service.
func NewCatalogService(
	subjects subjectRepository,
	faculty facultyRepository,
	rooms roomRepository,
	batches batchRepository,
	validate *validator.Validate,
	logger *zap.Logger,
) *CatalogService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogService{
		subjects:  subjects,
		faculty:   faculty,
		rooms:     rooms,
		batches:   batches,
		validator: validate,
		logger:    logger,
	}
}

// ListSubjects returns filtered subjects with pagination metadata.
func (s *CatalogService) ListSubjects(ctx context.Context, query dto.CatalogListQuery) ([]models.Subject, *models.Pagination, error) {
	list, total, err := s.subjects.List(ctx, models.SubjectFilter{
		Department: query.Department,
		Kind:       query.Kind,
		Search:     query.Search,
		Page:       query.Page,
		PageSize:   query.PageSize,
		SortBy:     query.SortBy,
		SortOrder:  query.SortOrder,
	})
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list subjects")
	}
	return list, pagination(query.Page, query.PageSize, total), nil
}

// CreateSubject registers a subject.
func (s *CatalogService) CreateSubject(ctx context.Context, req dto.CreateSubjectRequest) (*models.Subject, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid subject payload")
	}
	subject := &models.Subject{
		Code:            req.Code,
		Name:            req.Name,
		Department:      req.Department,
		Credits:         req.Credits,
		Kind:            req.Kind,
		SessionsPerWeek: req.SessionsPerWeek,
		DurationMinutes: req.DurationMinutes,
		RoomKind:        req.RoomKind,
		MinCapacity:     req.MinCapacity,
		Facilities:      pq.StringArray(req.Facilities),
		Specializations: pq.StringArray(req.Specializations),
		MinimumRank:     req.MinimumRank,
	}
	if err := s.subjects.Create(ctx, subject); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create subject")
	}
	return subject, nil
}

// GetSubject loads one subject.
func (s *CatalogService) GetSubject(ctx context.Context, id string) (*models.Subject, error) {
	subject, err := s.subjects.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "subject not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load subject")
	}
	return subject, nil
}

// DeleteSubject removes a subject from the catalog.
func (s *CatalogService) DeleteSubject(ctx context.Context, id string) error {
	if _, err := s.GetSubject(ctx, id); err != nil {
		return err
	}
	if err := s.subjects.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete subject")
	}
	return nil
}

// ListFaculty returns filtered faculty with pagination metadata.
func (s *CatalogService) ListFaculty(ctx context.Context, query dto.CatalogListQuery) ([]models.Faculty, *models.Pagination, error) {
	list, total, err := s.faculty.List(ctx, models.FacultyFilter{
		Department: query.Department,
		Search:     query.Search,
		Page:       query.Page,
		PageSize:   query.PageSize,
		SortBy:     query.SortBy,
		SortOrder:  query.SortOrder,
	})
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list faculty")
	}
	return list, pagination(query.Page, query.PageSize, total), nil
}

// CreateFaculty registers an instructor.
func (s *CatalogService) CreateFaculty(ctx context.Context, req dto.CreateFacultyRequest) (*models.Faculty, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid faculty payload")
	}
	availability, err := encodeWindows(req.Availability)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to encode availability")
	}
	blocked, err := encodeWindows(req.Blocked)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to encode blocked windows")
	}
	member := &models.Faculty{
		FullName:          req.FullName,
		Email:             req.Email,
		Rank:              req.Rank,
		Departments:       pq.StringArray(req.Departments),
		Specializations:   pq.StringArray(req.Specializations),
		WeeklyLoadLimit:   req.WeeklyLoadLimit,
		MaxSessionsPerDay: req.MaxSessionsPerDay,
		Availability:      availability,
		Blocked:           blocked,
		Active:            true,
	}
	if err := s.faculty.Create(ctx, member); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create faculty")
	}
	return member, nil
}

// DeactivateFaculty retires an instructor without losing history.
func (s *CatalogService) DeactivateFaculty(ctx context.Context, id string) error {
	if _, err := s.faculty.FindByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "faculty not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load faculty")
	}
	if err := s.faculty.Deactivate(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to deactivate faculty")
	}
	return nil
}

// ListRooms returns filtered rooms with pagination metadata.
func (s *CatalogService) ListRooms(ctx context.Context, query dto.CatalogListQuery) ([]models.Room, *models.Pagination, error) {
	list, total, err := s.rooms.List(ctx, models.RoomFilter{
		Department: query.Department,
		Kind:       query.Kind,
		Page:       query.Page,
		PageSize:   query.PageSize,
		SortBy:     query.SortBy,
		SortOrder:  query.SortOrder,
	})
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list rooms")
	}
	return list, pagination(query.Page, query.PageSize, total), nil
}

// CreateRoom registers a room.
func (s *CatalogService) CreateRoom(ctx context.Context, req dto.CreateRoomRequest) (*models.Room, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid room payload")
	}
	blocked, err := encodeWindows(req.Blocked)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to encode blocked windows")
	}
	room := &models.Room{
		Building:    req.Building,
		RoomNumber:  req.RoomNumber,
		Capacity:    req.Capacity,
		Kind:        req.Kind,
		Facilities:  pq.StringArray(req.Facilities),
		Departments: pq.StringArray(req.Departments),
		Blocked:     blocked,
		Active:      true,
	}
	if err := s.rooms.Create(ctx, room); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create room")
	}
	return room, nil
}

// DeactivateRoom takes a room out of scheduling rotation.
func (s *CatalogService) DeactivateRoom(ctx context.Context, id string) error {
	if _, err := s.rooms.FindByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "room not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load room")
	}
	if err := s.rooms.Deactivate(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to deactivate room")
	}
	return nil
}

// ListBatches returns filtered batches with pagination metadata.
func (s *CatalogService) ListBatches(ctx context.Context, query dto.CatalogListQuery) ([]models.Batch, *models.Pagination, error) {
	list, total, err := s.batches.List(ctx, models.BatchFilter{
		Department: query.Department,
		Search:     query.Search,
		Page:       query.Page,
		PageSize:   query.PageSize,
		SortBy:     query.SortBy,
		SortOrder:  query.SortOrder,
	})
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list batches")
	}
	return list, pagination(query.Page, query.PageSize, total), nil
}

// CreateBatch registers a batch together with its subject links.
func (s *CatalogService) CreateBatch(ctx context.Context, req dto.CreateBatchRequest) (*models.Batch, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid batch payload")
	}
	blocked, err := encodeWindows(req.Blocked)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to encode blocked windows")
	}
	batch := &models.Batch{
		Name:         req.Name,
		Department:   req.Department,
		ProgramLevel: req.ProgramLevel,
		Semester:     req.Semester,
		AcademicYear: req.AcademicYear,
		Enrolled:     req.Enrolled,
		Blocked:      blocked,
	}
	links := make([]models.BatchSubject, 0, len(req.Subjects))
	for i, link := range req.Subjects {
		row := models.BatchSubject{SubjectID: link.SubjectID, Position: i}
		if link.FacultyID != "" {
			facultyID := link.FacultyID
			row.FacultyID = &facultyID
		}
		links = append(links, row)
	}
	if err := s.batches.Create(ctx, batch, links); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create batch")
	}
	return batch, nil
}

// GetBatch loads one batch with its subject links.
func (s *CatalogService) GetBatch(ctx context.Context, id string) (*models.Batch, []models.BatchSubject, error) {
	batch, err := s.batches.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, appErrors.Clone(appErrors.ErrNotFound, "batch not found")
		}
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load batch")
	}
	links, err := s.batches.ListSubjects(ctx, id)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load batch subjects")
	}
	return batch, links, nil
}

func encodeWindows(windows []dto.TimeWindowPayload) (types.JSONText, error) {
	if len(windows) == 0 {
		return nil, nil
	}
	rows := make([]models.TimeWindow, 0, len(windows))
	for _, w := range windows {
		rows = append(rows, models.TimeWindow{Day: w.Day, Start: w.Start, End: w.End})
	}
	payload, err := json.Marshal(rows)
	if err != nil {
		return nil, err
	}
	return types.JSONText(payload), nil
}

func pagination(page, size, total int) *models.Pagination {
	if page < 1 {
		page = 1
	}
	if size <= 0 || size > 100 {
		size = 20
	}
	return &models.Pagination{Page: page, PageSize: size, TotalCount: total}
}
