package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/jmoiron/sqlx/types"
	"go.uber.org/zap"

	"github.com/noah-isme/uni-timetable-api/internal/dto"
	"github.com/noah-isme/uni-timetable-api/internal/engine"
	"github.com/noah-isme/uni-timetable-api/internal/models"
	"github.com/noah-isme/uni-timetable-api/pkg/config"
	appErrors "github.com/noah-isme/uni-timetable-api/pkg/errors"
	"github.com/noah-isme/uni-timetable-api/pkg/export"
	"github.com/noah-isme/uni-timetable-api/pkg/jobs"
)

type subjectSnapshotReader interface {
	ListByDepartment(ctx context.Context, department string) ([]models.Subject, error)
}

type facultySnapshotReader interface {
	ListActiveByDepartment(ctx context.Context, department string) ([]models.Faculty, error)
}

type roomSnapshotReader interface {
	ListUsableByDepartment(ctx context.Context, department string) ([]models.Room, error)
}

type batchSnapshotReader interface {
	ListByScope(ctx context.Context, academicYear string, semester int, department string) ([]models.Batch, error)
	ListSubjects(ctx context.Context, batchID string) ([]models.BatchSubject, error)
}

type timetableRepository interface {
	CreateVersioned(ctx context.Context, exec sqlx.ExtContext, timetable *models.Timetable) error
	ListByScope(ctx context.Context, query models.TimetableQuery) ([]models.Timetable, error)
	FindByID(ctx context.Context, id string) (*models.Timetable, error)
	UpdateStatus(ctx context.Context, exec sqlx.ExtContext, id string, status models.TimetableStatus) error
	Delete(ctx context.Context, id string) error
}

type timetableAssignmentRepository interface {
	InsertBatch(ctx context.Context, exec sqlx.ExtContext, timetableID string, assignments []models.TimetableAssignment) error
	ListByTimetable(ctx context.Context, timetableID string) ([]models.TimetableAssignment, error)
	DeleteByTimetable(ctx context.Context, exec sqlx.ExtContext, timetableID string) error
}

type txProvider interface {
	BeginTxx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error)
}

// TimetableServiceConfig governs generation behaviour.
type TimetableServiceConfig struct {
	Engine      config.EngineConfig
	Institution string
}

// TimetableService orchestrates timetable generation and the
// versioned persistence around it.
type TimetableService struct {
	subjects    subjectSnapshotReader
	faculty     facultySnapshotReader
	rooms       roomSnapshotReader
	batches     batchSnapshotReader
	timetables  timetableRepository
	assignments timetableAssignmentRepository
	tx          txProvider
	cache       *CacheService
	metrics     *MetricsService
	csv         *export.CSVExporter
	pdf         *export.PDFExporter
	queue       *jobs.Queue
	validator   *validator.Validate
	logger      *zap.Logger
	store       *proposalStore
	cfg         TimetableServiceConfig
}

// NewTimetableService wires the generation pipeline dependencies.
func NewTimetableService(
	subjects subjectSnapshotReader,
	faculty facultySnapshotReader,
	rooms roomSnapshotReader,
	batches batchSnapshotReader,
	timetables timetableRepository,
	assignments timetableAssignmentRepository,
	tx txProvider,
	cache *CacheService,
	metrics *MetricsService,
	validate *validator.Validate,
	logger *zap.Logger,
	cfg TimetableServiceConfig,
) *TimetableService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	ttl := cfg.Engine.ProposalTTL
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &TimetableService{
		subjects:    subjects,
		faculty:     faculty,
		rooms:       rooms,
		batches:     batches,
		timetables:  timetables,
		assignments: assignments,
		tx:          tx,
		cache:       cache,
		metrics:     metrics,
		csv:         export.NewCSVExporter(),
		pdf:         export.NewPDFExporter(),
		validator:   validate,
		logger:      logger,
		store:       newProposalStore(ttl),
		cfg:         cfg,
	}
}

// AttachQueue installs the async generation queue. Wired after
// construction because the queue handler closes over the service.
func (s *TimetableService) AttachQueue(queue *jobs.Queue) {
	s.queue = queue
}

// Generate runs the engine for one scope and stores the proposal for a
// later Save.
func (s *TimetableService) Generate(ctx context.Context, req dto.GenerateTimetableRequest) (*dto.GenerateTimetableResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid generation payload")
	}

	cons, err := s.buildConstraints(req.Constraints)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid constraints")
	}

	result, lookup, err := s.runEngine(ctx, req.AcademicYear, req.Semester, req.Department, cons, req.Preassignments)
	if err != nil {
		return nil, err
	}

	proposal := timetableProposal{
		ID:           uuid.NewString(),
		AcademicYear: req.AcademicYear,
		Semester:     req.Semester,
		Department:   req.Department,
		Result:       result,
		Lookup:       lookup,
		RequestedAt:  time.Now().UTC(),
	}
	s.store.Save(proposal)

	response := s.buildResponse(proposal)
	return &response, nil
}

// Save persists a generated proposal as the next timetable version for
// its scope. The timetable and all assignments commit in one
// transaction.
func (s *TimetableService) Save(ctx context.Context, req dto.SaveTimetableRequest) (*dto.TimetableSummary, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid save payload")
	}

	proposal, ok := s.store.Get(req.ProposalID)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrProposalExpired, "proposal expired or unknown")
	}

	record, err := s.persistProposal(ctx, proposal)
	if err != nil {
		return nil, err
	}
	s.store.Delete(proposal.ID)

	if err := s.cache.Invalidate(ctx, "timetables:*"); err != nil {
		s.logger.Warn("timetable cache invalidation failed", zap.Error(err))
	}

	summary := summarize(record)
	return &summary, nil
}

// List returns all stored versions for a scope, cache-aside.
func (s *TimetableService) List(ctx context.Context, query dto.TimetableQuery) ([]dto.TimetableSummary, error) {
	if err := s.validator.Struct(query); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid timetable query")
	}

	cacheKey := fmt.Sprintf("timetables:%s:%d:%s", query.AcademicYear, query.Semester, query.Department)
	var cached []dto.TimetableSummary
	if hit, _ := s.cache.Get(ctx, cacheKey, &cached); hit {
		return cached, nil
	}

	list, err := s.timetables.ListByScope(ctx, models.TimetableQuery{
		AcademicYear: query.AcademicYear,
		Semester:     query.Semester,
		Department:   query.Department,
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list timetables")
	}

	summaries := make([]dto.TimetableSummary, 0, len(list))
	for i := range list {
		summaries = append(summaries, summarize(&list[i]))
	}

	if err := s.cache.Set(ctx, cacheKey, summaries, 0); err != nil {
		s.logger.Warn("timetable cache write failed", zap.Error(err))
	}
	return summaries, nil
}

// Get loads one stored timetable with its assignments.
func (s *TimetableService) Get(ctx context.Context, id string) (*dto.TimetableDetailResponse, error) {
	record, err := s.findTimetable(ctx, id)
	if err != nil {
		return nil, err
	}

	rows, err := s.assignments.ListByTimetable(ctx, id)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load assignments")
	}

	detail := &dto.TimetableDetailResponse{Timetable: summarize(record)}
	for _, row := range rows {
		detail.Assignments = append(detail.Assignments, dto.AssignmentPayload{
			DayOfWeek:  row.DayOfWeek,
			Start:      engine.FormatClock(row.StartMinute),
			End:        engine.FormatClock(row.EndMinute),
			SubjectID:  row.SubjectID,
			BatchID:    row.BatchID,
			GroupLabel: row.GroupLabel,
			FacultyID:  row.FacultyID,
			RoomID:     row.RoomID,
		})
	}
	return detail, nil
}

// UpdateStatus moves a stored timetable through its lifecycle.
func (s *TimetableService) UpdateStatus(ctx context.Context, id string, req dto.UpdateTimetableStatusRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid status payload")
	}
	if _, err := s.findTimetable(ctx, id); err != nil {
		return err
	}
	if err := s.timetables.UpdateStatus(ctx, nil, id, models.TimetableStatus(req.Status)); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "timetable not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update status")
	}
	if err := s.cache.Invalidate(ctx, "timetables:*"); err != nil {
		s.logger.Warn("timetable cache invalidation failed", zap.Error(err))
	}
	return nil
}

// Delete removes a draft timetable and its assignments. Published and
// archived versions are immutable history.
func (s *TimetableService) Delete(ctx context.Context, id string) error {
	record, err := s.findTimetable(ctx, id)
	if err != nil {
		return err
	}
	if record.Status != models.TimetableStatusDraft {
		return appErrors.Clone(appErrors.ErrPreconditionFailed, "only draft timetables can be deleted")
	}

	tx, err := s.tx.BeginTxx(ctx, nil)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to begin transaction")
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = s.assignments.DeleteByTimetable(ctx, tx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete assignments")
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM timetables WHERE id = $1`, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete timetable")
	}
	if err = tx.Commit(); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to commit delete")
	}

	if err := s.cache.Invalidate(ctx, "timetables:*"); err != nil {
		s.logger.Warn("timetable cache invalidation failed", zap.Error(err))
	}
	return nil
}

// Export renders a stored timetable as CSV or PDF.
func (s *TimetableService) Export(ctx context.Context, id, format string) ([]byte, string, string, error) {
	record, err := s.findTimetable(ctx, id)
	if err != nil {
		return nil, "", "", err
	}
	rows, err := s.assignments.ListByTimetable(ctx, id)
	if err != nil {
		return nil, "", "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load assignments")
	}

	exportRows := make([]export.TimetableRow, 0, len(rows))
	for _, row := range rows {
		exportRows = append(exportRows, export.TimetableRow{
			Day:     row.DayOfWeek,
			Start:   engine.FormatClock(row.StartMinute),
			End:     engine.FormatClock(row.EndMinute),
			Subject: row.SubjectID,
			Batch:   row.BatchID,
			Group:   row.GroupLabel,
			Faculty: row.FacultyID,
			Room:    row.RoomID,
		})
	}
	dataset := export.TimetableDataset(exportRows)
	base := fmt.Sprintf("timetable_%s_s%d_v%d", record.Department, record.Semester, record.Version)

	switch strings.ToLower(format) {
	case "csv", "":
		payload, err := s.csv.Render(dataset)
		if err != nil {
			return nil, "", "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "csv export failed")
		}
		return payload, "text/csv", base + ".csv", nil
	case "pdf":
		title := export.TimetableTitle(s.cfg.Institution, record.Department, record.AcademicYear, record.Semester, record.Version)
		payload, err := s.pdf.Render(dataset, title)
		if err != nil {
			return nil, "", "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "pdf export failed")
		}
		return payload, "application/pdf", base + ".pdf", nil
	default:
		return nil, "", "", appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", format))
	}
}

// BulkGenerate queues async generation runs, one per department. Each
// run persists its result directly as a draft version.
func (s *TimetableService) BulkGenerate(ctx context.Context, req dto.BulkGenerateRequest) (*dto.BulkGenerateResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid bulk payload")
	}
	if s.queue == nil {
		return nil, appErrors.Clone(appErrors.ErrPreconditionFailed, "async generation queue is not running")
	}

	queued := make([]string, 0, len(req.Departments))
	for _, department := range req.Departments {
		job := jobs.Job{
			ID:   uuid.NewString(),
			Type: "timetable.generate",
			Payload: generationJobPayload{
				AcademicYear: req.AcademicYear,
				Semester:     req.Semester,
				Department:   department,
				Constraints:  req.Constraints,
			},
		}
		if err := s.queue.Enqueue(job); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to enqueue generation")
		}
		queued = append(queued, department)
	}
	return &dto.BulkGenerateResponse{Queued: queued}, nil
}

// generationJobPayload is the queue payload for one async run.
type generationJobPayload struct {
	AcademicYear string
	Semester     int
	Department   string
	Constraints  *dto.ConstraintsRequest
}

// HandleGenerationJob is the queue handler: generate and persist one
// scope end to end.
func (s *TimetableService) HandleGenerationJob(ctx context.Context, job jobs.Job) error {
	payload, ok := job.Payload.(generationJobPayload)
	if !ok {
		return fmt.Errorf("unexpected payload type %T", job.Payload)
	}

	cons, err := s.buildConstraints(payload.Constraints)
	if err != nil {
		return fmt.Errorf("job constraints: %w", err)
	}

	result, lookup, err := s.runEngine(ctx, payload.AcademicYear, payload.Semester, payload.Department, cons, nil)
	if err != nil {
		return fmt.Errorf("generate %s: %w", payload.Department, err)
	}

	proposal := timetableProposal{
		ID:           job.ID,
		AcademicYear: payload.AcademicYear,
		Semester:     payload.Semester,
		Department:   payload.Department,
		Result:       result,
		Lookup:       lookup,
		RequestedAt:  time.Now().UTC(),
	}
	if _, err := s.persistProposal(ctx, proposal); err != nil {
		return fmt.Errorf("persist %s: %w", payload.Department, err)
	}
	if err := s.cache.Invalidate(ctx, "timetables:*"); err != nil {
		s.logger.Warn("timetable cache invalidation failed", zap.Error(err))
	}
	return nil
}

// runEngine snapshots the catalog for one scope and executes a run.
func (s *TimetableService) runEngine(ctx context.Context, academicYear string, semester int, department string, cons engine.Constraints, pins []dto.PreassignmentRequest) (*engine.Result, *nameLookup, error) {
	batchModels, err := s.batches.ListByScope(ctx, academicYear, semester, department)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load batches")
	}
	if len(batchModels) == 0 {
		return nil, nil, appErrors.Clone(appErrors.ErrValidation, "no batches registered for the requested scope")
	}

	subjectModels, err := s.subjects.ListByDepartment(ctx, department)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load subjects")
	}
	facultyModels, err := s.faculty.ListActiveByDepartment(ctx, department)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load faculty")
	}
	roomModels, err := s.rooms.ListUsableByDepartment(ctx, department)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load rooms")
	}
	if len(roomModels) == 0 {
		return nil, nil, appErrors.Clone(appErrors.ErrValidation, "no usable rooms for the requested scope")
	}

	subjects := snapshotSubjects(subjectModels)
	faculty, err := snapshotFaculty(facultyModels)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "malformed faculty windows")
	}
	rooms, err := snapshotRooms(roomModels)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "malformed room windows")
	}

	batches := make([]*engine.Batch, 0, len(batchModels))
	for i := range batchModels {
		links, err := s.batches.ListSubjects(ctx, batchModels[i].ID)
		if err != nil {
			return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load batch subjects")
		}
		batch, err := snapshotBatch(&batchModels[i], links)
		if err != nil {
			return nil, nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "malformed batch windows")
		}
		batches = append(batches, batch)
	}

	applyPreassignments(batches, pins)

	run, err := engine.New(cons,
		engine.WithObserver(engine.NewZapObserver(s.logger)),
		engine.WithLogger(s.logger),
	)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid engine configuration")
	}

	started := time.Now()
	result, err := run.Generate(engine.Input{
		Subjects: subjects,
		Faculty:  faculty,
		Rooms:    rooms,
		Batches:  batches,
	})
	if err != nil {
		if errors.Is(err, engine.ErrEmptyInput) {
			return nil, nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "incomplete scheduling input")
		}
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "generation failed")
	}
	elapsed := time.Since(started)

	s.metrics.ObserveGeneration(department, result.Success, elapsed,
		result.Stats.ConstraintChecks, result.Stats.Backtracks, result.Stats.FailedSessions)
	s.logger.Info("timetable generated",
		zap.String("department", department),
		zap.String("academic_year", academicYear),
		zap.Int("semester", semester),
		zap.Bool("success", result.Success),
		zap.Int("score", result.Score),
		zap.Int("scheduled", result.Stats.ScheduledSessions),
		zap.Int("failed", result.Stats.FailedSessions),
		zap.Duration("elapsed", elapsed),
	)

	return result, buildLookup(subjects, rooms, elapsed), nil
}

// persistProposal writes the timetable header and all assignments in
// one transaction and returns the stored record.
func (s *TimetableService) persistProposal(ctx context.Context, proposal timetableProposal) (*models.Timetable, error) {
	meta, err := json.Marshal(map[string]interface{}{
		"backtracks":       proposal.Result.Stats.Backtracks,
		"constraintChecks": proposal.Result.Stats.ConstraintChecks,
		"failedSessions":   proposal.Result.Stats.FailedSessions,
		"budgetExhausted":  proposal.Result.Stats.BudgetExhausted,
		"conflicts":        len(proposal.Result.Conflicts),
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to encode run metadata")
	}

	record := &models.Timetable{
		AcademicYear: proposal.AcademicYear,
		Semester:     proposal.Semester,
		Department:   proposal.Department,
		Status:       models.TimetableStatusDraft,
		Score:        proposal.Result.Score,
		Success:      proposal.Result.Success,
		Meta:         types.JSONText(meta),
	}

	tx, err := s.tx.BeginTxx(ctx, nil)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to begin transaction")
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = s.timetables.CreateVersioned(ctx, tx, record); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store timetable")
	}

	rows := make([]models.TimetableAssignment, 0, len(proposal.Result.Assignments))
	for _, assignment := range proposal.Result.Assignments {
		rows = append(rows, models.TimetableAssignment{
			DayOfWeek:   assignment.Slot.Day,
			StartMinute: assignment.Slot.Start,
			EndMinute:   assignment.Slot.End,
			SubjectID:   assignment.Requirement.Subject.ID,
			BatchID:     assignment.Requirement.Batch.ID,
			GroupLabel:  assignment.Requirement.Group,
			FacultyID:   assignment.Requirement.Faculty.ID,
			RoomID:      assignment.Room.ID,
		})
	}
	if err = s.assignments.InsertBatch(ctx, tx, record.ID, rows); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store assignments")
	}

	if err = tx.Commit(); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to commit timetable")
	}
	return record, nil
}

func (s *TimetableService) findTimetable(ctx context.Context, id string) (*models.Timetable, error) {
	record, err := s.timetables.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "timetable not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load timetable")
	}
	return record, nil
}

// buildConstraints layers request overrides over the configured
// engine defaults.
func (s *TimetableService) buildConstraints(override *dto.ConstraintsRequest) (engine.Constraints, error) {
	base := s.cfg.Engine
	cons := engine.Constraints{
		WorkingDays:          append([]string(nil), base.WorkingDays...),
		SessionDurations:     append([]int(nil), base.AllowedDurations...),
		SlotStepMinutes:      base.SlotStepMinutes,
		MaxClassesPerDay:     base.MaxClassesPerDay,
		BreakDurationMinutes: base.BreakDurationMinutes,
		GroupSizeLimit:       base.GroupSizeLimit,
		CheckBudget:          int64(base.CheckBudget),
	}

	var err error
	if cons.WorkingHours, err = clockRange(base.WorkStart, base.WorkEnd); err != nil {
		return cons, err
	}
	if cons.LunchBreak, err = clockRange(base.LunchStart, base.LunchEnd); err != nil {
		return cons, err
	}

	if override == nil {
		return cons, nil
	}

	if len(override.WorkingDays) > 0 {
		cons.WorkingDays = override.WorkingDays
	}
	if override.WorkStart != "" || override.WorkEnd != "" {
		start, end := base.WorkStart, base.WorkEnd
		if override.WorkStart != "" {
			start = override.WorkStart
		}
		if override.WorkEnd != "" {
			end = override.WorkEnd
		}
		if cons.WorkingHours, err = clockRange(start, end); err != nil {
			return cons, err
		}
	}
	if override.LunchStart != "" || override.LunchEnd != "" {
		start, end := base.LunchStart, base.LunchEnd
		if override.LunchStart != "" {
			start = override.LunchStart
		}
		if override.LunchEnd != "" {
			end = override.LunchEnd
		}
		if cons.LunchBreak, err = clockRange(start, end); err != nil {
			return cons, err
		}
	}
	if len(override.AllowedDurations) > 0 {
		cons.SessionDurations = override.AllowedDurations
	}
	if override.SlotStepMinutes > 0 {
		cons.SlotStepMinutes = override.SlotStepMinutes
	}
	if override.MaxClassesPerDay > 0 {
		cons.MaxClassesPerDay = override.MaxClassesPerDay
	}
	if override.BreakDurationMinutes > 0 {
		cons.BreakDurationMinutes = override.BreakDurationMinutes
	}
	if override.GroupSizeLimit > 0 {
		cons.GroupSizeLimit = override.GroupSizeLimit
	}
	if override.CheckBudget != 0 {
		cons.CheckBudget = int64(override.CheckBudget)
	}
	return cons, nil
}

func clockRange(start, end string) (engine.TimeRange, error) {
	if start == "" || end == "" {
		return engine.TimeRange{}, nil
	}
	s, err := engine.ParseClock(start)
	if err != nil {
		return engine.TimeRange{}, err
	}
	e, err := engine.ParseClock(end)
	if err != nil {
		return engine.TimeRange{}, err
	}
	return engine.TimeRange{Start: s, End: e}, nil
}

// applyPreassignments pins request-level instructor choices onto the
// snapshot before the resolver runs.
func applyPreassignments(batches []*engine.Batch, pins []dto.PreassignmentRequest) {
	if len(pins) == 0 {
		return
	}
	byBatch := make(map[string]*engine.Batch, len(batches))
	for _, batch := range batches {
		byBatch[batch.ID] = batch
	}
	for _, pin := range pins {
		batch, ok := byBatch[pin.BatchID]
		if !ok {
			continue
		}
		for i := range batch.Subjects {
			if batch.Subjects[i].SubjectID == pin.SubjectID {
				batch.Subjects[i].FacultyID = pin.FacultyID
			}
		}
	}
}

// --- Proposal cache ---

// nameLookup carries display names resolved at snapshot time so the
// response does not need another round trip.
type nameLookup struct {
	SubjectNames map[string]string
	RoomLabels   map[string]string
	Elapsed      time.Duration
}

func buildLookup(subjects []*engine.Subject, rooms []*engine.Room, elapsed time.Duration) *nameLookup {
	lookup := &nameLookup{
		SubjectNames: make(map[string]string, len(subjects)),
		RoomLabels:   make(map[string]string, len(rooms)),
		Elapsed:      elapsed,
	}
	for _, subject := range subjects {
		lookup.SubjectNames[subject.ID] = subject.Name
	}
	for _, room := range rooms {
		lookup.RoomLabels[room.ID] = room.Label()
	}
	return lookup
}

type timetableProposal struct {
	ID           string
	AcademicYear string
	Semester     int
	Department   string
	Result       *engine.Result
	Lookup       *nameLookup
	RequestedAt  time.Time
}

type proposalStore struct {
	ttl   time.Duration
	mu    sync.RWMutex
	items map[string]timetableProposal
}

func newProposalStore(ttl time.Duration) *proposalStore {
	return &proposalStore{
		ttl:   ttl,
		items: make(map[string]timetableProposal),
	}
}

func (s *proposalStore) Save(proposal timetableProposal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[proposal.ID] = proposal
}

func (s *proposalStore) Get(id string) (timetableProposal, bool) {
	s.mu.RLock()
	proposal, ok := s.items[id]
	s.mu.RUnlock()
	if !ok {
		return timetableProposal{}, false
	}
	if time.Since(proposal.RequestedAt) > s.ttl {
		s.Delete(id)
		return timetableProposal{}, false
	}
	return proposal, true
}

func (s *proposalStore) Delete(id string) {
	s.mu.Lock()
	delete(s.items, id)
	s.mu.Unlock()
}

// --- Response mapping ---

func (s *TimetableService) buildResponse(proposal timetableProposal) dto.GenerateTimetableResponse {
	result := proposal.Result
	lookup := proposal.Lookup

	response := dto.GenerateTimetableResponse{
		ProposalID: proposal.ID,
		Success:    result.Success,
		Score:      result.Score,
		Stats: dto.StatsPayload{
			TotalSessions:     result.Stats.TotalSessions,
			ScheduledSessions: result.Stats.ScheduledSessions,
			FailedSessions:    result.Stats.FailedSessions,
			Backtracks:        int(result.Stats.Backtracks),
			ConstraintChecks:  int(result.Stats.ConstraintChecks),
			BudgetExhausted:   result.Stats.BudgetExhausted,
			PerDay:            result.Stats.PerDay,
			FacultyHours:      result.Stats.FacultyHours,
			RoomUtilization:   result.Stats.RoomUtilization,
			ElapsedMillis:     lookup.Elapsed.Milliseconds(),
		},
	}

	payloads := make([]dto.AssignmentPayload, 0, len(result.Assignments))
	for _, assignment := range result.Assignments {
		payloads = append(payloads, assignmentPayload(assignment, lookup))
	}
	response.Assignments = payloads

	for _, conflict := range result.Conflicts {
		first := assignmentPayload(result.Assignments[conflict.First], lookup)
		second := assignmentPayload(result.Assignments[conflict.Second], lookup)
		response.Conflicts = append(response.Conflicts, dto.ConflictPayload{
			Kind:     string(conflict.Kind),
			Severity: conflict.Severity,
			Message:  conflictMessage(conflict.Kind, first, second),
			First:    &first,
			Second:   &second,
		})
	}

	for _, failure := range result.Failures {
		payload := dto.FailurePayload{
			Reason: string(failure.Reason),
			Detail: failure.Detail,
		}
		if failure.Requirement != nil {
			payload.SubjectID = failure.Requirement.Subject.ID
			payload.BatchID = failure.Requirement.Batch.ID
			payload.GroupLabel = failure.Requirement.Group
		}
		response.Failures = append(response.Failures, payload)
	}

	return response
}

func assignmentPayload(assignment engine.Assignment, lookup *nameLookup) dto.AssignmentPayload {
	payload := dto.AssignmentPayload{
		DayOfWeek:  assignment.Slot.Day,
		Start:      engine.FormatClock(assignment.Slot.Start),
		End:        engine.FormatClock(assignment.Slot.End),
		SubjectID:  assignment.Requirement.Subject.ID,
		BatchID:    assignment.Requirement.Batch.ID,
		GroupLabel: assignment.Requirement.Group,
		FacultyID:  assignment.Requirement.Faculty.ID,
		RoomID:     assignment.Room.ID,
	}
	if lookup != nil {
		payload.SubjectName = lookup.SubjectNames[payload.SubjectID]
		payload.RoomLabel = lookup.RoomLabels[payload.RoomID]
	}
	return payload
}

func conflictMessage(kind engine.ConflictKind, first, second dto.AssignmentPayload) string {
	switch kind {
	case engine.ConflictFaculty:
		return fmt.Sprintf("faculty %s double booked on %s %s and %s", first.FacultyID, first.DayOfWeek, first.Start, second.Start)
	case engine.ConflictRoom:
		return fmt.Sprintf("room %s double booked on %s %s and %s", first.RoomID, first.DayOfWeek, first.Start, second.Start)
	case engine.ConflictBatch:
		return fmt.Sprintf("batch %s double booked on %s %s and %s", first.BatchID, first.DayOfWeek, first.Start, second.Start)
	default:
		return "schedule conflict"
	}
}

func summarize(record *models.Timetable) dto.TimetableSummary {
	return dto.TimetableSummary{
		ID:           record.ID,
		AcademicYear: record.AcademicYear,
		Semester:     record.Semester,
		Department:   record.Department,
		Version:      record.Version,
		Status:       string(record.Status),
		Score:        record.Score,
		Success:      record.Success,
		CreatedAt:    record.CreatedAt.UTC().Format(time.RFC3339),
	}
}
