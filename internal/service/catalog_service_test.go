package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/uni-timetable-api/internal/dto"
	"github.com/noah-isme/uni-timetable-api/internal/models"
	appErrors "github.com/noah-isme/uni-timetable-api/pkg/errors"
)

type subjectRepoStub struct {
	byID    map[string]*models.Subject
	created []*models.Subject
	deleted []string
	filter  models.SubjectFilter
}

func newSubjectRepoStub() *subjectRepoStub {
	return &subjectRepoStub{byID: make(map[string]*models.Subject)}
}

func (r *subjectRepoStub) List(_ context.Context, filter models.SubjectFilter) ([]models.Subject, int, error) {
	r.filter = filter
	list := make([]models.Subject, 0, len(r.byID))
	for _, subject := range r.byID {
		list = append(list, *subject)
	}
	return list, len(list), nil
}

func (r *subjectRepoStub) FindByID(_ context.Context, id string) (*models.Subject, error) {
	subject, ok := r.byID[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return subject, nil
}

func (r *subjectRepoStub) Create(_ context.Context, subject *models.Subject) error {
	subject.ID = "sub-created"
	r.created = append(r.created, subject)
	r.byID[subject.ID] = subject
	return nil
}

func (r *subjectRepoStub) Update(_ context.Context, subject *models.Subject) error {
	r.byID[subject.ID] = subject
	return nil
}

func (r *subjectRepoStub) Delete(_ context.Context, id string) error {
	r.deleted = append(r.deleted, id)
	delete(r.byID, id)
	return nil
}

type facultyRepoStub struct {
	byID        map[string]*models.Faculty
	created     []*models.Faculty
	deactivated []string
}

func newFacultyRepoStub() *facultyRepoStub {
	return &facultyRepoStub{byID: make(map[string]*models.Faculty)}
}

func (r *facultyRepoStub) List(_ context.Context, _ models.FacultyFilter) ([]models.Faculty, int, error) {
	list := make([]models.Faculty, 0, len(r.byID))
	for _, member := range r.byID {
		list = append(list, *member)
	}
	return list, len(list), nil
}

func (r *facultyRepoStub) FindByID(_ context.Context, id string) (*models.Faculty, error) {
	member, ok := r.byID[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return member, nil
}

func (r *facultyRepoStub) Create(_ context.Context, member *models.Faculty) error {
	member.ID = "fac-created"
	r.created = append(r.created, member)
	r.byID[member.ID] = member
	return nil
}

func (r *facultyRepoStub) Deactivate(_ context.Context, id string) error {
	r.deactivated = append(r.deactivated, id)
	return nil
}

type roomRepoStub struct {
	byID        map[string]*models.Room
	created     []*models.Room
	deactivated []string
}

func newRoomRepoStub() *roomRepoStub {
	return &roomRepoStub{byID: make(map[string]*models.Room)}
}

func (r *roomRepoStub) List(_ context.Context, _ models.RoomFilter) ([]models.Room, int, error) {
	list := make([]models.Room, 0, len(r.byID))
	for _, room := range r.byID {
		list = append(list, *room)
	}
	return list, len(list), nil
}

func (r *roomRepoStub) FindByID(_ context.Context, id string) (*models.Room, error) {
	room, ok := r.byID[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return room, nil
}

func (r *roomRepoStub) Create(_ context.Context, room *models.Room) error {
	room.ID = "room-created"
	r.created = append(r.created, room)
	r.byID[room.ID] = room
	return nil
}

func (r *roomRepoStub) Deactivate(_ context.Context, id string) error {
	r.deactivated = append(r.deactivated, id)
	return nil
}

type batchRepoStub struct {
	byID     map[string]*models.Batch
	links    map[string][]models.BatchSubject
	created  []*models.Batch
	captured []models.BatchSubject
}

func newBatchRepoStub() *batchRepoStub {
	return &batchRepoStub{byID: make(map[string]*models.Batch), links: make(map[string][]models.BatchSubject)}
}

func (r *batchRepoStub) List(_ context.Context, _ models.BatchFilter) ([]models.Batch, int, error) {
	list := make([]models.Batch, 0, len(r.byID))
	for _, batch := range r.byID {
		list = append(list, *batch)
	}
	return list, len(list), nil
}

func (r *batchRepoStub) FindByID(_ context.Context, id string) (*models.Batch, error) {
	batch, ok := r.byID[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return batch, nil
}

func (r *batchRepoStub) ListSubjects(_ context.Context, batchID string) ([]models.BatchSubject, error) {
	return r.links[batchID], nil
}

func (r *batchRepoStub) Create(_ context.Context, batch *models.Batch, subjects []models.BatchSubject) error {
	batch.ID = "batch-created"
	r.created = append(r.created, batch)
	r.captured = subjects
	r.byID[batch.ID] = batch
	r.links[batch.ID] = subjects
	return nil
}

type catalogFixture struct {
	service  *CatalogService
	subjects *subjectRepoStub
	faculty  *facultyRepoStub
	rooms    *roomRepoStub
	batches  *batchRepoStub
}

func newCatalogFixture() *catalogFixture {
	subjects := newSubjectRepoStub()
	faculty := newFacultyRepoStub()
	rooms := newRoomRepoStub()
	batches := newBatchRepoStub()
	return &catalogFixture{
		service:  NewCatalogService(subjects, faculty, rooms, batches, nil, nil),
		subjects: subjects,
		faculty:  faculty,
		rooms:    rooms,
		batches:  batches,
	}
}

func TestCatalogServiceCreateSubject(t *testing.T) {
	fixture := newCatalogFixture()

	subject, err := fixture.service.CreateSubject(context.Background(), dto.CreateSubjectRequest{
		Code:            "CS301",
		Name:            "Operating Systems",
		Department:      "CSE",
		Credits:         4,
		Kind:            "theory",
		SessionsPerWeek: 2,
		DurationMinutes: 60,
		RoomKind:        "lecture_hall",
		MinCapacity:     40,
		Specializations: []string{"systems"},
	})
	require.NoError(t, err)
	assert.Equal(t, "sub-created", subject.ID)
	assert.Equal(t, "CS301", subject.Code)
	require.Len(t, fixture.subjects.created, 1)
}

func TestCatalogServiceCreateSubjectRejectsBadKind(t *testing.T) {
	fixture := newCatalogFixture()

	_, err := fixture.service.CreateSubject(context.Background(), dto.CreateSubjectRequest{
		Code:            "CS301",
		Name:            "Operating Systems",
		Department:      "CSE",
		Credits:         4,
		Kind:            "workshop",
		SessionsPerWeek: 2,
		DurationMinutes: 60,
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestCatalogServiceGetSubjectNotFound(t *testing.T) {
	fixture := newCatalogFixture()

	_, err := fixture.service.GetSubject(context.Background(), "absent")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestCatalogServiceDeleteSubject(t *testing.T) {
	fixture := newCatalogFixture()
	fixture.subjects.byID["sub-1"] = &models.Subject{ID: "sub-1"}

	require.NoError(t, fixture.service.DeleteSubject(context.Background(), "sub-1"))
	assert.Equal(t, []string{"sub-1"}, fixture.subjects.deleted)
}

func TestCatalogServiceListSubjectsForwardsFilter(t *testing.T) {
	fixture := newCatalogFixture()

	_, page, err := fixture.service.ListSubjects(context.Background(), dto.CatalogListQuery{
		Department: "CSE",
		Kind:       "lab",
		Page:       2,
		PageSize:   10,
	})
	require.NoError(t, err)
	assert.Equal(t, "CSE", fixture.subjects.filter.Department)
	assert.Equal(t, "lab", fixture.subjects.filter.Kind)
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 10, page.PageSize)
}

func TestCatalogServiceCreateFacultyEncodesWindows(t *testing.T) {
	fixture := newCatalogFixture()

	member, err := fixture.service.CreateFaculty(context.Background(), dto.CreateFacultyRequest{
		FullName:        "Prof. Rao",
		Email:           "rao@example.edu",
		Rank:            "professor",
		Departments:     []string{"CSE"},
		WeeklyLoadLimit: 16,
		Availability: []dto.TimeWindowPayload{
			{Day: "Monday", Start: "09:00", End: "17:00"},
		},
		Blocked: []dto.TimeWindowPayload{
			{Day: "Friday", Start: "14:00", End: "17:00"},
		},
	})
	require.NoError(t, err)
	assert.True(t, member.Active)

	var availability []models.TimeWindow
	require.NoError(t, json.Unmarshal(member.Availability, &availability))
	require.Len(t, availability, 1)
	assert.Equal(t, "Monday", availability[0].Day)
	assert.Equal(t, "09:00", availability[0].Start)

	var blocked []models.TimeWindow
	require.NoError(t, json.Unmarshal(member.Blocked, &blocked))
	require.Len(t, blocked, 1)
	assert.Equal(t, "Friday", blocked[0].Day)
}

func TestCatalogServiceCreateFacultyRejectsBadEmail(t *testing.T) {
	fixture := newCatalogFixture()

	_, err := fixture.service.CreateFaculty(context.Background(), dto.CreateFacultyRequest{
		FullName:        "Prof. Rao",
		Email:           "not-an-email",
		Rank:            "professor",
		Departments:     []string{"CSE"},
		WeeklyLoadLimit: 16,
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestCatalogServiceDeactivateFaculty(t *testing.T) {
	fixture := newCatalogFixture()
	fixture.faculty.byID["fac-1"] = &models.Faculty{ID: "fac-1", Active: true}

	require.NoError(t, fixture.service.DeactivateFaculty(context.Background(), "fac-1"))
	assert.Equal(t, []string{"fac-1"}, fixture.faculty.deactivated)

	err := fixture.service.DeactivateFaculty(context.Background(), "absent")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestCatalogServiceCreateRoom(t *testing.T) {
	fixture := newCatalogFixture()

	room, err := fixture.service.CreateRoom(context.Background(), dto.CreateRoomRequest{
		Building:   "A",
		RoomNumber: "101",
		Capacity:   60,
		Kind:       "lecture_hall",
	})
	require.NoError(t, err)
	assert.Equal(t, "room-created", room.ID)
	assert.True(t, room.Active)
}

func TestCatalogServiceDeactivateRoomNotFound(t *testing.T) {
	fixture := newCatalogFixture()

	err := fixture.service.DeactivateRoom(context.Background(), "absent")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestCatalogServiceCreateBatchLinksSubjects(t *testing.T) {
	fixture := newCatalogFixture()

	batch, err := fixture.service.CreateBatch(context.Background(), dto.CreateBatchRequest{
		Name:         "CSE-3A",
		Department:   "CSE",
		Semester:     3,
		AcademicYear: "2026-27",
		Enrolled:     55,
		Subjects: []dto.BatchSubjectRequest{
			{SubjectID: "sub-os", FacultyID: "fac-1"},
			{SubjectID: "sub-db"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "batch-created", batch.ID)

	links := fixture.batches.captured
	require.Len(t, links, 2)
	assert.Equal(t, "sub-os", links[0].SubjectID)
	require.NotNil(t, links[0].FacultyID)
	assert.Equal(t, "fac-1", *links[0].FacultyID)
	assert.Equal(t, 0, links[0].Position)
	assert.Nil(t, links[1].FacultyID)
	assert.Equal(t, 1, links[1].Position)
}

func TestCatalogServiceCreateBatchRequiresSubjects(t *testing.T) {
	fixture := newCatalogFixture()

	_, err := fixture.service.CreateBatch(context.Background(), dto.CreateBatchRequest{
		Name:         "CSE-3A",
		Department:   "CSE",
		Semester:     3,
		AcademicYear: "2026-27",
		Enrolled:     55,
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestCatalogServiceGetBatch(t *testing.T) {
	fixture := newCatalogFixture()
	fixture.batches.byID["batch-1"] = &models.Batch{ID: "batch-1", Name: "CSE-3A"}
	fixture.batches.links["batch-1"] = []models.BatchSubject{{BatchID: "batch-1", SubjectID: "sub-os"}}

	batch, links, err := fixture.service.GetBatch(context.Background(), "batch-1")
	require.NoError(t, err)
	assert.Equal(t, "CSE-3A", batch.Name)
	require.Len(t, links, 1)
	assert.Equal(t, "sub-os", links[0].SubjectID)
}
