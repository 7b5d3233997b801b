package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/uni-timetable-api/internal/dto"
	appErrors "github.com/noah-isme/uni-timetable-api/pkg/errors"
)

type timetableGeneratorMock struct {
	captured   dto.GenerateTimetableRequest
	savedID    string
	saveErr    error
	deletedID  string
	exportFmt  string
	bulkQueued []string
}

func (m *timetableGeneratorMock) Generate(_ context.Context, req dto.GenerateTimetableRequest) (*dto.GenerateTimetableResponse, error) {
	m.captured = req
	return &dto.GenerateTimetableResponse{ProposalID: "proposal-1", Success: true, Score: 90}, nil
}

func (m *timetableGeneratorMock) Save(_ context.Context, req dto.SaveTimetableRequest) (*dto.TimetableSummary, error) {
	if m.saveErr != nil {
		return nil, m.saveErr
	}
	m.savedID = req.ProposalID
	return &dto.TimetableSummary{ID: "tt-1", Version: 1, Status: "DRAFT"}, nil
}

func (m *timetableGeneratorMock) List(_ context.Context, _ dto.TimetableQuery) ([]dto.TimetableSummary, error) {
	return []dto.TimetableSummary{{ID: "tt-1", Version: 1}}, nil
}

func (m *timetableGeneratorMock) Get(_ context.Context, id string) (*dto.TimetableDetailResponse, error) {
	return &dto.TimetableDetailResponse{Timetable: dto.TimetableSummary{ID: id}}, nil
}

func (m *timetableGeneratorMock) UpdateStatus(_ context.Context, _ string, _ dto.UpdateTimetableStatusRequest) error {
	return nil
}

func (m *timetableGeneratorMock) Delete(_ context.Context, id string) error {
	m.deletedID = id
	return nil
}

func (m *timetableGeneratorMock) Export(_ context.Context, _ string, format string) ([]byte, string, string, error) {
	m.exportFmt = format
	return []byte("Day,Start"), "text/csv", "timetable_CSE_s1_v1.csv", nil
}

func (m *timetableGeneratorMock) BulkGenerate(_ context.Context, req dto.BulkGenerateRequest) (*dto.BulkGenerateResponse, error) {
	m.bulkQueued = req.Departments
	return &dto.BulkGenerateResponse{Queued: req.Departments}, nil
}

func postJSON(t *testing.T, handlerFn gin.HandlerFunc, path string, payload []byte) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	req, err := http.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req
	handlerFn(c)
	return w
}

func TestTimetableHandlerGenerate(t *testing.T) {
	mockSvc := &timetableGeneratorMock{}
	h := &TimetableHandler{service: mockSvc}

	payload := []byte(`{"academicYear":"2026-27","semester":1,"department":"CSE"}`)
	w := postJSON(t, h.Generate, "/timetables/generate", payload)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "2026-27", mockSvc.captured.AcademicYear)
	require.Equal(t, "CSE", mockSvc.captured.Department)

	var envelope struct {
		Data dto.GenerateTimetableResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.Equal(t, "proposal-1", envelope.Data.ProposalID)
}

func TestTimetableHandlerGenerateMalformedBody(t *testing.T) {
	h := &TimetableHandler{service: &timetableGeneratorMock{}}

	w := postJSON(t, h.Generate, "/timetables/generate", []byte(`{"academicYear":`))

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTimetableHandlerSave(t *testing.T) {
	mockSvc := &timetableGeneratorMock{}
	h := &TimetableHandler{service: mockSvc}

	w := postJSON(t, h.Save, "/timetables/save", []byte(`{"proposalId":"proposal-1"}`))

	require.Equal(t, http.StatusCreated, w.Code)
	require.Equal(t, "proposal-1", mockSvc.savedID)
}

func TestTimetableHandlerSaveExpired(t *testing.T) {
	mockSvc := &timetableGeneratorMock{saveErr: appErrors.Clone(appErrors.ErrProposalExpired, "proposal expired or unknown")}
	h := &TimetableHandler{service: mockSvc}

	w := postJSON(t, h.Save, "/timetables/save", []byte(`{"proposalId":"proposal-1"}`))

	require.Equal(t, http.StatusGone, w.Code)
}

func TestTimetableHandlerList(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := &TimetableHandler{service: &timetableGeneratorMock{}}
	router := gin.New()
	router.GET("/timetables", h.List)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/timetables?academicYear=2026-27&semester=1&department=CSE", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
}

func TestTimetableHandlerListMissingScope(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := &TimetableHandler{service: &timetableGeneratorMock{}}
	router := gin.New()
	router.GET("/timetables", h.List)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/timetables", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTimetableHandlerExport(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &timetableGeneratorMock{}
	h := &TimetableHandler{service: mockSvc}
	router := gin.New()
	router.GET("/timetables/:id/export", h.Export)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/timetables/tt-1/export?format=csv", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "csv", mockSvc.exportFmt)
	require.Contains(t, w.Header().Get("Content-Disposition"), "timetable_CSE_s1_v1.csv")
}

func TestTimetableHandlerDelete(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &timetableGeneratorMock{}
	h := &TimetableHandler{service: mockSvc}
	router := gin.New()
	router.DELETE("/timetables/:id", h.Delete)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodDelete, "/timetables/tt-1", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusNoContent, w.Code)
	require.Equal(t, "tt-1", mockSvc.deletedID)
}

func TestTimetableHandlerBulkGenerate(t *testing.T) {
	mockSvc := &timetableGeneratorMock{}
	h := &TimetableHandler{service: mockSvc}

	payload := []byte(`{"academicYear":"2026-27","semester":1,"departments":["CSE","ECE"]}`)
	w := postJSON(t, h.BulkGenerate, "/timetables/bulk-generate", payload)

	require.Equal(t, http.StatusAccepted, w.Code)
	require.Equal(t, []string{"CSE", "ECE"}, mockSvc.bulkQueued)
}
