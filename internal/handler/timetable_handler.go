package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/uni-timetable-api/internal/dto"
	"github.com/noah-isme/uni-timetable-api/internal/service"
	appErrors "github.com/noah-isme/uni-timetable-api/pkg/errors"
	"github.com/noah-isme/uni-timetable-api/pkg/response"
)

const maxPreassignments = 256

type timetableGenerator interface {
	Generate(ctx context.Context, req dto.GenerateTimetableRequest) (*dto.GenerateTimetableResponse, error)
	Save(ctx context.Context, req dto.SaveTimetableRequest) (*dto.TimetableSummary, error)
	List(ctx context.Context, query dto.TimetableQuery) ([]dto.TimetableSummary, error)
	Get(ctx context.Context, id string) (*dto.TimetableDetailResponse, error)
	UpdateStatus(ctx context.Context, id string, req dto.UpdateTimetableStatusRequest) error
	Delete(ctx context.Context, id string) error
	Export(ctx context.Context, id, format string) ([]byte, string, string, error)
	BulkGenerate(ctx context.Context, req dto.BulkGenerateRequest) (*dto.BulkGenerateResponse, error)
}

// TimetableHandler exposes the generation and versioning endpoints.
type TimetableHandler struct {
	service timetableGenerator
}

// NewTimetableHandler constructs the handler.
func NewTimetableHandler(svc *service.TimetableService) *TimetableHandler {
	return &TimetableHandler{service: svc}
}

// Generate godoc
// @Summary Generate a timetable proposal for one department scope
// @Description Runs the engine and returns a preview proposal. Proposals are held in memory until saved or expired.
// @Tags Timetables
// @Accept json
// @Produce json
// @Param payload body dto.GenerateTimetableRequest true "Generation payload"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /timetables/generate [post]
func (h *TimetableHandler) Generate(c *gin.Context) {
	var req dto.GenerateTimetableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid generate payload"))
		return
	}
	if len(req.Preassignments) > maxPreassignments {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "preassignments exceeds supported limit"))
		return
	}
	result, err := h.service.Generate(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// Save godoc
// @Summary Persist a generated proposal as the next timetable version
// @Tags Timetables
// @Accept json
// @Produce json
// @Param payload body dto.SaveTimetableRequest true "Save payload"
// @Success 201 {object} response.Envelope
// @Security BearerAuth
// @Router /timetables/save [post]
func (h *TimetableHandler) Save(c *gin.Context) {
	var req dto.SaveTimetableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid save payload"))
		return
	}
	summary, err := h.service.Save(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, summary)
}

// List godoc
// @Summary List stored timetable versions for a scope
// @Tags Timetables
// @Produce json
// @Param academicYear query string true "Academic year"
// @Param semester query int true "Semester"
// @Param department query string true "Department"
// @Success 200 {object} response.Envelope
// @Router /timetables [get]
func (h *TimetableHandler) List(c *gin.Context) {
	var query dto.TimetableQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid timetable query"))
		return
	}
	result, err := h.service.List(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// Get godoc
// @Summary Get one stored timetable with its assignments
// @Tags Timetables
// @Produce json
// @Param id path string true "Timetable ID"
// @Success 200 {object} response.Envelope
// @Router /timetables/{id} [get]
func (h *TimetableHandler) Get(c *gin.Context) {
	detail, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, detail, nil)
}

// UpdateStatus godoc
// @Summary Move a timetable through its lifecycle
// @Tags Timetables
// @Accept json
// @Produce json
// @Param id path string true "Timetable ID"
// @Param payload body dto.UpdateTimetableStatusRequest true "Status payload"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /timetables/{id}/status [patch]
func (h *TimetableHandler) UpdateStatus(c *gin.Context) {
	var req dto.UpdateTimetableStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid status payload"))
		return
	}
	if err := h.service.UpdateStatus(c.Request.Context(), c.Param("id"), req); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"status": req.Status}, nil)
}

// Delete godoc
// @Summary Delete a draft timetable
// @Tags Timetables
// @Param id path string true "Timetable ID"
// @Success 204
// @Security BearerAuth
// @Router /timetables/{id} [delete]
func (h *TimetableHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Export godoc
// @Summary Export a stored timetable as CSV or PDF
// @Tags Timetables
// @Produce octet-stream
// @Param id path string true "Timetable ID"
// @Param format query string false "csv or pdf" default(csv)
// @Success 200 {file} binary
// @Router /timetables/{id}/export [get]
func (h *TimetableHandler) Export(c *gin.Context) {
	payload, contentType, filename, err := h.service.Export(c.Request.Context(), c.Param("id"), c.Query("format"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, contentType, payload)
}

// BulkGenerate godoc
// @Summary Queue timetable generation for several departments
// @Description Each department runs asynchronously and persists its result as a draft version.
// @Tags Timetables
// @Accept json
// @Produce json
// @Param payload body dto.BulkGenerateRequest true "Bulk payload"
// @Success 202 {object} response.Envelope
// @Security BearerAuth
// @Router /timetables/bulk-generate [post]
func (h *TimetableHandler) BulkGenerate(c *gin.Context) {
	var req dto.BulkGenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid bulk payload"))
		return
	}
	result, err := h.service.BulkGenerate(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusAccepted, result, nil)
}
