package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/uni-timetable-api/internal/dto"
	"github.com/noah-isme/uni-timetable-api/internal/models"
	"github.com/noah-isme/uni-timetable-api/internal/service"
	appErrors "github.com/noah-isme/uni-timetable-api/pkg/errors"
	"github.com/noah-isme/uni-timetable-api/pkg/response"
)

type catalogManager interface {
	ListSubjects(ctx context.Context, query dto.CatalogListQuery) ([]models.Subject, *models.Pagination, error)
	CreateSubject(ctx context.Context, req dto.CreateSubjectRequest) (*models.Subject, error)
	GetSubject(ctx context.Context, id string) (*models.Subject, error)
	DeleteSubject(ctx context.Context, id string) error
	ListFaculty(ctx context.Context, query dto.CatalogListQuery) ([]models.Faculty, *models.Pagination, error)
	CreateFaculty(ctx context.Context, req dto.CreateFacultyRequest) (*models.Faculty, error)
	DeactivateFaculty(ctx context.Context, id string) error
	ListRooms(ctx context.Context, query dto.CatalogListQuery) ([]models.Room, *models.Pagination, error)
	CreateRoom(ctx context.Context, req dto.CreateRoomRequest) (*models.Room, error)
	DeactivateRoom(ctx context.Context, id string) error
	ListBatches(ctx context.Context, query dto.CatalogListQuery) ([]models.Batch, *models.Pagination, error)
	CreateBatch(ctx context.Context, req dto.CreateBatchRequest) (*models.Batch, error)
	GetBatch(ctx context.Context, id string) (*models.Batch, []models.BatchSubject, error)
}

// CatalogHandler exposes CRUD endpoints for the scheduling catalog.
type CatalogHandler struct {
	service catalogManager
}

// NewCatalogHandler constructs the handler.
func NewCatalogHandler(svc *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{service: svc}
}

func bindListQuery(c *gin.Context) (dto.CatalogListQuery, bool) {
	var query dto.CatalogListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid list query"))
		return query, false
	}
	return query, true
}

// ListSubjects godoc
// @Summary List subjects
// @Tags Catalog
// @Produce json
// @Param department query string false "Department"
// @Param kind query string false "Subject kind"
// @Success 200 {object} response.Envelope
// @Router /subjects [get]
func (h *CatalogHandler) ListSubjects(c *gin.Context) {
	query, ok := bindListQuery(c)
	if !ok {
		return
	}
	list, page, err := h.service.ListSubjects(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, list, page)
}

// CreateSubject godoc
// @Summary Register a subject
// @Tags Catalog
// @Accept json
// @Produce json
// @Param payload body dto.CreateSubjectRequest true "Subject payload"
// @Success 201 {object} response.Envelope
// @Security BearerAuth
// @Router /subjects [post]
func (h *CatalogHandler) CreateSubject(c *gin.Context) {
	var req dto.CreateSubjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid subject payload"))
		return
	}
	subject, err := h.service.CreateSubject(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, subject)
}

// GetSubject godoc
// @Summary Get one subject
// @Tags Catalog
// @Produce json
// @Param id path string true "Subject ID"
// @Success 200 {object} response.Envelope
// @Router /subjects/{id} [get]
func (h *CatalogHandler) GetSubject(c *gin.Context) {
	subject, err := h.service.GetSubject(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, subject, nil)
}

// DeleteSubject godoc
// @Summary Delete a subject
// @Tags Catalog
// @Param id path string true "Subject ID"
// @Success 204
// @Security BearerAuth
// @Router /subjects/{id} [delete]
func (h *CatalogHandler) DeleteSubject(c *gin.Context) {
	if err := h.service.DeleteSubject(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ListFaculty godoc
// @Summary List faculty
// @Tags Catalog
// @Produce json
// @Param department query string false "Department"
// @Success 200 {object} response.Envelope
// @Router /faculty [get]
func (h *CatalogHandler) ListFaculty(c *gin.Context) {
	query, ok := bindListQuery(c)
	if !ok {
		return
	}
	list, page, err := h.service.ListFaculty(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, list, page)
}

// CreateFaculty godoc
// @Summary Register an instructor
// @Tags Catalog
// @Accept json
// @Produce json
// @Param payload body dto.CreateFacultyRequest true "Faculty payload"
// @Success 201 {object} response.Envelope
// @Security BearerAuth
// @Router /faculty [post]
func (h *CatalogHandler) CreateFaculty(c *gin.Context) {
	var req dto.CreateFacultyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid faculty payload"))
		return
	}
	member, err := h.service.CreateFaculty(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, member)
}

// DeactivateFaculty godoc
// @Summary Deactivate an instructor
// @Tags Catalog
// @Param id path string true "Faculty ID"
// @Success 204
// @Security BearerAuth
// @Router /faculty/{id} [delete]
func (h *CatalogHandler) DeactivateFaculty(c *gin.Context) {
	if err := h.service.DeactivateFaculty(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ListRooms godoc
// @Summary List rooms
// @Tags Catalog
// @Produce json
// @Param department query string false "Department"
// @Param kind query string false "Room kind"
// @Success 200 {object} response.Envelope
// @Router /rooms [get]
func (h *CatalogHandler) ListRooms(c *gin.Context) {
	query, ok := bindListQuery(c)
	if !ok {
		return
	}
	list, page, err := h.service.ListRooms(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, list, page)
}

// CreateRoom godoc
// @Summary Register a room
// @Tags Catalog
// @Accept json
// @Produce json
// @Param payload body dto.CreateRoomRequest true "Room payload"
// @Success 201 {object} response.Envelope
// @Security BearerAuth
// @Router /rooms [post]
func (h *CatalogHandler) CreateRoom(c *gin.Context) {
	var req dto.CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid room payload"))
		return
	}
	room, err := h.service.CreateRoom(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, room)
}

// DeactivateRoom godoc
// @Summary Take a room out of scheduling rotation
// @Tags Catalog
// @Param id path string true "Room ID"
// @Success 204
// @Security BearerAuth
// @Router /rooms/{id} [delete]
func (h *CatalogHandler) DeactivateRoom(c *gin.Context) {
	if err := h.service.DeactivateRoom(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ListBatches godoc
// @Summary List batches
// @Tags Catalog
// @Produce json
// @Param department query string false "Department"
// @Success 200 {object} response.Envelope
// @Router /batches [get]
func (h *CatalogHandler) ListBatches(c *gin.Context) {
	query, ok := bindListQuery(c)
	if !ok {
		return
	}
	list, page, err := h.service.ListBatches(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, list, page)
}

// CreateBatch godoc
// @Summary Register a batch with its subject list
// @Tags Catalog
// @Accept json
// @Produce json
// @Param payload body dto.CreateBatchRequest true "Batch payload"
// @Success 201 {object} response.Envelope
// @Security BearerAuth
// @Router /batches [post]
func (h *CatalogHandler) CreateBatch(c *gin.Context) {
	var req dto.CreateBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid batch payload"))
		return
	}
	batch, err := h.service.CreateBatch(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, batch)
}

// GetBatch godoc
// @Summary Get one batch with its subject links
// @Tags Catalog
// @Produce json
// @Param id path string true "Batch ID"
// @Success 200 {object} response.Envelope
// @Router /batches/{id} [get]
func (h *CatalogHandler) GetBatch(c *gin.Context) {
	batch, links, err := h.service.GetBatch(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"batch": batch, "subjects": links}, nil)
}
