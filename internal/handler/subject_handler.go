package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/unahur-dev/academico-api/internal/service"
	appErrors "github.com/unahur-dev/academico-api/pkg/errors"
	"github.com/unahur-dev/academico-api/pkg/response"
)

// SubjectHandler wires HTTP endpoints to the subject service. Writes are
// admin-only; the route setup mounts RequireAdmin in front of them.
type SubjectHandler struct {
	service *service.SubjectService
}

// NewSubjectHandler creates a new handler.
func NewSubjectHandler(svc *service.SubjectService) *SubjectHandler {
	return &SubjectHandler{service: svc}
}

// List godoc
// @Summary List subjects
// @Tags Subjects
// @Produce json
// @Param page query int false "Page number"
// @Param pageSize query int false "Page size"
// @Success 200 {object} map[string]interface{}
// @Router /mat [get]
func (h *SubjectHandler) List(c *gin.Context) {
	subjects, info, err := h.service.List(c.Request.Context(), pageQuery(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Page(c, info.Page, info.PageSize, info.Total, "totalMaterias", "materias", subjects)
}

// Get godoc
// @Summary Get one subject
// @Tags Subjects
// @Produce json
// @Param id path int true "Subject id"
// @Success 200 {object} models.Subject
// @Failure 404 {object} map[string]string
// @Router /mat/{id} [get]
func (h *SubjectHandler) Get(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	subject, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, subject)
}

// Create godoc
// @Summary Create a subject
// @Tags Subjects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body service.SubjectRequest true "Subject payload"
// @Success 201 {object} map[string]int
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /mat [post]
func (h *SubjectHandler) Create(c *gin.Context) {
	var req service.SubjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid subject payload"))
		return
	}
	subject, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, subject.ID)
}

// Update godoc
// @Summary Update a subject
// @Tags Subjects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Subject id"
// @Param payload body service.SubjectRequest true "Subject payload"
// @Success 200 {object} models.Subject
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /mat/{id} [put]
func (h *SubjectHandler) Update(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var req service.SubjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid subject payload"))
		return
	}
	subject, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, subject)
}

// Delete godoc
// @Summary Delete a subject
// @Tags Subjects
// @Security BearerAuth
// @Param id path int true "Subject id"
// @Success 200
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /mat/{id} [delete]
func (h *SubjectHandler) Delete(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c)
}
