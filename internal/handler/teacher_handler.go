package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/unahur-dev/academico-api/internal/service"
	appErrors "github.com/unahur-dev/academico-api/pkg/errors"
	"github.com/unahur-dev/academico-api/pkg/response"
)

// TeacherHandler wires HTTP endpoints to the teacher service.
type TeacherHandler struct {
	service *service.TeacherService
}

// NewTeacherHandler creates a new handler.
func NewTeacherHandler(svc *service.TeacherService) *TeacherHandler {
	return &TeacherHandler{service: svc}
}

// List godoc
// @Summary List teachers
// @Tags Teachers
// @Produce json
// @Param page query int false "Page number"
// @Param pageSize query int false "Page size"
// @Success 200 {object} map[string]interface{}
// @Router /doc [get]
func (h *TeacherHandler) List(c *gin.Context) {
	teachers, info, err := h.service.List(c.Request.Context(), pageQuery(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Page(c, info.Page, info.PageSize, info.Total, "totalDocentes", "docentes", teachers)
}

// Get godoc
// @Summary Get one teacher
// @Tags Teachers
// @Produce json
// @Param id path int true "Teacher id"
// @Success 200 {object} models.Teacher
// @Failure 404 {object} map[string]string
// @Router /doc/{id} [get]
func (h *TeacherHandler) Get(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	teacher, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, teacher)
}

// Create godoc
// @Summary Create a teacher
// @Tags Teachers
// @Accept json
// @Produce json
// @Param payload body service.TeacherRequest true "Teacher payload"
// @Success 201 {object} map[string]int
// @Failure 400 {object} map[string]string
// @Router /doc [post]
func (h *TeacherHandler) Create(c *gin.Context) {
	var req service.TeacherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid teacher payload"))
		return
	}
	teacher, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, teacher.ID)
}

// Update godoc
// @Summary Update a teacher
// @Tags Teachers
// @Accept json
// @Produce json
// @Param id path int true "Teacher id"
// @Param payload body service.TeacherRequest true "Teacher payload"
// @Success 200 {object} models.Teacher
// @Failure 404 {object} map[string]string
// @Router /doc/{id} [put]
func (h *TeacherHandler) Update(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var req service.TeacherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid teacher payload"))
		return
	}
	teacher, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, teacher)
}

// Delete godoc
// @Summary Delete a teacher
// @Tags Teachers
// @Param id path int true "Teacher id"
// @Success 200
// @Failure 404 {object} map[string]string
// @Router /doc/{id} [delete]
func (h *TeacherHandler) Delete(c *gin.Context) {
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
