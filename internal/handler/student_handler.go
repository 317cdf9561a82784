package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/unahur-dev/academico-api/internal/service"
	appErrors "github.com/unahur-dev/academico-api/pkg/errors"
	"github.com/unahur-dev/academico-api/pkg/response"
)

// StudentHandler wires HTTP endpoints to the student service.
type StudentHandler struct {
	service *service.StudentService
}

// NewStudentHandler creates a new handler.
func NewStudentHandler(svc *service.StudentService) *StudentHandler {
	return &StudentHandler{service: svc}
}

// List godoc
// @Summary List students
// @Tags Students
// @Produce json
// @Param page query int false "Page number"
// @Param pageSize query int false "Page size"
// @Success 200 {object} map[string]interface{}
// @Router /al [get]
func (h *StudentHandler) List(c *gin.Context) {
	students, info, err := h.service.List(c.Request.Context(), pageQuery(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Page(c, info.Page, info.PageSize, info.Total, "totalAlumnos", "alumnos", students)
}

// Get godoc
// @Summary Get one student
// @Tags Students
// @Produce json
// @Param id path int true "Student id"
// @Success 200 {object} models.Student
// @Failure 404 {object} map[string]string
// @Router /al/{id} [get]
func (h *StudentHandler) Get(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	student, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, student)
}

// Create godoc
// @Summary Create a student
// @Tags Students
// @Accept json
// @Produce json
// @Param payload body service.StudentRequest true "Student payload"
// @Success 201 {object} map[string]int
// @Failure 400 {object} map[string]string
// @Router /al [post]
func (h *StudentHandler) Create(c *gin.Context) {
	var req service.StudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid student payload"))
		return
	}
	student, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, student.ID)
}

// Update godoc
// @Summary Update a student
// @Tags Students
// @Accept json
// @Produce json
// @Param id path int true "Student id"
// @Param payload body service.StudentRequest true "Student payload"
// @Success 200 {object} models.Student
// @Failure 404 {object} map[string]string
// @Router /al/{id} [put]
func (h *StudentHandler) Update(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var req service.StudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid student payload"))
		return
	}
	student, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, student)
}

// Delete godoc
// @Summary Delete a student
// @Tags Students
// @Param id path int true "Student id"
// @Success 200
// @Failure 404 {object} map[string]string
// @Router /al/{id} [delete]
func (h *StudentHandler) Delete(c *gin.Context) {
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
