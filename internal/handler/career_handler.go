package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/unahur-dev/academico-api/internal/service"
	appErrors "github.com/unahur-dev/academico-api/pkg/errors"
	"github.com/unahur-dev/academico-api/pkg/response"
)

// CareerHandler wires HTTP endpoints to the career service.
type CareerHandler struct {
	service *service.CareerService
}

// NewCareerHandler creates a new handler.
func NewCareerHandler(svc *service.CareerService) *CareerHandler {
	return &CareerHandler{service: svc}
}

// List godoc
// @Summary List careers
// @Tags Careers
// @Produce json
// @Param page query int false "Page number"
// @Param pageSize query int false "Page size"
// @Success 200 {object} map[string]interface{}
// @Router /car [get]
func (h *CareerHandler) List(c *gin.Context) {
	careers, info, err := h.service.List(c.Request.Context(), pageQuery(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Page(c, info.Page, info.PageSize, info.Total, "totalCarreras", "carreras", careers)
}

// Get godoc
// @Summary Get one career
// @Tags Careers
// @Produce json
// @Param id path int true "Career id"
// @Success 200 {object} models.Career
// @Failure 404 {object} map[string]string
// @Router /car/{id} [get]
func (h *CareerHandler) Get(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	career, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, career)
}

// Create godoc
// @Summary Create a career
// @Tags Careers
// @Accept json
// @Produce json
// @Param payload body service.CareerRequest true "Career payload"
// @Success 201 {object} map[string]int
// @Failure 400 {object} map[string]string
// @Router /car [post]
func (h *CareerHandler) Create(c *gin.Context) {
	var req service.CareerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid career payload"))
		return
	}
	career, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, career.ID)
}

// Update godoc
// @Summary Update a career
// @Tags Careers
// @Accept json
// @Produce json
// @Param id path int true "Career id"
// @Param payload body service.CareerRequest true "Career payload"
// @Success 200 {object} models.Career
// @Failure 404 {object} map[string]string
// @Router /car/{id} [put]
func (h *CareerHandler) Update(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var req service.CareerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid career payload"))
		return
	}
	career, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, career)
}

// Delete godoc
// @Summary Delete a career
// @Tags Careers
// @Param id path int true "Career id"
// @Success 200
// @Failure 404 {object} map[string]string
// @Router /car/{id} [delete]
func (h *CareerHandler) Delete(c *gin.Context) {
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
