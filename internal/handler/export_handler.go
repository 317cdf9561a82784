package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/unahur-dev/academico-api/internal/service"
	"github.com/unahur-dev/academico-api/pkg/response"
)

// ExportHandler streams roster exports.
type ExportHandler struct {
	service *service.ExportService
}

// NewExportHandler creates a new handler.
func NewExportHandler(svc *service.ExportService) *ExportHandler {
	return &ExportHandler{service: svc}
}

// StudentRoster godoc
// @Summary Export the student roster
// @Tags Exports
// @Produce text/csv
// @Produce application/pdf
// @Security BearerAuth
// @Param format query string false "csv or pdf" default(csv)
// @Success 200 {file} file
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /al/export [get]
func (h *ExportHandler) StudentRoster(c *gin.Context) {
	format := c.DefaultQuery("format", service.FormatCSV)

	file, err := h.service.StudentRoster(c.Request.Context(), format)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Filename))
	c.Data(http.StatusOK, file.ContentType, file.Content)
}
