package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/unahur-dev/academico-api/internal/service"
	"github.com/unahur-dev/academico-api/pkg/response"
)

// LogHandler exposes the audit trail.
type LogHandler struct {
	service *service.LogService
}

// NewLogHandler creates a new handler.
func NewLogHandler(svc *service.LogService) *LogHandler {
	return &LogHandler{service: svc}
}

// List godoc
// @Summary List audit log entries
// @Tags Logs
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param pageSize query int false "Page size"
// @Success 200 {object} map[string]interface{}
// @Router /logs [get]
func (h *LogHandler) List(c *gin.Context) {
	logs, info, err := h.service.List(pageQuery(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Page(c, info.Page, info.PageSize, info.Total, "totalLogs", "logs", logs)
}
