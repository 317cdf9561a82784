package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/unahur-dev/academico-api/internal/models"
	appErrors "github.com/unahur-dev/academico-api/pkg/errors"
)

// pathID parses the :id path parameter. Non-numeric ids fail validation.
func pathID(c *gin.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return 0, appErrors.Clone(appErrors.ErrValidation, "el id debe ser numerico")
	}
	return id, nil
}

// pageQuery reads the page/pageSize query parameters. Absent or malformed
// values fall back to zero and get clamped by Normalize downstream.
func pageQuery(c *gin.Context) models.PageQuery {
	page, _ := strconv.Atoi(c.Query("page"))
	pageSize, _ := strconv.Atoi(c.Query("pageSize"))
	return models.PageQuery{Page: page, PageSize: pageSize}
}
