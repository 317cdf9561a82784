package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appErrors "github.com/unahur-dev/academico-api/pkg/errors"
)

// JSON sends a success response with the given payload.
func JSON(c *gin.Context, status int, data interface{}) {
	c.JSON(status, data)
}

// Created responds with HTTP 201 and the new entity id.
func Created(c *gin.Context, id int) {
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// Page sends a paginated list body of the form
// {page, pageSize, total<Key>: n, <key>: [...]}.
func Page(c *gin.Context, page, pageSize, total int, totalKey, itemsKey string, items interface{}) {
	c.JSON(http.StatusOK, gin.H{
		"page":     page,
		"pageSize": pageSize,
		totalKey:   total,
		itemsKey:   items,
	})
}

// OK sends a bare 200 with no body, mirroring the original delete/update
// acknowledgements.
func OK(c *gin.Context) {
	c.Status(http.StatusOK)
}

// Error normalises err into the typed taxonomy and writes
// {"error": message} with the carried status. Internal detail never reaches
// the caller.
func Error(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	c.JSON(appErr.Status, gin.H{"error": appErr.Message})
}
