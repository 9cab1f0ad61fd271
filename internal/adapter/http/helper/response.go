package helper

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"todoapp/internal/core/model/response"
)

// SendSuccess writes the operation result as the raw response body.
func SendSuccess(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

// SendError writes the {message} error envelope.
func SendError(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, response.ErrorResponse{Message: message})
}
