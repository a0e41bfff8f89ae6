package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SuccessResponse is the envelope for every successful reply.
type SuccessResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
}

// ErrorResponse is the envelope for every failed reply. The error string is
// the single source of truth for the failure reason.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// RespondSuccess writes the success envelope with the given status.
func RespondSuccess(c *gin.Context, status int, data interface{}) {
	c.JSON(status, SuccessResponse{Success: true, Data: data})
}

// RespondOK writes the success envelope with status 200.
func RespondOK(c *gin.Context, data interface{}) {
	RespondSuccess(c, http.StatusOK, data)
}

// RespondError writes the error envelope with the given status and message.
func RespondError(c *gin.Context, status int, message string) {
	c.JSON(status, ErrorResponse{Success: false, Error: message})
}

// AbortError writes the error envelope and stops the handler chain.
func AbortError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, ErrorResponse{Success: false, Error: message})
}
