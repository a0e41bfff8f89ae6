package hello

import (
	"net/http"
	"time"

	"user-portal-backend/utils"

	"github.com/gin-gonic/gin"
)

type HelloResponse struct {
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Status    string    `json:"status"`
}

type EchoRequest struct {
	Message string `json:"message"`
}

type EchoResponse struct {
	Message  string    `json:"message"`
	Received time.Time `json:"received"`
}

// HandleHello is the unauthenticated health-style demo route.
func HandleHello(c *gin.Context) {
	utils.RespondOK(c, HelloResponse{
		Message:   "Hello from the API",
		Timestamp: time.Now().UTC(),
		Status:    "ok",
	})
}

// HandleEcho echoes the posted message back.
func HandleEcho(c *gin.Context) {
	var req EchoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	utils.RespondOK(c, EchoResponse{
		Message:  req.Message,
		Received: time.Now().UTC(),
	})
}
