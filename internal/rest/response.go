package rest

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Response is the envelope every query endpoint answers with.
type Response struct {
	Status    string    `json:"status"`
	Message   string    `json:"message"`
	Code      string    `json:"code"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
}

func respondSuccess(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Response{
		Status:    "success",
		Message:   "success",
		Code:      "ok",
		Timestamp: time.Now().UTC(),
		Data:      data,
	})
}

func respondError(c *gin.Context, status int, code, message string) {
	c.JSON(status, Response{
		Status:    "error",
		Message:   message,
		Code:      code,
		Timestamp: time.Now().UTC(),
	})
}
