package utils

import (
	"github.com/gin-gonic/gin"
)

type JSONResponse struct {
	Status  bool        `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func RespondJSON(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, JSONResponse{
		Status:  code >= 200 && code < 300,
		Message: message,
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, err error) {
	c.JSON(code, JSONResponse{
		Status:  false,
		Message: err.Error(),
		Data:    nil,
	})
}

// RespondList wraps a collection payload in the {data, stats} shape the
// SPA expects. stats is omitted when nil.
func RespondList(c *gin.Context, code int, message string, data interface{}, stats interface{}) {
	payload := gin.H{"data": data}
	if stats != nil {
		payload["stats"] = stats
	}
	RespondJSON(c, code, message, payload)
}
