package response

import (
	"github.com/gin-gonic/gin"
)

// The payload shapes of this API predate this implementation and are consumed
// by a deployed frontend, so success bodies are written flat (no envelope).
// Errors carry the human-readable message under "error" — the key the clients
// read — plus a machine code, which clients are free to ignore.

func Success(c *gin.Context, status int, data any) {
	c.JSON(status, data)
}

func Error(c *gin.Context, status int, errorCode string, message string, details any) {
	body := gin.H{
		"error": message,
		"code":  errorCode,
	}
	if details != nil {
		body["details"] = details
	}
	c.JSON(status, body)
}
