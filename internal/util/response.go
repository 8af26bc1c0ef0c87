package util

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response is the data payload of a success envelope.
type Response map[string]interface{}

// Business codes returned in the envelope's "code" field.
const (
	CodeOK           = 0
	CodeInvalidParam = 40001
	CodeAuth         = 40101
	CodeNotFound     = 40401
	CodeConflict     = 40901
	CodeRateLimited  = 42901
	CodeServerErr    = 50001
)

// Success writes {"code":0,"data":data}.
func Success(c *gin.Context, data Response) {
	c.JSON(http.StatusOK, gin.H{
		"code": CodeOK,
		"data": data,
	})
}

// Error writes {"code":code,"message":msg} with the given HTTP status.
func Error(c *gin.Context, httpStatus int, code int, msg string) {
	c.JSON(httpStatus, gin.H{
		"code":    code,
		"message": msg,
	})
}
