package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	resp "go-socialnet/internal/transport/http/response"
)

// MaxBodyBytes bounds request bodies, CSV uploads included.
func MaxBodyBytes(n int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > n {
			c.AbortWithStatusJSON(http.StatusOK, resp.Error(resp.CodeTooLarge, "request body too large"))
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, n)
		c.Next()
	}
}
