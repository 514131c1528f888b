package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	resp "charity-fund-api/internal/transport/http/response"
)

// MaxBodyBytes 限制请求体大小；Content-Length 可知时直接拒，分块传输靠 MaxBytesReader 兜底
func MaxBodyBytes(n int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > n {
			resp.Abort(c, http.StatusBadRequest, "Request body too large")
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, n)

		c.Next()

		if c.Err() != nil && !c.Writer.Written() {
			resp.Abort(c, http.StatusBadRequest, "Request body too large")
		}
	}
}
