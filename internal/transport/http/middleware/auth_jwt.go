package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"charity-fund-api/internal/core/auth"
	resp "charity-fund-api/internal/transport/http/response"
)

// 下游 handler 从这两个 key 取已验证的身份
const (
	KeyUserID = "userId"
	KeyRole   = "role"
)

// AuthJWT 私有路由的准入门；没有有效 token 时核心逻辑不会执行
func AuthJWT(j *auth.JWTer) gin.HandlerFunc {
	return func(c *gin.Context) {
		ah := c.GetHeader("Authorization")
		if !strings.HasPrefix(ah, "Bearer ") {
			resp.Abort(c, http.StatusUnauthorized, "Not authorized to access this route")
			return
		}
		claims, err := j.Parse(strings.TrimPrefix(ah, "Bearer "))
		if err != nil {
			resp.Abort(c, http.StatusUnauthorized, "Not authorized to access this route")
			return
		}
		c.Set(KeyUserID, claims.UserID())
		c.Set(KeyRole, claims.Role)
		c.Next()
	}
}
