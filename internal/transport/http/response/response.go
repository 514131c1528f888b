package response

import "github.com/gin-gonic/gin"

// Body 所有接口共用的响应壳，字段名和有无都算线上契约
type Body struct {
	Success bool   `json:"success"`
	Count   *int   `json:"count,omitempty"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// OK 成功响应（data 不为 null）
func OK(c *gin.Context, status int, data any) {
	if data == nil {
		data = struct{}{}
	}
	c.JSON(status, Body{Success: true, Data: data})
}

// List 列表响应带 count
func List(c *gin.Context, status, count int, data any) {
	c.JSON(status, Body{Success: true, Count: &count, Data: data})
}

// Fail 失败响应
func Fail(c *gin.Context, status int, msg string) {
	c.JSON(status, Body{Success: false, Error: msg})
}

// Abort 中间件里用：失败并截断后续 handler
func Abort(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, Body{Success: false, Error: msg})
}
