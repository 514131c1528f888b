package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"charity-fund-api/internal/service"
	resp "charity-fund-api/internal/transport/http/response"
)

// fail 业务错误带自己的状态码；其余一律 400，沿用历史契约的兜底
func fail(c *gin.Context, err error) {
	var se *service.Error
	if errors.As(err, &se) {
		resp.Fail(c, se.Status, se.Message)
		return
	}
	resp.Fail(c, http.StatusBadRequest, err.Error())
}
