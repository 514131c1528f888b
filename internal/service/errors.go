package service

import "net/http"

// Error 带 HTTP 状态的业务错误，handler 层统一映射到响应壳
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string { return e.Message }

func BadRequest(msg string) error { return &Error{Status: http.StatusBadRequest, Message: msg} }
func NotFound(msg string) error   { return &Error{Status: http.StatusNotFound, Message: msg} }

// Unauthorized 未登录 / 凭证无效
func Unauthorized(msg string) error {
	return &Error{Status: http.StatusUnauthorized, Message: msg}
}

// Forbidden 归属校验失败。历史契约用的是 401 而不是 403，客户端依赖这个状态码
func Forbidden(msg string) error {
	return &Error{Status: http.StatusUnauthorized, Message: msg}
}

// ErrInsufficientBalance 钱包余额不足
var ErrInsufficientBalance = &Error{Status: http.StatusBadRequest, Message: "Insufficient balance"}
