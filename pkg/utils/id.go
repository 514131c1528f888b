package utils

import "github.com/google/uuid"

// NewID 全局唯一主键
func NewID() string { return uuid.NewString() }
