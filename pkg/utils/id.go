package utils

import "github.com/google/uuid"

// NewID 全局唯一标识（UUID v4 字符串）
func NewID() string { return uuid.NewString() }
