package domain

import (
	"time"

	"github.com/google/uuid"
)

// Base 四种实体的公共部分：UUID 主键 + 创建/更新时间。
// 同时作为 gorm 的嵌入字段，列定义随实体建表。
type Base struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func newBase() Base {
	now := time.Now().UTC()
	return Base{ID: uuid.NewString(), CreatedAt: now, UpdatedAt: now}
}

// EntityID 仓储按此键存取
func (b *Base) EntityID() string { return b.ID }

// Touch 每次成功变更后刷新 updated_at
func (b *Base) Touch() { b.UpdatedAt = time.Now().UTC() }

// ---- 更新字段的通用转换 ----
// JSON 解出来的数字一律是 float64，这里统一收口做类型转换，
// 转不动就按 ValidationError 报，不让类型错误漏出去。

func coerceString(field string, v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", NewValidationError(field, "format", "must be a string")
	}
	return s, nil
}

func coerceFloat(field string, v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	}
	return 0, NewValidationError(field, "format", "must be a number")
}

func coerceInt(field string, v any) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		if n != float64(int(n)) {
			return 0, NewValidationError(field, "format", "must be an integer")
		}
		return int(n), nil
	}
	return 0, NewValidationError(field, "format", "must be an integer")
}

func coerceBool(field string, v any) (bool, error) {
	b, ok := v.(bool)
	if !ok {
		return false, NewValidationError(field, "format", "must be a boolean")
	}
	return b, nil
}
