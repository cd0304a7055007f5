package domain

import "fmt"

// 统一错误分类：仓储层把后端错误翻译成这四类，facade 只认这四类。

// ValidationError 字段或业务规则校验失败
type ValidationError struct {
	Field  string // 出错字段（业务规则错误可为空）
	Rule   string // required / max-length / range / format / policy
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed on %q (%s): %s", e.Field, e.Rule, e.Reason)
	}
	return fmt.Sprintf("validation failed (%s): %s", e.Rule, e.Reason)
}

func NewValidationError(field, rule, reason string) *ValidationError {
	return &ValidationError{Field: field, Rule: rule, Reason: reason}
}

// NotFoundError 引用的 ID 不存在
type NotFoundError struct {
	Kind string // user / place / amenity / review
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.ID)
}

func NewNotFoundError(kind, id string) *NotFoundError {
	return &NotFoundError{Kind: kind, ID: id}
}

// ConflictError 唯一性或标识冲突
type ConflictError struct {
	Reason string
}

func (e *ConflictError) Error() string { return e.Reason }

func NewConflictError(reason string) *ConflictError {
	return &ConflictError{Reason: reason}
}

// AuthorizationError 已认证但权限不足
type AuthorizationError struct {
	Reason string
}

func (e *AuthorizationError) Error() string { return e.Reason }

func NewAuthorizationError(reason string) *AuthorizationError {
	return &AuthorizationError{Reason: reason}
}
