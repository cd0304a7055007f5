package response

import (
	"errors"
	"net/http"

	"staymarket/internal/domain"
)

const (
	CodeOK           = 0
	CodeBadRequest   = 400
	CodeUnauthorized = 401
	CodeForbidden    = 403
	CodeNotFound     = 404
	CodeConflict     = 409
	CodeServerError  = 500
)

var codeMsg = map[int]string{
	CodeOK:           "OK",
	CodeBadRequest:   "Bad Request",
	CodeUnauthorized: "Unauthorized",
	CodeForbidden:    "Forbidden",
	CodeNotFound:     "Not Found",
	CodeConflict:     "Conflict",
	CodeServerError:  "Internal Server Error",
}

// Resp 统一响应包络
type Resp struct {
	Code int         `json:"code"`
	Msg  string      `json:"msg"`
	Data interface{} `json:"data"`
}

// New 保证 data 不为 null
func New(code int, msg string, data interface{}) Resp {
	if data == nil {
		data = struct{}{}
	}
	return Resp{Code: code, Msg: msg, Data: data}
}

func OK(data interface{}) Resp {
	return New(CodeOK, codeMsg[CodeOK], data)
}

func Error(code int, customMsg string) Resp {
	msg := codeMsg[code]
	if customMsg != "" {
		msg = customMsg
	}
	return New(code, msg, struct{}{})
}

// FromError 错误分类映射到 HTTP 状态：
// Validation→400 NotFound→404 Conflict→409 Authorization→403，其余 500。
// 仓储层保证了后端私有错误不会漏到这里。
func FromError(err error) (int, Resp) {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return http.StatusBadRequest, Error(CodeBadRequest, ve.Error())
	}
	var nf *domain.NotFoundError
	if errors.As(err, &nf) {
		return http.StatusNotFound, Error(CodeNotFound, nf.Error())
	}
	var ce *domain.ConflictError
	if errors.As(err, &ce) {
		return http.StatusConflict, Error(CodeConflict, ce.Error())
	}
	var ae *domain.AuthorizationError
	if errors.As(err, &ae) {
		return http.StatusForbidden, Error(CodeForbidden, ae.Error())
	}
	return http.StatusInternalServerError, Error(CodeServerError, "internal error")
}
