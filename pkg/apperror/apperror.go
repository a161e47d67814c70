package apperror

import (
	"errors"
	"net/http"
)

// 错误类型，机器可读，跨服务传递时保持不变
const (
	KindMissingData     = "MISSING_DATA"
	KindValidationError = "VALIDATION_ERROR"
	KindNotFound        = "NOT_FOUND"
	KindForbidden       = "FORBIDDEN"
	KindUnauthorized    = "UNAUTHORIZED"
	KindAlreadyLoggedIn = "ALREADY_LOGGED_IN"
	KindInvalidTxType   = "INVALID_TRANSACTION_TYPE"
	KindInvalidTxStatus = "INVALID_TRANSACTION_STATUS"
	KindTooEarly        = "TOO_EARLY"
	KindInternal        = "INTERNAL_ERROR"
)

// Error 业务错误，携带错误类型、细节（通常是出错的字段名或实体ID）
// 以及建议的HTTP状态码
type Error struct {
	Kind    string `json:"kind"`
	Details string `json:"details"`
	Status  int    `json:"status"`
}

// Error 实现error接口
func (e *Error) Error() string {
	if e.Details == "" {
		return e.Kind
	}
	return e.Kind + ": " + e.Details
}

// New 创建业务错误
func New(kind, details string, status int) *Error {
	return &Error{Kind: kind, Details: details, Status: status}
}

// MissingData 必填字段缺失
func MissingData(field string) *Error {
	return New(KindMissingData, field, http.StatusBadRequest)
}

// Validation 字段存在但格式或取值非法
func Validation(field string) *Error {
	return New(KindValidationError, field, http.StatusBadRequest)
}

// NotFound 引用的实体不存在
func NotFound(details string) *Error {
	return New(KindNotFound, details, http.StatusNotFound)
}

// Forbidden 实体存在但无权访问
func Forbidden(details string) *Error {
	return New(KindForbidden, details, http.StatusForbidden)
}

// Unauthorized 缺少必要的身份认证
func Unauthorized(details string) *Error {
	return New(KindUnauthorized, details, http.StatusUnauthorized)
}

// AlreadyLoggedIn 已登录用户访问了仅限未登录的接口
func AlreadyLoggedIn() *Error {
	return New(KindAlreadyLoggedIn, "已登录", http.StatusForbidden)
}

// InvalidTransactionType 交易类型不符合工单主题
func InvalidTransactionType(details string) *Error {
	return New(KindInvalidTxType, details, http.StatusBadRequest)
}

// InvalidTransactionStatus 交易状态不在允许范围内
func InvalidTransactionStatus(details string) *Error {
	return New(KindInvalidTxStatus, details, http.StatusBadRequest)
}

// TooEarly 距交易创建时间不足冷却期
func TooEarly(details string) *Error {
	return New(KindTooEarly, details, http.StatusBadRequest)
}

// Internal 服务器内部错误
func Internal(details string) *Error {
	return New(KindInternal, details, http.StatusInternalServerError)
}

// From 提取业务错误，非业务错误一律包装为内部错误
func From(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal("服务器内部错误")
}

// IsKind 判断错误是否为指定类型
func IsKind(err error, kind string) bool {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind == kind
	}
	return false
}
