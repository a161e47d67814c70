package constants

// 通用错误消息
const (
	// 认证相关错误
	ErrUnauthorized    = "未授权，请先登录"
	ErrInvalidToken    = "无效的Token"
	ErrAlreadyLoggedIn = "已登录状态下不能使用此接口"

	// 参数相关错误
	ErrInvalidParams  = "参数错误"
	ErrInvalidRequest = "无效请求格式"

	// 系统错误
	ErrInternalServer = "服务器内部错误"
)
