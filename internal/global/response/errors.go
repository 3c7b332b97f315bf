package response

// 业务错误码表，4xxxx 为请求方错误，5xxxx 为服务端错误
var (
	ErrInvalidRequest  = newError(40001, "请求参数错误")
	ErrInvalidPassword = newError(40002, "密码错误")
	ErrAlreadyExists   = newError(40003, "记录已存在")
	ErrTokenInvalid    = newError(40101, "令牌无效或已过期")
	ErrUnauthorized    = newError(40102, "未授权")
	ErrForbidden       = newError(40301, "没有操作权限")
	ErrNotFound        = newError(40401, "记录不存在")
	ErrInternal        = newError(50000, "服务内部错误")
	ErrDatabase        = newError(50001, "数据库操作失败")
)

// httpStatus 将业务错误码映射为 HTTP 状态码
func httpStatus(code int32) int {
	switch {
	case code == 40101, code == 40102:
		return 401
	case code == 40301:
		return 403
	case code == 40401:
		return 404
	case code >= 50000:
		return 500
	case code >= 40000:
		return 400
	}
	return 200
}
