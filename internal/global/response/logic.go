package response

import (
	"errors"
	"fmt"

	pkgerrors "github.com/pkg/errors"
)

// gin.Context 中存放错误与响应体的键，Sentry 上报时读取
const (
	ErrorContextKey    = "error"
	ResponseContextKey = "response_body"
)

// stackTracer 是 pkg/errors 暴露堆栈的接口
type stackTracer interface {
	StackTrace() pkgerrors.StackTrace
}

// Error 业务错误，携带错误码、消息和原始错误链
type Error struct {
	Code    int32  `json:"code"`
	Message string `json:"msg"`
	Origin  string `json:"origin"`

	cause error
	stack pkgerrors.StackTrace
}

func newError(code int32, msg string) *Error {
	return &Error{Code: code, Message: msg}
}

func (e *Error) Error() string {
	return fmt.Sprintf("code:%d, msg:%s", e.Code, e.Message)
}

func (e *Error) GetCode() int32 {
	return e.Code
}

func (e *Error) Unwrap() error {
	return e.cause
}

// StackTrace 优先返回自身堆栈，否则尝试从原始错误提取
func (e *Error) StackTrace() pkgerrors.StackTrace {
	if e.stack != nil {
		return e.stack
	}
	if st, ok := e.cause.(stackTracer); ok {
		return st.StackTrace()
	}
	return nil
}

// Is 按错误码判等，errors.Is(err, ErrNotFound) 可用
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code
}

// WithOrigin 挂上原始错误，没有堆栈的补一份
// 返回新实例，错误码表里的单例不被改动
func (e *Error) WithOrigin(err error) *Error {
	if err == nil {
		return e
	}
	if _, ok := err.(stackTracer); !ok {
		err = pkgerrors.WithStack(err)
	}

	clone := &Error{
		Code:    e.Code,
		Message: e.Message,
		Origin:  fmt.Sprintf("%+v", err),
		cause:   err,
	}
	if st, ok := err.(stackTracer); ok {
		clone.stack = st.StackTrace()
	}
	return clone
}

// WithTips 在消息后追加提示，release 模式下也对调用方可见
func (e *Error) WithTips(details ...string) *Error {
	return &Error{
		Code:    e.Code,
		Message: e.Message + " " + fmt.Sprintf("%v", details),
		cause:   e.cause,
		stack:   e.stack,
	}
}
