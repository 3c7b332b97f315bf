package response

import (
	"net/http"

	"club-portal-system/config"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
	pkgerrors "github.com/pkg/errors"
)

// ResponseBody 统一响应体
type ResponseBody struct {
	Code   int32  `json:"code"`
	Msg    string `json:"msg"`
	Data   any    `json:"data,omitempty"`
	Origin string `json:"origin,omitempty"`
}

// Success 写入成功响应，data 可缺省
func Success(c *gin.Context, data ...any) {
	body := ResponseBody{
		Code: 200,
		Msg:  "success",
	}
	if len(data) > 0 {
		body.Data = data[0]
	}
	c.Set(ResponseContextKey, body)
	c.JSON(http.StatusOK, body)
}

// Fail 写入失败响应；非 *Error 的错误统一按 ErrInternal 处理
func Fail(c *gin.Context, err error) {
	e, ok := err.(*Error)
	if !ok {
		e = ErrInternal.WithOrigin(err)
	}

	body := ResponseBody{
		Code: e.Code,
		Msg:  e.Message,
	}
	// 原始错误仅在 debug 模式下暴露给调用方
	if config.Get().Mode == config.ModeDebug {
		body.Origin = e.Origin
	}

	// 留给 Sentry 中间件上报
	c.Set(ErrorContextKey, e)
	c.Set(ResponseContextKey, body)

	c.JSON(httpStatus(e.Code), body)
}

// Recovery 兜底 panic，转换为 ErrInternal 响应
func Recovery(c *gin.Context) {
	if r := recover(); r != nil {
		err, ok := r.(error)
		if !ok {
			err = pkgerrors.Errorf("panic: %v", r)
		}
		if hub := sentrygin.GetHubFromContext(c); hub != nil {
			hub.Recover(r)
		}
		Fail(c, ErrInternal.WithOrigin(err))
		c.Abort()
	}
}
