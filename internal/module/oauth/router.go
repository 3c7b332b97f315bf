package oauth

import (
	"github.com/gin-gonic/gin"
)

// InitRouter 初始化第三方登录路由
// 授权和回调均无需登录态
func (o *ModuleOAuth) InitRouter(r *gin.RouterGroup) {
	oauthGroup := r.Group("/oauth")

	oauthGroup.GET("/:provider/authorize", Authorize)
	oauthGroup.GET("/:provider/callback", Callback)
}
