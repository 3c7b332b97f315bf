package user

import (
	"club-portal-system/internal/global/middleware"

	"github.com/gin-gonic/gin"
)

// InitRouter 初始化用户模块的路由
// 所有用户相关端点以 /user 为前缀
func (u *ModuleUser) InitRouter(r *gin.RouterGroup) {
	userGroup := r.Group("/user")

	// 未登录即可访问
	userGroup.POST("/register", Register)
	userGroup.POST("/login", Login)

	commonGroup := userGroup.Group("")
	commonGroup.Use(middleware.Auth(0))
	{
		commonGroup.GET("/profile", GetProfile)
		commonGroup.PUT("/profile", UpdateProfile)
		commonGroup.POST("/avatar", UploadAvatar)
		commonGroup.POST("/avatar/presign", PresignAvatarUpload)
		commonGroup.POST("/change-password", ChangePassword)
		commonGroup.GET("/leaderboard", Leaderboard)
	}

	adminGroup := userGroup.Group("")
	adminGroup.Use(middleware.Auth(1))
	{
		// 积分调整是显式管理操作，不与任务核验挂钩
		adminGroup.POST("/points", AdjustPoints)
	}
}
