package dashboard

import (
	"club-portal-system/internal/global/middleware"

	"github.com/gin-gonic/gin"
)

// InitRouter 初始化仪表盘模块的路由
func (d *ModuleDashboard) InitRouter(r *gin.RouterGroup) {
	dashboardGroup := r.Group("/dashboard")
	dashboardGroup.Use(middleware.Auth(0))
	{
		dashboardGroup.GET("", GetDashboard)
	}
}
