package attendance

import (
	"club-portal-system/internal/global/middleware"

	"github.com/gin-gonic/gin"
)

// InitRouter 初始化考勤模块的路由
func (a *ModuleAttendance) InitRouter(r *gin.RouterGroup) {
	attendanceGroup := r.Group("/attendance")

	commonGroup := attendanceGroup.Group("")
	commonGroup.Use(middleware.Auth(0))
	{
		commonGroup.GET("/my", MyAttendance)
	}

	adminGroup := attendanceGroup.Group("")
	adminGroup.Use(middleware.Auth(1))
	{
		adminGroup.POST("/mark", MarkAttendance)
		adminGroup.GET("/event/:id", EventAttendance)
		adminGroup.GET("/event/:id/export", ExportEventAttendance)
	}
}
