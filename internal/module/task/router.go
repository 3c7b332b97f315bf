package task

import (
	"club-portal-system/internal/global/middleware"

	"github.com/gin-gonic/gin"
)

// InitRouter 初始化任务模块的路由
func (t *ModuleTask) InitRouter(r *gin.RouterGroup) {
	taskGroup := r.Group("/task")

	commonGroup := taskGroup.Group("")
	commonGroup.Use(middleware.Auth(0))
	{
		commonGroup.GET("/my", MyTasks)
		commonGroup.PUT("/:id/status", UpdateTaskStatus)
	}

	adminGroup := taskGroup.Group("")
	adminGroup.Use(middleware.Auth(1))
	{
		adminGroup.POST("/create", CreateTask)
		adminGroup.GET("/list", ListTasks)
		adminGroup.DELETE("/delete/:id", DeleteTask)
	}
}
