package event

import (
	"club-portal-system/internal/global/middleware"

	"github.com/gin-gonic/gin"
)

// InitRouter 初始化活动模块的路由
func (e *ModuleEvent) InitRouter(r *gin.RouterGroup) {
	eventGroup := r.Group("/event")

	commonGroup := eventGroup.Group("")
	commonGroup.Use(middleware.Auth(0))
	{
		commonGroup.GET("/list", ListEvents)
		commonGroup.GET("/:id", GetEvent)
	}

	adminGroup := eventGroup.Group("")
	adminGroup.Use(middleware.Auth(1))
	{
		adminGroup.POST("/create", CreateEvent)
		adminGroup.PUT("/update/:id", UpdateEvent)
		adminGroup.DELETE("/delete/:id", DeleteEvent)
	}
}
