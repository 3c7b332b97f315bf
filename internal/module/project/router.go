package project

import (
	"club-portal-system/internal/global/middleware"

	"github.com/gin-gonic/gin"
)

// InitRouter 初始化项目模块的路由
// 所有项目相关端点以 /project 为前缀
func (p *ModuleProject) InitRouter(r *gin.RouterGroup) {
	projectGroup := r.Group("/project")

	commonGroup := projectGroup.Group("")
	commonGroup.Use(middleware.Auth(0))
	{
		commonGroup.GET("/list", ListProjects)
		commonGroup.GET("/:id", GetProject)
	}

	adminGroup := projectGroup.Group("")
	adminGroup.Use(middleware.Auth(1))
	{
		adminGroup.POST("/create", CreateProject)
		adminGroup.PUT("/update/:id", UpdateProject)
		adminGroup.DELETE("/delete/:id", DeleteProject)
		adminGroup.POST("/:id/contributors", AddContributor)
		adminGroup.DELETE("/:id/contributors/:user_id", RemoveContributor)
	}
}
