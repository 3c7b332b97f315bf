package project

import (
	"club-portal-system/internal/global/database"
	"club-portal-system/internal/global/response"
	"club-portal-system/internal/global/sentry/tracing"
	"club-portal-system/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ProjectCreateReq 定义创建项目请求的结构体
type ProjectCreateReq struct {
	Name        string              `json:"name" binding:"required"`        // 项目名称
	Description string              `json:"description" binding:"required"` // 项目描述
	Status      model.ProjectStatus `json:"status"`                         // 状态，缺省为 planning
	TechStack   []string            `json:"tech_stack"`                     // 技术栈
	GithubRepo  string              `json:"github_repo"`                    // 仓库地址
	DemoURL     string              `json:"demo_url"`                       // 演示地址
	Image       string              `json:"image"`                          // 封面图 URL
	LeadID      *uint               `json:"lead_id"`                        // 负责人，可空
}

// CreateProject 处理创建项目请求
func CreateProject(c *gin.Context) {
	var req ProjectCreateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("绑定创建项目请求失败", "error", err)
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}

	if req.Status == "" {
		req.Status = model.ProjectPlanning
	}
	if !req.Status.Valid() {
		response.Fail(c, response.ErrInvalidRequest.WithTips("status 取值无效"))
		return
	}

	if req.LeadID != nil {
		if err := ensureUserExists(*req.LeadID); err != nil {
			response.Fail(c, err)
			return
		}
	}

	project := model.Project{
		Name:        req.Name,
		Description: req.Description,
		Status:      req.Status,
		TechStack:   datatypes.NewJSONSlice(req.TechStack),
		GithubRepo:  req.GithubRepo,
		DemoURL:     req.DemoURL,
		Image:       req.Image,
		LeadID:      req.LeadID,
	}

	if err := database.DB.Create(&project).Error; err != nil {
		log.Error("创建项目失败", "error", err, "name", req.Name)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	log.Info("项目创建成功", "project_id", project.ID, "name", project.Name)
	response.Success(c, gin.H{
		"project_id": project.ID,
	})
}

// ListProjectsReq 定义项目列表的查询参数结构体
type ListProjectsReq struct {
	Status   model.ProjectStatus `form:"status" json:"status"`      // 状态筛选
	Name     string              `form:"name" json:"name"`          // 名称模糊查询
	Page     int                 `form:"page" json:"page"`          // 页码，默认为1
	PageSize int                 `form:"page_size" json:"page_size"` // 每页大小，默认为10
}

// ListProjects 获取项目列表（支持查询参数）
func ListProjects(c *gin.Context) {
	var req ListProjectsReq
	if err := c.ShouldBindQuery(&req); err != nil {
		log.Error("绑定查询参数失败", "error", err)
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}

	if req.Page <= 0 {
		req.Page = 1
	}
	if req.PageSize <= 0 {
		req.PageSize = 10
	}

	query := database.DB.WithContext(tracing.ContextWithSpan(c)).Model(&model.Project{})

	if req.Status != "" {
		if !req.Status.Valid() {
			response.Fail(c, response.ErrInvalidRequest.WithTips("status 取值无效"))
			return
		}
		query = query.Where("status = ?", req.Status)
	}
	if req.Name != "" {
		query = query.Where("name LIKE ?", "%"+req.Name+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		log.Error("获取项目总数失败", "error", err)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	var projects []model.Project
	offset := (req.Page - 1) * req.PageSize
	if err := query.Preload("Lead").Preload("Contributors").
		Offset(offset).Limit(req.PageSize).Find(&projects).Error; err != nil {
		log.Error("获取项目列表失败", "error", err)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	response.Success(c, map[string]any{
		"projects":  projects,
		"total":     total,
		"page":      req.Page,
		"page_size": req.PageSize,
	})
}

// GetProject 获取单个项目详情
func GetProject(c *gin.Context) {
	id := c.Param("id")

	var project model.Project
	err := database.DB.Preload("Lead").Preload("Contributors").First(&project, "id = ?", id).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		response.Fail(c, response.ErrNotFound.WithTips("项目不存在"))
		return
	case err != nil:
		log.Error("查询项目失败", "error", err, "id", id)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	response.Success(c, project)
}

// ProjectUpdateReq 定义更新项目请求的结构体，使用指针类型支持部分更新
// lead_id 传 0 表示移除负责人
type ProjectUpdateReq struct {
	Name        *string              `json:"name"`
	Description *string              `json:"description"`
	Status      *model.ProjectStatus `json:"status"`
	TechStack   *[]string            `json:"tech_stack"`
	GithubRepo  *string              `json:"github_repo"`
	DemoURL     *string              `json:"demo_url"`
	Image       *string              `json:"image"`
	LeadID      *uint                `json:"lead_id"`
}

// UpdateProject 处理更新项目请求
// 状态流转不做限制，任何合法状态间都可切换
func UpdateProject(c *gin.Context) {
	id := c.Param("id")

	var req ProjectUpdateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("绑定更新项目请求失败", "error", err, "id", id)
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}

	if req.Status != nil && !req.Status.Valid() {
		response.Fail(c, response.ErrInvalidRequest.WithTips("status 取值无效"))
		return
	}

	var project model.Project
	if err := database.DB.First(&project, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Warn("项目不存在", "id", id)
			response.Fail(c, response.ErrNotFound.WithTips("项目不存在"))
			return
		}
		log.Error("查询项目失败", "error", err, "id", id)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	if req.Name != nil {
		project.Name = *req.Name
	}
	if req.Description != nil {
		project.Description = *req.Description
	}
	if req.Status != nil {
		project.Status = *req.Status
	}
	if req.TechStack != nil {
		project.TechStack = datatypes.NewJSONSlice(*req.TechStack)
	}
	if req.GithubRepo != nil {
		project.GithubRepo = *req.GithubRepo
	}
	if req.DemoURL != nil {
		project.DemoURL = *req.DemoURL
	}
	if req.Image != nil {
		project.Image = *req.Image
	}
	if req.LeadID != nil {
		if *req.LeadID == 0 {
			project.LeadID = nil
			project.Lead = nil
		} else {
			if err := ensureUserExists(*req.LeadID); err != nil {
				response.Fail(c, err)
				return
			}
			project.LeadID = req.LeadID
		}
	}

	if err := database.DB.Save(&project).Error; err != nil {
		log.Error("更新项目失败", "error", err, "id", id)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	log.Info("项目更新成功", "project_id", project.ID)
	response.Success(c)
}

// DeleteProject 处理删除项目请求
func DeleteProject(c *gin.Context) {
	id := c.Param("id")

	var project model.Project
	if err := database.DB.First(&project, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Fail(c, response.ErrNotFound.WithTips("项目不存在"))
			return
		}
		log.Error("查询项目失败", "error", err, "id", id)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	if err := database.DB.Delete(&project).Error; err != nil {
		log.Error("删除项目失败", "error", err, "id", id)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	log.Info("项目删除成功", "project_id", project.ID)
	response.Success(c)
}

// ContributorReq 定义添加贡献者请求的结构体
type ContributorReq struct {
	UserID uint `json:"user_id" binding:"required"`
}

// AddContributor 向项目添加贡献者
func AddContributor(c *gin.Context) {
	id := c.Param("id")

	var req ContributorReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}

	var project model.Project
	if err := database.DB.First(&project, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Fail(c, response.ErrNotFound.WithTips("项目不存在"))
			return
		}
		log.Error("查询项目失败", "error", err, "id", id)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	if err := ensureUserExists(req.UserID); err != nil {
		response.Fail(c, err)
		return
	}

	if err := database.DB.Model(&project).Association("Contributors").
		Append(&model.UserRef{ID: req.UserID}); err != nil {
		log.Error("添加贡献者失败", "error", err, "project_id", project.ID, "user_id", req.UserID)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	log.Info("贡献者添加成功", "project_id", project.ID, "user_id", req.UserID)
	response.Success(c)
}

// RemoveContributor 从项目移除贡献者
func RemoveContributor(c *gin.Context) {
	id := c.Param("id")
	userID := c.Param("user_id")

	var project model.Project
	if err := database.DB.First(&project, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Fail(c, response.ErrNotFound.WithTips("项目不存在"))
			return
		}
		log.Error("查询项目失败", "error", err, "id", id)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	var ref model.UserRef
	if err := database.DB.First(&ref, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Fail(c, response.ErrNotFound.WithTips("用户不存在"))
			return
		}
		log.Error("查询用户失败", "error", err, "user_id", userID)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	if err := database.DB.Model(&project).Association("Contributors").Delete(&ref); err != nil {
		log.Error("移除贡献者失败", "error", err, "project_id", project.ID, "user_id", userID)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	log.Info("贡献者移除成功", "project_id", project.ID, "user_id", userID)
	response.Success(c)
}

// ensureUserExists 校验用户存在，返回业务错误
func ensureUserExists(userID uint) *response.Error {
	var count int64
	if err := database.DB.Model(&model.User{}).Where("id = ?", userID).Count(&count).Error; err != nil {
		log.Error("数据库查询失败", "error", err, "user_id", userID)
		return response.ErrDatabase.WithOrigin(err)
	}
	if count == 0 {
		return response.ErrNotFound.WithTips("用户不存在")
	}
	return nil
}
