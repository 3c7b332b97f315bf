package task

import (
	"time"

	"club-portal-system/internal/global/database"
	"club-portal-system/internal/global/jwt"
	"club-portal-system/internal/global/response"
	"club-portal-system/internal/global/sentry/tracing"
	"club-portal-system/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// TaskCreateReq 定义创建任务请求的结构体
type TaskCreateReq struct {
	Title        string     `json:"title" binding:"required"`
	Description  string     `json:"description" binding:"required"`
	AssignedToID uint       `json:"assigned_to_id" binding:"required"`
	Points       *int       `json:"points"`   // 缺省为 10
	DueDate      *time.Time `json:"due_date"` // 可空
}

// CreateTask 管理员创建任务并指派给成员，初始状态为 pending
func CreateTask(c *gin.Context) {
	var req TaskCreateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("绑定创建任务请求失败", "error", err)
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}

	var user model.User
	if err := database.DB.First(&user, "id = ?", req.AssignedToID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Fail(c, response.ErrNotFound.WithTips("用户不存在"))
			return
		}
		log.Error("查询用户失败", "error", err, "user_id", req.AssignedToID)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	points := 10
	if req.Points != nil {
		if *req.Points < 0 {
			response.Fail(c, response.ErrInvalidRequest.WithTips("points 不能为负数"))
			return
		}
		points = *req.Points
	}

	task := model.Task{
		Title:        req.Title,
		Description:  req.Description,
		AssignedToID: req.AssignedToID,
		Status:       model.TaskPending,
		Points:       points,
		DueDate:      req.DueDate,
	}

	if err := database.DB.Create(&task).Error; err != nil {
		log.Error("创建任务失败", "error", err, "title", req.Title)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	log.Info("任务创建成功", "task_id", task.ID, "assigned_to", req.AssignedToID)
	response.Success(c, gin.H{
		"task_id": task.ID,
	})
}

// ListTasksReq 定义任务列表的查询参数结构体
type ListTasksReq struct {
	Status       model.TaskStatus `form:"status" json:"status"`
	AssignedToID uint             `form:"assigned_to_id" json:"assigned_to_id"`
	Page         int              `form:"page" json:"page"`
	PageSize     int              `form:"page_size" json:"page_size"`
}

// ListTasks 获取全量任务列表，仅管理员可用
func ListTasks(c *gin.Context) {
	var req ListTasksReq
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

	query := database.DB.WithContext(tracing.ContextWithSpan(c)).Model(&model.Task{})

	if req.Status != "" {
		if !req.Status.Valid() {
			response.Fail(c, response.ErrInvalidRequest.WithTips("status 取值无效"))
			return
		}
		query = query.Where("status = ?", req.Status)
	}
	if req.AssignedToID != 0 {
		query = query.Where("assigned_to_id = ?", req.AssignedToID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		log.Error("获取任务总数失败", "error", err)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	var tasks []model.Task
	offset := (req.Page - 1) * req.PageSize
	if err := query.Preload("AssignedTo").
		Order("created_at DESC").
		Offset(offset).Limit(req.PageSize).Find(&tasks).Error; err != nil {
		log.Error("获取任务列表失败", "error", err)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	response.Success(c, map[string]any{
		"tasks":     tasks,
		"total":     total,
		"page":      req.Page,
		"page_size": req.PageSize,
	})
}

// MyTasksReq 定义我的任务查询参数
type MyTasksReq struct {
	Status model.TaskStatus `form:"status" json:"status"`
}

// MyTasks 查询指派给当前用户的任务，按创建时间倒序
func MyTasks(c *gin.Context) {
	var req MyTasksReq
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}
	if req.Status != "" && !req.Status.Valid() {
		response.Fail(c, response.ErrInvalidRequest.WithTips("status 取值无效"))
		return
	}

	payload, _ := jwt.GetUserPayload(c)

	query := database.DB.Where("assigned_to_id = ?", payload.UserID)
	if req.Status != "" {
		query = query.Where("status = ?", req.Status)
	}

	var tasks []model.Task
	if err := query.Order("created_at DESC").Find(&tasks).Error; err != nil {
		log.Error("查询任务失败", "error", err, "user_id", payload.UserID)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	response.Success(c, gin.H{
		"tasks": model.NewTaskDTOs(tasks),
		"total": len(tasks),
	})
}

// StatusUpdateReq 定义任务状态更新请求的结构体
type StatusUpdateReq struct {
	Status         model.TaskStatus `json:"status" binding:"required"`
	SubmissionLink string           `json:"submission_link"`
}

// UpdateTaskStatus 更新任务状态
// 受派人可在 pending、in_progress、submitted 之间推进，核验为 verified 仅管理员可做
// 核验不自动发积分，积分调整走独立的管理接口
func UpdateTaskStatus(c *gin.Context) {
	id := c.Param("id")

	var req StatusUpdateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("绑定状态更新请求失败", "error", err, "id", id)
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}
	if !req.Status.Valid() {
		response.Fail(c, response.ErrInvalidRequest.WithTips("status 取值无效"))
		return
	}

	var task model.Task
	if err := database.DB.First(&task, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Fail(c, response.ErrNotFound.WithTips("任务不存在"))
			return
		}
		log.Error("查询任务失败", "error", err, "id", id)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	payload, _ := jwt.GetUserPayload(c)
	isAdmin := payload.RoleID >= 1

	if !isAdmin && task.AssignedToID != payload.UserID {
		log.Warn("非受派人尝试更新任务", "task_id", task.ID, "user_id", payload.UserID)
		response.Fail(c, response.ErrForbidden.WithTips("只能更新指派给自己的任务"))
		return
	}
	if req.Status == model.TaskVerified && !isAdmin {
		response.Fail(c, response.ErrForbidden.WithTips("只有管理员可以核验任务"))
		return
	}

	task.Status = req.Status
	if req.SubmissionLink != "" {
		task.SubmissionLink = req.SubmissionLink
	}

	if err := database.DB.Save(&task).Error; err != nil {
		log.Error("更新任务状态失败", "error", err, "id", id)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	log.Info("任务状态更新成功", "task_id", task.ID, "status", task.Status)
	response.Success(c, model.NewTaskDTO(&task))
}

// DeleteTask 删除任务，仅管理员可用
func DeleteTask(c *gin.Context) {
	id := c.Param("id")

	var task model.Task
	if err := database.DB.First(&task, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Fail(c, response.ErrNotFound.WithTips("任务不存在"))
			return
		}
		log.Error("查询任务失败", "error", err, "id", id)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	if err := database.DB.Delete(&task).Error; err != nil {
		log.Error("删除任务失败", "error", err, "id", id)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	log.Info("任务删除成功", "task_id", task.ID)
	response.Success(c)
}
