package dashboard

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

// userSummary 仪表盘头部的用户摘要
type userSummary struct {
	Name      string `json:"name"` // 姓名，为空时退回用户名
	Points    int    `json:"points"`
	Batch     int    `json:"batch"`
	StudentID string `json:"student_id"`
}

// GetDashboard 聚合当前用户的仪表盘数据
// 进行中任务只取 in_progress，pending 不算进行中
// 即将开始的活动取未来最近 5 场，按时间正序
func GetDashboard(c *gin.Context) {
	payload, _ := jwt.GetUserPayload(c)
	ctx := tracing.ContextWithSpan(c)

	var user model.User
	if err := database.DB.WithContext(ctx).First(&user, "id = ?", payload.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Warn("用户不存在", "user_id", payload.UserID)
			response.Fail(c, response.ErrNotFound.WithTips("用户不存在"))
			return
		}
		log.Error("查询用户失败", "error", err, "user_id", payload.UserID)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	var activeTasks []model.Task
	if err := database.DB.WithContext(ctx).
		Where("assigned_to_id = ? AND status = ?", user.ID, model.TaskInProgress).
		Order("created_at DESC").
		Find(&activeTasks).Error; err != nil {
		log.Error("查询进行中任务失败", "error", err, "user_id", user.ID)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	now := time.Now()
	var upcoming []model.Event
	if err := database.DB.WithContext(ctx).
		Where("event_date >= ?", now).
		Order("event_date ASC").
		Limit(5).
		Find(&upcoming).Error; err != nil {
		log.Error("查询即将开始的活动失败", "error", err)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	response.Success(c, gin.H{
		"user": userSummary{
			Name:      user.FullName(),
			Points:    user.Points,
			Batch:     user.BatchYear,
			StudentID: user.StudentID,
		},
		"active_tasks":    model.NewTaskDTOs(activeTasks),
		"upcoming_events": model.NewEventDTOs(upcoming, now),
	})
}
