package user

import (
	"club-portal-system/internal/global/database"
	"club-portal-system/internal/global/jwt"
	"club-portal-system/internal/global/response"
	"club-portal-system/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// AdjustPointsReq 定义积分调整请求的结构体
// delta 可正可负，reason 仅做审计记录
type AdjustPointsReq struct {
	UserID uint   `json:"user_id" binding:"required"`
	Delta  int    `json:"delta" binding:"required"`
	Reason string `json:"reason"`
}

// AdjustPoints 管理员显式调整成员积分
// 任务核验不会自动加分，所有积分变动都走这里
func AdjustPoints(c *gin.Context) {
	payload, exists := jwt.GetUserPayload(c)
	if !exists {
		response.Fail(c, response.ErrUnauthorized)
		return
	}

	var req AdjustPointsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("绑定积分调整请求失败", "error", err)
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}

	var user model.User
	err := database.DB.First(&user, req.UserID).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		log.Warn("用户不存在", "user_id", req.UserID)
		response.Fail(c, response.ErrNotFound.WithTips("用户不存在"))
		return
	case err != nil:
		log.Error("数据库查询失败", "error", err, "user_id", req.UserID)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	if err := database.DB.Model(&user).
		Update("points", gorm.Expr("points + ?", req.Delta)).Error; err != nil {
		log.Error("积分调整失败", "error", err, "user_id", req.UserID)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	// 重新读取，返回最新积分
	if err := database.DB.First(&user, req.UserID).Error; err != nil {
		log.Error("查询用户失败", "error", err, "user_id", req.UserID)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	log.Info("积分调整成功",
		"user_id", req.UserID,
		"delta", req.Delta,
		"reason", req.Reason,
		"marked_by", payload.UserID,
		"points", user.Points)

	response.Success(c, gin.H{
		"user_id": user.ID,
		"points":  user.Points,
	})
}

// LeaderboardReq 定义排行榜查询参数
type LeaderboardReq struct {
	Page     int `form:"page" json:"page"`
	PageSize int `form:"page_size" json:"page_size"`
}

// LeaderboardEntry 排行榜条目
type LeaderboardEntry struct {
	ID        uint   `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Avatar    string `json:"avatar"`
	BatchYear int    `json:"batch_year"`
	Points    int    `json:"points"`
}

// Leaderboard 积分排行榜，按积分降序分页
func Leaderboard(c *gin.Context) {
	var req LeaderboardReq
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}

	if req.Page <= 0 {
		req.Page = 1
	}
	if req.PageSize <= 0 {
		req.PageSize = 10
	}

	var total int64
	if err := database.DB.Model(&model.User{}).Count(&total).Error; err != nil {
		log.Error("获取用户总数失败", "error", err)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	var entries []LeaderboardEntry
	offset := (req.Page - 1) * req.PageSize
	if err := database.DB.Model(&model.User{}).
		Select("id", "username", "first_name", "last_name", "avatar", "batch_year", "points").
		Order("points DESC").
		Offset(offset).Limit(req.PageSize).
		Find(&entries).Error; err != nil {
		log.Error("获取排行榜失败", "error", err)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	response.Success(c, map[string]any{
		"entries":   entries,
		"total":     total,
		"page":      req.Page,
		"page_size": req.PageSize,
	})
}
