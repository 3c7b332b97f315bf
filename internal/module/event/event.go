package event

import (
	"time"

	"club-portal-system/internal/global/database"
	"club-portal-system/internal/global/response"
	"club-portal-system/internal/global/sentry/tracing"
	"club-portal-system/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// EventCreateReq 定义创建活动请求的结构体
type EventCreateReq struct {
	Title       string          `json:"title" binding:"required"`
	Description string          `json:"description" binding:"required"`
	EventType   model.EventType `json:"event_type"`
	EventDate   time.Time       `json:"event_date" binding:"required"` // RFC3339 格式
	Location    string          `json:"location" binding:"required"`
	MeetingLink string          `json:"meeting_link"`
	Banner      string          `json:"banner"`
}

// CreateEvent 处理创建活动请求，仅管理员可用
func CreateEvent(c *gin.Context) {
	var req EventCreateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("绑定创建活动请求失败", "error", err)
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}

	if req.EventType == "" {
		req.EventType = model.EventMeetup
	}
	if !req.EventType.Valid() {
		response.Fail(c, response.ErrInvalidRequest.WithTips("event_type 取值无效"))
		return
	}

	event := model.Event{
		Title:       req.Title,
		Description: req.Description,
		EventType:   req.EventType,
		EventDate:   req.EventDate,
		Location:    req.Location,
		MeetingLink: req.MeetingLink,
		Banner:      req.Banner,
	}

	if err := database.DB.Create(&event).Error; err != nil {
		log.Error("创建活动失败", "error", err, "title", req.Title)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	log.Info("活动创建成功", "event_id", event.ID, "title", event.Title)
	response.Success(c, gin.H{
		"event_id": event.ID,
	})
}

// ListEventsReq 定义活动列表的查询参数结构体
type ListEventsReq struct {
	EventType model.EventType `form:"event_type" json:"event_type"` // 类型筛选
	Upcoming  bool            `form:"upcoming" json:"upcoming"`     // 仅看未开始的活动
	Page      int             `form:"page" json:"page"`
	PageSize  int             `form:"page_size" json:"page_size"`
}

// ListEvents 获取活动列表
// 默认按活动时间倒序；upcoming=true 时只返回未开始的，按时间正序
func ListEvents(c *gin.Context) {
	var req ListEventsReq
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

	now := time.Now()
	query := database.DB.WithContext(tracing.ContextWithSpan(c)).Model(&model.Event{})

	if req.EventType != "" {
		if !req.EventType.Valid() {
			response.Fail(c, response.ErrInvalidRequest.WithTips("event_type 取值无效"))
			return
		}
		query = query.Where("event_type = ?", req.EventType)
	}
	if req.Upcoming {
		query = query.Where("event_date >= ?", now).Order("event_date ASC")
	} else {
		query = query.Order("event_date DESC")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		log.Error("获取活动总数失败", "error", err)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	var events []model.Event
	offset := (req.Page - 1) * req.PageSize
	if err := query.Offset(offset).Limit(req.PageSize).Find(&events).Error; err != nil {
		log.Error("获取活动列表失败", "error", err)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	response.Success(c, map[string]any{
		"events":    model.NewEventDTOs(events, now),
		"total":     total,
		"page":      req.Page,
		"page_size": req.PageSize,
	})
}

// GetEvent 获取单个活动详情
func GetEvent(c *gin.Context) {
	id := c.Param("id")

	var event model.Event
	err := database.DB.First(&event, "id = ?", id).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		response.Fail(c, response.ErrNotFound.WithTips("活动不存在"))
		return
	case err != nil:
		log.Error("查询活动失败", "error", err, "id", id)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	response.Success(c, model.NewEventDTO(&event, time.Now()))
}

// EventUpdateReq 定义更新活动请求的结构体，使用指针类型支持部分更新
type EventUpdateReq struct {
	Title       *string          `json:"title"`
	Description *string          `json:"description"`
	EventType   *model.EventType `json:"event_type"`
	EventDate   *time.Time       `json:"event_date"`
	Location    *string          `json:"location"`
	MeetingLink *string          `json:"meeting_link"`
	Banner      *string          `json:"banner"`
}

// UpdateEvent 处理更新活动请求，仅管理员可用
func UpdateEvent(c *gin.Context) {
	id := c.Param("id")

	var req EventUpdateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("绑定更新活动请求失败", "error", err, "id", id)
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}

	if req.EventType != nil && !req.EventType.Valid() {
		response.Fail(c, response.ErrInvalidRequest.WithTips("event_type 取值无效"))
		return
	}

	var event model.Event
	if err := database.DB.First(&event, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Warn("活动不存在", "id", id)
			response.Fail(c, response.ErrNotFound.WithTips("活动不存在"))
			return
		}
		log.Error("查询活动失败", "error", err, "id", id)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	if req.Title != nil {
		event.Title = *req.Title
	}
	if req.Description != nil {
		event.Description = *req.Description
	}
	if req.EventType != nil {
		event.EventType = *req.EventType
	}
	if req.EventDate != nil {
		event.EventDate = *req.EventDate
	}
	if req.Location != nil {
		event.Location = *req.Location
	}
	if req.MeetingLink != nil {
		event.MeetingLink = *req.MeetingLink
	}
	if req.Banner != nil {
		event.Banner = *req.Banner
	}

	if err := database.DB.Save(&event).Error; err != nil {
		log.Error("更新活动失败", "error", err, "id", id)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	log.Info("活动更新成功", "event_id", event.ID)
	response.Success(c)
}

// DeleteEvent 处理删除活动请求，仅管理员可用
func DeleteEvent(c *gin.Context) {
	id := c.Param("id")

	var event model.Event
	if err := database.DB.First(&event, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Fail(c, response.ErrNotFound.WithTips("活动不存在"))
			return
		}
		log.Error("查询活动失败", "error", err, "id", id)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	if err := database.DB.Delete(&event).Error; err != nil {
		log.Error("删除活动失败", "error", err, "id", id)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	log.Info("活动删除成功", "event_id", event.ID)
	response.Success(c)
}
