package attendance

import (
	"fmt"
	"strings"
	"time"

	"club-portal-system/internal/global/database"
	"club-portal-system/internal/global/jwt"
	"club-portal-system/internal/global/response"
	"club-portal-system/internal/global/sentry/tracing"
	"club-portal-system/internal/model"
	"club-portal-system/tools"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// MarkReq 定义标记考勤请求的结构体
type MarkReq struct {
	UserID  uint                   `json:"user_id" binding:"required"`
	EventID uint                   `json:"event_id" binding:"required"`
	Status  model.AttendanceStatus `json:"status"` // 缺省为 present
}

// MarkAttendance 管理员为成员标记考勤
// 同一 (user, event) 只允许一条记录，重复标记直接拒绝，不覆盖已有状态
func MarkAttendance(c *gin.Context) {
	var req MarkReq
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("绑定标记考勤请求失败", "error", err)
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}

	if req.Status == "" {
		req.Status = model.AttendancePresent
	}
	if !req.Status.Valid() {
		response.Fail(c, response.ErrInvalidRequest.WithTips("status 取值无效"))
		return
	}

	var user model.User
	if err := database.DB.First(&user, "id = ?", req.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Fail(c, response.ErrNotFound.WithTips("用户不存在"))
			return
		}
		log.Error("查询用户失败", "error", err, "user_id", req.UserID)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	var event model.Event
	if err := database.DB.First(&event, "id = ?", req.EventID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Fail(c, response.ErrNotFound.WithTips("活动不存在"))
			return
		}
		log.Error("查询活动失败", "error", err, "event_id", req.EventID)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	var count int64
	if err := database.DB.Model(&model.Attendance{}).
		Where("user_id = ? AND event_id = ?", req.UserID, req.EventID).
		Count(&count).Error; err != nil {
		log.Error("查询考勤记录失败", "error", err)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	if count > 0 {
		log.Warn("考勤记录已存在", "user_id", req.UserID, "event_id", req.EventID)
		response.Fail(c, response.ErrAlreadyExists.WithTips("该用户在此活动下已有考勤记录"))
		return
	}

	payload, _ := jwt.GetUserPayload(c)
	markedBy := payload.UserID

	record := model.Attendance{
		UserID:     req.UserID,
		EventID:    req.EventID,
		Status:     req.Status,
		MarkedByID: &markedBy,
	}

	if err := database.DB.Create(&record).Error; err != nil {
		// 并发下唯一索引兜底
		if strings.Contains(err.Error(), "Duplicate") || strings.Contains(err.Error(), "UNIQUE") {
			response.Fail(c, response.ErrAlreadyExists.WithTips("该用户在此活动下已有考勤记录"))
			return
		}
		log.Error("创建考勤记录失败", "error", err)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	log.Info("考勤标记成功", "attendance_id", record.ID, "user_id", req.UserID, "event_id", req.EventID, "status", req.Status)
	response.Success(c, gin.H{
		"attendance_id": record.ID,
	})
}

// MyAttendance 查询当前用户的考勤记录，按标记时间倒序
func MyAttendance(c *gin.Context) {
	payload, _ := jwt.GetUserPayload(c)

	var records []model.Attendance
	if err := database.DB.WithContext(tracing.ContextWithSpan(c)).
		Preload("Event").
		Where("user_id = ?", payload.UserID).
		Order("marked_at DESC").
		Find(&records).Error; err != nil {
		log.Error("查询考勤记录失败", "error", err, "user_id", payload.UserID)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	now := time.Now()
	type myRow struct {
		ID       uint                   `json:"id"`
		Status   model.AttendanceStatus `json:"status"`
		MarkedAt time.Time              `json:"marked_at"`
		Event    model.EventDTO         `json:"event"`
	}
	rows := make([]myRow, 0, len(records))
	for i := range records {
		rows = append(rows, myRow{
			ID:       records[i].ID,
			Status:   records[i].Status,
			MarkedAt: records[i].MarkedAt,
			Event:    model.NewEventDTO(&records[i].Event, now),
		})
	}

	response.Success(c, gin.H{
		"records": rows,
		"total":   len(rows),
	})
}

// EventAttendance 查询某活动的全部考勤记录，管理员用
func EventAttendance(c *gin.Context) {
	id := c.Param("id")

	var event model.Event
	if err := database.DB.First(&event, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Fail(c, response.ErrNotFound.WithTips("活动不存在"))
			return
		}
		log.Error("查询活动失败", "error", err, "event_id", id)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	var records []model.Attendance
	if err := database.DB.
		Preload("User").Preload("MarkedBy").
		Where("event_id = ?", event.ID).
		Order("marked_at ASC").
		Find(&records).Error; err != nil {
		log.Error("查询考勤记录失败", "error", err, "event_id", event.ID)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	response.Success(c, gin.H{
		"event":   model.NewEventDTO(&event, time.Now()),
		"records": records,
		"total":   len(records),
	})
}

// ExportEventAttendance 导出某活动的考勤表为 xlsx
func ExportEventAttendance(c *gin.Context) {
	id := c.Param("id")

	var event model.Event
	if err := database.DB.First(&event, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Fail(c, response.ErrNotFound.WithTips("活动不存在"))
			return
		}
		log.Error("查询活动失败", "error", err, "event_id", id)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	var records []model.Attendance
	if err := database.DB.
		Preload("User").Preload("MarkedBy").
		Where("event_id = ?", event.ID).
		Order("marked_at ASC").
		Find(&records).Error; err != nil {
		log.Error("查询考勤记录失败", "error", err, "event_id", event.ID)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	// 学号单独查一次，UserRef 不带该字段
	userIDs := make([]uint, 0, len(records))
	for i := range records {
		userIDs = append(userIDs, records[i].UserID)
	}
	studentIDs := make(map[uint]string, len(userIDs))
	if len(userIDs) > 0 {
		var users []model.User
		if err := database.DB.Select("id", "student_id").Where("id IN ?", userIDs).Find(&users).Error; err != nil {
			log.Error("查询用户学号失败", "error", err)
			response.Fail(c, response.ErrDatabase.WithOrigin(err))
			return
		}
		for i := range users {
			studentIDs[users[i].ID] = users[i].StudentID
		}
	}

	rows := make([]model.AttendanceRow, 0, len(records))
	for i := range records {
		r := &records[i]
		markedBy := ""
		if r.MarkedBy != nil {
			markedBy = r.MarkedBy.Username
		}
		rows = append(rows, model.AttendanceRow{
			Username:  r.User.Username,
			StudentID: studentIDs[r.UserID],
			Status:    string(r.Status),
			MarkedAt:  r.MarkedAt.Format("2006-01-02 15:04:05"),
			MarkedBy:  markedBy,
		})
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := tools.ExportToExcel(f, "考勤表", rows); err != nil {
		log.Error("生成考勤表失败", "error", err, "event_id", event.ID)
		response.Fail(c, response.ErrInternal.WithOrigin(err))
		return
	}
	f.DeleteSheet("Sheet1")

	filename := fmt.Sprintf("attendance_event_%d.xlsx", event.ID)
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Header("Content-Type", tools.ExcelContentType)
	if err := f.Write(c.Writer); err != nil {
		log.Error("写出考勤表失败", "error", err, "event_id", event.ID)
	}
}
