package model

import "time"

// AttendanceStatus 考勤状态枚举
type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "present"
	AttendanceAbsent  AttendanceStatus = "absent"
	AttendanceExcused AttendanceStatus = "excused"
)

func (s AttendanceStatus) Valid() bool {
	switch s {
	case AttendancePresent, AttendanceAbsent, AttendanceExcused:
		return true
	}
	return false
}

// Attendance 每个 (user, event) 至多一条记录，由唯一索引保证
type Attendance struct {
	ID      uint             `gorm:"primaryKey" json:"id"`
	UserID  uint             `gorm:"not null;index:idx_user_event,unique" json:"user_id"`
	EventID uint             `gorm:"not null;index:idx_user_event,unique" json:"event_id"`
	Status  AttendanceStatus `gorm:"type:varchar(20);default:present;not null" json:"status"`

	MarkedByID *uint     `json:"marked_by_id"` // 标记人，可为空
	MarkedAt   time.Time `gorm:"autoCreateTime" json:"marked_at"`

	User     UserRef  `gorm:"foreignKey:UserID;references:ID" json:"user"`
	Event    Event    `gorm:"foreignKey:EventID;references:ID" json:"event"`
	MarkedBy *UserRef `gorm:"foreignKey:MarkedByID;references:ID" json:"marked_by"`
}

// AttendanceRow 考勤导出行，excel 标签决定表头
type AttendanceRow struct {
	Username  string `excel:"用户名"`
	StudentID string `excel:"学号"`
	Status    string `excel:"状态"`
	MarkedAt  string `excel:"标记时间"`
	MarkedBy  string `excel:"标记人"`
}
