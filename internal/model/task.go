package model

import "time"

// TaskStatus 任务状态枚举
type TaskStatus string

const (
	TaskPending    TaskStatus = "pending"
	TaskInProgress TaskStatus = "in_progress"
	TaskSubmitted  TaskStatus = "submitted"
	TaskVerified   TaskStatus = "verified"
)

func (s TaskStatus) Valid() bool {
	switch s {
	case TaskPending, TaskInProgress, TaskSubmitted, TaskVerified:
		return true
	}
	return false
}

// Label 状态的展示文案
func (s TaskStatus) Label() string {
	switch s {
	case TaskPending:
		return "Pending"
	case TaskInProgress:
		return "In Progress"
	case TaskSubmitted:
		return "Submitted"
	case TaskVerified:
		return "Verified"
	}
	return string(s)
}

type Task struct {
	Model
	Title       string `gorm:"type:varchar(200);not null" json:"title"`
	Description string `gorm:"type:text;not null" json:"description"`

	// 用户删除时级联删除其任务
	AssignedToID uint    `gorm:"not null;index" json:"assigned_to_id"`
	AssignedTo   UserRef `gorm:"foreignKey:AssignedToID;references:ID;constraint:OnDelete:CASCADE" json:"assigned_to"`

	Status TaskStatus `gorm:"type:varchar(20);default:pending;not null" json:"status"`
	Points int        `gorm:"default:10;not null" json:"points"` // 完成后可获得的积分

	DueDate        *time.Time `json:"due_date"`
	SubmissionLink string     `gorm:"type:varchar(255)" json:"submission_link"` // PR、文档等成果链接
}

// TaskDTO 任务对外投影，带状态展示文案
type TaskDTO struct {
	ID             uint       `json:"id"`
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	Status         TaskStatus `json:"status"`
	StatusDisplay  string     `json:"status_display"`
	Points         int        `json:"points"`
	DueDate        *time.Time `json:"due_date"`
	SubmissionLink string     `json:"submission_link"`
	CreatedAt      time.Time  `json:"created_at"`
}

func NewTaskDTO(t *Task) TaskDTO {
	return TaskDTO{
		ID:             t.ID,
		Title:          t.Title,
		Description:    t.Description,
		Status:         t.Status,
		StatusDisplay:  t.Status.Label(),
		Points:         t.Points,
		DueDate:        t.DueDate,
		SubmissionLink: t.SubmissionLink,
		CreatedAt:      t.CreatedAt,
	}
}

func NewTaskDTOs(tasks []Task) []TaskDTO {
	dtos := make([]TaskDTO, 0, len(tasks))
	for i := range tasks {
		dtos = append(dtos, NewTaskDTO(&tasks[i]))
	}
	return dtos
}
