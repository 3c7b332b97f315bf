package model

import "gorm.io/datatypes"

// ProjectStatus 项目状态枚举
type ProjectStatus string

const (
	ProjectPlanning   ProjectStatus = "planning"
	ProjectInProgress ProjectStatus = "in_progress"
	ProjectCompleted  ProjectStatus = "completed"
	ProjectArchived   ProjectStatus = "archived"
)

func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectPlanning, ProjectInProgress, ProjectCompleted, ProjectArchived:
		return true
	}
	return false
}

type Project struct {
	Model
	Name        string                      `gorm:"type:varchar(200);not null" json:"name"`
	Description string                      `gorm:"type:text;not null" json:"description"`
	Status      ProjectStatus               `gorm:"type:varchar(20);default:planning;not null" json:"status"`
	TechStack   datatypes.JSONSlice[string] `gorm:"type:json" json:"tech_stack"`
	GithubRepo  string                      `gorm:"type:varchar(255)" json:"github_repo"`
	DemoURL     string                      `gorm:"type:varchar(255)" json:"demo_url"`
	Image       string                      `gorm:"type:varchar(255)" json:"image"`

	// 负责人可被移除而不删除项目，置空即可
	LeadID *uint    `gorm:"index" json:"lead_id"`
	Lead   *UserRef `gorm:"foreignKey:LeadID;references:ID" json:"lead"`

	// 显式连接表 project_contributor 维护多对多贡献者关系
	Contributors []UserRef `gorm:"many2many:project_contributor;joinForeignKey:ProjectID;joinReferences:UserID" json:"contributors"`
}
