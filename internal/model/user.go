package model

import (
	"strings"

	"gorm.io/datatypes"
)

// SkillLevel 技能水平枚举
type SkillLevel string

const (
	SkillBeginner     SkillLevel = "beginner"
	SkillIntermediate SkillLevel = "intermediate"
	SkillAdvanced     SkillLevel = "advanced"
	SkillExpert       SkillLevel = "expert"
)

func (s SkillLevel) Valid() bool {
	switch s {
	case SkillBeginner, SkillIntermediate, SkillAdvanced, SkillExpert:
		return true
	}
	return false
}

// AuthProvider 认证来源枚举
type AuthProvider string

const (
	ProviderGitHub AuthProvider = "github"
	ProviderGoogle AuthProvider = "google"
	ProviderLocal  AuthProvider = "local"
)

func (p AuthProvider) Valid() bool {
	switch p {
	case ProviderGitHub, ProviderGoogle, ProviderLocal:
		return true
	}
	return false
}

type User struct {
	Model
	Username  string `gorm:"type:varchar(100);uniqueIndex;not null" json:"username"`
	Email     string `gorm:"type:varchar(255);index" json:"email"`
	FirstName string `gorm:"type:varchar(100)" json:"first_name"`
	LastName  string `gorm:"type:varchar(100)" json:"last_name"`
	Password  string `gorm:"type:varchar(255)" json:"-"`

	Bio    string `gorm:"type:varchar(500)" json:"bio"`
	Avatar string `gorm:"type:varchar(255)" json:"avatar"`

	StudentID string `gorm:"type:varchar(50)" json:"student_id"` // 学号
	BatchYear int    `gorm:"default:0" json:"batch_year"`        // 毕业届别，如 2025

	Points int `gorm:"default:0;index" json:"points"` // 积分，排行榜用

	GithubUsername string                      `gorm:"type:varchar(100)" json:"github_username"`
	TechSkills     datatypes.JSONSlice[string] `gorm:"type:json" json:"tech_skills"`
	SkillLevel     SkillLevel                  `gorm:"type:varchar(20)" json:"skill_level"`
	PortfolioURL   string                      `gorm:"type:varchar(255)" json:"portfolio_url"`
	LinkedinURL    string                      `gorm:"type:varchar(255)" json:"linkedin_url"`

	// OAuth 字段，仅索引不做唯一约束（与上游保持一致）
	Provider   AuthProvider `gorm:"type:varchar(50);index:idx_provider" json:"-"`
	ProviderID string       `gorm:"type:varchar(255);index:idx_provider" json:"-"`
	GithubID   string       `gorm:"type:varchar(255);index" json:"-"`

	IsMember    bool `gorm:"default:false" json:"is_member"`
	IsClubAdmin bool `gorm:"default:false" json:"is_club_admin"`
	IsStaff     bool `gorm:"default:false" json:"is_staff"`
}

// RoleID 鉴权用角色：1 社团管理员，0 普通成员
func (u *User) RoleID() int {
	if u.IsClubAdmin {
		return 1
	}
	return 0
}

// FullName 姓名拼接，两者皆空时退回用户名
func (u *User) FullName() string {
	name := strings.TrimSpace(strings.TrimSpace(u.FirstName) + " " + strings.TrimSpace(u.LastName))
	if name == "" {
		return u.Username
	}
	return name
}

// ProfileDTO 个人资料对外投影，不含密码与 OAuth 内部字段
type ProfileDTO struct {
	ID             uint       `json:"id"`
	Username       string     `json:"username"`
	Email          string     `json:"email"`
	FirstName      string     `json:"first_name"`
	LastName       string     `json:"last_name"`
	StudentID      string     `json:"student_id"`
	BatchYear      int        `json:"batch_year"`
	Points         int        `json:"points"`
	IsMember       bool       `json:"is_member"`
	IsClubAdmin    bool       `json:"is_club_admin"`
	IsStaff        bool       `json:"is_staff"`
	Avatar         string     `json:"avatar"`
	Bio            string     `json:"bio"`
	GithubUsername string     `json:"github_username"`
	LinkedinURL    string     `json:"linkedin_url"`
	PortfolioURL   string     `json:"portfolio_url"`
	TechSkills     []string   `json:"tech_skills"`
	SkillLevel     SkillLevel `json:"skill_level"`
}

func NewProfileDTO(u *User) ProfileDTO {
	skills := []string(u.TechSkills)
	if skills == nil {
		skills = []string{}
	}
	return ProfileDTO{
		ID:             u.ID,
		Username:       u.Username,
		Email:          u.Email,
		FirstName:      u.FirstName,
		LastName:       u.LastName,
		StudentID:      u.StudentID,
		BatchYear:      u.BatchYear,
		Points:         u.Points,
		IsMember:       u.IsMember,
		IsClubAdmin:    u.IsClubAdmin,
		IsStaff:        u.IsStaff,
		Avatar:         u.Avatar,
		Bio:            u.Bio,
		GithubUsername: u.GithubUsername,
		LinkedinURL:    u.LinkedinURL,
		PortfolioURL:   u.PortfolioURL,
		TechSkills:     skills,
		SkillLevel:     u.SkillLevel,
	}
}

// UserRef 嵌入其他响应时的用户摘要，防止带出敏感字段
type UserRef struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Username  string `gorm:"type:varchar(100)" json:"username"`
	FirstName string `gorm:"type:varchar(100)" json:"first_name"`
	LastName  string `gorm:"type:varchar(100)" json:"last_name"`
	Avatar    string `gorm:"type:varchar(255)" json:"avatar"`
}

func (UserRef) TableName() string {
	return "user"
}
