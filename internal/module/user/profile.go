package user

import (
	"club-portal-system/internal/global/database"
	"club-portal-system/internal/global/jwt"
	"club-portal-system/internal/global/pictureBed"
	"club-portal-system/internal/global/response"
	"club-portal-system/internal/global/sentry/tracing"
	"club-portal-system/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// GetProfile 返回当前用户的个人资料投影
// 不包含密码、provider、provider_id、github_id 等内部字段
func GetProfile(c *gin.Context) {
	payload, exists := jwt.GetUserPayload(c)
	if !exists {
		response.Fail(c, response.ErrUnauthorized)
		return
	}

	var user model.User
	err := database.DB.WithContext(tracing.ContextWithSpan(c)).First(&user, payload.UserID).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		response.Fail(c, response.ErrNotFound.WithTips("用户不存在"))
		return
	case err != nil:
		log.Error("查询用户失败", "error", err, "user_id", payload.UserID)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	response.Success(c, model.NewProfileDTO(&user))
}

// ProfileUpdateReq 定义更新资料请求的结构体，使用指针类型支持部分更新
type ProfileUpdateReq struct {
	Email          *string           `json:"email"`
	FirstName      *string           `json:"first_name"`
	LastName       *string           `json:"last_name"`
	Bio            *string           `json:"bio"`
	StudentID      *string           `json:"student_id"`
	BatchYear      *int              `json:"batch_year"`
	GithubUsername *string           `json:"github_username"`
	TechSkills     *[]string         `json:"tech_skills"`
	SkillLevel     *model.SkillLevel `json:"skill_level"`
	PortfolioURL   *string           `json:"portfolio_url"`
	LinkedinURL    *string           `json:"linkedin_url"`
}

// UpdateProfile 处理更新个人资料请求
func UpdateProfile(c *gin.Context) {
	payload, exists := jwt.GetUserPayload(c)
	if !exists {
		response.Fail(c, response.ErrUnauthorized)
		return
	}

	var req ProfileUpdateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("绑定更新资料请求失败", "error", err, "user_id", payload.UserID)
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}

	// 枚举字段校验
	if req.SkillLevel != nil && !req.SkillLevel.Valid() {
		response.Fail(c, response.ErrInvalidRequest.WithTips("skill_level 取值无效"))
		return
	}

	var user model.User
	if err := database.DB.First(&user, payload.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Fail(c, response.ErrNotFound.WithTips("用户不存在"))
			return
		}
		log.Error("查询用户失败", "error", err, "user_id", payload.UserID)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Bio != nil {
		user.Bio = *req.Bio
	}
	if req.StudentID != nil {
		user.StudentID = *req.StudentID
	}
	if req.BatchYear != nil {
		user.BatchYear = *req.BatchYear
	}
	if req.GithubUsername != nil {
		user.GithubUsername = *req.GithubUsername
	}
	if req.TechSkills != nil {
		user.TechSkills = datatypes.NewJSONSlice(*req.TechSkills)
	}
	if req.SkillLevel != nil {
		user.SkillLevel = *req.SkillLevel
	}
	if req.PortfolioURL != nil {
		user.PortfolioURL = *req.PortfolioURL
	}
	if req.LinkedinURL != nil {
		user.LinkedinURL = *req.LinkedinURL
	}

	if err := database.DB.Save(&user).Error; err != nil {
		log.Error("更新资料失败", "error", err, "user_id", payload.UserID)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	log.Info("用户资料更新成功", "user_id", user.ID)
	response.Success(c, model.NewProfileDTO(&user))
}

// UploadAvatar 上传头像到图床并更新资料
func UploadAvatar(c *gin.Context) {
	payload, exists := jwt.GetUserPayload(c)
	if !exists {
		response.Fail(c, response.ErrUnauthorized)
		return
	}

	if pictureBed.Default == nil {
		response.Fail(c, response.ErrInvalidRequest.WithTips("图床未配置"))
		return
	}

	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err).WithTips("缺少 avatar 文件"))
		return
	}

	url, err := pictureBed.Default.SaveImage(c.Request.Context(), fileHeader)
	if err != nil {
		log.Error("头像上传失败", "error", err, "user_id", payload.UserID)
		response.Fail(c, response.ErrInternal.WithOrigin(err))
		return
	}

	if err := database.DB.Model(&model.User{}).Where("id = ?", payload.UserID).
		Update("avatar", url).Error; err != nil {
		log.Error("更新头像失败", "error", err, "user_id", payload.UserID)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	log.Info("头像更新成功", "user_id", payload.UserID)
	response.Success(c, gin.H{"avatar": url})
}

// PresignReq 定义预签名上传请求的结构体
type PresignReq struct {
	Filename    string `json:"filename" binding:"required"`
	ContentType string `json:"content_type"`
}

// PresignAvatarUpload 生成前端直传的预签名 URL
func PresignAvatarUpload(c *gin.Context) {
	if pictureBed.Default == nil {
		response.Fail(c, response.ErrInvalidRequest.WithTips("图床未配置"))
		return
	}

	var req PresignReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}

	resp, err := pictureBed.Default.GeneratePresignedUploadURL(c.Request.Context(), pictureBed.PresignedUploadRequest{
		Filename:    req.Filename,
		ContentType: req.ContentType,
	})
	if err != nil {
		log.Error("生成预签名 URL 失败", "error", err)
		response.Fail(c, response.ErrInternal.WithOrigin(err))
		return
	}

	response.Success(c, resp)
}
