package oauth

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"club-portal-system/config"
	"club-portal-system/internal/global/cache"
	"club-portal-system/internal/global/database"
	"club-portal-system/internal/global/jwt"
	"club-portal-system/internal/global/response"
	"club-portal-system/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// stateKeyPrefix 是 state 在 Redis 中的键前缀
const stateKeyPrefix = "oauth:state:"

// Authorize 生成提供方授权地址
// state 随机生成并写入 Redis，回调时校验以防 CSRF
func Authorize(c *gin.Context) {
	provider := c.Param("provider")
	conf, ok := oauthConfigs[provider]
	if !ok {
		response.Fail(c, response.ErrInvalidRequest.WithTips("不支持的登录方式"))
		return
	}
	if conf.ClientID == "" {
		response.Fail(c, response.ErrInvalidRequest.WithTips(provider+" 登录未配置"))
		return
	}

	state, err := newState()
	if err != nil {
		response.Fail(c, response.ErrInternal.WithOrigin(err))
		return
	}

	ttl := time.Duration(config.Get().OAuth.StateTTL) * time.Second
	if err := cache.Client.Set(c.Request.Context(), stateKeyPrefix+state, provider, ttl).Err(); err != nil {
		log.Error("写入 state 失败", "error", err, "provider", provider)
		response.Fail(c, response.ErrInternal.WithOrigin(err))
		return
	}

	response.Success(c, gin.H{
		"auth_url": conf.AuthCodeURL(state),
		"state":    state,
	})
}

// Callback 处理提供方回调：校验 state、换取令牌、拉取用户信息并登录
func Callback(c *gin.Context) {
	provider := c.Param("provider")
	conf, ok := oauthConfigs[provider]
	if !ok {
		response.Fail(c, response.ErrInvalidRequest.WithTips("不支持的登录方式"))
		return
	}

	state := c.Query("state")
	code := c.Query("code")
	if state == "" || code == "" {
		response.Fail(c, response.ErrInvalidRequest.WithTips("缺少 state 或 code"))
		return
	}

	// state 一次性使用，校验后立刻删除
	stored, err := cache.Client.GetDel(c.Request.Context(), stateKeyPrefix+state).Result()
	if err != nil || stored != provider {
		log.Warn("state 校验失败", "provider", provider, "state", state)
		response.Fail(c, response.ErrInvalidRequest.WithTips("state 无效或已过期"))
		return
	}

	token, err := conf.Exchange(c.Request.Context(), code)
	if err != nil {
		log.Error("code 换取令牌失败", "error", err, "provider", provider)
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err).WithTips("授权码无效"))
		return
	}

	info, err := fetchUserInfo(c, provider, token.AccessToken)
	if err != nil {
		log.Error("获取用户信息失败", "error", err, "provider", provider)
		response.Fail(c, response.ErrInternal.WithOrigin(err))
		return
	}

	user, err := upsertUser(provider, info)
	if err != nil {
		response.Fail(c, err)
		return
	}

	log.Info("第三方登录成功",
		"user_id", user.ID,
		"provider", provider,
		"provider_id", info.ID)

	response.Success(c, gin.H{
		"token": jwt.CreateToken(jwt.Payload{
			UserID: user.ID,
			RoleID: user.RoleID(),
		}),
		"user_id":  user.ID,
		"username": user.Username,
	})
}

// upsertUser 按 (provider, provider_id) 查找用户，不存在则创建
func upsertUser(provider string, info *userInfo) (*model.User, *response.Error) {
	var user model.User
	err := database.DB.Where("provider = ? AND provider_id = ?", provider, info.ID).First(&user).Error
	switch {
	case err == nil:
		return &user, nil
	case !errors.Is(err, gorm.ErrRecordNotFound):
		log.Error("数据库查询失败", "error", err, "provider", provider, "provider_id", info.ID)
		return nil, response.ErrDatabase.WithOrigin(err)
	}

	user = model.User{
		Username:   uniqueUsername(info),
		Email:      info.Email,
		FirstName:  info.FirstName,
		LastName:   info.LastName,
		Avatar:     info.Avatar,
		Provider:   model.AuthProvider(provider),
		ProviderID: info.ID,
	}
	if provider == string(model.ProviderGitHub) {
		user.GithubID = info.ID
		user.GithubUsername = info.Login
	}

	if err := database.DB.Create(&user).Error; err != nil {
		log.Error("创建用户失败", "error", err, "provider", provider, "provider_id", info.ID)
		return nil, response.ErrDatabase.WithOrigin(err)
	}

	log.Info("第三方用户首次登录，已建档",
		"user_id", user.ID,
		"provider", provider)
	return &user, nil
}

// uniqueUsername 推导用户名，冲突时追加提供方 ID 后缀
func uniqueUsername(info *userInfo) string {
	name := info.Login
	if name == "" {
		name = strings.SplitN(info.Email, "@", 2)[0]
	}
	if name == "" {
		name = "member-" + info.ID
	}

	var count int64
	database.DB.Model(&model.User{}).Where("username = ?", name).Count(&count)
	if count > 0 {
		name = fmt.Sprintf("%s-%s", name, info.ID)
	}
	return name
}

func newState() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
