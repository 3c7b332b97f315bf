package oauth

import (
	"fmt"
	"strconv"
	"strings"

	"club-portal-system/internal/global/httpclient"
	"club-portal-system/internal/global/sentry/tracing"

	"github.com/gin-gonic/gin"
)

const (
	githubUserAPI = "https://api.github.com/user"
	googleUserAPI = "https://www.googleapis.com/oauth2/v2/userinfo"
)

// userInfo 提供方返回的用户信息的统一形态
type userInfo struct {
	ID        string
	Login     string
	Email     string
	FirstName string
	LastName  string
	Avatar    string
}

// githubUser GitHub /user 接口返回中我们关心的字段
type githubUser struct {
	ID        int64  `json:"id"`
	Login     string `json:"login"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatar_url"`
}

// googleUser Google userinfo 接口返回中我们关心的字段
type googleUser struct {
	ID         string `json:"id"`
	Email      string `json:"email"`
	GivenName  string `json:"given_name"`
	FamilyName string `json:"family_name"`
	Picture    string `json:"picture"`
}

// fetchUserInfo 用访问令牌调用提供方用户信息接口
func fetchUserInfo(c *gin.Context, provider, accessToken string) (*userInfo, error) {
	req := httpclient.Client.R().
		SetContext(tracing.ContextWithSpan(c)).
		SetAuthToken(accessToken)

	switch provider {
	case "github":
		var gh githubUser
		resp, err := req.SetResult(&gh).Get(githubUserAPI)
		if err != nil {
			return nil, err
		}
		if resp.IsError() {
			return nil, fmt.Errorf("github 用户信息接口返回 %d", resp.StatusCode())
		}
		if gh.ID == 0 {
			return nil, fmt.Errorf("github 返回的用户信息无效")
		}
		first, last := splitName(gh.Name)
		return &userInfo{
			ID:        strconv.FormatInt(gh.ID, 10),
			Login:     gh.Login,
			Email:     gh.Email,
			FirstName: first,
			LastName:  last,
			Avatar:    gh.AvatarURL,
		}, nil

	case "google":
		var gg googleUser
		resp, err := req.SetResult(&gg).Get(googleUserAPI)
		if err != nil {
			return nil, err
		}
		if resp.IsError() {
			return nil, fmt.Errorf("google 用户信息接口返回 %d", resp.StatusCode())
		}
		if gg.ID == "" {
			return nil, fmt.Errorf("google 返回的用户信息无效")
		}
		return &userInfo{
			ID:        gg.ID,
			Email:     gg.Email,
			FirstName: gg.GivenName,
			LastName:  gg.FamilyName,
			Avatar:    gg.Picture,
		}, nil
	}

	return nil, fmt.Errorf("不支持的登录方式: %s", provider)
}

// splitName 将 "Ada Lovelace" 形式的显示名拆为姓和名
func splitName(name string) (first, last string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ""
	}
	parts := strings.SplitN(name, " ", 2)
	first = parts[0]
	if len(parts) > 1 {
		last = parts[1]
	}
	return first, last
}
