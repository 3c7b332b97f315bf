package oauth

import (
	"log/slog"

	"club-portal-system/config"
	"club-portal-system/internal/global/logger"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/github"
	"golang.org/x/oauth2/google"
)

var log *slog.Logger

// oauthConfigs 各提供方的授权码流程配置
var oauthConfigs map[string]*oauth2.Config

type ModuleOAuth struct{}

func (o *ModuleOAuth) GetName() string {
	return "OAuth"
}

func (o *ModuleOAuth) Init() {
	log = logger.New("OAuth")

	cfg := config.Get().OAuth
	oauthConfigs = map[string]*oauth2.Config{
		"github": {
			ClientID:     cfg.GitHub.ClientID,
			ClientSecret: cfg.GitHub.ClientSecret,
			RedirectURL:  cfg.GitHub.RedirectURL,
			Scopes:       []string{"read:user", "user:email"},
			Endpoint:     github.Endpoint,
		},
		"google": {
			ClientID:     cfg.Google.ClientID,
			ClientSecret: cfg.Google.ClientSecret,
			RedirectURL:  cfg.Google.RedirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		},
	}
}

func selfInit() {
	o := &ModuleOAuth{}
	o.Init()
}
