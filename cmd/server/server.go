package server

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"club-portal-system/config"
	"club-portal-system/internal/global/cache"
	"club-portal-system/internal/global/database"
	"club-portal-system/internal/global/httpclient"
	"club-portal-system/internal/global/logger"
	"club-portal-system/internal/global/middleware"
	internalOtel "club-portal-system/internal/global/otel"
	"club-portal-system/internal/global/pictureBed"
	internalSentry "club-portal-system/internal/global/sentry"
	"club-portal-system/internal/module"
	"club-portal-system/tools"

	"github.com/gin-gonic/gin"
)

var log *slog.Logger

func Init() {
	config.Init()
	log = logger.New("Server")

	if err := internalSentry.Init(); err != nil {
		log.Error("Sentry 初始化失败", "error", err)
	}
	database.Init()
	cache.Init()
	httpclient.Init()
	pictureBed.Init()

	if config.Get().OTel.Enable {
		log.Info("OTel Enabled")
		internalOtel.Init()
	}

	for _, m := range module.Modules {
		log.Info(fmt.Sprintf("Init Module: %s", m.GetName()))
		m.Init()
	}
}

func Run() {
	gin.SetMode(string(config.Get().Mode))
	r := gin.New()

	switch config.Get().Mode {
	case config.ModeRelease:
		r.Use(middleware.Logger(logger.Get()))
	case config.ModeDebug:
		r.Use(gin.Logger())
	}
	r.Use(middleware.Cors())
	r.Use(internalSentry.Middleware())
	r.Use(middleware.Recovery())

	if config.Get().OTel.Enable {
		r.Use(middleware.Trace())
		defer func() {
			if err := internalOtel.Shutdown(context.Background()); err != nil {
				log.Error("Failed to shutdown TracerProvider", "error", err)
			}
		}()
	}
	defer internalSentry.Flush(2 * time.Second)

	for _, m := range module.Modules {
		log.Info(fmt.Sprintf("Init Router: %s", m.GetName()))
		m.InitRouter(r.Group("/" + config.Get().Prefix))
	}
	err := r.Run(config.Get().Host + ":" + config.Get().Port)
	tools.PanicOnErr(err)
}
