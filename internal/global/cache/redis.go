package cache

import (
	"context"
	"fmt"
	"time"

	"club-portal-system/config"

	"github.com/redis/go-redis/v9"
)

var Client *redis.Client

func Init() {
	cfg := config.Get().Redis
	Client = redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	// 启动时探活，失败不阻断启动（OAuth 登录会在使用时报错）
	_ = Client.Ping(ctx).Err()
}
