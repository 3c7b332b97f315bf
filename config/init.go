package config

import (
	"sync"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/viper"
)

var (
	instance *Config
	once     sync.Once
)

// Init 加载配置，可重复调用（只生效一次）
func Init() {
	once.Do(load)
}

// Get 获取全局配置，未显式 Init 时使用默认值加载
func Get() *Config {
	once.Do(load)
	return instance
}

func load() {
	cfg := defaultConfig()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("../")
	// 配置文件可缺省，此时仅依赖默认值和环境变量
	if err := v.ReadInConfig(); err == nil {
		_ = v.Unmarshal(cfg)
	}

	// 环境变量覆盖文件配置
	_ = envconfig.Process("portal", cfg)

	instance = cfg
}

func defaultConfig() *Config {
	return &Config{
		Host:   "0.0.0.0",
		Port:   "8080",
		Prefix: "api",
		Mode:   ModeDebug,
		Mysql: Mysql{
			Host:   "127.0.0.1",
			Port:   "3306",
			DBName: "club_portal",
		},
		Redis: Redis{
			Host: "127.0.0.1",
			Port: "6379",
		},
		JWT: JWT{
			AccessSecret: "club-portal-dev-secret",
			AccessExpire: 72 * 3600,
		},
		Log: Log{
			Level:      "info",
			MaxSize:    100,
			MaxBackups: 3,
			MaxAge:     28,
		},
		OTel: OTel{
			ServiceName: "club-portal-system",
			AgentHost:   "127.0.0.1",
			AgentPort:   "4318",
		},
		OAuth: OAuth{
			StateTTL: 600,
		},
	}
}
