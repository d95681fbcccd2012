package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config 应用全局配置结构体
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Backend   BackendConfig   `mapstructure:"backend"`
	Templates TemplatesConfig `mapstructure:"templates"`
	Session   SessionConfig   `mapstructure:"session"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Log       LogConfig       `mapstructure:"log"`
}

// ServerConfig HTTP 服务器配置
type ServerConfig struct {
	Port         int           `mapstructure:"port"`
	BaseURL      string        `mapstructure:"base_url"`
	MaxBodyBytes int64         `mapstructure:"max_body_bytes"`
	EventLimit   int           `mapstructure:"event_limit"` // 每个窗口内单 IP 允许的界面事件数
	EventWindow  time.Duration `mapstructure:"event_window"`
}

// BackendConfig 考试后端（数据访问层）配置
type BackendConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// TemplatesConfig 模板片段配置
// Dir 为空时使用编译进二进制的内置模板
type TemplatesConfig struct {
	Dir string `mapstructure:"dir"`
}

// SessionConfig 会话配置
type SessionConfig struct {
	Secret    string        `mapstructure:"secret"`
	TTL       time.Duration `mapstructure:"ttl"`
	TTLAllDay time.Duration `mapstructure:"ttl_all_day"`
	IdleEvict time.Duration `mapstructure:"idle_evict"`
	Cookie    CookieConfig  `mapstructure:"cookie"`
}

// CookieConfig Cookie 安全配置
type CookieConfig struct {
	Name     string `mapstructure:"name"`
	Secure   bool   `mapstructure:"secure"`
	SameSite string `mapstructure:"same_site"`
	Domain   string `mapstructure:"domain"`
}

// RedisConfig Redis 配置（会话身份存储）
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// LogConfig 日志配置
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load 从配置文件与环境变量加载配置
// 优先级：环境变量 > .env > 配置文件 > 默认值
func Load(path string) (*Config, error) {
	// .env 不存在时忽略
	_ = godotenv.Load()

	v := viper.New()

	// ── 默认值 ──
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.base_url", "http://localhost:8080")
	v.SetDefault("server.max_body_bytes", 1<<20)
	v.SetDefault("server.event_limit", 120)
	v.SetDefault("server.event_window", "1m")

	v.SetDefault("backend.base_url", "http://localhost:9090/api")
	v.SetDefault("backend.timeout", "10s")

	v.SetDefault("templates.dir", "")

	v.SetDefault("session.secret", "")
	v.SetDefault("session.ttl", "2h")
	v.SetDefault("session.ttl_all_day", "24h")
	v.SetDefault("session.idle_evict", "30m")
	v.SetDefault("session.cookie.name", "exam_session")
	v.SetDefault("session.cookie.secure", false)
	v.SetDefault("session.cookie.same_site", "Lax")

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// ── 配置文件 ──
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	// ── 环境变量 ──
	v.SetEnvPrefix("EXAM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("读取配置文件失败: %w", err)
		}
		// 配置文件不存在时仅依赖默认值和环境变量
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}

	// ── 关键配置校验 ──
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate 校验关键配置项
func (c *Config) Validate() error {
	if c.Session.Secret == "" {
		return fmt.Errorf("配置校验失败: session.secret 不能为空")
	}
	if len(c.Session.Secret) < 16 {
		return fmt.Errorf("配置校验失败: session.secret 长度不能少于 16 字符")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("配置校验失败: server.port 必须在 1-65535 之间")
	}
	if c.Backend.BaseURL == "" {
		return fmt.Errorf("配置校验失败: backend.base_url 不能为空")
	}
	if c.Session.IdleEvict <= 0 {
		return fmt.Errorf("配置校验失败: session.idle_evict 必须大于 0")
	}
	if c.Session.TTLAllDay < c.Session.TTL {
		return fmt.Errorf("配置校验失败: session.ttl_all_day 不能短于 session.ttl")
	}
	return nil
}
