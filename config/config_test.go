package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoad_DefaultsAndEnv(t *testing.T) {
	t.Setenv("EXAM_SESSION_SECRET", "0123456789abcdef-test")
	t.Setenv("EXAM_BACKEND_BASE_URL", "http://backend.test/api")
	t.Setenv("EXAM_SESSION_TTL", "90m")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load 失败: %v", err)
	}
	if cfg.Backend.BaseURL != "http://backend.test/api" {
		t.Errorf("环境变量应覆盖默认值，实际=%q", cfg.Backend.BaseURL)
	}
	if cfg.Session.TTL != 90*time.Minute {
		t.Errorf("期望 TTL=90m，实际=%v", cfg.Session.TTL)
	}
	if cfg.Session.TTLAllDay != 24*time.Hour || cfg.Session.Cookie.Name != "exam_session" {
		t.Errorf("默认值不符: %+v", cfg.Session)
	}
	if cfg.Server.EventLimit != 120 || cfg.Server.EventWindow != time.Minute {
		t.Errorf("事件限流默认值不符: %+v", cfg.Server)
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server:  ServerConfig{Port: 8080},
			Backend: BackendConfig{BaseURL: "http://backend"},
			Session: SessionConfig{
				Secret:    "0123456789abcdef",
				TTL:       time.Hour,
				TTLAllDay: 24 * time.Hour,
				IdleEvict: time.Minute,
			},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"合法配置", func(*Config) {}, ""},
		{"缺少密钥", func(c *Config) { c.Session.Secret = "" }, "session.secret 不能为空"},
		{"密钥过短", func(c *Config) { c.Session.Secret = "short" }, "长度不能少于"},
		{"端口越界", func(c *Config) { c.Server.Port = 70000 }, "server.port"},
		{"缺少后端地址", func(c *Config) { c.Backend.BaseURL = "" }, "backend.base_url"},
		{"空闲回收为 0", func(c *Config) { c.Session.IdleEvict = 0 }, "idle_evict"},
		{"全天有效期过短", func(c *Config) { c.Session.TTLAllDay = time.Minute }, "ttl_all_day"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("期望通过，实际: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("期望包含 %q 的错误，实际: %v", tt.wantErr, err)
			}
		})
	}
}
