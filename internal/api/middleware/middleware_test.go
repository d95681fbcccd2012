package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"exam-portal/web/config"
	"exam-portal/web/internal/app"
	"exam-portal/web/internal/repository"
	"exam-portal/web/internal/templates"
	"exam-portal/web/pkg/jwt"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ── 测试辅助 ──

func testSessionConfig() *config.SessionConfig {
	return &config.SessionConfig{
		Secret:    "test-secret-key-for-unit-testing-2026",
		TTL:       2 * time.Hour,
		TTLAllDay: 24 * time.Hour,
		IdleEvict: time.Minute,
		Cookie:    config.CookieConfig{Name: "exam_session", SameSite: "Lax"},
	}
}

func newTestRegistry(t *testing.T) *app.Registry {
	t.Helper()
	engine, err := templates.NewEngine("", zap.NewNop())
	if err != nil {
		t.Fatalf("NewEngine 失败: %v", err)
	}
	return app.NewRegistry(&app.Deps{
		Templates: engine,
		Repo:      &repository.Repository{},
		Store:     app.NewMemoryStore(testSessionConfig()),
		Logger:    zap.NewNop(),
	}, time.Minute)
}

func newSessionCookie() *SessionCookie {
	cfg := testSessionConfig()
	return NewSessionCookie(jwt.NewManager(cfg), cfg.Cookie)
}

// sessionEngine 返回当前请求会话 ID 的测试路由
func sessionEngine(reg *app.Registry, cookie *SessionCookie) *gin.Engine {
	r := gin.New()
	r.Use(Session(reg, cookie, zap.NewNop()))
	r.GET("/sid", func(c *gin.Context) {
		a := c.MustGet(AppKey).(*app.App)
		c.String(http.StatusOK, a.ID())
	})
	return r
}

func sessionCookieOf(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, ck := range w.Result().Cookies() {
		if ck.Name == "exam_session" {
			return ck
		}
	}
	return nil
}

// ── Session ──

func TestSession_IssuesCookieThenReusesApp(t *testing.T) {
	reg := newTestRegistry(t)
	r := sessionEngine(reg, newSessionCookie())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/sid", nil))
	ck := sessionCookieOf(t, w)
	if ck == nil {
		t.Fatal("首次访问应签发会话 Cookie")
	}
	if !ck.HttpOnly {
		t.Error("会话 Cookie 应为 HttpOnly")
	}
	first := w.Body.String()

	req := httptest.NewRequest(http.MethodGet, "/sid", nil)
	req.AddCookie(ck)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Body.String() != first {
		t.Errorf("同一 Cookie 应得到同一会话，实际 %q / %q", first, w.Body.String())
	}
	if sessionCookieOf(t, w) != nil {
		t.Error("有效 Cookie 不应重新签发")
	}
	if reg.Len() != 1 {
		t.Errorf("期望 1 个会话，实际=%d", reg.Len())
	}
}

func TestSession_InvalidCookieStartsNewSession(t *testing.T) {
	reg := newTestRegistry(t)
	r := sessionEngine(reg, newSessionCookie())

	req := httptest.NewRequest(http.MethodGet, "/sid", nil)
	req.AddCookie(&http.Cookie{Name: "exam_session", Value: "garbage"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if sessionCookieOf(t, w) == nil {
		t.Error("无效 Cookie 应重新签发")
	}
	if w.Body.String() == "" {
		t.Error("应创建新会话")
	}
}

func TestSessionCookie_IssueAllDay(t *testing.T) {
	cookie := newSessionCookie()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	if err := cookie.Issue(c, "sid-1", true); err != nil {
		t.Fatalf("Issue 失败: %v", err)
	}
	ck := sessionCookieOf(t, w)
	if ck == nil {
		t.Fatal("应写入 Cookie")
	}
	if ck.MaxAge < int((23 * time.Hour).Seconds()) {
		t.Errorf("全天会话 Cookie 有效期过短: %d", ck.MaxAge)
	}
	if !c.GetBool(AllDayKey) {
		t.Error("上下文应记录全天标记")
	}
}

// ── RequestID / SecurityHeaders ──

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, GetRequestID(c)) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if w.Body.String() == "" || w.Header().Get("X-Request-ID") != w.Body.String() {
		t.Errorf("应生成并回写 Request-ID，实际 body=%q header=%q", w.Body.String(), w.Header().Get("X-Request-ID"))
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "abc")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Body.String() != "abc" {
		t.Errorf("应沿用传入的 Request-ID，实际=%q", w.Body.String())
	}
}

func TestSecurityHeaders(t *testing.T) {
	tests := []struct {
		name     string
		hsts     bool
		wantHSTS bool
	}{
		{"HTTP", false, false},
		{"HTTPS Cookie", true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.Use(SecurityHeaders(tt.hsts))
			r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
			csp := w.Header().Get("Content-Security-Policy")
			if !strings.Contains(csp, "script-src 'self' "+htmxOrigin) || !strings.Contains(csp, "connect-src 'self'") {
				t.Errorf("CSP 应允许 htmx 脚本与同源回传，实际=%q", csp)
			}
			if w.Header().Get("Cache-Control") != "no-store" {
				t.Error("会话页面不应被缓存")
			}
			if w.Header().Get("X-Frame-Options") != "DENY" {
				t.Error("缺少 X-Frame-Options")
			}
			if got := w.Header().Get("Strict-Transport-Security") != ""; got != tt.wantHSTS {
				t.Errorf("HSTS 期望=%v，实际=%v", tt.wantHSTS, got)
			}
		})
	}
}

// ── BodyLimit ──

func TestBodyLimit(t *testing.T) {
	r := gin.New()
	r.POST("/", BodyLimit(16), func(c *gin.Context) {
		c.String(http.StatusOK, c.Request.PostForm.Get("a"))
	})

	small := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("a=1"))
	small.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, small)
	if w.Code != http.StatusOK || w.Body.String() != "1" {
		t.Errorf("小请求应通过，实际 %d %q", w.Code, w.Body.String())
	}

	big := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("a="+strings.Repeat("x", 64)))
	big.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, big)
	if w.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("期望 413，实际 %d", w.Code)
	}
}

// ── RateLimit ──

type fakeLimiter struct {
	allowed bool
	err     error
	keys    []string
}

func (f *fakeLimiter) CheckRateLimit(_ context.Context, key string, _ int, _ time.Duration) (bool, error) {
	f.keys = append(f.keys, key)
	return f.allowed, f.err
}

func TestRateLimit(t *testing.T) {
	tests := []struct {
		name    string
		limiter RateLimiter
		want    int
	}{
		{"未配置限流器", nil, http.StatusOK},
		{"允许", &fakeLimiter{allowed: true}, http.StatusOK},
		{"超限", &fakeLimiter{allowed: false}, http.StatusTooManyRequests},
		{"限流器出错时放行", &fakeLimiter{err: errors.New("redis down")}, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.POST("/ui/events", RateLimit(tt.limiter, 10, time.Minute), func(c *gin.Context) {
				c.Status(http.StatusOK)
			})
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/ui/events", nil))
			if w.Code != tt.want {
				t.Errorf("期望 %d，实际 %d", tt.want, w.Code)
			}
			if f, ok := tt.limiter.(*fakeLimiter); ok && (len(f.keys) != 1 || !strings.HasSuffix(f.keys[0], ":/ui/events")) {
				t.Errorf("限流键不符: %v", f.keys)
			}
		})
	}
}
