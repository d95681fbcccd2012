package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"exam-portal/web/config"
	"exam-portal/web/internal/api/handler"
	"exam-portal/web/internal/api/middleware"
	"exam-portal/web/internal/app"
	"exam-portal/web/internal/repository"
	"exam-portal/web/internal/service"
	"exam-portal/web/internal/templates"
	"exam-portal/web/pkg/jwt"
)

func setupTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	cfg := &config.Config{
		Server: config.ServerConfig{MaxBodyBytes: 1 << 20, EventLimit: 100, EventWindow: time.Minute},
		Session: config.SessionConfig{
			Secret:    "test-secret-key-for-unit-testing-2026",
			TTL:       2 * time.Hour,
			TTLAllDay: 24 * time.Hour,
			IdleEvict: time.Minute,
			Cookie:    config.CookieConfig{Name: "exam_session"},
		},
	}
	tmpl, err := templates.NewEngine("", zap.NewNop())
	if err != nil {
		t.Fatalf("NewEngine 失败: %v", err)
	}
	repo := &repository.Repository{}
	reg := app.NewRegistry(&app.Deps{
		Templates: tmpl,
		Repo:      repo,
		Store:     app.NewMemoryStore(&cfg.Session),
		Logger:    zap.NewNop(),
	}, cfg.Session.IdleEvict)
	cookie := middleware.NewSessionCookie(jwt.NewManager(&cfg.Session), cfg.Session.Cookie)

	r, err := Setup(Options{
		Config:   cfg,
		Handler:  handler.NewHandler(service.NewService(repo, zap.NewNop()), cookie, zap.NewNop()),
		Registry: reg,
		Cookie:   cookie,
		Logger:   zap.NewNop(),
	})
	if err != nil {
		t.Fatalf("Setup 失败: %v", err)
	}
	return r
}

func serve(r *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(method, path, nil))
	return w
}

func TestHealth(t *testing.T) {
	r := setupTestRouter(t)

	w := serve(r, http.MethodGet, "/health")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"status":"ok"`) {
		t.Errorf("健康检查不符: %d %s", w.Code, w.Body.String())
	}
	if w.Header().Get("X-Request-ID") == "" {
		t.Error("应设置 X-Request-ID")
	}
}

func TestRootRedirectsToLogin(t *testing.T) {
	r := setupTestRouter(t)

	w := serve(r, http.MethodGet, "/")
	if w.Code != http.StatusSeeOther || w.Header().Get("Location") != "/login" {
		t.Errorf("根路径应跳转到登录页，实际 %d %q", w.Code, w.Header().Get("Location"))
	}
}

func TestPagesServedByRouteTable(t *testing.T) {
	r := setupTestRouter(t)

	w := serve(r, http.MethodGet, "/login")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `id="loginForm"`) {
		t.Errorf("登录页渲染不符: %d", w.Code)
	}
	if w.Header().Get("Content-Security-Policy") == "" {
		t.Error("页面应带安全响应头")
	}

	// 缺少末尾斜杠时规范化跳转
	w = serve(r, http.MethodGet, "/inside/student/5/exam/7")
	if w.Code != http.StatusSeeOther || w.Header().Get("Location") != "/inside/student/5/exam/7/" {
		t.Errorf("期望跳转到带斜杠的路径，实际 %d %q", w.Code, w.Header().Get("Location"))
	}
}

func TestUnknownMethodOnPage(t *testing.T) {
	r := setupTestRouter(t)

	if w := serve(r, http.MethodPut, "/login"); w.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected 405, got %d", w.Code)
	}
}
