package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"exam-portal/web/config"
	"exam-portal/web/internal/api/handler"
	"exam-portal/web/internal/api/middleware"
	"exam-portal/web/internal/app"
	"exam-portal/web/internal/templates"
	"exam-portal/web/pkg/dom"
)

// Options 路由装配依赖
type Options struct {
	Config   *config.Config
	Handler  *handler.Handler
	Registry *app.Registry
	Cookie   *middleware.SessionCookie
	Limiter  middleware.RateLimiter // 为 nil 时不限流
	Logger   *zap.Logger
}

// Setup 初始化并返回 Gin 路由引擎
func Setup(opts Options) (*gin.Engine, error) {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	layout, err := templates.Layout()
	if err != nil {
		return nil, err
	}
	r.SetHTMLTemplate(layout)

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(opts.Logger))
	r.Use(middleware.SecurityHeaders(opts.Config.Session.Cookie.Secure))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "sessions": opts.Registry.Len()})
	})

	h := opts.Handler
	srv := opts.Config.Server

	// 以下路由都需要会话
	session := r.Group("")
	session.Use(middleware.Session(opts.Registry, opts.Cookie, opts.Logger))
	{
		session.GET("/", func(c *gin.Context) {
			c.Redirect(http.StatusSeeOther, "/login")
		})

		// 界面事件
		session.POST(dom.EventEndpoint,
			middleware.BodyLimit(srv.MaxBodyBytes),
			middleware.RateLimit(opts.Limiter, srv.EventLimit, srv.EventWindow),
			h.Page.Event,
		)

		// 导出
		export := session.Group("/export")
		{
			export.GET("/registrations/:id/:examId", h.Export.ExportRegistrations)
			export.GET("/calendar/:role/:id/:year", h.Export.ExportCalendar)
		}
	}

	// 其余 GET 路径交给应用内路由表
	r.NoRoute(middleware.Session(opts.Registry, opts.Cookie, opts.Logger), func(c *gin.Context) {
		if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
			c.Status(http.StatusMethodNotAllowed)
			return
		}
		h.Page.Visit(c)
	})

	return r, nil
}
