package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"exam-portal/web/config"
	"exam-portal/web/internal/api/handler"
	"exam-portal/web/internal/api/middleware"
	"exam-portal/web/internal/api/router"
	"exam-portal/web/internal/app"
	"exam-portal/web/internal/repository"
	"exam-portal/web/internal/service"
	"exam-portal/web/internal/templates"
	"exam-portal/web/pkg/jwt"
	applogger "exam-portal/web/pkg/logger"
	"exam-portal/web/pkg/redis"
)

func main() {
	// 1. 加载配置
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}

	// 2. 初始化日志
	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "初始化日志失败: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("应用启动中...",
		zap.Int("port", cfg.Server.Port),
		zap.String("backend", cfg.Backend.BaseURL),
		zap.String("log_level", cfg.Log.Level),
	)

	// 3. 连接 Redis（可选：连接失败时会话身份降级为进程内存储，事件不限流）
	var (
		store   app.SessionStore
		limiter middleware.RateLimiter
	)
	rdb, err := redis.NewClient(&cfg.Redis, logger)
	if err != nil {
		logger.Warn("Redis 连接失败，会话仅保存在进程内存中", zap.Error(err))
		store = app.NewMemoryStore(&cfg.Session)
	} else {
		store = app.NewRedisStore(rdb, &cfg.Session)
		limiter = rdb
	}

	// 4. 初始化会话令牌管理器
	jwtMgr := jwt.NewManager(&cfg.Session)
	cookie := middleware.NewSessionCookie(jwtMgr, cfg.Session.Cookie)

	// 5. 模板片段
	tmpl, err := templates.NewEngine(cfg.Templates.Dir, logger)
	if err != nil {
		logger.Fatal("加载模板失败", zap.Error(err))
	}

	// 6. 依赖注入: Repository → App Registry / Service → Handler
	repo := repository.NewRepository(repository.NewClient(&cfg.Backend, logger))
	registry := app.NewRegistry(&app.Deps{
		Templates: tmpl,
		Repo:      repo,
		Store:     store,
		Logger:    logger,
	}, cfg.Session.IdleEvict)
	svc := service.NewService(repo, logger)
	h := handler.NewHandler(svc, cookie, logger)

	// 7. 初始化路由
	engine, err := router.Setup(router.Options{
		Config:   cfg,
		Handler:  h,
		Registry: registry,
		Cookie:   cookie,
		Limiter:  limiter,
		Logger:   logger,
	})
	if err != nil {
		logger.Fatal("初始化路由失败", zap.Error(err))
	}

	// 8. 空闲会话清理
	sweepCtx, stopSweep := context.WithCancel(context.Background())
	defer stopSweep()
	go registry.Run(sweepCtx, cfg.Session.IdleEvict/2)

	// 9. 启动 HTTP 服务器（优雅关闭）
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("HTTP 服务器已启动", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP 服务器异常", zap.Error(err))
		}
	}()

	// 10. 监听系统信号，优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("收到关闭信号，开始优雅关闭...", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("服务器关闭异常", zap.Error(err))
	}
	stopSweep()

	// 关闭 Redis 连接
	if rdb != nil {
		rdb.Close()
	}

	logger.Info("服务器已关闭")
}
