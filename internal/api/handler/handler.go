package handler

import (
	"go.uber.org/zap"

	"exam-portal/web/internal/api/middleware"
	"exam-portal/web/internal/service"
)

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Page   *PageHandler
	Export *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service, cookie *middleware.SessionCookie, logger *zap.Logger) *Handler {
	return &Handler{
		Page:   NewPageHandler(cookie, logger),
		Export: NewExportHandler(svc.Export, svc.Calendar),
	}
}
