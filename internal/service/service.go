package service

import (
	"go.uber.org/zap"

	"exam-portal/web/internal/repository"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Export   ExportService
	Calendar CalendarService
}

// NewService 创建 Service 聚合
func NewService(repo *repository.Repository, logger *zap.Logger) *Service {
	return &Service{
		Export:   NewExportService(repo, logger),
		Calendar: NewCalendarService(repo, logger),
	}
}
