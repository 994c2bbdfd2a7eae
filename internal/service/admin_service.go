package service

import (
	"context"

	"studyflow-be/internal/pkg/logger"
)

type IAdminService interface {
	GetLogs(ctx context.Context, level string, limit, offset int) ([]logger.LogEntry, error)
}

type adminService struct {
	logger logger.ILogger
}

func NewAdminService(log logger.ILogger) IAdminService {
	return &adminService{logger: log}
}

func (s *adminService) GetLogs(ctx context.Context, level string, limit, offset int) ([]logger.LogEntry, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return s.logger.GetLogs(level, limit, offset)
}
