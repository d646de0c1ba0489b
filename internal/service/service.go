package service

import (
	"go.uber.org/zap"

	"github.com/bp4sp4/korhrd-landing/config"
	"github.com/bp4sp4/korhrd-landing/internal/repository"
	"github.com/bp4sp4/korhrd-landing/pkg/jwt"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Auth    AuthService
	Inquiry InquiryService
	Export  ExportService
}

// NewService 创建 Service 聚合
// blacklist 允许为 nil（Redis 不可用时降级，登出不再吊销 Token）
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	blacklist TokenBlacklist,
	logger *zap.Logger,
) *Service {
	return &Service{
		Auth:    NewAuthService(cfg, repo, jwtMgr, blacklist, logger),
		Inquiry: NewInquiryService(repo, logger),
		Export:  NewExportService(repo, logger),
	}
}
