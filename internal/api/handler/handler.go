package handler

import (
	"github.com/bp4sp4/korhrd-landing/config"
	"github.com/bp4sp4/korhrd-landing/internal/service"
	"github.com/bp4sp4/korhrd-landing/pkg/jwt"
)

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth    *AuthHandler
	Inquiry *InquiryHandler
	Export  *ExportHandler
	Admin   *AdminHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(cfg *config.Config, svc *service.Service, jwtMgr *jwt.Manager) *Handler {
	return &Handler{
		Auth:    NewAuthHandler(svc.Auth, &cfg.Auth),
		Inquiry: NewInquiryHandler(svc.Inquiry),
		Export:  NewExportHandler(svc.Export),
		Admin:   NewAdminHandler(svc.Auth, jwtMgr, &cfg.Auth.Cookie),
	}
}
