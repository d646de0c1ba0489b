package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/bp4sp4/korhrd-landing/config"
	"github.com/bp4sp4/korhrd-landing/internal/dto"
	"github.com/bp4sp4/korhrd-landing/internal/model"
	"github.com/bp4sp4/korhrd-landing/internal/repository"
	"github.com/bp4sp4/korhrd-landing/pkg/jwt"
)

var (
	ErrInvalidCredentials = errors.New("이메일 또는 비밀번호가 올바르지 않습니다")
	ErrOperatorNotFound   = errors.New("관리자 계정을 찾을 수 없습니다")
	ErrInvalidRefresh     = errors.New("세션이 만료되었습니다. 다시 로그인해주세요")
)

// TokenBlacklist Token 吊销存储
type TokenBlacklist interface {
	BlacklistToken(ctx context.Context, jti string, ttl time.Duration) error
	IsBlacklisted(ctx context.Context, jti string) (bool, error)
}

// AuthService 管理员认证业务接口
type AuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.SessionResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*dto.SessionResponse, error)
	// Logout 吊销当前 Access Token 与（若提供）Refresh Token
	Logout(ctx context.Context, accessJTI string, accessExpiresAt time.Time, refreshToken string) error
	GetCurrentOperator(ctx context.Context, operatorID string) (*dto.OperatorResponse, error)
	// EnsureOperator 确保初始管理员存在；已存在时不修改密码
	EnsureOperator(ctx context.Context, bootstrap config.BootstrapConfig) error
}

type authService struct {
	cfg       *config.Config
	repo      *repository.Repository
	jwtMgr    *jwt.Manager
	blacklist TokenBlacklist
	logger    *zap.Logger
}

// NewAuthService 创建 AuthService 实例
func NewAuthService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	blacklist TokenBlacklist,
	logger *zap.Logger,
) AuthService {
	return &authService{
		cfg:       cfg,
		repo:      repo,
		jwtMgr:    jwtMgr,
		blacklist: blacklist,
		logger:    logger,
	}
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.SessionResponse, error) {
	// 1. 查询管理员
	op, err := s.repo.Operator.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("查询管理员失败", zap.Error(err))
		return nil, err
	}

	// 2. 验证密码 (bcrypt)
	if err := bcrypt.CompareHashAndPassword([]byte(op.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	// 3. 签发 Token 对
	return s.issueSession(op)
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*dto.SessionResponse, error) {
	if refreshToken == "" {
		return nil, ErrInvalidRefresh
	}

	claims, err := s.jwtMgr.ParseToken(refreshToken)
	if err != nil || claims.TokenType != jwt.TokenTypeRefresh {
		return nil, ErrInvalidRefresh
	}

	if s.blacklist != nil {
		revoked, err := s.blacklist.IsBlacklisted(ctx, claims.ID)
		if err != nil {
			s.logger.Warn("检查 Token 黑名单失败", zap.Error(err))
		} else if revoked {
			return nil, ErrInvalidRefresh
		}
	}

	op, err := s.repo.Operator.GetByID(ctx, claims.OperatorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidRefresh
		}
		s.logger.Error("查询管理员失败", zap.Error(err))
		return nil, err
	}

	session, err := s.issueSession(op)
	if err != nil {
		return nil, err
	}

	// 轮换：旧 Refresh Token 立即作废
	s.revoke(ctx, claims.ID, claims.ExpiresAt.Time)
	return session, nil
}

func (s *authService) Logout(ctx context.Context, accessJTI string, accessExpiresAt time.Time, refreshToken string) error {
	if s.blacklist == nil {
		return nil
	}

	if accessJTI != "" {
		if err := s.blacklist.BlacklistToken(ctx, accessJTI, time.Until(accessExpiresAt)); err != nil {
			s.logger.Error("吊销 Access Token 失败", zap.Error(err))
			return err
		}
	}

	if refreshToken != "" {
		claims, err := s.jwtMgr.ParseToken(refreshToken)
		if err == nil && claims.TokenType == jwt.TokenTypeRefresh {
			if err := s.blacklist.BlacklistToken(ctx, claims.ID, time.Until(claims.ExpiresAt.Time)); err != nil {
				s.logger.Error("吊销 Refresh Token 失败", zap.Error(err))
				return err
			}
		}
	}
	return nil
}

func (s *authService) GetCurrentOperator(ctx context.Context, operatorID string) (*dto.OperatorResponse, error) {
	op, err := s.repo.Operator.GetByID(ctx, operatorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOperatorNotFound
		}
		s.logger.Error("查询管理员失败", zap.Error(err))
		return nil, err
	}
	resp := toOperatorResponse(op)
	return &resp, nil
}

func (s *authService) EnsureOperator(ctx context.Context, bootstrap config.BootstrapConfig) error {
	email := strings.ToLower(strings.TrimSpace(bootstrap.Email))
	if email == "" {
		return nil
	}

	_, err := s.repo.Operator.GetByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询初始管理员失败", zap.Error(err))
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(bootstrap.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	name := bootstrap.Name
	if name == "" {
		name = email
	}
	op := &model.Operator{Email: email, Name: name, PasswordHash: string(hash)}
	if err := s.repo.Operator.Create(ctx, op); err != nil {
		s.logger.Error("创建初始管理员失败", zap.Error(err))
		return err
	}

	s.logger.Info("已创建初始管理员", zap.String("email", email))
	return nil
}

// ── 内部辅助 ──

func (s *authService) issueSession(op *model.Operator) (*dto.SessionResponse, error) {
	accessToken, err := s.jwtMgr.GenerateAccessToken(op.OperatorID, op.Email)
	if err != nil {
		s.logger.Error("生成 AccessToken 失败", zap.Error(err))
		return nil, err
	}

	refreshToken, err := s.jwtMgr.GenerateRefreshToken(op.OperatorID, op.Email)
	if err != nil {
		s.logger.Error("生成 RefreshToken 失败", zap.Error(err))
		return nil, err
	}

	return &dto.SessionResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int(s.jwtMgr.AccessTokenTTL().Seconds()),
		Operator:     toOperatorResponse(op),
	}, nil
}

// revoke 尽力吊销，失败只记录日志
func (s *authService) revoke(ctx context.Context, jti string, expiresAt time.Time) {
	if s.blacklist == nil || jti == "" {
		return
	}
	if err := s.blacklist.BlacklistToken(ctx, jti, time.Until(expiresAt)); err != nil {
		s.logger.Warn("吊销 Token 失败", zap.String("jti", jti), zap.Error(err))
	}
}

func toOperatorResponse(op *model.Operator) dto.OperatorResponse {
	return dto.OperatorResponse{ID: op.OperatorID, Email: op.Email, Name: op.Name}
}
