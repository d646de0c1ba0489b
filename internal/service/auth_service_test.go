package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/bp4sp4/korhrd-landing/config"
	"github.com/bp4sp4/korhrd-landing/internal/dto"
	"github.com/bp4sp4/korhrd-landing/internal/model"
	"github.com/bp4sp4/korhrd-landing/pkg/jwt"
)

// ── 测试辅助 ──

func setupTestAuthService(blacklist TokenBlacklist) (AuthService, *mockOperatorRepo, *jwt.Manager) {
	cfg := &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:       "test-secret-key-for-unit-testing-2026",
			AccessTokenTTL:  15 * time.Minute,
			RefreshTokenTTL: 24 * time.Hour,
		},
	}

	repo, _, opRepo := newMockRepository()
	jwtMgr := jwt.NewManager(&cfg.Auth)
	svc := NewAuthService(cfg, repo, jwtMgr, blacklist, zap.NewNop())
	return svc, opRepo, jwtMgr
}

func createTestOperator(opRepo *mockOperatorRepo, email, password string) *model.Operator {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	op := &model.Operator{
		OperatorID:   "op-1",
		Email:        email,
		Name:         "관리자",
		PasswordHash: string(hash),
	}
	opRepo.operators[op.OperatorID] = op
	return op
}

// ── 登录测试 ──

func TestLogin_Success(t *testing.T) {
	svc, opRepo, jwtMgr := setupTestAuthService(nil)
	createTestOperator(opRepo, "admin@korhrd.co.kr", "password123")

	result, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "admin@korhrd.co.kr",
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("Login 应成功，但返回错误: %v", err)
	}
	if result.AccessToken == "" || result.RefreshToken == "" {
		t.Fatal("Token 不应为空")
	}
	if result.ExpiresIn != 900 {
		t.Errorf("期望 ExpiresIn=900，实际=%d", result.ExpiresIn)
	}
	if result.Operator.ID != "op-1" {
		t.Errorf("期望 Operator.ID=op-1，实际=%s", result.Operator.ID)
	}

	claims, err := jwtMgr.ParseToken(result.AccessToken)
	if err != nil {
		t.Fatalf("AccessToken 应可解析: %v", err)
	}
	if claims.TokenType != jwt.TokenTypeAccess || claims.OperatorID != "op-1" {
		t.Errorf("AccessToken 声明不符: %+v", claims)
	}
}

func TestLogin_EmailCaseInsensitive(t *testing.T) {
	svc, opRepo, _ := setupTestAuthService(nil)
	createTestOperator(opRepo, "admin@korhrd.co.kr", "password123")

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "Admin@KORHRD.co.kr",
		Password: "password123",
	})
	if err != nil {
		t.Errorf("邮箱大小写不同应仍可登录: %v", err)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, opRepo, _ := setupTestAuthService(nil)
	createTestOperator(opRepo, "admin@korhrd.co.kr", "password123")

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "admin@korhrd.co.kr",
		Password: "wrong_password",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("期望 ErrInvalidCredentials，实际: %v", err)
	}
}

func TestLogin_OperatorNotFound(t *testing.T) {
	svc, _, _ := setupTestAuthService(nil)

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "nobody@korhrd.co.kr",
		Password: "password123",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("账号不存在与密码错误应返回同一错误，实际: %v", err)
	}
}

// ── 刷新测试 ──

func TestRefresh_RotatesToken(t *testing.T) {
	bl := newMockBlacklist()
	svc, opRepo, jwtMgr := setupTestAuthService(bl)
	createTestOperator(opRepo, "admin@korhrd.co.kr", "password123")

	login, err := svc.Login(context.Background(), &dto.LoginRequest{Email: "admin@korhrd.co.kr", Password: "password123"})
	if err != nil {
		t.Fatalf("Login 失败: %v", err)
	}

	refreshed, err := svc.Refresh(context.Background(), login.RefreshToken)
	if err != nil {
		t.Fatalf("Refresh 应成功: %v", err)
	}
	if refreshed.AccessToken == "" {
		t.Error("刷新后 AccessToken 不应为空")
	}

	old, _ := jwtMgr.ParseToken(login.RefreshToken)
	if _, ok := bl.entries[old.ID]; !ok {
		t.Error("旧 Refresh Token 应被吊销")
	}

	// 旧 Refresh Token 不可再用
	if _, err := svc.Refresh(context.Background(), login.RefreshToken); !errors.Is(err, ErrInvalidRefresh) {
		t.Errorf("重复使用旧 Refresh Token 期望 ErrInvalidRefresh，实际: %v", err)
	}
}

func TestRefresh_RejectsAccessToken(t *testing.T) {
	svc, opRepo, jwtMgr := setupTestAuthService(nil)
	createTestOperator(opRepo, "admin@korhrd.co.kr", "password123")

	access, _ := jwtMgr.GenerateAccessToken("op-1", "admin@korhrd.co.kr")
	if _, err := svc.Refresh(context.Background(), access); !errors.Is(err, ErrInvalidRefresh) {
		t.Errorf("Access Token 不能用于刷新，实际: %v", err)
	}
	if _, err := svc.Refresh(context.Background(), ""); !errors.Is(err, ErrInvalidRefresh) {
		t.Errorf("空 Token 期望 ErrInvalidRefresh，实际: %v", err)
	}
}

func TestRefresh_OperatorRemoved(t *testing.T) {
	svc, _, jwtMgr := setupTestAuthService(nil)

	refresh, _ := jwtMgr.GenerateRefreshToken("ghost", "ghost@korhrd.co.kr")
	if _, err := svc.Refresh(context.Background(), refresh); !errors.Is(err, ErrInvalidRefresh) {
		t.Errorf("期望 ErrInvalidRefresh，实际: %v", err)
	}
}

// ── 登出测试 ──

func TestLogout_RevokesBothTokens(t *testing.T) {
	bl := newMockBlacklist()
	svc, _, jwtMgr := setupTestAuthService(bl)

	refresh, _ := jwtMgr.GenerateRefreshToken("op-1", "admin@korhrd.co.kr")
	refreshClaims, _ := jwtMgr.ParseToken(refresh)

	err := svc.Logout(context.Background(), "access-jti", time.Now().Add(10*time.Minute), refresh)
	if err != nil {
		t.Fatalf("Logout 应成功: %v", err)
	}
	if ttl, ok := bl.entries["access-jti"]; !ok || ttl <= 0 {
		t.Errorf("Access Token 应以正 TTL 吊销，实际 ttl=%v ok=%v", ttl, ok)
	}
	if _, ok := bl.entries[refreshClaims.ID]; !ok {
		t.Error("Refresh Token 应被吊销")
	}
}

func TestLogout_NoBlacklist(t *testing.T) {
	svc, _, _ := setupTestAuthService(nil)

	if err := svc.Logout(context.Background(), "jti", time.Now().Add(time.Minute), ""); err != nil {
		t.Errorf("无黑名单时 Logout 应直接成功: %v", err)
	}
}

func TestLogout_BlacklistError(t *testing.T) {
	bl := newMockBlacklist()
	bl.err = errMockDB
	svc, _, _ := setupTestAuthService(bl)

	if err := svc.Logout(context.Background(), "jti", time.Now().Add(time.Minute), ""); !errors.Is(err, errMockDB) {
		t.Errorf("期望透传黑名单错误，实际: %v", err)
	}
}

// ── 当前管理员 ──

func TestGetCurrentOperator(t *testing.T) {
	svc, opRepo, _ := setupTestAuthService(nil)
	createTestOperator(opRepo, "admin@korhrd.co.kr", "password123")

	op, err := svc.GetCurrentOperator(context.Background(), "op-1")
	if err != nil {
		t.Fatalf("GetCurrentOperator 失败: %v", err)
	}
	if op.Email != "admin@korhrd.co.kr" {
		t.Errorf("期望 Email=admin@korhrd.co.kr，实际=%s", op.Email)
	}

	if _, err := svc.GetCurrentOperator(context.Background(), "missing"); !errors.Is(err, ErrOperatorNotFound) {
		t.Errorf("期望 ErrOperatorNotFound，实际: %v", err)
	}
}

// ── 初始管理员 ──

func TestEnsureOperator_CreatesOnce(t *testing.T) {
	svc, opRepo, _ := setupTestAuthService(nil)
	boot := config.BootstrapConfig{Email: " Admin@KORHRD.co.kr ", Password: "bootstrap-pass", Name: "관리자"}

	if err := svc.EnsureOperator(context.Background(), boot); err != nil {
		t.Fatalf("EnsureOperator 失败: %v", err)
	}
	if len(opRepo.operators) != 1 {
		t.Fatalf("期望创建 1 个管理员，实际=%d", len(opRepo.operators))
	}

	op, _ := opRepo.GetByEmail(context.Background(), "admin@korhrd.co.kr")
	if op.Email != "admin@korhrd.co.kr" {
		t.Errorf("邮箱应规范化为小写，实际=%s", op.Email)
	}
	if bcrypt.CompareHashAndPassword([]byte(op.PasswordHash), []byte("bootstrap-pass")) != nil {
		t.Error("密码哈希不匹配")
	}

	// 再次调用不覆盖已有账号
	boot.Password = "another-password"
	if err := svc.EnsureOperator(context.Background(), boot); err != nil {
		t.Fatalf("第二次 EnsureOperator 失败: %v", err)
	}
	if len(opRepo.operators) != 1 {
		t.Errorf("不应重复创建，实际=%d", len(opRepo.operators))
	}
	if bcrypt.CompareHashAndPassword([]byte(op.PasswordHash), []byte("bootstrap-pass")) != nil {
		t.Error("已有账号的密码不应被修改")
	}
}

func TestEnsureOperator_EmptyEmailSkips(t *testing.T) {
	svc, opRepo, _ := setupTestAuthService(nil)

	if err := svc.EnsureOperator(context.Background(), config.BootstrapConfig{}); err != nil {
		t.Fatalf("空配置应跳过: %v", err)
	}
	if len(opRepo.operators) != 0 {
		t.Errorf("不应创建管理员，实际=%d", len(opRepo.operators))
	}
}
