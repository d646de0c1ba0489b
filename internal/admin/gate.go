package admin

import (
	"context"
	"errors"

	"go.uber.org/zap"
)

const (
	MsgCredentialsRequired = "이메일과 비밀번호를 입력해주세요."
	MsgLoginFailed         = "로그인에 실패했습니다. 이메일과 비밀번호를 확인해주세요."
)

var (
	ErrCredentialsRequired = errors.New("email and password are required")
	ErrLoginInFlight       = errors.New("login already in flight")
	ErrLoginFailed         = errors.New("login failed")
)

// Gate 管理员会话网关：维护 checking/authenticated/anonymous 阶段，
// 认证成功时驱动 Table 拉取数据
type Gate struct {
	ws       *Workspace
	idp      IdentityProvider
	table    *Table
	prompter Prompter
	logger   *zap.Logger
}

// NewGate 创建网关；logger 允许为 nil
func NewGate(ws *Workspace, idp IdentityProvider, table *Table, prompter Prompter, logger *zap.Logger) *Gate {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Gate{ws: ws, idp: idp, table: table, prompter: prompter, logger: logger}
}

// CheckExistingSession 启动时检查已有会话
// 完成前阶段始终为 checking，不会先显示登录框
func (g *Gate) CheckExistingSession(ctx context.Context) error {
	g.ws.mu.Lock()
	g.ws.phase = PhaseChecking
	g.ws.mu.Unlock()

	op, err := g.idp.CurrentUser(ctx)

	g.ws.mu.Lock()
	if err != nil || op == nil {
		g.ws.phase = PhaseAnonymous
		g.ws.operator = nil
		g.ws.mu.Unlock()
		if err != nil {
			g.logger.Warn("세션 확인 실패", zap.Error(err))
		}
		return err
	}
	g.ws.phase = PhaseAuthenticated
	g.ws.operator = op
	g.ws.mu.Unlock()

	return g.table.FetchAll(ctx)
}

// Login 邮箱密码登录
// 任一字段为空时本地拒绝，不发起请求；失败只给出统一提示，不区分邮箱或密码错误
func (g *Gate) Login(ctx context.Context, email, password string) error {
	g.ws.mu.Lock()
	if g.ws.authLoading {
		g.ws.mu.Unlock()
		return ErrLoginInFlight
	}
	g.ws.email, g.ws.password = email, password
	if email == "" || password == "" {
		g.ws.mu.Unlock()
		g.prompter.Notify(LevelError, MsgCredentialsRequired)
		return ErrCredentialsRequired
	}
	g.ws.authLoading = true
	g.ws.mu.Unlock()

	op, err := g.idp.SignInWithPassword(ctx, email, password)

	g.ws.mu.Lock()
	g.ws.authLoading = false
	if err != nil || op == nil {
		g.ws.mu.Unlock()
		g.logger.Warn("로그인 실패", zap.String("email", email), zap.Error(err))
		g.prompter.Notify(LevelError, MsgLoginFailed)
		return ErrLoginFailed
	}
	g.ws.phase = PhaseAuthenticated
	g.ws.operator = op
	g.ws.email, g.ws.password = "", ""
	g.ws.mu.Unlock()

	g.logger.Info("로그인 성공", zap.String("operator_id", op.ID))
	return g.table.FetchAll(ctx)
}

// Logout 退出登录
// 失败只记录日志，状态保持不变
func (g *Gate) Logout(ctx context.Context) error {
	if err := g.idp.SignOut(ctx); err != nil {
		g.logger.Error("로그아웃 실패", zap.Error(err))
		return err
	}

	g.ws.mu.Lock()
	g.ws.phase = PhaseAnonymous
	g.ws.operator = nil
	g.ws.resetLeadsLocked()
	g.ws.mu.Unlock()
	return nil
}
