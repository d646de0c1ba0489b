// Package admin 상담 신청 관리 워크플로：管理员会话网关与신청 내역表格。
//
// Gate 与 Table 共享同一个 Workspace；所有状态变更只能经由二者的方法发生。
package admin

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/bp4sp4/korhrd-landing/internal/model"
)

// PageSize 每页条数
const PageSize = 10

// Phase 会话阶段：checking → {authenticated, anonymous}
type Phase int

const (
	PhaseChecking Phase = iota
	PhaseAuthenticated
	PhaseAnonymous
)

func (p Phase) String() string {
	switch p {
	case PhaseChecking:
		return "checking"
	case PhaseAuthenticated:
		return "authenticated"
	case PhaseAnonymous:
		return "anonymous"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// Operator 已登录的管理员
type Operator struct {
	ID    string
	Email string
	Name  string
}

// IdentityProvider 身份提供方
type IdentityProvider interface {
	// CurrentUser 当前有效会话的管理员；无会话时返回 (nil, nil)
	CurrentUser(ctx context.Context) (*Operator, error)
	SignInWithPassword(ctx context.Context, email, password string) (*Operator, error)
	SignOut(ctx context.Context) error
}

// LeadStore 상담 신청记录的读取与删除能力
type LeadStore interface {
	// ListAll 按 created_at 倒序返回全部记录
	ListAll(ctx context.Context) ([]model.Inquiry, error)
	DeleteByID(ctx context.Context, id int64) error
	// DeleteByIDs 按集合删除，要么全部删除要么一条不删
	DeleteByIDs(ctx context.Context, ids []int64) error
}

// Level 提示级别
type Level int

const (
	LevelInfo Level = iota
	LevelSuccess
	LevelError
)

// Prompter 面向管理员的交互通道：确认与提示
type Prompter interface {
	Confirm(message string) bool
	Notify(level Level, message string)
}

// Workspace 管理工作区的共享状态容器
type Workspace struct {
	mu sync.Mutex

	phase       Phase
	operator    *Operator
	authLoading bool
	email       string
	password    string

	leads     []model.Inquiry
	loading   bool
	page      int
	selection map[int64]struct{}
}

// NewWorkspace 创建处于 checking 阶段的工作区
func NewWorkspace() *Workspace {
	return &Workspace{
		phase:     PhaseChecking,
		page:      1,
		selection: make(map[int64]struct{}),
	}
}

// Snapshot 工作区的只读快照
type Snapshot struct {
	Phase       Phase
	Operator    *Operator
	AuthLoading bool
	Loading     bool
	Total       int
	Page        int
	TotalPages  int
	Selected    []int64
}

// Snapshot 返回当前状态快照
func (w *Workspace) Snapshot() Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()

	var op *Operator
	if w.operator != nil {
		copied := *w.operator
		op = &copied
	}
	return Snapshot{
		Phase:       w.phase,
		Operator:    op,
		AuthLoading: w.authLoading,
		Loading:     w.loading,
		Total:       len(w.leads),
		Page:        w.page,
		TotalPages:  totalPages(len(w.leads)),
		Selected:    w.selectedLocked(),
	}
}

// Phase 当前会话阶段
func (w *Workspace) Phase() Phase {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.phase
}

// Authorized 是否已认证
func (w *Workspace) Authorized() bool {
	return w.Phase() == PhaseAuthenticated
}

// Credentials 登录框中保留的输入
func (w *Workspace) Credentials() (email, password string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.email, w.password
}

// resetLeadsLocked 清空记录与选择；调用方需持有锁
func (w *Workspace) resetLeadsLocked() {
	w.leads = nil
	w.page = 1
	w.selection = make(map[int64]struct{})
}

func (w *Workspace) selectedLocked() []int64 {
	ids := make([]int64, 0, len(w.selection))
	for id := range w.selection {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func totalPages(n int) int {
	return (n + PageSize - 1) / PageSize
}
