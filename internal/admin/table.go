package admin

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/bp4sp4/korhrd-landing/internal/model"
)

const (
	MsgFetchFailed       = "데이터를 불러오는 중 오류가 발생했습니다."
	MsgConfirmDeleteOne  = "이 상담 신청을 삭제하시겠습니까?"
	MsgConfirmDeleteMany = "선택한 %d건의 상담 신청을 삭제하시겠습니까?"
	MsgNothingSelected   = "삭제할 항목을 선택해주세요."
	MsgDeleted           = "삭제되었습니다."
	MsgDeletedCount      = "%d건이 삭제되었습니다."
	MsgDeleteFailed      = "삭제 중 오류가 발생했습니다."
)

var (
	ErrCancelled       = errors.New("cancelled by operator")
	ErrNothingSelected = errors.New("no inquiries selected")
)

// Table 신청 내역表格：全量拉取、前端分页、单选/整页多选与删除
// 是否已认证由 Gate 把关，这里不再检查
type Table struct {
	ws       *Workspace
	store    LeadStore
	prompter Prompter
	logger   *zap.Logger
}

// NewTable 创建表格；logger 允许为 nil
func NewTable(ws *Workspace, store LeadStore, prompter Prompter, logger *zap.Logger) *Table {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Table{ws: ws, store: store, prompter: prompter, logger: logger}
}

// ────────────────────── FetchAll ──────────────────────

// FetchAll 重新拉取全部记录
// 无论成功与否都回到第 1 页并清空选择；失败时保留上一次已加载的列表
func (t *Table) FetchAll(ctx context.Context) error {
	t.ws.mu.Lock()
	t.ws.loading = true
	t.ws.mu.Unlock()

	leads, err := t.store.ListAll(ctx)

	t.ws.mu.Lock()
	t.ws.loading = false
	t.ws.page = 1
	t.ws.selection = make(map[int64]struct{})
	if err == nil {
		t.ws.leads = append([]model.Inquiry(nil), leads...)
	}
	count := len(t.ws.leads)
	t.ws.mu.Unlock()

	if err != nil {
		t.logger.Error("상담 신청 목록 조회 실패", zap.Error(err))
		t.prompter.Notify(LevelError, fetchErrorMessage(err))
		return err
	}

	t.logger.Debug("상담 신청 목록 로드 완료", zap.Int("count", count))
	return nil
}

func fetchErrorMessage(err error) string {
	if err == nil || err.Error() == "" {
		return MsgFetchFailed
	}
	return "오류: " + err.Error()
}

// ────────────────────── 读取 ──────────────────────

// Loading 是否正在拉取
func (t *Table) Loading() bool {
	t.ws.mu.Lock()
	defer t.ws.mu.Unlock()
	return t.ws.loading
}

// Leads 全部已加载记录
func (t *Table) Leads() []model.Inquiry {
	t.ws.mu.Lock()
	defer t.ws.mu.Unlock()
	return append([]model.Inquiry(nil), t.ws.leads...)
}

// Total 총 신청 건수
func (t *Table) Total() int {
	t.ws.mu.Lock()
	defer t.ws.mu.Unlock()
	return len(t.ws.leads)
}

// TodayCount 오늘 신청 건수：created_at 在 now 所在时区的日历日与今天相同
func (t *Table) TodayCount(now time.Time) int {
	t.ws.mu.Lock()
	defer t.ws.mu.Unlock()

	y, m, d := now.Date()
	n := 0
	for _, inq := range t.ws.leads {
		cy, cm, cd := inq.CreatedAt.In(now.Location()).Date()
		if cy == y && cm == m && cd == d {
			n++
		}
	}
	return n
}

// ────────────────────── 分页 ──────────────────────

// Page 当前页码（从 1 开始）
func (t *Table) Page() int {
	t.ws.mu.Lock()
	defer t.ws.mu.Unlock()
	return t.ws.page
}

// TotalPages ceil(记录数 / PageSize)
func (t *Table) TotalPages() int {
	t.ws.mu.Lock()
	defer t.ws.mu.Unlock()
	return totalPages(len(t.ws.leads))
}

// CanPrev 是否可以翻到上一页
func (t *Table) CanPrev() bool {
	t.ws.mu.Lock()
	defer t.ws.mu.Unlock()
	return t.ws.page > 1
}

// CanNext 是否可以翻到下一页
func (t *Table) CanNext() bool {
	t.ws.mu.Lock()
	defer t.ws.mu.Unlock()
	return t.ws.page < totalPages(len(t.ws.leads))
}

// GoToPage 跳转到指定页；越界时不变并返回 false
// 翻页只改变可见切片，不重新拉取
func (t *Table) GoToPage(page int) bool {
	t.ws.mu.Lock()
	defer t.ws.mu.Unlock()

	last := totalPages(len(t.ws.leads))
	if last == 0 {
		last = 1
	}
	if page < 1 || page > last {
		return false
	}
	t.ws.page = page
	return true
}

// NextPage 下一页
func (t *Table) NextPage() bool { return t.GoToPage(t.Page() + 1) }

// PrevPage 上一页
func (t *Table) PrevPage() bool { return t.GoToPage(t.Page() - 1) }

// VisibleLeads 当前页的记录
func (t *Table) VisibleLeads() []model.Inquiry {
	t.ws.mu.Lock()
	defer t.ws.mu.Unlock()
	return append([]model.Inquiry(nil), t.visibleLocked()...)
}

func (t *Table) visibleLocked() []model.Inquiry {
	start := (t.ws.page - 1) * PageSize
	if start >= len(t.ws.leads) {
		return nil
	}
	end := start + PageSize
	if end > len(t.ws.leads) {
		end = len(t.ws.leads)
	}
	return t.ws.leads[start:end]
}

// ────────────────────── 选择 ──────────────────────

// ToggleSelect 切换单条记录的选中状态
func (t *Table) ToggleSelect(id int64) {
	t.ws.mu.Lock()
	defer t.ws.mu.Unlock()

	if _, ok := t.ws.selection[id]; ok {
		delete(t.ws.selection, id)
		return
	}
	t.ws.selection[id] = struct{}{}
}

// ToggleSelectAllOnPage 当前页已全选时清空选择，否则恰好选中当前页的记录
func (t *Table) ToggleSelectAllOnPage() {
	t.ws.mu.Lock()
	defer t.ws.mu.Unlock()

	visible := t.visibleLocked()
	allSelected := true
	for _, inq := range visible {
		if _, ok := t.ws.selection[inq.ID]; !ok {
			allSelected = false
			break
		}
	}

	t.ws.selection = make(map[int64]struct{}, len(visible))
	if allSelected {
		return
	}
	for _, inq := range visible {
		t.ws.selection[inq.ID] = struct{}{}
	}
}

// IsSelected 是否已选中
func (t *Table) IsSelected(id int64) bool {
	t.ws.mu.Lock()
	defer t.ws.mu.Unlock()
	_, ok := t.ws.selection[id]
	return ok
}

// Selected 已选中的 ID（升序）
func (t *Table) Selected() []int64 {
	t.ws.mu.Lock()
	defer t.ws.mu.Unlock()
	return t.ws.selectedLocked()
}

// ────────────────────── 删除 ──────────────────────

// DeleteOne 确认后删除单条记录并重新拉取
func (t *Table) DeleteOne(ctx context.Context, id int64) error {
	if !t.prompter.Confirm(MsgConfirmDeleteOne) {
		return ErrCancelled
	}

	if err := t.store.DeleteByID(ctx, id); err != nil {
		t.logger.Error("상담 신청 삭제 실패", zap.Int64("id", id), zap.Error(err))
		t.prompter.Notify(LevelError, deleteErrorMessage(err))
		return err
	}

	fetchErr := t.FetchAll(ctx)
	t.prompter.Notify(LevelSuccess, MsgDeleted)
	return fetchErr
}

// DeleteSelected 确认后一次性删除全部已选记录
// 失败时列表与选择保持不变
func (t *Table) DeleteSelected(ctx context.Context) (int, error) {
	ids := t.Selected()
	if len(ids) == 0 {
		t.prompter.Notify(LevelInfo, MsgNothingSelected)
		return 0, ErrNothingSelected
	}

	if !t.prompter.Confirm(fmt.Sprintf(MsgConfirmDeleteMany, len(ids))) {
		return 0, ErrCancelled
	}

	if err := t.store.DeleteByIDs(ctx, ids); err != nil {
		t.logger.Error("상담 신청 일괄 삭제 실패", zap.Int("count", len(ids)), zap.Error(err))
		t.prompter.Notify(LevelError, deleteErrorMessage(err))
		return 0, err
	}

	fetchErr := t.FetchAll(ctx)
	t.prompter.Notify(LevelSuccess, fmt.Sprintf(MsgDeletedCount, len(ids)))
	return len(ids), fetchErr
}

func deleteErrorMessage(err error) string {
	if err == nil || err.Error() == "" {
		return MsgDeleteFailed
	}
	return MsgDeleteFailed + " " + err.Error()
}
