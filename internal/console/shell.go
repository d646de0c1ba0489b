package console

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/bp4sp4/korhrd-landing/internal/admin"
)

const (
	msgLoginRequired  = "로그인이 필요합니다. login 명령을 사용하세요."
	msgUnknownCommand = "알 수 없는 명령입니다. help 를 입력하세요."
	msgNoLeads        = "신청 내역이 없습니다."
	dateLayout        = "2006-01-02 15:04"
)

// KST 서울 표준시；tzdata 缺失时也可用
var KST = time.FixedZone("KST", 9*60*60)

// Exporter 下载导出文件
type Exporter interface {
	Export(ctx context.Context, w io.Writer) (string, error)
}

// ShellOption Shell 可选配置
type ShellOption func(*Shell)

// WithClock 设置「오늘」计数使用的时钟
func WithClock(now func() time.Time) ShellOption {
	return func(s *Shell) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLocation 设置时间显示时区，默认 KST
func WithLocation(loc *time.Location) ShellOption {
	return func(s *Shell) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// WithExportDir 导出文件保存目录，默认当前目录
func WithExportDir(dir string) ShellOption {
	return func(s *Shell) {
		if dir != "" {
			s.exportDir = dir
		}
	}
}

// Shell 管理员交互命令行
type Shell struct {
	term     *Terminal
	ws       *admin.Workspace
	gate     *admin.Gate
	table    *admin.Table
	exporter Exporter

	now       func() time.Time
	loc       *time.Location
	exportDir string
}

// NewShell 创建命令行；exporter 为 nil 时 export 命令不可用
func NewShell(term *Terminal, ws *admin.Workspace, gate *admin.Gate, table *admin.Table, exporter Exporter, opts ...ShellOption) *Shell {
	s := &Shell{
		term:      term,
		ws:        ws,
		gate:      gate,
		table:     table,
		exporter:  exporter,
		now:       time.Now,
		loc:       KST,
		exportDir: ".",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run 检查已有会话后进入命令循环，直到 quit 或输入结束
func (s *Shell) Run(ctx context.Context) error {
	s.term.Println(titleStyle.Render("상담 신청 관리"))
	s.term.Println(mutedStyle.Render("세션 확인 중..."))
	if err := s.gate.CheckExistingSession(ctx); err != nil {
		s.term.Notify(admin.LevelError, "세션 확인 실패: "+err.Error())
	}
	if s.ws.Authorized() {
		s.printWelcome()
		s.printList()
	} else {
		s.term.Println(msgLoginRequired)
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		line, err := s.term.ReadLine(s.prompt())
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if quit := s.Exec(ctx, line); quit {
			return nil
		}
	}
}

func (s *Shell) prompt() string {
	if snap := s.ws.Snapshot(); snap.Operator != nil {
		return snap.Operator.Email + "> "
	}
	return "> "
}

// Exec 执行一条命令；返回 true 表示退出
func (s *Shell) Exec(ctx context.Context, line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}
	cmd, args := strings.ToLower(fields[0]), fields[1:]

	switch cmd {
	case "quit", "exit", "q":
		return true
	case "help", "?":
		s.printHelp()
		return false
	case "login":
		s.login(ctx, args)
		return false
	}

	if !s.ws.Authorized() {
		s.term.Notify(admin.LevelInfo, msgLoginRequired)
		return false
	}

	switch cmd {
	case "logout":
		if err := s.gate.Logout(ctx); err != nil {
			s.term.Notify(admin.LevelError, "로그아웃 실패: "+err.Error())
			return false
		}
		s.term.Notify(admin.LevelInfo, "로그아웃되었습니다.")
	case "list", "ls":
		s.printList()
	case "refresh", "reload":
		if s.table.FetchAll(ctx) == nil {
			s.printList()
		}
	case "stats":
		s.printStats()
	case "page":
		s.page(args)
	case "next", "n":
		if s.table.NextPage() {
			s.printList()
		} else {
			s.term.Notify(admin.LevelInfo, "마지막 페이지입니다.")
		}
	case "prev", "p":
		if s.table.PrevPage() {
			s.printList()
		} else {
			s.term.Notify(admin.LevelInfo, "첫 페이지입니다.")
		}
	case "select", "sel":
		s.toggle(args)
	case "select-all", "all":
		s.table.ToggleSelectAllOnPage()
		s.printList()
	case "delete", "del":
		s.deleteOne(ctx, args)
	case "delete-selected", "rm":
		if _, err := s.table.DeleteSelected(ctx); err == nil {
			s.printList()
		}
	case "export":
		s.export(ctx, args)
	default:
		s.term.Notify(admin.LevelError, msgUnknownCommand)
	}
	return false
}

// ── 命令 ──

func (s *Shell) login(ctx context.Context, args []string) {
	if s.ws.Authorized() {
		s.term.Notify(admin.LevelInfo, "이미 로그인되어 있습니다.")
		return
	}

	var email string
	if len(args) > 0 {
		email = args[0]
	} else {
		v, err := s.term.ReadLine("이메일: ")
		if err != nil {
			return
		}
		email = strings.TrimSpace(v)
	}
	password, err := s.term.ReadSecret("비밀번호: ")
	if err != nil {
		return
	}

	if err := s.gate.Login(ctx, email, password); err != nil {
		return
	}
	s.printWelcome()
	s.printList()
}

func (s *Shell) page(args []string) {
	if len(args) != 1 {
		s.term.Notify(admin.LevelError, "사용법: page <번호>")
		return
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || !s.table.GoToPage(n) {
		s.term.Notify(admin.LevelError, fmt.Sprintf("1-%d 사이의 페이지를 입력해주세요.", max(s.table.TotalPages(), 1)))
		return
	}
	s.printList()
}

func (s *Shell) toggle(args []string) {
	if len(args) == 0 {
		s.term.Notify(admin.LevelError, "사용법: select <번호> [번호...]")
		return
	}
	ids, ok := s.parseIDs(args)
	if !ok {
		return
	}
	for _, id := range ids {
		s.table.ToggleSelect(id)
	}
	s.printList()
}

func (s *Shell) deleteOne(ctx context.Context, args []string) {
	if len(args) != 1 {
		s.term.Notify(admin.LevelError, "사용법: delete <번호>")
		return
	}
	ids, ok := s.parseIDs(args)
	if !ok {
		return
	}
	if err := s.table.DeleteOne(ctx, ids[0]); err == nil {
		s.printList()
	}
}

func (s *Shell) parseIDs(args []string) ([]int64, bool) {
	ids := make([]int64, 0, len(args))
	for _, a := range args {
		id, err := strconv.ParseInt(a, 10, 64)
		if err != nil || id <= 0 {
			s.term.Notify(admin.LevelError, fmt.Sprintf("잘못된 번호입니다: %s", a))
			return nil, false
		}
		ids = append(ids, id)
	}
	return ids, true
}

func (s *Shell) export(ctx context.Context, args []string) {
	if s.exporter == nil {
		s.term.Notify(admin.LevelError, "내보내기를 사용할 수 없습니다.")
		return
	}
	dir := s.exportDir
	if len(args) > 0 {
		dir = args[0]
	}

	var buf bytes.Buffer
	name, err := s.exporter.Export(ctx, &buf)
	if err != nil {
		s.term.Notify(admin.LevelError, "내보내기 실패: "+err.Error())
		return
	}
	if name == "" {
		name = "상담신청_" + s.now().In(s.loc).Format("20060102") + ".xlsx"
	}

	path := filepath.Join(dir, filepath.Base(name))
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		s.term.Notify(admin.LevelError, "파일 저장 실패: "+err.Error())
		return
	}
	s.term.Notify(admin.LevelSuccess, "저장되었습니다: "+path)
}

// ── 输出 ──

func (s *Shell) printWelcome() {
	if snap := s.ws.Snapshot(); snap.Operator != nil {
		s.term.Notify(admin.LevelSuccess, fmt.Sprintf("%s 님, 환영합니다.", displayName(snap.Operator)))
	}
}

func displayName(op *admin.Operator) string {
	if op.Name != "" {
		return op.Name
	}
	return op.Email
}

func (s *Shell) printStats() {
	s.term.Printf("총 신청: %d건\n", s.table.Total())
	s.term.Printf("오늘 신청: %d건\n", s.table.TodayCount(s.now().In(s.loc)))
}

func (s *Shell) printList() {
	if s.table.Loading() {
		s.term.Println(mutedStyle.Render("불러오는 중..."))
		return
	}

	leads := s.table.VisibleLeads()
	if len(leads) == 0 {
		s.term.Println(mutedStyle.Render(msgNoLeads))
		return
	}

	rows := make([][]string, 0, len(leads))
	for _, inq := range leads {
		mark := "[ ]"
		if s.table.IsSelected(inq.ID) {
			mark = "[x]"
		}
		rows = append(rows, []string{
			mark,
			strconv.FormatInt(inq.ID, 10),
			inq.CreatedAt.In(s.loc).Format(dateLayout),
			inq.Name,
			inq.Contact,
			inq.DesiredCourse,
			inq.Education,
			truncate(inq.SpecialNotes, 24),
		})
	}
	s.term.Printf("%s", renderTable(
		[]string{"", "번호", "신청일시", "이름", "연락처", "희망과정", "최종학력", "특이사항"},
		rows,
	))

	snap := s.ws.Snapshot()
	s.term.Println(mutedStyle.Render(fmt.Sprintf(
		"페이지 %d/%d · 총 %d건 · 오늘 %d건 · 선택 %d건",
		snap.Page, max(snap.TotalPages, 1), snap.Total,
		s.table.TodayCount(s.now().In(s.loc)), len(snap.Selected),
	)))
}

func (s *Shell) printHelp() {
	s.term.Printf("%s", renderTable([]string{"명령", "설명"}, [][]string{
		{"login [이메일]", "로그인"},
		{"logout", "로그아웃"},
		{"list | ls", "현재 페이지 보기"},
		{"refresh", "다시 불러오기"},
		{"page <n> | next | prev", "페이지 이동"},
		{"select <번호...>", "선택 토글"},
		{"select-all", "현재 페이지 전체 선택/해제"},
		{"delete <번호>", "한 건 삭제"},
		{"delete-selected | rm", "선택 항목 삭제"},
		{"export [디렉터리]", "엑셀로 내보내기"},
		{"stats", "총/오늘 신청 건수"},
		{"quit", "종료"},
	}))
}
