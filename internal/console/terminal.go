// Package console 运营终端：在 bufio 行输入之上驱动상담 신청表单与管理工作区。
package console

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/bp4sp4/korhrd-landing/internal/admin"
)

var _ admin.Prompter = (*Terminal)(nil)

// TerminalOption Terminal 可选配置
type TerminalOption func(*Terminal)

// WithSecretReader 设置不回显的密码读取方式；未设置时按普通行读取
func WithSecretReader(fn func() (string, error)) TerminalOption {
	return func(t *Terminal) {
		if fn != nil {
			t.secret = fn
		}
	}
}

// Terminal 行式输入输出，同时作为 admin.Prompter
type Terminal struct {
	in     *bufio.Reader
	out    io.Writer
	secret func() (string, error)
}

// NewTerminal 创建终端
func NewTerminal(in io.Reader, out io.Writer, opts ...TerminalOption) *Terminal {
	t := &Terminal{in: bufio.NewReader(in), out: out}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// ReadLine 输出提示并读取一行（去掉行尾换行）
// 输入结束且没有剩余内容时返回 io.EOF
func (t *Terminal) ReadLine(prompt string) (string, error) {
	if prompt != "" {
		fmt.Fprint(t.out, promptStyle.Render(prompt))
	}
	line, err := t.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// ReadSecret 读取密码
func (t *Terminal) ReadSecret(prompt string) (string, error) {
	if t.secret == nil {
		return t.ReadLine(prompt)
	}
	fmt.Fprint(t.out, promptStyle.Render(prompt))
	s, err := t.secret()
	fmt.Fprintln(t.out)
	return s, err
}

// Confirm y / yes / 예 / ㅇ 视为确认，其余（含读取失败）一律视为取消
func (t *Terminal) Confirm(message string) bool {
	answer, err := t.ReadLine(message + " [y/N] ")
	if err != nil {
		return false
	}
	return isYes(answer)
}

func isYes(answer string) bool {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes", "예", "ㅇ":
		return true
	default:
		return false
	}
}

// Notify 按级别着色输出一行提示
func (t *Terminal) Notify(level admin.Level, message string) {
	fmt.Fprintln(t.out, levelStyle(level).Render(message))
}

// Println 普通输出
func (t *Terminal) Println(a ...any) {
	fmt.Fprintln(t.out, a...)
}

// Printf 格式化输出
func (t *Terminal) Printf(format string, a ...any) {
	fmt.Fprintf(t.out, format, a...)
}
