// Package client 通过 HTTP API 访问상담 신청服务。
//
// Client 同时满足 intake.Store、admin.LeadStore 与 admin.IdentityProvider，
// 会话 Cookie 保存在内存 CookieJar 中，随进程结束失效。
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/bp4sp4/korhrd-landing/internal/admin"
	"github.com/bp4sp4/korhrd-landing/internal/dto"
	"github.com/bp4sp4/korhrd-landing/internal/intake"
	"github.com/bp4sp4/korhrd-landing/internal/model"
)

var (
	_ intake.Store           = (*Client)(nil)
	_ admin.LeadStore        = (*Client)(nil)
	_ admin.IdentityProvider = (*Client)(nil)
)

// ErrSessionRequired 管理接口返回未认证或被重定向到后台根路径
var ErrSessionRequired = errors.New("admin session required")

// APIError 服务端返回的错误响应
type APIError struct {
	Status  int
	Code    int
	Message string
	Details string
}

func (e *APIError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s (%s)", e.Message, e.Details)
	}
	if e.Message == "" {
		return fmt.Sprintf("HTTP %d", e.Status)
	}
	return e.Message
}

// Option Client 可选配置
type Option func(*Client)

// WithHTTPClient 替换底层 http.Client；其 Jar 与 CheckRedirect 会被覆盖
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithAdminPath 服务端管理后台根路径，默认 /admin
func WithAdminPath(path string) Option {
	return func(c *Client) {
		if path != "" {
			c.adminPath = "/" + strings.Trim(path, "/")
		}
	}
}

// WithLogger 设置诊断日志
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Client 상담 신청 API 客户端
type Client struct {
	baseURL   string
	adminPath string
	http      *http.Client
	logger    *zap.Logger
}

// New 创建客户端
func New(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("client: base URL is required")
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}

	c := &Client{
		baseURL:   baseURL,
		adminPath: "/admin",
		http:      &http.Client{Timeout: 15 * time.Second},
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.http.Jar = jar
	// 管理后台网关以 302 拒绝无会话请求，不跟随
	c.http.CheckRedirect = func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}
	return c, nil
}

// ── intake.Store ──

// Insert 提交一条상담 신청；成功后回填 ID 与 created_at
// 枚举外的희망과정按「기타」+ 自由输入提交
func (c *Client) Insert(ctx context.Context, inq *model.Inquiry) error {
	req := dto.SubmitInquiryRequest{
		DesiredCourse:    inq.DesiredCourse,
		Education:        inq.Education,
		Name:             inq.Name,
		Contact:          inq.Contact,
		SpecialNotes:     inq.SpecialNotes,
		PrivacyAgreement: true,
	}
	if !intake.IsCourse(inq.DesiredCourse) {
		req.DesiredCourse = intake.OtherOption
		req.OtherCourse = inq.DesiredCourse
	}

	var resp dto.InquiryResponse
	if err := c.do(ctx, http.MethodPost, "/api/v1/inquiries", req, &resp); err != nil {
		return err
	}

	saved, err := fromResponse(resp)
	if err != nil {
		return err
	}
	inq.ID = saved.ID
	inq.CreatedAt = saved.CreatedAt
	return nil
}

// ── admin.LeadStore ──

// ListAll 全部记录，created_at 倒序
func (c *Client) ListAll(ctx context.Context) ([]model.Inquiry, error) {
	var list []dto.InquiryResponse
	if err := c.do(ctx, http.MethodGet, "/api/v1/inquiries", nil, &list); err != nil {
		return nil, err
	}

	out := make([]model.Inquiry, 0, len(list))
	for _, r := range list {
		inq, err := fromResponse(r)
		if err != nil {
			return nil, err
		}
		out = append(out, inq)
	}
	return out, nil
}

// DeleteByID 删除单条
func (c *Client) DeleteByID(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/v1/inquiries/%d", id), nil, nil)
}

// DeleteByIDs 按集合删除，服务端保证全部或全不
func (c *Client) DeleteByIDs(ctx context.Context, ids []int64) error {
	return c.do(ctx, http.MethodPost, "/api/v1/inquiries/batch-delete", dto.BatchDeleteRequest{IDs: ids}, nil)
}

// ── admin.IdentityProvider ──

// CurrentUser 当前会话的管理员
// Access Token 失效时用 Refresh Cookie 续期一次；仍无会话时返回 (nil, nil)
func (c *Client) CurrentUser(ctx context.Context) (*admin.Operator, error) {
	op, err := c.currentUser(ctx)
	if !errors.Is(err, ErrSessionRequired) {
		return op, err
	}

	var session dto.SessionResponse
	if err := c.do(ctx, http.MethodPost, "/api/v1/auth/refresh", nil, &session); err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && (apiErr.Status == http.StatusUnauthorized || apiErr.Status == http.StatusBadRequest) {
			return nil, nil
		}
		if errors.Is(err, ErrSessionRequired) {
			return nil, nil
		}
		return nil, err
	}
	return toOperator(session.Operator), nil
}

func (c *Client) currentUser(ctx context.Context) (*admin.Operator, error) {
	var op dto.OperatorResponse
	if err := c.do(ctx, http.MethodGet, "/api/v1/auth/user", nil, &op); err != nil {
		return nil, err
	}
	return toOperator(op), nil
}

// SignInWithPassword 邮箱密码登录，会话 Cookie 写入 Jar
func (c *Client) SignInWithPassword(ctx context.Context, email, password string) (*admin.Operator, error) {
	var session dto.SessionResponse
	err := c.do(ctx, http.MethodPost, "/api/v1/auth/login", dto.LoginRequest{Email: email, Password: password}, &session)
	if err != nil {
		return nil, err
	}
	c.logger.Debug("로그인 완료", zap.String("operator_id", session.Operator.ID))
	return toOperator(session.Operator), nil
}

// SignOut 退出登录
func (c *Client) SignOut(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/v1/auth/logout", nil, nil)
}

// ── 导出 ──

// Export 下载 .xlsx 导出文件写入 w，返回服务端建议的文件名
func (c *Client) Export(ctx context.Context, w io.Writer) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+c.adminPath+"/export", nil)
	if err != nil {
		return "", err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", c.readError(resp)
	}
	if _, err := io.Copy(w, resp.Body); err != nil {
		return "", err
	}
	return attachmentName(resp.Header.Get("Content-Disposition")), nil
}

// ── 内部 ──

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Details string          `json:"details"`
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("请求失败", zap.String("method", method), zap.String("path", path), zap.Error(err))
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return c.readError(resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("client: decode response: %w", err)
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}
	return json.Unmarshal(env.Data, out)
}

// readError 302（后台网关）与 401 均视为无会话；401 保留服务端文案
func (c *Client) readError(resp *http.Response) error {
	if resp.StatusCode == http.StatusFound {
		return ErrSessionRequired
	}

	apiErr := &APIError{Status: resp.StatusCode}
	var env envelope
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&env); err == nil {
		apiErr.Code = env.Code
		apiErr.Message = env.Message
		apiErr.Details = env.Details
	}

	if resp.StatusCode == http.StatusUnauthorized {
		return fmt.Errorf("%w: %w", ErrSessionRequired, apiErr)
	}
	return apiErr
}

func fromResponse(r dto.InquiryResponse) (model.Inquiry, error) {
	createdAt, err := time.Parse(time.RFC3339, r.CreatedAt)
	if err != nil {
		return model.Inquiry{}, fmt.Errorf("client: invalid created_at %q: %w", r.CreatedAt, err)
	}
	return model.Inquiry{
		ID:            r.ID,
		DesiredCourse: r.DesiredCourse,
		Education:     r.Education,
		Name:          r.Name,
		Contact:       r.Contact,
		SpecialNotes:  r.SpecialNotes,
		CreatedAt:     createdAt,
	}, nil
}

func toOperator(r dto.OperatorResponse) *admin.Operator {
	return &admin.Operator{ID: r.ID, Email: r.Email, Name: r.Name}
}

// attachmentName 解析 Content-Disposition 中的 filename*=UTF-8''...
func attachmentName(header string) string {
	const marker = "filename*=UTF-8''"
	i := strings.Index(header, marker)
	if i < 0 {
		return ""
	}
	name := header[i+len(marker):]
	if j := strings.IndexByte(name, ';'); j >= 0 {
		name = name[:j]
	}
	if decoded, err := url.PathUnescape(name); err == nil {
		return decoded
	}
	return name
}
