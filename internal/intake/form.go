package intake

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/bp4sp4/korhrd-landing/internal/model"
)

// 表单字段名
const (
	FieldDesiredCourse = "desiredCourse"
	FieldOtherCourse   = "otherCourse"
	FieldEducation     = "education"
	FieldName          = "name"
	FieldContact       = "contact"
	FieldSpecialNotes  = "specialNotes"
	FieldConsent       = "privacyAgreement"
)

// 面向访客的提示文案
const (
	MsgNameRequired    = "이름을 입력해주세요."
	MsgContactRequired = "연락처를 입력해주세요."
	MsgCourseRequired  = "희망과정을 선택해주세요."
	MsgOtherRequired   = "기타 과정을 선택하셨습니다. 과정명을 입력해주세요."
	MsgConsentRequired = "개인정보 수집 및 이용에 동의해주세요."
	MsgSubmitSuccess   = "상담 신청이 완료되었습니다. 빠른 시일 내에 연락드리겠습니다."
	MsgSubmitFailed    = "상담 신청 중 오류가 발생했습니다. 다시 시도해주세요."
)

var (
	ErrUnknownField   = errors.New("unknown form field")
	ErrSubmitInFlight = errors.New("submission already in flight")
	ErrSubmitFailed   = errors.New("inquiry insert failed")
)

// ValidationError 本地校验失败，提交前即返回，不产生任何写入
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Store 상담 신청的写入能力：单条插入，要么全部成功要么无副作用
type Store interface {
	Insert(ctx context.Context, inq *model.Inquiry) error
}

// StoreFunc 让普通函数满足 Store
type StoreFunc func(ctx context.Context, inq *model.Inquiry) error

// Insert 调用 f
func (f StoreFunc) Insert(ctx context.Context, inq *model.Inquiry) error { return f(ctx, inq) }

// Status 提交状态机：idle → submitting → {success, error}
type Status int

const (
	StatusIdle Status = iota
	StatusSubmitting
	StatusSuccess
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusSubmitting:
		return "submitting"
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Draft 访客正在填写的表单
type Draft struct {
	DesiredCourse string
	Education     string
	Name          string
	Contact       string
	SpecialNotes  string
}

// Option Form 可选配置
type Option func(*Form)

// WithLogger 设置诊断日志
func WithLogger(logger *zap.Logger) Option {
	return func(f *Form) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// WithClock 设置提交时间来源
func WithClock(now func() time.Time) Option {
	return func(f *Form) {
		if now != nil {
			f.now = now
		}
	}
}

// Form 상담 신청表单控制器
//
// 锁只保护状态变更，远程写入期间不持有：提交进行中仍可读取状态或继续编辑。
type Form struct {
	store  Store
	logger *zap.Logger
	now    func() time.Time

	mu          sync.Mutex
	draft       Draft
	otherCourse string
	consent     bool
	status      Status
	message     string
}

// NewForm 创建空白表单
func NewForm(store Store, opts ...Option) *Form {
	f := &Form{
		store:  store,
		logger: zap.NewNop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// UpdateField 按字段名写入输入值
// contact 实时格式化；desiredCourse 改为非「기타」时清空 otherCourse
func (f *Form) UpdateField(name, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch name {
	case FieldContact:
		f.draft.Contact = NormalizeContact(value)
	case FieldDesiredCourse:
		f.draft.DesiredCourse = value
		if value != OtherOption {
			f.otherCourse = ""
		}
	case FieldOtherCourse:
		f.otherCourse = value
	case FieldEducation:
		f.draft.Education = value
	case FieldName:
		f.draft.Name = value
	case FieldSpecialNotes:
		f.draft.SpecialNotes = value
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, name)
	}

	f.touch()
	return nil
}

// SetConsent 개인정보 수집 및 이용 동의
func (f *Form) SetConsent(agreed bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.consent = agreed
	f.touch()
}

// touch 编辑使成功/失败展示态回到 idle；调用方需持有锁
func (f *Form) touch() {
	if f.status == StatusSuccess || f.status == StatusError {
		f.status = StatusIdle
		f.message = ""
	}
}

// Draft 当前草稿快照
func (f *Form) Draft() Draft {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.draft
}

// OtherCourse 当前「기타」过程名
func (f *Form) OtherCourse() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.otherCourse
}

// Consent 是否已同意隐私条款
func (f *Form) Consent() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.consent
}

// Status 当前提交状态
func (f *Form) Status() Status {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.status
}

// Message 最近一次提交产生的提示文案
func (f *Form) Message() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.message
}

// Submit 校验并写入一条상담 신청
//
// 校验失败返回 *ValidationError，不调用 Store；
// 上一次提交尚未结束时直接返回 ErrSubmitInFlight；
// 写入失败保留草稿并返回包裹了 ErrSubmitFailed 的错误，不自动重试。
func (f *Form) Submit(ctx context.Context) (*model.Inquiry, error) {
	f.mu.Lock()
	if f.status == StatusSubmitting {
		f.mu.Unlock()
		return nil, ErrSubmitInFlight
	}
	if verr := f.validate(); verr != nil {
		f.message = verr.Message
		f.mu.Unlock()
		return nil, verr
	}

	inq := f.record()
	f.status = StatusSubmitting
	f.message = ""
	f.mu.Unlock()

	err := f.store.Insert(ctx, inq)

	f.mu.Lock()
	defer f.mu.Unlock()

	if err != nil {
		f.logger.Error("상담 신청 저장 실패", zap.Error(err))
		f.status = StatusError
		f.message = MsgSubmitFailed
		return nil, fmt.Errorf("%w: %w", ErrSubmitFailed, err)
	}

	f.draft = Draft{}
	f.otherCourse = ""
	f.consent = false
	f.status = StatusSuccess
	f.message = MsgSubmitSuccess

	f.logger.Info("상담 신청 저장 완료",
		zap.Int64("id", inq.ID),
		zap.String("desired_course", inq.DesiredCourse),
	)
	return inq, nil
}

// validate 按固定顺序校验，返回第一个失败项；调用方需持有锁
func (f *Form) validate() *ValidationError {
	switch {
	case strings.TrimSpace(f.draft.Name) == "":
		return &ValidationError{Field: FieldName, Message: MsgNameRequired}
	case strings.TrimSpace(f.draft.Contact) == "":
		return &ValidationError{Field: FieldContact, Message: MsgContactRequired}
	case f.draft.DesiredCourse == "":
		return &ValidationError{Field: FieldDesiredCourse, Message: MsgCourseRequired}
	case f.draft.DesiredCourse == OtherOption && strings.TrimSpace(f.otherCourse) == "":
		return &ValidationError{Field: FieldOtherCourse, Message: MsgOtherRequired}
	case !f.consent:
		return &ValidationError{Field: FieldConsent, Message: MsgConsentRequired}
	}
	return nil
}

// record 由草稿构造待写入记录；调用方需持有锁
func (f *Form) record() *model.Inquiry {
	course := f.draft.DesiredCourse
	if course == OtherOption {
		course = f.otherCourse
	}
	return &model.Inquiry{
		DesiredCourse: course,
		Education:     f.draft.Education,
		Name:          f.draft.Name,
		Contact:       f.draft.Contact,
		SpecialNotes:  f.draft.SpecialNotes,
		CreatedAt:     f.now(),
	}
}
