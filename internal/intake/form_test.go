package intake

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/bp4sp4/korhrd-landing/internal/model"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// ── 测试辅助 ──

type recordingStore struct {
	mu      sync.Mutex
	calls   []model.Inquiry
	err     error
	nextID  int64
	block   chan struct{} // 非 nil 时 Insert 阻塞直到关闭
	entered chan struct{}
}

func (s *recordingStore) Insert(_ context.Context, inq *model.Inquiry) error {
	if s.entered != nil {
		close(s.entered)
	}
	if s.block != nil {
		<-s.block
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, *inq)
	if s.err != nil {
		return s.err
	}
	s.nextID++
	inq.ID = s.nextID
	return nil
}

func (s *recordingStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

var fixedNow = time.Date(2026, 10, 14, 10, 30, 0, 0, time.UTC)

func newTestForm(store Store) *Form {
	return NewForm(store, WithClock(func() time.Time { return fixedNow }))
}

func fillValid(t *testing.T, f *Form) {
	t.Helper()
	require.NoError(t, f.UpdateField(FieldName, "Kim"))
	require.NoError(t, f.UpdateField(FieldContact, "01012345678"))
	require.NoError(t, f.UpdateField(FieldDesiredCourse, "사회복지사 2급"))
	require.NoError(t, f.UpdateField(FieldEducation, "대학교 졸업"))
	f.SetConsent(true)
}

// ── UpdateField ──

func TestUpdateField_ContactNormalizedOnEveryKeystroke(t *testing.T) {
	f := newTestForm(&recordingStore{})

	typed := ""
	for _, r := range "01012345678" {
		typed = f.Draft().Contact + string(r)
		require.NoError(t, f.UpdateField(FieldContact, typed))
	}
	assert.Equal(t, "010-1234-5678", f.Draft().Contact)

	require.NoError(t, f.UpdateField(FieldContact, f.Draft().Contact+"9"))
	assert.Equal(t, "010-1234-5678", f.Draft().Contact, "超过 11 位应截断")
}

func TestUpdateField_NonOtherCourseClearsOtherCourse(t *testing.T) {
	f := newTestForm(&recordingStore{})

	require.NoError(t, f.UpdateField(FieldDesiredCourse, OtherOption))
	require.NoError(t, f.UpdateField(FieldOtherCourse, "평생교육사"))
	assert.Equal(t, "평생교육사", f.OtherCourse())

	require.NoError(t, f.UpdateField(FieldDesiredCourse, OtherOption))
	assert.Equal(t, "평생교육사", f.OtherCourse(), "重新选择기타不应清空")

	require.NoError(t, f.UpdateField(FieldDesiredCourse, "아동학사"))
	assert.Empty(t, f.OtherCourse())
}

func TestUpdateField_VerbatimFields(t *testing.T) {
	f := newTestForm(&recordingStore{})

	require.NoError(t, f.UpdateField(FieldName, "  홍길동 "))
	require.NoError(t, f.UpdateField(FieldSpecialNotes, "주말 상담 희망\n"))
	require.NoError(t, f.UpdateField(FieldEducation, "고등학교 졸업"))

	want := Draft{Name: "  홍길동 ", SpecialNotes: "주말 상담 희망\n", Education: "고등학교 졸업"}
	if diff := cmp.Diff(want, f.Draft()); diff != "" {
		t.Errorf("草稿不符 (-want +got):\n%s", diff)
	}
}

func TestUpdateField_UnknownField(t *testing.T) {
	f := newTestForm(&recordingStore{})

	err := f.UpdateField("email", "x@example.com")
	assert.ErrorIs(t, err, ErrUnknownField)
	assert.Equal(t, Draft{}, f.Draft())
}

// ── Submit：校验 ──

func TestSubmit_RequiredFieldsNeverInsert(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(f *Form)
		field  string
		msg    string
	}{
		{"이름 없음", func(f *Form) { _ = f.UpdateField(FieldName, "   ") }, FieldName, MsgNameRequired},
		{"연락처 없음", func(f *Form) { _ = f.UpdateField(FieldContact, "abc") }, FieldContact, MsgContactRequired},
		{"희망과정 없음", func(f *Form) { _ = f.UpdateField(FieldDesiredCourse, "") }, FieldDesiredCourse, MsgCourseRequired},
		{"기타 과정명 없음", func(f *Form) { _ = f.UpdateField(FieldDesiredCourse, OtherOption) }, FieldOtherCourse, MsgOtherRequired},
		{"동의 안 함", func(f *Form) { f.SetConsent(false) }, FieldConsent, MsgConsentRequired},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := &recordingStore{}
			f := newTestForm(store)
			fillValid(t, f)
			tc.mutate(f)
			before := f.Draft()

			inq, err := f.Submit(context.Background())
			require.Error(t, err)
			assert.Nil(t, inq)

			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tc.field, verr.Field)
			assert.Equal(t, tc.msg, verr.Message)
			assert.Equal(t, tc.msg, f.Message())

			assert.Zero(t, store.count(), "校验失败不应调用 Insert")
			assert.Equal(t, before, f.Draft(), "校验失败不应修改草稿")
			assert.Equal(t, StatusIdle, f.Status())
		})
	}
}

func TestSubmit_ValidationOrder(t *testing.T) {
	f := newTestForm(&recordingStore{})

	_, err := f.Submit(context.Background())
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, FieldName, verr.Field, "全部为空时应先报告이름")

	require.NoError(t, f.UpdateField(FieldName, "Kim"))
	_, err = f.Submit(context.Background())
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, FieldContact, verr.Field)
}

// ── Submit：成功 ──

func TestSubmit_Scenario(t *testing.T) {
	store := &recordingStore{}
	f := newTestForm(store)
	fillValid(t, f)

	inq, err := f.Submit(context.Background())
	require.NoError(t, err)
	require.NotNil(t, inq)

	require.Equal(t, 1, store.count(), "应恰好调用一次 Insert")
	want := model.Inquiry{
		DesiredCourse: "사회복지사 2급",
		Education:     "대학교 졸업",
		Name:          "Kim",
		Contact:       "010-1234-5678",
		CreatedAt:     fixedNow,
	}
	if diff := cmp.Diff(want, store.calls[0]); diff != "" {
		t.Errorf("写入记录不符 (-want +got):\n%s", diff)
	}

	assert.Equal(t, Draft{}, f.Draft(), "成功后草稿应重置")
	assert.Empty(t, f.OtherCourse())
	assert.False(t, f.Consent(), "成功后应取消同意")
	assert.Equal(t, StatusSuccess, f.Status())
	assert.Equal(t, MsgSubmitSuccess, f.Message())
	assert.Equal(t, int64(1), inq.ID)
}

func TestSubmit_OtherCourseSubstituted(t *testing.T) {
	store := &recordingStore{}
	f := newTestForm(store)
	fillValid(t, f)
	require.NoError(t, f.UpdateField(FieldDesiredCourse, OtherOption))
	require.NoError(t, f.UpdateField(FieldOtherCourse, "평생교육사 2급"))

	_, err := f.Submit(context.Background())
	require.NoError(t, err)

	require.Equal(t, 1, store.count())
	assert.Equal(t, "평생교육사 2급", store.calls[0].DesiredCourse)
	assert.NotEqual(t, OtherOption, store.calls[0].DesiredCourse)
	assert.Empty(t, f.OtherCourse())
}

// ── Submit：失败 ──

func TestSubmit_InsertFailureKeepsDraft(t *testing.T) {
	store := &recordingStore{err: errors.New("connection reset")}
	f := newTestForm(store)
	fillValid(t, f)
	before := f.Draft()

	_, err := f.Submit(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSubmitFailed)
	assert.ErrorIs(t, err, store.err)

	assert.Equal(t, 1, store.count(), "失败不应重试")
	assert.Equal(t, before, f.Draft())
	assert.True(t, f.Consent())
	assert.Equal(t, StatusError, f.Status())
	assert.Equal(t, MsgSubmitFailed, f.Message())
}

func TestSubmit_EditAfterTerminalReturnsToIdle(t *testing.T) {
	store := &recordingStore{err: errors.New("boom")}
	f := newTestForm(store)
	fillValid(t, f)

	_, _ = f.Submit(context.Background())
	require.Equal(t, StatusError, f.Status())

	require.NoError(t, f.UpdateField(FieldSpecialNotes, "다시 시도"))
	assert.Equal(t, StatusIdle, f.Status())
	assert.Empty(t, f.Message())

	store.err = nil
	_, err := f.Submit(context.Background())
	require.NoError(t, err)
	require.Equal(t, StatusSuccess, f.Status())

	f.SetConsent(true)
	assert.Equal(t, StatusIdle, f.Status())
}

func TestSubmit_ConcurrentSubmitIsNoop(t *testing.T) {
	store := &recordingStore{
		block:   make(chan struct{}),
		entered: make(chan struct{}),
	}
	f := newTestForm(store)
	fillValid(t, f)

	done := make(chan error, 1)
	go func() {
		_, err := f.Submit(context.Background())
		done <- err
	}()

	<-store.entered
	assert.Equal(t, StatusSubmitting, f.Status())

	_, err := f.Submit(context.Background())
	assert.ErrorIs(t, err, ErrSubmitInFlight)

	close(store.block)
	require.NoError(t, <-done)
	assert.Equal(t, 1, store.count(), "进行中的重复提交不应再次写入")
}

func TestStoreFunc(t *testing.T) {
	var got *model.Inquiry
	store := StoreFunc(func(_ context.Context, inq *model.Inquiry) error {
		got = inq
		return nil
	})
	f := newTestForm(store)
	fillValid(t, f)

	_, err := f.Submit(context.Background())
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Kim", got.Name)
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "submitting", StatusSubmitting.String())
	assert.Equal(t, "Status(9)", Status(9).String())
}
