package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/bp4sp4/korhrd-landing/internal/dto"
	"github.com/bp4sp4/korhrd-landing/internal/intake"
	"github.com/bp4sp4/korhrd-landing/internal/model"
	pkgerrors "github.com/bp4sp4/korhrd-landing/pkg/errors"
)

// ── 测试辅助 ──

var fixedNow = time.Date(2026, 3, 14, 10, 30, 0, 0, time.FixedZone("KST", 9*3600))

func setupTestInquiryService() (*inquiryService, *mockInquiryRepo) {
	repo, inqRepo, _ := newMockRepository()
	svc := NewInquiryService(repo, zap.NewNop()).(*inquiryService)
	svc.now = func() time.Time { return fixedNow }
	return svc, inqRepo
}

func seedInquiries(repo *mockInquiryRepo, n int) {
	for i := 1; i <= n; i++ {
		_ = repo.Create(context.Background(), &model.Inquiry{
			Name:          "신청자",
			DesiredCourse: "보육교사 2급",
			Contact:       "010-0000-0000",
			CreatedAt:     fixedNow.Add(time.Duration(i) * time.Minute),
		})
	}
}

func validSubmitRequest() *dto.SubmitInquiryRequest {
	return &dto.SubmitInquiryRequest{
		DesiredCourse:    "사회복지사 2급",
		Education:        "고등학교 졸업",
		Name:             "홍길동",
		Contact:          "01012345678",
		SpecialNotes:     "평일 저녁 통화 희망",
		PrivacyAgreement: true,
	}
}

// ── Submit ──

func TestInquiryService_Submit_Success(t *testing.T) {
	svc, repo := setupTestInquiryService()

	resp, err := svc.Submit(context.Background(), validSubmitRequest())
	if err != nil {
		t.Fatalf("Submit 应成功: %v", err)
	}
	if resp.Contact != "010-1234-5678" {
		t.Errorf("期望联系方式格式化为 010-1234-5678，实际=%s", resp.Contact)
	}
	if resp.CreatedAt != "2026-03-14T10:30:00+09:00" {
		t.Errorf("created_at 应取服务端时钟，实际=%s", resp.CreatedAt)
	}
	if len(repo.inquiries) != 1 {
		t.Fatalf("期望写入 1 条，实际=%d", len(repo.inquiries))
	}
	if got := repo.inquiries[resp.ID]; got.Name != "홍길동" || got.SpecialNotes != "평일 저녁 통화 희망" {
		t.Errorf("写入记录不符: %+v", got)
	}
}

func TestInquiryService_Submit_OtherCourse(t *testing.T) {
	svc, repo := setupTestInquiryService()
	req := validSubmitRequest()
	req.DesiredCourse = intake.OtherOption
	req.OtherCourse = "평생교육사"

	resp, err := svc.Submit(context.Background(), req)
	if err != nil {
		t.Fatalf("Submit 应成功: %v", err)
	}
	if resp.DesiredCourse != "평생교육사" || repo.inquiries[resp.ID].DesiredCourse != "평생교육사" {
		t.Errorf("「기타」应替换为自由输入的过程名，实际=%s", resp.DesiredCourse)
	}
}

func TestInquiryService_Submit_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *dto.SubmitInquiryRequest)
		field  string
	}{
		{"缺少姓名", func(r *dto.SubmitInquiryRequest) { r.Name = "  " }, intake.FieldName},
		{"缺少联系方式", func(r *dto.SubmitInquiryRequest) { r.Contact = "abc" }, intake.FieldContact},
		{"缺少过程", func(r *dto.SubmitInquiryRequest) { r.DesiredCourse = "" }, intake.FieldDesiredCourse},
		{"기타 未填写", func(r *dto.SubmitInquiryRequest) { r.DesiredCourse = intake.OtherOption }, intake.FieldOtherCourse},
		{"未同意隐私条款", func(r *dto.SubmitInquiryRequest) { r.PrivacyAgreement = false }, intake.FieldConsent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo := setupTestInquiryService()
			req := validSubmitRequest()
			tt.mutate(req)

			_, err := svc.Submit(context.Background(), req)
			var verr *intake.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("期望 *intake.ValidationError，实际: %v", err)
			}
			if verr.Field != tt.field {
				t.Errorf("期望字段=%s，实际=%s", tt.field, verr.Field)
			}
			if len(repo.inquiries) != 0 {
				t.Error("校验失败时不应写入")
			}
		})
	}
}

func TestInquiryService_Submit_StoreError(t *testing.T) {
	svc, repo := setupTestInquiryService()
	repo.err = errMockDB

	_, err := svc.Submit(context.Background(), validSubmitRequest())
	if !errors.Is(err, intake.ErrSubmitFailed) || !errors.Is(err, errMockDB) {
		t.Errorf("期望包裹 ErrSubmitFailed 与底层错误，实际: %v", err)
	}
}

// ── List ──

func TestInquiryService_ListAll_NewestFirst(t *testing.T) {
	svc, repo := setupTestInquiryService()
	seedInquiries(repo, 3)

	list, err := svc.ListAll(context.Background())
	if err != nil {
		t.Fatalf("ListAll 失败: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("期望 3 条，实际=%d", len(list))
	}
	if list[0].ID != 3 || list[2].ID != 1 {
		t.Errorf("期望按 created_at 倒序，实际首条=%d 末条=%d", list[0].ID, list[2].ID)
	}
}

func TestInquiryService_ListAll_Empty(t *testing.T) {
	svc, _ := setupTestInquiryService()

	list, err := svc.ListAll(context.Background())
	if err != nil {
		t.Fatalf("ListAll 失败: %v", err)
	}
	if list == nil || len(list) != 0 {
		t.Errorf("期望非 nil 空切片，实际=%v", list)
	}
}

func TestInquiryService_ListPage(t *testing.T) {
	svc, repo := setupTestInquiryService()
	seedInquiries(repo, 23)

	list, total, err := svc.ListPage(context.Background(), &dto.PaginationRequest{Page: 3, PageSize: 10})
	if err != nil {
		t.Fatalf("ListPage 失败: %v", err)
	}
	if total != 23 || len(list) != 3 {
		t.Errorf("期望 total=23 本页 3 条，实际 total=%d len=%d", total, len(list))
	}
}

func TestInquiryService_ListAll_Error(t *testing.T) {
	svc, repo := setupTestInquiryService()
	repo.err = errMockDB

	if _, err := svc.ListAll(context.Background()); !errors.Is(err, errMockDB) {
		t.Errorf("期望透传错误，实际: %v", err)
	}
}

// ── Delete ──

func TestInquiryService_Delete(t *testing.T) {
	svc, repo := setupTestInquiryService()
	seedInquiries(repo, 2)

	if err := svc.Delete(context.Background(), 1); err != nil {
		t.Fatalf("Delete 失败: %v", err)
	}
	if err := svc.Delete(context.Background(), 1); !errors.Is(err, ErrInquiryNotFound) {
		t.Errorf("重复删除期望 ErrInquiryNotFound，实际: %v", err)
	}
}

func TestInquiryService_DeleteBatch(t *testing.T) {
	svc, repo := setupTestInquiryService()
	seedInquiries(repo, 5)

	if _, err := svc.DeleteBatch(context.Background(), nil); !errors.Is(err, ErrEmptySelection) {
		t.Errorf("空集合期望 ErrEmptySelection，实际: %v", err)
	}

	if _, err := svc.DeleteBatch(context.Background(), []int64{1, 99}); !errors.Is(err, pkgerrors.ErrStaleSelection) {
		t.Errorf("期望 ErrStaleSelection，实际: %v", err)
	}
	if len(repo.inquiries) != 5 {
		t.Errorf("部分失败时不应删除任何记录，剩余=%d", len(repo.inquiries))
	}

	n, err := svc.DeleteBatch(context.Background(), []int64{1, 2, 3})
	if err != nil || n != 3 {
		t.Fatalf("期望删除 3 条，实际 n=%d err=%v", n, err)
	}
	if len(repo.inquiries) != 2 {
		t.Errorf("期望剩余 2 条，实际=%d", len(repo.inquiries))
	}
}
