package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/bp4sp4/korhrd-landing/internal/dto"
	"github.com/bp4sp4/korhrd-landing/internal/intake"
	"github.com/bp4sp4/korhrd-landing/internal/model"
	"github.com/bp4sp4/korhrd-landing/internal/repository"
)

// ── 상담 신청模块业务错误 ──

var (
	ErrInquiryNotFound = errors.New("상담 신청 내역을 찾을 수 없습니다")
	ErrEmptySelection  = errors.New("삭제할 항목을 선택해주세요")
)

// InquiryService 상담 신청业务接口
type InquiryService interface {
	// Submit 经 intake.Form 校验后写入；校验失败返回 *intake.ValidationError
	Submit(ctx context.Context, req *dto.SubmitInquiryRequest) (*dto.InquiryResponse, error)
	ListAll(ctx context.Context) ([]dto.InquiryResponse, error)
	ListPage(ctx context.Context, req *dto.PaginationRequest) ([]dto.InquiryResponse, int64, error)
	Delete(ctx context.Context, id int64) error
	// DeleteBatch 全部删除或一条不删；有记录已不存在时返回 ErrStaleSelection
	DeleteBatch(ctx context.Context, ids []int64) (int64, error)
}

type inquiryService struct {
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewInquiryService 创建 InquiryService 实例
func NewInquiryService(repo *repository.Repository, logger *zap.Logger) InquiryService {
	return &inquiryService{repo: repo, logger: logger, now: time.Now}
}

func (s *inquiryService) Submit(ctx context.Context, req *dto.SubmitInquiryRequest) (*dto.InquiryResponse, error) {
	// 每个请求一个独立表单；created_at 取服务端时钟
	form := intake.NewForm(
		intake.StoreFunc(s.repo.Inquiry.Create),
		intake.WithLogger(s.logger),
		intake.WithClock(s.now),
	)

	fields := []struct{ name, value string }{
		{intake.FieldDesiredCourse, req.DesiredCourse},
		{intake.FieldOtherCourse, req.OtherCourse},
		{intake.FieldEducation, req.Education},
		{intake.FieldName, req.Name},
		{intake.FieldContact, req.Contact},
		{intake.FieldSpecialNotes, req.SpecialNotes},
	}
	for _, f := range fields {
		if err := form.UpdateField(f.name, f.value); err != nil {
			return nil, err
		}
	}
	form.SetConsent(req.PrivacyAgreement)

	inq, err := form.Submit(ctx)
	if err != nil {
		return nil, err
	}

	resp := toInquiryResponse(inq)
	return &resp, nil
}

func (s *inquiryService) ListAll(ctx context.Context) ([]dto.InquiryResponse, error) {
	inquiries, err := s.repo.Inquiry.ListAll(ctx)
	if err != nil {
		s.logger.Error("查询상담 신청列表失败", zap.Error(err))
		return nil, err
	}
	return toInquiryResponses(inquiries), nil
}

func (s *inquiryService) ListPage(ctx context.Context, req *dto.PaginationRequest) ([]dto.InquiryResponse, int64, error) {
	inquiries, total, err := s.repo.Inquiry.ListPage(ctx, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("分页查询상담 신청失败", zap.Error(err))
		return nil, 0, err
	}
	return toInquiryResponses(inquiries), total, nil
}

func (s *inquiryService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Inquiry.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInquiryNotFound
		}
		s.logger.Error("删除상담 신청失败", zap.Int64("id", id), zap.Error(err))
		return err
	}
	s.logger.Info("상담 신청已删除", zap.Int64("id", id))
	return nil
}

func (s *inquiryService) DeleteBatch(ctx context.Context, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, ErrEmptySelection
	}

	n, err := s.repo.Inquiry.DeleteByIDs(ctx, ids)
	if err != nil {
		s.logger.Error("批量删除상담 신청失败", zap.Int("count", len(ids)), zap.Error(err))
		return 0, err
	}
	s.logger.Info("상담 신청已批量删除", zap.Int64("deleted", n))
	return n, nil
}

// ── 转换 ──

func toInquiryResponse(inq *model.Inquiry) dto.InquiryResponse {
	return dto.InquiryResponse{
		ID:            inq.ID,
		DesiredCourse: inq.DesiredCourse,
		Education:     inq.Education,
		Name:          inq.Name,
		Contact:       inq.Contact,
		SpecialNotes:  inq.SpecialNotes,
		CreatedAt:     inq.CreatedAt.Format(time.RFC3339),
	}
}

func toInquiryResponses(inquiries []model.Inquiry) []dto.InquiryResponse {
	out := make([]dto.InquiryResponse, 0, len(inquiries))
	for i := range inquiries {
		out = append(out, toInquiryResponse(&inquiries[i]))
	}
	return out
}
