package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/bp4sp4/korhrd-landing/internal/model"
	pkgerrors "github.com/bp4sp4/korhrd-landing/pkg/errors"
)

// InquiryRepository 상담 신청数据访问接口
type InquiryRepository interface {
	Create(ctx context.Context, inq *model.Inquiry) error
	ListAll(ctx context.Context) ([]model.Inquiry, error)
	ListPage(ctx context.Context, offset, limit int) ([]model.Inquiry, int64, error)
	Delete(ctx context.Context, id int64) error
	DeleteByIDs(ctx context.Context, ids []int64) (int64, error)
}

type inquiryRepo struct {
	db *gorm.DB
}

// NewInquiryRepo 创建 InquiryRepository 实例
func NewInquiryRepo(db *gorm.DB) InquiryRepository {
	return &inquiryRepo{db: db}
}

// Create 单条插入，整体成功或失败
func (r *inquiryRepo) Create(ctx context.Context, inq *model.Inquiry) error {
	return r.db.WithContext(ctx).Create(inq).Error
}

// ListAll 按 created_at 倒序返回全部记录
func (r *inquiryRepo) ListAll(ctx context.Context) ([]model.Inquiry, error) {
	inquiries := make([]model.Inquiry, 0)
	err := r.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Find(&inquiries).Error
	return inquiries, err
}

func (r *inquiryRepo) ListPage(ctx context.Context, offset, limit int) ([]model.Inquiry, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&model.Inquiry{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	inquiries := make([]model.Inquiry, 0, limit)
	err := r.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Offset(offset).
		Limit(limit).
		Find(&inquiries).Error
	return inquiries, total, err
}

// Delete 按 ID 物理删除；记录不存在时返回 gorm.ErrRecordNotFound
func (r *inquiryRepo) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&model.Inquiry{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteByIDs 在事务内按 ID 集合删除
// 任一 ID 已不存在时整批回滚并返回 ErrStaleSelection，不做部分删除
func (r *inquiryRepo) DeleteByIDs(ctx context.Context, ids []int64) (int64, error) {
	ids = uniqueIDs(ids)
	if len(ids) == 0 {
		return 0, nil
	}

	var deleted int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id IN ?", ids).Delete(&model.Inquiry{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected != int64(len(ids)) {
			return pkgerrors.ErrStaleSelection
		}
		deleted = result.RowsAffected
		return nil
	})
	if err != nil {
		return 0, err
	}
	return deleted, nil
}

func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
