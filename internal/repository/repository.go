package repository

import "gorm.io/gorm"

// Repository 所有 Repository 的聚合入口
type Repository struct {
	Inquiry  InquiryRepository
	Operator OperatorRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		Inquiry:  NewInquiryRepo(db),
		Operator: NewOperatorRepo(db),
	}
}
