package dto

// ── 상담 신청 DTO ──

// SubmitInquiryRequest 公开表单提交
// 必填与「기타」规则由 intake.Form 校验，此处只限制枚举与长度
type SubmitInquiryRequest struct {
	DesiredCourse    string `json:"desired_course"    binding:"omitempty,course"`
	OtherCourse      string `json:"other_course"      binding:"max=100"`
	Education        string `json:"education"         binding:"omitempty,education"`
	Name             string `json:"name"              binding:"max=100"`
	Contact          string `json:"contact"           binding:"max=20"`
	SpecialNotes     string `json:"special_notes"     binding:"max=2000"`
	PrivacyAgreement bool   `json:"privacy_agreement"`
}

// BatchDeleteRequest 批量删除
type BatchDeleteRequest struct {
	IDs []int64 `json:"ids" binding:"required,min=1,max=500,dive,min=1"`
}

// InquiryResponse 상담 신청记录
type InquiryResponse struct {
	ID            int64  `json:"id"`
	DesiredCourse string `json:"desired_course"`
	Education     string `json:"education"`
	Name          string `json:"name"`
	Contact       string `json:"contact"`
	SpecialNotes  string `json:"special_notes"`
	CreatedAt     string `json:"created_at"` // RFC3339
}

// BatchDeleteResponse 批量删除结果
type BatchDeleteResponse struct {
	Deleted int64 `json:"deleted"`
}
