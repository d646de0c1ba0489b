package dto

// ── 认证模块 DTO ──

// LoginRequest 管理员登录请求
type LoginRequest struct {
	Email    string `json:"email"    binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,max=72"`
}

// RefreshTokenRequest 刷新 Token 请求
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"` // 非 Cookie 模式时使用
}

// ── 认证模块响应 ──

// SessionResponse 登录 / 刷新成功响应
// Token 同时以 HttpOnly Cookie 下发
type SessionResponse struct {
	AccessToken  string           `json:"access_token"`
	RefreshToken string           `json:"-"`
	ExpiresIn    int              `json:"expires_in"` // Access Token 有效期（秒）
	Operator     OperatorResponse `json:"operator"`
}

// OperatorResponse 管理员信息（脱敏）
type OperatorResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}
