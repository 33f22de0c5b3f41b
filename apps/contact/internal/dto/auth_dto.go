package dto

// ==================== 认证相关 DTO ====================

// RegisterRequest 注册请求 DTO
type RegisterRequest struct {
	Name     string `json:"name" binding:"required,max=64"`         // 显示名称
	Email    string `json:"email" binding:"required,email,max=255"` // 邮箱
	Password string `json:"password" binding:"required,min=6,max=72"` // 密码（bcrypt 上限 72 字节）
}

// LoginRequest 登录请求 DTO
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email,max=255"` // 邮箱
	Password string `json:"password" binding:"required"`            // 密码
}

// AuthResponse 注册/登录成功响应 DTO
type AuthResponse struct {
	Token string    `json:"token"` // AccessToken
	User  *UserInfo `json:"user"`  // 用户信息
}
