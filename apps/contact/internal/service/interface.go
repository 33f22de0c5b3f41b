package service

import (
	"ContactServer/apps/contact/internal/dto"
	"context"
)

// AuthService 注册/登录服务接口
type AuthService interface {
	// Register 注册新用户并签发 Token
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error)

	// Login 邮箱+密码登录，签发 Token
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
}

// ContactService 联系人服务接口
type ContactService interface {
	// List 查询当前用户的联系人分页列表（搜索/排序/分页）
	List(ctx context.Context, actorUUID string, req *dto.ListContactsRequest) (*dto.ListContactsResponse, error)

	// Get 查询单条联系人详情（仅 owner 可见）
	Get(ctx context.Context, actorUUID string, contactID int64) (*dto.ContactDetailResponse, error)

	// Create 按邮箱搜索用户并添加为联系人（守卫检查见实现）
	Create(ctx context.Context, actorUUID string, req *dto.CreateContactRequest) (*dto.CreateContactResponse, error)

	// Delete 删除联系人记录（仅 owner），返回被删除方的显示名称
	Delete(ctx context.Context, actorUUID string, contactID int64) (*dto.DeleteContactResponse, error)
}

// Notifier 旁路通知发送接口（pkg/mailer 实现）
type Notifier interface {
	SendContactAdded(to, ownerName string) error
}
