package repository

import (
	"ContactServer/model"
	"context"
	"time"
)

// ==================== 用户 Repository ====================

// IUserRepository 用户数据访问接口
type IUserRepository interface {
	// GetByUUID 根据UUID查询用户信息（不存在时返回 nil, nil）
	GetByUUID(ctx context.Context, uuid string) (*model.User, error)

	// GetByEmail 根据邮箱查询用户信息，匹配不区分大小写（不存在时返回 nil, nil）
	// 直查 MySQL 不走缓存：添加联系人的守卫检查需要权威数据
	GetByEmail(ctx context.Context, email string) (*model.User, error)

	// ExistsByEmail 检查邮箱是否已被注册（不区分大小写）
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// Create 创建新用户
	Create(ctx context.Context, user *model.User) (*model.User, error)
}

// ==================== 联系人 Repository ====================

// ContactWithPerson 联系人记录及被添加方的展示字段（显式 JOIN 取出，避免逐行回表）
type ContactWithPerson struct {
	Id              int64     `gorm:"column:id"`
	OwnerUuid       string    `gorm:"column:owner_uuid"`
	PersonUuid      string    `gorm:"column:person_uuid"`
	CreatedAt       time.Time `gorm:"column:created_at"`
	PersonName      string    `gorm:"column:person_name"`
	PersonEmail     string    `gorm:"column:person_email"`
	PersonCreatedAt time.Time `gorm:"column:person_created_at"`
}

// IContactRepository 联系人关系数据访问接口
type IContactRepository interface {
	// List 查询指定用户的联系人分页列表
	// ownerUUID 永远来自认证身份，列表只会包含该用户自己的记录。
	// search/sortField/sortDirection 为调用方原始输入，非法值静默回退到安全默认，
	// 不会报错（搜索转义、排序白名单见 util.go / contact_repository.go）。
	List(ctx context.Context, ownerUUID, search, sortField, sortDirection string, page int) ([]*ContactWithPerson, int64, error)

	// GetByID 根据ID查询联系人记录（含被添加方展示字段），不存在返回 ErrRecordNotFound
	GetByID(ctx context.Context, id int64) (*ContactWithPerson, error)

	// Create 创建联系人记录
	// (owner_uuid, person_uuid) 唯一键冲突时返回 ErrDuplicateKey，
	// 这是并发重复添加的唯一防线，存在性预检查只用于提前给出友好提示
	Create(ctx context.Context, contact *model.Contact) error

	// Delete 按ID删除联系人记录（硬删除），记录已不存在时返回 ErrRecordNotFound
	Delete(ctx context.Context, id int64) error

	// HasContact 检查 owner 是否已添加 person
	HasContact(ctx context.Context, ownerUUID, personUUID string) (bool, error)
}
