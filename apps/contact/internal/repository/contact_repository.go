package repository

import (
	"ContactServer/model"
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// contactRepositoryImpl 联系人关系数据访问层实现
type contactRepositoryImpl struct {
	db *gorm.DB
}

// NewContactRepository 创建联系人仓储实例
func NewContactRepository(db *gorm.DB) IContactRepository {
	return &contactRepositoryImpl{db: db}
}

// withPersonColumns 列表/详情共用的查询列：联系人记录 + 被添加方展示字段
const withPersonColumns = "contacts.id, contacts.owner_uuid, contacts.person_uuid, contacts.created_at, " +
	"u.name AS person_name, u.email AS person_email, u.created_at AS person_created_at"

// List 查询指定用户的联系人分页列表
// 搜索对被添加方的 name/email 做不区分大小写的子串匹配（通配符已转义为字面量），
// 排序字段/方向经白名单解析，末位固定追加 contacts.id 保证分页边界稳定。
func (r *contactRepositoryImpl) List(ctx context.Context, ownerUUID, search, sortField, sortDirection string, page int) ([]*ContactWithPerson, int64, error) {
	// 兜底分页参数
	if page <= 0 {
		page = 1
	}
	offset := (page - 1) * ContactPageSize

	// 基础条件：只看当前用户自己的联系人，范围不受任何调用方输入影响
	query := r.db.WithContext(ctx).
		Model(&model.Contact{}).
		Joins("JOIN users u ON u.uuid = contacts.person_uuid AND u.deleted_at IS NULL").
		Where("contacts.owner_uuid = ?", ownerUUID)

	if cleaned := SanitizeSearch(search); cleaned != "" {
		pattern := "%" + escapeLike(cleaned) + "%"
		query = query.Where(`u.name LIKE ? ESCAPE '\\' OR u.email LIKE ? ESCAPE '\\'`, pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, WrapDBError(err)
	}

	// 排序列/方向只能来自白名单映射，二级排序保证稳定性
	orderBy := fmt.Sprintf("%s %s, contacts.id ASC", resolveSortColumn(sortField), resolveSortDirection(sortDirection))

	var rows []*ContactWithPerson
	if err := query.
		Select(withPersonColumns).
		Order(orderBy).
		Offset(offset).
		Limit(ContactPageSize).
		Find(&rows).
		Error; err != nil {
		return nil, 0, WrapDBError(err)
	}

	return rows, total, nil
}

// GetByID 根据ID查询联系人记录（含被添加方展示字段）
// 这里不过滤对方的软删除状态：列表里可以隐藏已注销用户，
// 但详情/删除必须能查到记录，否则归属者永远删不掉这条关系
func (r *contactRepositoryImpl) GetByID(ctx context.Context, id int64) (*ContactWithPerson, error) {
	var row ContactWithPerson
	err := r.db.WithContext(ctx).
		Model(&model.Contact{}).
		Select(withPersonColumns).
		Joins("JOIN users u ON u.uuid = contacts.person_uuid").
		Where("contacts.id = ?", id).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, WrapDBError(err)
	}

	return &row, nil
}

// Create 创建联系人记录
// 乐观插入：并发下重复添加由 uidx_owner_person 唯一索引拒绝，
// 冲突经 WrapDBError 翻译成 ErrDuplicateKey，由服务层转成业务结果
func (r *contactRepositoryImpl) Create(ctx context.Context, contact *model.Contact) error {
	if err := r.db.WithContext(ctx).Create(contact).Error; err != nil {
		return WrapDBError(err)
	}
	return nil
}

// Delete 按ID删除联系人记录（硬删除）
// RowsAffected == 0 说明记录已被并发删除或级联清理，按 NotFound 处理而非报错
func (r *contactRepositoryImpl) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.Contact{})

	if result.Error != nil {
		return WrapDBError(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrRecordNotFound
	}

	return nil
}

// HasContact 检查 owner 是否已添加 person
func (r *contactRepositoryImpl) HasContact(ctx context.Context, ownerUUID, personUUID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Contact{}).
		Where("owner_uuid = ? AND person_uuid = ?", ownerUUID, personUUID).
		Count(&count).Error
	if err != nil {
		return false, WrapDBError(err)
	}

	return count > 0, nil
}
