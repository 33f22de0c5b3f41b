package service

import (
	"ContactServer/apps/contact/internal/dto"
	"ContactServer/apps/contact/internal/policy"
	"ContactServer/apps/contact/internal/repository"
	"ContactServer/apps/contact/mq"
	"ContactServer/consts"
	"ContactServer/model"
	"ContactServer/pkg/async"
	"ContactServer/pkg/logger"
	"context"
	"errors"
	"time"
)

// contactServiceImpl 联系人服务实现
type contactServiceImpl struct {
	userRepo    repository.IUserRepository
	contactRepo repository.IContactRepository
	notifier    Notifier // 可以为 nil（不发通知邮件）
}

// NewContactService 创建联系人服务实例
func NewContactService(
	userRepo repository.IUserRepository,
	contactRepo repository.IContactRepository,
	notifier Notifier,
) ContactService {
	return &contactServiceImpl{
		userRepo:    userRepo,
		contactRepo: contactRepo,
		notifier:    notifier,
	}
}

// contactOf 把查询行还原成策略检查需要的联系人实体
func contactOf(row *repository.ContactWithPerson) *model.Contact {
	return &model.Contact{
		Id:         row.Id,
		OwnerUuid:  row.OwnerUuid,
		PersonUuid: row.PersonUuid,
		CreatedAt:  row.CreatedAt,
	}
}

// toContactItem 查询行转列表条目 DTO
func toContactItem(row *repository.ContactWithPerson) *dto.ContactItem {
	return &dto.ContactItem{
		Id:          row.Id,
		PersonUuid:  row.PersonUuid,
		PersonName:  row.PersonName,
		PersonEmail: row.PersonEmail,
		CreatedAt:   row.CreatedAt.UnixMilli(),
	}
}

// List 查询当前用户的联系人分页列表
// 列表范围永远限定为 actorUUID 自己的记录；搜索/排序的非法输入
// 在查询层静默回退，这里只负责回显实际生效的值
func (s *contactServiceImpl) List(ctx context.Context, actorUUID string, req *dto.ListContactsRequest) (*dto.ListContactsResponse, error) {
	if !policy.CanViewAny(actorUUID) {
		return nil, NewBizError(consts.CodePermissionDeny)
	}

	page := req.Page
	if page <= 0 {
		page = 1
	}

	rows, total, err := s.contactRepo.List(ctx, actorUUID, req.Search, req.Sort, req.Direction, page)
	if err != nil {
		logger.Error(ctx, "查询联系人列表失败",
			logger.ErrorField("error", err),
			logger.Int("page", page),
		)
		return nil, err
	}

	items := make([]*dto.ContactItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, toContactItem(row))
	}

	return &dto.ListContactsResponse{
		Items:      items,
		Pagination: dto.NewPaginationInfo(int32(page), repository.ContactPageSize, total),
		Search:     repository.SanitizeSearch(req.Search),
		Sort:       repository.ResolveSortKey(req.Sort),
		Direction:  repository.ResolveDirectionKey(req.Direction),
	}, nil
}

// Get 查询单条联系人详情
// 记录不存在与无权查看是两种不同的结果：前者 12001，后者 20004
func (s *contactServiceImpl) Get(ctx context.Context, actorUUID string, contactID int64) (*dto.ContactDetailResponse, error) {
	row, err := s.contactRepo.GetByID(ctx, contactID)
	if err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return nil, NewBizError(consts.CodeContactNotFound)
		}
		logger.Error(ctx, "查询联系人详情失败",
			logger.ErrorField("error", err),
			logger.Int64("contact_id", contactID),
		)
		return nil, err
	}

	if !policy.CanView(actorUUID, contactOf(row)) {
		return nil, NewBizError(consts.CodePermissionDeny)
	}

	return &dto.ContactDetailResponse{
		Id:             row.Id,
		PersonUuid:     row.PersonUuid,
		PersonName:     row.PersonName,
		PersonEmail:    row.PersonEmail,
		PersonJoinedAt: row.PersonCreatedAt.UnixMilli(),
		CreatedAt:      row.CreatedAt.UnixMilli(),
	}, nil
}

// Create 按邮箱搜索用户并添加为联系人
// 守卫检查按序执行，先失败者先返回：
//  1. 邮箱查不到用户 → 11001
//  2. 查到的是自己 → 12003
//  3. 已经在联系人列表中 → 12002
//  4. 乐观插入；步骤 3 与插入之间存在并发窗口，两个相同请求可能都通过预检查，
//     此时唯一索引拒绝后写，冲突同样翻译成 12002，不向上抛存储错误
func (s *contactServiceImpl) Create(ctx context.Context, actorUUID string, req *dto.CreateContactRequest) (*dto.CreateContactResponse, error) {
	if !policy.CanCreate(actorUUID) {
		return nil, NewBizError(consts.CodePermissionDeny)
	}

	// 1. 邮箱 → 用户
	target, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		logger.Error(ctx, "按邮箱查询用户失败", logger.ErrorField("error", err))
		return nil, err
	}
	if target == nil {
		return nil, NewBizError(consts.CodeUserNotFound)
	}

	// 2. 不能添加自己
	if target.Uuid == actorUUID {
		return nil, NewBizError(consts.CodeContactSelfAdd)
	}

	// 3. 重复添加预检查（只为提前给出友好提示，真正的防线是唯一索引）
	exists, err := s.contactRepo.HasContact(ctx, actorUUID, target.Uuid)
	if err != nil {
		logger.Error(ctx, "检查联系人是否存在失败", logger.ErrorField("error", err))
		return nil, err
	}
	if exists {
		return nil, NewBizError(consts.CodeContactAlreadyExists)
	}

	// 4. 乐观插入
	contact := &model.Contact{
		OwnerUuid:  actorUUID,
		PersonUuid: target.Uuid,
	}
	if err := s.contactRepo.Create(ctx, contact); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			// 并发窗口内对方请求先写入，结果与预检查命中等价
			return nil, NewBizError(consts.CodeContactAlreadyExists)
		}
		logger.Error(ctx, "创建联系人失败",
			logger.ErrorField("error", err),
			logger.String("person_uuid", target.Uuid),
		)
		return nil, err
	}

	// 旁路：事件投递 + 通知邮件，都是尽力而为
	mq.PublishAsync(ctx, mq.ContactEvent{
		Type:       mq.EventContactCreated,
		ContactID:  contact.Id,
		OwnerUUID:  actorUUID,
		PersonUUID: target.Uuid,
	})
	s.notifyContactAddedAsync(ctx, actorUUID, target)

	logger.Info(ctx, "添加联系人成功",
		logger.Int64("contact_id", contact.Id),
		logger.String("person_uuid", target.Uuid),
	)

	return &dto.CreateContactResponse{
		Contact: &dto.ContactItem{
			Id:          contact.Id,
			PersonUuid:  target.Uuid,
			PersonName:  target.Name,
			PersonEmail: target.Email,
			CreatedAt:   contact.CreatedAt.UnixMilli(),
		},
		PersonName: target.Name,
	}, nil
}

// Delete 删除联系人记录
// 对方显示名称必须在删除前捕获：删除后这条关系连同展示字段就查不回来了
func (s *contactServiceImpl) Delete(ctx context.Context, actorUUID string, contactID int64) (*dto.DeleteContactResponse, error) {
	row, err := s.contactRepo.GetByID(ctx, contactID)
	if err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return nil, NewBizError(consts.CodeContactNotFound)
		}
		logger.Error(ctx, "查询联系人失败",
			logger.ErrorField("error", err),
			logger.Int64("contact_id", contactID),
		)
		return nil, err
	}

	if !policy.CanDelete(actorUUID, contactOf(row)) {
		return nil, NewBizError(consts.CodePermissionDeny)
	}

	personName := row.PersonName

	if err := s.contactRepo.Delete(ctx, contactID); err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			// 读到删之间被并发删除（或账号注销级联清理），按不存在处理
			return nil, NewBizError(consts.CodeContactNotFound)
		}
		logger.Error(ctx, "删除联系人失败",
			logger.ErrorField("error", err),
			logger.Int64("contact_id", contactID),
		)
		return nil, err
	}

	mq.PublishAsync(ctx, mq.ContactEvent{
		Type:       mq.EventContactDeleted,
		ContactID:  contactID,
		OwnerUUID:  actorUUID,
		PersonUUID: row.PersonUuid,
	})

	logger.Info(ctx, "删除联系人成功",
		logger.Int64("contact_id", contactID),
		logger.String("person_name", personName),
	)

	return &dto.DeleteContactResponse{PersonName: personName}, nil
}

// notifyContactAddedAsync 异步给被添加方发提醒邮件，失败只记日志
func (s *contactServiceImpl) notifyContactAddedAsync(ctx context.Context, actorUUID string, target *model.User) {
	if s.notifier == nil {
		return
	}

	toEmail := target.Email
	async.RunSafe(ctx, func(runCtx context.Context) {
		owner, err := s.userRepo.GetByUUID(runCtx, actorUUID)
		if err != nil || owner == nil {
			return
		}
		if err := s.notifier.SendContactAdded(toEmail, owner.Name); err != nil {
			logger.Warn(runCtx, "联系人通知邮件发送失败",
				logger.ErrorField("error", err),
			)
		}
	}, 30*time.Second)
}
