// Package policy 回答"当前用户能否对联系人记录执行某操作"。
// 全部是纯函数，操作者身份显式入参，不依赖任何全局"当前用户"状态。
package policy

import (
	"ContactServer/model"
)

// CanViewAny 是否允许查看联系人列表。
// 任何已认证用户都可以浏览自己的列表；"只能看到自己的"由查询层的
// owner 过滤保证，不在这里做。
func CanViewAny(actorUUID string) bool {
	return actorUUID != ""
}

// CanCreate 是否允许添加联系人。
// 任何已认证用户都可以添加；自添加/重复添加属于业务校验，由服务层处理。
func CanCreate(actorUUID string) bool {
	return actorUUID != ""
}

// CanView 是否允许查看指定联系人记录。
// 只有记录的 owner 可以查看，防止横向越权。
func CanView(actorUUID string, contact *model.Contact) bool {
	if contact == nil {
		return false
	}
	return actorUUID != "" && actorUUID == contact.OwnerUuid
}

// CanDelete 是否允许删除指定联系人记录。
// 只有记录的 owner 可以删除。
func CanDelete(actorUUID string, contact *model.Contact) bool {
	if contact == nil {
		return false
	}
	return actorUUID != "" && actorUUID == contact.OwnerUuid
}
