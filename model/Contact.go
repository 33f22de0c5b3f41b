package model

import (
	"time"
)

// Contact 维护用户之间的单向联系人关系（owner → person）。
// 约束：uniqueIndex:uidx_owner_person 确保同一对用户不重复；两个外键均级联删除（建表 DDL 负责）。
// 记录创建后不可变更，生命周期只有创建和删除两种操作，因此不做软删除：
// 软删除的残留行会占住唯一索引，导致删除后无法重新添加。
type Contact struct {
	Id         int64     `gorm:"column:id;primaryKey;autoIncrement;comment:自增id"`
	OwnerUuid  string    `gorm:"column:owner_uuid;type:char(20);not null;uniqueIndex:uidx_owner_person;index:idx_owner_created_at;comment:添加方用户uuid"`
	PersonUuid string    `gorm:"column:person_uuid;type:char(20);not null;index;uniqueIndex:uidx_owner_person;comment:被添加方用户uuid"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime;index:idx_owner_created_at"`
}

func (Contact) TableName() string { return "contacts" }
