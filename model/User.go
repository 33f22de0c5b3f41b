package model

import (
	"time"

	"gorm.io/gorm"
)

// User 用户账号（身份存储）。
// 约束：uuid 全局唯一（char(20)，雪花ID字符串）；email 唯一，用于联系人搜索（查询时不区分大小写）。
type User struct {
	Id        int64          `gorm:"column:id;primaryKey;autoIncrement;comment:自增id"`
	Uuid      string         `gorm:"column:uuid;type:char(20);not null;uniqueIndex;comment:用户uuid"`
	Name      string         `gorm:"column:name;type:varchar(64);not null;comment:显示名称"`
	Email     string         `gorm:"column:email;type:varchar(255);not null;uniqueIndex;comment:邮箱"`
	Password  string         `gorm:"column:password;type:varchar(128);not null;comment:bcrypt密码哈希"`
	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (User) TableName() string { return "users" }
