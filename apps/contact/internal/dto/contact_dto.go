package dto

// ==================== 联系人相关 DTO ====================

// ListContactsRequest 联系人列表请求 DTO
// search/sort/direction 不做 binding 校验：非法值由查询层静默回退到安全默认，
// 这是明确的设计而不是疏漏（列表永远给得出结果）
type ListContactsRequest struct {
	Search    string `form:"search" json:"search"`                     // 搜索关键字（按对方姓名/邮箱子串匹配）
	Sort      string `form:"sort" json:"sort"`                         // 排序字段 name/email
	Direction string `form:"direction" json:"direction"`               // 排序方向 asc/desc
	Page      int    `form:"page" json:"page" binding:"omitempty,min=1"` // 页码
}

// ContactItem 联系人条目 DTO
type ContactItem struct {
	Id          int64  `json:"id"`          // 联系人记录ID
	PersonUuid  string `json:"personUuid"`  // 对方用户UUID
	PersonName  string `json:"personName"`  // 对方显示名称
	PersonEmail string `json:"personEmail"` // 对方邮箱
	CreatedAt   int64  `json:"createdAt"`   // 添加时间（毫秒时间戳）
}

// ListContactsResponse 联系人列表响应 DTO
// Search/Sort/Direction 回显实际生效的值，便于前端渲染当前过滤状态
type ListContactsResponse struct {
	Items      []*ContactItem  `json:"items"`      // 联系人列表
	Pagination *PaginationInfo `json:"pagination"` // 分页信息
	Search     string          `json:"search"`     // 生效的搜索串
	Sort       string          `json:"sort"`       // 生效的排序字段
	Direction  string          `json:"direction"`  // 生效的排序方向
}

// ContactDetailResponse 联系人详情响应 DTO
type ContactDetailResponse struct {
	Id             int64  `json:"id"`             // 联系人记录ID
	PersonUuid     string `json:"personUuid"`     // 对方用户UUID
	PersonName     string `json:"personName"`     // 对方显示名称
	PersonEmail    string `json:"personEmail"`    // 对方邮箱
	PersonJoinedAt int64  `json:"personJoinedAt"` // 对方注册时间（毫秒时间戳）
	CreatedAt      int64  `json:"createdAt"`      // 添加时间（毫秒时间戳）
}

// CreateContactRequest 添加联系人请求 DTO
type CreateContactRequest struct {
	Email string `json:"email" binding:"required,email,max=255"` // 对方邮箱
}

// CreateContactResponse 添加联系人响应 DTO
type CreateContactResponse struct {
	Contact    *ContactItem `json:"contact"`    // 新建的联系人记录
	PersonName string       `json:"personName"` // 对方显示名称（用于提示文案）
}

// ContactEmailEcho 添加失败时回显提交的邮箱，供前端重新填充表单
type ContactEmailEcho struct {
	Email string `json:"email"`
}

// DeleteContactResponse 删除联系人响应 DTO
type DeleteContactResponse struct {
	PersonName string `json:"personName"` // 被删除联系人的显示名称（删除前捕获）
}
