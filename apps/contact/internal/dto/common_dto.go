package dto

// ==================== 通用 DTO 定义 ====================

// UserInfo 用户信息 DTO
type UserInfo struct {
	UUID  string `json:"uuid"`  // 用户UUID
	Name  string `json:"name"`  // 显示名称
	Email string `json:"email"` // 邮箱
}

// PaginationInfo 分页信息 DTO
type PaginationInfo struct {
	Page       int32 `json:"page"`       // 当前页码
	PageSize   int32 `json:"pageSize"`   // 每页大小
	Total      int64 `json:"total"`      // 总记录数
	TotalPages int32 `json:"totalPages"` // 总页数
	HasMore    bool  `json:"hasMore"`    // 是否还有后续页
}

// NewPaginationInfo 根据总数计算分页信息
func NewPaginationInfo(page, pageSize int32, total int64) *PaginationInfo {
	totalPages := int32(0)
	if pageSize > 0 {
		totalPages = int32((total + int64(pageSize) - 1) / int64(pageSize))
	}
	return &PaginationInfo{
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
		HasMore:    page < totalPages,
	}
}
