package repository

import (
	"math/rand"
	"strings"
	"time"
)

// ==================== 列表查询参数兜底 ====================

const (
	// ContactPageSize 联系人列表固定每页条数（不开放给调用方配置）
	ContactPageSize = 25

	// MaxSearchLength 搜索串最大长度，超出部分直接截断，防止超长输入打到数据库
	MaxSearchLength = 100

	// DefaultSortField 非法排序字段的回退值
	DefaultSortField = "name"

	// DefaultSortDirection 非法排序方向的回退值
	DefaultSortDirection = "asc"
)

// sortColumns 排序字段白名单 → 排序列的映射。
// 只有这里列出的列名会被拼进 ORDER BY，这是防止排序参数注入的唯一手段，
// 任何其他值（包括试图指定内部列的）都静默回退到 name。
var sortColumns = map[string]string{
	"name":  "u.name",
	"email": "u.email",
}

// sortDirections 排序方向白名单
var sortDirections = map[string]string{
	"asc":  "ASC",
	"desc": "DESC",
}

// ResolveSortKey 白名单校验排序字段，返回生效的字段名（name/email）。
// 服务层用它回显实际生效的排序状态，与查询层的解析保持同一份白名单。
func ResolveSortKey(field string) string {
	if _, ok := sortColumns[field]; ok {
		return field
	}
	return DefaultSortField
}

// ResolveDirectionKey 白名单校验排序方向，返回生效的方向（asc/desc）。
func ResolveDirectionKey(direction string) string {
	if _, ok := sortDirections[direction]; ok {
		return direction
	}
	return DefaultSortDirection
}

// SanitizeSearch 清洗搜索输入：去首尾空白，空串视为无过滤，超长截断。
// 按 rune 截断，避免把多字节字符切坏。
func SanitizeSearch(input string) string {
	cleaned := strings.TrimSpace(input)
	if cleaned == "" {
		return ""
	}
	runes := []rune(cleaned)
	if len(runes) > MaxSearchLength {
		return string(runes[:MaxSearchLength])
	}
	return cleaned
}

// likeEscaper LIKE 模式串转义器：\ % _ 在模式串中有特殊含义，
// 先转义再拼接，保证搜索 "100%"、"test_user" 时按字面量匹配
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike 转义 LIKE 通配符，返回可安全嵌入 '%...%' 模式的字面量
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// resolveSortColumn 返回白名单解析后的实际排序列
func resolveSortColumn(field string) string {
	return sortColumns[ResolveSortKey(field)]
}

// resolveSortDirection 返回白名单解析后的排序方向
func resolveSortDirection(direction string) string {
	return sortDirections[ResolveDirectionKey(direction)]
}

// ==================== 缓存辅助 ====================

// getRandomExpireTime 生成带随机抖动的过期时间（基础时间 ± 10%），防止缓存雪崩
func getRandomExpireTime(baseExpire time.Duration) time.Duration {
	jitterRange := float64(baseExpire) * 0.1
	jitter := time.Duration(rand.Float64()*float64(jitterRange)*2 - float64(jitterRange))

	return baseExpire + jitter
}
