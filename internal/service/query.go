package service

import (
	"strings"

	"gorm.io/gorm"
)

const (
	defaultPage  = 1
	defaultLimit = 10
)

// ListParams 各实体列表查询共用的分页/排序参数。
// sort=field:direction 与 sortBy/sortOrder 都接受，组合形式优先。
type ListParams struct {
	Page      int    `form:"page"`
	Limit     int    `form:"limit"`
	PageSize  int    `form:"pageSize"` // limit 的别名（前端用）
	SortBy    string `form:"sortBy"`
	SortOrder string `form:"sortOrder"`
	Sort      string `form:"sort"`
}

func (p ListParams) page() int {
	if p.Page <= 0 {
		return defaultPage
	}
	return p.Page
}

func (p ListParams) limit() int {
	if p.PageSize > 0 {
		return p.PageSize
	}
	if p.Limit > 0 {
		return p.Limit
	}
	return defaultLimit
}

func (p ListParams) offset() int { return (p.page() - 1) * p.limit() }

// orderClause 把 camelCase 排序字段映射为白名单内的列名，未命中回退默认
func (p ListParams) orderClause(columns map[string]string, def string) string {
	field := p.SortBy
	order := p.SortOrder
	if p.Sort != "" {
		if f, d, ok := strings.Cut(p.Sort, ":"); ok && f != "" && d != "" {
			field, order = f, d
		}
	}
	col, ok := columns[field]
	if !ok {
		return def
	}
	dir := "DESC"
	if strings.EqualFold(order, "asc") {
		dir = "ASC"
	}
	return col + " " + dir
}

type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

func newPagination(p ListParams, total int64) Pagination {
	limit := p.limit()
	pages := int((total + int64(limit) - 1) / int64(limit))
	return Pagination{Page: p.page(), Limit: limit, Total: total, TotalPages: pages}
}

// ListResult items 永远非 nil，超出末页返回空列表而不是错误
type ListResult[T any] struct {
	Items      []T        `json:"items"`
	Total      int64      `json:"total"`
	Pagination Pagination `json:"pagination"`
}

func newListResult[T any](items []T, p ListParams, total int64) *ListResult[T] {
	if items == nil {
		items = []T{}
	}
	return &ListResult[T]{Items: items, Total: total, Pagination: newPagination(p, total)}
}

// ilike 跨库大小写不敏感的子串匹配（postgres 的 LIKE 区分大小写）
func ilike(column string) string {
	return "LOWER(" + column + ") LIKE LOWER(?)"
}

func like(s string) string { return "%" + s + "%" }

// paginate 统一先 count 再翻页，total 与过滤条件一致
func paginate[T any](q *gorm.DB, p ListParams, order string, out *[]T) (int64, error) {
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return 0, err
	}
	err := q.Order(order).Limit(p.limit()).Offset(p.offset()).Find(out).Error
	return total, err
}
