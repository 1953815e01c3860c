package repository

import "gorm.io/gorm"

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// Pagination 分页参数
type Pagination struct {
	Page     int
	PageSize int
}

// Normalize 规范化分页参数
func (p Pagination) Normalize() Pagination {
	if p.Page <= 0 {
		p.Page = 1
	}
	if p.PageSize <= 0 {
		p.PageSize = defaultPageSize
	}
	if p.PageSize > maxPageSize {
		p.PageSize = maxPageSize
	}
	return p
}

func applyPagination(query *gorm.DB, p Pagination) *gorm.DB {
	p = p.Normalize()
	return query.Offset((p.Page - 1) * p.PageSize).Limit(p.PageSize)
}
