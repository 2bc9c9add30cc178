package utils

import (
	"gorm.io/gorm"
)

func ApplyPagination(query *gorm.DB, limit, page int) *gorm.DB {
	if limit > 0 && page >= 1 {
		query = query.Limit(limit).Offset(limit * (page - 1))
	}
	return query
}

func TotalPages(total int64, limit int) int {
	if limit <= 0 {
		return 1
	}
	pages := int((total + int64(limit) - 1) / int64(limit))
	if pages == 0 {
		return 1
	}
	return pages
}
