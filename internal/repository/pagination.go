package repository

import "gorm.io/gorm"

// 单页上限，防止一次拉全部采购或轨迹记录
const maxPageSize = 200

// applyPagination 列表查询统一分页，收敛非法页码、偏移量与超限页大小。
func applyPagination(query *gorm.DB, page, pageSize int) *gorm.DB {
	if query == nil || pageSize <= 0 {
		return query
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * pageSize
	if offset < 0 {
		offset = 0
	}
	return query.Limit(pageSize).Offset(offset)
}
