package models

import (
	"strings"

	"gorm.io/gorm"
)

// ListFilter carries the filter parameters every collection endpoint
// accepts. A zero-value field means "no constraint", never "match empty".
type ListFilter struct {
	Search   string
	Status   string
	Type     string
	Priority string
}

// Scope applies the filter to a query. searchColumns are the columns the
// free-text search matches against, case-insensitive substring.
func (f ListFilter) Scope(searchColumns ...string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if f.Search != "" && len(searchColumns) > 0 {
			pattern := "%" + strings.ToLower(f.Search) + "%"
			clause := ""
			args := make([]interface{}, 0, len(searchColumns))
			for i, col := range searchColumns {
				if i > 0 {
					clause += " OR "
				}
				clause += "LOWER(" + col + ") LIKE ?"
				args = append(args, pattern)
			}
			db = db.Where(clause, args...)
		}
		if f.Status != "" {
			db = db.Where("status = ?", f.Status)
		}
		if f.Type != "" {
			db = db.Where("type = ?", f.Type)
		}
		if f.Priority != "" {
			db = db.Where("priority = ?", f.Priority)
		}
		return db
	}
}
