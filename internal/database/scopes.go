package database

import (
	"gorm.io/gorm"

	"github.com/yukikurage/worklog-api/internal/utils"
)

// Paginate applies pagination to a GORM query. Unpaginated params leave the query untouched.
func Paginate(params utils.PaginationParams) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if !params.Enabled() {
			return db
		}
		return db.Offset(params.Offset).Limit(params.Limit)
	}
}
