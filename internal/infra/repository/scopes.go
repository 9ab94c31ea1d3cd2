package repository

import (
	"gorm.io/gorm"

	"github.com/BruksfildServices01/turnera-api/internal/listing"
)

// visibility restricts a query on the given active column.
func visibility(vis listing.Visibility, column string) func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		switch vis {
		case listing.IncludeInactive:
			return tx
		case listing.InactiveOnly:
			return tx.Where(column+" = ?", false)
		default:
			return tx.Where(column+" = ?", true)
		}
	}
}

func paginate(limit, offset int) func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		if limit <= 0 {
			return tx
		}
		return tx.Limit(limit).Offset(offset)
	}
}
