package repositories

import (
	"storefront/internal/dto"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// paginate orders and limits a query to one page. sortable maps the sort keys
// a client may ask for to column names; anything else sorts by id.
func paginate(page dto.PageRequest, sortable map[string]string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		column, ok := sortable[page.SortBy]
		if !ok {
			column = "id"
		}
		return db.
			Order(clause.OrderByColumn{Column: clause.Column{Name: column}, Desc: page.SortOrder == dto.SortDesc}).
			Offset(page.Offset()).
			Limit(page.PageSize)
	}
}
