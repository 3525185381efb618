package option

import (
	"github.com/agrilinklabs/agrilink/pkg/db/pagination"
	"gorm.io/gorm"
)

type Option interface {
	Apply(stmt *gorm.DB) *gorm.DB
}

type paginationOption struct {
	page pagination.Pagination
}

// ApplyPagination turns a cursor page request into a gorm clause. Listings
// order by (created_at desc, id desc); the cursor marks the last row of the
// previous page. One extra row is fetched to detect has-more.
func ApplyPagination(page pagination.Pagination) Option {
	return &paginationOption{page: page}
}

func (o *paginationOption) Apply(stmt *gorm.DB) *gorm.DB {
	size := o.page.PageSize
	if size <= 0 {
		size = 10
	}

	if o.page.PageToken != "" {
		cursor, err := pagination.DecodeCursor(o.page.PageToken)
		if err == nil && cursor != nil && cursor.CreatedAt != "" && cursor.ID != "" {
			stmt = stmt.Where(
				"(created_at < ?) OR (created_at = ? AND id < ?)",
				cursor.CreatedAt, cursor.CreatedAt, cursor.ID,
			)
		}
	}

	return stmt.Limit(size + 1)
}
