package domain

// PaginationParams is the page window for trip listing, parsed at the HTTP
// layer and consumed by the repo's LIMIT/OFFSET clause.
// Page is 1-indexed; Limit is capped at 100 by NewPaginationParams.
type PaginationParams struct {
	// Page is the current page number, starting at 1.
	Page int
	// Limit is the maximum number of rows per page.
	Limit int
}

// NewPaginationParams normalizes optional query parameters into a usable
// window. Absent or out-of-range values fall back to page=1, limit=20, and
// the limit ceiling of 100 keeps a single request from paging the whole table.
func NewPaginationParams(page, limit *int) PaginationParams {
	p := PaginationParams{Page: 1, Limit: 20}
	if page != nil && *page >= 1 {
		p.Page = *page
	}
	if limit != nil && *limit >= 1 {
		p.Limit = *limit
		if p.Limit > 100 {
			p.Limit = 100
		}
	}
	return p
}

// Offset converts the 1-indexed page into the zero-based SQL OFFSET.
func (p PaginationParams) Offset() int {
	return (p.Page - 1) * p.Limit
}
