// Package pagination implements the shared page/meta contract used by every
// list query: 1-based pages, a default page size, and response metadata with
// nil prev/next sentinels at the boundaries.
package pagination

// DefaultLimit is the page size used when the caller does not specify one.
const DefaultLimit = 10

// Params carries the requested page and page size.
type Params struct {
	Page  int
	Limit int
}

// Normalize clamps Params to sane values (page >= 1, limit defaulted).
func (p Params) Normalize() Params {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = DefaultLimit
	}
	return p
}

// Offset returns the row offset for the normalized page.
func (p Params) Offset() int {
	p = p.Normalize()
	return (p.Page - 1) * p.Limit
}

// Meta describes the position of a page within the full result set.
// Prev and Next are nil at the first and last page respectively.
type Meta struct {
	Total       int64 `json:"total"`
	PerPage     int   `json:"perPage"`
	CurrentPage int   `json:"currentPage"`
	LastPage    int   `json:"lastPage"`
	Prev        *int  `json:"prev"`
	Next        *int  `json:"next"`
}

// NewMeta computes pagination metadata for a total item count.
func NewMeta(total int64, p Params) Meta {
	p = p.Normalize()

	lastPage := int(total / int64(p.Limit))
	if total%int64(p.Limit) > 0 {
		lastPage++
	}
	if lastPage < 1 {
		lastPage = 1
	}

	meta := Meta{
		Total:       total,
		PerPage:     p.Limit,
		CurrentPage: p.Page,
		LastPage:    lastPage,
	}
	if p.Page > 1 {
		prev := p.Page - 1
		meta.Prev = &prev
	}
	if p.Page < lastPage {
		next := p.Page + 1
		meta.Next = &next
	}
	return meta
}
