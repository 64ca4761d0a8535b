package domain

// PaginationParams carries page/limit values from the HTTP layer to the service.
// Page is 1-indexed. Limit is capped at MaxPageLimit by NewPaginationParams.
type PaginationParams struct {
	Page  int
	Limit int
}

// DefaultPageLimit and MaxPageLimit bound plan listings.
const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

// NewPaginationParams builds a PaginationParams from optional query params.
// Nil or non-positive values fall back to page=1, limit=DefaultPageLimit.
func NewPaginationParams(page, limit *int) PaginationParams {
	p := PaginationParams{Page: 1, Limit: DefaultPageLimit}
	if page != nil && *page >= 1 {
		p.Page = *page
	}
	if limit != nil && *limit >= 1 {
		p.Limit = min(*limit, MaxPageLimit)
	}
	return p
}

// Offset returns the zero-based index of the first item on the page.
func (p PaginationParams) Offset() int {
	return (p.Page - 1) * p.Limit
}

// PageMeta describes the slice of results returned.
type PageMeta struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

// Paginate returns the window of items selected by p. Out-of-range pages,
// and params not built by NewPaginationParams with a page or limit below 1,
// yield an empty, non-nil slice.
func Paginate[T any](items []T, p PaginationParams) ([]T, PageMeta) {
	meta := PageMeta{Page: p.Page, Limit: p.Limit, Total: len(items)}
	if p.Page < 1 || p.Limit < 1 {
		return []T{}, meta
	}
	// Compare page counts first; Offset overflows for huge pages.
	if p.Page-1 >= (len(items)+p.Limit-1)/p.Limit {
		return []T{}, meta
	}
	start := p.Offset()
	end := min(start+p.Limit, len(items))
	return items[start:end], meta
}
