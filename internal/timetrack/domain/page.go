package domain

import "fmt"

// DefaultPageLimit applies when a listing request omits the page size.
const DefaultPageLimit = 10

// Page is a 1-based pagination request.
type Page struct {
	Number int
	Limit  int
}

// Validate rejects non-positive page numbers or limits.
func (p Page) Validate() error {
	if p.Number < 1 || p.Limit < 1 {
		return fmt.Errorf("%w: page=%d limit=%d", ErrBadPagination, p.Number, p.Limit)
	}
	return nil
}

// Skip is the number of items before this page.
func (p Page) Skip() int {
	return (p.Number - 1) * p.Limit
}

// Bounds returns the [lo, hi) slice window for a list of total items. A page
// past the end yields an empty window.
func (p Page) Bounds(total int) (int, int) {
	lo := p.Skip()
	if lo > total {
		lo = total
	}
	hi := lo + p.Limit
	if hi > total {
		hi = total
	}
	return lo, hi
}

// TotalPages is ceil(total / limit).
func TotalPages(total, limit int) int {
	if total == 0 {
		return 0
	}
	return (total + limit - 1) / limit
}
