package listing

import "math"

// PageSize is the fixed number of products per storefront page. Any
// client-supplied limit is ignored.
const PageSize = 8

// Window is the slice of the matching set a page covers, plus the page
// metadata reported to the client.
type Window struct {
	Offset      int64
	Limit       int64
	TotalPages  int64
	CurrentPage int
	Count       int64
}

// Paginate computes the window for page (1-indexed) over total matches. When
// everything fits on one page the requested page is ignored. Otherwise the
// page is used as given, so a page past the end yields an empty slice. An
// offset that would overflow saturates at math.MaxInt64.
func Paginate(total int64, page int) Window {
	if page < 1 {
		page = 1
	}
	if total < 0 {
		total = 0
	}

	w := Window{
		Limit:       PageSize,
		TotalPages:  (total + PageSize - 1) / PageSize,
		CurrentPage: 1,
		Count:       total,
	}
	if total <= PageSize {
		return w
	}

	w.CurrentPage = page
	if int64(page-1) > math.MaxInt64/PageSize {
		w.Offset = math.MaxInt64
		return w
	}
	w.Offset = int64(page-1) * PageSize
	return w
}
