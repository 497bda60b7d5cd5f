package params

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Pagination holds the validated page/limit pair from a query string.
type Pagination struct {
	Page  int
	Limit int
}

// ParsePagination reads ?page=...&limit=... strictly. Query parameters arrive
// as untyped strings, so they are coerced and range-checked here at the
// boundary instead of being silently defaulted downstream.
//
// The second return value reports whether pagination was requested: only when
// both parameters are present does the caller paginate; a lone page or limit
// leaves it on the full dump. Any value that is present must still be an
// integer >= 1 (limit=0 included) or an error is returned.
func ParsePagination(q url.Values) (Pagination, bool, error) {
	pageStr := strings.TrimSpace(q.Get("page"))
	limitStr := strings.TrimSpace(q.Get("limit"))

	var p Pagination

	if pageStr != "" {
		page, err := strconv.Atoi(pageStr)
		if err != nil || page < 1 {
			return Pagination{}, false, fmt.Errorf("page must be a positive integer, got %q", pageStr)
		}
		p.Page = page
	}

	if limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 1 {
			return Pagination{}, false, fmt.Errorf("limit must be a positive integer, got %q", limitStr)
		}
		p.Limit = limit
	}

	return p, pageStr != "" && limitStr != "", nil
}
