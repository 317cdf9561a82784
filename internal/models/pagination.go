package models

const (
	DefaultPage     = 1
	DefaultPageSize = 10
)

// PageQuery captures the page/pageSize parameters shared by every list
// endpoint.
type PageQuery struct {
	Page     int
	PageSize int
}

// Normalize clamps the query to usable values: page defaults to 1 and
// pageSize to 10 when absent or non-positive. The resulting offset is never
// negative.
func (q PageQuery) Normalize() PageQuery {
	if q.Page < 1 {
		q.Page = DefaultPage
	}
	if q.PageSize < 1 {
		q.PageSize = DefaultPageSize
	}
	return q
}

// Offset returns the LIMIT/OFFSET start index for the normalized query.
func (q PageQuery) Offset() int {
	return (q.Page - 1) * q.PageSize
}

// PageInfo describes one page of a list result: the effective window that was
// applied plus the total count taken before the window.
type PageInfo struct {
	Page     int
	PageSize int
	Total    int
}
