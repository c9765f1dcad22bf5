package pagination

// Response is a generic page envelope for list endpoints.
type Response[T any] struct {
	Page      int `json:"page"`
	Size      int `json:"size"`
	PageCount int `json:"page_count"`
	Total     int `json:"total"`
	Items     []T `json:"items"`
}

// NewResponse builds a page envelope from the fetched items, the total
// matching row count and the request's pagination parameters.
func NewResponse[T any](items []T, total int, p PageSize) Response[T] {
	pageCount := 0
	if p.Size > 0 {
		pageCount = total / p.Size
		if total%p.Size > 0 {
			pageCount++
		}
	}

	return Response[T]{
		Page:      p.Page,
		Size:      p.Size,
		PageCount: pageCount,
		Total:     total,
		Items:     items,
	}
}
