package domain

const (
	DefaultPageNo   = 0
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// PageRequest selects a zero-based page of a listing
type PageRequest struct {
	PageNo   int
	PageSize int
}

// Validate fails with ErrBadParamInput on a negative page or a non-positive size.
func (r PageRequest) Validate() error {
	if r.PageNo < 0 {
		return NewValidationError("page number must not be negative")
	}
	if r.PageSize <= 0 {
		return NewValidationError("page size must be greater than zero")
	}
	return nil
}

// Offset is the number of rows skipped before the page starts.
// Callers check PastEnd first; a page past the end may overflow.
func (r PageRequest) Offset() int {
	return r.PageNo * r.PageSize
}

// PastEnd reports whether the page starts at or after the last of total rows.
func (r PageRequest) PastEnd(total int64) bool {
	return int64(r.PageNo) >= totalPages(total, r.PageSize)
}

func totalPages(total int64, size int) int64 {
	if size <= 0 {
		return 0
	}
	return (total + int64(size) - 1) / int64(size)
}

// Page is one page of a listing plus the totals of the whole listing
type Page[T any] struct {
	Content       []T   `json:"content"`
	PageNo        int   `json:"page_no"`
	PageSize      int   `json:"page_size"`
	TotalElements int64 `json:"total_elements"`
	TotalPages    int   `json:"total_pages"`
	First         bool  `json:"first"`
	Last          bool  `json:"last"`
}

// NewPage computes the page metadata from the request and the listing total.
// A page past the end keeps the totals and has empty content.
func NewPage[T any](content []T, req PageRequest, total int64) Page[T] {
	if content == nil {
		content = []T{}
	}
	pages := totalPages(total, req.PageSize)
	return Page[T]{
		Content:       content,
		PageNo:        req.PageNo,
		PageSize:      req.PageSize,
		TotalElements: total,
		TotalPages:    int(pages),
		First:         req.PageNo == 0,
		Last:          int64(req.PageNo) >= pages-1,
	}
}

// MapPage converts the content of a page, keeping its metadata.
func MapPage[T, R any](p Page[T], fn func(T) R) Page[R] {
	content := make([]R, len(p.Content))
	for i := range p.Content {
		content[i] = fn(p.Content[i])
	}
	return Page[R]{
		Content:       content,
		PageNo:        p.PageNo,
		PageSize:      p.PageSize,
		TotalElements: p.TotalElements,
		TotalPages:    p.TotalPages,
		First:         p.First,
		Last:          p.Last,
	}
}
