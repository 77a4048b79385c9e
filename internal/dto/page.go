package dto

// Default paging used when a request leaves the parameters out.
const (
	DefaultPageNumber = 0
	DefaultPageSize   = 50
	MaxPageSize       = 200
	SortAsc           = "asc"
	SortDesc          = "desc"
)

// PageRequest selects one page of a sorted listing. PageNumber is zero-based.
type PageRequest struct {
	PageNumber int    `query:"pageNumber"`
	PageSize   int    `query:"pageSize"`
	SortBy     string `query:"sortBy"`
	SortOrder  string `query:"sortOrder"`
}

// Normalize clamps the page to sane bounds and fills in defaults.
func (p PageRequest) Normalize(defaultSortBy string) PageRequest {
	if p.PageNumber < 0 {
		p.PageNumber = DefaultPageNumber
	}
	if p.PageSize <= 0 {
		p.PageSize = DefaultPageSize
	}
	if p.PageSize > MaxPageSize {
		p.PageSize = MaxPageSize
	}
	if p.SortBy == "" {
		p.SortBy = defaultSortBy
	}
	if p.SortOrder != SortDesc {
		p.SortOrder = SortAsc
	}
	return p
}

// Offset is the number of rows before this page.
func (p PageRequest) Offset() int {
	return p.PageNumber * p.PageSize
}

// Page is one page of a listing plus the totals needed to walk the rest.
type Page[T any] struct {
	Content       []T   `json:"content"`
	PageNumber    int   `json:"page_number"`
	PageSize      int   `json:"page_size"`
	TotalElements int64 `json:"total_elements"`
	TotalPages    int   `json:"total_pages"`
	LastPage      bool  `json:"last_page"`
}

// NewPage wraps content fetched for req out of total matching rows.
func NewPage[T any](content []T, req PageRequest, total int64) Page[T] {
	totalPages := 0
	if req.PageSize > 0 {
		totalPages = int((total + int64(req.PageSize) - 1) / int64(req.PageSize))
	}
	return Page[T]{
		Content:       content,
		PageNumber:    req.PageNumber,
		PageSize:      req.PageSize,
		TotalElements: total,
		TotalPages:    totalPages,
		LastPage:      req.PageNumber+1 >= totalPages,
	}
}
