package dto

// PageRequest carries paging query parameters.
type PageRequest struct {
	Page     int `form:"page"`
	PageSize int `form:"page_size"`
}

// GetPage returns the page number, defaulting to 1.
func (r *PageRequest) GetPage() int {
	if r.Page <= 0 {
		return 1
	}
	return r.Page
}

// GetPageSize returns the page size, defaulting to 20, capped at 100.
func (r *PageRequest) GetPageSize() int {
	if r.PageSize <= 0 {
		return 20
	}
	if r.PageSize > 100 {
		return 100
	}
	return r.PageSize
}

// GetOffset returns the row offset for the current page.
func (r *PageRequest) GetOffset() int {
	return (r.GetPage() - 1) * r.GetPageSize()
}
