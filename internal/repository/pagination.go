package repository

// ListParams carries pagination, search and filter inputs for list queries.
type ListParams struct {
	Page        int
	Limit       int
	Sort        string
	Search      string
	Category    string
	Subcategory string
}

// Normalize clamps page/limit to usable values (page >= 1, limit defaults to 10).
func (p *ListParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = 10
	}
}

// Offset returns the row offset for the current page.
func (p ListParams) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Pagination summarizes a page of results.
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
	TotalCount int64 `json:"total_count"`
	HasNext    bool  `json:"has_next"`
	HasPrev    bool  `json:"has_prev"`
}

// NewPagination computes the summary for a page of total matching rows.
func NewPagination(page, limit int, total int64) Pagination {
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return Pagination{
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
		TotalCount: total,
		HasNext:    int64(page*limit) < total,
		HasPrev:    page > 1,
	}
}
