package dto

// PaginationDTO carries the counts a table footer needs: "Showing
// From-To of TotalCount" and "Page Page of TotalPages". From and To are
// zero on an empty page.
type PaginationDTO struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalCount int64 `json:"total_count"`
	TotalPages int   `json:"total_pages"`
	From       int   `json:"from"`
	To         int   `json:"to"`
}
