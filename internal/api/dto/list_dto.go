package dto

// ListMeta carries the derived pagination state for a list screen. Window
// entries are page numbers with -1 marking a compressed gap.
type ListMeta struct {
	Page       int    `json:"page"`
	PageSize   int    `json:"page_size"`
	TotalPages int    `json:"total_pages"`
	TotalItems int    `json:"total_items"`
	Window     []int  `json:"window"`
	Query      string `json:"query,omitempty"`
}
