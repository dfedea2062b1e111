// Package view derives list-screen state from source arrays: substring
// filtering, fixed-size pagination and the compressed page-number window.
// Everything here is pure and never mutates its input.
package view

import "strings"

// Filter returns the items where any configured field contains query as a
// case-insensitive substring. An empty query returns the input unchanged.
func Filter[T any](items []T, query string, fields func(T) []string) []T {
	if query == "" {
		return items
	}
	needle := strings.ToLower(query)

	matched := make([]T, 0, len(items))
	for _, item := range items {
		for _, field := range fields(item) {
			if strings.Contains(strings.ToLower(field), needle) {
				matched = append(matched, item)
				break
			}
		}
	}
	return matched
}

// Paginate slices items into the requested page. totalPages is
// ceil(len/pageSize); page is clamped into [1, totalPages] whenever there is
// at least one page.
func Paginate[T any](items []T, page, pageSize int) ([]T, int) {
	if pageSize <= 0 {
		return nil, 0
	}
	totalPages := (len(items) + pageSize - 1) / pageSize
	if totalPages == 0 {
		return []T{}, 0
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end], totalPages
}

// EllipsisPage marks a compressed gap in a page window.
const EllipsisPage = -1

// PageWindow produces the page-number strip for the pager control. Pages are
// positive numbers; gaps are EllipsisPage. The shape is a fixed tie-break
// table so every screen paints the same strip:
//
//	total <= 5          -> 1..total
//	current <= 3        -> 1 2 3 4 … total
//	current >= total-2  -> 1 … total-3 total-2 total-1 total
//	otherwise           -> 1 … current-1 current current+1 … total
func PageWindow(current, total int) []int {
	if total <= 0 {
		return nil
	}
	if total <= 5 {
		window := make([]int, total)
		for i := range window {
			window[i] = i + 1
		}
		return window
	}

	switch {
	case current <= 3:
		return []int{1, 2, 3, 4, EllipsisPage, total}
	case current >= total-2:
		return []int{1, EllipsisPage, total - 3, total - 2, total - 1, total}
	default:
		return []int{1, EllipsisPage, current - 1, current, current + 1, EllipsisPage, total}
	}
}

// Page bundles the derived state for one rendered list page.
type Page[T any] struct {
	Items      []T
	Page       int
	PageSize   int
	TotalPages int
	TotalItems int
	Window     []int
}

// Apply runs filter then pagination in one pass, clamping the page so a
// query change never leaves the caller on an out-of-range page.
func Apply[T any](items []T, query string, fields func(T) []string, page, pageSize int) Page[T] {
	filtered := Filter(items, query, fields)
	pageItems, totalPages := Paginate(filtered, page, pageSize)

	if page < 1 {
		page = 1
	}
	if totalPages > 0 && page > totalPages {
		page = totalPages
	}

	return Page[T]{
		Items:      pageItems,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
		TotalItems: len(filtered),
		Window:     PageWindow(page, totalPages),
	}
}
