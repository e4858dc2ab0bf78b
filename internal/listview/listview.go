// Package listview implements the client-side list pipeline shared by every
// table view: filter the full fetched collection, then slice out one page.
package listview

import "strings"

// Page is one rendered slice of a filtered collection.
type Page[T any] struct {
	Items      []T
	Number     int
	TotalPages int
}

// HasPrev reports whether a Previous move is allowed.
func (p Page[T]) HasPrev() bool { return p.Number > 1 }

// HasNext reports whether a Next move is allowed.
func (p Page[T]) HasNext() bool { return p.Number < p.TotalPages }

// FilterByName keeps items whose name contains the term, case-insensitively.
// An empty term keeps everything.
func FilterByName[T any](items []T, term string, name func(T) string) []T {
	if term == "" {
		return items
	}
	term = strings.ToLower(term)
	out := make([]T, 0, len(items))
	for _, item := range items {
		if strings.Contains(strings.ToLower(name(item)), term) {
			out = append(out, item)
		}
	}
	return out
}

// Filter keeps items the predicate accepts.
func Filter[T any](items []T, keep func(T) bool) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if keep(item) {
			out = append(out, item)
		}
	}
	return out
}

// Reversed returns a copy with newest-fetched entries first. The
// all-appointments view orders by reverse fetch position, not by date.
func Reversed[T any](items []T) []T {
	out := make([]T, len(items))
	for i, item := range items {
		out[len(items)-1-i] = item
	}
	return out
}

// Paginate slices out the requested fixed-size page. The page number is
// clamped to [1, totalPages], so out-of-range requests degrade to the
// nearest valid page rather than failing.
func Paginate[T any](items []T, pageSize, page int) Page[T] {
	if pageSize <= 0 {
		pageSize = 1
	}
	totalPages := (len(items) + pageSize - 1) / pageSize
	if page < 1 {
		page = 1
	}
	if totalPages > 0 && page > totalPages {
		page = totalPages
	}
	if totalPages == 0 {
		return Page[T]{Items: nil, Number: 1, TotalPages: 0}
	}
	start := (page - 1) * pageSize
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	return Page[T]{Items: items[start:end], Number: page, TotalPages: totalPages}
}
