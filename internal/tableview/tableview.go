// Package tableview turns a raw entity collection into the rows a table
// actually shows: global fuzzy search, per-column equality filters,
// stable single-column sort, then fixed-size pagination. It is pure
// derivation; an empty result is a valid state, not an error.
package tableview

import (
	"sort"
	"strings"

	"projecthub/internal/constants"
)

// FilterAll is the sentinel filter value meaning "no constraint". An
// empty string is treated the same way.
const FilterAll = "all"

// Column describes one filterable/sortable column.
type Column[T any] struct {
	// Value returns the raw field value compared with strict equality
	// when the column is filtered.
	Value func(T) string
	// Less orders rows ascending by this column. Columns with a nil
	// Less are filterable but not sortable.
	Less func(a, b T) bool
}

// View binds a row type to its searchable text and column set.
type View[T any] struct {
	// SearchText builds the per-row haystack for global fuzzy search:
	// display-relevant fields joined and matched case-insensitively.
	SearchText func(T) string
	Columns    map[string]Column[T]
}

// Query captures the current search/filter/sort/page state.
//
// The engine never resets the page index when filters change; callers
// own that decision and an out-of-range page simply yields an empty page
// with correct totals.
type Query struct {
	Search   string
	Filters  map[string]string
	SortBy   string
	SortDesc bool
	Page     int
	PageSize int
}

// Result is the visible page plus the counts a "Showing X–Y of Z" footer
// and "Page P of N" indicator need.
type Result[T any] struct {
	Rows       []T   `json:"rows"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalCount int64 `json:"total_count"`
	TotalPages int   `json:"total_pages"`
	From       int   `json:"from"`
	To         int   `json:"to"`
}

// Apply runs the pipeline in order: fuzzy search, column filters, sort,
// pagination.
func (v *View[T]) Apply(rows []T, q Query) Result[T] {
	filtered := v.fuzzyFilter(rows, q.Search)
	filtered = v.columnFilter(filtered, q.Filters)
	v.sortRows(filtered, q.SortBy, q.SortDesc)
	return paginate(filtered, q.Page, q.PageSize)
}

func (v *View[T]) fuzzyFilter(rows []T, search string) []T {
	needle := strings.ToLower(strings.TrimSpace(search))
	if needle == "" {
		out := make([]T, len(rows))
		copy(out, rows)
		return out
	}

	out := make([]T, 0, len(rows))
	for _, row := range rows {
		if strings.Contains(strings.ToLower(v.SearchText(row)), needle) {
			out = append(out, row)
		}
	}
	return out
}

func (v *View[T]) columnFilter(rows []T, filters map[string]string) []T {
	for name, want := range filters {
		if want == "" || want == FilterAll {
			continue
		}
		col, ok := v.Columns[name]
		if !ok || col.Value == nil {
			continue
		}

		kept := rows[:0]
		for _, row := range rows {
			if col.Value(row) == want {
				kept = append(kept, row)
			}
		}
		rows = kept
	}
	return rows
}

func (v *View[T]) sortRows(rows []T, sortBy string, desc bool) {
	if sortBy == "" {
		return
	}
	col, ok := v.Columns[sortBy]
	if !ok || col.Less == nil {
		return
	}

	// Stable so equal keys keep their prior relative order.
	if desc {
		sort.SliceStable(rows, func(i, j int) bool { return col.Less(rows[j], rows[i]) })
	} else {
		sort.SliceStable(rows, func(i, j int) bool { return col.Less(rows[i], rows[j]) })
	}
}

func paginate[T any](rows []T, page, pageSize int) Result[T] {
	if page < constants.MinPage {
		page = constants.MinPage
	}
	if pageSize < 1 || pageSize > constants.MaxPageSize {
		pageSize = constants.DefaultPageSize
	}

	total := len(rows)
	totalPages := total / pageSize
	if total%pageSize > 0 {
		totalPages++
	}

	start := (page - 1) * pageSize
	if start >= total {
		return Result[T]{
			Rows:       []T{},
			Page:       page,
			PageSize:   pageSize,
			TotalCount: int64(total),
			TotalPages: totalPages,
		}
	}

	end := start + pageSize
	if end > total {
		end = total
	}

	return Result[T]{
		Rows:       rows[start:end],
		Page:       page,
		PageSize:   pageSize,
		TotalCount: int64(total),
		TotalPages: totalPages,
		From:       start + 1,
		To:         end,
	}
}
