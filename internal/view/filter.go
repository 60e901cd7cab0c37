package view

import "regexp"

// RowsFilter restricts the window to rows matching prior search
// results. It is an immutable snapshot: the subset of absolute row
// positions for the current window within the filtered result set,
// plus the total match count. Replaced wholesale on every filter
// update and compared structurally to decide whether a reload is
// needed.
type RowsFilter struct {
	indices []int64
	total   int
}

// NewRowsFilter captures the window [rowsFrom, rowsFrom+numRows)
// within m's match set. rowsFrom counts matches, not raw rows.
func NewRowsFilter(m Matcher, rowsFrom int64, numRows int) *RowsFilter {
	return &RowsFilter{
		indices: m.MatchWindow(int(rowsFrom), numRows),
		total:   m.Count(),
	}
}

// Indices returns the absolute row positions in the current window.
func (f *RowsFilter) Indices() []int64 { return f.indices }

// Total returns the count of all matches, not just those in view.
func (f *RowsFilter) Total() int { return f.total }

// ColumnsFilter restricts which columns are displayed to those whose
// header matches a pattern. When the pattern matches no header the
// filter disables itself and falls back to all columns rather than
// leaving the view empty; the flag reports that silently.
type ColumnsFilter struct {
	pattern                *regexp.Regexp
	indices                []int
	filteredHeaders        []string
	numColumnsBeforeFilter int
	disabledBecauseNoMatch bool
}

// NewColumnsFilter tests pattern against every header in original
// order and keeps the matching positions.
func NewColumnsFilter(pattern *regexp.Regexp, headers []string) *ColumnsFilter {
	var indices []int
	var filtered []string
	for i, h := range headers {
		if pattern.MatchString(h) {
			indices = append(indices, i)
			filtered = append(filtered, h)
		}
	}
	disabled := false
	if len(indices) == 0 {
		indices = make([]int, len(headers))
		for i := range headers {
			indices[i] = i
		}
		filtered = append([]string(nil), headers...)
		disabled = true
	}
	return &ColumnsFilter{
		pattern:                pattern,
		indices:                indices,
		filteredHeaders:        filtered,
		numColumnsBeforeFilter: len(headers),
		disabledBecauseNoMatch: disabled,
	}
}

// FilteredHeaders returns the visible headers in original order.
func (f *ColumnsFilter) FilteredHeaders() []string { return f.filteredHeaders }

// Indices returns the visible column positions in original order.
func (f *ColumnsFilter) Indices() []int { return f.indices }

// Pattern returns the compiled header pattern.
func (f *ColumnsFilter) Pattern() *regexp.Regexp { return f.pattern }

// NumFiltered returns how many columns are visible.
func (f *ColumnsFilter) NumFiltered() int { return len(f.indices) }

// NumOriginal returns the column count before filtering.
func (f *ColumnsFilter) NumOriginal() int { return f.numColumnsBeforeFilter }

// DisabledBecauseNoMatch reports whether the filter fell back to all
// columns because nothing matched.
func (f *ColumnsFilter) DisabledBecauseNoMatch() bool { return f.disabledBecauseNoMatch }
