// Package view manages the viewport of the browser: which slice of
// rows is materialized, how row and column filters reshape it, and
// how the two-dimensional cursor stays valid as data and filters
// change. It is single-threaded and synchronous; a reload blocks for
// the duration of the source fetch and the elapsed time is recorded
// as the observability hook for that cost.
package view

import (
	"regexp"
	"slices"
	"time"

	"github.com/jask/tablens/internal/input"
	"github.com/jask/tablens/internal/source"
)

// Matcher is the slice of the search engine the view depends on:
// match counts and windows into the set of matched row positions.
type Matcher interface {
	Count() int
	MatchWindow(start, count int) []int64
}

// View owns the window description, the materialized rows, the
// optional filters and the selection. The source is a borrowed,
// read-only collaborator; the view is the sole mutator of its own
// state.
type View struct {
	source        source.Source
	rows          []source.Row
	numRows       int
	rowsFrom      int64
	filter        *RowsFilter
	columnsFilter *ColumnsFilter
	elapsed       *time.Duration

	// Selection is exported so the application can establish a column
	// or cell focus; all movement still goes through bounds-aware
	// setters.
	Selection Selection
}

// New materializes the initial window of numRows rows from offset 0.
func New(src source.Source, numRows int) (*View, error) {
	v := &View{
		source:    src,
		numRows:   numRows,
		Selection: NewSelection(numRows),
	}
	if err := v.reload(); err != nil {
		return nil, err
	}
	return v, nil
}

// Headers returns the filtered headers when a column filter is
// active, the source's native headers otherwise.
func (v *View) Headers() []string {
	if v.columnsFilter != nil {
		return v.columnsFilter.FilteredHeaders()
	}
	return v.source.Headers()
}

// Rows returns the currently materialized rows.
func (v *View) Rows() []source.Row {
	return v.rows
}

// CellValue resolves a header name against the visible headers and
// the current row selection. The second return is false when either
// coordinate is missing or out of range.
func (v *View) CellValue(columnName string) (string, bool) {
	col := slices.Index(v.Headers(), columnName)
	rowIdx, ok := v.Selection.Row.Index()
	if col < 0 || !ok || rowIdx >= len(v.rows) {
		return "", false
	}
	fields := v.rows[rowIdx].Fields
	if col >= len(fields) {
		return "", false
	}
	return fields[col], true
}

// NumRows returns the window size.
func (v *View) NumRows() int { return v.numRows }

// SetNumRows resizes the window and reloads. No-op if unchanged.
func (v *View) SetNumRows(numRows int) error {
	if numRows == v.numRows {
		return nil
	}
	prev := v.numRows
	v.numRows = numRows
	if err := v.reload(); err != nil {
		v.numRows = prev
		return err
	}
	return nil
}

// SetFilter builds a fresh rows filter from m. The filter object is
// always replaced because it carries the current total match count,
// but rows are only re-fetched when the visible index subset actually
// changed.
func (v *View) SetFilter(m Matcher) error {
	filter := NewRowsFilter(m, v.rowsFrom, v.numRows)
	needsReload := v.filter == nil || !slices.Equal(v.filter.indices, filter.indices)
	prev := v.filter
	v.filter = filter
	if !needsReload {
		return nil
	}
	if err := v.reload(); err != nil {
		v.filter = prev
		return err
	}
	return nil
}

// HasFilter reports whether a rows filter is active.
func (v *View) HasFilter() bool { return v.filter != nil }

// ResetFilter clears the rows filter and reloads. No-op if no filter
// was active.
func (v *View) ResetFilter() error {
	if v.filter == nil {
		return nil
	}
	prev := v.filter
	v.filter = nil
	if err := v.reload(); err != nil {
		v.filter = prev
		return err
	}
	return nil
}

// ColumnsFilter returns the active column filter, if any.
func (v *View) ColumnsFilter() *ColumnsFilter {
	return v.columnsFilter
}

// SetColumnsFilter builds a column filter from pattern over the
// source's native headers and reloads so rows are re-projected.
func (v *View) SetColumnsFilter(pattern *regexp.Regexp) error {
	prev := v.columnsFilter
	v.columnsFilter = NewColumnsFilter(pattern, v.source.Headers())
	if err := v.reload(); err != nil {
		v.columnsFilter = prev
		return err
	}
	return nil
}

// ResetColumnsFilter clears the column filter and reloads. No-op if
// no column filter was active.
func (v *View) ResetColumnsFilter() error {
	if v.columnsFilter == nil {
		return nil
	}
	prev := v.columnsFilter
	v.columnsFilter = nil
	if err := v.reload(); err != nil {
		v.columnsFilter = prev
		return err
	}
	return nil
}

// RowsFrom returns the absolute offset of the window start. With a
// rows filter active the offset counts matches, not raw rows.
func (v *View) RowsFrom() int64 { return v.rowsFrom }

// SetRowsFrom moves the window start, clamped so the window never
// scrolls past the last full window when the total is known. No-op if
// the clamped offset is unchanged.
func (v *View) SetRowsFrom(rowsFrom int64) error {
	if bottom, ok := v.bottomRowsFrom(); ok && rowsFrom > bottom {
		rowsFrom = bottom
	}
	if rowsFrom == v.rowsFrom {
		return nil
	}
	prev := v.rowsFrom
	v.rowsFrom = rowsFrom
	if err := v.reload(); err != nil {
		v.rowsFrom = prev
		return err
	}
	return nil
}

// SelectedOffset returns the absolute row number of the selected row:
// window start plus selected index. Absent when no row is selected.
func (v *View) SelectedOffset() (int64, bool) {
	i, ok := v.Selection.Row.Index()
	if !ok {
		return 0, false
	}
	return v.rowsFrom + int64(i), true
}

// Elapsed returns the duration of the last reload, if one happened.
func (v *View) Elapsed() (time.Duration, bool) {
	if v.elapsed == nil {
		return 0, false
	}
	return *v.elapsed, true
}

// TotalLines returns the source's exact line count, if known.
func (v *View) TotalLines() (int64, bool) {
	return v.source.TotalLines()
}

// TotalLinesApprox returns the source's estimated line count.
func (v *View) TotalLinesApprox() (int64, bool) {
	return v.source.TotalLinesApprox()
}

// Total returns the filter's total match count when a rows filter is
// active, otherwise the source's exact count, falling back to the
// estimate. Absent when nothing is known.
func (v *View) Total() (int64, bool) {
	if v.filter != nil {
		return int64(v.filter.total), true
	}
	if n, ok := v.source.TotalLines(); ok {
		return n, true
	}
	if n, ok := v.source.TotalLinesApprox(); ok {
		return n, true
	}
	return 0, false
}

// InView reports whether the absolute row index falls inside the
// current window.
func (v *View) InView(rowIndex int64) bool {
	return rowIndex >= v.rowsFrom && rowIndex < v.rowsFrom+int64(v.numRows)
}

// HandleControl applies a decoded navigation command. Commands
// outside the view's responsibility are ignored.
func (v *View) HandleControl(control input.Control) error {
	switch control := control.(type) {
	case input.ScrollDown:
		if i, ok := v.Selection.Row.Index(); ok {
			if i == v.numRows-1 {
				return v.increaseRowsFrom(1)
			}
			v.Selection.Row.SelectNext()
			return nil
		}
		return v.increaseRowsFrom(1)
	case input.ScrollUp:
		if i, ok := v.Selection.Row.Index(); ok {
			if i == 0 {
				return v.decreaseRowsFrom(1)
			}
			v.Selection.Row.SelectPrevious()
			return nil
		}
		return v.decreaseRowsFrom(1)
	case input.ScrollPageDown:
		if err := v.increaseRowsFrom(int64(v.numRows)); err != nil {
			return err
		}
		v.Selection.Row.SelectFirst()
	case input.ScrollPageUp:
		if err := v.decreaseRowsFrom(int64(v.numRows)); err != nil {
			return err
		}
		v.Selection.Row.SelectFirst()
	case input.ScrollTop:
		if err := v.SetRowsFrom(0); err != nil {
			return err
		}
		v.Selection.Row.SelectFirst()
	case input.ScrollBottom:
		if total, ok := v.Total(); ok {
			rowsFrom := total - int64(v.numRows)
			if rowsFrom < 0 {
				rowsFrom = 0
			}
			if err := v.SetRowsFrom(rowsFrom); err != nil {
				return err
			}
		}
		v.Selection.Row.SelectLast()
	case input.ScrollTo:
		rowsFrom := control.Line - 1
		if rowsFrom < 0 {
			rowsFrom = 0
		}
		if bottom, ok := v.bottomRowsFrom(); ok && rowsFrom > bottom {
			rowsFrom = bottom
		}
		if err := v.SetRowsFrom(rowsFrom); err != nil {
			return err
		}
		v.Selection.Row.SelectFirst()
	}
	return nil
}

// bottomRowsFrom is the highest offset that still shows a full window
// given the known or estimated total. Absent when no total is known,
// in which case the window is never artificially capped.
func (v *View) bottomRowsFrom() (int64, bool) {
	total, ok := v.Total()
	if !ok {
		return 0, false
	}
	bottom := total - int64(v.numRows)
	if bottom < 0 {
		bottom = 0
	}
	return bottom, true
}

func (v *View) increaseRowsFrom(delta int64) error {
	return v.SetRowsFrom(v.rowsFrom + delta)
}

func (v *View) decreaseRowsFrom(delta int64) error {
	next := v.rowsFrom - delta
	if next < 0 {
		next = 0
	}
	return v.SetRowsFrom(next)
}

func subsetColumns(rows []source.Row, indices []int) []source.Row {
	out := make([]source.Row, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.Subset(indices))
	}
	return out
}

// reload is the single fetch path. It materializes either the
// filtered index subset or a contiguous range, projects columns, and
// re-clamps the selection bounds to the new counts. On a fetch error
// nothing is mutated; the failure propagates to the caller unchanged.
func (v *View) reload() error {
	start := time.Now()
	var rows []source.Row
	var err error
	if v.filter != nil {
		rows, err = v.source.ReadIndices(v.filter.indices)
	} else {
		rows, err = v.source.ReadRange(v.rowsFrom, v.numRows)
	}
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	if v.columnsFilter != nil {
		rows = subsetColumns(rows, v.columnsFilter.indices)
	}
	v.rows = rows
	v.elapsed = &elapsed

	// The selection may be out of range for the new window.
	v.Selection.Row.SetBound(len(v.rows))
	if len(v.rows) > 0 {
		v.Selection.Column.SetBound(len(v.rows[0].Fields))
	}
	return nil
}
