package view

// SelectionDimension is a clamped cursor index over one axis of the
// window. The index is dumb: it is always between 0 and bound-1 and
// says nothing about absolute record numbers. All mutation funnels
// through SetIndex and SetBound so clamping cannot be forgotten at a
// call site.
type SelectionDimension struct {
	index *int
	bound int
}

// Index returns the selected index, if any.
func (d *SelectionDimension) Index() (int, bool) {
	if d.index == nil {
		return 0, false
	}
	return *d.index, true
}

// Bound returns the exclusive upper limit for the index.
func (d *SelectionDimension) Bound() int {
	return d.bound
}

// SetIndex selects the given index, clamped into [0, bound-1]. With a
// zero bound there is nothing to select and the index stays absent.
func (d *SelectionDimension) SetIndex(i int) {
	if d.bound == 0 {
		d.index = nil
		return
	}
	if i > d.bound-1 {
		i = d.bound - 1
	}
	if i < 0 {
		i = 0
	}
	d.index = &i
}

// SetBound replaces the upper limit and re-clamps a present index.
// This is how reloads keep the cursor valid when row or column counts
// change.
func (d *SelectionDimension) SetBound(bound int) {
	if bound < 0 {
		bound = 0
	}
	d.bound = bound
	if d.index != nil {
		d.SetIndex(*d.index)
	}
}

// SelectNext advances the index by one, saturating at the bound.
// Does nothing if nothing is selected.
func (d *SelectionDimension) SelectNext() {
	if i, ok := d.Index(); ok {
		d.SetIndex(i + 1)
	}
}

// SelectPrevious retreats the index by one, saturating at zero.
// Does nothing if nothing is selected.
func (d *SelectionDimension) SelectPrevious() {
	if i, ok := d.Index(); ok {
		d.SetIndex(i - 1)
	}
}

// SelectFirst jumps to index 0. Does nothing if nothing is selected.
func (d *SelectionDimension) SelectFirst() {
	if d.index != nil {
		d.SetIndex(0)
	}
}

// SelectLast jumps to the highest valid index. Does nothing if
// nothing is selected.
func (d *SelectionDimension) SelectLast() {
	if d.index != nil {
		d.SetIndex(d.bound - 1)
	}
}

// IsSelected reports whether i is the selected index.
func (d *SelectionDimension) IsSelected(i int) bool {
	return d.index != nil && *d.index == i
}

// SelectionType describes which axes currently hold a selection.
type SelectionType int

const (
	SelectionNone SelectionType = iota
	SelectionRow
	SelectionColumn
	SelectionCell
)

func (t SelectionType) String() string {
	switch t {
	case SelectionRow:
		return "row"
	case SelectionColumn:
		return "column"
	case SelectionCell:
		return "cell"
	}
	return "none"
}

// Selection pairs the row and column cursors. The row starts selected
// at index 0; the column stays absent until the application gives it
// one (navigation never creates a selection, it only moves one).
type Selection struct {
	Row    SelectionDimension
	Column SelectionDimension
}

// NewSelection returns a selection with the row cursor at 0 under the
// given bound and no column focus.
func NewSelection(rowBound int) Selection {
	var s Selection
	s.Row.SetBound(rowBound)
	s.Row.SetIndex(0)
	return s
}

// Type derives the selection mode from which dimensions hold a value.
// Recomputed on demand, never cached.
func (s *Selection) Type() SelectionType {
	_, row := s.Row.Index()
	_, col := s.Column.Index()
	switch {
	case row && col:
		return SelectionCell
	case row:
		return SelectionRow
	case col:
		return SelectionColumn
	}
	return SelectionNone
}
