// Package input turns raw key presses into the navigation commands
// the viewport understands. Decoding lives here so the view never
// sees terminal events.
package input

// Control is a decoded navigation command. The closed set of
// implementations below is handled by the view with a type switch;
// commands outside the view's responsibility (quit, prompt entry) are
// ignored there and handled by the application loop instead.
type Control interface {
	control()
}

// ScrollUp moves the cursor up one row, or the window when the cursor
// is at the top edge.
type ScrollUp struct{}

// ScrollDown moves the cursor down one row, or the window when the
// cursor is at the bottom edge.
type ScrollDown struct{}

// ScrollPageUp retreats the window by a full window size.
type ScrollPageUp struct{}

// ScrollPageDown advances the window by a full window size.
type ScrollPageDown struct{}

// ScrollTop jumps to the first row of the data.
type ScrollTop struct{}

// ScrollBottom jumps to the last full window of the data.
type ScrollBottom struct{}

// ScrollTo jumps to a 1-based line number.
type ScrollTo struct {
	Line int64
}

// Quit exits the application.
type Quit struct{}

// StartSearch opens the search prompt.
type StartSearch struct{}

// StartColumnsFilter opens the column-filter prompt.
type StartColumnsFilter struct{}

// StartGoto opens the go-to-line prompt.
type StartGoto struct{}

// ResetFilters clears the active row and column filters.
type ResetFilters struct{}

func (ScrollUp) control()           {}
func (ScrollDown) control()         {}
func (ScrollPageUp) control()       {}
func (ScrollPageDown) control()     {}
func (ScrollTop) control()          {}
func (ScrollBottom) control()       {}
func (ScrollTo) control()           {}
func (Quit) control()               {}
func (StartSearch) control()        {}
func (StartColumnsFilter) control() {}
func (StartGoto) control()          {}
func (ResetFilters) control()       {}
