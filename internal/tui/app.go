// Package tui drives the browsing session: it decodes keys into
// navigation commands, feeds them to the viewport, runs the prompt
// modes for search, column filtering and go-to-line, and renders the
// visible window.
package tui

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/tablens/internal/config"
	"github.com/jask/tablens/internal/find"
	"github.com/jask/tablens/internal/input"
	"github.com/jask/tablens/internal/source"
	"github.com/jask/tablens/internal/view"
)

const appName = "tablens"

type promptMode int

const (
	promptNone promptMode = iota
	promptSearch
	promptColumns
	promptGoto
)

// App is the bubbletea model for one browsing session.
type App struct {
	cfg    config.Config
	src    source.Source
	view   *view.View
	keys   input.KeyMap
	title  string
	prompt textinput.Model
	mode   promptMode
	status string
	errd   bool
	width  int
	height int
}

// New wires a session around an already-open source and view.
func New(cfg config.Config, src source.Source, v *view.View, title string) *App {
	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 256
	return &App{
		cfg:    cfg,
		src:    src,
		view:   v,
		keys:   input.NewKeyMap(),
		title:  title,
		prompt: ti,
	}
}

func (a *App) Init() tea.Cmd {
	return nil
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if err := a.view.SetNumRows(a.visibleRows()); err != nil {
			a.fail(err)
		}
		return a, nil
	case tea.KeyMsg:
		if a.mode != promptNone {
			return a.updatePrompt(msg)
		}
		return a.updateBrowse(msg)
	}
	return a, nil
}

// ---------------------------------------------------------------------------
// Key handling
// ---------------------------------------------------------------------------

func (a *App) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	control, ok := a.keys.Decode(msg)
	if !ok {
		return a, nil
	}

	switch control.(type) {
	case input.Quit:
		return a, tea.Quit
	case input.StartSearch:
		a.openPrompt(promptSearch, "search pattern")
		return a, textinput.Blink
	case input.StartColumnsFilter:
		a.openPrompt(promptColumns, "column pattern")
		return a, textinput.Blink
	case input.StartGoto:
		a.openPrompt(promptGoto, "line number")
		return a, textinput.Blink
	case input.ResetFilters:
		if err := a.view.ResetFilter(); err != nil {
			a.fail(err)
			return a, nil
		}
		if err := a.view.ResetColumnsFilter(); err != nil {
			a.fail(err)
			return a, nil
		}
		a.ensureRowCursor()
		a.info("filters cleared")
		return a, nil
	}

	if err := a.view.HandleControl(control); err != nil {
		a.fail(err)
		return a, nil
	}
	a.ensureRowCursor()
	a.clearStatus()
	return a, nil
}

func (a *App) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.closePrompt()
		return a, nil
	case "ctrl+c":
		return a, tea.Quit
	case "enter":
		a.applyPrompt()
		return a, nil
	}
	var cmd tea.Cmd
	a.prompt, cmd = a.prompt.Update(msg)
	return a, cmd
}

func (a *App) openPrompt(mode promptMode, placeholder string) {
	a.mode = mode
	a.prompt.Placeholder = placeholder
	a.prompt.SetValue("")
	a.prompt.Focus()
}

func (a *App) closePrompt() {
	a.mode = promptNone
	a.prompt.Blur()
}

func (a *App) applyPrompt() {
	value := strings.TrimSpace(a.prompt.Value())
	mode := a.mode
	a.closePrompt()
	if value == "" {
		return
	}

	switch mode {
	case promptSearch:
		a.applySearch(value)
	case promptColumns:
		a.applyColumnsFilter(value)
	case promptGoto:
		a.applyGoto(value)
	}
}

func (a *App) applySearch(value string) {
	pattern, err := regexp.Compile(value)
	if err != nil {
		a.fail(fmt.Errorf("bad pattern: %w", err))
		return
	}
	finder, err := find.NewFinder(pattern, a.src)
	if err != nil {
		a.fail(err)
		return
	}
	if err := a.view.SetFilter(finder); err != nil {
		a.fail(err)
		return
	}
	a.ensureRowCursor()
	a.info(fmt.Sprintf("%d match(es) for /%s/", finder.Count(), value))
}

func (a *App) applyColumnsFilter(value string) {
	pattern, err := regexp.Compile(value)
	if err != nil {
		a.fail(fmt.Errorf("bad pattern: %w", err))
		return
	}
	if err := a.view.SetColumnsFilter(pattern); err != nil {
		a.fail(err)
		return
	}
	a.ensureRowCursor()
	cf := a.view.ColumnsFilter()
	if cf != nil && cf.DisabledBecauseNoMatch() {
		hint := ""
		if nearest, ok := nearestHeader(value, a.src.Headers()); ok {
			hint = fmt.Sprintf(" (did you mean %q?)", nearest)
		}
		a.warn(fmt.Sprintf("no column matches /%s/, showing all%s", value, hint))
		return
	}
	a.info(fmt.Sprintf("%d of %d column(s) shown", cf.NumFiltered(), cf.NumOriginal()))
}

func (a *App) applyGoto(value string) {
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil || n < 1 {
		a.warn(fmt.Sprintf("not a line number: %s", value))
		return
	}
	if err := a.view.HandleControl(input.ScrollTo{Line: n}); err != nil {
		a.fail(err)
		return
	}
	a.ensureRowCursor()
	a.clearStatus()
}

// ensureRowCursor re-establishes a row selection after the cursor was
// dropped by scrolling through an empty region.
func (a *App) ensureRowCursor() {
	if _, ok := a.view.Selection.Row.Index(); !ok && len(a.view.Rows()) > 0 {
		a.view.Selection.Row.SetIndex(0)
	}
}

// ---------------------------------------------------------------------------
// Status helpers
// ---------------------------------------------------------------------------

func (a *App) fail(err error) {
	a.status = fmt.Sprintf("load failed: %v", err)
	a.errd = true
}

func (a *App) warn(s string) {
	a.status = s
	a.errd = true
}

func (a *App) info(s string) {
	a.status = s
	a.errd = false
}

func (a *App) clearStatus() {
	a.status = ""
	a.errd = false
}

// visibleRows is the window size that fits the terminal: total height
// minus header, status and footer lines.
func (a *App) visibleRows() int {
	if a.height == 0 {
		return a.cfg.UI.NumRows
	}
	available := a.height - 4
	if available < 1 {
		available = 1
	}
	return available
}
