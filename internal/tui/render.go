package tui

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
	"github.com/charmbracelet/lipgloss"

	"github.com/jask/tablens/internal/source"
	"github.com/jask/tablens/internal/view"
)

const maxColumnWidth = 32

func (a *App) View() string {
	var b strings.Builder
	b.WriteString(a.renderHeader())
	b.WriteString("\n")
	b.WriteString(renderTable(a.view.Headers(), a.view.Rows(), &a.view.Selection))
	b.WriteString("\n")
	b.WriteString(a.renderStatus())
	b.WriteString("\n")
	b.WriteString(a.renderFooter())
	return b.String()
}

func (a *App) renderHeader() string {
	name := appNameStyle.Render(appName)
	pos := a.positionLabel()
	line := fmt.Sprintf("%s  %s  %s", name, a.title, pos)
	if a.width > 0 {
		line = padRight(line, a.width)
	}
	return headerBarStyle.Render(line)
}

func (a *App) positionLabel() string {
	var parts []string

	from := a.view.RowsFrom()
	shown := len(a.view.Rows())
	if total, ok := a.view.Total(); ok {
		exact := ""
		if _, known := a.view.TotalLines(); !known && !a.view.HasFilter() {
			exact = "~"
		}
		parts = append(parts, fmt.Sprintf("rows %d-%d of %s%d", from+1, from+int64(shown), exact, total))
	} else {
		parts = append(parts, fmt.Sprintf("rows %d-%d", from+1, from+int64(shown)))
	}

	if a.view.HasFilter() {
		parts = append(parts, "filtered")
	}
	if cf := a.view.ColumnsFilter(); cf != nil && !cf.DisabledBecauseNoMatch() {
		parts = append(parts, fmt.Sprintf("cols %d/%d", cf.NumFiltered(), cf.NumOriginal()))
	}
	if elapsed, ok := a.view.Elapsed(); ok {
		parts = append(parts, elapsed.String())
	}
	return strings.Join(parts, " • ")
}

func (a *App) renderStatus() string {
	if a.mode != promptNone {
		label := map[promptMode]string{
			promptSearch:  "/",
			promptColumns: "*",
			promptGoto:    ":",
		}[a.mode]
		return statusBarStyle.Render(promptStyle.Render(label) + a.prompt.View())
	}
	line := a.status
	if line == "" {
		if offset, ok := a.view.SelectedOffset(); ok {
			line = fmt.Sprintf("line %d", offset+1)
		}
	}
	if a.width > 0 {
		line = padRight(line, a.width-2)
	}
	if a.errd {
		return statusErrorStyle.Render(line)
	}
	return statusBarStyle.Render(line)
}

func (a *App) renderFooter() string {
	var parts []string
	for _, b := range a.keys.ShortHelp() {
		h := b.Help()
		parts = append(parts, helpKeyStyle.Render(h.Key)+" "+helpDescStyle.Render(h.Desc))
	}
	line := strings.Join(parts, "  ")
	if a.width > 0 {
		line = padRight(line, a.width-2)
	}
	return footerStyle.Render(line)
}

// ---------------------------------------------------------------------------
// Table rendering
// ---------------------------------------------------------------------------

func renderTable(headers []string, rows []source.Row, sel *view.Selection) string {
	widths := columnWidths(headers, rows)
	selType := sel.Type()

	var b strings.Builder
	b.WriteString(rowNumStyle.Render(padRight("", numColWidth(rows))))
	b.WriteString(" ")
	headerCells := make([]string, len(headers))
	for i, h := range headers {
		headerCells[i] = tableHeaderStyle.Render(pad(h, widths[i]))
	}
	b.WriteString(strings.Join(headerCells, " "))
	b.WriteString("\n")

	for i, row := range rows {
		b.WriteString(rowNumStyle.Render(pad(fmt.Sprintf("%d", row.Num+1), numColWidth(rows))))
		b.WriteString(" ")
		cells := make([]string, len(row.Fields))
		for j, field := range row.Fields {
			w := maxColumnWidth
			if j < len(widths) {
				w = widths[j]
			}
			cells[j] = styleCell(pad(field, w), i, j, sel, selType)
		}
		b.WriteString(strings.Join(cells, " "))
		if i < len(rows)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func styleCell(text string, row, col int, sel *view.Selection, selType view.SelectionType) string {
	rowSel := sel.Row.IsSelected(row)
	colSel := sel.Column.IsSelected(col)
	switch selType {
	case view.SelectionCell:
		if rowSel && colSel {
			return selectedCellStyle.Render(text)
		}
		if rowSel || colSel {
			return selectedRowStyle.Render(text)
		}
	case view.SelectionRow:
		if rowSel {
			return selectedRowStyle.Render(text)
		}
	case view.SelectionColumn:
		if colSel {
			return selectedColumnStyle.Render(text)
		}
	}
	return text
}

func columnWidths(headers []string, rows []source.Row) []int {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = utf8.RuneCountInString(h)
	}
	for _, row := range rows {
		for j, field := range row.Fields {
			if j >= len(widths) {
				widths = append(widths, 0)
			}
			if n := utf8.RuneCountInString(field); n > widths[j] {
				widths[j] = n
			}
		}
	}
	for i := range widths {
		if widths[i] > maxColumnWidth {
			widths[i] = maxColumnWidth
		}
	}
	return widths
}

func numColWidth(rows []source.Row) int {
	w := 4
	for _, r := range rows {
		if n := len(fmt.Sprintf("%d", r.Num+1)); n > w {
			w = n
		}
	}
	return w
}

func pad(s string, width int) string {
	r := []rune(s)
	if len(r) > width {
		if width <= 1 {
			return string(r[:width])
		}
		return string(r[:width-1]) + "…"
	}
	return s + strings.Repeat(" ", width-len(r))
}

func padRight(s string, width int) string {
	if lipgloss.Width(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-lipgloss.Width(s))
}

// nearestHeader suggests the header closest to name by edit distance.
func nearestHeader(name string, headers []string) (string, bool) {
	best := ""
	bestDist := -1
	for _, h := range headers {
		d := levenshtein.ComputeDistance(strings.ToLower(name), strings.ToLower(h))
		if bestDist == -1 || d < bestDist {
			best, bestDist = h, d
		}
	}
	if best == "" {
		return "", false
	}
	return best, true
}
