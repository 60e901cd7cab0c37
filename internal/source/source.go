// Package source provides the data-source collaborators the viewport
// reads from. A Source turns row ranges or explicit index sets into
// materialized rows and exposes header and line-count metadata; it
// never holds the whole backing store in memory.
package source

// Row is one materialized record: its absolute position in the data
// plus its field values.
type Row struct {
	Num    int64
	Fields []string
}

// Subset returns a copy of the row narrowed to the given column
// indices. Indices outside the row's field range are skipped.
func (r Row) Subset(indices []int) Row {
	fields := make([]string, 0, len(indices))
	for _, i := range indices {
		if i >= 0 && i < len(r.Fields) {
			fields = append(fields, r.Fields[i])
		}
	}
	return Row{Num: r.Num, Fields: fields}
}

// Source is the read-only view the browser has onto tabular data.
type Source interface {
	// Headers returns the column names in data order.
	Headers() []string

	// ReadRange materializes count rows starting at absolute row
	// offset from. Fewer rows (possibly none) are returned past the
	// end of the data.
	ReadRange(from int64, count int) ([]Row, error)

	// ReadIndices materializes the rows at the given absolute
	// positions, in the order given. Positions past the end are
	// skipped.
	ReadIndices(indices []int64) ([]Row, error)

	// TotalLines returns the exact data row count, if known.
	TotalLines() (int64, bool)

	// TotalLinesApprox returns an estimated row count for sources
	// that have not yet seen the end of their data.
	TotalLinesApprox() (int64, bool)
}
