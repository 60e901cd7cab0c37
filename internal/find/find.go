// Package find is the search collaborator: it scans a source for
// rows matching a pattern and exposes the match count plus windows
// into the set of matched positions. The viewport consumes those
// windows to build its rows filter; it never searches itself.
package find

import (
	"regexp"

	"github.com/jask/tablens/internal/source"
)

const scanChunk = 1000

// Finder holds the absolute positions of every row matching its
// pattern. The scan is synchronous and runs once at construction.
type Finder struct {
	pattern *regexp.Regexp
	found   []int64
}

// NewFinder scans src in chunks and records every row with at least
// one field matching pattern.
func NewFinder(pattern *regexp.Regexp, src source.Source) (*Finder, error) {
	f := &Finder{pattern: pattern}
	var from int64
	for {
		rows, err := src.ReadRange(from, scanChunk)
		if err != nil {
			return nil, err
		}
		if len(rows) == 0 {
			break
		}
		for _, r := range rows {
			if matches(pattern, r.Fields) {
				f.found = append(f.found, r.Num)
			}
		}
		from += int64(len(rows))
		if len(rows) < scanChunk {
			break
		}
	}
	return f, nil
}

func matches(pattern *regexp.Regexp, fields []string) bool {
	for _, field := range fields {
		if pattern.MatchString(field) {
			return true
		}
	}
	return false
}

// Pattern returns the compiled search pattern.
func (f *Finder) Pattern() *regexp.Regexp { return f.pattern }

// Count returns how many rows matched in total.
func (f *Finder) Count() int { return len(f.found) }

// MatchWindow returns up to count matched positions starting at the
// start-th match. Out-of-range requests are clamped, never rejected.
func (f *Finder) MatchWindow(start, count int) []int64 {
	if start < 0 {
		start = 0
	}
	if start >= len(f.found) || count <= 0 {
		return nil
	}
	end := start + count
	if end > len(f.found) {
		end = len(f.found)
	}
	out := make([]int64, end-start)
	copy(out, f.found[start:end])
	return out
}
