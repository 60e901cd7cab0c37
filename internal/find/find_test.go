package find

import (
	"fmt"
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jask/tablens/internal/source"
)

type memSource struct {
	headers []string
	data    [][]string
}

func (s *memSource) Headers() []string { return s.headers }

func (s *memSource) ReadRange(from int64, count int) ([]source.Row, error) {
	var out []source.Row
	for i := 0; i < count; i++ {
		idx := from + int64(i)
		if idx < 0 || idx >= int64(len(s.data)) {
			break
		}
		out = append(out, source.Row{Num: idx, Fields: s.data[idx]})
	}
	return out, nil
}

func (s *memSource) ReadIndices(indices []int64) ([]source.Row, error) {
	var out []source.Row
	for _, idx := range indices {
		if idx >= 0 && idx < int64(len(s.data)) {
			out = append(out, source.Row{Num: idx, Fields: s.data[idx]})
		}
	}
	return out, nil
}

func (s *memSource) TotalLines() (int64, bool)       { return int64(len(s.data)), true }
func (s *memSource) TotalLinesApprox() (int64, bool) { return int64(len(s.data)), true }

func testSource(n int) *memSource {
	s := &memSource{headers: []string{"id", "status"}}
	for i := 0; i < n; i++ {
		status := "ok"
		if i%3 == 0 {
			status = "failed"
		}
		s.data = append(s.data, []string{fmt.Sprintf("%d", i), status})
	}
	return s
}

func TestFinderCollectsMatchPositions(t *testing.T) {
	t.Parallel()

	f, err := NewFinder(regexp.MustCompile("failed"), testSource(10))
	require.NoError(t, err)
	require.Equal(t, 4, f.Count())
	require.Equal(t, []int64{0, 3, 6, 9}, f.MatchWindow(0, 10))
}

func TestFinderScansBeyondOneChunk(t *testing.T) {
	t.Parallel()

	f, err := NewFinder(regexp.MustCompile("failed"), testSource(scanChunk*2+10))
	require.NoError(t, err)
	require.Equal(t, (scanChunk*2+10+2)/3, f.Count())

	first := f.MatchWindow(0, 1)
	require.Equal(t, []int64{0}, first)
}

func TestFinderNoMatches(t *testing.T) {
	t.Parallel()

	f, err := NewFinder(regexp.MustCompile("absent"), testSource(10))
	require.NoError(t, err)
	require.Equal(t, 0, f.Count())
	require.Empty(t, f.MatchWindow(0, 10))
}

func TestMatchWindowClamps(t *testing.T) {
	t.Parallel()

	f, err := NewFinder(regexp.MustCompile("failed"), testSource(10))
	require.NoError(t, err)

	require.Equal(t, []int64{3, 6}, f.MatchWindow(1, 2))
	require.Equal(t, []int64{9}, f.MatchWindow(3, 10))
	require.Empty(t, f.MatchWindow(50, 10))
	require.Empty(t, f.MatchWindow(0, 0))
	require.Equal(t, []int64{0, 3, 6, 9}, f.MatchWindow(-5, 99))
}

func TestMatchWindowReturnsCopy(t *testing.T) {
	t.Parallel()

	f, err := NewFinder(regexp.MustCompile("failed"), testSource(10))
	require.NoError(t, err)

	w := f.MatchWindow(0, 2)
	w[0] = 777
	require.Equal(t, []int64{0, 3}, f.MatchWindow(0, 2))
}
