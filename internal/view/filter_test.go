package view

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"
)

type stubMatcher struct {
	found []int64
}

func (m stubMatcher) Count() int { return len(m.found) }

func (m stubMatcher) MatchWindow(start, count int) []int64 {
	if start >= len(m.found) {
		return nil
	}
	end := start + count
	if end > len(m.found) {
		end = len(m.found)
	}
	return m.found[start:end]
}

func TestNewRowsFilterCapturesWindow(t *testing.T) {
	t.Parallel()

	m := stubMatcher{found: []int64{3, 7, 11, 20, 42}}
	f := NewRowsFilter(m, 1, 3)
	require.Equal(t, []int64{7, 11, 20}, f.Indices())
	require.Equal(t, 5, f.Total())
}

func TestColumnsFilterMatchesSubset(t *testing.T) {
	t.Parallel()

	headers := []string{"id", "name", "amount"}
	f := NewColumnsFilter(regexp.MustCompile("amount"), headers)
	require.Equal(t, []string{"amount"}, f.FilteredHeaders())
	require.Equal(t, []int{2}, f.Indices())
	require.Equal(t, 1, f.NumFiltered())
	require.Equal(t, 3, f.NumOriginal())
	require.False(t, f.DisabledBecauseNoMatch())
}

func TestColumnsFilterKeepsOriginalOrder(t *testing.T) {
	t.Parallel()

	headers := []string{"zulu", "alpha", "zebra", "beta"}
	f := NewColumnsFilter(regexp.MustCompile("^z"), headers)
	require.Equal(t, []string{"zulu", "zebra"}, f.FilteredHeaders())
	require.Equal(t, []int{0, 2}, f.Indices())
}

func TestColumnsFilterNoMatchFallsBackToAll(t *testing.T) {
	t.Parallel()

	headers := []string{"id", "name", "amount"}
	f := NewColumnsFilter(regexp.MustCompile("nothing_matches_this"), headers)
	require.True(t, f.DisabledBecauseNoMatch())
	require.Equal(t, headers, f.FilteredHeaders())
	require.Equal(t, []int{0, 1, 2}, f.Indices())
	require.Equal(t, f.NumOriginal(), f.NumFiltered())
	require.Len(t, f.FilteredHeaders(), len(f.Indices()))
}
