package cache

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "index.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Parallel()

	s := openStore(t)
	mtime := time.Unix(1700000000, 0)
	offsets := []int64{10, 42, 99, 1 << 40}

	require.NoError(t, s.Save("/data/big.csv", 12345, mtime, offsets))

	got, ok, err := s.Load("/data/big.csv", 12345, mtime)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, offsets, got)
}

func TestLoadMissesUnknownPath(t *testing.T) {
	t.Parallel()

	s := openStore(t)
	_, ok, err := s.Load("/nowhere.csv", 1, time.Unix(0, 0))
	require.NoError(t, err)
	require.False(t, ok)
}

func TestStaleEntryIsAMiss(t *testing.T) {
	t.Parallel()

	s := openStore(t)
	mtime := time.Unix(1700000000, 0)
	require.NoError(t, s.Save("/data/big.csv", 100, mtime, []int64{1, 2}))

	_, ok, err := s.Load("/data/big.csv", 101, mtime)
	require.NoError(t, err)
	require.False(t, ok)

	_, ok, err = s.Load("/data/big.csv", 100, mtime.Add(time.Second))
	require.NoError(t, err)
	require.False(t, ok)
}

func TestSaveReplacesExistingEntry(t *testing.T) {
	t.Parallel()

	s := openStore(t)
	mtime := time.Unix(1700000000, 0)
	require.NoError(t, s.Save("/data/big.csv", 100, mtime, []int64{1, 2}))

	newMtime := mtime.Add(time.Hour)
	require.NoError(t, s.Save("/data/big.csv", 200, newMtime, []int64{3, 4, 5}))

	got, ok, err := s.Load("/data/big.csv", 200, newMtime)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []int64{3, 4, 5}, got)
}

func TestPruneKeepsMostRecent(t *testing.T) {
	t.Parallel()

	s := openStore(t)
	mtime := time.Unix(1700000000, 0)
	paths := []string{"/a.csv", "/b.csv", "/c.csv"}
	for _, p := range paths {
		require.NoError(t, s.Save(p, 100, mtime, []int64{1}))
	}

	require.NoError(t, s.Prune(1))

	hits := 0
	for _, p := range paths {
		_, ok, err := s.Load(p, 100, mtime)
		require.NoError(t, err)
		if ok {
			hits++
		}
	}
	require.Equal(t, 1, hits)

	require.NoError(t, s.Prune(0))
	_, ok, err := s.Load(paths[0], 100, mtime)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestEncodeDecodeOffsets(t *testing.T) {
	t.Parallel()

	offsets := []int64{0, 7, 123456789, 1 << 50}
	require.Equal(t, offsets, decodeOffsets(encodeOffsets(offsets)))
	require.Empty(t, decodeOffsets(nil))
}
