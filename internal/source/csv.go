package source

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"time"
)

// CSVSource reads a delimited file through a growable byte-offset
// index of record starts, so window reads seek instead of rescanning
// from the top. The index only ever grows; once it has seen EOF the
// row count is exact.
type CSVSource struct {
	path    string
	file    *os.File
	comma   rune
	headers []string

	size    int64
	modTime time.Time

	// offsets[i] is the byte offset where data record i starts.
	// frontier is where record len(offsets) would start.
	offsets  []int64
	frontier int64
	dataFrom int64
	complete bool
}

// OpenCSV opens path and reads its header record. The rest of the
// file is indexed lazily as windows are requested.
func OpenCSV(path string, comma rune) (*CSVSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("stat csv: %w", err)
	}

	r := newReader(f, comma)
	headers, err := r.Read()
	if err != nil {
		f.Close()
		if err == io.EOF {
			return nil, fmt.Errorf("read csv header: %s is empty", path)
		}
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	s := &CSVSource{
		path:     path,
		file:     f,
		comma:    comma,
		headers:  headers,
		size:     fi.Size(),
		modTime:  fi.ModTime(),
		frontier: r.InputOffset(),
		dataFrom: r.InputOffset(),
	}
	return s, nil
}

// Close releases the underlying file.
func (s *CSVSource) Close() error {
	return s.file.Close()
}

// Path returns the file path the source was opened from.
func (s *CSVSource) Path() string { return s.path }

// Size returns the file size observed at open time.
func (s *CSVSource) Size() int64 { return s.size }

// ModTime returns the file modification time observed at open time.
func (s *CSVSource) ModTime() time.Time { return s.modTime }

// Headers returns the column names from the file's first record.
func (s *CSVSource) Headers() []string { return s.headers }

// Index returns a copy of the record-offset index and whether it
// covers the whole file. Used to persist the index between sessions.
func (s *CSVSource) Index() ([]int64, bool) {
	out := make([]int64, len(s.offsets))
	copy(out, s.offsets)
	return out, s.complete
}

// SeedIndex installs a previously persisted complete index, skipping
// the initial scan of the file.
func (s *CSVSource) SeedIndex(offsets []int64) {
	s.offsets = make([]int64, len(offsets))
	copy(s.offsets, offsets)
	s.complete = true
	s.frontier = s.size
}

// TotalLines returns the exact data row count once the whole file has
// been indexed.
func (s *CSVSource) TotalLines() (int64, bool) {
	if s.complete {
		return int64(len(s.offsets)), true
	}
	return 0, false
}

// TotalLinesApprox estimates the row count from mean bytes per
// indexed record. Only meaningful before the index is complete.
func (s *CSVSource) TotalLinesApprox() (int64, bool) {
	if s.complete {
		return int64(len(s.offsets)), true
	}
	indexed := int64(len(s.offsets))
	consumed := s.frontier - s.dataFrom
	if indexed == 0 || consumed <= 0 {
		return 0, false
	}
	remaining := s.size - s.frontier
	if remaining < 0 {
		remaining = 0
	}
	return indexed + remaining*indexed/consumed, true
}

// ReadRange materializes count rows starting at absolute offset from.
func (s *CSVSource) ReadRange(from int64, count int) ([]Row, error) {
	if count <= 0 {
		return nil, nil
	}
	if err := s.ensureIndexed(from); err != nil {
		return nil, err
	}
	if from >= int64(len(s.offsets)) {
		return nil, nil
	}

	r := s.readerAt(s.offsets[from])
	base := s.offsets[from]
	rows := make([]Row, 0, count)
	for i := 0; i < count; i++ {
		num := from + int64(i)
		pos := base + r.InputOffset()
		rec, err := r.Read()
		if err == io.EOF {
			s.complete = true
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv record %d: %w", num, err)
		}
		s.note(num, pos, base+r.InputOffset())
		rows = append(rows, Row{Num: num, Fields: rec})
	}
	return rows, nil
}

// ReadIndices materializes the rows at the given absolute positions,
// in the order given. Positions past the end of the file are skipped.
func (s *CSVSource) ReadIndices(indices []int64) ([]Row, error) {
	rows := make([]Row, 0, len(indices))
	for _, idx := range indices {
		got, err := s.ReadRange(idx, 1)
		if err != nil {
			return nil, err
		}
		rows = append(rows, got...)
	}
	return rows, nil
}

// ensureIndexed extends the offset index until record n is covered or
// EOF is reached.
func (s *CSVSource) ensureIndexed(n int64) error {
	if s.complete || int64(len(s.offsets)) > n {
		return nil
	}
	r := s.readerAt(s.frontier)
	base := s.frontier
	for int64(len(s.offsets)) <= n {
		pos := base + r.InputOffset()
		_, err := r.Read()
		if err == io.EOF {
			s.complete = true
			return nil
		}
		if err != nil {
			return fmt.Errorf("index csv record %d: %w", len(s.offsets), err)
		}
		s.note(int64(len(s.offsets)), pos, base+r.InputOffset())
	}
	return nil
}

// note records the offset of record num and advances the frontier.
// Records already indexed are left untouched.
func (s *CSVSource) note(num, pos, next int64) {
	if num == int64(len(s.offsets)) {
		s.offsets = append(s.offsets, pos)
	}
	if next > s.frontier {
		s.frontier = next
	}
}

func (s *CSVSource) readerAt(off int64) *csv.Reader {
	_, _ = s.file.Seek(off, io.SeekStart)
	return newReader(s.file, s.comma)
}

func newReader(r io.Reader, comma rune) *csv.Reader {
	cr := csv.NewReader(r)
	cr.Comma = comma
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	return cr
}
