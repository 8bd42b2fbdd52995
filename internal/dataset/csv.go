package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Row represents a single CSV row with column name to value mapping.
type Row map[string]string

// MissingColumnsError is returned when a CSV lacks columns a stage needs.
type MissingColumnsError struct {
	Path    string
	Missing []string
	Got     []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("csv: %s is missing columns %v (got %v)", e.Path, e.Missing, e.Got)
}

// ErrMissingColumns matches any *MissingColumnsError via errors.Is.
var ErrMissingColumns = errors.New("csv: missing required columns")

func (e *MissingColumnsError) Is(target error) bool {
	return target == ErrMissingColumns
}

func newReader(r io.Reader) *csv.Reader {
	reader := csv.NewReader(r)
	// Row width is checked by the callers; short rows are skipped, not fatal.
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	return reader
}

// readAll opens path and returns the header and every following record.
func readAll(path string) ([]string, [][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("csv: open %s: %w", path, err)
	}
	defer f.Close() //nolint:errcheck

	records, err := newReader(f).ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("csv: parse %s: %w", path, err)
	}

	if len(records) == 0 {
		return nil, nil, fmt.Errorf("csv: %s is empty (no header row)", path)
	}

	return records[0], records[1:], nil
}

// LoadCSV reads a CSV file and returns its header and rows as maps of
// column to value. The first row is treated as headers (column names).
func LoadCSV(path string) ([]string, []Row, error) {
	headers, records, err := readAll(path)
	if err != nil {
		return nil, nil, err
	}

	rows := make([]Row, 0, len(records))

	for i, record := range records {
		if len(record) != len(headers) {
			return nil, nil, fmt.Errorf("csv: row %d has %d columns, expected %d", i+2, len(record), len(headers))
		}
		row := make(Row, len(headers))
		for j, h := range headers {
			row[h] = record[j]
		}
		rows = append(rows, row)
	}

	return headers, rows, nil
}

// RequireColumns fails with a *MissingColumnsError when any of want is
// absent from header.
func RequireColumns(path string, header []string, want ...string) error {
	have := make(map[string]bool, len(header))
	for _, h := range header {
		have[h] = true
	}

	var missing []string
	for _, w := range want {
		if !have[w] {
			missing = append(missing, w)
		}
	}

	if len(missing) > 0 {
		return &MissingColumnsError{Path: path, Missing: missing, Got: header}
	}
	return nil
}

// ColumnIndex maps each header name to its position.
func ColumnIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[h] = i
	}
	return idx
}

// Writer writes a CSV file, creating parent directories as needed.
type Writer struct {
	f *os.File
	w *csv.Writer
}

// Create opens path for writing and writes header as the first row.
func Create(path string, header []string) (*Writer, error) {
	if err := EnsureParentDir(path); err != nil {
		return nil, err
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("csv: create %s: %w", path, err)
	}

	w := &Writer{f: f, w: csv.NewWriter(f)}

	if err := w.Write(header); err != nil {
		f.Close() //nolint:errcheck
		return nil, err
	}

	return w, nil
}

// Write appends one record.
func (w *Writer) Write(record []string) error {
	if err := w.w.Write(record); err != nil {
		return fmt.Errorf("csv: write %s: %w", w.f.Name(), err)
	}
	return nil
}

// Close flushes buffered rows and closes the file.
func (w *Writer) Close() error {
	w.w.Flush()
	flushErr := w.w.Error()
	closeErr := w.f.Close()
	return errors.Join(flushErr, closeErr)
}

// EnsureParentDir creates the directory that will hold path.
func EnsureParentDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "" || dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}
	return nil
}

// RequireFiles fails fast when any input file is missing, before a stage
// makes remote calls.
func RequireFiles(paths ...string) error {
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("input file not found: %s", p)
			}
			return fmt.Errorf("checking input %s: %w", p, err)
		}
	}
	return nil
}

func cleanCell(v string) string {
	return strings.TrimSpace(strings.ReplaceAll(v, "\r", " "))
}
