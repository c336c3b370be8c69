package statement

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	enc "github.com/MrJamesThe3rd/gastos/internal/encoding"
)

// Columns maps header names to their index in a row.
type Columns map[string]int

// IndexHeader builds the column map for a header row. Names are trimmed;
// the first occurrence of a duplicated name wins.
func IndexHeader(header []string) Columns {
	cols := make(Columns, len(header))

	for i, cell := range header {
		name := strings.TrimSpace(cell)
		if name == "" {
			continue
		}

		if _, dup := cols[name]; !dup {
			cols[name] = i
		}
	}

	return cols
}

// Find returns the index of the first of the given aliases present.
func (c Columns) Find(aliases ...string) (int, bool) {
	for _, name := range aliases {
		if idx, ok := c[name]; ok {
			return idx, true
		}
	}

	return -1, false
}

// Lookup resolves every required column, each given as a list of aliases.
// It fails naming the first alias of every missing column.
func (c Columns) Lookup(required ...[]string) ([]int, error) {
	idx := make([]int, len(required))

	var missing []string

	for i, aliases := range required {
		j, ok := c.Find(aliases...)
		if !ok {
			missing = append(missing, aliases[0])
			continue
		}

		idx[i] = j
	}

	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required columns %q", missing)
	}

	return idx, nil
}

// Names lists the header names found, in column order.
func (c Columns) Names() []string {
	names := make([]string, 0, len(c))
	for name := range c {
		names = append(names, name)
	}

	slices.SortFunc(names, func(a, b string) int { return c[a] - c[b] })

	return names
}

// Cell returns the trimmed value at idx, or "" when the row is too short.
func Cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}

// Blank reports whether every cell of row is empty after trimming.
func Blank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}

	return true
}

// Record is one data row of a delimited file.
type Record struct {
	Line   int // 1-based line in the source file
	Fields []string
	Err    error // Set when the row itself could not be tokenised
}

// ReadCSV decodes r to UTF-8 and splits it into a header and data records.
// Blank lines are dropped. Malformed rows come back as records with Err set
// so the caller can report them and keep going; only an unreadable stream
// or a missing header fails the whole call.
func ReadCSV(r io.Reader, comma rune) ([]string, []Record, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, nil, fmt.Errorf("detect encoding: %w", err)
	}

	reader := csv.NewReader(utf8r)
	reader.Comma = comma
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var (
		header  []string
		records []Record
	)

	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}

		if err != nil {
			var perr *csv.ParseError
			if !errors.As(err, &perr) {
				return nil, nil, fmt.Errorf("read csv: %w", err)
			}

			if header == nil {
				return nil, nil, fmt.Errorf("read csv header: %w", err)
			}

			records = append(records, Record{Line: perr.StartLine, Fields: row, Err: perr.Err})

			continue
		}

		if Blank(row) {
			continue
		}

		if header == nil {
			header = row
			continue
		}

		line, _ := reader.FieldPos(0)
		records = append(records, Record{Line: line, Fields: row})
	}

	if header == nil {
		return nil, nil, fmt.Errorf("read csv: file is empty")
	}

	return header, records, nil
}
