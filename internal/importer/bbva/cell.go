package bbva

import (
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// sheet resolves raw cell values to string, float64 or time.Time,
// depending on how the cell is stored and formatted.
type sheet struct {
	f        *excelize.File
	name     string
	date1904 bool
}

func newSheet(f *excelize.File, name string) *sheet {
	s := &sheet{f: f, name: name}

	if props, err := f.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		s.date1904 = *props.Date1904
	}

	return s
}

func (s *sheet) value(line, col int, row []string) (any, error) {
	raw := ""
	if col < len(row) {
		raw = strings.TrimSpace(row[col])
	}

	if raw == "" {
		return "", nil
	}

	cell, err := excelize.CoordinatesToCellName(col+1, line)
	if err != nil {
		return nil, err
	}

	typ, err := s.f.GetCellType(s.name, cell)
	if err != nil {
		return nil, err
	}

	switch typ {
	case excelize.CellTypeDate:
		for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", time.DateOnly} {
			if t, err := time.Parse(layout, raw); err == nil {
				return t, nil
			}
		}

		return raw, nil
	case excelize.CellTypeNumber, excelize.CellTypeUnset:
		n, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return raw, nil
		}

		if s.isDate(cell) {
			return excelize.ExcelDateToTime(n, s.date1904)
		}

		return n, nil
	}

	return raw, nil
}

func (s *sheet) isDate(cell string) bool {
	id, err := s.f.GetCellStyle(s.name, cell)
	if err != nil || id == 0 {
		return false
	}

	style, err := s.f.GetStyle(id)
	if err != nil || style == nil {
		return false
	}

	if style.CustomNumFmt != nil {
		return isDateFormat(*style.CustomNumFmt)
	}

	return isBuiltinDateFormat(style.NumFmt)
}

// isBuiltinDateFormat reports whether a built-in number format id renders
// a date or time.
func isBuiltinDateFormat(id int) bool {
	switch {
	case id >= 14 && id <= 22,
		id >= 27 && id <= 36,
		id >= 45 && id <= 47,
		id >= 50 && id <= 58:
		return true
	}

	return false
}

// isDateFormat reports whether a custom format code contains date tokens
// outside quoted literals and bracketed sections.
func isDateFormat(code string) bool {
	var quoted, bracketed bool

	for _, r := range strings.ToLower(code) {
		switch {
		case r == '"':
			quoted = !quoted
		case quoted:
		case r == '[':
			bracketed = true
		case r == ']':
			bracketed = false
		case bracketed:
		case r == 'y', r == 'd', r == 'm':
			return true
		}
	}

	return false
}
