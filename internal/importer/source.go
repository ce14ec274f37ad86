// AngelaMos | 2026
// source.go

package importer

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// DetectFormat picks the decoder by file extension, falling back to the
// declared content type. Anything unrecognised is treated as CSV.
func DetectFormat(filename, contentType string) Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx":
		return FormatXLSX
	case ".csv", ".txt":
		return FormatCSV
	}

	if strings.HasPrefix(strings.ToLower(contentType), xlsxContentType) {
		return FormatXLSX
	}

	return FormatCSV
}

// ReadRows decodes an uploaded file into raw rows. An empty or
// whitespace-only body is rejected before any parsing.
func ReadRows(format Format, data []byte) ([][]string, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrEmptyFile
	}

	switch format {
	case FormatXLSX:
		return ReadXLSX(bytes.NewReader(data))
	case FormatCSV:
		return ParseCSV(string(data)), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}

// ParseCSV splits delimited text into rows of raw fields. Quoted fields
// may hold commas, newlines and doubled quotes. Carriage returns outside
// quotes are dropped, and a final row without a trailing newline is kept.
func ParseCSV(content string) [][]string {
	var (
		rows     [][]string
		row      []string
		field    strings.Builder
		inQuotes bool
	)

	runes := []rune(content)
	for i := 0; i < len(runes); i++ {
		ch := runes[i]

		if inQuotes {
			if ch == '"' {
				if i+1 < len(runes) && runes[i+1] == '"' {
					field.WriteRune('"')
					i++
				} else {
					inQuotes = false
				}
			} else {
				field.WriteRune(ch)
			}
			continue
		}

		switch ch {
		case '"':
			inQuotes = true
		case ',':
			row = append(row, field.String())
			field.Reset()
		case '\n':
			row = append(row, field.String())
			rows = append(rows, row)
			row = nil
			field.Reset()
		case '\r':
		default:
			field.WriteRune(ch)
		}
	}

	if field.Len() > 0 || len(row) > 0 {
		row = append(row, field.String())
		rows = append(rows, row)
	}

	return rows
}

// ReadXLSX returns the rows of the workbook's first sheet as text. Cells
// holding dates come back as YYYY-MM-DD whatever display format the sheet
// gives them.
func ReadXLSX(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnreadable, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("open workbook: %w", ErrEmptyFile)
	}
	sheet := sheets[0]

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("%w: sheet %q: %w", ErrUnreadable, sheet, err)
	}

	dates := newDateCells(f)
	for i, row := range rows {
		for j, value := range row {
			if value == "" {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				return nil, fmt.Errorf("%w: %w", ErrUnreadable, err)
			}
			if iso, ok := dates.read(sheet, cell); ok {
				row[j] = iso
			}
		}
	}

	return rows, nil
}

// dateCells recognises cells that hold a date either as an ISO date cell
// or as a serial number under a date number format.
type dateCells struct {
	f        *excelize.File
	date1904 bool
	styles   map[int]bool
}

func newDateCells(f *excelize.File) *dateCells {
	d := &dateCells{f: f, styles: make(map[int]bool)}
	if props, err := f.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		d.date1904 = *props.Date1904
	}
	return d
}

func (d *dateCells) read(sheet, cell string) (string, bool) {
	typ, err := d.f.GetCellType(sheet, cell)
	if err != nil {
		return "", false
	}

	raw, err := d.f.GetCellValue(sheet, cell, excelize.Options{RawCellValue: true})
	if err != nil {
		return "", false
	}
	raw = strings.TrimSpace(raw)

	if typ == excelize.CellTypeDate {
		if len(raw) >= 10 {
			if t, err := time.Parse(time.DateOnly, raw[:10]); err == nil {
				return t.Format(time.DateOnly), true
			}
		}
		return "", false
	}

	if typ != excelize.CellTypeNumber && typ != excelize.CellTypeUnset {
		return "", false
	}

	styleID, err := d.f.GetCellStyle(sheet, cell)
	if err != nil || !d.isDateStyle(styleID) {
		return "", false
	}

	serial, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return "", false
	}

	t, err := excelize.ExcelDateToTime(serial, d.date1904)
	if err != nil {
		return "", false
	}
	return t.Format(time.DateOnly), true
}

func (d *dateCells) isDateStyle(styleID int) bool {
	if known, ok := d.styles[styleID]; ok {
		return known
	}

	isDate := false
	if style, err := d.f.GetStyle(styleID); err == nil && style != nil {
		isDate = builtinDateFormat(style.NumFmt)
		if style.CustomNumFmt != nil {
			isDate = customDateFormat(*style.CustomNumFmt)
		}
	}

	d.styles[styleID] = isDate
	return isDate
}

// builtinDateFormat reports the built-in number formats that show a
// calendar date. Time-only formats are excluded.
func builtinDateFormat(id int) bool {
	switch {
	case id >= 14 && id <= 17, id == 22:
		return true
	case id >= 27 && id <= 36, id >= 50 && id <= 58:
		return true
	}
	return false
}

// customDateFormat looks for year or day tokens outside quoted literals
// and bracketed sections such as [$-412] or [Red].
func customDateFormat(format string) bool {
	var (
		inQuote   bool
		inBracket bool
	)

	for _, ch := range strings.ToLower(format) {
		switch {
		case ch == '"':
			inQuote = !inQuote
		case inQuote:
		case ch == '[':
			inBracket = true
		case ch == ']':
			inBracket = false
		case inBracket:
		case ch == 'y', ch == 'd':
			return true
		}
	}
	return false
}
