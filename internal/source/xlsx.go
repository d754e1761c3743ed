package source

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/orden-economico/gastos/internal/locale"
	"github.com/orden-economico/gastos/internal/model"
)

// XLSXParser parses one worksheet of an Excel workbook. Text cells are read
// as displayed, so currency formatting survives into the table. Numeric
// cells are written back in the policy's notation: date-formatted serials
// with its date pattern, other numbers with its decimal separator and no
// grouping.
type XLSXParser struct {
	Sheet  string
	Policy locale.Policy // locale.Default() when zero
}

// Format returns the parser name.
func (p *XLSXParser) Format() string { return "xlsx" }

// Parse reads the header and all rows of the worksheet.
func (p *XLSXParser) Parse(r io.Reader) (*model.Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: opening workbook: %w", ErrMalformedInput, err)
	}
	defer f.Close()

	sheet := p.Sheet
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("%w: reading sheet %q: %w", ErrMalformedInput, sheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: sheet %q is empty", ErrMalformedInput, sheet)
	}

	policy := p.Policy
	if policy.DatePattern == "" {
		policy = locale.Default()
	}
	for i := 1; i < len(rows); i++ {
		for j := range rows[i] {
			if rows[i][j] == "" {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				return nil, fmt.Errorf("%w: %w", ErrMalformedInput, err)
			}
			v, err := typedValue(f, sheet, cell, policy)
			if err != nil {
				return nil, fmt.Errorf("%w: cell %s: %w", ErrMalformedInput, cell, err)
			}
			if v != "" {
				rows[i][j] = v
			}
		}
	}

	return newTable(rows[0], rows[1:], 2)
}

// typedValue renders a numeric or date cell with policy. It returns "" for
// text cells, which keep their displayed value.
func typedValue(f *excelize.File, sheet, cell string, policy locale.Policy) (string, error) {
	typ, err := f.GetCellType(sheet, cell)
	if err != nil {
		return "", err
	}
	raw, err := f.GetCellValue(sheet, cell, excelize.Options{RawCellValue: true})
	if err != nil {
		return "", err
	}

	switch typ {
	case excelize.CellTypeDate:
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			t, err = time.Parse("2006-01-02T15:04:05", raw)
		}
		if err != nil {
			slog.Debug("unreadable date cell left as displayed", "cell", cell, "raw", raw)
			return "", nil
		}
		return policy.FormatDate(t), nil
	case excelize.CellTypeNumber, excelize.CellTypeUnset, excelize.CellTypeFormula:
	default:
		return "", nil
	}

	serial, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return "", nil
	}

	isDate, err := hasDateFormat(f, sheet, cell)
	if err != nil {
		return "", err
	}
	if isDate {
		t, err := excelize.ExcelDateToTime(serial, false)
		if err != nil {
			return "", err
		}
		return policy.FormatDate(t), nil
	}

	d, err := decimal.NewFromString(raw)
	if err != nil {
		d = decimal.NewFromFloat(serial)
	}
	return strings.Replace(d.String(), ".", policy.DecimalSeparator, 1), nil
}

// Built-in number formats that display a date.
var dateNumFmts = map[int]bool{
	14: true, 15: true, 16: true, 17: true, 22: true,
	27: true, 28: true, 29: true, 30: true, 31: true, 34: true, 35: true, 36: true,
	50: true, 51: true, 52: true, 53: true, 54: true, 57: true, 58: true,
}

func hasDateFormat(f *excelize.File, sheet, cell string) (bool, error) {
	idx, err := f.GetCellStyle(sheet, cell)
	if err != nil {
		return false, err
	}
	style, err := f.GetStyle(idx)
	if err != nil {
		return false, err
	}
	if style.CustomNumFmt != nil {
		return isDateLayout(*style.CustomNumFmt), nil
	}
	return dateNumFmts[style.NumFmt], nil
}

// isDateLayout reports whether a custom number format shows a day or a
// year. Quoted literals and bracketed sections are ignored.
func isDateLayout(format string) bool {
	var quoted, bracketed bool
	for _, c := range strings.ToLower(format) {
		switch {
		case c == '"':
			quoted = !quoted
		case quoted:
		case c == '[':
			bracketed = true
		case c == ']':
			bracketed = false
		case bracketed:
		case c == 'd' || c == 'y':
			return true
		}
	}
	return false
}
