package source

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"github.com/orden-economico/gastos/internal/model"
)

// CSVParser parses delimited-text ledger exports. Every row must carry the
// header's number of fields.
type CSVParser struct {
	Comma rune
}

// Format returns the parser name.
func (p *CSVParser) Format() string { return "csv" }

// Parse reads the header and all rows of a delimited file.
func (p *CSVParser) Parse(r io.Reader) (*model.Table, error) {
	cr := csv.NewReader(r)
	if p.Comma != 0 {
		cr.Comma = p.Comma
	}

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: empty file", ErrMalformedInput)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: reading header: %w", ErrMalformedInput, err)
	}

	tbl, err := newTable(header, nil, 0)
	if err != nil {
		return nil, err
	}

	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformedInput, err)
		}
		line, _ := cr.FieldPos(0)
		tbl.Rows = append(tbl.Rows, model.Row{Line: line, Cells: rec})
	}
	return tbl, nil
}
