package model

import "strings"

// Row is one data row of a ledger source.
type Row struct {
	Line  int      // 1-based line (or sheet row) the row was read from
	Cells []string // "" = null
}

// Table is a ledger as read from its source, before any cleaning.
type Table struct {
	Header []string
	Rows   []Row
}

// Column returns the index of the named column, or -1.
func (t *Table) Column(name string) int {
	for i, h := range t.Header {
		if h == name {
			return i
		}
	}
	return -1
}

// Cell returns the value at column col of row, or "" when the row is short
// or col is -1.
func (r Row) Cell(col int) string {
	if col < 0 || col >= len(r.Cells) {
		return ""
	}
	return r.Cells[col]
}

// IsEmpty reports whether every cell of the row is null.
func (r Row) IsEmpty() bool {
	for _, c := range r.Cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
