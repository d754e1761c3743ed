package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTableColumn(t *testing.T) {
	tbl := &Table{Header: []string{"Fecha", "Costo", "Categoría"}}
	assert.Equal(t, 0, tbl.Column("Fecha"))
	assert.Equal(t, 2, tbl.Column("Categoría"))
	assert.Equal(t, -1, tbl.Column("Gastos"))
}

func TestRowCell(t *testing.T) {
	r := Row{Cells: []string{"a", "b"}}
	assert.Equal(t, "b", r.Cell(1))
	assert.Equal(t, "", r.Cell(2))
	assert.Equal(t, "", r.Cell(-1))
}

func TestRowIsEmpty(t *testing.T) {
	tests := []struct {
		cells []string
		want  bool
	}{
		{[]string{"", "", ""}, true},
		{[]string{" ", "\t", ""}, true},
		{[]string{"", "x", ""}, false},
		{nil, true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Row{Cells: tt.cells}.IsEmpty(), "IsEmpty(%q)", tt.cells)
	}
}
