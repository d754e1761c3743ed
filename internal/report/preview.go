package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/orden-economico/gastos/internal/ledger"
	"github.com/orden-economico/gastos/internal/locale"
	"github.com/orden-economico/gastos/internal/model"
)

// WritePreview prints the first n rows of the raw table and of the cleaned
// ledger, each followed by a non-null count per column.
func WritePreview(w io.Writer, tbl *model.Table, led *model.Ledger, n int, policy locale.Policy) error {
	st := NewStyles(w)

	rawRows := make([][]string, 0, len(tbl.Rows))
	for _, r := range tbl.Rows {
		rawRows = append(rawRows, r.Cells)
	}

	cleanHeader := strings.Split(ledger.Header, ",")
	cleanRows := make([][]string, 0, len(led.Expenses))
	for _, e := range led.Expenses {
		cleanRows = append(cleanRows, ledger.MarshalExpense(e, policy))
	}

	var b strings.Builder
	writeSection(&b, st, "Datos originales", tbl.Header, rawRows, n)
	writeSection(&b, st, "Datos limpios", cleanHeader, cleanRows, n)

	for _, warn := range led.Warnings {
		b.WriteString(st.Warning.Render("Advertencia: "+warn) + "\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func writeSection(b *strings.Builder, st *Styles, title string, header []string, rows [][]string, n int) {
	b.WriteString("\n" + st.Heading.Render("--- "+title+" (primeras filas) ---") + "\n")
	head := rows
	if n >= 0 && len(head) > n {
		head = head[:n]
	}
	b.WriteString(renderTable(st, header, head) + "\n")

	b.WriteString("\n" + st.Heading.Render("--- Información: "+strings.ToLower(title)+" ---") + "\n")
	fmt.Fprintf(b, "%d filas, %d columnas\n", len(rows), len(header))
	for i, h := range header {
		fmt.Fprintf(b, "  %-16s %d no nulos\n", h, nonNull(rows, i))
	}
}

func renderTable(st *Styles, header []string, rows [][]string) string {
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(header...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return st.Header
			}
			return st.Cell
		}).
		String()
}

func nonNull(rows [][]string, col int) int {
	count := 0
	for _, r := range rows {
		if col < len(r) && strings.TrimSpace(r[col]) != "" {
			count++
		}
	}
	return count
}
