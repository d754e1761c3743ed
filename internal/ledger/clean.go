// Package ledger turns a raw ledger table into cleaned expenses.
package ledger

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/orden-economico/gastos/internal/locale"
	"github.com/orden-economico/gastos/internal/model"
)

var ErrMissingColumn = errors.New("missing column")

// Columns names the source columns the cleaner reads.
type Columns struct {
	Date          string
	Cost          string
	Category      string
	Description   string
	PaymentMethod string
}

// DefaultColumns returns the column names of the household spreadsheet.
func DefaultColumns() Columns {
	return Columns{
		Date:          "Fecha",
		Cost:          "Costo",
		Category:      "Categoría",
		Description:   "Gastos",
		PaymentMethod: "Metodo de pago",
	}
}

// Clean normalizes a raw table into a Ledger:
//
//   - rows whose cells are all blank are dropped;
//   - dates are parsed with the policy, and a row whose date does not parse
//     takes the date resolved for the row before it;
//   - costs are parsed with the policy, and rows whose cost does not parse
//     are dropped last.
//
// A missing date column only produces a warning. Cost and category columns
// are required.
func Clean(tbl *model.Table, policy locale.Policy, cols Columns) (*model.Ledger, error) {
	costCol := tbl.Column(cols.Cost)
	if costCol < 0 {
		return nil, fmt.Errorf("%w %q", ErrMissingColumn, cols.Cost)
	}
	catCol := tbl.Column(cols.Category)
	if catCol < 0 {
		return nil, fmt.Errorf("%w %q", ErrMissingColumn, cols.Category)
	}
	descCol := tbl.Column(cols.Description)
	payCol := tbl.Column(cols.PaymentMethod)

	led := &model.Ledger{RowsRead: len(tbl.Rows)}

	dateCol := tbl.Column(cols.Date)
	if dateCol < 0 {
		msg := fmt.Sprintf("column %q not found; dates are left empty", cols.Date)
		slog.Warn(msg, "columns", tbl.Header)
		led.Warnings = append(led.Warnings, msg)
	}

	var prev time.Time
	for _, row := range tbl.Rows {
		if row.IsEmpty() {
			led.EmptyDropped++
			continue
		}

		var date time.Time
		if dateCol >= 0 {
			raw := cell(row, dateCol)
			d, err := policy.ParseDate(raw)
			if err != nil {
				d = prev
				if !d.IsZero() {
					led.DatesFilled++
				}
				slog.Debug("date carried forward", "line", row.Line, "raw", raw)
			}
			date = d
			prev = d
		}

		raw := cell(row, costCol)
		cost, err := policy.ParseCost(raw)
		if err != nil {
			led.CostDropped++
			slog.Debug("dropping row without a usable cost", "line", row.Line, "raw", raw)
			continue
		}

		led.Expenses = append(led.Expenses, model.Expense{
			Line:          row.Line,
			Date:          date,
			Cost:          cost,
			Category:      cell(row, catCol),
			Description:   cell(row, descCol),
			PaymentMethod: cell(row, payCol),
		})
	}

	slog.Info("ledger cleaned",
		"rows", led.RowsRead,
		"kept", len(led.Expenses),
		"empty", led.EmptyDropped,
		"bad_cost", led.CostDropped,
		"dates_filled", led.DatesFilled)

	return led, nil
}

// cell returns the trimmed value of col; blank means null.
func cell(row model.Row, col int) string {
	return strings.TrimSpace(row.Cell(col))
}
