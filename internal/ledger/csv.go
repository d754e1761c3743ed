package ledger

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/orden-economico/gastos/internal/locale"
	"github.com/orden-economico/gastos/internal/model"
)

// Header is the CSV header of a cleaned ledger.
var Header = strings.Join([]string{
	model.ColDate,
	model.ColCost,
	model.ColCategory,
	model.ColDescription,
	model.ColPaymentMethod,
}, ",")

const (
	numFields  = 5
	colDate    = 0
	colCost    = 1
	colCat     = 2
	colDesc    = 3
	colPayment = 4
)

// WriteCSV writes expenses (including header). Costs are written as plain
// decimals at the precision they were parsed with; dates use the policy's
// pattern.
func WriteCSV(w io.Writer, expenses []model.Expense, policy locale.Policy) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, e := range expenses {
		if err := cw.Write(MarshalExpense(e, policy)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// MarshalExpense converts an Expense to a CSV row.
func MarshalExpense(e model.Expense, policy locale.Policy) []string {
	row := make([]string, numFields)
	if e.HasDate() {
		row[colDate] = policy.FormatDate(e.Date)
	}
	row[colCost] = e.Cost.String()
	row[colCat] = e.Category
	row[colDesc] = e.Description
	row[colPayment] = e.PaymentMethod
	return row
}
