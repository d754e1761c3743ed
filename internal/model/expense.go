package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Canonical column names of a cleaned ledger.
const (
	ColDate          = "Fecha"
	ColCost          = "Costo"
	ColCategory      = "Categoría"
	ColDescription   = "Descripcion_Gasto"
	ColPaymentMethod = "Metodo_Pago"
)

// Expense is one cleaned ledger row.
type Expense struct {
	Line          int
	Date          time.Time // zero if no date could be resolved
	Cost          decimal.Decimal
	Category      string // "" = null
	Description   string // "" = null
	PaymentMethod string // "" = null
}

// HasDate reports whether the expense carries a resolved date.
func (e Expense) HasDate() bool {
	return !e.Date.IsZero()
}

// Ledger is the result of cleaning a Table.
type Ledger struct {
	Expenses []Expense

	RowsRead     int
	EmptyDropped int
	CostDropped  int
	DatesFilled  int
	Warnings     []string
}

// CategoryTotal is the summed cost of one category.
type CategoryTotal struct {
	Category string
	Total    decimal.Decimal
}

// DailyTotal is the summed cost of one calendar day.
type DailyTotal struct {
	Date  time.Time
	Total decimal.Decimal
}
