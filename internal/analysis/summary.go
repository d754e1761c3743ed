package analysis

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/orden-economico/gastos/internal/model"
)

var ErrNoExpenses = errors.New("no expenses to analyze")

var hundred = decimal.NewFromInt(100)

// Options controls the labels used for missing values.
type Options struct {
	UncategorizedLabel string
	UnknownDescription string
}

// DefaultOptions returns the labels of the Spanish report.
func DefaultOptions() Options {
	return Options{
		UncategorizedLabel: "Sin categoría",
		UnknownDescription: "Desconocido",
	}
}

// Share is a category total with its percentage of all spending.
type Share struct {
	model.CategoryTotal
	Percent decimal.Decimal
}

// Summary holds every figure of the written report.
type Summary struct {
	Total      decimal.Decimal
	Count      int
	Undated    int
	Categories []Share
	Days       []model.DailyTotal

	// TopDay is the day with the largest total; the earliest wins a tie.
	// Zero when no expense is dated.
	TopDay model.DailyTotal

	// TopExpense is the single largest expense; the first in input order wins
	// a tie. TopDescription is its description or the unknown placeholder.
	TopExpense     model.Expense
	TopDescription string
}

// HasTopDay reports whether any expense carried a date.
func (s *Summary) HasTopDay() bool {
	return !s.TopDay.Date.IsZero()
}

// Summarize computes the report figures.
func Summarize(expenses []model.Expense, opts Options) (*Summary, error) {
	if len(expenses) == 0 {
		return nil, ErrNoExpenses
	}

	s := &Summary{
		Total: Total(expenses),
		Count: len(expenses),
		Days:  ByDay(expenses),
	}

	for _, ct := range ByCategory(expenses, opts.UncategorizedLabel) {
		pct := decimal.Zero
		if !s.Total.IsZero() {
			pct = ct.Total.Div(s.Total).Mul(hundred)
		}
		s.Categories = append(s.Categories, Share{CategoryTotal: ct, Percent: pct})
	}

	for _, d := range s.Days {
		if !s.HasTopDay() || d.Total.GreaterThan(s.TopDay.Total) {
			s.TopDay = d
		}
	}

	top := expenses[0]
	for _, e := range expenses {
		if !e.HasDate() {
			s.Undated++
		}
		if e.Cost.GreaterThan(top.Cost) {
			top = e
		}
	}
	s.TopExpense = top
	s.TopDescription = top.Description
	if s.TopDescription == "" {
		s.TopDescription = opts.UnknownDescription
	}

	return s, nil
}
