// Package analysis reduces cleaned expenses to the totals that the charts and
// the summary report.
package analysis

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/orden-economico/gastos/internal/model"
)

// Total sums the cost of every expense.
func Total(expenses []model.Expense) decimal.Decimal {
	total := decimal.Zero
	for _, e := range expenses {
		total = total.Add(e.Cost)
	}
	return total
}

// ByCategory sums costs per category, largest total first. Equal totals are
// ordered by category name. Expenses without a category are summed under
// uncategorized.
func ByCategory(expenses []model.Expense, uncategorized string) []model.CategoryTotal {
	sums := make(map[string]decimal.Decimal)
	for _, e := range expenses {
		cat := e.Category
		if cat == "" {
			cat = uncategorized
		}
		sums[cat] = sums[cat].Add(e.Cost)
	}

	totals := make([]model.CategoryTotal, 0, len(sums))
	for cat, sum := range sums {
		totals = append(totals, model.CategoryTotal{Category: cat, Total: sum})
	}
	sort.Slice(totals, func(i, j int) bool {
		if c := totals[i].Total.Cmp(totals[j].Total); c != 0 {
			return c > 0
		}
		return totals[i].Category < totals[j].Category
	})
	return totals
}

// ByDay sums costs per calendar day in chronological order. Undated expenses
// are left out.
func ByDay(expenses []model.Expense) []model.DailyTotal {
	sums := make(map[time.Time]decimal.Decimal)
	for _, e := range expenses {
		if !e.HasDate() {
			continue
		}
		sums[e.Date] = sums[e.Date].Add(e.Cost)
	}

	days := make([]model.DailyTotal, 0, len(sums))
	for d, sum := range sums {
		days = append(days, model.DailyTotal{Date: d, Total: sum})
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Date.Before(days[j].Date) })
	return days
}
