package analysis

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orden-economico/gastos/internal/model"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func expense(d time.Time, cost, cat, desc string) model.Expense {
	return model.Expense{Date: d, Cost: dec(cost), Category: cat, Description: desc}
}

// threeRows is the Comida/Comida/Transporte example ledger.
func threeRows() []model.Expense {
	return []model.Expense{
		expense(date(2024, 1, 1), "100.00", "Comida", "Pan"),
		expense(date(2024, 1, 1), "50.00", "Comida", ""),
		expense(date(2024, 1, 2), "25.00", "Transporte", "Bus"),
	}
}

func TestByCategory_ThreeRows(t *testing.T) {
	got := ByCategory(threeRows(), "Sin categoría")
	require.Len(t, got, 2)
	assert.Equal(t, "Comida", got[0].Category)
	assert.Equal(t, "150.00", got[0].Total.StringFixed(2))
	assert.Equal(t, "Transporte", got[1].Category)
	assert.Equal(t, "25.00", got[1].Total.StringFixed(2))
}

func TestByCategory_TieBreakByName(t *testing.T) {
	expenses := []model.Expense{
		expense(date(2024, 1, 1), "10", "Ocio", ""),
		expense(date(2024, 1, 1), "10", "Casa", ""),
		expense(date(2024, 1, 1), "30", "Salud", ""),
	}
	got := ByCategory(expenses, "Sin categoría")
	require.Len(t, got, 3)
	assert.Equal(t, []string{"Salud", "Casa", "Ocio"}, []string{got[0].Category, got[1].Category, got[2].Category})
}

func TestByCategory_Uncategorized(t *testing.T) {
	expenses := []model.Expense{
		expense(date(2024, 1, 1), "10", "", ""),
		expense(date(2024, 1, 1), "5", "Casa", ""),
	}
	got := ByCategory(expenses, "Sin categoría")
	require.Len(t, got, 2)
	assert.Equal(t, "Sin categoría", got[0].Category)
}

func TestByDay(t *testing.T) {
	expenses := []model.Expense{
		expense(date(2024, 1, 3), "7", "A", ""),
		expense(date(2024, 1, 1), "1", "A", ""),
		expense(time.Time{}, "100", "A", ""),
		expense(date(2024, 1, 3), "3", "B", ""),
	}
	got := ByDay(expenses)
	require.Len(t, got, 2)
	assert.Equal(t, date(2024, 1, 1), got[0].Date)
	assert.Equal(t, date(2024, 1, 3), got[1].Date)
	assert.True(t, got[1].Total.Equal(dec("10")))
}

func TestTotalsAgree(t *testing.T) {
	expenses := []model.Expense{
		expense(date(2024, 2, 1), "12500", "Comida", ""),
		expense(date(2024, 2, 1), "2300", "Transporte", ""),
		expense(date(2024, 2, 2), "85400.5", "Comida", ""),
		expense(date(2024, 2, 3), "40000", "", ""),
		expense(date(2024, 2, 4), "0.01", "Transporte", ""),
	}
	total := Total(expenses)

	catSum := decimal.Zero
	for _, c := range ByCategory(expenses, "Sin categoría") {
		catSum = catSum.Add(c.Total)
	}
	daySum := decimal.Zero
	for _, d := range ByDay(expenses) {
		daySum = daySum.Add(d.Total)
	}

	assert.True(t, total.Equal(catSum), "category sum %s != total %s", catSum, total)
	assert.True(t, total.Equal(daySum), "daily sum %s != total %s", daySum, total)
}

func TestSummarize_ThreeRows(t *testing.T) {
	s, err := Summarize(threeRows(), DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, "175.00", s.Total.StringFixed(2))
	assert.Equal(t, 3, s.Count)
	require.Len(t, s.Categories, 2)
	assert.Equal(t, "85.71", s.Categories[0].Percent.StringFixed(2))
	assert.Equal(t, "14.29", s.Categories[1].Percent.StringFixed(2))

	require.True(t, s.HasTopDay())
	assert.Equal(t, date(2024, 1, 1), s.TopDay.Date)
	assert.Equal(t, "150.00", s.TopDay.Total.StringFixed(2))

	assert.Equal(t, "Pan", s.TopDescription)
	assert.Equal(t, "100.00", s.TopExpense.Cost.StringFixed(2))
}

func TestSummarize_PercentagesSumToHundred(t *testing.T) {
	expenses := []model.Expense{
		expense(date(2024, 1, 1), "1", "A", ""),
		expense(date(2024, 1, 1), "1", "B", ""),
		expense(date(2024, 1, 1), "1", "C", ""),
		expense(date(2024, 1, 2), "3.33", "D", ""),
	}
	s, err := Summarize(expenses, DefaultOptions())
	require.NoError(t, err)

	sum := decimal.Zero
	for _, c := range s.Categories {
		sum = sum.Add(c.Percent)
	}
	assert.InDelta(t, 100.0, sum.InexactFloat64(), 1e-9)
}

func TestSummarize_TopExpensePlaceholder(t *testing.T) {
	expenses := []model.Expense{
		expense(date(2024, 1, 1), "10", "A", "uno"),
		expense(date(2024, 1, 2), "999", "A", ""),
		expense(date(2024, 1, 3), "5", "A", "tres"),
	}
	s, err := Summarize(expenses, DefaultOptions())
	require.NoError(t, err)

	assert.True(t, s.TopExpense.Cost.Equal(dec("999")))
	assert.Equal(t, "Desconocido", s.TopDescription)
}

func TestSummarize_Ties(t *testing.T) {
	expenses := []model.Expense{
		expense(date(2024, 1, 5), "20", "A", "primero"),
		expense(date(2024, 1, 2), "20", "A", "segundo"),
	}
	s, err := Summarize(expenses, DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, date(2024, 1, 2), s.TopDay.Date)
	assert.Equal(t, "primero", s.TopDescription)
}

func TestSummarize_Undated(t *testing.T) {
	expenses := []model.Expense{
		expense(time.Time{}, "20", "A", ""),
		expense(time.Time{}, "10", "A", ""),
	}
	s, err := Summarize(expenses, DefaultOptions())
	require.NoError(t, err)

	assert.False(t, s.HasTopDay())
	assert.Empty(t, s.Days)
	assert.Equal(t, 2, s.Undated)
}

func TestSummarize_ZeroTotal(t *testing.T) {
	expenses := []model.Expense{expense(date(2024, 1, 1), "0", "A", "")}
	s, err := Summarize(expenses, DefaultOptions())
	require.NoError(t, err)
	assert.True(t, s.Categories[0].Percent.IsZero())
}

func TestSummarize_Empty(t *testing.T) {
	_, err := Summarize(nil, DefaultOptions())
	assert.ErrorIs(t, err, ErrNoExpenses)
}
