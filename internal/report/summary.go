package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/orden-economico/gastos/internal/analysis"
	"github.com/orden-economico/gastos/internal/locale"
)

const ruleWidth = 50

// WriteSummary prints the spending summary in Spanish.
func WriteSummary(w io.Writer, s *analysis.Summary, policy locale.Policy) error {
	st := NewStyles(w)

	rule := st.Rule.Render(strings.Repeat("=", ruleWidth))

	var b strings.Builder
	b.WriteString("\n" + rule + "\n")
	b.WriteString(st.Title.Render("              RESUMEN DEL ANÁLISIS DE GASTOS") + "\n")
	b.WriteString(rule + "\n")

	fmt.Fprintf(&b, "El gasto total en el período analizado fue: %s\n",
		st.Money.Render(policy.FormatCost(s.Total)))

	b.WriteString("\n" + st.Heading.Render("Distribución de gastos por categoría:") + "\n")
	for _, c := range s.Categories {
		fmt.Fprintf(&b, "- %-10s: %s %s\n",
			c.Category,
			st.Money.Render(policy.FormatCost(c.Total)),
			st.Percent.Render("("+c.Percent.StringFixed(2)+"%)"))
	}

	if s.HasTopDay() {
		fmt.Fprintf(&b, "\nEl día con mayor gasto fue: %s con un total de %s\n",
			policy.FormatDate(s.TopDay.Date),
			st.Money.Render(policy.FormatCost(s.TopDay.Total)))
	} else {
		b.WriteString("\n" + st.Warning.Render("Ningún gasto tiene fecha; no hay día de mayor gasto.") + "\n")
	}
	if s.Undated > 0 && s.HasTopDay() {
		b.WriteString(st.Subtle.Render(fmt.Sprintf("(%d gastos sin fecha no cuentan en el total diario)", s.Undated)) + "\n")
	}

	fmt.Fprintf(&b, "\nEl gasto individual más alto fue de %s por '%s'.\n",
		st.Money.Render(policy.FormatCost(s.TopExpense.Cost)),
		s.TopDescription)

	b.WriteString(rule + "\n")

	_, err := io.WriteString(w, b.String())
	return err
}
