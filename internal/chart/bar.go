package chart

import (
	"fmt"
	"log/slog"
	"math"

	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"

	"github.com/orden-economico/gastos/internal/model"
)

// Bar draws one bar per category in the given order, each labelled with its
// total, and writes the chart to path.
func Bar(totals []model.CategoryTotal, path string, o Options) error {
	if len(totals) == 0 {
		return fmt.Errorf("category chart: %w", ErrNoData)
	}

	p := newPlot("Gasto Total por Categoría", "Categoría de Gasto", "Costo Total ("+o.Policy.CurrencySymbol+")")
	p.Add(dashedGrid(false))

	names := make([]string, len(totals))
	xys := make(plotter.XYs, len(totals))
	labels := make([]string, len(totals))
	maxY := 0.0
	for i, ct := range totals {
		v := ct.Total.InexactFloat64()

		bars, err := plotter.NewBarChart(plotter.Values{v}, vg.Points(40))
		if err != nil {
			return fmt.Errorf("category chart: %w", err)
		}
		bars.XMin = float64(i)
		bars.LineStyle.Width = 0
		bars.Color = teal
		if i%2 == 1 {
			bars.Color = coral
		}
		p.Add(bars)

		names[i] = ct.Category
		xys[i] = plotter.XY{X: float64(i), Y: v}
		labels[i] = o.Policy.FormatCost(ct.Total)
		maxY = math.Max(maxY, v)
	}

	values, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: labels})
	if err != nil {
		return fmt.Errorf("category chart: %w", err)
	}
	for i := range values.TextStyle {
		values.TextStyle[i].XAlign = text.XCenter
		values.TextStyle[i].YAlign = text.YBottom
	}
	values.Offset = vg.Point{Y: vg.Points(3)}
	p.Add(values)

	p.NominalX(names...)
	p.X.Tick.Label.Rotation = math.Pi / 4
	p.X.Tick.Label.XAlign = text.XRight
	p.X.Tick.Label.YAlign = text.YCenter
	p.Y.Min = math.Min(p.Y.Min, 0)
	if maxY > 0 {
		p.Y.Max = maxY * 1.12
	}

	if err := save(p, path, o); err != nil {
		return err
	}
	slog.Info("category chart written", "path", path, "categories", len(totals))
	return nil
}
