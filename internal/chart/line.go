package chart

import (
	"fmt"
	"log/slog"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/orden-economico/gastos/internal/model"
)

// Line draws daily totals as a marker-and-line series over time and writes
// the chart to path.
func Line(days []model.DailyTotal, path string, o Options) error {
	if len(days) == 0 {
		return fmt.Errorf("daily chart: %w", ErrNoData)
	}

	p := newPlot("Gasto Total por Día", "Fecha", "Costo Diario ("+o.Policy.CurrencySymbol+")")
	p.Add(dashedGrid(true))

	xys := make(plotter.XYs, len(days))
	for i, d := range days {
		xys[i] = plotter.XY{X: float64(d.Date.Unix()), Y: d.Total.InexactFloat64()}
	}

	line, points, err := plotter.NewLinePoints(xys)
	if err != nil {
		return fmt.Errorf("daily chart: %w", err)
	}
	line.LineStyle.Color = teal
	line.LineStyle.Width = vg.Points(1.5)
	points.GlyphStyle.Color = teal
	points.GlyphStyle.Shape = draw.CircleGlyph{}
	points.GlyphStyle.Radius = vg.Points(3)
	p.Add(line, points)

	p.X.Tick.Marker = plot.TimeTicks{Format: o.Policy.DateLayout()}
	p.X.Tick.Label.Rotation = math.Pi / 4
	p.X.Tick.Label.XAlign = text.XRight
	p.X.Tick.Label.YAlign = text.YCenter
	p.Y.Min = math.Min(p.Y.Min, 0)

	if err := save(p, path, o); err != nil {
		return err
	}
	slog.Info("daily chart written", "path", path, "days", len(days))
	return nil
}
