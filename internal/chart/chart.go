// Package chart renders the category and daily spending charts.
package chart

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/orden-economico/gastos/internal/locale"
)

var ErrNoData = errors.New("nothing to plot")

var (
	teal  = color.RGBA{R: 0, G: 128, B: 128, A: 255}
	coral = color.RGBA{R: 255, G: 127, B: 80, A: 255}

	gridDashes = []vg.Length{vg.Points(4), vg.Points(3)}
)

// Options sets the canvas and the money/date formatting of a chart.
type Options struct {
	Width  float64 // inches
	Height float64 // inches
	Policy locale.Policy
}

// DefaultOptions returns a 10x6 inch canvas with the default locale.
func DefaultOptions() Options {
	return Options{Width: 10, Height: 6, Policy: locale.Default()}
}

func newPlot(title, xLabel, yLabel string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.Title.TextStyle.Font.Size = vg.Points(16)
	p.X.Label.Text = xLabel
	p.X.Label.TextStyle.Font.Size = vg.Points(12)
	p.Y.Label.Text = yLabel
	p.Y.Label.TextStyle.Font.Size = vg.Points(12)
	return p
}

// save writes p to path in the format named by its extension (png when
// there is none). The file is closed on every return path.
func save(p *plot.Plot, path string, o Options) (err error) {
	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if format == "" {
		format = "png"
	}

	wt, err := p.WriterTo(vg.Length(o.Width)*vg.Inch, vg.Length(o.Height)*vg.Inch, format)
	if err != nil {
		return fmt.Errorf("rendering %s: %w", path, err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing %s: %w", path, cerr)
		}
	}()

	if _, err := wt.WriteTo(f); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func dashedGrid(vertical bool) *plotter.Grid {
	g := plotter.NewGrid()
	g.Horizontal.Dashes = gridDashes
	if vertical {
		g.Vertical.Dashes = gridDashes
	} else {
		g.Vertical.Color = nil
	}
	return g
}
