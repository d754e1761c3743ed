// Package pipeline runs the analysis stages in order, handing each stage's
// result to the next: load, clean, aggregate, chart, summarize.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/orden-economico/gastos/internal/analysis"
	"github.com/orden-economico/gastos/internal/chart"
	"github.com/orden-economico/gastos/internal/config"
	"github.com/orden-economico/gastos/internal/ledger"
	"github.com/orden-economico/gastos/internal/model"
	"github.com/orden-economico/gastos/internal/report"
	"github.com/orden-economico/gastos/internal/source"
)

// ErrChart marks an error from the chart stage. The summary has been written
// when it is returned.
var ErrChart = errors.New("chart not written")

// Result is what the stages produced. Fields are nil for stages that did not
// run.
type Result struct {
	Table   *model.Table
	Ledger  *model.Ledger
	Summary *analysis.Summary
	Charts  []string
}

// NewReader returns the source configured in cfg.
func NewReader(ctx context.Context, cfg *config.Config) (source.Reader, error) {
	format := cfg.InputFormat()
	if format == config.FormatSheets {
		return source.NewSheets(ctx, source.SheetsConfig{
			SpreadsheetID:   cfg.Input.SpreadsheetID,
			Range:           cfg.Input.Range,
			CredentialsFile: cfg.Input.CredentialsFile,
		})
	}
	reg := source.DefaultRegistry(source.FileOptions{
		Delimiter: cfg.DelimiterRune(),
		Sheet:     cfg.Input.Sheet,
		Policy:    cfg.Policy(),
	})
	return source.NewFile(reg, format, cfg.Input.Path)
}

// Clean loads and cleans the configured ledger.
func Clean(ctx context.Context, cfg *config.Config) (*Result, error) {
	r, err := NewReader(ctx, cfg)
	if err != nil {
		return nil, err
	}

	tbl, err := r.Read(ctx)
	if err != nil {
		return nil, err
	}
	slog.Debug("ledger loaded", "rows", len(tbl.Rows), "columns", tbl.Header)

	led, err := ledger.Clean(tbl, cfg.Policy(), cfg.LedgerColumns())
	if err != nil {
		return &Result{Table: tbl}, fmt.Errorf("cleaning ledger: %w", err)
	}
	return &Result{Table: tbl, Ledger: led}, nil
}

// Run executes every stage and prints the report to out. When preview is
// set, the raw and cleaned rows are printed before the summary.
//
// A failing chart does not stop the summary; chart errors are returned
// joined once the summary has been written. The daily chart is skipped when
// no expense is dated.
func Run(ctx context.Context, cfg *config.Config, out io.Writer, preview bool) (*Result, error) {
	res, err := Clean(ctx, cfg)
	if err != nil {
		return res, err
	}

	if preview {
		if err := report.WritePreview(out, res.Table, res.Ledger, cfg.Report.PreviewRows, cfg.Policy()); err != nil {
			return res, fmt.Errorf("writing preview: %w", err)
		}
	}

	sum, err := analysis.Summarize(res.Ledger.Expenses, cfg.AnalysisOptions())
	if err != nil {
		return res, err
	}
	res.Summary = sum

	var chartErrs []error
	opts := cfg.ChartOptions()
	type job struct {
		path   string
		render func() error
	}
	charts := []job{
		{cfg.Output.CategoryChart, func() error {
			return chart.Bar(categoryTotals(sum), cfg.Output.CategoryChart, opts)
		}},
	}
	if len(sum.Days) > 0 {
		charts = append(charts, job{cfg.Output.DailyChart, func() error {
			return chart.Line(sum.Days, cfg.Output.DailyChart, opts)
		}})
	} else {
		slog.Warn("no dated expenses; daily chart skipped", "path", cfg.Output.DailyChart)
	}
	for _, c := range charts {
		if err := c.render(); err != nil {
			slog.Error("chart not written", "path", c.path, "error", err)
			chartErrs = append(chartErrs, fmt.Errorf("%w: %s: %w", ErrChart, c.path, err))
			continue
		}
		res.Charts = append(res.Charts, c.path)
	}

	if err := report.WriteSummary(out, sum, cfg.Policy()); err != nil {
		return res, fmt.Errorf("writing summary: %w", err)
	}

	return res, errors.Join(chartErrs...)
}

func categoryTotals(s *analysis.Summary) []model.CategoryTotal {
	totals := make([]model.CategoryTotal, len(s.Categories))
	for i, c := range s.Categories {
		totals[i] = c.CategoryTotal
	}
	return totals
}
