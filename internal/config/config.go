package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/orden-economico/gastos/internal/analysis"
	"github.com/orden-economico/gastos/internal/chart"
	"github.com/orden-economico/gastos/internal/ledger"
	"github.com/orden-economico/gastos/internal/locale"
)

// FileName is the configuration file looked up in the working directory.
const FileName = "gastos.yaml"

// Input formats.
const (
	FormatCSV    = "csv"
	FormatXLSX   = "xlsx"
	FormatSheets = "sheets"
)

// Config represents the top-level gastos.yaml configuration.
type Config struct {
	Input   InputConfig   `yaml:"input"`
	Locale  LocaleConfig  `yaml:"locale"`
	Columns ColumnsConfig `yaml:"columns"`
	Output  OutputConfig  `yaml:"output"`
	Report  ReportConfig  `yaml:"report"`
}

// InputConfig says where the ledger is read from.
type InputConfig struct {
	Path      string `yaml:"path"`
	Format    string `yaml:"format,omitempty"` // csv, xlsx or sheets; by extension when empty
	Delimiter string `yaml:"delimiter"`
	Sheet     string `yaml:"sheet,omitempty"`

	SpreadsheetID   string `yaml:"spreadsheet_id,omitempty"`
	Range           string `yaml:"range,omitempty"`
	CredentialsFile string `yaml:"credentials_file,omitempty"`
}

// LocaleConfig is how dates and amounts are written in the ledger.
type LocaleConfig struct {
	DatePattern        string `yaml:"date_pattern"`
	ThousandsSeparator string `yaml:"thousands_separator"`
	DecimalSeparator   string `yaml:"decimal_separator"`
	CurrencySymbol     string `yaml:"currency_symbol"`
}

// ColumnsConfig names the ledger's source columns.
type ColumnsConfig struct {
	Date          string `yaml:"date"`
	Cost          string `yaml:"cost"`
	Category      string `yaml:"category"`
	Description   string `yaml:"description"`
	PaymentMethod string `yaml:"payment_method"`
}

// OutputConfig controls the chart files.
type OutputConfig struct {
	CategoryChart string  `yaml:"category_chart"`
	DailyChart    string  `yaml:"daily_chart"`
	Width         float64 `yaml:"width"`  // inches
	Height        float64 `yaml:"height"` // inches
}

// ReportConfig controls the console report.
type ReportConfig struct {
	UnknownDescription string `yaml:"unknown_description"`
	UncategorizedLabel string `yaml:"uncategorized_label"`
	PreviewRows        int    `yaml:"preview_rows"`
}

// Load reads a gastos.yaml file from disk. Keys missing from the file keep
// their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns the configuration of the household spreadsheet export.
func Default() *Config {
	pol := locale.Default()
	cols := ledger.DefaultColumns()
	chartOpts := chart.DefaultOptions()
	labels := analysis.DefaultOptions()
	return &Config{
		Input: InputConfig{
			Path:      "Orden_Economico.csv",
			Delimiter: ",",
		},
		Locale: LocaleConfig{
			DatePattern:        pol.DatePattern,
			ThousandsSeparator: pol.ThousandsSeparator,
			DecimalSeparator:   pol.DecimalSeparator,
			CurrencySymbol:     pol.CurrencySymbol,
		},
		Columns: ColumnsConfig{
			Date:          cols.Date,
			Cost:          cols.Cost,
			Category:      cols.Category,
			Description:   cols.Description,
			PaymentMethod: cols.PaymentMethod,
		},
		Output: OutputConfig{
			CategoryChart: "Gasto_por_categoria.png",
			DailyChart:    "Gasto_en_el_tiempo.png",
			Width:         chartOpts.Width,
			Height:        chartOpts.Height,
		},
		Report: ReportConfig{
			UnknownDescription: labels.UnknownDescription,
			UncategorizedLabel: labels.UncategorizedLabel,
			PreviewRows:        5,
		},
	}
}

// Validate reports every problem in the configuration at once.
func (c *Config) Validate() error {
	var errs []error

	switch c.InputFormat() {
	case FormatCSV, FormatXLSX:
		if c.Input.Path == "" {
			errs = append(errs, errors.New("input.path is required"))
		}
	case FormatSheets:
		if c.Input.SpreadsheetID == "" {
			errs = append(errs, errors.New("input.spreadsheet_id is required for sheets"))
		}
		if c.Input.Range == "" {
			errs = append(errs, errors.New("input.range is required for sheets"))
		}
		if c.Input.CredentialsFile == "" {
			errs = append(errs, errors.New("input.credentials_file is required for sheets"))
		}
	default:
		errs = append(errs, fmt.Errorf("input.format %q is not one of csv, xlsx, sheets", c.Input.Format))
	}

	if c.Input.Delimiter != "" && utf8.RuneCountInString(c.Input.Delimiter) != 1 {
		errs = append(errs, fmt.Errorf("input.delimiter %q must be a single character", c.Input.Delimiter))
	}

	if err := c.Policy().Validate(); err != nil {
		errs = append(errs, fmt.Errorf("locale: %w", err))
	}

	if c.Columns.Cost == "" {
		errs = append(errs, errors.New("columns.cost is required"))
	}
	if c.Columns.Category == "" {
		errs = append(errs, errors.New("columns.category is required"))
	}

	if c.Output.CategoryChart == "" || c.Output.DailyChart == "" {
		errs = append(errs, errors.New("output.category_chart and output.daily_chart are required"))
	}
	if c.Output.Width <= 0 || c.Output.Height <= 0 {
		errs = append(errs, fmt.Errorf("output size %gx%g must be positive", c.Output.Width, c.Output.Height))
	}

	if c.Report.PreviewRows < 0 {
		errs = append(errs, fmt.Errorf("report.preview_rows %d must not be negative", c.Report.PreviewRows))
	}

	return errors.Join(errs...)
}

// InputFormat returns the configured format, or the one implied by the input
// file's extension.
func (c *Config) InputFormat() string {
	if c.Input.Format != "" {
		return strings.ToLower(c.Input.Format)
	}
	switch strings.ToLower(filepath.Ext(c.Input.Path)) {
	case ".xlsx", ".xlsm":
		return FormatXLSX
	default:
		return FormatCSV
	}
}

// DelimiterRune returns the CSV delimiter, ',' when unset.
func (c *Config) DelimiterRune() rune {
	r, _ := utf8.DecodeRuneInString(c.Input.Delimiter)
	if r == utf8.RuneError {
		return ','
	}
	return r
}

// Policy returns the locale policy.
func (c *Config) Policy() locale.Policy {
	return locale.Policy{
		DatePattern:        c.Locale.DatePattern,
		ThousandsSeparator: c.Locale.ThousandsSeparator,
		DecimalSeparator:   c.Locale.DecimalSeparator,
		CurrencySymbol:     c.Locale.CurrencySymbol,
	}
}

// LedgerColumns returns the column names the cleaner reads.
func (c *Config) LedgerColumns() ledger.Columns {
	return ledger.Columns{
		Date:          c.Columns.Date,
		Cost:          c.Columns.Cost,
		Category:      c.Columns.Category,
		Description:   c.Columns.Description,
		PaymentMethod: c.Columns.PaymentMethod,
	}
}

// ChartOptions returns the chart canvas and formatting.
func (c *Config) ChartOptions() chart.Options {
	return chart.Options{Width: c.Output.Width, Height: c.Output.Height, Policy: c.Policy()}
}

// AnalysisOptions returns the summary labels.
func (c *Config) AnalysisOptions() analysis.Options {
	return analysis.Options{
		UncategorizedLabel: c.Report.UncategorizedLabel,
		UnknownDescription: c.Report.UnknownDescription,
	}
}
