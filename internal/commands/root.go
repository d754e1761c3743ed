package commands

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/orden-economico/gastos/internal/buildinfo"
	"github.com/orden-economico/gastos/internal/config"
	"github.com/orden-economico/gastos/internal/pipeline"
	"github.com/orden-economico/gastos/internal/source"
)

// app carries the state shared by the subcommands of one invocation.
type app struct {
	v       *viper.Viper
	cfgFile string
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	a := &app{v: viper.New()}

	rootCmd := &cobra.Command{
		Use:     "gastos",
		Short:   "Analiza el registro de gastos del hogar",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd.ErrOrStderr())
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default: ./"+config.FileName+" when present)")
	rootCmd.PersistentFlags().String("log-level", "warn", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "console", "log format (console, json)")

	_ = a.v.BindPFlag("logging.level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = a.v.BindPFlag("logging.format", rootCmd.PersistentFlags().Lookup("log-format"))

	rootCmd.AddCommand(newAnalyzeCommand(a))
	rootCmd.AddCommand(newCleanCommand(a))
	rootCmd.AddCommand(newInitCommand())

	return rootCmd
}

func (a *app) init(logOut io.Writer) error {
	_ = godotenv.Load()

	a.v.SetEnvPrefix("GASTOS")
	a.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	a.v.AutomaticEnv()

	if err := setupLogging(a.v, logOut); err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}
	return nil
}

func setupLogging(v *viper.Viper, w io.Writer) error {
	level := v.GetString("logging.level")
	format := v.GetString("logging.format")

	var slogLevel slog.Level
	switch level {
	case "debug":
		slogLevel = slog.LevelDebug
	case "info":
		slogLevel = slog.LevelInfo
	case "warn":
		slogLevel = slog.LevelWarn
	case "error":
		slogLevel = slog.LevelError
	default:
		return fmt.Errorf("invalid log level: %s", level)
	}

	opts := &slog.HandlerOptions{Level: slogLevel}

	var handler slog.Handler
	switch format {
	case "console":
		handler = slog.NewTextHandler(w, opts)
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	default:
		return fmt.Errorf("invalid log format: %s", format)
	}

	slog.SetDefault(slog.New(handler))
	return nil
}

// flagKeys maps command flags to configuration keys.
var flagKeys = map[string]string{
	"format":         "input.format",
	"delimiter":      "input.delimiter",
	"sheet":          "input.sheet",
	"spreadsheet-id": "input.spreadsheet_id",
	"range":          "input.range",
	"credentials":    "input.credentials_file",
	"category-chart": "output.category_chart",
	"daily-chart":    "output.daily_chart",
	"preview-rows":   "report.preview_rows",
}

// addInputFlags registers the flags that locate the ledger.
func addInputFlags(fs *pflag.FlagSet) {
	fs.String("format", "", "input format: csv, xlsx or sheets (default: by file extension)")
	fs.String("delimiter", ",", "CSV field delimiter")
	fs.String("sheet", "", "worksheet to read from an xlsx workbook (default: the first)")
	fs.String("spreadsheet-id", "", "Google spreadsheet id (sheets format)")
	fs.String("range", "", "spreadsheet range, e.g. Gastos!A:E (sheets format)")
	fs.String("credentials", "", "service account JSON key (sheets format)")
}

// loadConfig reads the config file, then applies environment variables and
// the flags of cmd over it. A positional file argument wins over everything.
func (a *app) loadConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if key, ok := flagKeys[f.Name]; ok {
			_ = a.v.BindPFlag(key, f)
		}
	})

	path := a.cfgFile
	if path == "" {
		if _, err := os.Stat(config.FileName); err == nil {
			path = config.FileName
		}
	}

	cfg := config.Default()
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
		slog.Debug("config loaded", "path", path)
	}

	applyOverrides(a.v, cfg)
	if len(args) > 0 {
		cfg.Input.Path = args[0]
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func applyOverrides(v *viper.Viper, cfg *config.Config) {
	strs := map[string]*string{
		"input.path":                 &cfg.Input.Path,
		"input.format":               &cfg.Input.Format,
		"input.delimiter":            &cfg.Input.Delimiter,
		"input.sheet":                &cfg.Input.Sheet,
		"input.spreadsheet_id":       &cfg.Input.SpreadsheetID,
		"input.range":                &cfg.Input.Range,
		"input.credentials_file":     &cfg.Input.CredentialsFile,
		"locale.date_pattern":        &cfg.Locale.DatePattern,
		"locale.thousands_separator": &cfg.Locale.ThousandsSeparator,
		"locale.decimal_separator":   &cfg.Locale.DecimalSeparator,
		"locale.currency_symbol":     &cfg.Locale.CurrencySymbol,
		"columns.date":               &cfg.Columns.Date,
		"columns.cost":               &cfg.Columns.Cost,
		"columns.category":           &cfg.Columns.Category,
		"columns.description":        &cfg.Columns.Description,
		"columns.payment_method":     &cfg.Columns.PaymentMethod,
		"output.category_chart":      &cfg.Output.CategoryChart,
		"output.daily_chart":         &cfg.Output.DailyChart,
		"report.unknown_description": &cfg.Report.UnknownDescription,
		"report.uncategorized_label": &cfg.Report.UncategorizedLabel,
	}
	for key, p := range strs {
		if v.IsSet(key) {
			*p = v.GetString(key)
		}
	}
	if v.IsSet("output.width") {
		cfg.Output.Width = v.GetFloat64("output.width")
	}
	if v.IsSet("output.height") {
		cfg.Output.Height = v.GetFloat64("output.height")
	}
	if v.IsSet("report.preview_rows") {
		cfg.Report.PreviewRows = v.GetInt("report.preview_rows")
	}
}

// diagnostic is an error whose message is shown to the user as is.
type diagnostic struct {
	msg string
	err error
}

func (d *diagnostic) Error() string { return d.msg }
func (d *diagnostic) Unwrap() error { return d.err }

// explain turns a stage error into the message printed before exiting.
func explain(err error, input string) error {
	var d *diagnostic
	if errors.As(err, &d) {
		return err
	}
	if errors.Is(err, pipeline.ErrChart) {
		return &diagnostic{msg: fmt.Sprintf("Error: No se pudo guardar un gráfico (%v). El resumen se generó igualmente.", err), err: err}
	}
	if errors.Is(err, source.ErrFileNotFound) {
		return &diagnostic{msg: fmt.Sprintf("Error: El archivo '%s' no se encontró.", input), err: err}
	}
	return &diagnostic{
		msg: fmt.Sprintf("Ocurrió un error: %v. Por favor, revisa el formato de tus datos en el CSV.", err),
		err: err,
	}
}
