package pipeline

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orden-economico/gastos/internal/analysis"
	"github.com/orden-economico/gastos/internal/config"
	"github.com/orden-economico/gastos/internal/ledger"
	"github.com/orden-economico/gastos/internal/source"
)

func testConfig(t *testing.T, input string) *config.Config {
	t.Helper()
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Input.Path = input
	cfg.Output.CategoryChart = filepath.Join(dir, "Gasto_por_categoria.png")
	cfg.Output.DailyChart = filepath.Join(dir, "Gasto_en_el_tiempo.png")
	return cfg
}

func TestRun_Testdata(t *testing.T) {
	cfg := testConfig(t, filepath.Join("..", "..", "testdata", "Orden_Economico.csv"))

	var out bytes.Buffer
	res, err := Run(context.Background(), cfg, &out, false)
	require.NoError(t, err)

	require.NotNil(t, res.Summary)
	assert.Equal(t, "155200.5", res.Summary.Total.String())
	assert.Len(t, res.Ledger.Expenses, 5)
	assert.Equal(t, []string{cfg.Output.CategoryChart, cfg.Output.DailyChart}, res.Charts)
	assert.FileExists(t, cfg.Output.CategoryChart)
	assert.FileExists(t, cfg.Output.DailyChart)

	s := out.String()
	assert.Contains(t, s, "El gasto total en el período analizado fue: $155200.50")
	assert.Contains(t, s, "- Comida    : $97900.50 (63.08%)")
	assert.Contains(t, s, "- Ocio      : $40000.00 (25.77%)")
	assert.Contains(t, s, "- Transporte: $17300.00 (11.15%)")
	assert.Contains(t, s, "El día con mayor gasto fue: 02/03/2024 con un total de $85400.50")
	assert.Contains(t, s, "El gasto individual más alto fue de $85400.50 por 'Supermercado'.")
	assert.NotContains(t, s, "Datos originales")
}

func TestRun_Preview(t *testing.T) {
	cfg := testConfig(t, filepath.Join("..", "..", "testdata", "tres_filas.csv"))

	var out bytes.Buffer
	_, err := Run(context.Background(), cfg, &out, true)
	require.NoError(t, err)

	s := out.String()
	assert.Contains(t, s, "Datos originales")
	assert.Contains(t, s, "Datos limpios")
	assert.Less(t, bytes.Index(out.Bytes(), []byte("Datos limpios")), bytes.Index(out.Bytes(), []byte("RESUMEN")))
	assert.Contains(t, s, "(85.71%)")
}

func TestRun_MissingFile(t *testing.T) {
	cfg := testConfig(t, filepath.Join(t.TempDir(), "no_existe.csv"))

	var out bytes.Buffer
	res, err := Run(context.Background(), cfg, &out, false)
	require.ErrorIs(t, err, source.ErrFileNotFound)
	assert.Nil(t, res)
	assert.Empty(t, out.String())
	assert.NoFileExists(t, cfg.Output.CategoryChart)
}

func TestRun_MissingCostColumnStopsBeforeSummary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sin_costo.csv")
	require.NoError(t, os.WriteFile(path, []byte("Fecha,Categoría\n01/01/2024,Comida\n"), 0o644))
	cfg := testConfig(t, path)

	var out bytes.Buffer
	res, err := Run(context.Background(), cfg, &out, false)
	require.ErrorIs(t, err, ledger.ErrMissingColumn)
	require.NotNil(t, res)
	assert.Nil(t, res.Summary)
	assert.Empty(t, out.String())
}

func TestRun_NoUsableCosts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gratis.csv")
	require.NoError(t, os.WriteFile(path, []byte("Fecha,Costo,Categoría\n01/01/2024,gratis,Comida\n"), 0o644))
	cfg := testConfig(t, path)

	var out bytes.Buffer
	_, err := Run(context.Background(), cfg, &out, false)
	require.ErrorIs(t, err, analysis.ErrNoExpenses)
	assert.Empty(t, out.String())
}

func TestRun_ChartFailureStillSummarizes(t *testing.T) {
	cfg := testConfig(t, filepath.Join("..", "..", "testdata", "tres_filas.csv"))
	cfg.Output.CategoryChart = filepath.Join(t.TempDir(), "no", "such", "dir", "barras.png")

	var out bytes.Buffer
	res, err := Run(context.Background(), cfg, &out, false)
	require.ErrorIs(t, err, ErrChart)
	assert.Contains(t, err.Error(), "barras.png")

	assert.Contains(t, out.String(), "RESUMEN DEL ANÁLISIS DE GASTOS")
	assert.Contains(t, out.String(), "$175.00")
	assert.Equal(t, []string{cfg.Output.DailyChart}, res.Charts)
	assert.FileExists(t, cfg.Output.DailyChart)
}

func TestClean_SemicolonDelimiter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "punto_y_coma.csv")
	require.NoError(t, os.WriteFile(path, []byte("Fecha;Costo;Categoría\n01/01/2024;$1.234,56;Hogar\n"), 0o644))
	cfg := testConfig(t, path)
	cfg.Input.Delimiter = ";"

	res, err := Clean(context.Background(), cfg)
	require.NoError(t, err)
	require.Len(t, res.Ledger.Expenses, 1)
	assert.Equal(t, "1234.56", res.Ledger.Expenses[0].Cost.String())
}

func TestNewReader_UnknownFormat(t *testing.T) {
	cfg := config.Default()
	cfg.Input.Format = "ods"

	_, err := NewReader(context.Background(), cfg)
	assert.ErrorIs(t, err, source.ErrUnknownFormat)
}

func TestNewReader_SheetsNeedsCredentials(t *testing.T) {
	cfg := config.Default()
	cfg.Input.Format = config.FormatSheets
	cfg.Input.SpreadsheetID = "abc"
	cfg.Input.Range = "Gastos!A:E"
	cfg.Input.CredentialsFile = filepath.Join(t.TempDir(), "missing.json")

	_, err := NewReader(context.Background(), cfg)
	assert.ErrorContains(t, err, "reading credentials")
}

func TestRun_NoDateColumnSkipsDailyChart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sin_fecha.csv")
	require.NoError(t, os.WriteFile(path, []byte("Costo,Categoría\n$10,Comida\n$5,Ocio\n"), 0o644))
	cfg := testConfig(t, path)

	var out bytes.Buffer
	res, err := Run(context.Background(), cfg, &out, false)
	require.NoError(t, err)

	assert.Equal(t, []string{cfg.Output.CategoryChart}, res.Charts)
	assert.FileExists(t, cfg.Output.CategoryChart)
	assert.NoFileExists(t, cfg.Output.DailyChart)
	assert.Contains(t, out.String(), "$15.00")
	assert.Contains(t, out.String(), "Ningún gasto tiene fecha")
}
