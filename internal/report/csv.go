package report

// csv.go — export de los datos crudos de cada reporte.
//
// Un archivo por dataset, prefijado con el id del reporte, para poder
// abrirlos en una hoja de cálculo o cruzarlos con otra herramienta.

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/adiazgm/foliobot/internal/domain"
)

// Writer escribe los CSVs de un reporte bajo un directorio base.
type Writer struct {
	dir string
}

// NewWriter crea un Writer que escribe bajo dir, creándolo si no existe.
func NewWriter(dir string) *Writer {
	return &Writer{dir: dir}
}

// EquityCSV escribe la curva fusionada y devuelve la ruta del archivo.
func (w *Writer) EquityCSV(id string, merged domain.MergedCurve) (string, error) {
	rows := [][]string{{"date", "actual", "benchmark"}}
	for _, p := range merged {
		rows = append(rows, []string{
			p.Date.Format("2006-01-02"),
			formatFloat(p.Actual),
			formatFloat(p.Benchmark),
		})
	}
	return w.write(id+"_equity.csv", rows)
}

// EventsCSV escribe el ledger de movimientos de capital.
func (w *Writer) EventsCSV(id string, events []domain.CapitalEvent) (string, error) {
	rows := [][]string{{"timestamp", "kind", "asset", "usd_value", "crypto_amount", "cumulative_invested", "description"}}
	for _, ev := range events {
		rows = append(rows, []string{
			ev.Timestamp.UTC().Format("2006-01-02T15:04:05Z"),
			string(ev.Kind),
			ev.Asset,
			formatFloat(ev.USDValue),
			formatFloat(ev.CryptoAmount),
			formatFloat(ev.CumulativeInvested),
			ev.Description,
		})
	}
	return w.write(id+"_events.csv", rows)
}

// TradesCSV escribe la tabla de fills spot.
func (w *Writer) TradesCSV(id string, trades []domain.Trade) (string, error) {
	rows := [][]string{{"timestamp", "symbol", "side", "qty", "price", "quote_qty", "commission", "commission_asset", "btc_price", "eth_price"}}
	for _, t := range trades {
		rows = append(rows, []string{
			t.Timestamp.UTC().Format("2006-01-02T15:04:05Z"),
			t.Symbol,
			string(t.Side),
			formatFloat(t.Qty),
			formatFloat(t.Price),
			formatFloat(t.QuoteQty),
			formatFloat(t.Commission),
			t.CommissionAsset,
			formatFloat(t.BTCPrice),
			formatFloat(t.ETHPrice),
		})
	}
	return w.write(id+"_trades.csv", rows)
}

// MetricRow es un par nombre/valor del CSV de métricas.
type MetricRow struct {
	Name  string
	Value float64
}

// MetricsCSV escribe las métricas como pares nombre/valor.
func (w *Writer) MetricsCSV(id string, rows []MetricRow) (string, error) {
	records := [][]string{{"metric", "value"}}
	for _, r := range rows {
		records = append(records, []string{r.Name, formatFloat(r.Value)})
	}
	return w.write(id+"_metrics.csv", records)
}

// MetricRows aplana una Comparison a filas de métricas.
func MetricRows(m domain.Comparison) []MetricRow {
	return []MetricRow{
		{"total_invested", m.Invested},
		{"actual_start", m.Actual.Start},
		{"actual_final", m.Actual.Final},
		{"actual_return_pct", m.Actual.ReturnPct},
		{"actual_profit_loss", m.Actual.ProfitLoss},
		{"actual_max_drawdown_pct", m.Actual.MaxDrawdownPct},
		{"benchmark_start", m.Benchmark.Start},
		{"benchmark_final", m.Benchmark.Final},
		{"benchmark_return_pct", m.Benchmark.ReturnPct},
		{"benchmark_profit_loss", m.Benchmark.ProfitLoss},
		{"benchmark_max_drawdown_pct", m.Benchmark.MaxDrawdownPct},
		{"outperformance_pct", m.OutperformancePct},
		{"trades_total", float64(m.Trades.Total)},
		{"trades_buys", float64(m.Trades.Buys)},
		{"trades_sells", float64(m.Trades.Sells)},
	}
}

// write vuelca las filas a un CSV bajo el directorio base.
func (w *Writer) write(name string, rows [][]string) (string, error) {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return "", fmt.Errorf("report.write: mkdir %q: %w", w.dir, err)
	}

	path := filepath.Join(w.dir, name)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("report.write: create %q: %w", path, err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if err := cw.WriteAll(rows); err != nil {
		return "", fmt.Errorf("report.write: %q: %w", path, err)
	}
	return path, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
