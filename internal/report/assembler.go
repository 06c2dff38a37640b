// Package report arma los reportes en markdown y exporta sus datos a CSV.
// El markdown es el artefacto que se persiste; la consola renderiza lo
// mismo en tablas de terminal.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/adiazgm/foliobot/internal/domain"
)

// ComparisonMarkdown arma el reporte de comparación contra el capital
// realmente invertido.
func ComparisonMarkdown(generatedAt time.Time, days int, events []domain.CapitalEvent, merged domain.MergedCurve, m domain.Comparison) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# Portfolio vs Benchmark — capital invertido\n\n")
	fmt.Fprintf(&sb, "Generado: %s | Ventana: %d días\n\n", generatedAt.UTC().Format("2006-01-02 15:04 UTC"), days)
	fmt.Fprintf(&sb, "Capital invertido acumulado: **$%s**\n\n", money(m.Invested))

	writeEventsSection(&sb, events)
	writeEquitySection(&sb, merged)
	writeMetricsSection(&sb, m, "Invertido")
	writeVerdict(&sb, m)

	return sb.String()
}

// PerformanceMarkdown arma el reporte de performance con principal fijo.
func PerformanceMarkdown(generatedAt time.Time, days int, trades []domain.Trade, alloc domain.InitialAllocation, merged domain.MergedCurve, m domain.Comparison) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# Trading Performance — principal fijo\n\n")
	fmt.Fprintf(&sb, "Generado: %s | Ventana: %d días\n\n", generatedAt.UTC().Format("2006-01-02 15:04 UTC"), days)
	fmt.Fprintf(&sb, "Principal: **$%s**\n\n", money(alloc.Value()))
	fmt.Fprintf(&sb, "Asignación inicial: %.6f BTC @ $%s | %.6f ETH @ $%s | $%s USDT\n\n",
		alloc.Holdings.BTC, money(alloc.BTCPriceStart),
		alloc.Holdings.ETH, money(alloc.ETHPriceStart),
		money(alloc.Holdings.USDT))

	writeTradesSection(&sb, trades)
	writeEquitySection(&sb, merged)
	writeMetricsSection(&sb, m, "Inicio")
	writeVerdict(&sb, m)

	return sb.String()
}

func writeEventsSection(sb *strings.Builder, events []domain.CapitalEvent) {
	if len(events) == 0 {
		return
	}

	fmt.Fprintf(sb, "## Movimientos de capital (%d)\n\n", len(events))
	fmt.Fprintln(sb, "| Fecha | Tipo | Detalle | USD | Acumulado |")
	fmt.Fprintln(sb, "|---|---|---|---:|---:|")
	for _, ev := range events {
		fmt.Fprintf(sb, "| %s | %s | %s | %+.2f | $%s |\n",
			ev.Timestamp.Format("2006-01-02 15:04"),
			ev.Kind,
			ev.Description,
			ev.USDValue,
			money(ev.CumulativeInvested),
		)
	}

	totals := domain.TotalsByKind(events)
	fmt.Fprintf(sb, "\nCompras P2P: $%s | Ventas P2P: $%s | Depósitos: $%s\n\n",
		money(totals[domain.EventP2PBuy]),
		money(-totals[domain.EventP2PSell]),
		money(totals[domain.EventDeposit]),
	)
}

func writeTradesSection(sb *strings.Builder, trades []domain.Trade) {
	if len(trades) == 0 {
		fmt.Fprintln(sb, "Sin trades en la ventana.")
		fmt.Fprintln(sb)
		return
	}

	fmt.Fprintf(sb, "## Trades (%d)\n\n", len(trades))
	fmt.Fprintln(sb, "| Fecha | Par | Lado | Cantidad | Precio | Quote | BTC mkt | ETH mkt |")
	fmt.Fprintln(sb, "|---|---|---|---:|---:|---:|---:|---:|")
	for _, t := range trades {
		fmt.Fprintf(sb, "| %s | %s | %s | %.6f | $%s | $%s | $%s | $%s |\n",
			t.Timestamp.Format("2006-01-02 15:04"),
			t.Symbol,
			t.Side,
			t.Qty,
			money(t.Price),
			money(t.QuoteQty),
			money(t.BTCPrice),
			money(t.ETHPrice),
		)
	}
	fmt.Fprintln(sb)
}

func writeEquitySection(sb *strings.Builder, merged domain.MergedCurve) {
	if len(merged) == 0 {
		return
	}

	fmt.Fprintf(sb, "## Curva de equity (%d días)\n\n", len(merged))
	fmt.Fprintln(sb, "| Fecha | Portfolio | Benchmark | Diff |")
	fmt.Fprintln(sb, "|---|---:|---:|---:|")
	for _, p := range merged {
		fmt.Fprintf(sb, "| %s | $%s | $%s | %+.2f |\n",
			p.Date.Format("2006-01-02"),
			money(p.Actual),
			money(p.Benchmark),
			p.Actual-p.Benchmark,
		)
	}
	fmt.Fprintln(sb)
}

func writeMetricsSection(sb *strings.Builder, m domain.Comparison, baseLabel string) {
	fmt.Fprintln(sb, "## Métricas")
	fmt.Fprintln(sb)
	fmt.Fprintln(sb, "| Métrica | Portfolio | Benchmark |")
	fmt.Fprintln(sb, "|---|---:|---:|")
	fmt.Fprintf(sb, "| %s | $%s | $%s |\n", baseLabel, money(m.Actual.Start), money(m.Benchmark.Start))
	fmt.Fprintf(sb, "| Valor final | $%s | $%s |\n", money(m.Actual.Final), money(m.Benchmark.Final))
	fmt.Fprintf(sb, "| Retorno | %+.2f%% | %+.2f%% |\n", m.Actual.ReturnPct, m.Benchmark.ReturnPct)
	fmt.Fprintf(sb, "| P/L | %+.2f | %+.2f |\n", m.Actual.ProfitLoss, m.Benchmark.ProfitLoss)
	fmt.Fprintf(sb, "| Max drawdown | %.2f%% | %.2f%% |\n", m.Actual.MaxDrawdownPct, m.Benchmark.MaxDrawdownPct)
	if m.Trades.Total > 0 {
		fmt.Fprintf(sb, "| Trades | %d (%dB/%dS) | - |\n", m.Trades.Total, m.Trades.Buys, m.Trades.Sells)
	}
	fmt.Fprintln(sb)
}

func writeVerdict(sb *strings.Builder, m domain.Comparison) {
	if m.OutperformancePct >= 0 {
		fmt.Fprintf(sb, "**Veredicto:** la estrategia de trading SUPERÓ al benchmark por %.2f%%.\n", m.OutperformancePct)
	} else {
		fmt.Fprintf(sb, "**Veredicto:** la estrategia de trading quedó POR DEBAJO del benchmark por %.2f%%.\n", -m.OutperformancePct)
	}
}

// money formatea un valor USD con separador de miles y 2 decimales.
func money(v float64) string {
	return humanize.CommafWithDigits(v, 2)
}
