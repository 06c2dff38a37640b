package render

// console.go — salida de consola de los reportes.
//
// Mismo contenido que el markdown persistido, pero en tablas de terminal:
// curva de equity (últimos días), métricas lado a lado, eventos de capital
// o trades, y el veredicto final.

import (
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"

	"github.com/adiazgm/foliobot/internal/domain"
)

// equityTailDays limita la tabla de equity a los últimos días para no
// inundar la terminal en ventanas largas.
const equityTailDays = 10

// Console escribe reportes formateados a un io.Writer.
type Console struct {
	out io.Writer
}

// NewConsole crea un renderer que escribe a stdout.
func NewConsole() *Console {
	return &Console{out: os.Stdout}
}

// NewConsoleWriter crea un renderer para tests o para capturar el output.
func NewConsoleWriter(w io.Writer) *Console {
	return &Console{out: w}
}

// RenderComparison imprime el reporte de comparación contra el capital
// realmente invertido (eventos P2P + depósitos).
func (c *Console) RenderComparison(events []domain.CapitalEvent, merged domain.MergedCurve, m domain.Comparison) {
	fmt.Fprintf(c.out, "\n=== PORTFOLIO vs BENCHMARK — capital invertido $%s ===\n\n",
		money(m.Invested))

	c.printEvents(events)
	c.printEquityTail(merged)
	c.printMetrics(m, "Invertido")
	c.printVerdict(m)
}

// RenderPerformance imprime el reporte de performance con principal fijo.
func (c *Console) RenderPerformance(trades []domain.Trade, alloc domain.InitialAllocation, merged domain.MergedCurve, m domain.Comparison) {
	fmt.Fprintf(c.out, "\n=== TRADING PERFORMANCE — principal fijo $%s ===\n\n",
		money(alloc.Value()))

	fmt.Fprintf(c.out, "  Asignación inicial: %.6f BTC @ $%s | %.6f ETH @ $%s | $%s USDT\n\n",
		alloc.Holdings.BTC, money(alloc.BTCPriceStart),
		alloc.Holdings.ETH, money(alloc.ETHPriceStart),
		money(alloc.Holdings.USDT))

	c.printTrades(trades)
	c.printEquityTail(merged)
	c.printMetrics(m, "Inicio")
	c.printVerdict(m)
}

// printEvents imprime la tabla de movimientos de capital.
func (c *Console) printEvents(events []domain.CapitalEvent) {
	if len(events) == 0 {
		return
	}

	fmt.Fprintf(c.out, "  Movimientos de capital (%d):\n", len(events))
	table := tablewriter.NewWriter(c.out)
	table.Header("Fecha", "Tipo", "Detalle", "USD", "Acumulado")
	for _, ev := range events {
		table.Append(
			ev.Timestamp.Format("2006-01-02 15:04"),
			string(ev.Kind),
			ev.Description,
			fmt.Sprintf("%+.2f", ev.USDValue),
			fmt.Sprintf("$%s", money(ev.CumulativeInvested)),
		)
	}
	table.Render()
	fmt.Fprintln(c.out)
}

// printTrades imprime la tabla de fills spot con los precios de mercado
// al momento de cada fill.
func (c *Console) printTrades(trades []domain.Trade) {
	if len(trades) == 0 {
		fmt.Fprintln(c.out, "  Sin trades en la ventana.")
		return
	}

	fmt.Fprintf(c.out, "  Trades (%d):\n", len(trades))
	table := tablewriter.NewWriter(c.out)
	table.Header("Fecha", "Par", "Lado", "Cantidad", "Precio", "Quote", "BTC mkt", "ETH mkt")
	for _, t := range trades {
		table.Append(
			t.Timestamp.Format("2006-01-02 15:04"),
			t.Symbol,
			string(t.Side),
			fmt.Sprintf("%.6f", t.Qty),
			fmt.Sprintf("$%s", money(t.Price)),
			fmt.Sprintf("$%s", money(t.QuoteQty)),
			fmt.Sprintf("$%s", money(t.BTCPrice)),
			fmt.Sprintf("$%s", money(t.ETHPrice)),
		)
	}
	table.Render()
	fmt.Fprintln(c.out)
}

// printEquityTail imprime los últimos días de ambas curvas.
func (c *Console) printEquityTail(merged domain.MergedCurve) {
	if len(merged) == 0 {
		return
	}

	tail := merged
	if len(tail) > equityTailDays {
		tail = tail[len(tail)-equityTailDays:]
	}

	fmt.Fprintf(c.out, "  Curva de equity (últimos %d de %d días):\n", len(tail), len(merged))
	table := tablewriter.NewWriter(c.out)
	table.Header("Fecha", "Portfolio", "Benchmark", "Diff")
	for _, p := range tail {
		table.Append(
			p.Date.Format("2006-01-02"),
			fmt.Sprintf("$%s", money(p.Actual)),
			fmt.Sprintf("$%s", money(p.Benchmark)),
			fmt.Sprintf("%+.2f", p.Actual-p.Benchmark),
		)
	}
	table.Render()
	fmt.Fprintln(c.out)
}

// printMetrics imprime las métricas de ambas estrategias lado a lado.
func (c *Console) printMetrics(m domain.Comparison, baseLabel string) {
	table := tablewriter.NewWriter(c.out)
	table.Header("Métrica", "Portfolio", "Benchmark")
	table.Append(baseLabel, fmt.Sprintf("$%s", money(m.Actual.Start)), fmt.Sprintf("$%s", money(m.Benchmark.Start)))
	table.Append("Valor final", fmt.Sprintf("$%s", money(m.Actual.Final)), fmt.Sprintf("$%s", money(m.Benchmark.Final)))
	table.Append("Retorno", fmt.Sprintf("%+.2f%%", m.Actual.ReturnPct), fmt.Sprintf("%+.2f%%", m.Benchmark.ReturnPct))
	table.Append("P/L", fmt.Sprintf("%+.2f", m.Actual.ProfitLoss), fmt.Sprintf("%+.2f", m.Benchmark.ProfitLoss))
	table.Append("Max drawdown", fmt.Sprintf("%.2f%%", m.Actual.MaxDrawdownPct), fmt.Sprintf("%.2f%%", m.Benchmark.MaxDrawdownPct))
	if m.Trades.Total > 0 {
		table.Append("Trades", fmt.Sprintf("%d (%dB/%dS)", m.Trades.Total, m.Trades.Buys, m.Trades.Sells), "-")
	}
	table.Render()
	fmt.Fprintln(c.out)
}

// printVerdict imprime la línea de veredicto.
func (c *Console) printVerdict(m domain.Comparison) {
	if m.OutperformancePct >= 0 {
		fmt.Fprintf(c.out, "  VEREDICTO: la estrategia de trading SUPERÓ al benchmark por %.2f%%\n\n",
			m.OutperformancePct)
	} else {
		fmt.Fprintf(c.out, "  VEREDICTO: la estrategia de trading quedó POR DEBAJO del benchmark por %.2f%%\n\n",
			-m.OutperformancePct)
	}
}

// money formatea un valor USD con separador de miles y 2 decimales.
func money(v float64) string {
	return humanize.CommafWithDigits(v, 2)
}
