package portfolio

import (
	"context"
	"log/slog"
	"time"

	"github.com/adiazgm/foliobot/internal/domain"
	"github.com/adiazgm/foliobot/internal/report"
)

// PerformanceReport es el resultado del reporte de performance con
// principal fijo.
type PerformanceReport struct {
	GeneratedAt time.Time
	WindowDays  int
	Trades      []domain.Trade
	Allocation  domain.InitialAllocation
	Merged      domain.MergedCurve
	Metrics     domain.Comparison
	Markdown    string
}

// RunPerformance mide los trades spot partiendo de un principal fijo
// repartido según los pesos objetivo, contra un benchmark que arranca
// igual y solo rebalancea en días con trades.
//
// El baseline de retorno es el primer valor de cada curva: mide qué hizo
// cada estrategia con el mismo punto de partida.
func (s *Service) RunPerformance(ctx context.Context, days int) (*PerformanceReport, error) {
	days = s.window(days)
	now := s.cfg.Now()

	btc, eth, err := s.fetchPrices(ctx, days)
	if err != nil {
		return nil, err
	}

	trades := s.fetchTrades(ctx, days)
	domain.AttachMarketPrices(trades, btc, eth)

	// La ventana arranca en el primer trade; sin trades cubre el lookback
	// completo para que las curvas igualmente se construyan.
	start := domain.Day(now.Add(-time.Duration(days) * 24 * time.Hour))
	if len(trades) > 0 {
		start = domain.Day(trades[0].Timestamp)
	}
	end := domain.Day(now)

	alloc := domain.ComputeInitialAllocation(trades, btc, eth, start, s.cfg.InitialCapital, s.cfg.Weights)

	actual := domain.FixedActualCurve(trades, alloc, btc, eth, start, end)
	benchmark := domain.RebalancedBenchmarkCurve(trades, alloc, btc, eth, s.cfg.Weights, start, end)
	if len(actual) == 0 && len(benchmark) == 0 {
		return nil, ErrNoCurves
	}

	merged := domain.MergeCurves(actual, benchmark)
	metrics := domain.CompareCurves(merged, domain.BaselineCurveStart, s.cfg.InitialCapital)
	metrics.Trades = domain.CountTrades(trades)

	slog.Info("performance report built",
		"window_days", days,
		"trades", len(trades),
		"curve_days", len(merged),
		"outperformance_pct", metrics.OutperformancePct,
	)

	return &PerformanceReport{
		GeneratedAt: now,
		WindowDays:  days,
		Trades:      trades,
		Allocation:  alloc,
		Merged:      merged,
		Metrics:     metrics,
		Markdown:    report.PerformanceMarkdown(now, days, trades, alloc, merged, metrics),
	}, nil
}
