package portfolio

import (
	"context"
	"log/slog"
	"time"

	"github.com/adiazgm/foliobot/internal/domain"
	"github.com/adiazgm/foliobot/internal/report"
)

// ComparisonReport es el resultado del reporte de comparación contra el
// capital realmente invertido.
type ComparisonReport struct {
	GeneratedAt time.Time
	WindowDays  int
	Events      []domain.CapitalEvent
	Trades      []domain.Trade
	Merged      domain.MergedCurve
	Metrics     domain.Comparison
	Markdown    string
}

// RunComparison reconstruye el capital invertido desde P2P y depósitos,
// hace replay del portfolio real y lo compara contra el benchmark
// buy-and-hold que compra el split objetivo con cada entrada de capital.
//
// El baseline de retorno es el capital acumulado invertido, no el primer
// valor de la curva: mide cuánto rindió el dinero que realmente entró.
func (s *Service) RunComparison(ctx context.Context, days int) (*ComparisonReport, error) {
	days = s.window(days)
	now := s.cfg.Now()

	btc, eth, err := s.fetchPrices(ctx, days)
	if err != nil {
		return nil, err
	}

	buys := s.fetchP2POrders(ctx, domain.SideBuy, days)
	sells := s.fetchP2POrders(ctx, domain.SideSell, days)
	deposits := s.fetchDeposits(ctx, days)
	trades := s.fetchTrades(ctx, days)
	s.logBalances(ctx)

	events := domain.BuildCashFlowLedger(buys, sells, deposits, btc, eth)
	if len(events) == 0 {
		return nil, domain.ErrNoCashFlowEvents
	}
	invested := events[len(events)-1].CumulativeInvested

	start := domain.Day(events[0].Timestamp)
	end := domain.Day(now)

	actual := domain.CashFlowActualCurve(events, trades, btc, eth, start, end)
	benchmark := domain.WeightedAccrualCurve(events, btc, eth, s.cfg.Weights, start, end)
	if len(actual) == 0 && len(benchmark) == 0 {
		return nil, ErrNoCurves
	}

	merged := domain.MergeCurves(actual, benchmark)
	metrics := domain.CompareCurves(merged, domain.BaselineInvested, invested)
	metrics.Trades = domain.CountTrades(trades)

	slog.Info("comparison report built",
		"window_days", days,
		"events", len(events),
		"trades", len(trades),
		"curve_days", len(merged),
		"outperformance_pct", metrics.OutperformancePct,
	)

	return &ComparisonReport{
		GeneratedAt: now,
		WindowDays:  days,
		Events:      events,
		Trades:      trades,
		Merged:      merged,
		Metrics:     metrics,
		Markdown:    report.ComparisonMarkdown(now, days, events, merged, metrics),
	}, nil
}
