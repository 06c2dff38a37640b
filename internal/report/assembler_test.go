package report_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/adiazgm/foliobot/internal/domain"
	"github.com/adiazgm/foliobot/internal/report"
)

var genAt = time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)

func sampleComparison() domain.Comparison {
	return domain.Comparison{
		Invested: 1700,
		Actual: domain.StrategyMetrics{
			Start: 1700, Final: 1955, ReturnPct: 15.0, ProfitLoss: 255, MaxDrawdownPct: -3.1,
		},
		Benchmark: domain.StrategyMetrics{
			Start: 1700, Final: 1836, ReturnPct: 8.0, ProfitLoss: 136, MaxDrawdownPct: -5.4,
		},
		OutperformancePct: 7.0,
	}
}

func TestComparisonMarkdown(t *testing.T) {
	events := []domain.CapitalEvent{
		{
			Timestamp: genAt.AddDate(0, 0, -20), Kind: domain.EventP2PBuy, Asset: domain.AssetUSDT,
			USDValue: 1000, CryptoAmount: 1000,
			Description:        "P2P BUY 1000.0000 USDT @ $1.00",
			CumulativeInvested: 1000,
		},
		{
			Timestamp: genAt.AddDate(0, 0, -10), Kind: domain.EventDeposit, Asset: domain.AssetBTC,
			USDValue: 700, CryptoAmount: 0.014,
			Description:        "DEPOSIT 0.01400000 BTC @ $50000.00 = $700.00",
			CumulativeInvested: 1700,
		},
	}
	merged := domain.MergedCurve{
		{Date: genAt.AddDate(0, 0, -2), Actual: 1900, Benchmark: 1820},
		{Date: genAt.AddDate(0, 0, -1), Actual: 1955, Benchmark: 1836},
	}

	md := report.ComparisonMarkdown(genAt, 30, events, merged, sampleComparison())

	assert.Contains(t, md, "# Portfolio vs Benchmark")
	assert.Contains(t, md, "Ventana: 30 días")
	assert.Contains(t, md, "**$1,700**")
	assert.Contains(t, md, "P2P BUY 1000.0000 USDT @ $1.00")
	assert.Contains(t, md, "DEPOSIT 0.01400000 BTC")
	assert.Contains(t, md, "| Retorno | +15.00% | +8.00% |")
	assert.Contains(t, md, "| Max drawdown | -3.10% | -5.40% |")
	assert.Contains(t, md, "SUPERÓ al benchmark por 7.00%")
	// Totales por tipo de evento
	assert.Contains(t, md, "Compras P2P: $1,000")
	assert.Contains(t, md, "Depósitos: $700")
}

func TestPerformanceMarkdown(t *testing.T) {
	alloc := domain.InitialAllocation{
		Holdings:      domain.Holdings{BTC: 0.01665, ETH: 0.333, USDT: 1002},
		BTCPriceStart: 60000,
		ETHPriceStart: 3000,
	}
	trades := []domain.Trade{{
		Timestamp: genAt.AddDate(0, 0, -5), Symbol: domain.SymbolETHUSDT, Side: domain.SideSell,
		Qty: 0.1, QuoteQty: 310, Price: 3100, BTCPrice: 61000, ETHPrice: 3100,
	}}

	m := sampleComparison()
	m.OutperformancePct = -1.2
	m.Trades = domain.TradeStats{Total: 1, Sells: 1}

	md := report.PerformanceMarkdown(genAt, 30, trades, alloc, nil, m)

	assert.Contains(t, md, "# Trading Performance")
	assert.Contains(t, md, "Asignación inicial: 0.016650 BTC @ $60,000")
	assert.Contains(t, md, "| 2024-03-10 10:30 | ETHUSDT | SELL |")
	assert.Contains(t, md, "| Trades | 1 (0B/1S) | - |")
	assert.Contains(t, md, "POR DEBAJO del benchmark por 1.20%")
}

func TestPerformanceMarkdown_NoTrades(t *testing.T) {
	md := report.PerformanceMarkdown(genAt, 30, nil, domain.InitialAllocation{}, nil, sampleComparison())
	assert.Contains(t, md, "Sin trades en la ventana.")
}
