package portfolio_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adiazgm/foliobot/internal/domain"
	"github.com/adiazgm/foliobot/internal/portfolio"
)

var svcNow = time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)

type fakeMarket struct {
	series map[string]*domain.PriceSeries
	err    error
}

func (f *fakeMarket) Klines(_ context.Context, symbol, _ string, _ int) (*domain.PriceSeries, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.series[symbol], nil
}

type fakeAccount struct {
	trades      map[string][]domain.Trade
	buys, sells []domain.P2POrder
	deposits    []domain.Deposit

	tradesErr   error
	p2pErr      error
	depositsErr error
}

func (f *fakeAccount) MyTrades(_ context.Context, symbol string, _ int) ([]domain.Trade, error) {
	if f.tradesErr != nil {
		return nil, f.tradesErr
	}
	return f.trades[symbol], nil
}

func (f *fakeAccount) P2POrders(_ context.Context, side domain.Side, _ int) ([]domain.P2POrder, error) {
	if f.p2pErr != nil {
		return nil, f.p2pErr
	}
	if side == domain.SideBuy {
		return f.buys, nil
	}
	return f.sells, nil
}

func (f *fakeAccount) Deposits(_ context.Context, _ int) ([]domain.Deposit, error) {
	if f.depositsErr != nil {
		return nil, f.depositsErr
	}
	return f.deposits, nil
}

func (f *fakeAccount) Balances(_ context.Context) (map[string]float64, error) {
	return map[string]float64{}, nil
}

// flatSeries cubre la ventana completa con velas diarias a precio fijo.
func flatSeries(symbol string, price float64) *domain.PriceSeries {
	s := &domain.PriceSeries{Symbol: symbol}
	for d := 0; d <= 30; d++ {
		s.Points = append(s.Points, domain.PricePoint{
			Timestamp: svcNow.AddDate(0, 0, d-30),
			Close:     price,
		})
	}
	return s
}

func flatMarket() *fakeMarket {
	return &fakeMarket{series: map[string]*domain.PriceSeries{
		domain.SymbolBTCUSDT: flatSeries(domain.SymbolBTCUSDT, 50000),
		domain.SymbolETHUSDT: flatSeries(domain.SymbolETHUSDT, 3000),
	}}
}

func testConfig() portfolio.Config {
	cfg := portfolio.DefaultConfig()
	cfg.Now = func() time.Time { return svcNow }
	return cfg
}

func TestRunComparison_HappyPath(t *testing.T) {
	account := &fakeAccount{
		buys: []domain.P2POrder{{
			Timestamp: svcNow.AddDate(0, 0, -20).Add(12 * time.Hour),
			Side:      domain.SideBuy, Asset: domain.AssetUSDT,
			CryptoAmount: 1000, FiatAmount: 1000, UnitPrice: 1,
		}},
	}
	svc := portfolio.NewService(flatMarket(), account, testConfig())

	rep, err := svc.RunComparison(context.Background(), 30)
	require.NoError(t, err)

	require.Len(t, rep.Events, 1)
	assert.Equal(t, 1000.0, rep.Metrics.Invested)
	assert.NotEmpty(t, rep.Merged)
	assert.Contains(t, rep.Markdown, "# Portfolio vs Benchmark")

	// Mercado plano y sin trades: ambas curvas quietas en el invertido.
	assert.InDelta(t, 1000.0, rep.Metrics.Actual.Final, 1e-9)
	assert.InDelta(t, 0.0, rep.Metrics.OutperformancePct, 1e-9)
	assert.Equal(t, 0.0, rep.Metrics.Actual.MaxDrawdownPct)
}

func TestRunComparison_NoEventsIsFatal(t *testing.T) {
	svc := portfolio.NewService(flatMarket(), &fakeAccount{}, testConfig())

	_, err := svc.RunComparison(context.Background(), 30)
	assert.ErrorIs(t, err, domain.ErrNoCashFlowEvents)
}

func TestRunComparison_PriceFetchIsFatal(t *testing.T) {
	market := &fakeMarket{err: errors.New("binance down")}
	account := &fakeAccount{
		buys: []domain.P2POrder{{Timestamp: svcNow.AddDate(0, 0, -5), Asset: domain.AssetUSDT, CryptoAmount: 100, FiatAmount: 100}},
	}
	svc := portfolio.NewService(market, account, testConfig())

	_, err := svc.RunComparison(context.Background(), 30)
	assert.ErrorIs(t, err, portfolio.ErrNoPriceData)
}

func TestRunComparison_ToleratesHistoryFetchErrors(t *testing.T) {
	// P2P y trades caídos, pero hay un depósito valorable: el reporte sale.
	account := &fakeAccount{
		p2pErr:    errors.New("p2p endpoint down"),
		tradesErr: errors.New("trades endpoint down"),
		deposits: []domain.Deposit{{
			Timestamp: svcNow.AddDate(0, 0, -10), Coin: domain.AssetBTC, Amount: 0.02,
		}},
	}
	svc := portfolio.NewService(flatMarket(), account, testConfig())

	rep, err := svc.RunComparison(context.Background(), 30)
	require.NoError(t, err)

	require.Len(t, rep.Events, 1)
	assert.InDelta(t, 1000.0, rep.Metrics.Invested, 1e-9) // 0.02 BTC @ 50000
	assert.Empty(t, rep.Trades)
}

func TestRunPerformance_NoTrades(t *testing.T) {
	svc := portfolio.NewService(flatMarket(), &fakeAccount{}, testConfig())

	rep, err := svc.RunPerformance(context.Background(), 30)
	require.NoError(t, err)

	assert.Empty(t, rep.Trades)
	assert.InDelta(t, 3000.0, rep.Allocation.Value(), 1e-6)
	assert.NotEmpty(t, rep.Merged)
	// Mercado plano sin trades: retorno cero en ambas estrategias.
	assert.InDelta(t, 0.0, rep.Metrics.Actual.ReturnPct, 1e-9)
	assert.InDelta(t, 0.0, rep.Metrics.Benchmark.ReturnPct, 1e-9)
	assert.Contains(t, rep.Markdown, "# Trading Performance")
}

func TestRunPerformance_AttachesMarketPrices(t *testing.T) {
	account := &fakeAccount{
		trades: map[string][]domain.Trade{
			domain.SymbolBTCUSDT: {{
				Timestamp: svcNow.AddDate(0, 0, -10),
				Symbol:    domain.SymbolBTCUSDT, Side: domain.SideBuy,
				Qty: 0.005, QuoteQty: 250, Price: 50000,
			}},
		},
	}
	svc := portfolio.NewService(flatMarket(), account, testConfig())

	rep, err := svc.RunPerformance(context.Background(), 30)
	require.NoError(t, err)

	require.Len(t, rep.Trades, 1)
	assert.Equal(t, 50000.0, rep.Trades[0].BTCPrice)
	assert.Equal(t, 3000.0, rep.Trades[0].ETHPrice)
	assert.Equal(t, 1, rep.Metrics.Trades.Buys)
	// La curva arranca en el día del primer trade.
	assert.Equal(t, domain.Day(svcNow.AddDate(0, 0, -10)), rep.Merged[0].Date)
}

func TestRunPerformance_PriceFetchIsFatal(t *testing.T) {
	svc := portfolio.NewService(&fakeMarket{err: errors.New("down")}, &fakeAccount{}, testConfig())

	_, err := svc.RunPerformance(context.Background(), 30)
	assert.ErrorIs(t, err, portfolio.ErrNoPriceData)
}
