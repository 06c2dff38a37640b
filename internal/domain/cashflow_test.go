package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ledgerStart = time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

func TestBuildCashFlowLedger_SignConventions(t *testing.T) {
	buys := []P2POrder{{
		Timestamp: ledgerStart, Side: SideBuy, Asset: AssetUSDT,
		CryptoAmount: 500, FiatAmount: 500, UnitPrice: 1.0,
	}}
	sells := []P2POrder{{
		Timestamp: ledgerStart.Add(time.Hour), Side: SideSell, Asset: AssetUSDT,
		CryptoAmount: 200, FiatAmount: 200, UnitPrice: 1.0,
	}}

	events := BuildCashFlowLedger(buys, sells, nil, nil, nil)
	require.Len(t, events, 2)

	assert.Equal(t, EventP2PBuy, events[0].Kind)
	assert.Equal(t, 500.0, events[0].USDValue)
	assert.Equal(t, 500.0, events[0].CryptoAmount)

	assert.Equal(t, EventP2PSell, events[1].Kind)
	assert.Equal(t, -200.0, events[1].USDValue)
	assert.Equal(t, -200.0, events[1].CryptoAmount)
}

func TestBuildCashFlowLedger_DepositPricedAtNearestClose(t *testing.T) {
	btc := hourlySeries(ledgerStart, 50000)
	eth := hourlySeries(ledgerStart, 3000)

	deposits := []Deposit{
		{Timestamp: ledgerStart.Add(10 * time.Minute), Coin: AssetBTC, Amount: 0.1},
		{Timestamp: ledgerStart.Add(20 * time.Minute), Coin: AssetUSDT, Amount: 300},
	}

	events := BuildCashFlowLedger(nil, nil, deposits, btc, eth)
	require.Len(t, events, 2)

	assert.Equal(t, EventDeposit, events[0].Kind)
	assert.InDelta(t, 5000.0, events[0].USDValue, 1e-9)
	// Depósitos USDT se valoran exactamente a 1.0
	assert.InDelta(t, 300.0, events[1].USDValue, 1e-9)
}

func TestBuildCashFlowLedger_UnpriceableDepositDropped(t *testing.T) {
	btc := hourlySeries(ledgerStart, 50000)

	deposits := []Deposit{
		{Timestamp: ledgerStart, Coin: "DOGE", Amount: 1000}, // moneda no trackeada
		{Timestamp: ledgerStart, Coin: AssetETH, Amount: 1},  // serie ETH vacía
		{Timestamp: ledgerStart, Coin: AssetBTC, Amount: 0.5},
	}

	events := BuildCashFlowLedger(nil, nil, deposits, btc, nil)
	require.Len(t, events, 1)
	assert.Equal(t, AssetBTC, events[0].Asset)
	// Depósitos descartados nunca entran en la suma acumulada.
	assert.InDelta(t, 25000.0, events[len(events)-1].CumulativeInvested, 1e-9)
}

func TestBuildCashFlowLedger_SortedWithCumulativeSum(t *testing.T) {
	buys := []P2POrder{
		{Timestamp: ledgerStart.Add(48 * time.Hour), Asset: AssetUSDT, CryptoAmount: 100, FiatAmount: 100},
		{Timestamp: ledgerStart, Asset: AssetUSDT, CryptoAmount: 1000, FiatAmount: 1000},
	}
	sells := []P2POrder{
		{Timestamp: ledgerStart.Add(24 * time.Hour), Asset: AssetUSDT, CryptoAmount: 300, FiatAmount: 300},
	}

	events := BuildCashFlowLedger(buys, sells, nil, nil, nil)
	require.Len(t, events, 3)

	assert.True(t, events[0].Timestamp.Before(events[1].Timestamp))
	assert.True(t, events[1].Timestamp.Before(events[2].Timestamp))

	// CumulativeInvested en i == suma de USDValue 0..i
	assert.InDelta(t, 1000.0, events[0].CumulativeInvested, 1e-9)
	assert.InDelta(t, 700.0, events[1].CumulativeInvested, 1e-9)
	assert.InDelta(t, 800.0, events[2].CumulativeInvested, 1e-9)

	sum := 0.0
	for _, ev := range events {
		sum += ev.USDValue
		assert.InDelta(t, sum, ev.CumulativeInvested, 1e-9)
	}
}

func TestBuildCashFlowLedger_TimestampTieKeepsBuildOrder(t *testing.T) {
	buys := []P2POrder{{Timestamp: ledgerStart, Asset: AssetUSDT, CryptoAmount: 1, FiatAmount: 1}}
	sells := []P2POrder{{Timestamp: ledgerStart, Asset: AssetUSDT, CryptoAmount: 2, FiatAmount: 2}}
	deposits := []Deposit{{Timestamp: ledgerStart, Coin: AssetUSDT, Amount: 3}}

	events := BuildCashFlowLedger(buys, sells, deposits, nil, nil)
	require.Len(t, events, 3)
	assert.Equal(t, EventP2PBuy, events[0].Kind)
	assert.Equal(t, EventP2PSell, events[1].Kind)
	assert.Equal(t, EventDeposit, events[2].Kind)
}

func TestTotalsByKind(t *testing.T) {
	events := []CapitalEvent{
		{Kind: EventP2PBuy, USDValue: 100},
		{Kind: EventP2PBuy, USDValue: 50},
		{Kind: EventP2PSell, USDValue: -30},
		{Kind: EventDeposit, USDValue: 500},
	}

	totals := TotalsByKind(events)
	assert.InDelta(t, 150.0, totals[EventP2PBuy], 1e-9)
	assert.InDelta(t, -30.0, totals[EventP2PSell], 1e-9)
	assert.InDelta(t, 500.0, totals[EventDeposit], 1e-9)
}
