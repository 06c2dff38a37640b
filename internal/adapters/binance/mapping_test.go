package binance

import (
	"testing"
	"time"

	gobinance "github.com/adshao/go-binance/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adiazgm/foliobot/internal/domain"
)

var mapStart = time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

func TestParseAmount(t *testing.T) {
	assert.Equal(t, 0.0015, parseAmount("0.00150000"))
	assert.Equal(t, 65000.5, parseAmount("65000.50"))
	assert.Equal(t, 0.0, parseAmount(""))
	assert.Equal(t, 0.0, parseAmount("not-a-number"))
}

func TestMapKlines(t *testing.T) {
	raw := []*gobinance.Kline{
		{OpenTime: mapStart.UnixMilli(), Open: "60000", High: "61000", Low: "59500", Close: "60500", Volume: "12.5"},
		{OpenTime: mapStart.Add(time.Hour).UnixMilli(), Open: "60500", High: "60800", Low: "60100", Close: "60200", Volume: "8.1"},
	}

	series := mapKlines(domain.SymbolBTCUSDT, raw)
	require.Len(t, series.Points, 2)

	assert.Equal(t, domain.SymbolBTCUSDT, series.Symbol)
	assert.Equal(t, mapStart, series.Points[0].Timestamp)
	assert.Equal(t, 60500.0, series.Points[0].Close)
	assert.Equal(t, 8.1, series.Points[1].Volume)
}

func TestMapTrades_SideAndCutoff(t *testing.T) {
	cutoff := mapStart
	raw := []*gobinance.TradeV3{
		{Time: mapStart.Add(-time.Hour).UnixMilli(), IsBuyer: true, Price: "60000", Quantity: "0.01", QuoteQuantity: "600"},
		{Time: mapStart.Add(2 * time.Hour).UnixMilli(), IsBuyer: false, Price: "61000", Quantity: "0.02", QuoteQuantity: "1220", Commission: "1.22", CommissionAsset: "USDT"},
		{Time: mapStart.Add(time.Hour).UnixMilli(), IsBuyer: true, Price: "60500", Quantity: "0.01", QuoteQuantity: "605", Commission: "0.00001", CommissionAsset: "BTC"},
	}

	trades := mapTrades(domain.SymbolBTCUSDT, raw, cutoff)
	require.Len(t, trades, 2)

	// Ordenados por timestamp, el fill previo al cutoff descartado.
	assert.Equal(t, domain.SideBuy, trades[0].Side)
	assert.Equal(t, 0.01, trades[0].Qty)
	assert.Equal(t, domain.SideSell, trades[1].Side)
	assert.Equal(t, "USDT", trades[1].CommissionAsset)
	assert.Equal(t, 1.22, trades[1].Commission)
}

func TestMapP2POrders_OnlyCompleted(t *testing.T) {
	raw := []gobinance.C2CRecord{
		{OrderStatus: "COMPLETED", Asset: "USDT", Fiat: "EUR", Amount: "500", TotalPrice: "470.50", UnitPrice: "0.941", CreateTime: mapStart.Add(time.Hour).UnixMilli()},
		{OrderStatus: "CANCELLED", Asset: "USDT", Fiat: "EUR", Amount: "100", TotalPrice: "94", UnitPrice: "0.94", CreateTime: mapStart.Add(2 * time.Hour).UnixMilli()},
		{OrderStatus: "COMPLETED", Asset: "USDT", Fiat: "EUR", Amount: "200", TotalPrice: "188", UnitPrice: "0.94", CreateTime: mapStart.Add(-time.Hour).UnixMilli()},
	}

	orders := mapP2POrders(domain.SideBuy, raw, mapStart)
	require.Len(t, orders, 1)

	assert.Equal(t, domain.SideBuy, orders[0].Side)
	assert.Equal(t, 500.0, orders[0].CryptoAmount)
	assert.Equal(t, 470.5, orders[0].FiatAmount)
	assert.Equal(t, "EUR", orders[0].Fiat)
}

func TestMapDeposits(t *testing.T) {
	raw := []*gobinance.Deposit{
		{Coin: "BTC", Amount: "0.05", Network: "BTC", TxID: "abc123", InsertTime: mapStart.Add(time.Hour).UnixMilli()},
		{Coin: "ETH", Amount: "1.5", Network: "ETH", TxID: "def456", InsertTime: mapStart.Add(-time.Hour).UnixMilli()},
	}

	deposits := mapDeposits(raw, mapStart)
	require.Len(t, deposits, 1)

	assert.Equal(t, "BTC", deposits[0].Coin)
	assert.Equal(t, 0.05, deposits[0].Amount)
	assert.Equal(t, "abc123", deposits[0].TxID)
}
