package domain

import (
	"sort"
	"time"
)

// Side de un trade u orden P2P, desde la perspectiva del dueño de la cuenta.
type Side string

const (
	SideBuy  Side = "BUY"
	SideSell Side = "SELL"
)

// Trade es un fill spot ejecutado.
type Trade struct {
	Timestamp       time.Time
	Symbol          string
	Side            Side
	Qty             float64
	QuoteQty        float64
	Price           float64
	Commission      float64
	CommissionAsset string

	// Precios de mercado al momento del trade, adjuntados al construir la tabla.
	BTCPrice float64
	ETHPrice float64
}

// SortTrades ordena los trades ascendente por timestamp. El sort es estable:
// fills con el mismo timestamp conservan su orden de fetch.
func SortTrades(trades []Trade) {
	sort.SliceStable(trades, func(i, j int) bool {
		return trades[i].Timestamp.Before(trades[j].Timestamp)
	})
}

// AttachMarketPrices marca cada trade con los precios BTC/ETH más cercanos
// a su momento de ejecución, para valorarlo luego en la tabla de trades.
func AttachMarketPrices(trades []Trade, btc, eth *PriceSeries) {
	for i := range trades {
		if p, ok := btc.CloseAt(trades[i].Timestamp); ok {
			trades[i].BTCPrice = p
		}
		if p, ok := eth.CloseAt(trades[i].Timestamp); ok {
			trades[i].ETHPrice = p
		}
	}
}

// TradeStats son los conteos reportados junto a las métricas.
type TradeStats struct {
	Total int
	Buys  int
	Sells int
}

// CountTrades cuenta buys/sells para el reporte.
func CountTrades(trades []Trade) TradeStats {
	stats := TradeStats{Total: len(trades)}
	for _, t := range trades {
		if t.Side == SideBuy {
			stats.Buys++
		} else {
			stats.Sells++
		}
	}
	return stats
}
