package binance

import (
	"time"

	gobinance "github.com/adshao/go-binance/v2"
	"github.com/shopspring/decimal"

	"github.com/adiazgm/foliobot/internal/domain"
)

const orderStatusCompleted = "COMPLETED"

// parseAmount convierte un decimal string de la API a float64.
// Strings vacíos o malformados valen 0.
func parseAmount(s string) float64 {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0
	}
	f, _ := d.Float64()
	return f
}

// mapKlines convierte las velas del SDK a domain.PriceSeries.
func mapKlines(symbol string, raw []*gobinance.Kline) *domain.PriceSeries {
	series := &domain.PriceSeries{Symbol: symbol}
	for _, k := range raw {
		series.Points = append(series.Points, domain.PricePoint{
			Timestamp: time.UnixMilli(k.OpenTime).UTC(),
			Open:      parseAmount(k.Open),
			High:      parseAmount(k.High),
			Low:       parseAmount(k.Low),
			Close:     parseAmount(k.Close),
			Volume:    parseAmount(k.Volume),
		})
	}
	return series
}

// mapTrades convierte los fills del SDK a domain.Trade, descartando los
// anteriores a cutoff, y los devuelve ordenados por timestamp.
func mapTrades(symbol string, raw []*gobinance.TradeV3, cutoff time.Time) []domain.Trade {
	trades := make([]domain.Trade, 0, len(raw))
	for _, t := range raw {
		ts := time.UnixMilli(t.Time).UTC()
		if ts.Before(cutoff) {
			continue
		}
		side := domain.SideSell
		if t.IsBuyer {
			side = domain.SideBuy
		}
		trades = append(trades, domain.Trade{
			Timestamp:       ts,
			Symbol:          symbol,
			Side:            side,
			Qty:             parseAmount(t.Quantity),
			QuoteQty:        parseAmount(t.QuoteQuantity),
			Price:           parseAmount(t.Price),
			Commission:      parseAmount(t.Commission),
			CommissionAsset: t.CommissionAsset,
		})
	}
	domain.SortTrades(trades)
	return trades
}

// mapP2POrders convierte los registros C2C del SDK a domain.P2POrder.
// Solo pasan las órdenes COMPLETED dentro de la ventana.
func mapP2POrders(side domain.Side, raw []gobinance.C2CRecord, cutoff time.Time) []domain.P2POrder {
	orders := make([]domain.P2POrder, 0, len(raw))
	for _, r := range raw {
		if r.OrderStatus != orderStatusCompleted {
			continue
		}
		ts := time.UnixMilli(r.CreateTime).UTC()
		if ts.Before(cutoff) {
			continue
		}
		orders = append(orders, domain.P2POrder{
			Timestamp:    ts,
			Side:         side,
			Asset:        r.Asset,
			Fiat:         r.Fiat,
			CryptoAmount: parseAmount(r.Amount),
			FiatAmount:   parseAmount(r.TotalPrice),
			UnitPrice:    parseAmount(r.UnitPrice),
			Commission:   parseAmount(r.Commission),
		})
	}
	return orders
}

// mapDeposits convierte los depósitos del SDK a domain.Deposit. El filtro
// de estado SUCCESS ya viene aplicado en el request.
func mapDeposits(raw []*gobinance.Deposit, cutoff time.Time) []domain.Deposit {
	deposits := make([]domain.Deposit, 0, len(raw))
	for _, d := range raw {
		ts := time.UnixMilli(d.InsertTime).UTC()
		if ts.Before(cutoff) {
			continue
		}
		deposits = append(deposits, domain.Deposit{
			Timestamp: ts,
			Coin:      d.Coin,
			Amount:    parseAmount(d.Amount),
			Network:   d.Network,
			TxID:      d.TxID,
		})
	}
	return deposits
}
