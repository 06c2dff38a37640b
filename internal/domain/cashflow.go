package domain

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"
)

// EventKind clasifica un movimiento de capital.
type EventKind string

const (
	EventP2PBuy  EventKind = "P2P_BUY"
	EventP2PSell EventKind = "P2P_SELL"
	EventDeposit EventKind = "DEPOSIT"
)

// CapitalEvent es un movimiento de capital con signo en el ledger de
// cash-flow. USDValue y CryptoAmount comparten convención: positivo = entrada.
type CapitalEvent struct {
	Timestamp          time.Time
	Kind               EventKind
	Asset              string
	USDValue           float64
	CryptoAmount       float64
	Description        string
	CumulativeInvested float64
}

// ErrNoCashFlowEvents significa que la cuenta no tuvo actividad P2P ni
// depósitos valorables en la ventana. Fatal para el reporte de cash-flow.
var ErrNoCashFlowEvents = errors.New("no cash flow events found in the specified period")

// BuildCashFlowLedger fusiona órdenes P2P y depósitos en un único ledger
// ordenado por tiempo, con suma acumulada de capital invertido.
//
// Los depósitos se valoran al close de la vela más cercana al momento del
// depósito (USDT exactamente a 1.0). Un depósito cuya moneda no tiene precio
// resoluble se descarta con un warning; el resto del ledger se construye
// igual. Eventos con el mismo timestamp conservan el orden de construcción:
// P2P buys, luego P2P sells, luego depósitos.
func BuildCashFlowLedger(buys, sells []P2POrder, deposits []Deposit, btc, eth *PriceSeries) []CapitalEvent {
	events := make([]CapitalEvent, 0, len(buys)+len(sells)+len(deposits))

	for _, o := range buys {
		events = append(events, CapitalEvent{
			Timestamp:    o.Timestamp,
			Kind:         EventP2PBuy,
			Asset:        o.Asset,
			USDValue:     o.FiatAmount,
			CryptoAmount: o.CryptoAmount,
			Description:  fmt.Sprintf("P2P BUY %.4f %s @ $%.2f", o.CryptoAmount, o.Asset, o.UnitPrice),
		})
	}

	for _, o := range sells {
		events = append(events, CapitalEvent{
			Timestamp:    o.Timestamp,
			Kind:         EventP2PSell,
			Asset:        o.Asset,
			USDValue:     -o.FiatAmount,
			CryptoAmount: -o.CryptoAmount,
			Description:  fmt.Sprintf("P2P SELL %.4f %s @ $%.2f", o.CryptoAmount, o.Asset, o.UnitPrice),
		})
	}

	for _, d := range deposits {
		price, ok := depositPrice(d.Coin, d.Timestamp, btc, eth)
		if !ok {
			slog.Warn("no resolvable price for deposit, dropping",
				"coin", d.Coin,
				"amount", d.Amount,
				"at", d.Timestamp,
			)
			continue
		}
		usd := d.Amount * price
		events = append(events, CapitalEvent{
			Timestamp:    d.Timestamp,
			Kind:         EventDeposit,
			Asset:        d.Coin,
			USDValue:     usd,
			CryptoAmount: d.Amount,
			Description:  fmt.Sprintf("DEPOSIT %.8f %s @ $%.2f = $%.2f", d.Amount, d.Coin, price, usd),
		})
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Timestamp.Before(events[j].Timestamp)
	})

	cum := 0.0
	for i := range events {
		cum += events[i].USDValue
		events[i].CumulativeInvested = cum
	}

	return events
}

func depositPrice(coin string, at time.Time, btc, eth *PriceSeries) (float64, bool) {
	switch coin {
	case AssetBTC:
		return btc.CloseAt(at)
	case AssetETH:
		return eth.CloseAt(at)
	case AssetUSDT:
		return 1.0, true
	}
	return 0, false
}

// TotalsByKind suma el valor USD por tipo de evento, para el resumen del reporte.
func TotalsByKind(events []CapitalEvent) map[EventKind]float64 {
	totals := make(map[EventKind]float64, 3)
	for _, ev := range events {
		totals[ev.Kind] += ev.USDValue
	}
	return totals
}
