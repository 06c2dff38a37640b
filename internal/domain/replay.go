package domain

// replay.go — los builders de curvas de equity.
//
// Los cuatro builders recorren [start, end] día calendario (UTC) a día y
// valoran el portfolio contra el close de vela más cercano a ese día. Un día
// cuyo precio BTC o ETH no se puede resolver se salta, dejando un hueco en
// la curva: sin interpolación, sin rellenar con ceros.
//
// Las variantes recomputadas reconstruyen los holdings desde cero para cada
// día de salida (O(días × eventos)). Cada día queda independiente del orden
// de iteración; el replay es puro trabajo en memoria, así que el coste es
// aceptable para las ventanas sobre las que corre.

import (
	"log/slog"
	"time"
)

// EquityPoint es un día valorado de un portfolio.
type EquityPoint struct {
	Date     time.Time
	Equity   float64
	Holdings Holdings
}

// EquityCurve es una serie de equity ordenada por día, posiblemente con huecos.
type EquityCurve []EquityPoint

// Day normaliza t a medianoche UTC.
func Day(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// onOrBefore indica si ts cae en day o en un día calendario anterior.
func onOrBefore(ts, day time.Time) bool {
	return !Day(ts).After(day)
}

// CashFlowActualCurve hace replay de la cuenta real desde cero: los eventos
// de capital aportan sus cantidades cripto a valor nominal, y los trades
// spot mueven cantidades a sus precios reales. Un replay completo por día.
func CashFlowActualCurve(events []CapitalEvent, trades []Trade, btc, eth *PriceSeries, start, end time.Time) EquityCurve {
	var curve EquityCurve
	for day := Day(start); !day.After(Day(end)); day = day.AddDate(0, 0, 1) {
		var h Holdings
		for _, ev := range events {
			if onOrBefore(ev.Timestamp, day) {
				h.Add(ev.Asset, ev.CryptoAmount)
			}
		}
		for _, t := range trades {
			if onOrBefore(t.Timestamp, day) {
				h.ApplyTrade(t)
			}
		}
		curve = appendValued(curve, day, h, btc, eth)
	}
	return curve
}

// WeightedAccrualCurve construye la curva buy-and-hold del reporte de
// cash-flow: cada evento de capital compra el split objetivo a los precios
// BTC/ETH vigentes cuando ocurrió ese evento, no a un único cost basis.
// Eventos cuyos precios no se resuelven no aportan nada; los días previos
// al primer evento no producen punto.
func WeightedAccrualCurve(events []CapitalEvent, btc, eth *PriceSeries, w Weights, start, end time.Time) EquityCurve {
	var curve EquityCurve
	for day := Day(start); !day.After(Day(end)); day = day.AddDate(0, 0, 1) {
		var h Holdings
		applied := 0
		for _, ev := range events {
			if !onOrBefore(ev.Timestamp, day) {
				continue
			}
			applied++
			btcAt, okB := btc.CloseAt(ev.Timestamp)
			ethAt, okE := eth.CloseAt(ev.Timestamp)
			if !okB || !okE || btcAt == 0 || ethAt == 0 {
				continue
			}
			h.BTC += ev.USDValue * w.BTC / btcAt
			h.ETH += ev.USDValue * w.ETH / ethAt
			h.USDT += ev.USDValue * w.USDT
		}
		if applied == 0 {
			continue
		}
		curve = appendValued(curve, day, h, btc, eth)
	}
	return curve
}

// FixedActualCurve hace replay de los trades reales desde una asignación
// inicial fija, un replay completo por día.
func FixedActualCurve(trades []Trade, alloc InitialAllocation, btc, eth *PriceSeries, start, end time.Time) EquityCurve {
	var curve EquityCurve
	for day := Day(start); !day.After(Day(end)); day = day.AddDate(0, 0, 1) {
		h := alloc.Holdings
		for _, t := range trades {
			if onOrBefore(t.Timestamp, day) {
				h.ApplyTrade(t)
			}
		}
		curve = appendValued(curve, day, h, btc, eth)
	}
	return curve
}

// RebalancedBenchmarkCurve arranca de la misma asignación que el portfolio
// real y rebalancea a los pesos objetivo solo en días con algún trade real,
// de modo que el benchmark reacciona al mismo tempo que la actividad de
// trading. Los holdings se arrastran entre días; en días sin trades solo
// cambia la valoración.
func RebalancedBenchmarkCurve(trades []Trade, alloc InitialAllocation, btc, eth *PriceSeries, w Weights, start, end time.Time) EquityCurve {
	tradeDays := make(map[time.Time]struct{}, len(trades))
	for _, t := range trades {
		tradeDays[Day(t.Timestamp)] = struct{}{}
	}

	h := alloc.Holdings
	var curve EquityCurve
	for day := Day(start); !day.After(Day(end)); day = day.AddDate(0, 0, 1) {
		btcPrice, okB := btc.CloseAt(day)
		ethPrice, okE := eth.CloseAt(day)
		if !okB || !okE {
			skipDay(day)
			continue
		}

		if _, ok := tradeDays[day]; ok {
			value := h.Value(btcPrice, ethPrice)
			h.BTC = value * w.BTC / btcPrice
			h.ETH = value * w.ETH / ethPrice
			h.USDT = value * w.USDT
		}

		curve = append(curve, EquityPoint{Date: day, Equity: h.Value(btcPrice, ethPrice), Holdings: h})
	}
	return curve
}

// appendValued valora h para el día dado y añade el punto, o salta el día
// si un precio no se puede resolver.
func appendValued(curve EquityCurve, day time.Time, h Holdings, btc, eth *PriceSeries) EquityCurve {
	btcPrice, okB := btc.CloseAt(day)
	ethPrice, okE := eth.CloseAt(day)
	if !okB || !okE {
		skipDay(day)
		return curve
	}
	return append(curve, EquityPoint{Date: day, Equity: h.Value(btcPrice, ethPrice), Holdings: h})
}

func skipDay(day time.Time) {
	slog.Warn("skipping day with unresolvable BTC/ETH price", "day", day.Format("2006-01-02"))
}
