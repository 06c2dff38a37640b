package domain

import "time"

// Weights es el split objetivo del benchmark. La pata USDT absorbe el
// redondeo para que las tres sumen exactamente 1.0.
type Weights struct {
	BTC  float64
	ETH  float64
	USDT float64
}

// DefaultWeights es la asignación 33/33/34 del benchmark buy-and-hold.
var DefaultWeights = Weights{BTC: 0.333, ETH: 0.333, USDT: 0.334}

// DefaultInitialCapital es el principal fijo del reporte de performance.
const DefaultInitialCapital = 3000.0

const (
	// deficitBuffer añade 1% sobre un mínimo negativo al reforzar la
	// asignación inicial de un asset.
	deficitBuffer = 1.01
	// usdtReserve reserva 5% del principal en USDT cuando el refuerzo hay
	// que reescalarlo para caber en el capital fijo.
	usdtReserve = 0.95

	// Precios de arranque fallback para una serie sin velas.
	fallbackBTCPrice = 60000.0
	fallbackETHPrice = 3000.0
)

// InitialAllocation es el portfolio inicial del reporte de principal fijo,
// con los precios de referencia a los que se dimensionó.
type InitialAllocation struct {
	Holdings      Holdings
	BTCPriceStart float64
	ETHPriceStart float64
}

// Value es el valor USD de la asignación a sus precios de referencia.
func (a InitialAllocation) Value() float64 {
	return a.Holdings.Value(a.BTCPriceStart, a.ETHPriceStart)
}

// ComputeInitialAllocation dimensiona un portfolio inicial que vale capital
// en startDate de forma que el replay de trades nunca deje BTC o ETH en
// negativo:
//
//  1. Reparte capital según los pesos objetivo a los precios de arranque.
//  2. Replay de todos los trades, trackeando el mínimo de cada asset.
//  3. Refuerza BTC/ETH cuyo mínimo fue negativo con el déficit más 1% de
//     buffer, financiado reduciendo la pata USDT.
//  4. Si eso deja USDT negativo, reescala BTC/ETH para que su valor conjunto
//     quepa en el 95% del principal y USDT se lleve el resto.
//
// La garantía es por construcción para la secuencia dada, no una prueba:
// una secuencia patológica que fuerce el reescalado aún puede caer bajo
// cero. USDT solo lo protege el fallback.
func ComputeInitialAllocation(trades []Trade, btc, eth *PriceSeries, startDate time.Time, capital float64, w Weights) InitialAllocation {
	btcStart, ok := btc.CloseAt(startDate)
	if !ok {
		btcStart = fallbackBTCPrice
	}
	ethStart, ok := eth.CloseAt(startDate)
	if !ok {
		ethStart = fallbackETHPrice
	}

	base := Holdings{
		BTC:  capital * w.BTC / btcStart,
		ETH:  capital * w.ETH / ethStart,
		USDT: capital * w.USDT,
	}
	alloc := InitialAllocation{Holdings: base, BTCPriceStart: btcStart, ETHPriceStart: ethStart}
	if len(trades) == 0 {
		return alloc
	}

	h := base
	min := base
	for _, t := range trades {
		h.ApplyTrade(t)
		if h.BTC < min.BTC {
			min.BTC = h.BTC
		}
		if h.ETH < min.ETH {
			min.ETH = h.ETH
		}
		if h.USDT < min.USDT {
			min.USDT = h.USDT
		}
	}

	adjusted := false
	if min.BTC < 0 {
		alloc.Holdings.BTC += -min.BTC * deficitBuffer
		adjusted = true
	}
	if min.ETH < 0 {
		alloc.Holdings.ETH += -min.ETH * deficitBuffer
		adjusted = true
	}
	if !adjusted {
		return alloc
	}

	topUpUSD := (alloc.Holdings.BTC-base.BTC)*btcStart + (alloc.Holdings.ETH-base.ETH)*ethStart
	alloc.Holdings.USDT = base.USDT - topUpUSD

	if alloc.Holdings.USDT < 0 {
		needed := alloc.Holdings.BTC*btcStart + alloc.Holdings.ETH*ethStart
		if needed > capital {
			scale := capital / needed * usdtReserve
			alloc.Holdings.BTC *= scale
			alloc.Holdings.ETH *= scale
			alloc.Holdings.USDT = capital - (alloc.Holdings.BTC*btcStart + alloc.Holdings.ETH*ethStart)
		}
	}

	return alloc
}
