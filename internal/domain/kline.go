package domain

import "time"

// PricePoint es una vela OHLC tal como la devuelve el exchange.
type PricePoint struct {
	Timestamp time.Time
	Open      float64
	High      float64
	Low       float64
	Close     float64
	Volume    float64
}

// PriceSeries es la secuencia de velas de un símbolo, ordenada
// ascendente por open time.
type PriceSeries struct {
	Symbol string
	Points []PricePoint
}

// Empty indica si la serie no tiene velas.
func (s *PriceSeries) Empty() bool {
	return s == nil || len(s.Points) == 0
}

// CloseAt devuelve el close de la vela más cercana a t por distancia
// absoluta de tiempo. Es búsqueda nearest-neighbor, no as-of: una vela
// posterior a t gana si está más cerca. En empate gana la vela más antigua.
// El segundo retorno es false si la serie está vacía.
func (s *PriceSeries) CloseAt(t time.Time) (float64, bool) {
	if s.Empty() {
		return 0, false
	}
	best := 0
	bestDiff := absDuration(s.Points[0].Timestamp.Sub(t))
	for i := 1; i < len(s.Points); i++ {
		if d := absDuration(s.Points[i].Timestamp.Sub(t)); d < bestDiff {
			best = i
			bestDiff = d
		}
	}
	return s.Points[best].Close, true
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
