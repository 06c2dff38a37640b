package domain

import (
	"sort"
	"time"
)

// MergedPoint es una fecha con los valores de ambas curvas tras alinearlas.
type MergedPoint struct {
	Date      time.Time
	Actual    float64
	Benchmark float64
}

// MergedCurve es el par de curvas de equity alineadas.
type MergedCurve []MergedPoint

// MergeCurves hace outer-join de las dos curvas por fecha y aplica
// forward-fill y luego back-fill a cada columna, para que los días saltados
// durante la valoración no dejen huecos en la comparación.
func MergeCurves(actual, benchmark EquityCurve) MergedCurve {
	type cell struct {
		actual, benchmark float64
		hasA, hasB        bool
	}

	cells := make(map[time.Time]*cell, len(actual)+len(benchmark))
	at := func(d time.Time) *cell {
		c, ok := cells[d]
		if !ok {
			c = &cell{}
			cells[d] = c
		}
		return c
	}
	for _, p := range actual {
		c := at(p.Date)
		c.actual = p.Equity
		c.hasA = true
	}
	for _, p := range benchmark {
		c := at(p.Date)
		c.benchmark = p.Equity
		c.hasB = true
	}

	dates := make([]time.Time, 0, len(cells))
	for d := range cells {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	actualCol := make([]float64, len(dates))
	actualHas := make([]bool, len(dates))
	benchCol := make([]float64, len(dates))
	benchHas := make([]bool, len(dates))
	for i, d := range dates {
		c := cells[d]
		actualCol[i], actualHas[i] = c.actual, c.hasA
		benchCol[i], benchHas[i] = c.benchmark, c.hasB
	}
	fillGaps(actualCol, actualHas)
	fillGaps(benchCol, benchHas)

	merged := make(MergedCurve, len(dates))
	for i, d := range dates {
		merged[i] = MergedPoint{Date: d, Actual: actualCol[i], Benchmark: benchCol[i]}
	}
	return merged
}

// fillGaps aplica forward-fill y luego back-fill a los huecos de una columna.
func fillGaps(vals []float64, present []bool) {
	var last float64
	have := false
	for i := range vals {
		if present[i] {
			last = vals[i]
			have = true
		} else if have {
			vals[i] = last
			present[i] = true
		}
	}
	have = false
	for i := len(vals) - 1; i >= 0; i-- {
		if present[i] {
			last = vals[i]
			have = true
		} else if have {
			vals[i] = last
			present[i] = true
		}
	}
}

// Baseline selecciona la convención de denominador para retorno y P/L.
// Los dos reportes usan deliberadamente convenciones distintas; se mantienen
// separadas en vez de unificarlas.
type Baseline int

const (
	// BaselineInvested mide ambas estrategias contra el capital acumulado
	// invertido. Lo usa el reporte de comparación de cash-flow.
	BaselineInvested Baseline = iota
	// BaselineCurveStart mide cada estrategia contra el primer valor de su
	// propia curva. Lo usa el reporte de performance de principal fijo.
	BaselineCurveStart
)

// StrategyMetrics resume una curva de equity.
type StrategyMetrics struct {
	Start          float64
	Final          float64
	ReturnPct      float64
	ProfitLoss     float64
	MaxDrawdownPct float64
}

// Comparison es el registro completo de métricas de una corrida de reporte.
// Se recalcula fresco en cada corrida, nunca se persiste tal cual.
type Comparison struct {
	Invested          float64
	Actual            StrategyMetrics
	Benchmark         StrategyMetrics
	OutperformancePct float64
	Trades            TradeStats
}

// CompareCurves calcula las métricas de ambas estrategias desde la curva
// fusionada. invested es el baseline del modo BaselineInvested y se registra
// en ambos modos.
func CompareCurves(merged MergedCurve, baseline Baseline, invested float64) Comparison {
	if len(merged) == 0 {
		return Comparison{Invested: invested}
	}

	actualVals := make([]float64, len(merged))
	benchVals := make([]float64, len(merged))
	for i, p := range merged {
		actualVals[i] = p.Actual
		benchVals[i] = p.Benchmark
	}

	cmp := Comparison{
		Invested:  invested,
		Actual:    strategyMetrics(actualVals, baseline, invested),
		Benchmark: strategyMetrics(benchVals, baseline, invested),
	}
	cmp.OutperformancePct = cmp.Actual.ReturnPct - cmp.Benchmark.ReturnPct
	return cmp
}

func strategyMetrics(vals []float64, baseline Baseline, invested float64) StrategyMetrics {
	start := vals[0]
	final := vals[len(vals)-1]

	base := start
	if baseline == BaselineInvested {
		base = invested
	}

	m := StrategyMetrics{
		Start:          start,
		Final:          final,
		ProfitLoss:     final - base,
		MaxDrawdownPct: MaxDrawdown(vals),
	}
	if base > 0 {
		m.ReturnPct = (final - base) / base * 100
	}
	return m
}

// MaxDrawdown devuelve el movimiento pico-a-valle más negativo en
// porcentaje, con el pico como máximo expansivo hasta cada punto. Siempre
// ≤ 0, y exactamente 0 solo para una serie no decreciente.
func MaxDrawdown(vals []float64) float64 {
	var worst float64
	peak := 0.0
	havePeak := false
	for _, v := range vals {
		if !havePeak || v > peak {
			peak = v
			havePeak = true
		}
		if peak > 0 {
			if dd := (v - peak) / peak * 100; dd < worst {
				worst = dd
			}
		}
	}
	return worst
}
