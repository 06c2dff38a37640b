package tools

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/adiazgm/foliobot/internal/adapters/render"
	"github.com/adiazgm/foliobot/internal/portfolio"
	"github.com/adiazgm/foliobot/internal/ports"
	"github.com/adiazgm/foliobot/internal/report"
)

// RegisterPortfolioTools registra las dos herramientas de reporte.
// store y csv son opcionales: sin ellos el reporte se genera igual, solo
// que no se persiste ni se exporta.
func RegisterPortfolioTools(reg *Registry, svc *portfolio.Service, store ports.ReportStore, csv *report.Writer) {
	reg.Register(Tool{
		Name:        "portfolio_comparison",
		Description: "Compara el portfolio real contra un benchmark buy-and-hold usando el capital realmente invertido (P2P + depósitos).",
		Handler: func(ctx context.Context, args Args) (string, error) {
			days := args.Int("days", 0)
			if days < 0 {
				return "Error: days must be a positive number of days", nil
			}

			rep, err := svc.RunComparison(ctx, days)
			if err != nil {
				return fmt.Sprintf("Error generating portfolio comparison report: %v", err), nil
			}

			id := newReportID()
			var sb strings.Builder
			console := render.NewConsoleWriter(&sb)
			console.RenderComparison(rep.Events, rep.Merged, rep.Metrics)

			saved := persistComparison(ctx, store, csv, id, rep)
			writeSavedFiles(&sb, id, saved)
			return sb.String(), nil
		},
	})

	reg.Register(Tool{
		Name:        "portfolio_performance",
		Description: "Mide la performance del trading spot partiendo de un principal fijo, contra un benchmark que rebalancea en días con trades.",
		Handler: func(ctx context.Context, args Args) (string, error) {
			days := args.Int("days", 0)
			if days < 0 {
				return "Error: days must be a positive number of days", nil
			}

			rep, err := svc.RunPerformance(ctx, days)
			if err != nil {
				return fmt.Sprintf("Error generating trading performance report: %v", err), nil
			}

			id := newReportID()
			var sb strings.Builder
			console := render.NewConsoleWriter(&sb)
			console.RenderPerformance(rep.Trades, rep.Allocation, rep.Merged, rep.Metrics)

			saved := persistPerformance(ctx, store, csv, id, rep)
			writeSavedFiles(&sb, id, saved)
			return sb.String(), nil
		},
	})
}

// newReportID genera el id corto de un reporte.
func newReportID() string {
	return uuid.NewString()[:8]
}

// persistComparison guarda el reporte en el store y exporta los CSVs.
// Los fallos de persistencia no tumban el reporte: se loguean y se sigue.
func persistComparison(ctx context.Context, store ports.ReportStore, csv *report.Writer, id string, rep *portfolio.ComparisonReport) []string {
	if store != nil {
		if err := store.SaveReport(ctx, ports.ReportRecord{
			ID:                 id,
			Kind:               portfolio.KindComparison,
			GeneratedAt:        rep.GeneratedAt,
			WindowDays:         rep.WindowDays,
			ActualReturnPct:    rep.Metrics.Actual.ReturnPct,
			BenchmarkReturnPct: rep.Metrics.Benchmark.ReturnPct,
			OutperformancePct:  rep.Metrics.OutperformancePct,
			ActualFinal:        rep.Metrics.Actual.Final,
			BenchmarkFinal:     rep.Metrics.Benchmark.Final,
			Markdown:           rep.Markdown,
		}); err != nil {
			slog.Warn("report save failed", "id", id, "err", err)
		}
	}
	if csv == nil {
		return nil
	}

	var saved []string
	for _, export := range []func() (string, error){
		func() (string, error) { return csv.EquityCSV(id, rep.Merged) },
		func() (string, error) { return csv.EventsCSV(id, rep.Events) },
		func() (string, error) { return csv.TradesCSV(id, rep.Trades) },
		func() (string, error) { return csv.MetricsCSV(id, report.MetricRows(rep.Metrics)) },
	} {
		path, err := export()
		if err != nil {
			slog.Warn("csv export failed", "id", id, "err", err)
			continue
		}
		saved = append(saved, path)
	}
	return saved
}

// persistPerformance guarda el reporte en el store y exporta los CSVs.
func persistPerformance(ctx context.Context, store ports.ReportStore, csv *report.Writer, id string, rep *portfolio.PerformanceReport) []string {
	if store != nil {
		if err := store.SaveReport(ctx, ports.ReportRecord{
			ID:                 id,
			Kind:               portfolio.KindPerformance,
			GeneratedAt:        rep.GeneratedAt,
			WindowDays:         rep.WindowDays,
			ActualReturnPct:    rep.Metrics.Actual.ReturnPct,
			BenchmarkReturnPct: rep.Metrics.Benchmark.ReturnPct,
			OutperformancePct:  rep.Metrics.OutperformancePct,
			ActualFinal:        rep.Metrics.Actual.Final,
			BenchmarkFinal:     rep.Metrics.Benchmark.Final,
			Markdown:           rep.Markdown,
		}); err != nil {
			slog.Warn("report save failed", "id", id, "err", err)
		}
	}
	if csv == nil {
		return nil
	}

	var saved []string
	for _, export := range []func() (string, error){
		func() (string, error) { return csv.EquityCSV(id, rep.Merged) },
		func() (string, error) { return csv.TradesCSV(id, rep.Trades) },
		func() (string, error) { return csv.MetricsCSV(id, report.MetricRows(rep.Metrics)) },
	} {
		path, err := export()
		if err != nil {
			slog.Warn("csv export failed", "id", id, "err", err)
			continue
		}
		saved = append(saved, path)
	}
	return saved
}

func writeSavedFiles(sb *strings.Builder, id string, saved []string) {
	if len(saved) == 0 {
		return
	}
	fmt.Fprintf(sb, "Reporte %s guardado. Archivos:\n", id)
	for _, path := range saved {
		fmt.Fprintf(sb, "  %s\n", path)
	}
}
