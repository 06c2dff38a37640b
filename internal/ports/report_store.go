package ports

import (
	"context"
	"time"
)

// ReportRecord es el resumen persistido de una corrida de reporte.
// El markdown completo se guarda junto a las métricas clave para poder
// listar el histórico sin regenerar nada.
type ReportRecord struct {
	ID                 string
	Kind               string
	GeneratedAt        time.Time
	WindowDays         int
	ActualReturnPct    float64
	BenchmarkReturnPct float64
	OutperformancePct  float64
	ActualFinal        float64
	BenchmarkFinal     float64
	Markdown           string
}

// ReportStore persiste los reportes generados.
type ReportStore interface {
	// SaveReport guarda el resumen de una corrida.
	SaveReport(ctx context.Context, rec ReportRecord) error

	// History devuelve los reportes generados en el rango dado,
	// más recientes primero.
	History(ctx context.Context, from, to time.Time) ([]ReportRecord, error)

	// Close cierra la conexión a la base de datos limpiamente.
	Close() error
}
