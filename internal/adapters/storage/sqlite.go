package storage

// sqlite.go — histórico de reportes generados.
//
// Una fila por corrida de reporte: métricas clave en columnas propias para
// poder consultar el histórico sin parsear nada, más el markdown completo
// para reimprimir el reporte tal cual salió. Prune automático al arrancar:
// reportes > 90 días fuera.

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/adiazgm/foliobot/internal/ports"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS reports (
    id                   TEXT PRIMARY KEY,
    kind                 TEXT     NOT NULL,
    generated_at         DATETIME NOT NULL,
    window_days          INTEGER  NOT NULL,
    actual_return_pct    REAL     NOT NULL DEFAULT 0,
    benchmark_return_pct REAL     NOT NULL DEFAULT 0,
    outperformance_pct   REAL     NOT NULL DEFAULT 0,
    actual_final         REAL     NOT NULL DEFAULT 0,
    benchmark_final      REAL     NOT NULL DEFAULT 0,
    markdown             TEXT     NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_reports_at   ON reports(generated_at DESC);
CREATE INDEX IF NOT EXISTS idx_reports_kind ON reports(kind);
`

// reportes: 90 días de retención
const retentionReports = 90 * 24 * time.Hour

// SQLiteStorage implementa ports.ReportStore usando SQLite (pure Go, sin CGo).
type SQLiteStorage struct {
	db *sql.DB
}

// NewSQLiteStorage abre (o crea) la base de datos en la ruta dada.
// Aplica el schema y limpia reportes antiguos.
func NewSQLiteStorage(path string) (*SQLiteStorage, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("storage.NewSQLiteStorage: open %q: %w", path, err)
	}
	db.SetMaxOpenConns(1) // SQLite es single-writer
	db.SetMaxIdleConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage.NewSQLiteStorage: apply schema: %w", err)
	}

	s := &SQLiteStorage{db: db}
	s.pruneOld(context.Background())
	return s, nil
}

// SaveReport persiste el resumen de una corrida de reporte.
func (s *SQLiteStorage) SaveReport(ctx context.Context, rec ports.ReportRecord) error {
	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO reports
			(id, kind, generated_at, window_days, actual_return_pct,
			 benchmark_return_pct, outperformance_pct, actual_final,
			 benchmark_final, markdown)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		rec.ID,
		rec.Kind,
		rec.GeneratedAt.UTC(),
		rec.WindowDays,
		rec.ActualReturnPct,
		rec.BenchmarkReturnPct,
		rec.OutperformancePct,
		rec.ActualFinal,
		rec.BenchmarkFinal,
		rec.Markdown,
	); err != nil {
		return fmt.Errorf("storage.SaveReport: insert %s: %w", rec.ID, err)
	}
	return nil
}

// History devuelve los reportes generados en el rango dado, más recientes primero.
func (s *SQLiteStorage) History(ctx context.Context, from, to time.Time) ([]ports.ReportRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, kind, generated_at, window_days, actual_return_pct,
		       benchmark_return_pct, outperformance_pct, actual_final,
		       benchmark_final, markdown
		FROM reports
		WHERE generated_at BETWEEN ? AND ?
		ORDER BY generated_at DESC
	`, from.UTC(), to.UTC())
	if err != nil {
		return nil, fmt.Errorf("storage.History: query: %w", err)
	}
	defer rows.Close()

	var recs []ports.ReportRecord
	for rows.Next() {
		var rec ports.ReportRecord
		var generatedAt string
		if err := rows.Scan(
			&rec.ID,
			&rec.Kind,
			&generatedAt,
			&rec.WindowDays,
			&rec.ActualReturnPct,
			&rec.BenchmarkReturnPct,
			&rec.OutperformancePct,
			&rec.ActualFinal,
			&rec.BenchmarkFinal,
			&rec.Markdown,
		); err != nil {
			return nil, fmt.Errorf("storage.History: scan row: %w", err)
		}
		rec.GeneratedAt, _ = time.Parse(time.RFC3339, generatedAt)
		recs = append(recs, rec)
	}

	return recs, rows.Err()
}

// Close cierra la conexión a la base de datos.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// pruneOld elimina reportes antiguos para mantener la DB ligera.
func (s *SQLiteStorage) pruneOld(ctx context.Context) {
	cutoff := time.Now().UTC().Add(-retentionReports)
	s.db.ExecContext(ctx, `DELETE FROM reports WHERE generated_at < ?`, cutoff)
}
