package storage_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adiazgm/foliobot/internal/adapters/storage"
	"github.com/adiazgm/foliobot/internal/ports"
)

func makeRecord(id string, at time.Time) ports.ReportRecord {
	return ports.ReportRecord{
		ID:                 id,
		Kind:               "comparison",
		GeneratedAt:        at,
		WindowDays:         30,
		ActualReturnPct:    12.5,
		BenchmarkReturnPct: 8.2,
		OutperformancePct:  4.3,
		ActualFinal:        3375.0,
		BenchmarkFinal:     3246.0,
		Markdown:           "# Reporte\ncontenido",
	}
}

func TestSQLiteStorage_SaveAndHistory(t *testing.T) {
	db, err := storage.NewSQLiteStorage(":memory:")
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	require.NoError(t, db.SaveReport(ctx, makeRecord("abc12345", now.Add(-time.Hour))))
	require.NoError(t, db.SaveReport(ctx, makeRecord("def67890", now)))

	history, err := db.History(ctx, now.Add(-2*time.Hour), now.Add(time.Minute))
	require.NoError(t, err)
	require.Len(t, history, 2)

	// Más recientes primero
	assert.Equal(t, "def67890", history[0].ID)
	assert.Equal(t, "abc12345", history[1].ID)
	assert.InDelta(t, 4.3, history[0].OutperformancePct, 0.001)
	assert.Equal(t, "# Reporte\ncontenido", history[0].Markdown)
}

func TestSQLiteStorage_DuplicateIDFails(t *testing.T) {
	db, err := storage.NewSQLiteStorage(":memory:")
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()
	now := time.Now().UTC()

	require.NoError(t, db.SaveReport(ctx, makeRecord("abc12345", now)))
	assert.Error(t, db.SaveReport(ctx, makeRecord("abc12345", now)))
}

func TestSQLiteStorage_History_EmptyRange(t *testing.T) {
	db, err := storage.NewSQLiteStorage(":memory:")
	require.NoError(t, err)
	defer db.Close()

	// Sin datos
	history, err := db.History(context.Background(),
		time.Now().Add(-time.Hour),
		time.Now(),
	)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestSQLiteStorage_History_FiltersByRange(t *testing.T) {
	db, err := storage.NewSQLiteStorage(":memory:")
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	require.NoError(t, db.SaveReport(ctx, makeRecord("old00000", now.Add(-48*time.Hour))))
	require.NoError(t, db.SaveReport(ctx, makeRecord("new00000", now)))

	history, err := db.History(ctx, now.Add(-time.Hour), now.Add(time.Hour))
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "new00000", history[0].ID)
}
