package ports

import (
	"context"

	"github.com/adiazgm/foliobot/internal/domain"
)

// MarketData obtiene precios históricos del exchange.
type MarketData interface {
	// Klines devuelve las velas del símbolo para los últimos days días,
	// al intervalo dado, ordenadas ascendente por open time.
	// Pagina automáticamente hasta cubrir la ventana completa.
	Klines(ctx context.Context, symbol, interval string, days int) (*domain.PriceSeries, error)
}
