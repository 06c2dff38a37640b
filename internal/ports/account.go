package ports

import (
	"context"

	"github.com/adiazgm/foliobot/internal/domain"
)

// AccountHistory obtiene el histórico de la cuenta: trades spot, órdenes
// P2P y depósitos on-chain.
type AccountHistory interface {
	// MyTrades devuelve los fills spot del símbolo en los últimos days días,
	// ordenados ascendente por timestamp.
	MyTrades(ctx context.Context, symbol string, days int) ([]domain.Trade, error)

	// P2POrders devuelve las órdenes P2P COMPLETED del lado dado (BUY o
	// SELL) en los últimos days días.
	P2POrders(ctx context.Context, side domain.Side, days int) ([]domain.P2POrder, error)

	// Deposits devuelve los depósitos cripto exitosos de los últimos days días.
	Deposits(ctx context.Context, days int) ([]domain.Deposit, error)

	// Balances devuelve el balance total (free + locked) por asset.
	Balances(ctx context.Context) (map[string]float64, error)
}
