package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/adiazgm/foliobot/internal/domain"
	"github.com/adiazgm/foliobot/internal/ports"
)

// RegisterHistoryTools registra las herramientas de consulta directa del
// histórico de la cuenta: trades spot, órdenes P2P y depósitos. Devuelven
// tablas markdown sin procesamiento adicional.
func RegisterHistoryTools(reg *Registry, account ports.AccountHistory, defaultDays int) {
	reg.Register(Tool{
		Name:        "spot_trade_history",
		Description: "Lista los fills spot de BTCUSDT y ETHUSDT en la ventana dada.",
		Handler: func(ctx context.Context, args Args) (string, error) {
			days := args.Int("days", defaultDays)
			if days <= 0 {
				return "Error: days must be a positive number of days", nil
			}

			var trades []domain.Trade
			for _, symbol := range []string{domain.SymbolBTCUSDT, domain.SymbolETHUSDT} {
				batch, err := account.MyTrades(ctx, symbol, days)
				if err != nil {
					return fmt.Sprintf("Error fetching spot trade history: %v", err), nil
				}
				trades = append(trades, batch...)
			}
			domain.SortTrades(trades)

			if len(trades) == 0 {
				return fmt.Sprintf("No spot trades found in the last %d days.", days), nil
			}

			var sb strings.Builder
			fmt.Fprintf(&sb, "Spot trades (últimos %d días): %d\n\n", days, len(trades))
			fmt.Fprintln(&sb, "| Fecha | Par | Lado | Cantidad | Precio | Quote | Comisión |")
			fmt.Fprintln(&sb, "|---|---|---|---:|---:|---:|---|")
			for _, t := range trades {
				fmt.Fprintf(&sb, "| %s | %s | %s | %.6f | %.2f | %.2f | %.8f %s |\n",
					t.Timestamp.Format("2006-01-02 15:04"),
					t.Symbol, t.Side, t.Qty, t.Price, t.QuoteQty,
					t.Commission, t.CommissionAsset,
				)
			}
			return sb.String(), nil
		},
	})

	reg.Register(Tool{
		Name:        "p2p_history",
		Description: "Lista las órdenes P2P completadas de un lado (BUY o SELL) en la ventana dada.",
		Handler: func(ctx context.Context, args Args) (string, error) {
			days := args.Int("days", defaultDays)
			if days <= 0 {
				return "Error: days must be a positive number of days", nil
			}
			tradeType := strings.ToUpper(args.String("trade_type", ""))
			if tradeType != string(domain.SideBuy) && tradeType != string(domain.SideSell) {
				return "Error: trade_type must be 'BUY' or 'SELL'", nil
			}

			orders, err := account.P2POrders(ctx, domain.Side(tradeType), days)
			if err != nil {
				return fmt.Sprintf("Error fetching P2P history: %v", err), nil
			}
			if len(orders) == 0 {
				return fmt.Sprintf("No completed P2P %s orders found in the last %d days.", tradeType, days), nil
			}

			var sb strings.Builder
			fmt.Fprintf(&sb, "P2P %s (últimos %d días): %d órdenes\n\n", tradeType, days, len(orders))
			fmt.Fprintln(&sb, "| Fecha | Asset | Fiat | Cantidad | Total fiat | Precio unitario |")
			fmt.Fprintln(&sb, "|---|---|---|---:|---:|---:|")
			for _, o := range orders {
				fmt.Fprintf(&sb, "| %s | %s | %s | %.4f | %.2f | %.4f |\n",
					o.Timestamp.Format("2006-01-02 15:04"),
					o.Asset, o.Fiat, o.CryptoAmount, o.FiatAmount, o.UnitPrice,
				)
			}
			return sb.String(), nil
		},
	})

	reg.Register(Tool{
		Name:        "deposit_history",
		Description: "Lista los depósitos cripto exitosos en la ventana dada.",
		Handler: func(ctx context.Context, args Args) (string, error) {
			days := args.Int("days", defaultDays)
			if days <= 0 {
				return "Error: days must be a positive number of days", nil
			}

			deposits, err := account.Deposits(ctx, days)
			if err != nil {
				return fmt.Sprintf("Error fetching deposit history: %v", err), nil
			}
			if len(deposits) == 0 {
				return fmt.Sprintf("No deposits found in the last %d days.", days), nil
			}

			var sb strings.Builder
			fmt.Fprintf(&sb, "Depósitos (últimos %d días): %d\n\n", days, len(deposits))
			fmt.Fprintln(&sb, "| Fecha | Moneda | Cantidad | Red | TxID |")
			fmt.Fprintln(&sb, "|---|---|---:|---|---|")
			for _, d := range deposits {
				fmt.Fprintf(&sb, "| %s | %s | %.8f | %s | %s |\n",
					d.Timestamp.Format("2006-01-02 15:04"),
					d.Coin, d.Amount, d.Network, d.TxID,
				)
			}
			return sb.String(), nil
		},
	})
}
