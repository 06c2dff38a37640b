// Package portfolio orquesta los dos reportes: comparación contra el
// capital invertido y performance con principal fijo. Hace el fetch de
// datos, construye las curvas y arma el markdown.
package portfolio

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/adiazgm/foliobot/internal/domain"
	"github.com/adiazgm/foliobot/internal/ports"
)

// Tipos de reporte persistidos en el histórico.
const (
	KindComparison  = "comparison"
	KindPerformance = "performance"
)

var (
	// ErrNoPriceData: sin precios históricos no hay nada que valorar.
	ErrNoPriceData = errors.New("failed to fetch historical price data")
	// ErrNoCurves: ninguna curva de equity tiene puntos.
	ErrNoCurves = errors.New("failed to build equity curves")
)

// Config son los parámetros de análisis del servicio.
type Config struct {
	LookbackDays   int
	InitialCapital float64
	Weights        domain.Weights
	Interval       string
	Now            func() time.Time
}

// DefaultConfig devuelve los parámetros por defecto del análisis.
func DefaultConfig() Config {
	return Config{
		LookbackDays:   30,
		InitialCapital: domain.DefaultInitialCapital,
		Weights:        domain.DefaultWeights,
		Interval:       "1h",
		Now:            time.Now,
	}
}

// Service genera los reportes de portfolio.
type Service struct {
	market  ports.MarketData
	account ports.AccountHistory
	cfg     Config
}

// NewService crea un Service. Los campos vacíos de cfg toman los defaults.
func NewService(market ports.MarketData, account ports.AccountHistory, cfg Config) *Service {
	def := DefaultConfig()
	if cfg.LookbackDays <= 0 {
		cfg.LookbackDays = def.LookbackDays
	}
	if cfg.InitialCapital <= 0 {
		cfg.InitialCapital = def.InitialCapital
	}
	if cfg.Weights == (domain.Weights{}) {
		cfg.Weights = def.Weights
	}
	if cfg.Interval == "" {
		cfg.Interval = def.Interval
	}
	if cfg.Now == nil {
		cfg.Now = def.Now
	}
	return &Service{market: market, account: account, cfg: cfg}
}

// fetchPrices trae las series BTC y ETH. Sin precios el análisis no puede
// continuar: cualquier error o serie vacía es fatal.
func (s *Service) fetchPrices(ctx context.Context, days int) (btc, eth *domain.PriceSeries, err error) {
	btc, err = s.market.Klines(ctx, domain.SymbolBTCUSDT, s.cfg.Interval, days)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrNoPriceData, err)
	}
	eth, err = s.market.Klines(ctx, domain.SymbolETHUSDT, s.cfg.Interval, days)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrNoPriceData, err)
	}
	if btc.Empty() || eth.Empty() {
		return nil, nil, ErrNoPriceData
	}
	return btc, eth, nil
}

// fetchTrades trae los fills de ambos pares ordenados por timestamp.
// Un error en un par no aborta el reporte: se loguea y se sigue con lo
// que haya.
func (s *Service) fetchTrades(ctx context.Context, days int) []domain.Trade {
	var trades []domain.Trade
	for _, symbol := range []string{domain.SymbolBTCUSDT, domain.SymbolETHUSDT} {
		batch, err := s.account.MyTrades(ctx, symbol, days)
		if err != nil {
			slog.Warn("trade fetch failed, continuing without", "symbol", symbol, "err", err)
			continue
		}
		trades = append(trades, batch...)
	}
	domain.SortTrades(trades)
	return trades
}

// fetchP2POrders trae las órdenes P2P de un lado, tolerando errores.
func (s *Service) fetchP2POrders(ctx context.Context, side domain.Side, days int) []domain.P2POrder {
	orders, err := s.account.P2POrders(ctx, side, days)
	if err != nil {
		slog.Warn("p2p fetch failed, continuing without", "side", side, "err", err)
		return nil
	}
	return orders
}

// fetchDeposits trae los depósitos, tolerando errores.
func (s *Service) fetchDeposits(ctx context.Context, days int) []domain.Deposit {
	deposits, err := s.account.Deposits(ctx, days)
	if err != nil {
		slog.Warn("deposit fetch failed, continuing without", "err", err)
		return nil
	}
	return deposits
}

// logBalances deja constancia del balance actual de la cuenta en debug.
func (s *Service) logBalances(ctx context.Context) {
	balances, err := s.account.Balances(ctx)
	if err != nil {
		slog.Debug("balance fetch failed", "err", err)
		return
	}
	slog.Debug("account balances",
		"btc", balances[domain.AssetBTC],
		"eth", balances[domain.AssetETH],
		"usdt", balances[domain.AssetUSDT],
	)
}

// window resuelve la ventana efectiva del reporte.
func (s *Service) window(days int) int {
	if days <= 0 {
		return s.cfg.LookbackDays
	}
	return days
}
