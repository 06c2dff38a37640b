package binance

// client.go — acceso a la API de Binance vía el SDK oficial go-binance.
//
// Todas las llamadas pasan por un rate limiter compartido muy por debajo de
// los límites documentados de la API spot. Los endpoints con ventana máxima
// (C2C: 30 días, depósitos: 90 días) se trocean automáticamente.

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	gobinance "github.com/adshao/go-binance/v2"
	"golang.org/x/time/rate"

	"github.com/adiazgm/foliobot/internal/domain"
)

const (
	// Rate limit conservador: la API spot permite 1200 request weight/min.
	requestsPerSec = 10
	requestBurst   = 5

	klineBatchLimit = 1000
	tradeBatchLimit = 1000

	// Ventanas máximas por request de los endpoints de histórico.
	c2cWindow     = 30 * 24 * time.Hour
	depositWindow = 90 * 24 * time.Hour

	depositStatusSuccess = 1
)

// Client habla con Binance e implementa ports.MarketData y
// ports.AccountHistory.
type Client struct {
	api     *gobinance.Client
	limiter *rate.Limiter
	now     func() time.Time
}

// NewClient crea un Client autenticado con las API keys dadas.
func NewClient(apiKey, secretKey string) *Client {
	return &Client{
		api:     gobinance.NewClient(apiKey, secretKey),
		limiter: rate.NewLimiter(requestsPerSec, requestBurst),
		now:     time.Now,
	}
}

// Klines devuelve las velas del símbolo para los últimos days días,
// paginando de a klineBatchLimit hasta cubrir la ventana completa.
func (c *Client) Klines(ctx context.Context, symbol, interval string, days int) (*domain.PriceSeries, error) {
	end := c.now()
	startMs := end.Add(-time.Duration(days) * 24 * time.Hour).UnixMilli()
	endMs := end.UnixMilli()

	var raw []*gobinance.Kline
	for startMs < endMs {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
		batch, err := c.api.NewKlinesService().
			Symbol(symbol).
			Interval(interval).
			StartTime(startMs).
			EndTime(endMs).
			Limit(klineBatchLimit).
			Do(ctx)
		if err != nil {
			return nil, fmt.Errorf("fetch klines %s: %w", symbol, err)
		}
		if len(batch) == 0 {
			break
		}
		raw = append(raw, batch...)
		if len(batch) < klineBatchLimit {
			break
		}
		startMs = batch[len(batch)-1].CloseTime + 1
	}

	slog.Debug("fetched klines", "symbol", symbol, "interval", interval, "candles", len(raw))
	return mapKlines(symbol, raw), nil
}

// MyTrades devuelve los fills spot del símbolo en los últimos days días,
// ordenados ascendente por timestamp.
func (c *Client) MyTrades(ctx context.Context, symbol string, days int) ([]domain.Trade, error) {
	cutoff := c.now().Add(-time.Duration(days) * 24 * time.Hour)
	startMs := cutoff.UnixMilli()

	var raw []*gobinance.TradeV3
	for {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
		batch, err := c.api.NewListTradesService().
			Symbol(symbol).
			StartTime(startMs).
			Limit(tradeBatchLimit).
			Do(ctx)
		if err != nil {
			return nil, fmt.Errorf("fetch trades %s: %w", symbol, err)
		}
		raw = append(raw, batch...)
		if len(batch) < tradeBatchLimit {
			break
		}
		startMs = batch[len(batch)-1].Time + 1
	}

	trades := mapTrades(symbol, raw, cutoff)
	slog.Debug("fetched trades", "symbol", symbol, "count", len(trades))
	return trades, nil
}

// P2POrders devuelve las órdenes P2P COMPLETED del lado dado en los últimos
// days días, troceando en ventanas de 30 días.
func (c *Client) P2POrders(ctx context.Context, side domain.Side, days int) ([]domain.P2POrder, error) {
	end := c.now()
	cutoff := end.Add(-time.Duration(days) * 24 * time.Hour)

	var raw []gobinance.C2CRecord
	for winEnd := end; winEnd.After(cutoff); winEnd = winEnd.Add(-c2cWindow) {
		winStart := winEnd.Add(-c2cWindow)
		if winStart.Before(cutoff) {
			winStart = cutoff
		}
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
		res, err := c.api.NewC2CTradeHistoryService().
			TradeType(gobinance.SideType(side)).
			StartTimestamp(winStart.UnixMilli()).
			EndTime(winEnd.UnixMilli()).
			Do(ctx)
		if err != nil {
			return nil, fmt.Errorf("fetch p2p %s orders: %w", side, err)
		}
		if res.Code != "000000" && res.Code != "" {
			return nil, fmt.Errorf("fetch p2p %s orders: binance code %s: %s", side, res.Code, res.Message)
		}
		raw = append(raw, res.Data...)
	}

	orders := mapP2POrders(side, raw, cutoff)
	slog.Debug("fetched p2p orders", "side", side, "count", len(orders))
	return orders, nil
}

// Deposits devuelve los depósitos cripto exitosos de los últimos days días,
// troceando en ventanas de 90 días.
func (c *Client) Deposits(ctx context.Context, days int) ([]domain.Deposit, error) {
	end := c.now()
	cutoff := end.Add(-time.Duration(days) * 24 * time.Hour)

	var raw []*gobinance.Deposit
	for winEnd := end; winEnd.After(cutoff); winEnd = winEnd.Add(-depositWindow) {
		winStart := winEnd.Add(-depositWindow)
		if winStart.Before(cutoff) {
			winStart = cutoff
		}
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
		batch, err := c.api.NewListDepositsService().
			Status(depositStatusSuccess).
			StartTime(winStart.UnixMilli()).
			EndTime(winEnd.UnixMilli()).
			Do(ctx)
		if err != nil {
			return nil, fmt.Errorf("fetch deposits: %w", err)
		}
		raw = append(raw, batch...)
	}

	deposits := mapDeposits(raw, cutoff)
	slog.Debug("fetched deposits", "count", len(deposits))
	return deposits, nil
}

// Balances devuelve el balance total (free + locked) por asset, omitiendo
// los assets a cero.
func (c *Client) Balances(ctx context.Context) (map[string]float64, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	account, err := c.api.NewGetAccountService().Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch account: %w", err)
	}

	balances := make(map[string]float64, len(account.Balances))
	for _, b := range account.Balances {
		total := parseAmount(b.Free) + parseAmount(b.Locked)
		if total > 0 {
			balances[b.Asset] = total
		}
	}
	return balances, nil
}
