package domain

import "time"

// P2POrder es una operación P2P (C2C) fiat completada. El adapter descarta
// todo lo que no esté COMPLETED o caiga fuera de la ventana antes de que
// llegue al builder del ledger.
type P2POrder struct {
	Timestamp    time.Time
	Side         Side
	Asset        string
	Fiat         string
	CryptoAmount float64
	FiatAmount   float64
	UnitPrice    float64
	Commission   float64
}

// Deposit es un depósito cripto on-chain exitoso, pre-filtrado a estado
// SUCCESS por el adapter.
type Deposit struct {
	Timestamp time.Time
	Coin      string
	Amount    float64
	Network   string
	TxID      string
}
