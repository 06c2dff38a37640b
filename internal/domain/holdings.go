package domain

// El motor solo modela BTC, ETH y USDT. Comisiones cobradas en cualquier
// otro asset se ignoran: ni se convierten ni se trackean.
const (
	AssetBTC  = "BTC"
	AssetETH  = "ETH"
	AssetUSDT = "USDT"

	SymbolBTCUSDT = "BTCUSDT"
	SymbolETHUSDT = "ETHUSDT"
)

// Holdings es el estado de cantidades por asset durante un replay.
// USDT es una cantidad como las demás; se valora a 1.0.
type Holdings struct {
	BTC  float64
	ETH  float64
	USDT float64
}

// ApplyTrade muta h con un fill: BUY suma el asset base y debita el quote
// de USDT, SELL al revés. La comisión se debita del asset en que se cobró,
// si ese asset está trackeado.
func (h *Holdings) ApplyTrade(t Trade) {
	switch t.Symbol {
	case SymbolBTCUSDT:
		if t.Side == SideBuy {
			h.BTC += t.Qty
			h.USDT -= t.QuoteQty
		} else {
			h.BTC -= t.Qty
			h.USDT += t.QuoteQty
		}
	case SymbolETHUSDT:
		if t.Side == SideBuy {
			h.ETH += t.Qty
			h.USDT -= t.QuoteQty
		} else {
			h.ETH -= t.Qty
			h.USDT += t.QuoteQty
		}
	}
	h.Add(t.CommissionAsset, -t.Commission)
}

// Add acredita una cantidad con signo de asset. Assets no trackeados son no-op.
func (h *Holdings) Add(asset string, amount float64) {
	switch asset {
	case AssetBTC:
		h.BTC += amount
	case AssetETH:
		h.ETH += amount
	case AssetUSDT:
		h.USDT += amount
	}
}

// Value valora los holdings en USDT.
func (h Holdings) Value(btcPrice, ethPrice float64) float64 {
	return h.BTC*btcPrice + h.ETH*ethPrice + h.USDT
}
