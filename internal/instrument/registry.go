package instrument

import "fmt"

// Instrument describes one symbol's price/quantity scaling. A price of
// "60000.50" with PriceDecimals 2 becomes the int64 tick value 6000050;
// a quantity of "1.5" with QuantityDecimals 5 becomes 150000 lots.
type Instrument struct {
	Symbol           string
	PriceDecimals    int32 // decimal places retained when scaling Price
	QuantityDecimals int32 // decimal places retained when scaling Quantity
}

// Registry holds the known instruments for one running process.
type Registry struct {
	bySymbol map[string]Instrument
}

// NewRegistry builds an empty registry.
func NewRegistry() *Registry {
	return &Registry{bySymbol: make(map[string]Instrument)}
}

// Register adds or replaces inst's entry.
func (r *Registry) Register(inst Instrument) {
	r.bySymbol[inst.Symbol] = inst
}

// Get returns the instrument for symbol, if known.
func (r *Registry) Get(symbol string) (Instrument, bool) {
	inst, ok := r.bySymbol[symbol]
	return inst, ok
}

// MustGet panics if symbol is not registered, for callers where an unknown
// symbol is a configuration error rather than a per-message one. The
// ingress decoder uses Get instead and rejects such a message.
func (r *Registry) MustGet(symbol string) Instrument {
	inst, ok := r.Get(symbol)
	if !ok {
		panic(fmt.Sprintf("instrument: unknown symbol %q", symbol))
	}
	return inst
}

// Default seeds a registry with the symbols exercised by the reference
// order gateway this engine replaces, so a fresh process is usable
// without an external config file during development.
func Default() *Registry {
	r := NewRegistry()
	r.Register(Instrument{Symbol: "BTC-USDT", PriceDecimals: 2, QuantityDecimals: 6})
	r.Register(Instrument{Symbol: "BTC-USD", PriceDecimals: 2, QuantityDecimals: 6})
	r.Register(Instrument{Symbol: "ETH-USDT", PriceDecimals: 2, QuantityDecimals: 5})
	return r
}
