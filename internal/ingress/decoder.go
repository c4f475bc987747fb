package ingress

import (
	"encoding/json"
	"fmt"

	"github.com/lokidex/matching-core/internal/instrument"
	"github.com/lokidex/matching-core/internal/orderbook"
)

// wireOrder mirrors spec.md §6's ingress record shape exactly: decimal
// values arrive as strings, price is null only for market orders.
type wireOrder struct {
	ID        string  `json:"id"`
	Symbol    string  `json:"symbol"`
	OrderType string  `json:"order_type"`
	Side      string  `json:"side"`
	Quantity  string  `json:"quantity"`
	Price     *string `json:"price"`
	Timestamp int64   `json:"timestamp"`
}

// Decoder turns raw ingress payloads into orderbook.Order, scaling
// decimal strings through the instrument registry.
type Decoder struct {
	registry *instrument.Registry
}

func NewDecoder(registry *instrument.Registry) *Decoder {
	return &Decoder{registry: registry}
}

// Decode parses and validates one payload. Any failure is a malformed
// message — the caller is expected to log it and continue, never
// forward it to the matching core.
func (d *Decoder) Decode(raw []byte) (*orderbook.Order, error) {
	var w wireOrder
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, fmt.Errorf("ingress: invalid json: %w", err)
	}

	side, err := parseSide(w.Side)
	if err != nil {
		return nil, err
	}
	typ, err := parseType(w.OrderType)
	if err != nil {
		return nil, err
	}

	inst, ok := d.registry.Get(w.Symbol)
	if !ok {
		return nil, fmt.Errorf("ingress: unknown symbol %q", w.Symbol)
	}

	qty, err := inst.ScaleQuantity(w.Quantity)
	if err != nil {
		return nil, fmt.Errorf("ingress: bad quantity %q: %w", w.Quantity, err)
	}
	if qty <= 0 {
		return nil, fmt.Errorf("ingress: quantity must be positive, got %q", w.Quantity)
	}

	var price int64
	switch typ {
	case orderbook.Market:
		if w.Price != nil {
			return nil, fmt.Errorf("ingress: market order %s must not carry a price", w.ID)
		}
	default:
		if w.Price == nil {
			return nil, fmt.Errorf("ingress: %s order %s requires a price", typ, w.ID)
		}
		price, err = inst.ScalePrice(*w.Price)
		if err != nil {
			return nil, fmt.Errorf("ingress: bad price %q: %w", *w.Price, err)
		}
		if price <= 0 {
			return nil, fmt.Errorf("ingress: %s order %s requires a positive price, got %q", typ, w.ID, *w.Price)
		}
	}

	return orderbook.NewOrder(w.ID, w.Symbol, side, typ, price, qty, w.Timestamp), nil
}

func parseSide(s string) (orderbook.Side, error) {
	switch s {
	case "buy":
		return orderbook.Buy, nil
	case "sell":
		return orderbook.Sell, nil
	default:
		return 0, fmt.Errorf("ingress: unknown side %q", s)
	}
}

func parseType(s string) (orderbook.Type, error) {
	switch s {
	case "market":
		return orderbook.Market, nil
	case "limit":
		return orderbook.Limit, nil
	case "ioc":
		return orderbook.IOC, nil
	case "fok":
		return orderbook.FOK, nil
	default:
		return 0, fmt.Errorf("ingress: unknown order_type %q", s)
	}
}
