package instrument

import "github.com/shopspring/decimal"

// ScalePrice converts a decimal price string to the instrument's fixed-
// point tick representation. This, and ScaleQuantity, are the only place
// in the repo decimal strings are parsed — everything past the ingress
// boundary is an exact int64.
func (inst Instrument) ScalePrice(s string) (int64, error) {
	return scale(s, inst.PriceDecimals)
}

// ScaleQuantity converts a decimal quantity string to fixed-point lots.
func (inst Instrument) ScaleQuantity(s string) (int64, error) {
	return scale(s, inst.QuantityDecimals)
}

func scale(s string, decimals int32) (int64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, err
	}
	return d.Shift(decimals).Round(0).IntPart(), nil
}

// UnscalePrice renders a fixed-point tick value back to a decimal string,
// for egress records.
func (inst Instrument) UnscalePrice(ticks int64) string {
	return unscale(ticks, inst.PriceDecimals)
}

// UnscaleQuantity renders a fixed-point lot value back to a decimal string.
func (inst Instrument) UnscaleQuantity(lots int64) string {
	return unscale(lots, inst.QuantityDecimals)
}

func unscale(v int64, decimals int32) string {
	return decimal.New(v, -decimals).StringFixed(decimals)
}
