package instrument

import "testing"

func TestScalePriceAndQuantity(t *testing.T) {
	inst := Instrument{Symbol: "BTC-USDT", PriceDecimals: 2, QuantityDecimals: 6}

	price, err := inst.ScalePrice("60000.50")
	if err != nil {
		t.Fatalf("ScalePrice: %v", err)
	}
	if price != 6000050 {
		t.Errorf("ScalePrice(60000.50) = %d, want 6000050", price)
	}

	qty, err := inst.ScaleQuantity("1.5")
	if err != nil {
		t.Fatalf("ScaleQuantity: %v", err)
	}
	if qty != 1500000 {
		t.Errorf("ScaleQuantity(1.5) = %d, want 1500000", qty)
	}
}

func TestUnscaleRoundTrips(t *testing.T) {
	inst := Instrument{Symbol: "BTC-USDT", PriceDecimals: 2, QuantityDecimals: 6}
	if got := inst.UnscalePrice(6000050); got != "60000.50" {
		t.Errorf("UnscalePrice(6000050) = %s, want 60000.50", got)
	}
	if got := inst.UnscaleQuantity(1500000); got != "1.500000" {
		t.Errorf("UnscaleQuantity(1500000) = %s, want 1.500000", got)
	}
}

func TestScalePriceRejectsMalformedInput(t *testing.T) {
	inst := Instrument{Symbol: "BTC-USDT", PriceDecimals: 2}
	if _, err := inst.ScalePrice("not-a-number"); err == nil {
		t.Fatal("expected an error for malformed decimal input")
	}
}

func TestRegistryRegisterAndGet(t *testing.T) {
	r := NewRegistry()
	r.Register(Instrument{Symbol: "BTC-USD", PriceDecimals: 2, QuantityDecimals: 6})

	inst, ok := r.Get("BTC-USD")
	if !ok || inst.PriceDecimals != 2 {
		t.Fatalf("Get(BTC-USD) = (%+v, %v)", inst, ok)
	}
	if _, ok := r.Get("UNKNOWN"); ok {
		t.Fatal("expected UNKNOWN symbol to be absent")
	}
}

func TestRegistryMustGetPanicsOnUnknownSymbol(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected MustGet to panic on an unknown symbol")
		}
	}()
	NewRegistry().MustGet("NOPE")
}

func TestDefaultRegistryKnowsReferenceSymbols(t *testing.T) {
	r := Default()
	for _, sym := range []string{"BTC-USDT", "BTC-USD", "ETH-USDT"} {
		if _, ok := r.Get(sym); !ok {
			t.Errorf("expected default registry to know %s", sym)
		}
	}
}
