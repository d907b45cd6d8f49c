package token

import (
	"testing"

	"github.com/shopspring/decimal"
)

func testCurve() PriceCurve {
	return PriceCurve{
		BasePrice: decimal.RequireFromString("0.001"),
		Scale:     decimal.RequireFromString("1000000"),
	}
}

func TestPriceAt(t *testing.T) {
	curve := testCurve()

	tests := []struct {
		name        string
		circulation string
		want        string
	}{
		{"нулевая эмиссия — базовая цена", "0", "0.001"},
		{"эмиссия равна scale — цена вдвое ниже", "1000000", "0.0005"},
		{"тройной scale — четверть цены", "3000000", "0.00025"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := curve.PriceAt(decimal.RequireFromString(tt.circulation))
			if !got.Equal(decimal.RequireFromString(tt.want)) {
				t.Errorf("PriceAt(%s) = %s, ожидалось %s", tt.circulation, got, tt.want)
			}
		})
	}
}

func TestPriceAtMonotonic(t *testing.T) {
	curve := testCurve()

	prev := curve.PriceAt(decimal.Zero)
	for _, c := range []string{"1", "1000", "500000", "1000000", "10000000"} {
		price := curve.PriceAt(decimal.RequireFromString(c))
		if !price.IsPositive() {
			t.Fatalf("цена при эмиссии %s не положительна: %s", c, price)
		}
		if price.GreaterThanOrEqual(prev) {
			t.Fatalf("цена не убывает: при эмиссии %s цена %s >= %s", c, price, prev)
		}
		prev = price
	}
}

func TestMakeQuoteUsdtToRdx(t *testing.T) {
	// 10 USDT по цене 0.001 с комиссией 1%
	q := MakeQuote(CurrencyUSDT,
		decimal.RequireFromString("10"),
		decimal.RequireFromString("0.01"),
		decimal.RequireFromString("0.001"),
	)

	if !q.Fee.Equal(decimal.RequireFromString("0.1")) {
		t.Errorf("Fee = %s, ожидалось 0.1", q.Fee)
	}
	if !q.Net.Equal(decimal.RequireFromString("9.9")) {
		t.Errorf("Net = %s, ожидалось 9.9", q.Net)
	}
	if !q.Result.Equal(decimal.RequireFromString("9900")) {
		t.Errorf("Result = %s, ожидалось 9900", q.Result)
	}
	if q.To != CurrencyRDX {
		t.Errorf("To = %s, ожидалось RDX", q.To)
	}
	if !q.CirculationDelta().Equal(q.Result) {
		t.Errorf("CirculationDelta = %s, ожидалось %s", q.CirculationDelta(), q.Result)
	}
}

func TestMakeQuoteRdxToUsdt(t *testing.T) {
	q := MakeQuote(CurrencyRDX,
		decimal.RequireFromString("9900"),
		decimal.RequireFromString("0.01"),
		decimal.RequireFromString("0.001"),
	)

	if !q.Fee.Equal(decimal.RequireFromString("99")) {
		t.Errorf("Fee = %s, ожидалось 99", q.Fee)
	}
	if !q.Result.Equal(decimal.RequireFromString("9.801")) {
		t.Errorf("Result = %s, ожидалось 9.801", q.Result)
	}
	if !q.CirculationDelta().Equal(decimal.RequireFromString("-9900")) {
		t.Errorf("CirculationDelta = %s, ожидалось -9900", q.CirculationDelta())
	}
}

// Конвертация туда-обратно всегда теряет комиссию:
// итог строго меньше исходной суммы.
func TestRoundTripLosesToFee(t *testing.T) {
	feeRate := decimal.RequireFromString("0.01")
	rate := decimal.RequireFromString("0.001")
	start := decimal.RequireFromString("100")

	forward := MakeQuote(CurrencyUSDT, start, feeRate, rate)
	back := MakeQuote(CurrencyRDX, forward.Result, feeRate, rate)

	if back.Result.GreaterThanOrEqual(start) {
		t.Errorf("туда-обратно %s USDT вернуло %s — комиссия потерялась", start, back.Result)
	}
}

func TestCurrencyValid(t *testing.T) {
	if !CurrencyUSDT.Valid() || !CurrencyRDX.Valid() {
		t.Error("штатные валюты должны быть валидны")
	}
	if Currency("BTC").Valid() {
		t.Error("неизвестная валюта не должна быть валидна")
	}
	if CurrencyUSDT.Other() != CurrencyRDX || CurrencyRDX.Other() != CurrencyUSDT {
		t.Error("Other() должен возвращать противоположную валюту")
	}
}
