package rewards

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestEarned(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		dailyProfit string
		elapsed     time.Duration
		want        string
	}{
		{"одна минута", "1440", time.Minute, "1"},
		{"полные сутки дают dailyProfit", "4.1667", 24 * time.Hour, "4.1667"},
		{"полсуток — половина", "1", 12 * time.Hour, "0.5"},
		{"ноль времени — ноль дохода", "100", 0, "0"},
		{"catavento за час", "0.0208", time.Hour, "0.00086667"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profit := decimal.RequireFromString(tt.dailyProfit)
			got := Earned(profit, base, base.Add(tt.elapsed))
			if !got.Equal(decimal.RequireFromString(tt.want)) {
				t.Errorf("Earned(%s, +%s) = %s, ожидалось %s", tt.dailyProfit, tt.elapsed, got, tt.want)
			}
		})
	}
}

// После сброса last_collected_at повторный расчёт в тот же момент
// начисляет ноль — сбор идемпотентен.
func TestEarnedIdempotentAtSameInstant(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	profit := decimal.RequireFromString("37.5")

	if got := Earned(profit, now, now); !got.IsZero() {
		t.Errorf("Earned при Δt=0 = %s, ожидался ноль", got)
	}
}

func TestEarnedClockSkew(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	profit := decimal.RequireFromString("100")

	// since в будущем — ноль, не отрицательное начисление
	if got := Earned(profit, now.Add(time.Hour), now); !got.IsZero() {
		t.Errorf("Earned при since в будущем = %s, ожидался ноль", got)
	}
}

// Доход квантуется до 8 знаков, поэтому пропорциональность
// выдерживается с точностью до одного кванта (1e-8).
func TestEarnedProportional(t *testing.T) {
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	profit := decimal.RequireFromString("0.21875")
	quantum := decimal.New(1, -8)

	one := Earned(profit, base, base.Add(time.Hour))
	two := Earned(profit, base, base.Add(2*time.Hour))

	diff := two.Sub(one.Mul(decimal.NewFromInt(2))).Abs()
	if diff.GreaterThan(quantum) {
		t.Errorf("доход за 2 часа %s != удвоенному доходу за час %s (расхождение %s)", two, one, diff)
	}
}
