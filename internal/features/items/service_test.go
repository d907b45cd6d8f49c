package items

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"rdxfarm.ru/backend/internal/features/catalog"
)

func TestNewOwnedItem(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		generatorID string
		cost        string
		dailyProfit string
		lifespan    int
	}{
		{"catavento", "0.5", "0.0208", 30},
		{"hidreletrica", "100", "4.1667", 60},
	}

	for _, tt := range tests {
		t.Run(tt.generatorID, func(t *testing.T) {
			gen, ok := catalog.ByID(tt.generatorID)
			if !ok {
				t.Fatalf("генератор %s не найден в каталоге", tt.generatorID)
			}

			item := NewOwnedItem(7, gen, now)

			if item.UserID != 7 || item.ItemType != tt.generatorID {
				t.Errorf("владелец/тип = %d/%s, ожидалось 7/%s", item.UserID, item.ItemType, tt.generatorID)
			}
			if !item.PurchasePrice.Equal(decimal.RequireFromString(tt.cost)) {
				t.Errorf("цена покупки %s, ожидалось %s", item.PurchasePrice, tt.cost)
			}
			if !item.DailyProfit.Equal(decimal.RequireFromString(tt.dailyProfit)) {
				t.Errorf("доходность %s, ожидалось %s", item.DailyProfit, tt.dailyProfit)
			}
			if !item.PurchasedAt.Equal(now) {
				t.Errorf("время покупки %s, ожидалось %s", item.PurchasedAt, now)
			}
			wantExpiry := now.Add(time.Duration(tt.lifespan) * 24 * time.Hour)
			if !item.ExpiresAt.Equal(wantExpiry) {
				t.Errorf("срок жизни истекает %s, ожидалось %s", item.ExpiresAt, wantExpiry)
			}
		})
	}
}

func TestSellCredit(t *testing.T) {
	half := decimal.RequireFromString("0.5")
	rate := decimal.RequireFromString("1000")

	tests := []struct {
		name  string
		price string
		want  string
	}{
		{"catavento", "0.5", "250"},
		{"hidreletrica", "100", "50000"},
		{"reator_nuclear", "1000", "500000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SellCredit(decimal.RequireFromString(tt.price), half, rate)
			if !got.Equal(decimal.RequireFromString(tt.want)) {
				t.Errorf("SellCredit(%s) = %s, ожидалось %s", tt.price, got, tt.want)
			}
		})
	}
}

func TestOwnedItemActive(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	item := OwnedItem{ExpiresAt: now.Add(time.Hour)}
	if !item.Active(now) {
		t.Error("предмет с неистёкшим сроком должен быть активен")
	}

	expired := OwnedItem{ExpiresAt: now.Add(-time.Hour)}
	if expired.Active(now) {
		t.Error("истёкший предмет не должен быть активен")
	}
}
