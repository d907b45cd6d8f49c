package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestByID(t *testing.T) {
	gen, ok := ByID("hidreletrica")
	if !ok {
		t.Fatal("hidreletrica должна быть в каталоге")
	}
	if !gen.Cost.Equal(decimal.RequireFromString("100")) {
		t.Errorf("Cost = %s, ожидалось 100", gen.Cost)
	}
	if !gen.DailyProfit.Equal(decimal.RequireFromString("4.1667")) {
		t.Errorf("DailyProfit = %s, ожидалось 4.1667", gen.DailyProfit)
	}
	if gen.Lifespan != 60 {
		t.Errorf("Lifespan = %d, ожидалось 60", gen.Lifespan)
	}

	if _, ok := ByID("vecheniy_dvigatel"); ok {
		t.Error("неизвестный id не должен находиться в каталоге")
	}
}

func TestCatalogShape(t *testing.T) {
	if len(Generators) != 6 {
		t.Fatalf("в каталоге %d генераторов, ожидалось 6", len(Generators))
	}

	seen := make(map[string]bool)
	prev := decimal.Zero
	for _, g := range Generators {
		if seen[g.ID] {
			t.Errorf("дубликат id %q", g.ID)
		}
		seen[g.ID] = true

		if !g.Cost.GreaterThan(prev) {
			t.Errorf("каталог должен идти по возрастанию цены: %s после %s", g.Cost, prev)
		}
		prev = g.Cost

		if !g.DailyProfit.IsPositive() || g.Lifespan <= 0 {
			t.Errorf("генератор %q с неположительной доходностью или сроком", g.ID)
		}
	}
}
