package items

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"rdxfarm.ru/backend/internal/features/catalog"
)

// Витрина магазина отдаётся без авторизации и целиком
// совпадает с каталогом.
func TestCatalogHandler(t *testing.T) {
	h := NewHandler(nil)

	rec := httptest.NewRecorder()
	h.Catalog(rec, httptest.NewRequest(http.MethodGet, "/api/generators", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("статус %d, ожидался %d", rec.Code, http.StatusOK)
	}

	var got []catalog.Generator
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("не удалось разобрать ответ: %v", err)
	}
	if len(got) != len(catalog.Generators) {
		t.Fatalf("в ответе %d генераторов, ожидалось %d", len(got), len(catalog.Generators))
	}
	if got[0].ID != "catavento" || !got[0].Cost.Equal(catalog.Generators[0].Cost) {
		t.Errorf("первый генератор %s (%s), ожидался catavento (0.5)", got[0].ID, got[0].Cost)
	}
}
