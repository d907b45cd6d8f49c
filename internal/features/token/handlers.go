// Package token — handlers.go содержит HTTP-обработчики экономики токена.
// Обработчики только разбирают запрос и сериализуют ответ,
// вся логика — в сервисе.
package token

import (
	"net/http"
	"strconv"

	"rdxfarm.ru/backend/internal/common"
)

// Handler обрабатывает HTTP-запросы экономики токена.
type Handler struct {
	service *Service
}

// NewHandler создаёт обработчик экономики токена.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// GetPrice — GET /api/rdx/price. Публичный, цена считается на лету.
func (h *Handler) GetPrice(w http.ResponseWriter, r *http.Request) {
	price, err := h.service.Price(r.Context())
	if err != nil {
		common.WriteError(w, err)
		return
	}
	pool, err := h.service.PoolStats(r.Context())
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.WriteJSON(w, http.StatusOK, map[string]string{
		"price":              price.String(),
		"totalInCirculation": pool.TotalInCirculation.String(),
		"totalBurned":        pool.TotalBurned.String(),
	})
}

// GetPriceHistory — GET /api/rdx/price/history?limit=N.
func (h *Handler) GetPriceHistory(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	history, err := h.service.GetPriceHistory(r.Context(), limit)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.WriteJSON(w, http.StatusOK, history)
}

// convertRequest — тело POST /api/rdx/convert.
type convertRequest struct {
	FromCurrency string `json:"fromCurrency"`
	Amount       string `json:"amount"`
}

// Convert — POST /api/rdx/convert. Требует авторизации.
func (h *Handler) Convert(w http.ResponseWriter, r *http.Request) {
	userID, ok := common.UserID(r.Context())
	if !ok {
		common.WriteError(w, common.ErrUnauthorized)
		return
	}

	var req convertRequest
	if err := common.DecodeJSON(r, &req); err != nil {
		common.WriteError(w, common.ErrInvalidAmount)
		return
	}
	amount, err := common.ParseMoney(req.Amount)
	if err != nil {
		common.WriteError(w, common.ErrInvalidAmount)
		return
	}

	conv, err := h.service.Convert(r.Context(), userID, Currency(req.FromCurrency), amount)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.WriteJSON(w, http.StatusOK, conv)
}

// GetConversions — GET /api/rdx/conversions. История пользователя.
func (h *Handler) GetConversions(w http.ResponseWriter, r *http.Request) {
	userID, ok := common.UserID(r.Context())
	if !ok {
		common.WriteError(w, common.ErrUnauthorized)
		return
	}
	conversions, err := h.service.GetConversions(r.Context(), userID)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.WriteJSON(w, http.StatusOK, conversions)
}
