// Package items — handlers.go содержит HTTP-обработчики леджера предметов.
package items

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"rdxfarm.ru/backend/internal/common"
	"rdxfarm.ru/backend/internal/features/catalog"
)

// Handler обрабатывает HTTP-запросы предметов.
type Handler struct {
	service *Service
}

// NewHandler создаёт обработчик предметов.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Catalog — GET /api/generators. Публичный: витрина магазина
// нужна и до авторизации.
func (h *Handler) Catalog(w http.ResponseWriter, r *http.Request) {
	common.WriteJSON(w, http.StatusOK, catalog.Generators)
}

// GetItems — GET /api/items?active=1.
func (h *Handler) GetItems(w http.ResponseWriter, r *http.Request) {
	userID, ok := common.UserID(r.Context())
	if !ok {
		common.WriteError(w, common.ErrUnauthorized)
		return
	}

	var (
		items []*OwnedItem
		err   error
	)
	if r.URL.Query().Get("active") == "1" {
		items, err = h.service.GetActiveItems(r.Context(), userID)
	} else {
		items, err = h.service.GetItems(r.Context(), userID)
	}
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.WriteJSON(w, http.StatusOK, items)
}

// buyRequest — тело POST /api/items/buy.
type buyRequest struct {
	GeneratorID string `json:"generatorId"`
}

// Buy — POST /api/items/buy.
func (h *Handler) Buy(w http.ResponseWriter, r *http.Request) {
	userID, ok := common.UserID(r.Context())
	if !ok {
		common.WriteError(w, common.ErrUnauthorized)
		return
	}

	var req buyRequest
	if err := common.DecodeJSON(r, &req); err != nil || req.GeneratorID == "" {
		common.WriteError(w, common.ErrGeneratorNotFound)
		return
	}

	item, err := h.service.Purchase(r.Context(), userID, req.GeneratorID)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.WriteJSON(w, http.StatusOK, item)
}

// Sell — POST /api/items/{id}/sell.
func (h *Handler) Sell(w http.ResponseWriter, r *http.Request) {
	userID, ok := common.UserID(r.Context())
	if !ok {
		common.WriteError(w, common.ErrUnauthorized)
		return
	}

	itemID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		common.WriteError(w, common.ErrItemNotFound)
		return
	}

	credit, err := h.service.Sell(r.Context(), userID, itemID)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.WriteJSON(w, http.StatusOK, map[string]string{
		"credited": credit.String(),
		"currency": "RDX",
	})
}
