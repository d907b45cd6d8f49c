package referral

import (
	"net/http"

	"rdxfarm.ru/backend/internal/common"
)

// Handler — HTTP-обработчики реферальной программы.
type Handler struct {
	service *Service
}

// NewHandler создаёт обработчик рефералов.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// GetCode — GET /api/referral/code.
func (h *Handler) GetCode(w http.ResponseWriter, r *http.Request) {
	userID, ok := common.UserID(r.Context())
	if !ok {
		common.WriteError(w, common.ErrUnauthorized)
		return
	}

	code, err := h.service.GetOrCreateCode(r.Context(), userID)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.WriteJSON(w, http.StatusOK, code)
}

// GetStats — GET /api/referral/stats.
func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	userID, ok := common.UserID(r.Context())
	if !ok {
		common.WriteError(w, common.ErrUnauthorized)
		return
	}

	stats, err := h.service.Stats(r.Context(), userID)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.WriteJSON(w, http.StatusOK, stats)
}
