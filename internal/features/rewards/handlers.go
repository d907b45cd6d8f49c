// Package rewards — handlers.go содержит HTTP-обработчик ручного сбора наград.
package rewards

import (
	"net/http"

	"rdxfarm.ru/backend/internal/common"
)

// Handler обрабатывает HTTP-запросы наград.
type Handler struct {
	service *Service
}

// NewHandler создаёт обработчик наград.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Collect — POST /api/rewards/collect.
func (h *Handler) Collect(w http.ResponseWriter, r *http.Request) {
	userID, ok := common.UserID(r.Context())
	if !ok {
		common.WriteError(w, common.ErrUnauthorized)
		return
	}

	collected, err := h.service.Collect(r.Context(), userID)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.WriteJSON(w, http.StatusOK, map[string]string{
		"collected": collected.String(),
		"currency":  "RDX",
	})
}
