package admin

import (
	"net/http"

	"rdxfarm.ru/backend/internal/common"
	"rdxfarm.ru/backend/internal/features/token"
	"rdxfarm.ru/backend/internal/features/wallet"
)

// Handler — HTTP-обработчики админ-панели. Помимо собственного сервиса
// использует сервисы кошелька и токена для списков и операций с пулом.
type Handler struct {
	service *Service
	wallet  *wallet.Service
	token   *token.Service
}

// NewHandler создаёт обработчик админ-панели.
func NewHandler(service *Service, walletSvc *wallet.Service, tokenSvc *token.Service) *Handler {
	return &Handler{service: service, wallet: walletSvc, token: tokenSvc}
}

type loginRequest struct {
	Password string `json:"password"`
}

// Login — POST /api/admin/login. Подтверждение пароля администратора
// поверх обычной сессии.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	userID, ok := common.UserID(r.Context())
	if !ok {
		common.WriteError(w, common.ErrUnauthorized)
		return
	}

	var req loginRequest
	if err := common.DecodeJSON(r, &req); err != nil {
		common.WriteError(w, common.ErrWrongPassword)
		return
	}

	if err := h.service.VerifyPassword(r.Context(), userID, req.Password); err != nil {
		common.WriteError(w, err)
		return
	}
	common.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetStats — GET /api/admin/stats.
func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.GetStats(r.Context())
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.WriteJSON(w, http.StatusOK, stats)
}

// GetSettings — GET /api/admin/settings.
func (h *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.service.GetSettings(r.Context())
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.WriteJSON(w, http.StatusOK, settings)
}

type settingRequest struct {
	Key   string `json:"key"`
	Value bool   `json:"value"`
}

// UpdateSetting — PUT /api/admin/settings.
func (h *Handler) UpdateSetting(w http.ResponseWriter, r *http.Request) {
	var req settingRequest
	if err := common.DecodeJSON(r, &req); err != nil {
		common.WriteError(w, common.ErrBadRequest)
		return
	}

	if err := h.service.SetSetting(r.Context(), req.Key, req.Value); err != nil {
		common.WriteError(w, err)
		return
	}
	common.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetTransactions — GET /api/admin/transactions. Все транзакции всех
// пользователей.
func (h *Handler) GetTransactions(w http.ResponseWriter, r *http.Request) {
	txs, err := h.wallet.GetAllTransactions(r.Context())
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.WriteJSON(w, http.StatusOK, txs)
}

// GetDeposits — GET /api/admin/deposits. Все депозитные заявки.
func (h *Handler) GetDeposits(w http.ResponseWriter, r *http.Request) {
	deposits, err := h.wallet.GetAllDepositRequests(r.Context())
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.WriteJSON(w, http.StatusOK, deposits)
}

type poolRequest struct {
	Amount string `json:"amount"`
	UserID int64  `json:"userId,omitempty"`
}

// Mint — POST /api/admin/pool/mint. Увеличивает эмиссию RDX.
func (h *Handler) Mint(w http.ResponseWriter, r *http.Request) {
	h.poolOp(w, r, func(req poolRequest) error {
		amount, err := common.ParseMoney(req.Amount)
		if err != nil {
			return common.ErrInvalidAmount
		}
		return h.token.Mint(r.Context(), amount)
	})
}

// Burn — POST /api/admin/pool/burn. Сжигает RDX из обращения.
func (h *Handler) Burn(w http.ResponseWriter, r *http.Request) {
	h.poolOp(w, r, func(req poolRequest) error {
		amount, err := common.ParseMoney(req.Amount)
		if err != nil {
			return common.ErrInvalidAmount
		}
		return h.token.Burn(r.Context(), amount)
	})
}

// SendToUser — POST /api/admin/pool/send. Начисляет RDX пользователю
// с увеличением эмиссии.
func (h *Handler) SendToUser(w http.ResponseWriter, r *http.Request) {
	h.poolOp(w, r, func(req poolRequest) error {
		amount, err := common.ParseMoney(req.Amount)
		if err != nil {
			return common.ErrInvalidAmount
		}
		return h.token.SendToUser(r.Context(), req.UserID, amount)
	})
}

func (h *Handler) poolOp(w http.ResponseWriter, r *http.Request, op func(poolRequest) error) {
	var req poolRequest
	if err := common.DecodeJSON(r, &req); err != nil {
		common.WriteError(w, common.ErrBadRequest)
		return
	}
	if err := op(req); err != nil {
		common.WriteError(w, err)
		return
	}
	common.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
