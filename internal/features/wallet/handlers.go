// Package wallet — handlers.go содержит HTTP-обработчики кошелька.
package wallet

import (
	"context"
	"net/http"

	"github.com/shopspring/decimal"

	"rdxfarm.ru/backend/internal/common"
)

// PriceSource отдаёт текущую цену RDX для ответа с балансами.
// Реализуется сервисом экономики токена.
type PriceSource interface {
	Price(ctx context.Context) (decimal.Decimal, error)
}

// Handler обрабатывает HTTP-запросы кошелька.
type Handler struct {
	service *Service
	prices  PriceSource
}

// NewHandler создаёт обработчик кошелька.
func NewHandler(service *Service, prices PriceSource) *Handler {
	return &Handler{service: service, prices: prices}
}

// GetBalance — GET /api/wallet/balance. Оба баланса плюс текущая цена RDX.
func (h *Handler) GetBalance(w http.ResponseWriter, r *http.Request) {
	userID, ok := common.UserID(r.Context())
	if !ok {
		common.WriteError(w, common.ErrUnauthorized)
		return
	}

	balances, err := h.service.GetBalances(r.Context(), userID)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	price, err := h.prices.Price(r.Context())
	if err != nil {
		common.WriteError(w, err)
		return
	}

	common.WriteJSON(w, http.StatusOK, map[string]string{
		"balance":    balances.Balance.String(),
		"rdxBalance": balances.RdxBalance.String(),
		"rdxPrice":   price.String(),
	})
}

// GetTransactions — GET /api/wallet/transactions.
func (h *Handler) GetTransactions(w http.ResponseWriter, r *http.Request) {
	userID, ok := common.UserID(r.Context())
	if !ok {
		common.WriteError(w, common.ErrUnauthorized)
		return
	}
	transactions, err := h.service.GetTransactions(r.Context(), userID)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.WriteJSON(w, http.StatusOK, transactions)
}

// depositRequest — тело POST /api/wallet/deposit.
type depositRequest struct {
	Amount      string `json:"amount"`
	UserAddress string `json:"userAddress"`
}

// Deposit — POST /api/wallet/deposit. Создаёт заявку, возвращает адрес.
func (h *Handler) Deposit(w http.ResponseWriter, r *http.Request) {
	userID, ok := common.UserID(r.Context())
	if !ok {
		common.WriteError(w, common.ErrUnauthorized)
		return
	}

	var req depositRequest
	if err := common.DecodeJSON(r, &req); err != nil || req.UserAddress == "" {
		common.WriteError(w, common.ErrInvalidAmount)
		return
	}
	amount, err := common.ParseMoney(req.Amount)
	if err != nil {
		common.WriteError(w, common.ErrInvalidAmount)
		return
	}

	request, err := h.service.Deposit(r.Context(), userID, amount, req.UserAddress)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.WriteJSON(w, http.StatusOK, request)
}

// withdrawRequest — тело POST /api/wallet/withdraw.
type withdrawRequest struct {
	Amount      string `json:"amount"`
	UserAddress string `json:"userAddress"`
}

// Withdraw — POST /api/wallet/withdraw.
func (h *Handler) Withdraw(w http.ResponseWriter, r *http.Request) {
	userID, ok := common.UserID(r.Context())
	if !ok {
		common.WriteError(w, common.ErrUnauthorized)
		return
	}

	var req withdrawRequest
	if err := common.DecodeJSON(r, &req); err != nil || req.UserAddress == "" {
		common.WriteError(w, common.ErrInvalidAmount)
		return
	}
	amount, err := common.ParseMoney(req.Amount)
	if err != nil {
		common.WriteError(w, common.ErrInvalidAmount)
		return
	}

	tx, err := h.service.Withdraw(r.Context(), userID, amount, req.UserAddress)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.WriteJSON(w, http.StatusOK, tx)
}
