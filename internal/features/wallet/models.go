// Package wallet — models.go описывает структуры кошелька:
// балансы двух валют, транзакции депозитов/выводов и заявки на депозит.
package wallet

import (
	"time"

	"github.com/shopspring/decimal"
)

// Balances — балансы пользователя в обеих валютах.
// По одной строке на пользователя в balances и rdx_balances.
type Balances struct {
	UserID     int64           `json:"userId"`
	Balance    decimal.Decimal `json:"balance"`    // USDT
	RdxBalance decimal.Decimal `json:"rdxBalance"` // RDX
}

// TransactionType — тип денежной операции.
type TransactionType string

const (
	TxDeposit    TransactionType = "deposit"
	TxWithdrawal TransactionType = "withdrawal"
)

// TransactionStatus — статус транзакции.
// Переходы только вперёд: pending → approved | rejected.
type TransactionStatus string

const (
	TxPending  TransactionStatus = "pending"
	TxApproved TransactionStatus = "approved"
	TxRejected TransactionStatus = "rejected"
)

// Transaction — запись аудита депозита или вывода.
// После создания меняется только статус и хеш транзакции.
type Transaction struct {
	ID          int64             `json:"id"`
	UserID      int64             `json:"userId"`
	Type        TransactionType   `json:"type"`
	Amount      decimal.Decimal   `json:"amount"`
	UserAddress string            `json:"userAddress"`
	TxHash      string            `json:"txHash,omitempty"`
	Status      TransactionStatus `json:"status"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}

// DepositStatus — статус заявки на депозит.
// pending → confirmed | rejected | expired.
type DepositStatus string

const (
	DepositPending   DepositStatus = "pending"
	DepositConfirmed DepositStatus = "confirmed"
	DepositRejected  DepositStatus = "rejected"
	DepositExpired   DepositStatus = "expired"
)

// DepositRequest — заявка на депозит с выделенным адресом.
// Монитор опрашивает pending-заявки раз в минуту; заявка живёт час,
// после чего помечается expired и больше не проверяется.
type DepositRequest struct {
	ID             int64           `json:"id"`
	UserID         int64           `json:"userId"`
	TransactionID  int64           `json:"-"` // pending-транзакция аудита, подтверждается вместе с заявкой
	Amount         decimal.Decimal `json:"amount"`
	UserAddress    string          `json:"userAddress"`
	DepositAddress string          `json:"depositAddress"`
	Status         DepositStatus   `json:"status"`
	TxHash         string          `json:"txHash,omitempty"`
	ExpiresAt      time.Time       `json:"expiresAt"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}
