// Package blockchain — заглушки внешних блокчейн-интеграций.
// Ядро системы видит их как непрозрачные сервисы: генерация депозитного
// адреса, проверка поступления депозита и отправка вывода.
// Реальные вызовы RPC здесь не реализованы — монитор депозитов
// просто повторит проверку на следующем тике.
package blockchain

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"rdxfarm.ru/backend/internal/config"
)

// CheckResult — результат проверки депозитного адреса.
type CheckResult struct {
	Received bool
	TxHash   string
	Amount   decimal.Decimal
}

// SendResult — результат отправки вывода.
type SendResult struct {
	Success bool
	TxHash  string
}

// Wallet — клиент блокчейн-операций, производный от seed-фразы.
type Wallet struct {
	seed string
}

// NewWallet создаёт клиент блокчейн-операций.
func NewWallet(cfg *config.Config) *Wallet {
	return &Wallet{seed: cfg.BlockchainSeed}
}

// DepositAddress возвращает депозитный адрес пользователя.
// Адрес детерминирован (seed + ID), поэтому его можно кешировать
// и показывать повторно без обращения к ноде.
func (w *Wallet) DepositAddress(userID int64) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s:deposit:%d", w.seed, userID)))
	return "0x" + hex.EncodeToString(sum[:])[:40]
}

// CheckDeposit проверяет, поступил ли на адрес депозит не меньше minAmount.
// Пока интеграция с нодой не подключена — всегда «ещё не получен».
// Здесь должен быть вызов RPC:
//
//	balance, err := rpc.GetBalance(ctx, address)
func (w *Wallet) CheckDeposit(ctx context.Context, address string, minAmount decimal.Decimal) (*CheckResult, error) {
	log.WithFields(log.Fields{
		"address": address,
		"min":     minAmount.String(),
	}).Debug("Проверка депозитного адреса")

	return &CheckResult{Received: false}, nil
}

// SendWithdrawal отправляет amount на адрес toAddress.
// Пока интеграция не подключена — имитируем успешную отправку
// со случайным хешем транзакции.
func (w *Wallet) SendWithdrawal(ctx context.Context, toAddress string, amount decimal.Decimal) (*SendResult, error) {
	log.WithFields(log.Fields{
		"to":     toAddress,
		"amount": amount.String(),
	}).Info("Отправка вывода")

	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return &SendResult{Success: false}, fmt.Errorf("ошибка генерации хеша: %w", err)
	}
	return &SendResult{
		Success: true,
		TxHash:  "0x" + hex.EncodeToString(buf),
	}, nil
}
