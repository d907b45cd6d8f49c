// Package wallet — service.go содержит бизнес-логику кошелька:
// депозиты, выводы и мониторинг pending-заявок.
package wallet

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"rdxfarm.ru/backend/internal/blockchain"
	"rdxfarm.ru/backend/internal/common"
	"rdxfarm.ru/backend/internal/config"
)

// Chain — контракт блокчейн-интеграций, которые ядро не реализует.
// Выполняется пакетом blockchain; вызовы могут падать или отвечать
// «ещё не получен» — монитор повторит их на следующем тике.
type Chain interface {
	DepositAddress(userID int64) string
	CheckDeposit(ctx context.Context, address string, minAmount decimal.Decimal) (*blockchain.CheckResult, error)
	SendWithdrawal(ctx context.Context, toAddress string, amount decimal.Decimal) (*blockchain.SendResult, error)
}

// SettingsSource отвечает, включены ли депозиты и выводы.
// Реализуется сервисом админки.
type SettingsSource interface {
	DepositsEnabled(ctx context.Context) (bool, error)
	WithdrawalsEnabled(ctx context.Context) (bool, error)
}

// Notifier отправляет уведомления администраторам.
// Реализуется пакетом notify (Telegram); может быть выключен.
type Notifier interface {
	Send(ctx context.Context, text string)
}

// Service управляет кошельком пользователя.
type Service struct {
	repo     *Repository
	chain    Chain
	settings SettingsSource
	notifier Notifier
	cfg      *config.Config
}

// NewService создаёт сервис кошелька.
func NewService(repo *Repository, chain Chain, settings SettingsSource, notifier Notifier, cfg *config.Config) *Service {
	return &Service{
		repo:     repo,
		chain:    chain,
		settings: settings,
		notifier: notifier,
		cfg:      cfg,
	}
}

// EnsureBalances создаёт нулевые балансы нового пользователя.
func (s *Service) EnsureBalances(ctx context.Context, userID int64) error {
	return s.repo.EnsureBalances(ctx, userID)
}

// GetBalances возвращает балансы пользователя в обеих валютах.
func (s *Service) GetBalances(ctx context.Context, userID int64) (*Balances, error) {
	return s.repo.GetBalances(ctx, userID)
}

// Deposit создаёт заявку на депозит с выделенным адресом.
// Проверки:
//   - депозиты включены в admin_settings
//   - сумма не меньше минимума
//   - не больше одного депозита в календарные сутки
//
// Баланс НЕ кредитуется здесь — только после подтверждения монитором.
func (s *Service) Deposit(ctx context.Context, userID int64, amount decimal.Decimal, userAddress string) (*DepositRequest, error) {
	enabled, err := s.settings.DepositsEnabled(ctx)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения настроек: %w", err)
	}
	if !enabled {
		return nil, common.ErrDepositsDisabled
	}

	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, common.ErrInvalidAmount
	}
	if amount.LessThan(decimal.NewFromFloat(s.cfg.MinDepositAmount)) {
		return nil, common.ErrBelowMinimum
	}

	// Один депозит в день: сравниваем календарные даты
	lastAt, err := s.repo.GetLastDepositAt(ctx, userID)
	if err != nil {
		return nil, err
	}
	if lastAt != nil && sameDay(*lastAt, time.Now()) {
		return nil, common.ErrDepositToday
	}

	req := &DepositRequest{
		UserID:         userID,
		Amount:         amount,
		UserAddress:    userAddress,
		DepositAddress: s.chain.DepositAddress(userID),
		ExpiresAt:      time.Now().Add(s.cfg.DepositRequestTTL),
	}
	if err := s.repo.CreateDepositRequest(ctx, req); err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"user":    userID,
		"amount":  amount.String(),
		"address": req.DepositAddress,
	}).Info("Создана заявка на депозит")

	return req, nil
}

// Withdraw выводит amount на адрес пользователя.
// Сумма списывается сразу; если блокчейн ответил неудачей —
// возвращается в той же операции завершения.
func (s *Service) Withdraw(ctx context.Context, userID int64, amount decimal.Decimal, toAddress string) (*Transaction, error) {
	enabled, err := s.settings.WithdrawalsEnabled(ctx)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения настроек: %w", err)
	}
	if !enabled {
		return nil, common.ErrWithdrawalsDisabled
	}

	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, common.ErrInvalidAmount
	}
	if amount.LessThan(decimal.NewFromFloat(s.cfg.MinWithdrawAmount)) {
		return nil, common.ErrBelowMinimum
	}

	amountStr := common.MoneyString(amount)
	txID, err := s.repo.DebitForWithdrawal(ctx, userID, amountStr, toAddress)
	if err != nil {
		return nil, err
	}

	result, err := s.chain.SendWithdrawal(ctx, toAddress, amount)
	if err != nil {
		log.WithError(err).WithField("user", userID).Error("Блокчейн отклонил вывод")
		result = &blockchain.SendResult{Success: false}
	}

	if err := s.repo.FinishWithdrawal(ctx, txID, userID, amountStr, result.Success, result.TxHash); err != nil {
		return nil, err
	}

	status := TxApproved
	if !result.Success {
		status = TxRejected
	} else {
		s.notifier.Send(ctx, fmt.Sprintf("Вывод: пользователь %d, %s, tx %s",
			userID, common.FormatAmount(amount, "USDT"), result.TxHash))
	}

	log.WithFields(log.Fields{
		"user":   userID,
		"amount": amount.String(),
		"status": status,
	}).Info("Вывод обработан")

	return &Transaction{
		ID:          txID,
		UserID:      userID,
		Type:        TxWithdrawal,
		Amount:      amount,
		UserAddress: toAddress,
		TxHash:      result.TxHash,
		Status:      status,
	}, nil
}

// MonitorPendingDeposits — один тик монитора депозитов.
// Просроченные заявки помечаются expired, остальные опрашиваются
// у блокчейна. Ошибка по одной заявке не прерывает обработку
// остальных — логируем и идём дальше.
func (s *Service) MonitorPendingDeposits(ctx context.Context) error {
	pending, err := s.repo.GetPendingDeposits(ctx)
	if err != nil {
		return err
	}
	if len(pending) == 0 {
		return nil
	}

	log.WithField("count", len(pending)).Debug("Проверка pending-депозитов")

	now := time.Now()
	for _, req := range pending {
		if now.After(req.ExpiresAt) {
			if err := s.repo.ExpireDeposit(ctx, req.ID); err != nil {
				log.WithError(err).WithField("request", req.ID).Error("Не удалось просрочить заявку")
			}
			continue
		}

		result, err := s.chain.CheckDeposit(ctx, req.DepositAddress, req.Amount)
		if err != nil {
			log.WithError(err).WithField("request", req.ID).Error("Ошибка проверки депозита")
			continue
		}
		if !result.Received {
			continue
		}

		err = s.repo.ConfirmDeposit(ctx, req.ID, req.TransactionID, req.UserID,
			common.MoneyString(result.Amount), result.TxHash)
		if err != nil {
			log.WithError(err).WithField("request", req.ID).Error("Не удалось подтвердить депозит")
			continue
		}

		log.WithFields(log.Fields{
			"user":   req.UserID,
			"amount": result.Amount.String(),
			"tx":     result.TxHash,
		}).Info("Депозит подтверждён")

		s.notifier.Send(ctx, fmt.Sprintf("Депозит: пользователь %d, %s, tx %s",
			req.UserID, common.FormatAmount(result.Amount, "USDT"), result.TxHash))
	}
	return nil
}

// GetTransactions возвращает историю транзакций пользователя.
func (s *Service) GetTransactions(ctx context.Context, userID int64) ([]*Transaction, error) {
	return s.repo.GetTransactions(ctx, userID, 50)
}

// GetAllTransactions — список транзакций для админки.
func (s *Service) GetAllTransactions(ctx context.Context) ([]*Transaction, error) {
	return s.repo.GetAllTransactions(ctx, 200)
}

// GetAllDepositRequests — список заявок для админки.
func (s *Service) GetAllDepositRequests(ctx context.Context) ([]*DepositRequest, error) {
	return s.repo.GetAllDepositRequests(ctx, 200)
}

// GetTotalDeposited — сумма подтверждённых депозитов для админки.
func (s *Service) GetTotalDeposited(ctx context.Context) (decimal.Decimal, error) {
	raw, err := s.repo.GetTotalDeposited(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	return common.ParseMoney(raw)
}

// sameDay сравнивает календарные даты двух моментов времени.
func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
