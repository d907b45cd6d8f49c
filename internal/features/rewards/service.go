// Package rewards — service.go содержит движок начисления наград:
// фоновый тик по всем пользователям и ручной сбор по запросу.
package rewards

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"rdxfarm.ru/backend/internal/common"
)

// PoolLedger обновляет эмиссию RDX в глобальном пуле.
// Реализуется репозиторием экономики токена.
type PoolLedger interface {
	AdjustCirculation(ctx context.Context, delta string) error
}

// Service — движок начисления наград.
type Service struct {
	repo *Repository
	pool PoolLedger
}

// NewService создаёт движок начисления.
func NewService(repo *Repository, pool PoolLedger) *Service {
	return &Service{repo: repo, pool: pool}
}

// RunAccrualTick — один фоновый тик начисления.
// Начисляет доход всем пользователям с активными предметами.
// Ошибка по одному пользователю логируется и не прерывает остальных;
// эмиссия пула увеличивается одним обновлением на весь тик.
func (s *Service) RunAccrualTick(ctx context.Context) error {
	now := time.Now()

	userIDs, err := s.repo.GetUserIDsWithActiveItems(ctx, now)
	if err != nil {
		return err
	}
	if len(userIDs) == 0 {
		return nil
	}

	log.WithField("users", len(userIDs)).Debug("Начисление дохода")

	tickTotal := decimal.Zero
	for _, userID := range userIDs {
		earned, err := s.repo.AccrueUser(ctx, userID, now)
		if err != nil {
			log.WithError(err).WithField("user", userID).Error("Ошибка начисления пользователю")
			continue
		}
		if earned.IsPositive() {
			tickTotal = tickTotal.Add(earned)
			log.WithFields(log.Fields{
				"user":   userID,
				"earned": earned.String(),
			}).Debug("Доход начислен")
		}
	}

	if tickTotal.IsPositive() {
		if err := s.pool.AdjustCirculation(ctx, common.MoneyString(tickTotal)); err != nil {
			return err
		}
		log.WithField("total", tickTotal.String()).Info("Эмиссия увеличена тиком начисления")
	}
	return nil
}

// Collect — ручной сбор наград одного пользователя.
// Та же формула, что у тика: доход считается с last_collected_at,
// после чего отметка сдвигается. Повторный вызов сразу после первого
// начислит ≈0 — двойного счёта нет. Без активных предметов вернёт ноль.
func (s *Service) Collect(ctx context.Context, userID int64) (decimal.Decimal, error) {
	collected, err := s.repo.AccrueUser(ctx, userID, time.Now())
	if err != nil {
		return decimal.Zero, err
	}

	if collected.IsPositive() {
		if err := s.pool.AdjustCirculation(ctx, common.MoneyString(collected)); err != nil {
			return decimal.Zero, err
		}
	}

	log.WithFields(log.Fields{
		"user":      userID,
		"collected": collected.String(),
	}).Info("Награды собраны")

	return collected, nil
}
