// Package items — service.go содержит бизнес-логику леджера предметов:
// покупку генераторов из каталога и продажу за RDX.
package items

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"rdxfarm.ru/backend/internal/common"
	"rdxfarm.ru/backend/internal/config"
	"rdxfarm.ru/backend/internal/features/catalog"
)

// Service управляет леджером предметов.
type Service struct {
	repo *Repository
	cfg  *config.Config
}

// NewService создаёт сервис предметов.
func NewService(repo *Repository, cfg *config.Config) *Service {
	return &Service{repo: repo, cfg: cfg}
}

// Purchase покупает генератор generatorID для пользователя.
// Параметры генератора копируются из каталога, срок жизни отсчитывается
// от момента покупки. Списание и создание предмета атомарны.
func (s *Service) Purchase(ctx context.Context, userID int64, generatorID string) (*OwnedItem, error) {
	gen, ok := catalog.ByID(generatorID)
	if !ok {
		return nil, common.ErrGeneratorNotFound
	}

	item := NewOwnedItem(userID, gen, time.Now())
	if err := s.repo.PurchaseItem(ctx, item); err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"user":      userID,
		"generator": gen.ID,
		"cost":      gen.Cost.String(),
	}).Info("Генератор куплен")

	return item, nil
}

// NewOwnedItem собирает предмет из записи каталога на момент покупки.
// Цена, доходность и срок жизни копируются: изменение каталога
// не трогает уже купленные предметы. Срок жизни — lifespan суток
// от момента покупки.
func NewOwnedItem(userID int64, gen catalog.Generator, purchasedAt time.Time) *OwnedItem {
	return &OwnedItem{
		UserID:        userID,
		ItemType:      gen.ID,
		PurchasePrice: gen.Cost,
		DailyProfit:   gen.DailyProfit,
		Lifespan:      gen.Lifespan,
		PurchasedAt:   purchasedAt,
		ExpiresAt:     purchasedAt.Add(time.Duration(gen.Lifespan) * 24 * time.Hour),
	}
}

// Sell продаёт предмет за RDX и удаляет его из леджера.
// Цена продажи — фиксированная доля цены покупки, пересчитанная
// в RDX по номинальному курсу. Прошедшее время и остаток срока жизни
// на цену НЕ влияют; истёкший предмет продаётся так же.
func (s *Service) Sell(ctx context.Context, userID, itemID int64) (decimal.Decimal, error) {
	item, err := s.repo.GetItem(ctx, userID, itemID)
	if err != nil {
		return decimal.Zero, err
	}

	credit := SellCredit(item.PurchasePrice,
		decimal.NewFromFloat(s.cfg.SellFraction),
		decimal.NewFromFloat(s.cfg.RdxNominalRate))

	if err := s.repo.SellItem(ctx, userID, itemID, common.MoneyString(credit)); err != nil {
		return decimal.Zero, err
	}

	log.WithFields(log.Fields{
		"user":   userID,
		"item":   itemID,
		"credit": credit.String(),
	}).Info("Генератор продан")

	return credit, nil
}

// SellCredit считает сумму RDX за продажу предмета.
// purchasePrice * fraction (USDT) * nominalRate (RDX за USDT).
func SellCredit(purchasePrice, fraction, nominalRate decimal.Decimal) decimal.Decimal {
	return common.Round8(purchasePrice.Mul(fraction).Mul(nominalRate))
}

// GetItems возвращает все предметы пользователя.
func (s *Service) GetItems(ctx context.Context, userID int64) ([]*OwnedItem, error) {
	return s.repo.GetItems(ctx, userID)
}

// GetActiveItems возвращает предметы, которые ещё начисляют доход.
func (s *Service) GetActiveItems(ctx context.Context, userID int64) ([]*OwnedItem, error) {
	return s.repo.GetActiveItems(ctx, userID)
}
