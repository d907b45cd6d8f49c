// Package token — service.go содержит бизнес-логику экономики токена:
// расчёт цены, конвертация валют и админские операции с пулом.
package token

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"rdxfarm.ru/backend/internal/common"
	"rdxfarm.ru/backend/internal/config"
)

// SettingsSource отвечает, включена ли конвертация валют.
// Реализуется сервисом админки (флаг в admin_settings).
type SettingsSource interface {
	ConversionsEnabled(ctx context.Context) (bool, error)
}

// Service управляет экономикой токена RDX.
type Service struct {
	repo     *Repository
	settings SettingsSource
	curve    PriceCurve
	cfg      *config.Config
}

// NewService создаёт сервис экономики токена.
func NewService(repo *Repository, settings SettingsSource, cfg *config.Config) *Service {
	return &Service{
		repo:     repo,
		settings: settings,
		curve: PriceCurve{
			BasePrice: decimal.NewFromFloat(cfg.RdxBasePrice),
			Scale:     decimal.NewFromFloat(cfg.RdxScaleConstant),
		},
		cfg: cfg,
	}
}

// Curve возвращает параметры кривой цены (нужно движку начислений для логов).
func (s *Service) Curve() PriceCurve {
	return s.curve
}

// Price возвращает текущую спот-цену RDX.
// Цена каждый раз пересчитывается из пула — история не используется.
func (s *Service) Price(ctx context.Context) (decimal.Decimal, error) {
	pool, err := s.repo.GetPool(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	return s.curve.PriceAt(pool.TotalInCirculation), nil
}

// PoolStats возвращает текущее состояние пула.
func (s *Service) PoolStats(ctx context.Context) (*Pool, error) {
	return s.repo.GetPool(ctx)
}

// Convert конвертирует amount из валюты from в противоположную.
// Проверки:
//   - конвертация включена в admin_settings
//   - валюта известна
//   - сумма положительная и не меньше минимума
//   - на исходном балансе достаточно средств (внутри репозитория, FOR UPDATE)
func (s *Service) Convert(ctx context.Context, userID int64, from Currency, amount decimal.Decimal) (*Conversion, error) {
	enabled, err := s.settings.ConversionsEnabled(ctx)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения настроек: %w", err)
	}
	if !enabled {
		return nil, common.ErrConversionsDisabled
	}

	if !from.Valid() {
		return nil, fmt.Errorf("неизвестная валюта %q", from)
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, common.ErrInvalidAmount
	}
	if amount.LessThan(decimal.NewFromFloat(s.cfg.ConvertMinAmount)) {
		return nil, common.ErrBelowMinimum
	}

	price, err := s.Price(ctx)
	if err != nil {
		return nil, err
	}

	quote := MakeQuote(from, amount, decimal.NewFromFloat(s.cfg.ConvertFeeRate), price)
	conv, err := s.repo.ExecuteConversion(ctx, userID, quote)
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"user":   userID,
		"from":   quote.From,
		"amount": quote.Amount.String(),
		"result": quote.Result.String(),
		"rate":   quote.Rate.String(),
	}).Info("Конвертация выполнена")

	return conv, nil
}

// GetConversions возвращает историю конвертаций пользователя.
func (s *Service) GetConversions(ctx context.Context, userID int64) ([]*Conversion, error) {
	return s.repo.GetConversions(ctx, userID, 50)
}

// GetPriceHistory возвращает последние снимки цены для графика.
func (s *Service) GetPriceHistory(ctx context.Context, limit int) ([]*PriceSnapshot, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	return s.repo.GetPriceHistory(ctx, limit)
}

// SnapshotPrice записывает текущую цену в историю.
// Вызывается планировщиком раз в час, запись чисто наблюдательная.
func (s *Service) SnapshotPrice(ctx context.Context) error {
	pool, err := s.repo.GetPool(ctx)
	if err != nil {
		return err
	}
	price := s.curve.PriceAt(pool.TotalInCirculation)
	return s.repo.SavePriceSnapshot(ctx,
		common.MoneyString(price), common.MoneyString(pool.TotalInCirculation))
}

// --- Админские операции с пулом ---

// Mint увеличивает эмиссию без начисления кому-либо.
func (s *Service) Mint(ctx context.Context, amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return common.ErrInvalidAmount
	}
	if err := s.repo.AdjustCirculation(ctx, common.MoneyString(amount)); err != nil {
		return err
	}
	log.WithField("amount", amount.String()).Warn("Админ увеличил эмиссию RDX")
	return nil
}

// Burn переносит amount из эмиссии в счётчик сожжённого.
// Эмиссия и счётчик меняются согласованно — сожжённый токен
// перестаёт давить на цену.
func (s *Service) Burn(ctx context.Context, amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return common.ErrInvalidAmount
	}
	if err := s.repo.Burn(ctx, common.MoneyString(amount)); err != nil {
		return err
	}
	log.WithField("amount", amount.String()).Warn("Админ сжёг RDX")
	return nil
}

// SendToUser начисляет пользователю RDX из админки.
// Эмиссия увеличивается на ту же сумму — бухгалтерия сходится.
func (s *Service) SendToUser(ctx context.Context, userID int64, amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return common.ErrInvalidAmount
	}
	if err := s.repo.CreditRdx(ctx, userID, common.MoneyString(amount)); err != nil {
		return err
	}
	log.WithFields(log.Fields{
		"user":   userID,
		"amount": amount.String(),
	}).Warn("Админ начислил RDX пользователю")
	return nil
}
