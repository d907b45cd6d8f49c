// Package admin — service.go содержит логику аутентификации администратора
// и управления переключателями функций.
package admin

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"

	"rdxfarm.ru/backend/internal/common"
	"rdxfarm.ru/backend/internal/config"
)

// Защита от brute-force: 3 неудачные попытки = блокировка на 1 час.
const (
	maxLoginAttempts = 3
	attemptsWindow   = 1 * time.Hour
)

// UserCounter отдаёт общее число пользователей.
// Реализуется репозиторием пользователей.
type UserCounter interface {
	CountUsers(ctx context.Context) (int64, error)
}

// DepositLedger отдаёт сумму всех подтверждённых депозитов.
// Реализуется репозиторием кошелька.
type DepositLedger interface {
	GetTotalDeposited(ctx context.Context) (string, error)
}

// Service управляет админ-панелью.
type Service struct {
	repo     *Repository
	users    UserCounter
	deposits DepositLedger
	cfg      *config.Config
}

// NewService создаёт сервис админ-панели.
func NewService(repo *Repository, users UserCounter, deposits DepositLedger, cfg *config.Config) *Service {
	return &Service{repo: repo, users: users, deposits: deposits, cfg: cfg}
}

// VerifyPassword проверяет пароль администратора по хешу Argon2id из конфига.
func (s *Service) VerifyPassword(ctx context.Context, userID int64, password string) error {
	// Проверяем лимит попыток
	attempts, err := s.repo.GetRecentAttempts(ctx, userID, attemptsWindow)
	if err != nil {
		return err
	}
	if attempts >= maxLoginAttempts {
		return common.ErrTooManyAttempts
	}

	match := common.VerifyPassword(password, s.cfg.AdminPasswordHash)

	// Логируем попытку
	if err := s.repo.LogAttempt(ctx, userID, match); err != nil {
		log.WithError(err).Error("Ошибка записи попытки входа")
	}

	if !match {
		return common.ErrWrongPassword
	}
	return nil
}

// GetSettings возвращает все переключатели.
func (s *Service) GetSettings(ctx context.Context) (*Settings, error) {
	deposits, err := s.repo.GetSetting(ctx, SettingDepositsEnabled)
	if err != nil {
		return nil, err
	}
	withdrawals, err := s.repo.GetSetting(ctx, SettingWithdrawalsEnabled)
	if err != nil {
		return nil, err
	}
	conversions, err := s.repo.GetSetting(ctx, SettingConversionsEnabled)
	if err != nil {
		return nil, err
	}
	return &Settings{
		DepositsEnabled:    deposits,
		WithdrawalsEnabled: withdrawals,
		ConversionsEnabled: conversions,
	}, nil
}

// SetSetting изменяет переключатель.
func (s *Service) SetSetting(ctx context.Context, key string, value bool) error {
	switch key {
	case SettingDepositsEnabled, SettingWithdrawalsEnabled, SettingConversionsEnabled:
	default:
		return common.ErrBadRequest
	}

	if err := s.repo.SetSetting(ctx, key, value); err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"key":   key,
		"value": value,
	}).Warn("Изменена настройка админ-панели")

	return nil
}

// DepositsEnabled — флаг для сервиса кошелька.
func (s *Service) DepositsEnabled(ctx context.Context) (bool, error) {
	return s.repo.GetSetting(ctx, SettingDepositsEnabled)
}

// WithdrawalsEnabled — флаг для сервиса кошелька.
func (s *Service) WithdrawalsEnabled(ctx context.Context) (bool, error) {
	return s.repo.GetSetting(ctx, SettingWithdrawalsEnabled)
}

// ConversionsEnabled — флаг для сервиса экономики токена.
func (s *Service) ConversionsEnabled(ctx context.Context) (bool, error) {
	return s.repo.GetSetting(ctx, SettingConversionsEnabled)
}

// GetStats собирает сводку для админ-панели.
func (s *Service) GetStats(ctx context.Context) (*Stats, error) {
	totalUsers, err := s.users.CountUsers(ctx)
	if err != nil {
		return nil, err
	}
	totalDeposited, err := s.deposits.GetTotalDeposited(ctx)
	if err != nil {
		return nil, err
	}
	return &Stats{
		TotalUsers:     totalUsers,
		TotalDeposited: totalDeposited,
		GeneratedAt:    time.Now(),
	}, nil
}
