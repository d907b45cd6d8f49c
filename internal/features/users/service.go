// Package users — service.go содержит логику регистрации и сессий.
package users

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"rdxfarm.ru/backend/internal/common"
	"rdxfarm.ru/backend/internal/config"
)

// ReferralCodes проверяет существование реферального кода.
// Реализуется сервисом рефералов.
type ReferralCodes interface {
	Exists(ctx context.Context, code string) (bool, error)
}

// BalanceCreator создаёт нулевые балансы нового пользователя.
// Реализуется сервисом кошелька.
type BalanceCreator interface {
	EnsureBalances(ctx context.Context, userID int64) error
}

// Service управляет пользователями и сессиями.
type Service struct {
	repo      *Repository
	referrals ReferralCodes
	balances  BalanceCreator
	cfg       *config.Config
}

// NewService создаёт сервис пользователей.
func NewService(repo *Repository, referrals ReferralCodes, balances BalanceCreator, cfg *config.Config) *Service {
	return &Service{repo: repo, referrals: referrals, balances: balances, cfg: cfg}
}

// Register создаёт пользователя, его балансы и первую сессию.
// Неизвестный реферальный код отклоняется до создания пользователя.
func (s *Service) Register(ctx context.Context, email, password, name, referralCode string) (*User, *Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, nil, common.ErrInvalidEmail
	}
	if len(password) < 8 {
		return nil, nil, common.ErrWeakPassword
	}

	referralCode = strings.ToUpper(strings.TrimSpace(referralCode))
	if referralCode != "" {
		exists, err := s.referrals.Exists(ctx, referralCode)
		if err != nil {
			return nil, nil, err
		}
		if !exists {
			return nil, nil, common.ErrReferralNotFound
		}
	}

	hash, err := common.HashPassword(password)
	if err != nil {
		return nil, nil, err
	}

	user := &User{
		Email:            email,
		Name:             name,
		PasswordHash:     hash,
		Role:             RoleUser,
		ReferralCodeUsed: referralCode,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, nil, err
	}

	if err := s.balances.EnsureBalances(ctx, user.ID); err != nil {
		return nil, nil, err
	}

	session, err := s.newSession(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}

	log.WithFields(log.Fields{
		"user":  user.ID,
		"email": email,
	}).Info("Пользователь зарегистрирован")

	return user, session, nil
}

// Login проверяет учётные данные и выдаёт новую сессию.
func (s *Service) Login(ctx context.Context, email, password string) (*User, *Session, error) {
	user, err := s.repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		// Не раскрываем, существует ли email
		return nil, nil, common.ErrUnauthorized
	}
	if !common.VerifyPassword(password, user.PasswordHash) {
		return nil, nil, common.ErrUnauthorized
	}

	session, err := s.newSession(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}
	return user, session, nil
}

// Logout удаляет сессию.
func (s *Service) Logout(ctx context.Context, token string) error {
	return s.repo.DeleteSession(ctx, token)
}

// GetBySession возвращает владельца сессии (для middleware).
func (s *Service) GetBySession(ctx context.Context, token string) (*User, error) {
	return s.repo.GetUserBySession(ctx, token)
}

// GetByID возвращает пользователя по идентификатору.
func (s *Service) GetByID(ctx context.Context, id int64) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

// CountUsers — общее число пользователей для админки.
func (s *Service) CountUsers(ctx context.Context) (int64, error) {
	return s.repo.CountUsers(ctx)
}

func (s *Service) newSession(ctx context.Context, userID int64) (*Session, error) {
	session := &Session{
		Token:     uuid.NewString(),
		UserID:    userID,
		ExpiresAt: time.Now().Add(s.cfg.SessionTTL),
	}
	if err := s.repo.CreateSession(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}
