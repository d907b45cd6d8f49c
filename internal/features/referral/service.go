package referral

import (
	"context"
	"strings"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// Service — логика реферальных кодов.
type Service struct {
	repo *Repository
}

// NewService создаёт сервис рефералов.
func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// GetOrCreateCode возвращает код пользователя, создавая его при первом
// обращении. Код — первые 8 символов UUID без дефисов, в верхнем регистре.
func (s *Service) GetOrCreateCode(ctx context.Context, userID int64) (*Code, error) {
	existing, err := s.repo.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	value := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	code, err := s.repo.Create(ctx, userID, value)
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"user": userID,
		"code": code.Code,
	}).Info("Создан реферальный код")

	return code, nil
}

// Exists проверяет код при регистрации нового пользователя.
func (s *Service) Exists(ctx context.Context, code string) (bool, error) {
	return s.repo.Exists(ctx, strings.ToUpper(strings.TrimSpace(code)))
}

// Stats возвращает статистику по коду пользователя.
func (s *Service) Stats(ctx context.Context, userID int64) (*Stats, error) {
	code, err := s.GetOrCreateCode(ctx, userID)
	if err != nil {
		return nil, err
	}
	invited, err := s.repo.CountInvited(ctx, code.Code)
	if err != nil {
		return nil, err
	}
	return &Stats{Code: code.Code, InvitedCount: invited, TotalEarned: "0"}, nil
}
