package referral

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository — доступ к таблице referral_codes.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository создаёт репозиторий реферальных кодов.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// GetByUser возвращает код пользователя или nil, если код ещё не создан.
func (r *Repository) GetByUser(ctx context.Context, userID int64) (*Code, error) {
	var code Code
	err := r.pool.QueryRow(ctx, `
		SELECT id, user_id, code, created_at
		FROM referral_codes
		WHERE user_id = $1`,
		userID,
	).Scan(&code.ID, &code.UserID, &code.Code, &code.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка получения реферального кода: %w", err)
	}
	return &code, nil
}

// Create сохраняет код пользователя. Повторный вызов возвращает
// существующую запись (ON CONFLICT по user_id).
func (r *Repository) Create(ctx context.Context, userID int64, value string) (*Code, error) {
	var code Code
	err := r.pool.QueryRow(ctx, `
		INSERT INTO referral_codes (user_id, code)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE SET user_id = EXCLUDED.user_id
		RETURNING id, user_id, code, created_at`,
		userID, value,
	).Scan(&code.ID, &code.UserID, &code.Code, &code.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания реферального кода: %w", err)
	}
	return &code, nil
}

// Exists проверяет, существует ли код.
func (r *Repository) Exists(ctx context.Context, value string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM referral_codes WHERE code = $1)`,
		value,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("ошибка проверки реферального кода: %w", err)
	}
	return exists, nil
}

// CountInvited считает пользователей, зарегистрировавшихся по коду.
func (r *Repository) CountInvited(ctx context.Context, value string) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM users WHERE referral_code_used = $1`,
		value,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("ошибка подсчёта приглашённых: %w", err)
	}
	return count, nil
}
