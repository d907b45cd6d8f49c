// Package admin — repository.go работает с таблицами admin_settings
// и admin_login_attempts.
package admin

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository работает с админ-таблицами.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository создаёт репозиторий.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// GetSetting возвращает значение переключателя.
// Отсутствующий ключ трактуется как включённый.
func (r *Repository) GetSetting(ctx context.Context, key string) (bool, error) {
	query := `SELECT value FROM admin_settings WHERE key = $1`
	var value bool
	err := r.db.QueryRow(ctx, query, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("ошибка чтения настройки %s: %w", key, err)
	}
	return value, nil
}

// SetSetting сохраняет значение переключателя.
func (r *Repository) SetSetting(ctx context.Context, key string, value bool) error {
	query := `
		INSERT INTO admin_settings (key, value)
		VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value
	`
	_, err := r.db.Exec(ctx, query, key, value)
	if err != nil {
		return fmt.Errorf("ошибка сохранения настройки %s: %w", key, err)
	}
	return nil
}

// LogAttempt записывает попытку входа.
func (r *Repository) LogAttempt(ctx context.Context, userID int64, success bool) error {
	query := `INSERT INTO admin_login_attempts (user_id, success) VALUES ($1, $2)`
	_, err := r.db.Exec(ctx, query, userID, success)
	return err
}

// GetRecentAttempts возвращает количество неудачных попыток за период.
func (r *Repository) GetRecentAttempts(ctx context.Context, userID int64, period time.Duration) (int, error) {
	since := time.Now().Add(-period)
	query := `
		SELECT COUNT(*) FROM admin_login_attempts
		WHERE user_id = $1 AND success = FALSE AND attempt_time >= $2
	`
	var count int
	err := r.db.QueryRow(ctx, query, userID, since).Scan(&count)
	return count, err
}
