// Package users — repository.go выполняет все операции с таблицами users и sessions.
package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"rdxfarm.ru/backend/internal/common"
)

// Repository предоставляет методы для работы с пользователями.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository создаёт новый репозиторий пользователей.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

const userColumns = `
	id, email, COALESCE(name, ''), password_hash, role,
	COALESCE(referral_code_used, ''), last_deposit_at, created_at, updated_at
`

// Create добавляет нового пользователя.
// Повторный email — common.ErrEmailTaken (unique violation 23505).
func (r *Repository) Create(ctx context.Context, u *User) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO users (email, name, password_hash, role, referral_code_used)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''))
		RETURNING id, created_at, updated_at
	`, u.Email, u.Name, u.PasswordHash, string(u.Role), u.ReferralCodeUsed,
	).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return common.ErrEmailTaken
		}
		return fmt.Errorf("ошибка создания пользователя: %w", err)
	}
	return nil
}

// GetByEmail возвращает пользователя по email.
func (r *Repository) GetByEmail(ctx context.Context, email string) (*User, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+userColumns+` FROM users WHERE email = $1
	`, email)
	return scanUser(row)
}

// GetByID возвращает пользователя по идентификатору.
func (r *Repository) GetByID(ctx context.Context, id int64) (*User, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+userColumns+` FROM users WHERE id = $1
	`, id)
	return scanUser(row)
}

// CountUsers возвращает общее число пользователей (админка).
func (r *Repository) CountUsers(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return 0, fmt.Errorf("ошибка подсчёта пользователей: %w", err)
	}
	return count, nil
}

// CreateSession сохраняет новую сессию.
func (r *Repository) CreateSession(ctx context.Context, s *Session) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO sessions (token, user_id, expires_at)
		VALUES ($1, $2, $3)
	`, s.Token, s.UserID, s.ExpiresAt)
	if err != nil {
		return fmt.Errorf("ошибка создания сессии: %w", err)
	}
	return nil
}

// GetUserBySession возвращает владельца живой сессии.
// Истёкшая или неизвестная сессия — common.ErrUnauthorized.
// Колонки квалифицированы: created_at есть и в users, и в sessions.
func (r *Repository) GetUserBySession(ctx context.Context, token string) (*User, error) {
	row := r.db.QueryRow(ctx, `
		SELECT u.id, u.email, COALESCE(u.name, ''), u.password_hash, u.role,
		       COALESCE(u.referral_code_used, ''), u.last_deposit_at, u.created_at, u.updated_at
		FROM users u
		JOIN sessions s ON s.user_id = u.id
		WHERE s.token = $1 AND s.expires_at > NOW()
	`, token)

	u, err := scanUser(row)
	if errors.Is(err, common.ErrUserNotFound) {
		return nil, common.ErrUnauthorized
	}
	return u, err
}

// DeleteSession удаляет сессию (logout).
func (r *Repository) DeleteSession(ctx context.Context, token string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM sessions WHERE token = $1`, token)
	if err != nil {
		return fmt.Errorf("ошибка удаления сессии: %w", err)
	}
	return nil
}

func scanUser(row pgx.Row) (*User, error) {
	var u User
	var role string
	var refCode string
	err := row.Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &role,
		&refCode, &u.LastDepositAt, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, common.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка сканирования пользователя: %w", err)
	}
	u.Role = Role(role)
	u.ReferralCodeUsed = refCode
	return &u, nil
}
