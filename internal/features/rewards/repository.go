// Package rewards — repository.go выполняет начисление дохода в БД.
// Начисление одного пользователя — одна транзакция: предметы блокируются
// FOR UPDATE, поэтому параллельный тик и ручной collect не удваивают доход.
package rewards

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"rdxfarm.ru/backend/internal/common"
)

// Repository выполняет начисления наград.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository создаёт новый репозиторий начислений.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// GetUserIDsWithActiveItems возвращает пользователей, у которых есть
// хотя бы один неистёкший предмет — остальных тик не трогает.
func (r *Repository) GetUserIDsWithActiveItems(ctx context.Context, now time.Time) ([]int64, error) {
	rows, err := r.db.Query(ctx, `
		SELECT DISTINCT user_id FROM user_items WHERE expires_at > $1
	`, now)
	if err != nil {
		return nil, fmt.Errorf("ошибка выборки пользователей: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("ошибка сканирования user_id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// AccrueUser начисляет пользователю доход по всем неистёкшим предметам.
//
// В одной транзакции:
//  1. блокируем неистёкшие предметы FOR UPDATE;
//  2. считаем доход каждого с last_collected_at по now;
//  3. сдвигаем last_collected_at = now у ВСЕХ обработанных предметов,
//     даже если доход нулевой;
//  4. при положительном итоге кредитуем rdx_balances (upsert).
//
// Эмиссию пула обновляет вызывающая сторона: тик агрегирует всех
// пользователей в одно обновление.
func (r *Repository) AccrueUser(ctx context.Context, userID int64, now time.Time) (decimal.Decimal, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return decimal.Zero, fmt.Errorf("ошибка начала транзакции: %w", err)
	}
	defer tx.Rollback(ctx)

	rows, err := tx.Query(ctx, `
		SELECT id, daily_profit::text, last_collected_at
		FROM user_items
		WHERE user_id = $1 AND expires_at > $2
		FOR UPDATE
	`, userID, now)
	if err != nil {
		return decimal.Zero, fmt.Errorf("ошибка выборки предметов: %w", err)
	}

	total := decimal.Zero
	var processed []int64
	for rows.Next() {
		var id int64
		var profitRaw string
		var lastCollectedAt time.Time
		if err := rows.Scan(&id, &profitRaw, &lastCollectedAt); err != nil {
			rows.Close()
			return decimal.Zero, fmt.Errorf("ошибка сканирования предмета: %w", err)
		}
		profit, err := common.ParseMoney(profitRaw)
		if err != nil {
			rows.Close()
			return decimal.Zero, err
		}
		total = total.Add(Earned(profit, lastCollectedAt, now))
		processed = append(processed, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return decimal.Zero, fmt.Errorf("ошибка чтения предметов: %w", err)
	}

	if len(processed) == 0 {
		return decimal.Zero, tx.Commit(ctx)
	}

	_, err = tx.Exec(ctx, `
		UPDATE user_items SET last_collected_at = $2
		WHERE id = ANY($1)
	`, processed, now)
	if err != nil {
		return decimal.Zero, fmt.Errorf("ошибка сдвига last_collected_at: %w", err)
	}

	total = common.Round8(total)
	if total.IsPositive() {
		_, err = tx.Exec(ctx, `
			INSERT INTO rdx_balances (user_id, rdx_balance)
			VALUES ($1, $2)
			ON CONFLICT (user_id) DO UPDATE
			SET rdx_balance = rdx_balances.rdx_balance + EXCLUDED.rdx_balance,
			    updated_at = NOW()
		`, userID, common.MoneyString(total))
		if err != nil {
			return decimal.Zero, fmt.Errorf("ошибка начисления дохода: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return decimal.Zero, fmt.Errorf("ошибка фиксации транзакции: %w", err)
	}
	return total, nil
}
