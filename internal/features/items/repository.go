// Package items — repository.go выполняет все операции с таблицей user_items.
// Покупка и продажа — денежные операции: идут в транзакциях БД
// с блокировкой балансов FOR UPDATE.
package items

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"rdxfarm.ru/backend/internal/common"
)

// Repository предоставляет методы для работы с предметами.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository создаёт новый репозиторий предметов.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

const itemColumns = `
	id, user_id, item_type, purchase_price::text, daily_profit::text,
	lifespan, purchased_at, expires_at, last_collected_at, created_at
`

// PurchaseItem атомарно списывает цену с баланса USDT и создаёт предмет.
// Либо обе операции пройдут, либо ни одной.
func (r *Repository) PurchaseItem(ctx context.Context, item *OwnedItem) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("ошибка начала транзакции: %w", err)
	}
	defer tx.Rollback(ctx)

	// Блокируем баланс и проверяем достаточность средств
	var currentRaw string
	err = tx.QueryRow(ctx, `
		SELECT balance::text FROM balances WHERE user_id = $1 FOR UPDATE
	`, item.UserID).Scan(&currentRaw)
	if errors.Is(err, pgx.ErrNoRows) {
		// Строки баланса ещё нет — тратить нечего
		return common.ErrInsufficientBalance
	}
	if err != nil {
		return fmt.Errorf("ошибка получения баланса: %w", err)
	}
	current, err := common.ParseMoney(currentRaw)
	if err != nil {
		return err
	}
	if current.LessThan(item.PurchasePrice) {
		return common.ErrInsufficientBalance
	}

	_, err = tx.Exec(ctx, `
		UPDATE balances SET balance = balance - $2, updated_at = NOW() WHERE user_id = $1
	`, item.UserID, common.MoneyString(item.PurchasePrice))
	if err != nil {
		return fmt.Errorf("ошибка списания: %w", err)
	}

	err = tx.QueryRow(ctx, `
		INSERT INTO user_items (user_id, item_type, purchase_price, daily_profit, lifespan,
		                        purchased_at, expires_at, last_collected_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $6)
		RETURNING id, created_at
	`, item.UserID, item.ItemType,
		common.MoneyString(item.PurchasePrice), common.MoneyString(item.DailyProfit),
		item.Lifespan, item.PurchasedAt, item.ExpiresAt,
	).Scan(&item.ID, &item.CreatedAt)
	if err != nil {
		return fmt.Errorf("ошибка создания предмета: %w", err)
	}

	item.LastCollectedAt = item.PurchasedAt
	return tx.Commit(ctx)
}

// GetItem возвращает предмет пользователя.
// Чужой или несуществующий предмет — common.ErrItemNotFound.
func (r *Repository) GetItem(ctx context.Context, userID, itemID int64) (*OwnedItem, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+itemColumns+`
		FROM user_items
		WHERE id = $1 AND user_id = $2
	`, itemID, userID)

	item, err := scanItem(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, common.ErrItemNotFound
	}
	return item, err
}

// SellItem атомарно удаляет предмет и начисляет rdxCredit продавцу.
// Повторная продажа невозможна: DELETE с проверкой владельца
// вернёт ноль строк, и транзакция откатится с ErrItemNotFound.
func (r *Repository) SellItem(ctx context.Context, userID, itemID int64, rdxCredit string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("ошибка начала транзакции: %w", err)
	}
	defer tx.Rollback(ctx)

	res, err := tx.Exec(ctx, `
		DELETE FROM user_items WHERE id = $1 AND user_id = $2
	`, itemID, userID)
	if err != nil {
		return fmt.Errorf("ошибка удаления предмета: %w", err)
	}
	if res.RowsAffected() == 0 {
		return common.ErrItemNotFound
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO rdx_balances (user_id, rdx_balance)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE
		SET rdx_balance = rdx_balances.rdx_balance + EXCLUDED.rdx_balance,
		    updated_at = NOW()
	`, userID, rdxCredit)
	if err != nil {
		return fmt.Errorf("ошибка начисления RDX: %w", err)
	}

	// Начисленный RDX — новая эмиссия
	_, err = tx.Exec(ctx, `
		UPDATE rdx_pool
		SET total_in_circulation = total_in_circulation + $1, updated_at = NOW()
		WHERE id = 1
	`, rdxCredit)
	if err != nil {
		return fmt.Errorf("ошибка обновления эмиссии: %w", err)
	}

	return tx.Commit(ctx)
}

// GetItems возвращает все предметы пользователя (включая истёкшие).
func (r *Repository) GetItems(ctx context.Context, userID int64) ([]*OwnedItem, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+itemColumns+`
		FROM user_items
		WHERE user_id = $1
		ORDER BY purchased_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения предметов: %w", err)
	}
	defer rows.Close()
	return scanItems(rows)
}

// GetActiveItems возвращает только предметы с неистёкшим сроком жизни.
func (r *Repository) GetActiveItems(ctx context.Context, userID int64) ([]*OwnedItem, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+itemColumns+`
		FROM user_items
		WHERE user_id = $1 AND expires_at > NOW()
		ORDER BY purchased_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения активных предметов: %w", err)
	}
	defer rows.Close()
	return scanItems(rows)
}

func scanItem(row pgx.Row) (*OwnedItem, error) {
	var i OwnedItem
	var price, profit string
	err := row.Scan(&i.ID, &i.UserID, &i.ItemType, &price, &profit,
		&i.Lifespan, &i.PurchasedAt, &i.ExpiresAt, &i.LastCollectedAt, &i.CreatedAt)
	if err != nil {
		return nil, err
	}
	if i.PurchasePrice, err = common.ParseMoney(price); err != nil {
		return nil, err
	}
	if i.DailyProfit, err = common.ParseMoney(profit); err != nil {
		return nil, err
	}
	return &i, nil
}

func scanItems(rows pgx.Rows) ([]*OwnedItem, error) {
	var items []*OwnedItem
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("ошибка сканирования предмета: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
