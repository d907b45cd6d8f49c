// Package token — repository.go выполняет все операции с таблицами
// rdx_pool, conversions и rdx_price_history.
// Все денежные операции выполняются в транзакциях БД: баланс читается
// с блокировкой FOR UPDATE, поэтому параллельные конвертации
// одного пользователя не теряют обновления.
package token

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"rdxfarm.ru/backend/internal/common"
)

// Repository предоставляет методы для работы с пулом и конвертациями.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository создаёт новый репозиторий экономики токена.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// GetPool возвращает единственную запись rdx_pool.
// Запись создаётся миграцией, поэтому отсутствие строки — ошибка схемы.
func (r *Repository) GetPool(ctx context.Context) (*Pool, error) {
	query := `
		SELECT total_in_circulation::text, total_burned::text, usdt_reserve::text, updated_at
		FROM rdx_pool
		WHERE id = 1
	`
	var p Pool
	var circulation, burned, reserve string
	err := r.db.QueryRow(ctx, query).Scan(&circulation, &burned, &reserve, &p.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения пула RDX: %w", err)
	}
	if p.TotalInCirculation, err = common.ParseMoney(circulation); err != nil {
		return nil, err
	}
	if p.TotalBurned, err = common.ParseMoney(burned); err != nil {
		return nil, err
	}
	if p.UsdtReserve, err = common.ParseMoney(reserve); err != nil {
		return nil, err
	}
	return &p, nil
}

// AdjustCirculation изменяет эмиссию на delta (может быть отрицательной).
// Относительный UPDATE атомарен сам по себе, транзакция не нужна.
func (r *Repository) AdjustCirculation(ctx context.Context, delta string) error {
	_, err := r.db.Exec(ctx, `
		UPDATE rdx_pool
		SET total_in_circulation = total_in_circulation + $1, updated_at = NOW()
		WHERE id = 1
	`, delta)
	if err != nil {
		return fmt.Errorf("ошибка обновления эмиссии: %w", err)
	}
	return nil
}

// Burn переносит amount из эмиссии в счётчик сожжённого.
func (r *Repository) Burn(ctx context.Context, amount string) error {
	_, err := r.db.Exec(ctx, `
		UPDATE rdx_pool
		SET total_in_circulation = total_in_circulation - $1,
		    total_burned = total_burned + $1,
		    updated_at = NOW()
		WHERE id = 1
	`, amount)
	if err != nil {
		return fmt.Errorf("ошибка сжигания RDX: %w", err)
	}
	return nil
}

// CreditRdx начисляет RDX пользователю и увеличивает эмиссию.
// Атомарная операция: либо и баланс, и пул обновятся, либо ни одного.
func (r *Repository) CreditRdx(ctx context.Context, userID int64, amount string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("ошибка начала транзакции: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO rdx_balances (user_id, rdx_balance)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE
		SET rdx_balance = rdx_balances.rdx_balance + EXCLUDED.rdx_balance,
		    updated_at = NOW()
	`, userID, amount)
	if err != nil {
		return fmt.Errorf("ошибка начисления RDX: %w", err)
	}

	_, err = tx.Exec(ctx, `
		UPDATE rdx_pool
		SET total_in_circulation = total_in_circulation + $1, updated_at = NOW()
		WHERE id = 1
	`, amount)
	if err != nil {
		return fmt.Errorf("ошибка обновления эмиссии: %w", err)
	}

	return tx.Commit(ctx)
}

// ExecuteConversion исполняет рассчитанную конвертацию.
// В одной транзакции: проверка исходного баланса (FOR UPDATE),
// списание, зачисление, запись аудита и корректировка эмиссии.
func (r *Repository) ExecuteConversion(ctx context.Context, userID int64, q Quote) (*Conversion, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("ошибка начала транзакции: %w", err)
	}
	defer tx.Rollback(ctx)

	srcTable, srcColumn := balanceTable(q.From)
	dstTable, dstColumn := balanceTable(q.To)

	// Блокируем строку исходного баланса и проверяем достаточность средств
	var currentRaw string
	err = tx.QueryRow(ctx, fmt.Sprintf(`
		SELECT %s::text FROM %s WHERE user_id = $1 FOR UPDATE
	`, srcColumn, srcTable), userID).Scan(&currentRaw)
	if errors.Is(err, pgx.ErrNoRows) {
		// Строки баланса ещё нет — тратить нечего
		return nil, common.ErrInsufficientBalance
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения баланса: %w", err)
	}
	current, err := common.ParseMoney(currentRaw)
	if err != nil {
		return nil, err
	}
	if current.LessThan(q.Amount) {
		return nil, common.ErrInsufficientBalance
	}

	// Списываем исходную валюту целиком (включая комиссию)
	_, err = tx.Exec(ctx, fmt.Sprintf(`
		UPDATE %s SET %s = %s - $2, updated_at = NOW() WHERE user_id = $1
	`, srcTable, srcColumn, srcColumn), userID, common.MoneyString(q.Amount))
	if err != nil {
		return nil, fmt.Errorf("ошибка списания: %w", err)
	}

	// Зачисляем целевую валюту (upsert — строки может ещё не быть)
	_, err = tx.Exec(ctx, fmt.Sprintf(`
		INSERT INTO %s (user_id, %s)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE
		SET %s = %s.%s + EXCLUDED.%s, updated_at = NOW()
	`, dstTable, dstColumn, dstColumn, dstTable, dstColumn, dstColumn),
		userID, common.MoneyString(q.Result))
	if err != nil {
		return nil, fmt.Errorf("ошибка зачисления: %w", err)
	}

	// Записываем аудит конвертации
	var conv Conversion
	err = tx.QueryRow(ctx, `
		INSERT INTO conversions (user_id, from_currency, to_currency, from_amount, to_amount, rate, fee)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`, userID, string(q.From), string(q.To),
		common.MoneyString(q.Amount), common.MoneyString(q.Result),
		common.MoneyString(q.Rate), common.MoneyString(q.Fee),
	).Scan(&conv.ID, &conv.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("ошибка записи конвертации: %w", err)
	}

	// Корректируем эмиссию на чистую дельту RDX
	_, err = tx.Exec(ctx, `
		UPDATE rdx_pool
		SET total_in_circulation = total_in_circulation + $1, updated_at = NOW()
		WHERE id = 1
	`, common.MoneyString(q.CirculationDelta()))
	if err != nil {
		return nil, fmt.Errorf("ошибка обновления эмиссии: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("ошибка фиксации транзакции: %w", err)
	}

	conv.UserID = userID
	conv.FromCurrency = q.From
	conv.ToCurrency = q.To
	conv.FromAmount = q.Amount
	conv.ToAmount = q.Result
	conv.Rate = q.Rate
	conv.Fee = q.Fee
	return &conv, nil
}

// balanceTable возвращает таблицу и колонку баланса для валюты.
func balanceTable(c Currency) (table, column string) {
	switch c {
	case CurrencyRDX:
		return "rdx_balances", "rdx_balance"
	default:
		return "balances", "balance"
	}
}

// GetConversions возвращает последние N конвертаций пользователя.
func (r *Repository) GetConversions(ctx context.Context, userID int64, limit int) ([]*Conversion, error) {
	query := `
		SELECT id, user_id, from_currency, to_currency,
		       from_amount::text, to_amount::text, rate::text, fee::text, created_at
		FROM conversions
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`
	rows, err := r.db.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения конвертаций: %w", err)
	}
	defer rows.Close()

	var conversions []*Conversion
	for rows.Next() {
		var c Conversion
		var from, to, fromAmt, toAmt, rate, fee string
		if err := rows.Scan(&c.ID, &c.UserID, &from, &to, &fromAmt, &toAmt, &rate, &fee, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("ошибка сканирования конвертации: %w", err)
		}
		c.FromCurrency, c.ToCurrency = Currency(from), Currency(to)
		if c.FromAmount, err = common.ParseMoney(fromAmt); err != nil {
			return nil, err
		}
		if c.ToAmount, err = common.ParseMoney(toAmt); err != nil {
			return nil, err
		}
		if c.Rate, err = common.ParseMoney(rate); err != nil {
			return nil, err
		}
		if c.Fee, err = common.ParseMoney(fee); err != nil {
			return nil, err
		}
		conversions = append(conversions, &c)
	}
	return conversions, rows.Err()
}

// SavePriceSnapshot добавляет наблюдательную запись в историю цены.
func (r *Repository) SavePriceSnapshot(ctx context.Context, price, totalSupply string) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO rdx_price_history (price, total_supply)
		VALUES ($1, $2)
	`, price, totalSupply)
	if err != nil {
		return fmt.Errorf("ошибка записи снимка цены: %w", err)
	}
	return nil
}

// GetPriceHistory возвращает последние N снимков цены (новые первыми).
func (r *Repository) GetPriceHistory(ctx context.Context, limit int) ([]*PriceSnapshot, error) {
	query := `
		SELECT id, price::text, total_supply::text, created_at
		FROM rdx_price_history
		ORDER BY created_at DESC
		LIMIT $1
	`
	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения истории цены: %w", err)
	}
	defer rows.Close()

	var snapshots []*PriceSnapshot
	for rows.Next() {
		var s PriceSnapshot
		var price, supply string
		if err := rows.Scan(&s.ID, &price, &supply, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("ошибка сканирования снимка цены: %w", err)
		}
		if s.Price, err = common.ParseMoney(price); err != nil {
			return nil, err
		}
		if s.TotalSupply, err = common.ParseMoney(supply); err != nil {
			return nil, err
		}
		snapshots = append(snapshots, &s)
	}
	return snapshots, rows.Err()
}
