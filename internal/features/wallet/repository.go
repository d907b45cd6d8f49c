// Package wallet — repository.go выполняет все операции с таблицами
// balances, rdx_balances, transactions и deposit_requests.
// Денежные операции идут в транзакциях БД с блокировкой FOR UPDATE,
// чтобы параллельные запросы одного пользователя не теряли обновления.
package wallet

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"rdxfarm.ru/backend/internal/common"
)

// Repository предоставляет методы для работы с кошельком.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository создаёт новый репозиторий кошелька.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// EnsureBalances гарантирует, что у пользователя есть записи обоих балансов.
// Вызывается при регистрации. Начальные балансы нулевые.
func (r *Repository) EnsureBalances(ctx context.Context, userID int64) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("ошибка начала транзакции: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO balances (user_id, balance) VALUES ($1, 0)
		ON CONFLICT (user_id) DO NOTHING
	`, userID)
	if err != nil {
		return fmt.Errorf("ошибка создания баланса USDT: %w", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO rdx_balances (user_id, rdx_balance) VALUES ($1, 0)
		ON CONFLICT (user_id) DO NOTHING
	`, userID)
	if err != nil {
		return fmt.Errorf("ошибка создания баланса RDX: %w", err)
	}

	return tx.Commit(ctx)
}

// GetBalances возвращает оба баланса пользователя.
// Отсутствующая строка RDX трактуется как ноль — она создаётся
// лениво при первом начислении.
func (r *Repository) GetBalances(ctx context.Context, userID int64) (*Balances, error) {
	query := `
		SELECT b.balance::text, COALESCE(rb.rdx_balance, 0)::text
		FROM balances b
		LEFT JOIN rdx_balances rb ON rb.user_id = b.user_id
		WHERE b.user_id = $1
	`
	var usdt, rdx string
	err := r.db.QueryRow(ctx, query, userID).Scan(&usdt, &rdx)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения балансов: %w", err)
	}

	b := &Balances{UserID: userID}
	if b.Balance, err = common.ParseMoney(usdt); err != nil {
		return nil, err
	}
	if b.RdxBalance, err = common.ParseMoney(rdx); err != nil {
		return nil, err
	}
	return b, nil
}

// GetLastDepositAt возвращает время последнего депозита пользователя.
// nil — депозитов ещё не было.
func (r *Repository) GetLastDepositAt(ctx context.Context, userID int64) (*time.Time, error) {
	var t *time.Time
	err := r.db.QueryRow(ctx,
		`SELECT last_deposit_at FROM users WHERE id = $1`, userID,
	).Scan(&t)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения last_deposit_at: %w", err)
	}
	return t, nil
}

// CreateDepositRequest создаёт заявку на депозит и pending-транзакцию.
// Обновление last_deposit_at входит в ту же транзакцию —
// правило «один депозит в день» не обходится параллельными запросами.
func (r *Repository) CreateDepositRequest(ctx context.Context, req *DepositRequest) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("ошибка начала транзакции: %w", err)
	}
	defer tx.Rollback(ctx)

	// Сначала транзакция аудита: заявка хранит её id,
	// чтобы подтверждение обновляло ровно эту запись
	err = tx.QueryRow(ctx, `
		INSERT INTO transactions (user_id, type, amount, user_address, status)
		VALUES ($1, 'deposit', $2, $3, 'pending')
		RETURNING id
	`, req.UserID, common.MoneyString(req.Amount), req.UserAddress,
	).Scan(&req.TransactionID)
	if err != nil {
		return fmt.Errorf("ошибка записи транзакции: %w", err)
	}

	err = tx.QueryRow(ctx, `
		INSERT INTO deposit_requests (user_id, transaction_id, amount, user_address, deposit_address, status, expires_at)
		VALUES ($1, $2, $3, $4, $5, 'pending', $6)
		RETURNING id, created_at, updated_at
	`, req.UserID, req.TransactionID, common.MoneyString(req.Amount),
		req.UserAddress, req.DepositAddress, req.ExpiresAt,
	).Scan(&req.ID, &req.CreatedAt, &req.UpdatedAt)
	if err != nil {
		return fmt.Errorf("ошибка создания заявки на депозит: %w", err)
	}

	_, err = tx.Exec(ctx, `
		UPDATE users SET last_deposit_at = NOW(), updated_at = NOW() WHERE id = $1
	`, req.UserID)
	if err != nil {
		return fmt.Errorf("ошибка обновления last_deposit_at: %w", err)
	}

	req.Status = DepositPending
	return tx.Commit(ctx)
}

// GetPendingDeposits возвращает все pending-заявки для монитора.
func (r *Repository) GetPendingDeposits(ctx context.Context) ([]*DepositRequest, error) {
	query := `
		SELECT id, user_id, transaction_id, amount::text, user_address, deposit_address,
		       status, COALESCE(tx_hash, ''), expires_at, created_at, updated_at
		FROM deposit_requests
		WHERE status = 'pending'
		ORDER BY created_at
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения pending-депозитов: %w", err)
	}
	defer rows.Close()

	var requests []*DepositRequest
	for rows.Next() {
		var d DepositRequest
		var amount, status string
		if err := rows.Scan(&d.ID, &d.UserID, &d.TransactionID, &amount, &d.UserAddress, &d.DepositAddress,
			&status, &d.TxHash, &d.ExpiresAt, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, fmt.Errorf("ошибка сканирования заявки: %w", err)
		}
		if d.Amount, err = common.ParseMoney(amount); err != nil {
			return nil, err
		}
		d.Status = DepositStatus(status)
		requests = append(requests, &d)
	}
	return requests, rows.Err()
}

// ConfirmDeposit подтверждает заявку и кредитует баланс пользователя.
// Одна транзакция: статус заявки, её pending-транзакция аудита
// (по transaction_id из заявки) и баланс меняются вместе.
// Сумма в аудите перезаписывается фактически пришедшей с блокчейна —
// она может отличаться от заявленной. Повторное подтверждение
// невозможно: заявка обновляется только из статуса pending.
func (r *Repository) ConfirmDeposit(ctx context.Context, requestID, transactionID, userID int64, amount, txHash string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("ошибка начала транзакции: %w", err)
	}
	defer tx.Rollback(ctx)

	res, err := tx.Exec(ctx, `
		UPDATE deposit_requests
		SET status = 'confirmed', tx_hash = $2, updated_at = NOW()
		WHERE id = $1 AND status = 'pending'
	`, requestID, txHash)
	if err != nil {
		return fmt.Errorf("ошибка подтверждения заявки: %w", err)
	}
	if res.RowsAffected() == 0 {
		// Заявку уже обработал параллельный тик
		return nil
	}

	_, err = tx.Exec(ctx, `
		UPDATE transactions
		SET status = 'approved', amount = $2, tx_hash = $3, updated_at = NOW()
		WHERE id = $1
	`, transactionID, amount, txHash)
	if err != nil {
		return fmt.Errorf("ошибка обновления транзакции: %w", err)
	}

	_, err = tx.Exec(ctx, `
		UPDATE balances
		SET balance = balance + $2, updated_at = NOW()
		WHERE user_id = $1
	`, userID, amount)
	if err != nil {
		return fmt.Errorf("ошибка зачисления депозита: %w", err)
	}

	return tx.Commit(ctx)
}

// ExpireDeposit помечает просроченную заявку.
func (r *Repository) ExpireDeposit(ctx context.Context, requestID int64) error {
	_, err := r.db.Exec(ctx, `
		UPDATE deposit_requests
		SET status = 'expired', updated_at = NOW()
		WHERE id = $1 AND status = 'pending'
	`, requestID)
	if err != nil {
		return fmt.Errorf("ошибка просрочки заявки: %w", err)
	}
	return nil
}

// DebitForWithdrawal списывает сумму вывода и создаёт pending-транзакцию.
// Проверка баланса — под блокировкой FOR UPDATE.
// Возвращает идентификатор транзакции для последующего FinishWithdrawal.
func (r *Repository) DebitForWithdrawal(ctx context.Context, userID int64, amount string, toAddress string) (int64, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("ошибка начала транзакции: %w", err)
	}
	defer tx.Rollback(ctx)

	var currentRaw string
	err = tx.QueryRow(ctx, `
		SELECT balance::text FROM balances WHERE user_id = $1 FOR UPDATE
	`, userID).Scan(&currentRaw)
	if errors.Is(err, pgx.ErrNoRows) {
		// Строки баланса ещё нет — выводить нечего
		return 0, common.ErrInsufficientBalance
	}
	if err != nil {
		return 0, fmt.Errorf("ошибка получения баланса: %w", err)
	}
	current, err := common.ParseMoney(currentRaw)
	if err != nil {
		return 0, err
	}
	need, err := common.ParseMoney(amount)
	if err != nil {
		return 0, err
	}
	if current.LessThan(need) {
		return 0, common.ErrInsufficientBalance
	}

	_, err = tx.Exec(ctx, `
		UPDATE balances SET balance = balance - $2, updated_at = NOW() WHERE user_id = $1
	`, userID, amount)
	if err != nil {
		return 0, fmt.Errorf("ошибка списания: %w", err)
	}

	var txID int64
	err = tx.QueryRow(ctx, `
		INSERT INTO transactions (user_id, type, amount, user_address, status)
		VALUES ($1, 'withdrawal', $2, $3, 'pending')
		RETURNING id
	`, userID, amount, toAddress).Scan(&txID)
	if err != nil {
		return 0, fmt.Errorf("ошибка записи транзакции: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("ошибка фиксации транзакции: %w", err)
	}
	return txID, nil
}

// FinishWithdrawal завершает вывод после ответа блокчейна.
// При неудаче списанная сумма возвращается на баланс в той же транзакции.
func (r *Repository) FinishWithdrawal(ctx context.Context, txID int64, userID int64, amount string, success bool, txHash string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("ошибка начала транзакции: %w", err)
	}
	defer tx.Rollback(ctx)

	if success {
		_, err = tx.Exec(ctx, `
			UPDATE transactions
			SET status = 'approved', tx_hash = $2, updated_at = NOW()
			WHERE id = $1
		`, txID, txHash)
		if err != nil {
			return fmt.Errorf("ошибка подтверждения вывода: %w", err)
		}
	} else {
		_, err = tx.Exec(ctx, `
			UPDATE transactions SET status = 'rejected', updated_at = NOW() WHERE id = $1
		`, txID)
		if err != nil {
			return fmt.Errorf("ошибка отклонения вывода: %w", err)
		}
		_, err = tx.Exec(ctx, `
			UPDATE balances SET balance = balance + $2, updated_at = NOW() WHERE user_id = $1
		`, userID, amount)
		if err != nil {
			return fmt.Errorf("ошибка возврата средств: %w", err)
		}
	}

	return tx.Commit(ctx)
}

// GetTransactions возвращает последние N транзакций пользователя.
func (r *Repository) GetTransactions(ctx context.Context, userID int64, limit int) ([]*Transaction, error) {
	query := `
		SELECT id, user_id, type, amount::text, user_address, COALESCE(tx_hash, ''), status, created_at, updated_at
		FROM transactions
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`
	rows, err := r.db.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения транзакций: %w", err)
	}
	defer rows.Close()
	return scanTransactions(rows)
}

// GetAllTransactions возвращает последние транзакции всех пользователей (админка).
func (r *Repository) GetAllTransactions(ctx context.Context, limit int) ([]*Transaction, error) {
	query := `
		SELECT id, user_id, type, amount::text, user_address, COALESCE(tx_hash, ''), status, created_at, updated_at
		FROM transactions
		ORDER BY created_at DESC
		LIMIT $1
	`
	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения транзакций: %w", err)
	}
	defer rows.Close()
	return scanTransactions(rows)
}

// GetAllDepositRequests возвращает последние заявки на депозит (админка).
func (r *Repository) GetAllDepositRequests(ctx context.Context, limit int) ([]*DepositRequest, error) {
	query := `
		SELECT id, user_id, transaction_id, amount::text, user_address, deposit_address,
		       status, COALESCE(tx_hash, ''), expires_at, created_at, updated_at
		FROM deposit_requests
		ORDER BY created_at DESC
		LIMIT $1
	`
	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения заявок: %w", err)
	}
	defer rows.Close()

	var requests []*DepositRequest
	for rows.Next() {
		var d DepositRequest
		var amount, status string
		if err := rows.Scan(&d.ID, &d.UserID, &d.TransactionID, &amount, &d.UserAddress, &d.DepositAddress,
			&status, &d.TxHash, &d.ExpiresAt, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, fmt.Errorf("ошибка сканирования заявки: %w", err)
		}
		if d.Amount, err = common.ParseMoney(amount); err != nil {
			return nil, err
		}
		d.Status = DepositStatus(status)
		requests = append(requests, &d)
	}
	return requests, rows.Err()
}

// GetTotalDeposited возвращает сумму всех подтверждённых депозитов (админка).
func (r *Repository) GetTotalDeposited(ctx context.Context) (string, error) {
	var total string
	err := r.db.QueryRow(ctx, `
		SELECT COALESCE(SUM(amount), 0)::text
		FROM transactions
		WHERE type = 'deposit' AND status = 'approved'
	`).Scan(&total)
	if err != nil {
		return "0", fmt.Errorf("ошибка подсчёта депозитов: %w", err)
	}
	return total, nil
}

func scanTransactions(rows pgx.Rows) ([]*Transaction, error) {
	var transactions []*Transaction
	for rows.Next() {
		var t Transaction
		var txType, amount, status string
		if err := rows.Scan(&t.ID, &t.UserID, &txType, &amount, &t.UserAddress,
			&t.TxHash, &status, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("ошибка сканирования транзакции: %w", err)
		}
		var err error
		if t.Amount, err = common.ParseMoney(amount); err != nil {
			return nil, err
		}
		t.Type = TransactionType(txType)
		t.Status = TransactionStatus(status)
		transactions = append(transactions, &t)
	}
	return transactions, rows.Err()
}
