// Package app инициализирует все компоненты приложения.
// app.go — точка сборки: создаёт БД-пул, репозитории, сервисы,
// обработчики, роутер и планировщик задач.
package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"

	"rdxfarm.ru/backend/internal/api"
	"rdxfarm.ru/backend/internal/blockchain"
	"rdxfarm.ru/backend/internal/config"
	"rdxfarm.ru/backend/internal/db/postgres"
	"rdxfarm.ru/backend/internal/features/admin"
	"rdxfarm.ru/backend/internal/features/items"
	"rdxfarm.ru/backend/internal/features/referral"
	"rdxfarm.ru/backend/internal/features/rewards"
	"rdxfarm.ru/backend/internal/features/token"
	"rdxfarm.ru/backend/internal/features/users"
	"rdxfarm.ru/backend/internal/features/wallet"
	"rdxfarm.ru/backend/internal/jobs"
	"rdxfarm.ru/backend/internal/notify"
)

// App содержит все компоненты приложения.
type App struct {
	Router    http.Handler
	Scheduler *jobs.Scheduler
	DB        *pgxpool.Pool
}

// New создаёт и инициализирует приложение.
// Порядок инициализации важен — компоненты зависят друг от друга.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	// === 1. База данных ===
	pool, err := postgres.NewPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("ошибка подключения к БД: %w", err)
	}

	// Запускаем миграции
	if err := runMigrations(ctx, pool); err != nil {
		return nil, fmt.Errorf("ошибка миграций: %w", err)
	}

	// === 2. Внешние каналы ===
	chain := blockchain.NewWallet(cfg)

	notifier, err := notify.New(cfg.TelegramBotToken, cfg.AdminChatIDs)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания Telegram-нотификатора: %w", err)
	}

	// === 3. Репозитории ===
	usersRepo := users.NewRepository(pool)
	walletRepo := wallet.NewRepository(pool)
	itemsRepo := items.NewRepository(pool)
	rewardsRepo := rewards.NewRepository(pool)
	tokenRepo := token.NewRepository(pool)
	referralRepo := referral.NewRepository(pool)
	adminRepo := admin.NewRepository(pool)

	// === 4. Сервисы ===
	// Админ-сервис собирается первым: он источник переключателей
	// для кошелька и конвертации.
	adminService := admin.NewService(adminRepo, usersRepo, walletRepo, cfg)
	tokenService := token.NewService(tokenRepo, adminService, cfg)
	walletService := wallet.NewService(walletRepo, chain, adminService, notifier, cfg)
	itemsService := items.NewService(itemsRepo, cfg)
	rewardsService := rewards.NewService(rewardsRepo, tokenRepo)
	referralService := referral.NewService(referralRepo)
	usersService := users.NewService(usersRepo, referralService, walletService, cfg)

	// === 5. Обработчики ===
	handlers := &api.Handlers{
		Users:    users.NewHandler(usersService),
		Wallet:   wallet.NewHandler(walletService, tokenService),
		Items:    items.NewHandler(itemsService),
		Rewards:  rewards.NewHandler(rewardsService),
		Token:    token.NewHandler(tokenService),
		Referral: referral.NewHandler(referralService),
		Admin:    admin.NewHandler(adminService, walletService, tokenService),
	}

	// === 6. Роутер ===
	router := api.NewRouter(handlers, usersService)

	// === 7. Планировщик задач ===
	scheduler := jobs.NewScheduler(rewardsService, walletService, tokenService)

	log.Info("Приложение собрано")

	return &App{
		Router:    router,
		Scheduler: scheduler,
		DB:        pool,
	}, nil
}

// runMigrations выполняет все SQL-миграции.
func runMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	if err := postgres.EnsureMigrationsTable(ctx, pool); err != nil {
		return err
	}

	migrations := []struct {
		version int
		sql     string
	}{
		{1, migration001Users},
		{2, migration002Balances},
		{3, migration003Items},
		{4, migration004Pool},
		{5, migration005Transfers},
		{6, migration006Referrals},
		{7, migration007Admin},
	}

	for _, m := range migrations {
		if err := postgres.ExecMigrationSQL(ctx, pool, m.version, m.sql); err != nil {
			return fmt.Errorf("миграция %d: %w", m.version, err)
		}
		log.Infof("Миграция %d применена", m.version)
	}

	return nil
}

// SQL-миграции встроены в код для упрощения деплоя.

var migration001Users = `
CREATE TABLE IF NOT EXISTS users (
    id BIGSERIAL PRIMARY KEY,
    email VARCHAR(255) UNIQUE NOT NULL,
    name VARCHAR(255),
    password_hash VARCHAR(255) NOT NULL,
    role VARCHAR(20) NOT NULL DEFAULT 'user',
    referral_code_used VARCHAR(32),
    last_deposit_at TIMESTAMP,
    created_at TIMESTAMP DEFAULT NOW(),
    updated_at TIMESTAMP DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_users_email ON users(email);
CREATE INDEX IF NOT EXISTS idx_users_referral_code ON users(referral_code_used);

CREATE TABLE IF NOT EXISTS sessions (
    token VARCHAR(64) PRIMARY KEY,
    user_id BIGINT NOT NULL REFERENCES users(id),
    expires_at TIMESTAMP NOT NULL,
    created_at TIMESTAMP DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_sessions_user_id ON sessions(user_id);
CREATE INDEX IF NOT EXISTS idx_sessions_expires_at ON sessions(expires_at);
`

var migration002Balances = `
CREATE TABLE IF NOT EXISTS balances (
    user_id BIGINT PRIMARY KEY REFERENCES users(id),
    balance NUMERIC(20,8) NOT NULL DEFAULT 0,
    created_at TIMESTAMP DEFAULT NOW(),
    updated_at TIMESTAMP DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS rdx_balances (
    user_id BIGINT PRIMARY KEY REFERENCES users(id),
    rdx_balance NUMERIC(20,8) NOT NULL DEFAULT 0,
    created_at TIMESTAMP DEFAULT NOW(),
    updated_at TIMESTAMP DEFAULT NOW()
);
`

var migration003Items = `
CREATE TABLE IF NOT EXISTS user_items (
    id BIGSERIAL PRIMARY KEY,
    user_id BIGINT NOT NULL REFERENCES users(id),
    item_type VARCHAR(64) NOT NULL,
    purchase_price NUMERIC(20,8) NOT NULL,
    daily_profit NUMERIC(20,8) NOT NULL,
    lifespan INTEGER NOT NULL,
    purchased_at TIMESTAMP NOT NULL,
    expires_at TIMESTAMP NOT NULL,
    last_collected_at TIMESTAMP NOT NULL,
    created_at TIMESTAMP DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_user_items_user_id ON user_items(user_id);
CREATE INDEX IF NOT EXISTS idx_user_items_expires_at ON user_items(expires_at);
`

var migration004Pool = `
CREATE TABLE IF NOT EXISTS rdx_pool (
    id INTEGER PRIMARY KEY,
    total_in_circulation NUMERIC(20,8) NOT NULL DEFAULT 0,
    total_burned NUMERIC(20,8) NOT NULL DEFAULT 0,
    usdt_reserve NUMERIC(20,8) NOT NULL DEFAULT 0,
    updated_at TIMESTAMP DEFAULT NOW()
);
INSERT INTO rdx_pool (id) VALUES (1) ON CONFLICT (id) DO NOTHING;

CREATE TABLE IF NOT EXISTS rdx_price_history (
    id BIGSERIAL PRIMARY KEY,
    price NUMERIC(20,8) NOT NULL,
    total_supply NUMERIC(20,8) NOT NULL,
    created_at TIMESTAMP DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_price_history_created_at ON rdx_price_history(created_at DESC);
`

var migration005Transfers = `
CREATE TABLE IF NOT EXISTS conversions (
    id BIGSERIAL PRIMARY KEY,
    user_id BIGINT NOT NULL REFERENCES users(id),
    from_currency VARCHAR(10) NOT NULL,
    to_currency VARCHAR(10) NOT NULL,
    from_amount NUMERIC(20,8) NOT NULL,
    to_amount NUMERIC(20,8) NOT NULL,
    rate NUMERIC(20,8) NOT NULL,
    fee NUMERIC(20,8) NOT NULL,
    created_at TIMESTAMP DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_conversions_user_id ON conversions(user_id);
CREATE INDEX IF NOT EXISTS idx_conversions_created_at ON conversions(created_at DESC);

CREATE TABLE IF NOT EXISTS transactions (
    id BIGSERIAL PRIMARY KEY,
    user_id BIGINT NOT NULL REFERENCES users(id),
    type VARCHAR(20) NOT NULL,
    amount NUMERIC(20,8) NOT NULL,
    user_address VARCHAR(128) NOT NULL,
    tx_hash VARCHAR(128),
    status VARCHAR(20) NOT NULL DEFAULT 'pending',
    created_at TIMESTAMP DEFAULT NOW(),
    updated_at TIMESTAMP DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_transactions_user_id ON transactions(user_id);
CREATE INDEX IF NOT EXISTS idx_transactions_created_at ON transactions(created_at DESC);

CREATE TABLE IF NOT EXISTS deposit_requests (
    id BIGSERIAL PRIMARY KEY,
    user_id BIGINT NOT NULL REFERENCES users(id),
    transaction_id BIGINT NOT NULL REFERENCES transactions(id),
    amount NUMERIC(20,8) NOT NULL,
    user_address VARCHAR(128) NOT NULL,
    deposit_address VARCHAR(128) NOT NULL,
    status VARCHAR(20) NOT NULL DEFAULT 'pending',
    tx_hash VARCHAR(128),
    expires_at TIMESTAMP NOT NULL,
    created_at TIMESTAMP DEFAULT NOW(),
    updated_at TIMESTAMP DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_deposit_requests_status ON deposit_requests(status);
CREATE INDEX IF NOT EXISTS idx_deposit_requests_user_id ON deposit_requests(user_id);
`

var migration006Referrals = `
CREATE TABLE IF NOT EXISTS referral_codes (
    id BIGSERIAL PRIMARY KEY,
    user_id BIGINT UNIQUE NOT NULL REFERENCES users(id),
    code VARCHAR(32) UNIQUE NOT NULL,
    created_at TIMESTAMP DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_referral_codes_code ON referral_codes(code);
`

var migration007Admin = `
CREATE TABLE IF NOT EXISTS admin_settings (
    key VARCHAR(64) PRIMARY KEY,
    value BOOLEAN NOT NULL DEFAULT TRUE
);
INSERT INTO admin_settings (key, value) VALUES
    ('deposits_enabled', TRUE),
    ('withdrawals_enabled', TRUE),
    ('conversions_enabled', TRUE)
ON CONFLICT (key) DO NOTHING;

CREATE TABLE IF NOT EXISTS admin_login_attempts (
    id BIGSERIAL PRIMARY KEY,
    user_id BIGINT NOT NULL,
    success BOOLEAN NOT NULL,
    attempt_time TIMESTAMP DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_admin_attempts_user_time ON admin_login_attempts(user_id, attempt_time);
`
