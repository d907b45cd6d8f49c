// Package config загружает конфигурацию сервера из переменных окружения.
// Используется envconfig для маппинга переменных окружения на поля структуры.
package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config содержит ВСЕ настройки приложения.
type Config struct {
	// --- HTTP ---
	HTTPAddr string `envconfig:"HTTP_ADDR" default:":8080"`

	// --- Database ---
	// В Docker внутри контейнера "localhost" почти всегда неправильно.
	// Дефолт ставим "postgres" (имя сервиса в docker-compose), а для локалки переопределяй DB_HOST=localhost.
	DBHost     string `envconfig:"DB_HOST" default:"postgres"`
	DBPort     int    `envconfig:"DB_PORT" default:"5432"`
	DBUser     string `envconfig:"DB_USER" default:"rdxfarm"`
	DBPassword string `envconfig:"DB_PASSWORD" required:"true"`
	DBName     string `envconfig:"DB_NAME" default:"rdxfarm"`
	DBSSLMode  string `envconfig:"DB_SSLMODE" default:"disable"`
	DBMaxConns int32  `envconfig:"DB_MAX_CONNS" default:"25"`
	DBMinConns int32  `envconfig:"DB_MIN_CONNS" default:"5"`

	// --- Application ---
	AppEnv      string `envconfig:"APP_ENV" default:"development"`
	AppLogLevel string `envconfig:"APP_LOG_LEVEL" default:"debug"`

	// --- Admin ---
	AdminPasswordHash string `envconfig:"ADMIN_PASSWORD_HASH" required:"true"`

	// --- Sessions ---
	SessionTTL time.Duration `envconfig:"SESSION_TTL" default:"24h"`

	// --- Экономика RDX ---
	// Базовая цена токена при нулевой эмиссии (USDT за 1 RDX)
	RdxBasePrice float64 `envconfig:"RDX_BASE_PRICE" default:"0.001"`
	// Масштаб кривой цены: при такой эмиссии цена падает вдвое
	RdxScaleConstant float64 `envconfig:"RDX_SCALE_CONSTANT" default:"1000000"`
	// Номинальный курс RDX за 1 USDT, используется при продаже генераторов
	RdxNominalRate float64 `envconfig:"RDX_NOMINAL_RATE" default:"1000"`

	// --- Конвертация ---
	ConvertFeeRate   float64 `envconfig:"CONVERT_FEE_RATE" default:"0.01"`
	ConvertMinAmount float64 `envconfig:"CONVERT_MIN_AMOUNT" default:"0.1"`

	// --- Генераторы ---
	// Доля цены покупки, возвращаемая при продаже генератора
	SellFraction float64 `envconfig:"SELL_FRACTION" default:"0.5"`

	// --- Депозиты и выводы ---
	MinDepositAmount  float64       `envconfig:"MIN_DEPOSIT_AMOUNT" default:"1"`
	MinWithdrawAmount float64       `envconfig:"MIN_WITHDRAW_AMOUNT" default:"1"`
	DepositRequestTTL time.Duration `envconfig:"DEPOSIT_REQUEST_TTL" default:"1h"`

	// --- Blockchain ---
	// Seed для детерминированной генерации депозитных адресов
	BlockchainSeed string `envconfig:"BLOCKCHAIN_SEED" default:"dev-seed"`

	// --- Telegram-уведомления (опционально) ---
	// Если токен пустой — уведомления отключены
	TelegramBotToken string  `envconfig:"TELEGRAM_BOT_TOKEN" default:""`
	AdminChatIDsRaw  string  `envconfig:"ADMIN_CHAT_IDS" default:""`
	AdminChatIDs     []int64 `envconfig:"-"` // заполним вручную
}

// DatabaseDSN возвращает строку подключения к PostgreSQL в формате DSN.
func (c *Config) DatabaseDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode,
	)
}

func (c *Config) Validate() error {
	if c.DBMaxConns <= 0 || c.DBMinConns < 0 || c.DBMinConns > c.DBMaxConns {
		return fmt.Errorf("некорректные DB_MIN_CONNS/DB_MAX_CONNS")
	}
	if c.RdxBasePrice <= 0 {
		return fmt.Errorf("RDX_BASE_PRICE должен быть > 0")
	}
	if c.RdxScaleConstant <= 0 {
		return fmt.Errorf("RDX_SCALE_CONSTANT должен быть > 0")
	}
	if c.RdxNominalRate <= 0 {
		return fmt.Errorf("RDX_NOMINAL_RATE должен быть > 0")
	}
	if c.ConvertFeeRate < 0 || c.ConvertFeeRate >= 1 {
		return fmt.Errorf("CONVERT_FEE_RATE должен быть в диапазоне [0, 1)")
	}
	if c.SellFraction <= 0 || c.SellFraction > 1 {
		return fmt.Errorf("SELL_FRACTION должен быть в диапазоне (0, 1]")
	}
	if c.TelegramBotToken != "" && len(c.AdminChatIDs) == 0 {
		return fmt.Errorf("TELEGRAM_BOT_TOKEN задан, но ADMIN_CHAT_IDS пуст")
	}
	return nil
}

// Load читает переменные окружения и заполняет структуру Config.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("не удалось загрузить конфигурацию: %w", err)
	}

	ids, err := parseInt64CSV(cfg.AdminChatIDsRaw)
	if err != nil {
		return nil, fmt.Errorf("ADMIN_CHAT_IDS parse: %w", err)
	}
	cfg.AdminChatIDs = ids

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func parseInt64CSV(s string) ([]int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	out := make([]int64, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		v, err := strconv.ParseInt(p, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("bad int64 %q: %w", p, err)
		}
		out = append(out, v)
	}
	return out, nil
}
