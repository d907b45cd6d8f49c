// Package admin реализует админ-панель: проверку пароля с защитой
// от перебора, переключатели функций и сводную статистику.
package admin

import "time"

// Ключи переключателей в таблице admin_settings.
const (
	SettingDepositsEnabled    = "deposits_enabled"
	SettingWithdrawalsEnabled = "withdrawals_enabled"
	SettingConversionsEnabled = "conversions_enabled"
)

// Settings — текущее состояние переключателей.
type Settings struct {
	DepositsEnabled    bool `json:"depositsEnabled"`
	WithdrawalsEnabled bool `json:"withdrawalsEnabled"`
	ConversionsEnabled bool `json:"conversionsEnabled"`
}

// Stats — сводка для админ-панели.
type Stats struct {
	TotalUsers     int64     `json:"totalUsers"`
	TotalDeposited string    `json:"totalDeposited"`
	GeneratedAt    time.Time `json:"generatedAt"`
}
