// Package common содержит общие утилиты, используемые во всём проекте.
// money.go — работа с денежными суммами: все балансы хранятся
// в NUMERIC(20,8), поэтому любое значение перед записью в БД
// округляется до 8 знаков после запятой.
package common

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// MoneyScale — число знаков после запятой для всех денежных значений.
// Совпадает со scale колонок NUMERIC(20,8) в схеме БД.
const MoneyScale = 8

// Round8 округляет сумму до 8 знаков после запятой.
// Применяется перед КАЖДОЙ записью денежного значения в БД,
// чтобы значение в Go совпадало со значением в колонке.
func Round8(d decimal.Decimal) decimal.Decimal {
	return d.Round(MoneyScale)
}

// ParseMoney разбирает денежную сумму из строки (тело запроса или колонка БД).
// Пустая строка трактуется как ноль — NUMERIC-колонки с DEFAULT 0
// у новых пользователей ещё не инициализированы записью.
func ParseMoney(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("некорректная сумма %q: %w", s, err)
	}
	return d, nil
}

// MoneyString сериализует сумму для записи в NUMERIC-колонку.
func MoneyString(d decimal.Decimal) string {
	return Round8(d).String()
}

// FormatAmount форматирует сумму с тикером валюты для логов и уведомлений.
// Пример: FormatAmount(decimal.NewFromInt(10), "USDT") → "10 USDT"
func FormatAmount(d decimal.Decimal, ticker string) string {
	return fmt.Sprintf("%s %s", d.String(), ticker)
}
