// Package rewards — accrual.go содержит чистую математику начисления дохода.
// Функции не ходят в БД и покрываются юнит-тестами без инфраструктуры.
package rewards

import (
	"time"

	"github.com/shopspring/decimal"

	"rdxfarm.ru/backend/internal/common"
)

// minutesPerDay — сутки в минутах; dailyProfit задан за сутки,
// а начисление идёт поминутно.
var minutesPerDay = decimal.NewFromInt(1440)

// Earned считает доход предмета за время с since по now.
//
// earned = dailyProfit * минуты(now - since) / 1440.
// Умножение до деления: за полные сутки начисляется ровно dailyProfit.
// Результат квантуется до 8 знаков — столько хранит NUMERIC(20,8).
// Время, прошедшее задом наперёд (часы перевели, запись из будущего),
// даёт ноль, а не отрицательное начисление.
func Earned(dailyProfit decimal.Decimal, since, now time.Time) decimal.Decimal {
	if !now.After(since) {
		return decimal.Zero
	}
	elapsedMinutes := decimal.NewFromFloat(now.Sub(since).Minutes())
	return common.Round8(dailyProfit.Mul(elapsedMinutes).Div(minutesPerDay))
}
