// Package token — models.go описывает структуры экономики токена RDX:
// валюты, глобальный пул эмиссии, записи конвертаций и снимки цены.
package token

import (
	"time"

	"github.com/shopspring/decimal"
)

// Currency — одна из двух валют системы.
// Валюта всегда сравнивается через switch по константам,
// а не через сравнение произвольных строк.
type Currency string

const (
	// CurrencyUSDT — основная валюта (депозиты и выводы)
	CurrencyUSDT Currency = "USDT"
	// CurrencyRDX — внутриигровой токен с плавающей ценой
	CurrencyRDX Currency = "RDX"
)

// Valid проверяет, что валюта — одна из двух известных.
func (c Currency) Valid() bool {
	switch c {
	case CurrencyUSDT, CurrencyRDX:
		return true
	}
	return false
}

// Other возвращает противоположную валюту пары.
func (c Currency) Other() Currency {
	if c == CurrencyUSDT {
		return CurrencyRDX
	}
	return CurrencyUSDT
}

// Pool — единственная глобальная запись rdx_pool.
// TotalInCirculation растёт при любом начислении RDX пользователям
// (аккрут, продажа генератора, конвертация USDT→RDX, админский mint)
// и уменьшается при конвертации RDX→USDT и при burn.
type Pool struct {
	TotalInCirculation decimal.Decimal `json:"totalInCirculation"`
	TotalBurned        decimal.Decimal `json:"totalBurned"`
	UsdtReserve        decimal.Decimal `json:"usdtReserve"`
	UpdatedAt          time.Time       `json:"updatedAt"`
}

// Conversion — неизменяемая запись аудита одной конвертации.
type Conversion struct {
	ID           int64           `json:"id"`
	UserID       int64           `json:"userId"`
	FromCurrency Currency        `json:"fromCurrency"`
	ToCurrency   Currency        `json:"toCurrency"`
	FromAmount   decimal.Decimal `json:"fromAmount"`
	ToAmount     decimal.Decimal `json:"toAmount"`
	Rate         decimal.Decimal `json:"rate"` // цена RDX в момент конвертации
	Fee          decimal.Decimal `json:"fee"`  // комиссия в исходной валюте
	CreatedAt    time.Time       `json:"createdAt"`
}

// PriceSnapshot — наблюдательная запись rdx_price_history.
// Авторитетная цена ВСЕГДА пересчитывается из текущего пула,
// история служит только для графика на клиенте.
type PriceSnapshot struct {
	ID          int64           `json:"id"`
	Price       decimal.Decimal `json:"price"`
	TotalSupply decimal.Decimal `json:"totalSupply"`
	CreatedAt   time.Time       `json:"createdAt"`
}
