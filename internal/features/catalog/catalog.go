// Package catalog содержит статический каталог генераторов энергии.
// Каталог фиксируется на момент деплоя: изменение значений здесь
// НЕ влияет на уже купленные предметы — цена, доходность и срок жизни
// копируются в user_items в момент покупки.
package catalog

import "github.com/shopspring/decimal"

// Generator — один тип генератора в каталоге.
type Generator struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Cost        decimal.Decimal `json:"cost"`        // цена покупки в USDT
	DailyProfit decimal.Decimal `json:"dailyProfit"` // доход в RDX за сутки
	Lifespan    int             `json:"lifespan"`    // срок жизни в днях
	TotalProfit decimal.Decimal `json:"totalProfit"` // справочно: доход за весь срок
	Icon        string          `json:"icon"`
}

// Generators — все 6 генераторов, от самого дешёвого к самому дорогому.
// Номинально dailyProfit * lifespan ≈ totalProfit, в рантайме это не проверяется.
var Generators = []Generator{
	{
		ID:          "catavento",
		Name:        "Catavento",
		Cost:        decimal.RequireFromString("0.5"),
		DailyProfit: decimal.RequireFromString("0.0208"),
		Lifespan:    30,
		TotalProfit: decimal.RequireFromString("0.625"),
		Icon:        "🌪️",
	},
	{
		ID:          "placa_solar",
		Name:        "Placa Solar",
		Cost:        decimal.RequireFromString("1"),
		DailyProfit: decimal.RequireFromString("0.0429"),
		Lifespan:    35,
		TotalProfit: decimal.RequireFromString("1.5"),
		Icon:        "☀️",
	},
	{
		ID:          "turbina_eolica",
		Name:        "Turbina Eólica",
		Cost:        decimal.RequireFromString("5"),
		DailyProfit: decimal.RequireFromString("0.21875"),
		Lifespan:    40,
		TotalProfit: decimal.RequireFromString("8.75"),
		Icon:        "💨",
	},
	{
		ID:          "usina_solar",
		Name:        "Usina Solar",
		Cost:        decimal.RequireFromString("25"),
		DailyProfit: decimal.RequireFromString("1"),
		Lifespan:    50,
		TotalProfit: decimal.RequireFromString("50"),
		Icon:        "🔆",
	},
	{
		ID:          "hidreletrica",
		Name:        "Hidrelétrica",
		Cost:        decimal.RequireFromString("100"),
		DailyProfit: decimal.RequireFromString("4.1667"),
		Lifespan:    60,
		TotalProfit: decimal.RequireFromString("250"),
		Icon:        "💧",
	},
	{
		ID:          "reator_nuclear",
		Name:        "Reator Nuclear",
		Cost:        decimal.RequireFromString("1000"),
		DailyProfit: decimal.RequireFromString("37.5"),
		Lifespan:    80,
		TotalProfit: decimal.RequireFromString("3000"),
		Icon:        "⚛️",
	},
}

// ByID возвращает генератор по идентификатору.
// Второе значение false, если такого генератора в каталоге нет.
func ByID(id string) (Generator, bool) {
	for _, g := range Generators {
		if g.ID == id {
			return g, true
		}
	}
	return Generator{}, false
}
