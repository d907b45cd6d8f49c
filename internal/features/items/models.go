// Package items — models.go описывает купленные генераторы (леджер предметов).
package items

import (
	"time"

	"github.com/shopspring/decimal"
)

// OwnedItem — купленный генератор одного пользователя.
// Цена, доходность и срок жизни копируются из каталога в момент покупки:
// последующие правки каталога на купленные предметы не влияют.
//
// Жизненный цикл: Active (now < ExpiresAt) → Expired (начисления
// прекращаются, предмет остаётся продаваемым) → Sold (строка удалена).
// Обратных переходов нет.
type OwnedItem struct {
	ID              int64           `json:"id"`
	UserID          int64           `json:"userId"`
	ItemType        string          `json:"itemType"`
	PurchasePrice   decimal.Decimal `json:"purchasePrice"`
	DailyProfit     decimal.Decimal `json:"dailyProfit"`
	Lifespan        int             `json:"lifespan"` // в днях
	PurchasedAt     time.Time       `json:"purchasedAt"`
	ExpiresAt       time.Time       `json:"expiresAt"`
	LastCollectedAt time.Time       `json:"lastCollectedAt"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// Active сообщает, начисляет ли предмет доход в момент now.
func (i *OwnedItem) Active(now time.Time) bool {
	return now.Before(i.ExpiresAt)
}
