// Package referral реализует реферальные коды: создание личного кода
// и статистику приглашённых пользователей.
package referral

import "time"

// Code — реферальный код пользователя.
type Code struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	Code      string    `json:"code"`
	CreatedAt time.Time `json:"createdAt"`
}

// Stats — статистика по коду: сколько пользователей им воспользовались.
// TotalEarned пока всегда ноль: реферальные начисления не реализованы,
// поле сохранено ради формата ответа клиенту.
type Stats struct {
	Code         string `json:"code"`
	InvitedCount int64  `json:"invitedCount"`
	TotalEarned  string `json:"totalEarned"`
}
