// Package notify отправляет служебные уведомления администраторам
// в Telegram. Канал опциональный: без токена бота уведомления
// просто пишутся в лог.
package notify

import (
	"context"

	"github.com/mymmrac/telego"
	log "github.com/sirupsen/logrus"
)

// Telegram рассылает сообщения в админ-чаты.
type Telegram struct {
	bot     *telego.Bot
	chatIDs []int64
}

// New создаёт нотификатор. Пустой токен или пустой список чатов
// дают no-op нотификатор.
func New(token string, chatIDs []int64) (*Telegram, error) {
	if token == "" || len(chatIDs) == 0 {
		log.Info("Telegram-уведомления выключены (нет токена или чатов)")
		return &Telegram{}, nil
	}

	bot, err := telego.NewBot(token, telego.WithDiscardLogger())
	if err != nil {
		return nil, err
	}

	log.WithField("chats", len(chatIDs)).Info("Telegram-уведомления включены")
	return &Telegram{bot: bot, chatIDs: chatIDs}, nil
}

// Send отправляет текст во все админ-чаты. Ошибки отправки только
// логируются: уведомление не должно ломать основную операцию.
func (t *Telegram) Send(ctx context.Context, text string) {
	if t.bot == nil {
		log.WithField("text", text).Debug("Уведомление (no-op)")
		return
	}

	for _, chatID := range t.chatIDs {
		_, err := t.bot.SendMessage(ctx, &telego.SendMessageParams{
			ChatID: telego.ChatID{ID: chatID},
			Text:   text,
		})
		if err != nil {
			log.WithError(err).WithField("chat", chatID).Error("Ошибка отправки уведомления")
		}
	}
}
