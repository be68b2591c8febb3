// Package chatbot — мост к боту анонимного чата.
// Админ-панель не ведёт переписку, но после блокировки сообщает
// пользователю через бота, что доступ закрыт.
package chatbot

import (
	"context"
	"fmt"

	"github.com/mymmrac/telego"
	tu "github.com/mymmrac/telego/telegoutil"
)

// Notifier отправляет служебные сообщения пользователям чата.
type Notifier struct {
	bot *telego.Bot
}

// NewNotifier создаёт нотификатор поверх Telegram Bot API.
func NewNotifier(token string) (*Notifier, error) {
	bot, err := telego.NewBot(token)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания Telegram API: %w", err)
	}
	return &Notifier{bot: bot}, nil
}

// NotifyBanned сообщает пользователю о блокировке.
// Ошибка здесь не отменяет саму блокировку — реестр уже обновлён.
func (n *Notifier) NotifyBanned(ctx context.Context, telegramID int64) error {
	_, err := n.bot.SendMessage(ctx, tu.Message(
		tu.ID(telegramID),
		"🚫 Вы заблокированы в анонимном чате за нарушение правил.",
	))
	if err != nil {
		return fmt.Errorf("ошибка отправки уведомления о блокировке: %w", err)
	}
	return nil
}
