package telegram

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"corrosion-monitor/internal/domain/entity"
	"corrosion-monitor/internal/domain/port"
)

const msgCorroded = `⚠️ Обнаружена коррозия

🕒 %s
📊 Степень: %s
🟤 Доля ржавчины: %s%%
〰️ Плотность границ: %s%%`

// Sender отправка сообщений в Telegram (реализуется *tgbotapi.BotAPI)
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Notifier шлёт в чат оповещения о кадрах с коррозией.
// Остальные результаты пропускает.
type Notifier struct {
	api    Sender
	chatID int64
}

// NewNotifier создаёт бота по токену
func NewNotifier(token string, chatID int64) (*Notifier, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram auth: %w", err)
	}
	return NewNotifierWithSender(api, chatID), nil
}

// NewNotifierWithSender создаёт оповещатель поверх готового отправителя
func NewNotifierWithSender(api Sender, chatID int64) *Notifier {
	return &Notifier{api: api, chatID: chatID}
}

// Alert отправляет оповещение, если кадр признан корродированным
func (n *Notifier) Alert(ctx context.Context, result entity.ClassificationResult) error {
	if !result.IsCorroded() {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", entity.ErrAlertUnavailable, err)
	}

	msg := tgbotapi.NewMessage(n.chatID, formatAlert(result))
	if _, err := n.api.Send(msg); err != nil {
		return fmt.Errorf("%w: telegram send: %w", entity.ErrAlertUnavailable, err)
	}
	return nil
}

// formatAlert текст оповещения
func formatAlert(r entity.ClassificationResult) string {
	return fmt.Sprintf(msgCorroded,
		r.Timestamp.Format(entity.TimestampLayout),
		r.Severity,
		r.RustRatioPercent,
		r.EdgeDensityPercent,
	)
}

var _ port.Alerter = (*Notifier)(nil)
