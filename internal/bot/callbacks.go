package bot

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

const (
	cbCompletePrefix = "complete:"
	cbDeletePrefix   = "delete:"
	cbSnoozePrefix   = "snooze:"
	cbDismissPrefix  = "dismiss:"
)

func (b *Bot) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) error {
	if cb == nil || cb.From == nil || cb.Message == nil || cb.Message.Chat == nil {
		return nil
	}
	chatID := cb.Message.Chat.ID
	if !b.authorize(chatID) {
		b.ack(cb, "")
		return nil
	}

	data := cb.Data
	b.logger.Info("callback", zap.Int64("user", cb.From.ID), zap.String("data", data))

	switch {
	case strings.HasPrefix(data, cbCompletePrefix):
		b.ack(cb, "")
		task, err := b.taskSvc.GetTask(strings.TrimPrefix(data, cbCompletePrefix))
		if err != nil {
			return b.sendText(chatID, describeError(err))
		}
		return b.askConfirmation(chatID, cb.From.ID, task, actionComplete)
	case strings.HasPrefix(data, cbDeletePrefix):
		b.ack(cb, "")
		task, err := b.taskSvc.GetTask(strings.TrimPrefix(data, cbDeletePrefix))
		if err != nil {
			return b.sendText(chatID, describeError(err))
		}
		return b.askConfirmation(chatID, cb.From.ID, task, actionDelete)
	case strings.HasPrefix(data, cbSnoozePrefix):
		until, err := b.reminderSvc.Snooze(strings.TrimPrefix(data, cbSnoozePrefix), b.now())
		if err != nil {
			b.ack(cb, "Reminder is gone")
			return nil
		}
		b.ack(cb, fmt.Sprintf("Snoozed until %s", until.Format("15:04")))
		return b.clearInlineKeyboard(cb)
	case strings.HasPrefix(data, cbDismissPrefix):
		if err := b.reminderSvc.Dismiss(ctx, strings.TrimPrefix(data, cbDismissPrefix)); err != nil {
			b.ack(cb, "Reminder is gone")
			return nil
		}
		b.ack(cb, "Dismissed")
		return b.clearInlineKeyboard(cb)
	default:
		b.ack(cb, "")
		return nil
	}
}

func (b *Bot) clearInlineKeyboard(cb *tgbotapi.CallbackQuery) error {
	edit := tgbotapi.NewEditMessageReplyMarkup(cb.Message.Chat.ID, cb.Message.MessageID, tgbotapi.InlineKeyboardMarkup{
		InlineKeyboard: [][]tgbotapi.InlineKeyboardButton{},
	})
	_, err := b.api.Request(edit)
	return err
}
