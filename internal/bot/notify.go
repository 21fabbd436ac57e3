package bot

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"task-tracker/internal/model"
	"task-tracker/internal/service"
)

// SendDueReminders delivers reminders firing today to the owner chat, each
// with snooze and dismiss buttons.
func (b *Bot) SendDueReminders(ctx context.Context) error {
	chatID := b.owner()
	if chatID == 0 {
		b.logger.Debug("no owner chat yet, reminders held back")
		return nil
	}
	for _, due := range b.reminderSvc.CheckDue(b.now()) {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		msg := tgbotapi.NewMessage(chatID, strings.TrimSpace(service.FormatReminder(due)))
		msg.ParseMode = tgbotapi.ModeHTML
		msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⏰ Snooze", cbSnoozePrefix+due.Reminder.ID),
			tgbotapi.NewInlineKeyboardButtonData("✔️ Dismiss", cbDismissPrefix+due.Reminder.ID),
		))
		if _, err := b.api.Send(msg); err != nil {
			b.reminderSvc.Undelivered(due.Reminder.ID)
			b.logger.Error("send reminder", zap.String("task", due.Task.Title), zap.Error(err))
			continue
		}
		b.logger.Info("reminder sent", zap.String("task", due.Task.Title), zap.String("kind", string(due.Reminder.Kind)))
	}
	return nil
}

// SendDailyReport sends the daily summary to the owner chat.
func (b *Bot) SendDailyReport(ctx context.Context) error {
	chatID := b.owner()
	if chatID == 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return b.sendText(chatID, b.reminderSvc.DailySummary(b.now()))
}

// SendDelayedAlert tells the owner about delayed tasks, if there are any.
func (b *Bot) SendDelayedAlert(ctx context.Context) error {
	chatID := b.owner()
	if chatID == 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	delayed := delayedTasks(b.taskSvc.ListTasks())
	if len(delayed) == 0 {
		return nil
	}

	today := model.Day(b.now())
	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("⚠️ <b>%d delayed task(s)</b>\n\n", len(delayed)))
	for _, task := range delayed {
		builder.WriteString(service.FormatTask(task, today))
	}
	return b.sendText(chatID, strings.TrimSpace(builder.String()))
}

func delayedTasks(tasks []model.Task) []model.Task {
	var out []model.Task
	for _, task := range tasks {
		if task.Status == model.StatusDelayed {
			out = append(out, task)
		}
	}
	return out
}
