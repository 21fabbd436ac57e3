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

const helpText = "ℹ️ <b>Commands</b>\n" +
	"• /newtask - add a task step by step\n" +
	"• /add title | category | priority | deadline | description - add in one line\n" +
	"• /tasks - list tasks\n" +
	"• /search text category:Work priority:High - find tasks\n" +
	"• /done title - mark a task completed\n" +
	"• /status title | IN_PROGRESS - change status\n" +
	"• /delete title - delete a task\n" +
	"• /remind title | day|week|month|custom | date - add a reminder\n" +
	"• /reminders - list reminders\n" +
	"• /categories [add|rename|delete ...] - manage categories\n" +
	"• /priorities [add|rename|delete ...] - manage priorities\n" +
	"• /stats - task statistics\n" +
	"• /report - today's report\n" +
	"• /cancel - cancel current input\n\n" +
	"Dates use <code>2026-11-30</code>."

func (b *Bot) handleHelp(msg *tgbotapi.Message) error {
	return b.sendText(msg.Chat.ID, helpText)
}

func (b *Bot) startNewTaskConversation(msg *tgbotapi.Message) error {
	b.setConversation(msg.From.ID, &conversationState{stage: stageTitle})
	return b.sendWithReplyMarkup(msg.Chat.ID, "🆕 New task.\n<b>Step 1:</b> what is it called?", cancelKeyboard())
}

func (b *Bot) handleConversation(ctx context.Context, msg *tgbotapi.Message) error {
	state := b.getConversation(msg.From.ID)
	if state == nil {
		return nil
	}

	text := strings.TrimSpace(msg.Text)
	switch state.stage {
	case stageTitle:
		if text == "" {
			return b.sendWithReplyMarkup(msg.Chat.ID, "The title cannot be empty.", cancelKeyboard())
		}
		state.input.Title = text
		state.stage = stageDescription
		return b.sendWithReplyMarkup(msg.Chat.ID, "✏️ Add a short description (or press Skip).", skipKeyboard())
	case stageDescription:
		if !isSkipInput(text) {
			state.input.Description = text
		}
		state.stage = stageCategory
		return b.sendWithReplyMarkup(msg.Chat.ID, "🏷 Pick a category.", namesKeyboard(categoryNames(b.categorySvc.ListCategories()), false))
	case stageCategory:
		if _, err := b.categorySvc.FindCategory(text); err != nil {
			return b.sendWithReplyMarkup(msg.Chat.ID, describeError(err), namesKeyboard(categoryNames(b.categorySvc.ListCategories()), false))
		}
		state.input.Category = text
		state.stage = stagePriority
		return b.sendWithReplyMarkup(msg.Chat.ID, "🔺 Pick a priority (Skip means Default).", namesKeyboard(priorityNames(b.categorySvc.ListPriorities()), true))
	case stagePriority:
		if !isSkipInput(text) {
			state.input.Priority = text
		}
		state.stage = stageDeadline
		return b.sendWithReplyMarkup(msg.Chat.ID, "⏰ Deadline as <code>2026-11-30</code> (or Skip).", skipKeyboard())
	case stageDeadline:
		if !isSkipInput(text) {
			parsed, err := model.ParseDate(text)
			if err != nil {
				return b.sendWithReplyMarkup(msg.Chat.ID, "Cannot read that date. Use <code>2026-11-30</code> or Skip.", skipKeyboard())
			}
			state.input.Deadline = &parsed
		}
		b.clearConversation(msg.From.ID)
		return b.finishTaskCreation(ctx, msg.Chat.ID, state.input)
	default:
		b.clearConversation(msg.From.ID)
		return b.sendText(msg.Chat.ID, "Input reset. Start again with /newtask.")
	}
}

func (b *Bot) finishTaskCreation(ctx context.Context, chatID int64, input service.TaskInput) error {
	task, err := b.taskSvc.CreateTask(ctx, input)
	if err != nil {
		return b.sendText(chatID, describeError(err))
	}

	var summary strings.Builder
	summary.WriteString("✅ <b>Task saved</b>\n")
	summary.WriteString(fmt.Sprintf("• <b>Title:</b> %s\n", escape(task.Title)))
	summary.WriteString(fmt.Sprintf("• <b>Category:</b> %s\n", escape(task.Category)))
	summary.WriteString(fmt.Sprintf("• <b>Priority:</b> %s\n", escape(task.Priority)))
	if task.Description != "" {
		summary.WriteString(fmt.Sprintf("• <b>Description:</b> %s\n", escape(task.Description)))
	}
	if task.Deadline != nil {
		summary.WriteString(fmt.Sprintf("• <b>Deadline:</b> %s\n", model.FormatDate(task.Deadline)))
	}
	summary.WriteString(fmt.Sprintf("• <b>Status:</b> %s", task.Status))
	return b.sendText(chatID, summary.String())
}

func (b *Bot) handleAdd(ctx context.Context, msg *tgbotapi.Message) error {
	input, err := parseAddArgs(msg.CommandArguments())
	if err != nil {
		return b.sendText(msg.Chat.ID, fmt.Sprintf("⚠️ %s\nUsage: /add title | category | priority | deadline | description", escape(err.Error())))
	}
	return b.finishTaskCreation(ctx, msg.Chat.ID, input)
}

func (b *Bot) handleSearch(msg *tgbotapi.Message) error {
	filter := parseSearchQuery(msg.CommandArguments())
	return b.sendTaskList(msg.Chat.ID, b.taskSvc.Search(filter), "🔎 <b>Search results</b>")
}

func (b *Bot) handleDone(ctx context.Context, msg *tgbotapi.Message) error {
	title := strings.TrimSpace(msg.CommandArguments())
	if title == "" {
		return b.sendText(msg.Chat.ID, "Give the task title: /done Report")
	}
	task, err := b.taskSvc.GetTask(title)
	if err != nil {
		return b.sendText(msg.Chat.ID, describeError(err))
	}
	return b.completeTask(ctx, msg.Chat.ID, task.ID)
}

func (b *Bot) handleStatus(ctx context.Context, msg *tgbotapi.Message) error {
	args := splitArgs(msg.CommandArguments())
	if len(args) != 2 {
		return b.sendText(msg.Chat.ID, "Usage: /status title | IN_PROGRESS")
	}
	status, err := model.ParseStatus(args[1])
	if err != nil {
		return b.sendText(msg.Chat.ID, fmt.Sprintf("⚠️ %s", escape(err.Error())))
	}
	task, err := b.taskSvc.GetTask(args[0])
	if err != nil {
		return b.sendText(msg.Chat.ID, describeError(err))
	}
	task, err = b.taskSvc.SetStatus(ctx, task.ID, status)
	if err != nil {
		return b.sendText(msg.Chat.ID, describeError(err))
	}
	return b.sendText(msg.Chat.ID, fmt.Sprintf("🔄 «%s» is now %s.", escape(task.Title), task.Status))
}

func (b *Bot) handleDelete(msg *tgbotapi.Message) error {
	title := strings.TrimSpace(msg.CommandArguments())
	if title == "" {
		return b.sendText(msg.Chat.ID, "Give the task title: /delete Report")
	}
	task, err := b.taskSvc.GetTask(title)
	if err != nil {
		return b.sendText(msg.Chat.ID, describeError(err))
	}
	return b.askConfirmation(msg.Chat.ID, msg.From.ID, task, actionDelete)
}

func (b *Bot) askConfirmation(chatID, userID int64, task model.Task, action confirmationAction) error {
	text := fmt.Sprintf("Mark «%s» as completed?", escape(task.Title))
	if action == actionDelete {
		text = fmt.Sprintf("Delete «%s» and its reminders?", escape(task.Title))
	}
	b.setConfirmation(userID, confirmationRequest{taskID: task.ID, action: action})
	return b.sendWithReplyMarkup(chatID, text, confirmKeyboard())
}

func (b *Bot) handleConfirmationResponse(ctx context.Context, msg *tgbotapi.Message, req confirmationRequest) error {
	text := strings.TrimSpace(msg.Text)
	switch {
	case isConfirmInput(text):
		b.clearConfirmation(msg.From.ID)
		if req.action == actionDelete {
			return b.deleteTask(ctx, msg.Chat.ID, req.taskID)
		}
		return b.completeTask(ctx, msg.Chat.ID, req.taskID)
	case isCancelInput(text):
		b.clearConfirmation(msg.From.ID)
		return b.sendTextWithRemove(msg.Chat.ID, "Cancelled.")
	default:
		return b.sendWithReplyMarkup(msg.Chat.ID, "Confirm or cancel.", confirmKeyboard())
	}
}

func (b *Bot) completeTask(ctx context.Context, chatID int64, taskID string) error {
	task, err := b.taskSvc.GetTask(taskID)
	if err != nil {
		return b.sendText(chatID, describeError(err))
	}
	if task.Status == model.StatusCompleted {
		return b.sendText(chatID, "The task is already completed.")
	}
	task, err = b.taskSvc.CompleteTask(ctx, taskID)
	if err != nil {
		return b.sendText(chatID, describeError(err))
	}
	return b.sendText(chatID, fmt.Sprintf("✅ «%s» completed.", escape(task.Title)))
}

func (b *Bot) deleteTask(ctx context.Context, chatID int64, taskID string) error {
	task, err := b.taskSvc.GetTask(taskID)
	if err != nil {
		return b.sendText(chatID, describeError(err))
	}
	if err := b.taskSvc.DeleteTask(ctx, taskID); err != nil {
		return b.sendText(chatID, describeError(err))
	}
	return b.sendText(chatID, fmt.Sprintf("🗑 «%s» deleted.", escape(task.Title)))
}

func (b *Bot) handleRemind(ctx context.Context, msg *tgbotapi.Message) error {
	args := splitArgs(msg.CommandArguments())
	if len(args) < 2 || len(args) > 3 {
		return b.sendText(msg.Chat.ID, "Usage: /remind title | day|week|month|custom | 2026-11-30")
	}
	kind, err := model.ParseReminderKind(args[1])
	if err != nil {
		return b.sendText(msg.Chat.ID, fmt.Sprintf("⚠️ %s", escape(err.Error())))
	}
	var custom string
	if len(args) == 3 {
		custom = args[2]
	}
	date, err := model.ParseOptionalDate(custom)
	if err != nil {
		return b.sendText(msg.Chat.ID, fmt.Sprintf("⚠️ %s", escape(err.Error())))
	}
	r, err := b.reminderSvc.CreateReminder(ctx, args[0], kind, date)
	if err != nil {
		return b.sendText(msg.Chat.ID, describeError(err))
	}
	fires, err := b.reminderSvc.ReminderDate(r.ID)
	if err != nil {
		return b.sendText(msg.Chat.ID, describeError(err))
	}
	return b.sendText(msg.Chat.ID, fmt.Sprintf("🔔 Reminder set for %s.", fires.Format(model.DateLayout)))
}

func (b *Bot) handleReminders(msg *tgbotapi.Message) error {
	reminders := b.reminderSvc.ListReminders()
	if len(reminders) == 0 {
		return b.sendText(msg.Chat.ID, "No reminders yet. Add one with /remind.")
	}

	var builder strings.Builder
	builder.WriteString("🔔 <b>Reminders</b>\n")
	var buttons [][]tgbotapi.InlineKeyboardButton
	for _, r := range reminders {
		task, err := b.taskSvc.GetTask(r.TaskID)
		if err != nil {
			b.logger.Warn("reminder without task", zap.String("reminder", r.ID))
			continue
		}
		fires, err := b.reminderSvc.ReminderDate(r.ID)
		if err != nil {
			continue
		}
		builder.WriteString(fmt.Sprintf("• %s - %s <i>(%s)</i>\n", fires.Format(model.DateLayout), escape(task.Title), kindLabel(r.Kind)))
		buttons = append(buttons, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔕 "+shortTitle(task.Title, 24), cbDismissPrefix+r.ID),
		))
	}

	out := tgbotapi.NewMessage(msg.Chat.ID, strings.TrimSpace(builder.String()))
	out.ParseMode = tgbotapi.ModeHTML
	if len(buttons) > 0 {
		out.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(buttons...)
	}
	_, err := b.api.Send(out)
	return err
}

func (b *Bot) handleCategories(ctx context.Context, msg *tgbotapi.Message) error {
	verb, args := parseSubcommand(msg.CommandArguments())
	var err error
	switch verb {
	case "":
		return b.sendText(msg.Chat.ID, formatNames("📂 <b>Categories</b>", categoryNames(b.categorySvc.ListCategories())))
	case "add":
		_, err = b.categorySvc.CreateCategory(ctx, strings.Join(args, " "))
	case "rename":
		if len(args) != 2 {
			return b.sendText(msg.Chat.ID, "Usage: /categories rename Old | New")
		}
		_, err = b.categorySvc.RenameCategory(ctx, args[0], args[1])
	case "delete":
		err = b.categorySvc.DeleteCategory(ctx, strings.Join(args, " "))
	default:
		return b.sendText(msg.Chat.ID, "Usage: /categories [add Name | rename Old | New | delete Name]")
	}
	if err != nil {
		return b.sendText(msg.Chat.ID, describeError(err))
	}
	return b.sendText(msg.Chat.ID, formatNames("📂 <b>Categories</b>", categoryNames(b.categorySvc.ListCategories())))
}

func (b *Bot) handlePriorities(ctx context.Context, msg *tgbotapi.Message) error {
	verb, args := parseSubcommand(msg.CommandArguments())
	var err error
	switch verb {
	case "":
		return b.sendText(msg.Chat.ID, formatNames("🔺 <b>Priorities</b>", priorityNames(b.categorySvc.ListPriorities())))
	case "add":
		_, err = b.categorySvc.CreatePriority(ctx, strings.Join(args, " "))
	case "rename":
		if len(args) != 2 {
			return b.sendText(msg.Chat.ID, "Usage: /priorities rename Old | New")
		}
		_, err = b.categorySvc.RenamePriority(ctx, args[0], args[1])
	case "delete":
		err = b.categorySvc.DeletePriority(ctx, strings.Join(args, " "))
	default:
		return b.sendText(msg.Chat.ID, "Usage: /priorities [add Name | rename Old | New | delete Name]")
	}
	if err != nil {
		return b.sendText(msg.Chat.ID, describeError(err))
	}
	return b.sendText(msg.Chat.ID, formatNames("🔺 <b>Priorities</b>", priorityNames(b.categorySvc.ListPriorities())))
}

func (b *Bot) handleStats(msg *tgbotapi.Message) error {
	return b.sendText(msg.Chat.ID, formatStats(b.taskSvc.Stats()))
}

// sendTaskList renders tasks grouped by category with inline complete and
// delete buttons for the ones still open.
func (b *Bot) sendTaskList(chatID int64, tasks []model.Task, header string) error {
	if len(tasks) == 0 {
		return b.sendText(chatID, "No tasks found. Add one with /newtask.")
	}

	today := model.Day(b.now())
	var builder strings.Builder
	builder.WriteString(header + "\n\n")

	var buttons [][]tgbotapi.InlineKeyboardButton
	for _, group := range groupByCategory(tasks) {
		builder.WriteString(fmt.Sprintf("<b>%s</b>\n", categoryLabel(group.name)))
		for _, task := range group.tasks {
			builder.WriteString(service.FormatTask(task, today))
			if task.Status == model.StatusCompleted {
				continue
			}
			buttons = append(buttons, tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("✅ "+shortTitle(task.Title, 24), cbCompletePrefix+task.ID),
				tgbotapi.NewInlineKeyboardButtonData("🗑", cbDeletePrefix+task.ID),
			))
		}
		builder.WriteByte('\n')
	}

	msg := tgbotapi.NewMessage(chatID, strings.TrimSpace(builder.String()))
	msg.ParseMode = tgbotapi.ModeHTML
	if len(buttons) > 0 {
		msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(buttons...)
	}
	_, err := b.api.Send(msg)
	return err
}
