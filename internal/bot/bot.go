package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"task-tracker/internal/config"
	"task-tracker/internal/service"
)

// sender is the part of the Telegram API the handlers use.
type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

type conversationStage int

const (
	stageNone conversationStage = iota
	stageTitle
	stageDescription
	stageCategory
	stagePriority
	stageDeadline
)

type conversationState struct {
	stage conversationStage
	input service.TaskInput
}

type confirmationAction int

const (
	actionComplete confirmationAction = iota
	actionDelete
)

type confirmationRequest struct {
	taskID string
	action confirmationAction
}

// Bot aggregates Telegram API with services.
type Bot struct {
	client        *tgbotapi.BotAPI
	api           sender
	taskSvc       *service.TaskService
	categorySvc   *service.CategoryService
	reminderSvc   *service.ReminderService
	logger        *zap.Logger
	now           func() time.Time
	ownerChat     int64
	conversations map[int64]*conversationState
	confirmations map[int64]confirmationRequest
	mu            sync.Mutex
}

func New(cfg config.Config, taskSvc *service.TaskService, categorySvc *service.CategoryService, reminderSvc *service.ReminderService, logger *zap.Logger) (*Bot, error) {
	if cfg.TelegramToken == "" {
		return nil, errors.New("telegram token is empty")
	}
	client, err := tgbotapi.NewBotAPI(cfg.TelegramToken)
	if err != nil {
		return nil, fmt.Errorf("create bot api: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	logger.Info("bot authorized", zap.String("account", client.Self.UserName))

	b := newBot(client, taskSvc, categorySvc, reminderSvc, cfg.TelegramChatID, logger)
	b.client = client
	return b, nil
}

func newBot(api sender, taskSvc *service.TaskService, categorySvc *service.CategoryService, reminderSvc *service.ReminderService, ownerChat int64, logger *zap.Logger) *Bot {
	return &Bot{
		api:           api,
		taskSvc:       taskSvc,
		categorySvc:   categorySvc,
		reminderSvc:   reminderSvc,
		logger:        logger,
		now:           time.Now,
		ownerChat:     ownerChat,
		conversations: make(map[int64]*conversationState),
		confirmations: make(map[int64]confirmationRequest),
	}
}

// Start begins polling updates until ctx is cancelled.
func (b *Bot) Start(ctx context.Context) error {
	if b.client == nil {
		return errors.New("bot has no telegram client")
	}
	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 60
	updates := b.client.GetUpdatesChan(updateConfig)

	b.logger.Info("start polling updates")

	go func() {
		<-ctx.Done()
		b.client.StopReceivingUpdates()
	}()

	for update := range updates {
		b.dispatch(ctx, update)
	}

	return nil
}

func (b *Bot) dispatch(ctx context.Context, update tgbotapi.Update) {
	switch {
	case update.CallbackQuery != nil:
		if err := b.handleCallback(ctx, update.CallbackQuery); err != nil {
			b.logger.Error("handle callback", zap.Error(err))
		}
	case update.Message != nil:
		if update.Message.Chat == nil || !update.Message.Chat.IsPrivate() {
			return
		}
		if err := b.handleMessage(ctx, update.Message); err != nil {
			b.logger.Error("handle message", zap.Error(err))
		}
	}
}

// authorize pins the tracker to a single chat. Without a configured chat the
// first private chat to talk to the bot becomes the owner.
func (b *Bot) authorize(chatID int64) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.ownerChat == 0 {
		b.ownerChat = chatID
		b.logger.Info("owner chat bound", zap.Int64("chat", chatID))
	}
	return b.ownerChat == chatID
}

func (b *Bot) owner() int64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.ownerChat
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) error {
	if msg.From == nil {
		return nil
	}
	if !b.authorize(msg.Chat.ID) {
		b.logger.Warn("message from foreign chat ignored", zap.Int64("chat", msg.Chat.ID))
		return b.sendText(msg.Chat.ID, "This tracker is private.")
	}

	if !msg.IsCommand() && isCancelDialogInput(msg.Text) {
		b.clearConversation(msg.From.ID)
		b.clearConfirmation(msg.From.ID)
		return b.sendTextWithRemove(msg.Chat.ID, "⏪ Input cancelled.")
	}

	if !msg.IsCommand() {
		if handled, err := b.handleMenuAlias(ctx, msg); handled {
			return err
		}
	}

	if msg.IsCommand() {
		b.logger.Info("command", zap.Int64("user", msg.From.ID), zap.String("command", msg.Command()), zap.String("args", msg.CommandArguments()))
		return b.handleCommand(ctx, msg)
	}

	if pending, ok := b.getConfirmation(msg.From.ID); ok {
		return b.handleConfirmationResponse(ctx, msg, pending)
	}

	if b.hasConversation(msg.From.ID) {
		return b.handleConversation(ctx, msg)
	}

	return b.sendText(msg.Chat.ID, "I did not understand that. Use /newtask to add a task or /help for the command list.")
}

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) error {
	switch msg.Command() {
	case "start", "help":
		return b.handleHelp(msg)
	case "newtask":
		return b.startNewTaskConversation(msg)
	case "add":
		return b.handleAdd(ctx, msg)
	case "tasks":
		return b.sendTaskList(msg.Chat.ID, b.taskSvc.ListTasks(), "📋 <b>Tasks</b>")
	case "search":
		return b.handleSearch(msg)
	case "done":
		return b.handleDone(ctx, msg)
	case "status":
		return b.handleStatus(ctx, msg)
	case "delete":
		return b.handleDelete(msg)
	case "remind":
		return b.handleRemind(ctx, msg)
	case "reminders":
		return b.handleReminders(msg)
	case "categories":
		return b.handleCategories(ctx, msg)
	case "priorities":
		return b.handlePriorities(ctx, msg)
	case "stats":
		return b.handleStats(msg)
	case "report":
		return b.sendText(msg.Chat.ID, b.reminderSvc.DailySummary(b.now()))
	case "cancel":
		b.clearConversation(msg.From.ID)
		b.clearConfirmation(msg.From.ID)
		return b.sendTextWithRemove(msg.Chat.ID, "⏪ Input cancelled.")
	default:
		return b.sendText(msg.Chat.ID, "Unknown command. See /help.")
	}
}

func (b *Bot) sendText(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyMarkup = mainMenuKeyboard()
	_, err := b.api.Send(msg)
	return err
}

func (b *Bot) sendTextWithRemove(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyMarkup = tgbotapi.NewRemoveKeyboard(true)
	_, err := b.api.Send(msg)
	return err
}

func (b *Bot) sendWithReplyMarkup(chatID int64, text string, markup interface{}) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyMarkup = markup
	_, err := b.api.Send(msg)
	return err
}

func (b *Bot) ack(cb *tgbotapi.CallbackQuery, text string) {
	if _, err := b.api.Request(tgbotapi.NewCallback(cb.ID, text)); err != nil {
		b.logger.Warn("callback ack", zap.Error(err))
	}
}

func (b *Bot) getConfirmation(userID int64) (confirmationRequest, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	req, ok := b.confirmations[userID]
	return req, ok
}

func (b *Bot) setConfirmation(userID int64, req confirmationRequest) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.confirmations[userID] = req
}

func (b *Bot) clearConfirmation(userID int64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.confirmations, userID)
}

func (b *Bot) setConversation(userID int64, state *conversationState) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.conversations[userID] = state
}

func (b *Bot) getConversation(userID int64) *conversationState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.conversations[userID]
}

func (b *Bot) hasConversation(userID int64) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, ok := b.conversations[userID]
	return ok
}

func (b *Bot) clearConversation(userID int64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.conversations, userID)
}

func (b *Bot) handleMenuAlias(ctx context.Context, msg *tgbotapi.Message) (bool, error) {
	text := strings.TrimSpace(strings.ToLower(msg.Text))
	switch text {
	case strings.ToLower(menuLabelNewTask):
		return true, b.startNewTaskConversation(msg)
	case strings.ToLower(menuLabelTasks):
		return true, b.sendTaskList(msg.Chat.ID, b.taskSvc.ListTasks(), "📋 <b>Tasks</b>")
	case strings.ToLower(menuLabelReminders):
		return true, b.handleReminders(msg)
	case strings.ToLower(menuLabelStats):
		return true, b.handleStats(msg)
	default:
		return false, nil
	}
}
