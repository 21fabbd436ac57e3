package bot

import (
	"errors"
	"fmt"
	"html"
	"sort"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"task-tracker/internal/model"
	"task-tracker/internal/service"
	"task-tracker/internal/store"
)

const (
	btnSkip            = "⏭️ Skip"
	btnConfirm         = "✅ Confirm"
	btnCancel          = "↩️ Cancel"
	btnCancelDialog    = "⏪ Stop input"
	menuLabelNewTask   = "➕ New task"
	menuLabelTasks     = "📋 Tasks"
	menuLabelReminders = "🔔 Reminders"
	menuLabelStats     = "📊 Stats"
)

func escape(s string) string {
	return html.EscapeString(s)
}

// describeError turns a service error into a chat reply.
func describeError(err error) string {
	icon := "❌"
	switch {
	case errors.Is(err, store.ErrNotFound):
		icon = "🔍"
	case errors.Is(err, store.ErrValidation):
		icon = "⚠️"
	case errors.Is(err, store.ErrState):
		icon = "⛔"
	}
	return icon + " " + escape(err.Error())
}

// splitArgs splits pipe-separated command arguments, trimming each part.
func splitArgs(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, "|")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// parseAddArgs reads "title | category | priority | deadline | description".
// Only title and category are required; blank priority means Default.
func parseAddArgs(raw string) (service.TaskInput, error) {
	args := splitArgs(raw)
	if len(args) < 2 {
		return service.TaskInput{}, errors.New("title and category are required")
	}
	if len(args) > 5 {
		return service.TaskInput{}, errors.New("too many arguments")
	}
	input := service.TaskInput{Title: args[0], Category: args[1]}
	if len(args) > 2 {
		input.Priority = args[2]
	}
	if len(args) > 3 {
		deadline, err := model.ParseOptionalDate(args[3])
		if err != nil {
			return service.TaskInput{}, err
		}
		input.Deadline = deadline
	}
	if len(args) > 4 {
		input.Description = args[4]
	}
	return input, nil
}

// parseSearchQuery reads free text plus optional category:NAME and
// priority:NAME tokens.
func parseSearchQuery(raw string) store.TaskFilter {
	var filter store.TaskFilter
	var words []string
	for _, field := range strings.Fields(raw) {
		key, value, ok := strings.Cut(field, ":")
		switch {
		case ok && (strings.EqualFold(key, "category") || strings.EqualFold(key, "c")):
			filter.Category = value
		case ok && (strings.EqualFold(key, "priority") || strings.EqualFold(key, "p")):
			filter.Priority = value
		default:
			words = append(words, field)
		}
	}
	filter.Title = strings.Join(words, " ")
	return filter
}

// parseSubcommand splits "verb rest | more" into the verb and pipe-separated rest.
func parseSubcommand(raw string) (string, []string) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", nil
	}
	verb, rest, _ := strings.Cut(raw, " ")
	return strings.ToLower(verb), splitArgs(rest)
}

func shortTitle(title string, maxLen int) string {
	clean := strings.TrimSpace(strings.ReplaceAll(title, "\n", " "))
	runes := []rune(clean)
	if len(runes) <= maxLen {
		return clean
	}
	if maxLen <= 1 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-1]) + "…"
}

func kindLabel(kind model.ReminderKind) string {
	return strings.ToLower(strings.ReplaceAll(string(kind), "_", " "))
}

type taskGroup struct {
	name  string
	tasks []model.Task
}

// groupByCategory keeps tasks in store order inside each group and sorts
// groups by name.
func groupByCategory(tasks []model.Task) []taskGroup {
	index := make(map[string]int)
	var groups []taskGroup
	for _, task := range tasks {
		key := strings.ToLower(task.Category)
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, taskGroup{name: task.Category})
		}
		groups[i].tasks = append(groups[i].tasks, task)
	}
	sort.SliceStable(groups, func(i, j int) bool {
		return strings.ToLower(groups[i].name) < strings.ToLower(groups[j].name)
	})
	return groups
}

func categoryLabel(name string) string {
	icon := "🏷️"
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "work":
		icon = "💼"
	case "study", "school":
		icon = "🎓"
	case "shopping":
		icon = "🛒"
	case "health":
		icon = "🩺"
	case "personal", "home":
		icon = "🧩"
	}
	return fmt.Sprintf("%s %s", icon, escape(name))
}

func categoryNames(categories []model.Category) []string {
	names := make([]string, 0, len(categories))
	for _, c := range categories {
		names = append(names, c.Name)
	}
	return names
}

func priorityNames(priorities []model.Priority) []string {
	names := make([]string, 0, len(priorities))
	for _, p := range priorities {
		names = append(names, p.Name)
	}
	return names
}

func formatNames(header string, names []string) string {
	if len(names) == 0 {
		return header + "\n- none yet"
	}
	var builder strings.Builder
	builder.WriteString(header + "\n")
	for _, name := range names {
		builder.WriteString(fmt.Sprintf("• %s\n", escape(name)))
	}
	return strings.TrimSpace(builder.String())
}

func formatStats(st store.Stats) string {
	return fmt.Sprintf("📊 <b>Stats</b>\n• Total: %d\n• Completed: %d\n• Delayed: %d\n• Due within 7 days: %d",
		st.Total, st.Completed, st.Delayed, st.DueSoon)
}

func confirmKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnConfirm),
			tgbotapi.NewKeyboardButton(btnCancel),
		),
	)
	kb.ResizeKeyboard = true
	kb.OneTimeKeyboard = true
	return kb
}

func mainMenuKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(menuLabelNewTask),
			tgbotapi.NewKeyboardButton(menuLabelTasks),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(menuLabelReminders),
			tgbotapi.NewKeyboardButton(menuLabelStats),
		),
	)
	kb.ResizeKeyboard = true
	return kb
}

func cancelKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(btnCancelDialog)),
	)
	kb.ResizeKeyboard = true
	kb.OneTimeKeyboard = true
	return kb
}

func skipKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(btnSkip)),
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(btnCancelDialog)),
	)
	kb.ResizeKeyboard = true
	kb.OneTimeKeyboard = true
	return kb
}

// namesKeyboard lays out names two per row, then Skip (optional) and stop.
func namesKeyboard(names []string, skippable bool) tgbotapi.ReplyKeyboardMarkup {
	var rows [][]tgbotapi.KeyboardButton
	for i := 0; i < len(names); i += 2 {
		row := tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(names[i]))
		if i+1 < len(names) {
			row = append(row, tgbotapi.NewKeyboardButton(names[i+1]))
		}
		rows = append(rows, row)
	}
	last := tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(btnCancelDialog))
	if skippable {
		last = append([]tgbotapi.KeyboardButton{tgbotapi.NewKeyboardButton(btnSkip)}, last...)
	}
	rows = append(rows, last)
	kb := tgbotapi.NewReplyKeyboard(rows...)
	kb.ResizeKeyboard = true
	kb.OneTimeKeyboard = true
	return kb
}

func isSkipInput(text string) bool {
	value := strings.TrimSpace(strings.ToLower(text))
	return value == "-" || value == strings.ToLower(btnSkip) || value == "skip"
}

func isConfirmInput(text string) bool {
	value := strings.TrimSpace(strings.ToLower(text))
	return value == strings.ToLower(btnConfirm) || value == "confirm" || value == "yes"
}

func isCancelInput(text string) bool {
	value := strings.TrimSpace(strings.ToLower(text))
	return value == strings.ToLower(btnCancel) || value == "cancel" || value == "no"
}

func isCancelDialogInput(text string) bool {
	value := strings.TrimSpace(strings.ToLower(text))
	return value == strings.ToLower(btnCancelDialog) || value == "stop"
}
