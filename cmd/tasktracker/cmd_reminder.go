package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"task-tracker/internal/model"
)

func newReminderCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "reminder",
		Aliases: []string{"reminders"},
		Short:   "Manage reminders",
		Long: `Reminder kinds: ONE_DAY_BEFORE (day), ONE_WEEK_BEFORE (week),
ONE_MONTH_BEFORE (month) fire relative to the task deadline; CUSTOM_DATE (custom)
fires on --date.`,
	}
	cmd.AddCommand(
		newReminderListCmd(a),
		newReminderAddCmd(a),
		newReminderUpdateCmd(a),
		newReminderDeleteCmd(a),
		newReminderDueCmd(a),
	)
	return cmd
}

func (a *app) reminderRows(reminders []model.Reminder) []reminderRow {
	rows := make([]reminderRow, 0, len(reminders))
	for _, r := range reminders {
		row := reminderRow{id: r.ID, kind: r.Kind, fires: "-"}
		if task, err := a.tasks.GetTask(r.TaskID); err == nil {
			row.task = task.Title
		}
		if date, err := a.reminders.ReminderDate(r.ID); err == nil {
			row.fires = date.Format(model.DateLayout)
		}
		rows = append(rows, row)
	}
	return rows
}

func newReminderListCmd(a *app) *cobra.Command {
	var taskRef string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List reminders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reminders := a.reminders.ListReminders()
			if taskRef != "" {
				task, err := a.tasks.GetTask(taskRef)
				if err != nil {
					return err
				}
				reminders = a.reminders.RemindersForTask(task.ID)
			}
			return printReminders(cmd.OutOrStdout(), a.reminderRows(reminders))
		},
	}
	cmd.Flags().StringVar(&taskRef, "task", "", "Only reminders of this task")
	return cmd
}

func parseKindAndDate(rawKind, rawDate string) (model.ReminderKind, *time.Time, error) {
	kind, err := model.ParseReminderKind(rawKind)
	if err != nil {
		return "", nil, err
	}
	date, err := model.ParseOptionalDate(rawDate)
	if err != nil {
		return "", nil, err
	}
	return kind, date, nil
}

func newReminderAddCmd(a *app) *cobra.Command {
	var rawDate string
	cmd := &cobra.Command{
		Use:     "add <task-title> <kind>",
		Short:   "Add a reminder to a task",
		Example: `  tasktracker reminder add "Quarterly report" week
  tasktracker reminder add "Quarterly report" custom --date 2026-11-20`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, date, err := parseKindAndDate(args[1], rawDate)
			if err != nil {
				return err
			}
			r, err := a.reminders.CreateReminder(cmd.Context(), args[0], kind, date)
			if err != nil {
				return err
			}
			return printReminders(cmd.OutOrStdout(), a.reminderRows([]model.Reminder{r}))
		},
	}
	cmd.Flags().StringVar(&rawDate, "date", "", "Date for custom reminders (YYYY-MM-DD)")
	return cmd
}

func newReminderUpdateCmd(a *app) *cobra.Command {
	var rawDate string
	cmd := &cobra.Command{
		Use:   "update <id> <kind>",
		Short: "Change a reminder's kind or date",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, date, err := parseKindAndDate(args[1], rawDate)
			if err != nil {
				return err
			}
			r, err := a.reminders.UpdateReminder(cmd.Context(), args[0], kind, date)
			if err != nil {
				return err
			}
			return printReminders(cmd.OutOrStdout(), a.reminderRows([]model.Reminder{r}))
		},
	}
	cmd.Flags().StringVar(&rawDate, "date", "", "Date for custom reminders (YYYY-MM-DD)")
	return cmd
}

func newReminderDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a reminder",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.reminders.DeleteReminder(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted reminder %s\n", args[0])
			return nil
		},
	}
}

func newReminderDueCmd(a *app) *cobra.Command {
	var rawDate string
	cmd := &cobra.Command{
		Use:   "due",
		Short: "List reminders firing on a day (today by default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			date := model.Day(time.Now())
			if rawDate != "" {
				parsed, err := model.ParseDate(rawDate)
				if err != nil {
					return err
				}
				date = parsed
			}
			due := a.reminders.DueOn(date)
			reminders := make([]model.Reminder, 0, len(due))
			for _, d := range due {
				reminders = append(reminders, d.Reminder)
			}
			return printReminders(cmd.OutOrStdout(), a.reminderRows(reminders))
		},
	}
	cmd.Flags().StringVar(&rawDate, "date", "", "Day to check (YYYY-MM-DD)")
	return cmd
}
