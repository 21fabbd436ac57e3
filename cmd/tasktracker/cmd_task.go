package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"task-tracker/internal/model"
	"task-tracker/internal/service"
	"task-tracker/internal/store"
)

func newTaskCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "task",
		Aliases: []string{"tasks"},
		Short:   "Manage tasks",
	}
	cmd.AddCommand(
		newTaskAddCmd(a),
		newTaskListCmd(a),
		newTaskShowCmd(a),
		newTaskUpdateCmd(a),
		newTaskStatusCmd(a),
		newTaskDoneCmd(a),
		newTaskDeleteCmd(a),
	)
	return cmd
}

func newTaskAddCmd(a *app) *cobra.Command {
	var input service.TaskInput
	var deadline string
	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a task",
		Example: `  tasktracker task add "Quarterly report" --category Work --priority High --deadline 2026-11-30`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			due, err := model.ParseOptionalDate(deadline)
			if err != nil {
				return err
			}
			input.Title = args[0]
			input.Deadline = due
			task, err := a.tasks.CreateTask(cmd.Context(), input)
			if err != nil {
				return err
			}
			return printTask(cmd.OutOrStdout(), task)
		},
	}
	cmd.Flags().StringVar(&input.Category, "category", "", "Category name (required)")
	cmd.Flags().StringVar(&input.Priority, "priority", "", "Priority name (default: Default)")
	cmd.Flags().StringVar(&input.Description, "description", "", "Free-form description")
	cmd.Flags().StringVar(&deadline, "deadline", "", "Deadline as YYYY-MM-DD")
	_ = cmd.MarkFlagRequired("category")
	return cmd
}

func newTaskListCmd(a *app) *cobra.Command {
	var filter store.TaskFilter
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks, optionally filtered",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printTasks(cmd.OutOrStdout(), a.tasks.Search(filter))
		},
	}
	cmd.Flags().StringVar(&filter.Title, "title", "", "Title substring (case-insensitive)")
	cmd.Flags().StringVar(&filter.Category, "category", "", "Exact category name")
	cmd.Flags().StringVar(&filter.Priority, "priority", "", "Exact priority name")
	return cmd
}

func newTaskShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <title|id>",
		Short: "Show one task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			task, err := a.tasks.GetTask(args[0])
			if err != nil {
				return err
			}
			return printTask(cmd.OutOrStdout(), task)
		},
	}
}

func newTaskUpdateCmd(a *app) *cobra.Command {
	var upd store.TaskUpdate
	var deadline string
	cmd := &cobra.Command{
		Use:   "update <title|id>",
		Short: "Change task fields; omitted flags keep their value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			due, err := model.ParseOptionalDate(deadline)
			if err != nil {
				return err
			}
			upd.Deadline = due
			task, err := a.tasks.GetTask(args[0])
			if err != nil {
				return err
			}
			task, err = a.tasks.UpdateTask(cmd.Context(), task.ID, upd)
			if err != nil {
				return err
			}
			return printTask(cmd.OutOrStdout(), task)
		},
	}
	cmd.Flags().StringVar(&upd.Title, "title", "", "New title")
	cmd.Flags().StringVar(&upd.Description, "description", "", "New description")
	cmd.Flags().StringVar(&upd.Category, "category", "", "New category")
	cmd.Flags().StringVar(&upd.Priority, "priority", "", "New priority")
	cmd.Flags().StringVar(&deadline, "deadline", "", "New deadline as YYYY-MM-DD")
	return cmd
}

func newTaskStatusCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status <title|id> <status>",
		Short: "Set status: OPEN, IN_PROGRESS, POSTPONED, COMPLETED or DELAYED",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := model.ParseStatus(args[1])
			if err != nil {
				return err
			}
			return a.setStatus(cmd, args[0], status)
		},
	}
}

func newTaskDoneCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "done <title|id>",
		Short: "Mark a task completed; its reminders are removed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.setStatus(cmd, args[0], model.StatusCompleted)
		},
	}
}

func (a *app) setStatus(cmd *cobra.Command, ref string, status model.Status) error {
	task, err := a.tasks.GetTask(ref)
	if err != nil {
		return err
	}
	task, err = a.tasks.SetStatus(cmd.Context(), task.ID, status)
	if err != nil {
		return err
	}
	return printTask(cmd.OutOrStdout(), task)
}

func newTaskDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <title|id>",
		Aliases: []string{"rm"},
		Short:   "Delete a task and its reminders",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			task, err := a.tasks.GetTask(args[0])
			if err != nil {
				return err
			}
			if err := a.tasks.DeleteTask(cmd.Context(), task.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %q\n", task.Title)
			return nil
		},
	}
}
