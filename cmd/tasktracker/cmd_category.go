package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"task-tracker/internal/model"
)

func newCategoryCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "category",
		Aliases: []string{"categories"},
		Short:   "Manage categories",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List categories",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				var names []string
				for _, c := range a.categories.ListCategories() {
					names = append(names, c.Name)
				}
				return printNames(cmd.OutOrStdout(), names)
			},
		},
		&cobra.Command{
			Use:   "add <name>",
			Short: "Add a category",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				c, err := a.categories.CreateCategory(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "added category %q\n", c.Name)
				return nil
			},
		},
		&cobra.Command{
			Use:   "rename <name> <new-name>",
			Short: "Rename a category; its tasks follow",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				c, err := a.categories.RenameCategory(cmd.Context(), args[0], args[1])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "renamed category to %q\n", c.Name)
				return nil
			},
		},
		&cobra.Command{
			Use:   "delete <name>",
			Short: "Delete a category together with its tasks and their reminders",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := a.categories.DeleteCategory(cmd.Context(), args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "deleted category %q\n", args[0])
				return nil
			},
		},
	)
	return cmd
}

func newPriorityCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "priority",
		Aliases: []string{"priorities"},
		Short:   "Manage priorities (" + model.DefaultPriorityName + " is permanent)",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List priorities",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				var names []string
				for _, p := range a.categories.ListPriorities() {
					names = append(names, p.Name)
				}
				return printNames(cmd.OutOrStdout(), names)
			},
		},
		&cobra.Command{
			Use:   "add <name>",
			Short: "Add a priority",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				p, err := a.categories.CreatePriority(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "added priority %q\n", p.Name)
				return nil
			},
		},
		&cobra.Command{
			Use:   "rename <name> <new-name>",
			Short: "Rename a priority; its tasks follow",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				p, err := a.categories.RenamePriority(cmd.Context(), args[0], args[1])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "renamed priority to %q\n", p.Name)
				return nil
			},
		},
		&cobra.Command{
			Use:   "delete <name>",
			Short: "Delete a priority; its tasks move to " + model.DefaultPriorityName,
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := a.categories.DeletePriority(cmd.Context(), args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "deleted priority %q\n", args[0])
				return nil
			},
		},
	)
	return cmd
}
