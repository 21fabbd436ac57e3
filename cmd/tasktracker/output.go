package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"task-tracker/internal/model"
	"task-tracker/internal/store"
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func printTasks(w io.Writer, tasks []model.Task) error {
	if len(tasks) == 0 {
		_, err := fmt.Fprintln(w, "no tasks")
		return err
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "TITLE\tCATEGORY\tPRIORITY\tDEADLINE\tSTATUS")
	for _, t := range tasks {
		deadline := model.FormatDate(t.Deadline)
		if deadline == "" {
			deadline = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", t.Title, t.Category, t.Priority, deadline, t.Status)
	}
	return tw.Flush()
}

func printTask(w io.Writer, t model.Task) error {
	tw := newTable(w)
	fmt.Fprintf(tw, "ID:\t%s\n", t.ID)
	fmt.Fprintf(tw, "Title:\t%s\n", t.Title)
	if t.Description != "" {
		fmt.Fprintf(tw, "Description:\t%s\n", t.Description)
	}
	fmt.Fprintf(tw, "Category:\t%s\n", t.Category)
	fmt.Fprintf(tw, "Priority:\t%s\n", t.Priority)
	if t.Deadline != nil {
		fmt.Fprintf(tw, "Deadline:\t%s\n", model.FormatDate(t.Deadline))
	}
	fmt.Fprintf(tw, "Status:\t%s\n", t.Status)
	return tw.Flush()
}

func printNames(w io.Writer, names []string) error {
	for _, name := range names {
		if _, err := fmt.Fprintln(w, name); err != nil {
			return err
		}
	}
	return nil
}

type reminderRow struct {
	id    string
	task  string
	kind  model.ReminderKind
	fires string
}

func printReminders(w io.Writer, rows []reminderRow) error {
	if len(rows) == 0 {
		_, err := fmt.Fprintln(w, "no reminders")
		return err
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tTASK\tKIND\tDATE")
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", r.id, r.task, r.kind, r.fires)
	}
	return tw.Flush()
}

func printStats(w io.Writer, st store.Stats) error {
	tw := newTable(w)
	fmt.Fprintf(tw, "Total:\t%d\n", st.Total)
	fmt.Fprintf(tw, "Completed:\t%d\n", st.Completed)
	fmt.Fprintf(tw, "Delayed:\t%d\n", st.Delayed)
	fmt.Fprintf(tw, "Due within 7 days:\t%d\n", st.DueSoon)
	return tw.Flush()
}
