// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package cli

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-balance-sync/internal/adapter"
	"github.com/MKhiriev/go-balance-sync/models"
)

func newTaskCommand(app *cliApp) *cobra.Command {
	task := &cobra.Command{
		Use:   "task",
		Short: "Manage tasks",
	}
	task.AddCommand(
		newTaskAddCommand(app),
		newTaskListCommand(app),
		newTaskDoneCommand(app),
		newTaskRemoveCommand(app),
	)
	return task
}

func newTaskAddCommand(app *cliApp) *cobra.Command {
	var (
		notes    string
		priority int
		due      string
	)

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Create a task",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			task := models.Task{
				Title:    strings.Join(args, " "),
				Notes:    notes,
				Priority: priority,
			}
			if due != "" {
				dueAt, err := parseDueDate(due)
				if err != nil {
					return err
				}
				task.DueAt = &dueAt
			}

			created, err := app.agent.CreateTask(cmd.Context(), task)
			if err != nil {
				return err
			}

			if app.json {
				return printJSON(cmd, created)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s created task %s\n", green("✓"), shortID(created.ID))
			return nil
		},
	}

	cmd.Flags().StringVarP(&notes, "notes", "n", "", "free-form notes")
	cmd.Flags().IntVarP(&priority, "priority", "p", 0, "priority, higher sorts first")
	cmd.Flags().StringVar(&due, "due", "", `due date, "2006-01-02" or RFC3339`)
	return cmd
}

func newTaskListCommand(app *cliApp) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List live tasks",
		RunE: func(cmd *cobra.Command, _ []string) error {
			list, err := app.agent.ListTasks(cmd.Context())
			if err != nil {
				return err
			}

			if app.json {
				return printJSON(cmd, list)
			}

			out := cmd.OutOrStdout()
			if list.Count == 0 {
				fmt.Fprintln(out, "No tasks.")
				return nil
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTITLE\tPRI\tDUE\tNOTES")
			for _, task := range list.Tasks {
				fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\n",
					shortID(task.ID), task.Title, task.Priority, formatDue(task.DueAt), truncate(task.Notes, 40))
			}
			if err := w.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(out, "\n%d task(s)\n", list.Count)
			return nil
		},
	}
}

func newTaskDoneCommand(app *cliApp) *cobra.Command {
	var note string

	cmd := &cobra.Command{
		Use:   "done <id>",
		Short: "Mark a task as completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveTaskID(cmd.Context(), app.agent, args[0])
			if err != nil {
				return err
			}

			completion, err := app.agent.CompleteTask(cmd.Context(), id, note)
			if err != nil {
				return err
			}

			if app.json {
				return printJSON(cmd, completion)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s completed task %s at %s\n",
				green("✓"), shortID(id), formatMillis(completion.CompletedAt))
			return nil
		},
	}

	cmd.Flags().StringVarP(&note, "note", "n", "", "attach a completion note")
	return cmd
}

func newTaskRemoveCommand(app *cliApp) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveTaskID(cmd.Context(), app.agent, args[0])
			if err != nil {
				return err
			}

			if err := app.agent.DeleteTask(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s removed task %s\n", green("✓"), shortID(id))
			return nil
		},
	}
}

// resolveTaskID expands a task id prefix into the full id by asking the agent
// for the task list. Exact matches win; otherwise the prefix must match
// exactly one task.
func resolveTaskID(ctx context.Context, agent adapter.AgentAdapter, prefix string) (string, error) {
	list, err := agent.ListTasks(ctx)
	if err != nil {
		return "", err
	}

	var matches []string
	for _, task := range list.Tasks {
		if task.ID == prefix {
			return task.ID, nil
		}
		if strings.HasPrefix(task.ID, prefix) {
			matches = append(matches, task.ID)
		}
	}

	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return "", fmt.Errorf("no task matches %q", prefix)
	default:
		return "", fmt.Errorf("%q is ambiguous: %d tasks match", prefix, len(matches))
	}
}

// parseDueDate accepts a bare date or a full RFC3339 timestamp and returns
// epoch milliseconds.
func parseDueDate(raw string) (int64, error) {
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t.UnixMilli(), nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return 0, fmt.Errorf(`cannot parse due date %q: use "2006-01-02" or RFC3339`, raw)
	}
	return t.UnixMilli(), nil
}

func formatDue(dueAt *int64) string {
	if dueAt == nil {
		return "-"
	}
	return time.UnixMilli(*dueAt).Format("2006-01-02")
}
