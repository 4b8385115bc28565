package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/baiirun/launchboard/internal/board"
	"github.com/baiirun/launchboard/internal/model"
)

// taskFlags are the form fields shared by add and edit.
type taskFlags struct {
	title       string
	description string
	status      string
	priority    string
	assignee    string
	tags        string
	due         string
}

func (f *taskFlags) register(cmd *cobra.Command, status, priority string) {
	cmd.Flags().StringVarP(&f.description, "description", "d", "", "task description")
	cmd.Flags().StringVarP(&f.status, "status", "s", status, "column: backlog, week1-week4, completed")
	cmd.Flags().StringVarP(&f.priority, "priority", "p", priority, "low, medium, high, or critical")
	cmd.Flags().StringVarP(&f.assignee, "assignee", "a", "", "who owns the task")
	cmd.Flags().StringVarP(&f.tags, "tags", "t", "", "comma-separated tags")
	cmd.Flags().StringVar(&f.due, "due", "", "due date (YYYY-MM-DD)")
}

// formFromTask fills a form with a task's current values.
func formFromTask(t model.Task) model.Form {
	form := model.Form{
		Title:       t.Title,
		Description: t.Description,
		Status:      string(t.Status),
		Priority:    string(t.Priority),
		Assignee:    t.Assignee,
		Tags:        strings.Join(t.Tags, ", "),
	}
	if t.HasDueDate() {
		form.DueDate = t.DueDate.Time().Format("2006-01-02")
	}
	return form
}

func checkbox(done bool) string {
	if done {
		return "[x]"
	}
	return "[ ]"
}

func printTask(w io.Writer, t model.Task) {
	fmt.Fprintf(w, "%s %s  %s\n", checkbox(t.Completed), t.ID, t.DisplayTitle())
	fmt.Fprintf(w, "    %s · %s", t.Status.Label(), t.Priority)
	if t.Assignee != "" {
		fmt.Fprintf(w, " · @%s", t.Assignee)
	}
	if t.HasDueDate() {
		fmt.Fprintf(w, " · due %s", t.DueDate.Time().Format("2006-01-02"))
	}
	if len(t.Tags) > 0 {
		fmt.Fprintf(w, " · #%s", strings.Join(t.Tags, " #"))
	}
	fmt.Fprintln(w)
	if t.Description != "" {
		fmt.Fprintf(w, "    %s\n", t.Description)
	}
}

func newListCmd(a *app) *cobra.Command {
	var status string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks column by column",
		RunE: a.withSession(func(cmd *cobra.Command, args []string, s *session) error {
			if status != "" && !model.Status(status).IsValid() {
				return fmt.Errorf("unknown column %q", status)
			}
			if err := s.board.Load(cmd.Context()); err != nil {
				return err
			}

			tasks := []model.Task{}
			for _, st := range model.Statuses {
				if status != "" && st != model.Status(status) {
					continue
				}
				tasks = append(tasks, s.board.Cache().Column(st)...)
			}

			out := cmd.OutOrStdout()
			if a.jsonOut {
				return printJSON(out, tasks)
			}
			if len(tasks) == 0 {
				fmt.Fprintln(out, "No tasks")
				return nil
			}
			for _, t := range tasks {
				fmt.Fprintf(out, "%s %-10s %-8s %s  %s\n", checkbox(t.Completed), t.Status, t.Priority, t.ID, t.DisplayTitle())
			}
			return nil
		}),
	}
	cmd.Flags().StringVarP(&status, "status", "s", "", "only this column")
	return cmd
}

func newShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show task details",
		Args:  cobra.ExactArgs(1),
		RunE: a.withSession(func(cmd *cobra.Command, args []string, s *session) error {
			if err := s.board.Load(cmd.Context()); err != nil {
				return err
			}
			task, ok := s.board.Cache().Find(args[0])
			if !ok {
				return fmt.Errorf("task not found: %s", args[0])
			}

			out := cmd.OutOrStdout()
			if a.jsonOut {
				return printJSON(out, task)
			}
			printTask(out, task)
			return nil
		}),
	}
}

func newAddCmd(a *app) *cobra.Command {
	var f taskFlags

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Create a new task",
		Args:  cobra.MinimumNArgs(1),
		RunE: a.withSession(func(cmd *cobra.Command, args []string, s *session) error {
			form := model.Form{
				Title:       strings.Join(args, " "),
				Description: f.description,
				Status:      f.status,
				Priority:    f.priority,
				Assignee:    f.assignee,
				Tags:        f.tags,
				DueDate:     f.due,
			}
			if err := s.board.Load(cmd.Context()); err != nil {
				return err
			}
			created, err := s.board.Submit(cmd.Context(), "", form)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if a.jsonOut {
				return printJSON(out, created)
			}
			fmt.Fprintf(out, "Created %s in %s\n", created.ID, created.Status.Label())
			return nil
		}),
	}
	f.register(cmd, string(model.StatusBacklog), string(model.PriorityMedium))
	return cmd
}

func newEditCmd(a *app) *cobra.Command {
	var f taskFlags

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change a task's fields",
		Long:  `Change a task's fields. Only the flags given are changed; the task keeps its position and checkbox. Pass --due "" to clear the due date.`,
		Args:  cobra.ExactArgs(1),
		RunE: a.withSession(func(cmd *cobra.Command, args []string, s *session) error {
			ctx := cmd.Context()
			if err := s.board.Load(ctx); err != nil {
				return err
			}
			existing, ok := s.board.Cache().Find(args[0])
			if !ok {
				return fmt.Errorf("task not found: %s", args[0])
			}

			form := formFromTask(existing)
			flags := cmd.Flags()
			set := func(name string, dst *string, v string) {
				if flags.Changed(name) {
					*dst = v
				}
			}
			set("title", &form.Title, f.title)
			set("description", &form.Description, f.description)
			set("status", &form.Status, f.status)
			set("priority", &form.Priority, f.priority)
			set("assignee", &form.Assignee, f.assignee)
			set("tags", &form.Tags, f.tags)
			set("due", &form.DueDate, f.due)

			updated, err := s.board.Submit(ctx, existing.ID, form)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if a.jsonOut {
				return printJSON(out, updated)
			}
			fmt.Fprintf(out, "Updated %s\n", existing.ID)
			return nil
		}),
	}
	cmd.Flags().StringVar(&f.title, "title", "", "task title")
	f.register(cmd, "", "")
	return cmd
}

func newMoveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "move <id> <column> [index]",
		Short: "Drop a task into a column",
		Long:  `Drop a task into a column at the given position (default: the end). Moving into completed checks the task; moving out of it unchecks it.`,
		Args:  cobra.RangeArgs(2, 3),
		RunE: a.withSession(func(cmd *cobra.Command, args []string, s *session) error {
			ctx := cmd.Context()
			if err := s.board.Load(ctx); err != nil {
				return err
			}

			column := model.Status(args[1])
			index := len(s.board.Cache().Column(column))
			if len(args) == 3 {
				n, err := strconv.Atoi(args[2])
				if err != nil || n < 0 {
					return fmt.Errorf("invalid index %q", args[2])
				}
				index = n
			}

			ev := board.DragEvent{ItemID: args[0], TargetColumn: column, NewIndex: index}
			if err := s.board.Move(ctx, ev); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if a.jsonOut {
				moved, _ := s.board.Cache().Find(ev.ItemID)
				return printJSON(out, moved)
			}
			fmt.Fprintf(out, "Moved %s to %s\n", ev.ItemID, column.Label())
			return nil
		}),
	}
}

func newCheckCmd(a *app, done bool) *cobra.Command {
	use, short := "check <id>", "Tick a task's checkbox"
	if !done {
		use, short = "uncheck <id>", "Clear a task's checkbox"
	}
	return &cobra.Command{
		Use:   use,
		Short: short,
		Long:  short + ". The task stays in its column, except that unchecking a completed-column task moves it to the backlog.",
		Args:  cobra.ExactArgs(1),
		RunE: a.withSession(func(cmd *cobra.Command, args []string, s *session) error {
			ctx := cmd.Context()
			if err := s.board.Load(ctx); err != nil {
				return err
			}
			if err := s.board.SetCompleted(ctx, args[0], done); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if a.jsonOut {
				task, _ := s.board.Cache().Find(args[0])
				return printJSON(out, task)
			}
			fmt.Fprintf(out, "%s %s\n", checkbox(done), args[0])
			return nil
		}),
	}
}

func newRmCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: a.withSession(func(cmd *cobra.Command, args []string, s *session) error {
			ctx := cmd.Context()
			if err := s.board.Load(ctx); err != nil {
				return err
			}
			if err := s.board.Delete(ctx, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
			return nil
		}),
	}
}
