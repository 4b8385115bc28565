package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/baiirun/launchboard/internal/board"
	"github.com/baiirun/launchboard/internal/model"
	"github.com/baiirun/launchboard/internal/tui"
)

// StatsJSON is the --json form of the stats view.
type StatsJSON struct {
	Total     int                  `json:"total"`
	Completed int                  `json:"completed"`
	Pending   int                  `json:"pending"`
	Progress  int                  `json:"progress"`
	Counts    map[model.Status]int `json:"counts"`
	Mode      string               `json:"mode"`
}

// CountdownJSON is the --json form of the countdown.
type CountdownJSON struct {
	Text     string `json:"text"`
	Days     int    `json:"days"`
	Urgency  string `json:"urgency"`
	Launched bool   `json:"launched"`
	Launch   string `json:"launch"`
}

func newBoardCmd(a *app) *cobra.Command {
	var interactive bool

	cmd := &cobra.Command{
		Use:   "board",
		Short: "Show the launch board",
		Long:  `Show the launch board. An empty board is filled with the sample launch plan first. With -i the board is interactive.`,
		RunE: a.withSession(func(cmd *cobra.Command, args []string, s *session) error {
			ctx := cmd.Context()
			if interactive {
				return tui.Run(ctx, s.board, tui.Options{Launch: s.launch, Clock: s.clock})
			}

			if err := s.board.Start(ctx); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if a.jsonOut {
				return printJSON(out, s.board.Cache().Tasks())
			}
			now := s.clock()
			fmt.Fprintln(out, tui.RenderHeader(board.Countdown(now, s.launch), s.board.Stats(), s.board.Mode()))
			fmt.Fprintln(out)
			fmt.Fprintln(out, tui.RenderBoard(s.board.Cache(), tui.BoardOptions{Now: now}))
			return nil
		}),
	}
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "open the interactive board")
	return cmd
}

func newStatsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show progress and tasks per column",
		RunE: a.withSession(func(cmd *cobra.Command, args []string, s *session) error {
			if err := s.board.Load(cmd.Context()); err != nil {
				return err
			}
			stats := s.board.Stats()

			out := cmd.OutOrStdout()
			if a.jsonOut {
				return printJSON(out, StatsJSON{
					Total:     stats.Total,
					Completed: stats.Completed,
					Pending:   stats.Pending,
					Progress:  stats.Progress,
					Counts:    stats.Counts,
					Mode:      s.board.Mode().String(),
				})
			}
			fmt.Fprintln(out, tui.RenderStats(stats))
			return nil
		}),
	}
}

func newCountdownCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "countdown",
		Short: "Show the time left until launch",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := a.loadConfig(cmd)
			if err != nil {
				return err
			}
			launch, err := cfg.Launch.Time()
			if err != nil {
				return err
			}
			clock, err := cfg.Launch.Clock()
			if err != nil {
				return err
			}
			view := board.Countdown(clock(), launch)

			out := cmd.OutOrStdout()
			if a.jsonOut {
				return printJSON(out, CountdownJSON{
					Text:     view.Text,
					Days:     view.Days,
					Urgency:  view.Urgency.String(),
					Launched: view.Launched(),
					Launch:   launch.Format(time.RFC3339),
				})
			}
			fmt.Fprintln(out, tui.RenderCountdown(view))
			return nil
		},
	}
}
