package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/baiirun/launchboard/internal/config"
)

// ProbeJSON is the --json form of ping.
type ProbeJSON struct {
	Request   string `json:"request"`
	Status    int    `json:"status"`
	OK        bool   `json:"ok"`
	ElapsedMS int64  `json:"elapsed_ms"`
	Body      string `json:"body"`
}

func newSeedCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Add the sample launch plan",
		Long:  `Add the sample launch plan to whichever backend is in use, whatever is already on the board.`,
		RunE: a.withSession(func(cmd *cobra.Command, args []string, s *session) error {
			ctx := cmd.Context()
			if err := s.board.Load(ctx); err != nil {
				return err
			}
			n, err := s.board.Seed(ctx)
			fmt.Fprintf(cmd.OutOrStdout(), "Created %d sample tasks (%s)\n", n, s.board.Mode())
			return err
		}),
	}
}

func newClearCmd(a *app) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every task",
		RunE: a.withSession(func(cmd *cobra.Command, args []string, s *session) error {
			if !yes {
				return errors.New("refusing to delete every task without --yes")
			}
			ctx := cmd.Context()
			if err := s.board.Load(ctx); err != nil {
				return err
			}
			n, err := s.board.ClearAll(ctx)
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d tasks (%s)\n", n, s.board.Mode())
			return err
		}),
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm deleting every task")
	return cmd
}

func newPingCmd(a *app) *cobra.Command {
	var createTest bool

	cmd := &cobra.Command{
		Use:   "ping",
		Short: "Send a test request to the remote API",
		Long:  `Send a one-task list request to the remote API and show what came back. With --create-test, also add a diagnostic task to the backend in use.`,
		RunE: a.withSession(func(cmd *cobra.Command, args []string, s *session) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			probe, err := s.board.Facade().Probe(ctx)
			if err != nil {
				return err
			}
			if a.jsonOut && !createTest {
				return printJSON(out, ProbeJSON{
					Request:   probe.Request,
					Status:    probe.Status,
					OK:        probe.OK(),
					ElapsedMS: probe.Elapsed.Milliseconds(),
					Body:      probe.Body,
				})
			}

			verdict := "API working"
			if !probe.OK() {
				verdict = "API failed"
			}
			fmt.Fprintf(out, "%s (%s, %s)\n", verdict, probe.Request, probe.Elapsed.Round(time.Millisecond))
			if probe.Body != "" {
				fmt.Fprintln(out, probe.Body)
			}

			if createTest {
				if err := s.board.Load(ctx); err != nil {
					return err
				}
				created, err := s.board.CreateTestTask(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Created test task %s (%s)\n", created.ID, s.board.Mode())
			}
			return nil
		}),
	}
	cmd.Flags().BoolVar(&createTest, "create-test", false, "also create a diagnostic task")
	return cmd
}

func newModeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "mode",
		Short: "Show which backend is in use",
		RunE: a.withSession(func(cmd *cobra.Command, args []string, s *session) error {
			if err := s.board.Load(cmd.Context()); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if a.jsonOut {
				keys, err := s.db.Keys(cmd.Context())
				if err != nil {
					return err
				}
				return printJSON(out, map[string]any{
					"mode":       s.board.Mode().String(),
					"tasks":      s.board.Cache().Len(),
					"db":         s.cfg.Local.Path,
					"local_keys": keys,
				})
			}
			fmt.Fprintln(out, s.board.Mode())
			return nil
		}),
	}
}

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := a.loadConfig(cmd)
			if err != nil {
				return err
			}
			b, err := yaml.Marshal(cfg)
			if err != nil {
				return fmt.Errorf("failed to marshal config: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(b)
			return err
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Write the default config file if there is none",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.NewLoader(newLogger(cmd.ErrOrStderr())).EnsureUserConfig()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	})
	return cmd
}
