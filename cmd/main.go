package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yungbote/wellbore-architecture/internal/app"
	"github.com/yungbote/wellbore-architecture/internal/platform/shutdown"
	"github.com/yungbote/wellbore-architecture/internal/realtime"
)

func main() {
	ctx, stop := shutdown.NotifyContext(context.Background())
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "wellbore-architecture",
		Short:         "Well-bore architecture record service",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runServe,
	}
	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Serve the HTTP API and run the retention sweeper",
			RunE:  runServe,
		},
		&cobra.Command{
			Use:   "sweep",
			Short: "Run one retention sweep and exit",
			RunE:  runSweep,
		},
		&cobra.Command{
			Use:   "check-schema",
			Short: "Verify the database schema, rebuilding it on mismatch",
			RunE:  runCheckSchema,
		},
		&cobra.Command{
			Use:   "watch",
			Short: "Print record change events as JSON lines",
			RunE:  runWatch,
		},
	)
	return root
}

func withApp(cmd *cobra.Command, fn func(ctx context.Context, a *app.App) error) error {
	ctx := cmd.Context()
	a, err := app.New(ctx)
	if err != nil {
		return fmt.Errorf("init app: %w", err)
	}
	defer a.Close()
	return fn(ctx, a)
}

func runServe(cmd *cobra.Command, _ []string) error {
	return withApp(cmd, func(ctx context.Context, a *app.App) error {
		return a.Run(ctx)
	})
}

func runSweep(cmd *cobra.Command, _ []string) error {
	return withApp(cmd, func(ctx context.Context, a *app.App) error {
		removed, err := a.SweepOnce(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "removed %d record(s)\n", removed)
		return nil
	})
}

func runCheckSchema(cmd *cobra.Command, _ []string) error {
	return withApp(cmd, func(ctx context.Context, a *app.App) error {
		report, err := a.EnsureSchema(ctx)
		if err != nil {
			return err
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	})
}

func runWatch(cmd *cobra.Command, _ []string) error {
	return withApp(cmd, func(ctx context.Context, a *app.App) error {
		enc := json.NewEncoder(cmd.OutOrStdout())
		return a.Watch(ctx, func(ev realtime.ChangeEvent) {
			_ = enc.Encode(ev)
		})
	})
}
