package main

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/fx"
)

var rootCmd = &cobra.Command{
	Use:   "dailyquest",
	Short: "Daily mission quiz service",
	Long:  "DailyQuest serves daily five-question missions, mistake review and topic practice over HTTP.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServer()
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(sweepCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(migrateAnswersCmd)
}

// runJob starts the core graph, runs fn against the populated targets and
// stops the graph again.
func runJob(fn func(ctx context.Context) error, targets ...any) error {
	app := fx.New(
		coreModule,
		fx.NopLogger,
		fx.Populate(targets...),
	)
	if err := app.Err(); err != nil {
		return err
	}

	ctx := context.Background()
	if err := app.Start(ctx); err != nil {
		return err
	}
	jobErr := fn(ctx)
	if err := app.Stop(ctx); err != nil && jobErr == nil {
		return err
	}
	return jobErr
}
