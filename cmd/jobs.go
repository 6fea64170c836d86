package main

import (
	"context"

	"github.com/lshigami/dailyquest/config"
	"github.com/lshigami/dailyquest/internal/scheduler"
	"github.com/lshigami/dailyquest/internal/service"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Archive every unfinished mission from previous days, then exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		var s *scheduler.ArchiveScheduler
		return runJob(func(ctx context.Context) error {
			count, err := s.RunOnce(ctx)
			if err != nil {
				return err
			}
			log.Info().Int("archived", count).Msg("Sweep finished")
			return nil
		}, &s)
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Import the question catalog from a CSV file",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("file")
		var (
			cfg       *config.Config
			questions service.QuestionService
		)
		return runJob(func(ctx context.Context) error {
			if path == "" {
				path = cfg.QuestionsCSV
			}
			n, err := questions.SeedFromFile(ctx, path)
			if err != nil {
				return err
			}
			log.Info().Int("imported", n).Str("file", path).Msg("Question catalog seeded")
			return nil
		}, &cfg, &questions)
	},
}

var migrateAnswersCmd = &cobra.Command{
	Use:   "migrate-answers",
	Short: "Upgrade stored answers written before attempt tracking",
	RunE: func(cmd *cobra.Command, args []string) error {
		var migrations service.MigrationService
		return runJob(func(ctx context.Context) error {
			result, err := migrations.MigrateAnswers(ctx)
			if err != nil {
				return err
			}
			log.Info().
				Int("processed", result.TotalProcessed).
				Int("migrated", result.MigratedCount).
				Int("errors", result.ErrorCount).
				Msg("Answer migration finished")
			return nil
		}, &migrations)
	},
}

func init() {
	seedCmd.Flags().String("file", "", "CSV file to import (defaults to QUESTIONS_CSV)")
}
