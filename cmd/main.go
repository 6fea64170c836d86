package main

import (
	"os"

	"github.com/rs/zerolog/log"
)

// @title DailyQuest Missions API
// @version 1.0
// @description Daily five-question missions with retries, feedback, mistake review and topic practice.
// @host localhost:8080
// @BasePath /api
// @schemes http https
func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("Command failed")
		os.Exit(1)
	}
}
