package main

import (
	"context"

	"github.com/lshigami/dailyquest/config"
	"github.com/lshigami/dailyquest/database"
	"github.com/lshigami/dailyquest/internal/event"
	"github.com/lshigami/dailyquest/internal/lock"
	"github.com/lshigami/dailyquest/internal/logger"
	"github.com/lshigami/dailyquest/internal/repository"
	"github.com/lshigami/dailyquest/internal/scheduler"
	"github.com/lshigami/dailyquest/internal/service"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// coreModule wires storage, repositories and services. Both the HTTP server
// and the one-shot commands build on it.
var coreModule = fx.Options(
	fx.Provide(
		config.NewConfig,
		database.NewDatabase,
		database.NewMongo,
		database.NewRedis,
	),
	fx.Invoke(InitLogger),

	// Repositories
	fx.Provide(
		NewMissionRepository,
		NewPracticeRepository,
		repository.NewQuestionRepository,
	),

	// Infrastructure
	fx.Provide(
		NewPublisher,
		NewLocker,
	),

	// Services
	fx.Provide(
		func(repo repository.MissionRepository, questions repository.QuestionRepository, p event.Publisher) service.MissionService {
			return service.NewMissionService(repo, questions, p)
		},
		service.NewAnswerService,
		service.NewArchiveService,
		service.NewGeminiTutorService,
		service.NewReviewService,
		func(repo repository.PracticeRepository, questions repository.QuestionRepository, p event.Publisher) service.PracticeService {
			return service.NewPracticeService(repo, questions, p)
		},
		service.NewQuestionService,
		service.NewMigrationService,
		scheduler.NewArchiveScheduler,
	),

	fx.Invoke(AutoMigrateDB),
)

func InitLogger(cfg *config.Config) {
	logger.Init(cfg.Log.Level, cfg.Log.Pretty)
}

func NewMissionRepository(cfg *config.Config, db *gorm.DB, mdb *mongo.Database) repository.MissionRepository {
	if cfg.MongoEnabled() {
		return repository.NewMongoMissionRepository(mdb)
	}
	return repository.NewGormMissionRepository(db)
}

func NewPracticeRepository(cfg *config.Config, db *gorm.DB, mdb *mongo.Database) repository.PracticeRepository {
	if cfg.MongoEnabled() {
		return repository.NewMongoPracticeRepository(mdb)
	}
	return repository.NewGormPracticeRepository(db)
}

func NewPublisher(lc fx.Lifecycle, cfg *config.Config) (event.Publisher, error) {
	p, err := event.NewEventPublisher(cfg)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return p.Close()
		},
	})
	return p, nil
}

// NewLocker returns nil without Redis; the archive sweep then runs unlocked.
func NewLocker(client *redis.Client) lock.Locker {
	if client == nil {
		return nil
	}
	return lock.NewRedisLocker(client)
}

// AutoMigrateDB creates the catalog tables, and the mission and practice
// tables when those live in SQL.
func AutoMigrateDB(db *gorm.DB) error {
	log.Info().Msg("Running database migrations...")
	if err := db.AutoMigrate(repository.Models()...); err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}
