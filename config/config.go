package config

import (
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Server       Server
	Log          Log
	Database     Database
	Mongo        Mongo
	Redis        Redis
	RabbitMQ     RabbitMQ
	Consul       Consul
	Mission      Mission
	GeminiApiKey string
	QuestionsCSV string
}

type Server struct {
	Port    string
	GinMode string
}

type Log struct {
	Level  string
	Pretty bool
}

type Database struct {
	Driver     string // postgres | sqlite
	Host       string
	Port       string
	User       string
	Password   string
	Name       string
	SQLitePath string
}

type Mongo struct {
	URI      string
	Database string
}

type Redis struct {
	Addr     string
	Password string
	DB       int
}

type RabbitMQ struct {
	URI      string
	Exchange string
}

type Consul struct {
	Address        string
	ServiceID      string
	ServiceName    string
	ServiceAddress string
}

type Mission struct {
	// Store selects the mission/practice persistence backend: sql or mongo.
	Store          string
	ArchiveAt      string
	ArchiveWorkers int
	MaxRetries     int
	LockTTL        time.Duration
}

// MongoEnabled reports whether missions and practice sessions live in MongoDB.
func (c *Config) MongoEnabled() bool {
	return strings.EqualFold(c.Mission.Store, "mongo")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("GIN_MODE", "debug")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_PRETTY", true)
	v.SetDefault("DATABASE_DRIVER", "postgres")
	v.SetDefault("DATABASE_PORT", "5432")
	v.SetDefault("SQLITE_PATH", "dailyquest.db")
	v.SetDefault("MISSION_STORE", "sql")
	v.SetDefault("MONGO_DATABASE", "dailyquest")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("RABBITMQ_EXCHANGE", "dailyquest.events")
	v.SetDefault("SERVICE_NAME", "dailyquest")
	v.SetDefault("SERVICE_ADDRESS", "localhost")
	v.SetDefault("QUESTIONS_CSV", "data/questions.csv")
	v.SetDefault("ARCHIVE_AT", "00:05")
	v.SetDefault("ARCHIVE_WORKERS", 8)
	v.SetDefault("MAX_RETRIES", 3)
	v.SetDefault("ARCHIVE_LOCK_TTL", "10m")
}

func NewConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	setDefaults(v)

	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		log.Warn().Err(err).Msg("Error reading config file")
	}

	config := fromViper(v)
	log.Info().
		Str("port", config.Server.Port).
		Str("databaseDriver", config.Database.Driver).
		Str("missionStore", config.Mission.Store).
		Msg("Config loaded")
	return config, nil
}

func fromViper(v *viper.Viper) *Config {
	var config Config

	config.Server.Port = v.GetString("SERVER_PORT")
	config.Server.GinMode = v.GetString("GIN_MODE")

	config.Log.Level = v.GetString("LOG_LEVEL")
	config.Log.Pretty = v.GetBool("LOG_PRETTY")

	config.Database.Driver = strings.ToLower(v.GetString("DATABASE_DRIVER"))
	config.Database.Host = v.GetString("DATABASE_HOST")
	config.Database.Port = v.GetString("DATABASE_PORT")
	config.Database.User = v.GetString("DATABASE_USER")
	config.Database.Password = v.GetString("DATABASE_PASSWORD")
	config.Database.Name = v.GetString("DATABASE_NAME")
	config.Database.SQLitePath = v.GetString("SQLITE_PATH")

	config.Mongo.URI = v.GetString("MONGO_URI")
	config.Mongo.Database = v.GetString("MONGO_DATABASE")

	config.Redis.Addr = v.GetString("REDIS_ADDR")
	config.Redis.Password = v.GetString("REDIS_PASSWORD")
	config.Redis.DB = v.GetInt("REDIS_DB")

	config.RabbitMQ.URI = v.GetString("RABBITMQ_URI")
	config.RabbitMQ.Exchange = v.GetString("RABBITMQ_EXCHANGE")

	config.Consul.Address = v.GetString("CONSUL_ADDRESS")
	config.Consul.ServiceID = v.GetString("SERVICE_ID")
	config.Consul.ServiceName = v.GetString("SERVICE_NAME")
	config.Consul.ServiceAddress = v.GetString("SERVICE_ADDRESS")

	config.Mission.Store = strings.ToLower(v.GetString("MISSION_STORE"))
	config.Mission.ArchiveAt = v.GetString("ARCHIVE_AT")
	config.Mission.ArchiveWorkers = v.GetInt("ARCHIVE_WORKERS")
	config.Mission.MaxRetries = v.GetInt("MAX_RETRIES")
	config.Mission.LockTTL = v.GetDuration("ARCHIVE_LOCK_TTL")

	config.GeminiApiKey = v.GetString("GEMINI_API_KEY")
	config.QuestionsCSV = v.GetString("QUESTIONS_CSV")

	return &config
}
