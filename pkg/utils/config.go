package utils

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	RabbitMQ RabbitMQConfig
	Seatmap  SeatmapConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

type RabbitMQConfig struct {
	URL   string
	Queue string
}

type SeatmapConfig struct {
	MaxSelections   int
	AisleThreshold  float64
	Layouts         string // e.g. 359=ABC-DEFG-HJK;320=ABC-DEF
	DefaultCurrency string
}

func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")

	// Set defaults
	v.SetDefault("APP_NAME", "seatmap-engine")
	v.SetDefault("PORT", "8080")
	v.SetDefault("DEBUG", false)
	v.SetDefault("LOG_PATH", "logs/")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("CACHE_TTL", "30m")
	v.SetDefault("RABBITMQ_QUEUE", "seat.selection.changed")
	v.SetDefault("SEATMAP_MAX_SELECTIONS", 0)
	v.SetDefault("SEATMAP_AISLE_THRESHOLD", 0.10)
	v.SetDefault("SEATMAP_DEFAULT_CURRENCY", "EUR")

	// .env is optional, the environment alone is enough in containers
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	v.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:    v.GetString("APP_NAME"),
			Port:    v.GetString("PORT"),
			Debug:   v.GetBool("DEBUG"),
			LogPath: v.GetString("LOG_PATH"),
		},
		Database: DatabaseConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			Name:     v.GetString("DB_NAME"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASS"),
			MaxConns: v.GetInt32("DB_MAX_CONNS"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
			TTL:      v.GetDuration("CACHE_TTL"),
		},
		RabbitMQ: RabbitMQConfig{
			URL:   v.GetString("RABBITMQ_URL"),
			Queue: v.GetString("RABBITMQ_QUEUE"),
		},
		Seatmap: SeatmapConfig{
			MaxSelections:   v.GetInt("SEATMAP_MAX_SELECTIONS"),
			AisleThreshold:  v.GetFloat64("SEATMAP_AISLE_THRESHOLD"),
			Layouts:         v.GetString("SEATMAP_LAYOUTS"),
			DefaultCurrency: strings.ToUpper(v.GetString("SEATMAP_DEFAULT_CURRENCY")),
		},
	}

	return config, nil
}
