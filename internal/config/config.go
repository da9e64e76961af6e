package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	DB       DBConfig
	Redis    RedisConfig
	Logger   LoggerConfig
	Pipeline PipelineConfig
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	BodyLimit    int
}

type DBConfig struct {
	Path string `yaml:"path"`
}

type RedisConfig struct {
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type LoggerConfig struct {
	Level string `yaml:"level"`
	Env   string `yaml:"env"`
}

// PipelineConfig holds the knobs of the document-to-quiz pipeline.
type PipelineConfig struct {
	MinInputLength int
	MaxQuestions   int
	KeySentences   int
	KeyTerms       int
	SalvageTimeout time.Duration
	AnswerKeyTTL   time.Duration
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	// Add config paths based on environment
	if os.Getenv("ENV") == "test" {
		viper.AddConfigPath("../../config")
		viper.AddConfigPath("../../")
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("./config")
	}

	viper.AutomaticEnv()

	viper.SetDefault("server.port", 8090)
	viper.SetDefault("server.read_timeout", 20)
	viper.SetDefault("server.write_timeout", 20)
	viper.SetDefault("server.body_limit_mb", 10)
	viper.SetDefault("db.path", "docquiz.db")
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.env", "development")
	viper.SetDefault("pipeline.min_input_length", 100)
	viper.SetDefault("pipeline.max_questions", 10)
	viper.SetDefault("pipeline.key_sentences", 10)
	viper.SetDefault("pipeline.key_terms", 15)
	viper.SetDefault("pipeline.salvage_timeout", 10)
	viper.SetDefault("pipeline.answer_key_ttl_hours", 24)

	if err := viper.ReadInConfig(); err != nil {
		// Defaults plus environment variables are enough to run without a file.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	configFile := viper.ConfigFileUsed()
	if configFile != "" {
		absPath, _ := filepath.Abs(configFile)
		fmt.Printf("Using config file: %s\n", absPath)
	}

	config := &Config{
		Server: ServerConfig{
			Port:         viper.GetInt("server.port"),
			ReadTimeout:  viper.GetDuration("server.read_timeout") * time.Second,
			WriteTimeout: viper.GetDuration("server.write_timeout") * time.Second,
			BodyLimit:    viper.GetInt("server.body_limit_mb") * 1024 * 1024,
		},
		DB: DBConfig{
			Path: viper.GetString("db.path"),
		},
		Redis: RedisConfig{
			Address:  viper.GetString("redis.address"),
			Password: viper.GetString("redis.password"),
			DB:       viper.GetInt("redis.db"),
		},
		Logger: LoggerConfig{
			Level: viper.GetString("logger.level"),
			Env:   viper.GetString("logger.env"),
		},
		Pipeline: PipelineConfig{
			MinInputLength: viper.GetInt("pipeline.min_input_length"),
			MaxQuestions:   viper.GetInt("pipeline.max_questions"),
			KeySentences:   viper.GetInt("pipeline.key_sentences"),
			KeyTerms:       viper.GetInt("pipeline.key_terms"),
			SalvageTimeout: viper.GetDuration("pipeline.salvage_timeout") * time.Second,
			AnswerKeyTTL:   viper.GetDuration("pipeline.answer_key_ttl_hours") * time.Hour,
		},
	}

	// Override with environment variables if set
	if dbPath := os.Getenv("DB_PATH"); dbPath != "" {
		config.DB.Path = dbPath
	}
	if redisAddress := os.Getenv("REDIS_ADDRESS"); redisAddress != "" {
		config.Redis.Address = redisAddress
	}
	if redisPassword := os.Getenv("REDIS_PASSWORD"); redisPassword != "" {
		config.Redis.Password = redisPassword
	}

	return config, nil
}

// GetDSN returns the sqlite DSN for the configured database file.
func (c *Config) GetDSN() string {
	return fmt.Sprintf("file:%s?_foreign_keys=on", c.DB.Path)
}
