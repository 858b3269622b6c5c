package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server  ServerConfig
	Logger  LoggerConfig
	Redis   RedisConfig
	Storage StorageConfig
	DB      DBConfig
	Quiz    QuizConfig
	Report  ReportConfig
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type LoggerConfig struct {
	Level string `yaml:"level"`
	Env   string `yaml:"env"`
}

type RedisConfig struct {
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// StorageConfig selects where question packs live.
// Mode is "local" (a directory of CSV files) or "s3" (S3/R2 compatible).
type StorageConfig struct {
	Mode  string
	Local LocalStorageConfig
	S3    S3StorageConfig
}

type LocalStorageConfig struct {
	Path string `yaml:"path"`
}

type S3StorageConfig struct {
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	Bucket    string `yaml:"bucket"`
	Prefix    string `yaml:"prefix"`
	Region    string `yaml:"region"`
	UseSSL    bool   `yaml:"use_ssl"`
}

type DBConfig struct {
	Path string `yaml:"path"`
}

// QuizConfig holds the default sampling window for a quiz session.
type QuizConfig struct {
	MinQuestions int
	MaxQuestions int
}

type ReportConfig struct {
	PaidOnly bool `yaml:"paid_only"`
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	if os.Getenv("ENV") == "test" {
		viper.AddConfigPath("../../configs")
		viper.AddConfigPath("../../")
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("./configs")
	}

	viper.AutomaticEnv()

	viper.SetDefault("server.port", 8090)
	viper.SetDefault("server.read_timeout", 20)
	viper.SetDefault("server.write_timeout", 20)
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.env", "development")
	viper.SetDefault("storage.mode", "local")
	viper.SetDefault("storage.local.path", "./content")
	viper.SetDefault("storage.s3.prefix", "packs/")
	viper.SetDefault("storage.s3.region", "auto")
	viper.SetDefault("db.path", "./study-game.db")
	viper.SetDefault("quiz.min_questions", 10)
	viper.SetDefault("quiz.max_questions", 15)
	viper.SetDefault("report.paid_only", true)

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	config := &Config{
		Server: ServerConfig{
			Port:         viper.GetInt("server.port"),
			ReadTimeout:  viper.GetDuration("server.read_timeout") * time.Second,
			WriteTimeout: viper.GetDuration("server.write_timeout") * time.Second,
		},
		Logger: LoggerConfig{
			Level: viper.GetString("logger.level"),
			Env:   viper.GetString("logger.env"),
		},
		Redis: RedisConfig{
			Address:  viper.GetString("redis.address"),
			Password: viper.GetString("redis.password"),
			DB:       viper.GetInt("redis.db"),
		},
		Storage: StorageConfig{
			Mode: viper.GetString("storage.mode"),
			Local: LocalStorageConfig{
				Path: viper.GetString("storage.local.path"),
			},
			S3: S3StorageConfig{
				Endpoint:  viper.GetString("storage.s3.endpoint"),
				AccessKey: viper.GetString("storage.s3.access_key"),
				SecretKey: viper.GetString("storage.s3.secret_key"),
				Bucket:    viper.GetString("storage.s3.bucket"),
				Prefix:    viper.GetString("storage.s3.prefix"),
				Region:    viper.GetString("storage.s3.region"),
				UseSSL:    viper.GetBool("storage.s3.use_ssl"),
			},
		},
		DB: DBConfig{
			Path: viper.GetString("db.path"),
		},
		Quiz: QuizConfig{
			MinQuestions: viper.GetInt("quiz.min_questions"),
			MaxQuestions: viper.GetInt("quiz.max_questions"),
		},
		Report: ReportConfig{
			PaidOnly: viper.GetBool("report.paid_only"),
		},
	}

	// Override with environment variables if set
	if port := os.Getenv("SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if env := os.Getenv("APP_ENV"); env != "" {
		config.Logger.Env = env
	}
	if redisAddress := os.Getenv("REDIS_ADDRESS"); redisAddress != "" {
		config.Redis.Address = redisAddress
	}
	if redisPassword := os.Getenv("REDIS_PASSWORD"); redisPassword != "" {
		config.Redis.Password = redisPassword
	}
	if mode := os.Getenv("STORAGE_MODE"); mode != "" {
		config.Storage.Mode = mode
	}
	if path := os.Getenv("CSV_BASE_PATH"); path != "" {
		config.Storage.Local.Path = path
	}
	if endpoint := os.Getenv("S3_ENDPOINT"); endpoint != "" {
		config.Storage.S3.Endpoint = endpoint
	}
	if key := os.Getenv("S3_ACCESS_KEY"); key != "" {
		config.Storage.S3.AccessKey = key
	}
	if secret := os.Getenv("S3_SECRET_KEY"); secret != "" {
		config.Storage.S3.SecretKey = secret
	}
	if bucket := os.Getenv("S3_BUCKET"); bucket != "" {
		config.Storage.S3.Bucket = bucket
	}
	if dbPath := os.Getenv("DB_PATH"); dbPath != "" {
		config.DB.Path = dbPath
	}
	if paidOnly := os.Getenv("REPORT_PAID_ONLY"); paidOnly != "" {
		config.Report.PaidOnly = paidOnly == "1" || paidOnly == "true"
	}

	return config, nil
}
