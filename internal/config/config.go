package config

import (
	"time"

	env "github.com/caarlos0/env/v11"
	"go.uber.org/zap/zapcore"
)

type Config struct {
	OutputPath       string        `env:"OUTPUT_PATH" envDefault:"supporters.html"`
	DatasetPath      string        `env:"DATASET_PATH"`
	PageTitle        string        `env:"PAGE_TITLE" envDefault:"Supporters"`
	StrictContainers bool          `env:"STRICT_CONTAINERS" envDefault:"false"`
	ExecutionTimeout time.Duration `env:"EXECUTION_TIMEOUT" envDefault:"30s"`

	SentryDsn string        `env:"SENTRY_DSN"`
	JsonLogs  bool          `env:"JSON_LOGS" envDefault:"false"`
	LogLevel  zapcore.Level `env:"LOG_LEVEL" envDefault:"info"`

	Otel struct {
		Enabled     bool   `env:"ENABLED" envDefault:"true"`
		Endpoint    string `env:"ENDPOINT"`
		ServiceName string `env:"SERVICE_NAME" envDefault:"supporters-page"`
	} `envPrefix:"OTEL_"`
}

func LoadFromEnv() (Config, error) {
	var config Config
	err := env.Parse(&config)
	return config, err
}
