package config

import (
	"errors"
	"os"
	"time"

	"github.com/caarlos0/env/v7"
	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort         int    `env:"HTTP_PORT" envDefault:"8080"`
	PostgresDSN      string `env:"POSTGRES_DSN"`
	PostgresMaxConns int32  `env:"POSTGRES_MAX_CONNS" envDefault:"10"`
	LogLevel         string `env:"LOG_LEVEL" envDefault:"info"`
	JWT              JWT
	Upload           Upload
	Kafka            Kafka
	Admin            Admin
}

type JWT struct {
	Secret   string        `env:"JWT_SECRET"`
	TokenTTL time.Duration `env:"JWT_TOKEN_TTL" envDefault:"24h"`
}

type Upload struct {
	// Dir is the managed upload root; files land under Dir and are served
	// back by URL under URLPrefix.
	Dir       string `env:"UPLOAD_DIR" envDefault:"public/uploads/it_files"`
	URLPrefix string `env:"UPLOAD_URL_PREFIX" envDefault:"/uploads/it_files"`
	MaxBytes  int64  `env:"MAX_UPLOAD_BYTES" envDefault:"20971520"`
}

type Kafka struct {
	Brokers    []string `env:"KAFKA_BROKERS"`
	AuditTopic string   `env:"KAFKA_AUDIT_TOPIC" envDefault:"directory.audit"`
}

// Admin configures the bootstrap account created on first start. Both fields
// empty disables bootstrapping.
type Admin struct {
	Email    string `env:"ADMIN_EMAIL"`
	Password string `env:"ADMIN_PASSWORD"`
}

func New(envPath string) (Config, error) {
	var c Config

	err := godotenv.Load(envPath)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, err
	}

	err = env.Parse(&c)
	if err != nil {
		return Config{}, err
	}

	return c, nil
}
