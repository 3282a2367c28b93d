package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v10"
)

// Fuentes soportadas para el artefacto del modelo.
const (
	ModelSourceFile     = "file"
	ModelSourcePostgres = "postgres"
	ModelSourceHTTP     = "http"
)

// Config centraliza la configuración del servicio.
type Config struct {
	HTTPPort string `env:"HTTP_PORT" envDefault:"8080"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	ModelSource        string `env:"MODEL_SOURCE" envDefault:"file"`
	ModelPath          string `env:"MODEL_PATH" envDefault:"model.json"`
	ModelName          string `env:"MODEL_NAME" envDefault:"credit-risk-ensemble"`
	ModelChecksum      string `env:"MODEL_CHECKSUM"`
	ModelServerURL     string `env:"MODEL_SERVER_URL"`
	ModelServerTimeout int    `env:"MODEL_SERVER_TIMEOUT_SECONDS" envDefault:"10"`

	DatabaseURL string `env:"DATABASE_URL"`

	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	RateLimitWindowSeconds int `env:"RATE_LIMIT_WINDOW_SECONDS" envDefault:"60"`
	RateLimitMax           int `env:"RATE_LIMIT_MAX" envDefault:"30"`

	JWTSecret string `env:"AUTH_JWT_SECRET"`
	JWTIssuer string `env:"AUTH_JWT_ISSUER" envDefault:"credit-risk"`
}

// LoadConfig carga la configuración desde variables de entorno.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate comprueba que la fuente del modelo tenga lo necesario para cargarse.
func (c *Config) Validate() error {
	c.ModelSource = strings.ToLower(strings.TrimSpace(c.ModelSource))
	switch c.ModelSource {
	case ModelSourceFile:
		if strings.TrimSpace(c.ModelPath) == "" {
			return fmt.Errorf("MODEL_PATH is required for model source %q", c.ModelSource)
		}
	case ModelSourcePostgres:
		if strings.TrimSpace(c.DatabaseURL) == "" {
			return fmt.Errorf("DATABASE_URL is required for model source %q", c.ModelSource)
		}
		if strings.TrimSpace(c.ModelName) == "" {
			return fmt.Errorf("MODEL_NAME is required for model source %q", c.ModelSource)
		}
	case ModelSourceHTTP:
		if strings.TrimSpace(c.ModelServerURL) == "" {
			return fmt.Errorf("MODEL_SERVER_URL is required for model source %q", c.ModelSource)
		}
	default:
		return fmt.Errorf("unknown MODEL_SOURCE %q", c.ModelSource)
	}
	return nil
}
