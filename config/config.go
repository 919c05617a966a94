package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config armazena todas as configurações do serviço, lidas do ambiente.
type Config struct {
	// Geral
	Port        string `envconfig:"PORT" default:"8080"`
	Environment string `envconfig:"ENV" default:"development"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`

	// Banco de Dados (PostgreSQL)
	DatabaseURL string        `envconfig:"DATABASE_URL" required:"true"`
	DBTimeout   time.Duration `envconfig:"DB_TIMEOUT" default:"5s"`

	// Cache (Redis)
	RedisAddr string        `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	CacheTTL  time.Duration `envconfig:"CACHE_TTL" default:"5m"`

	// Segurança (JWT)
	JWTSecretKey string        `envconfig:"JWT_SECRET_KEY" required:"true"`
	TokenExpiry  time.Duration `envconfig:"JWT_EXPIRY" default:"60m"`

	// Rate Limiting
	RateLimitMaxRequests int           `envconfig:"RATE_LIMIT_MAX_REQUESTS" default:"100"`
	RateLimitPeriod      time.Duration `envconfig:"RATE_LIMIT_PERIOD" default:"1m"`

	// Política de estoque
	ReorderThresholdDays int `envconfig:"REORDER_THRESHOLD_DAYS" default:"7"`
	SalesWindowDays      int `envconfig:"SALES_WINDOW_DAYS" default:"30"`
}

// LoadConfig carrega as configurações a partir das variáveis de ambiente.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("erro de configuração: %w", err)
	}
	// envconfig aceita variável definida porém vazia como presente.
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("erro de configuração: DATABASE_URL deve ser definida")
	}
	if cfg.JWTSecretKey == "" {
		return nil, fmt.Errorf("erro de configuração: JWT_SECRET_KEY deve ser definida")
	}
	if cfg.ReorderThresholdDays < 0 {
		return nil, fmt.Errorf("erro de configuração: REORDER_THRESHOLD_DAYS não pode ser negativo")
	}
	if cfg.SalesWindowDays <= 0 {
		return nil, fmt.Errorf("erro de configuração: SALES_WINDOW_DAYS deve ser positivo")
	}
	return &cfg, nil
}

// IsProduction indica se o serviço roda em produção.
func (c *Config) IsProduction() bool {
	return c != nil && c.Environment == "production"
}
