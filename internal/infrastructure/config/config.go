// Package config carrega as configurações da API a partir de variáveis de
// ambiente, opcionalmente definidas num arquivo .env.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/hugohenrick/mercadinho/internal/infrastructure/database"
	"github.com/hugohenrick/mercadinho/pkg/logger"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Drivers de armazenamento suportados
const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

// Config agrupa todas as configurações da aplicação
type Config struct {
	App      AppConfig
	Database database.PostgresConfig
	Log      logger.Config
	HTTP     HTTPConfig
	Storage  StorageConfig
}

// AppConfig contém as configurações gerais da API
type AppConfig struct {
	Port     string
	Env      string
	BasePath string
}

// HTTPConfig contém as configurações da camada HTTP
type HTTPConfig struct {
	CORSAllowOrigins []string
	SwaggerEnabled   bool
	ShutdownTimeout  time.Duration
}

// StorageConfig define onde os dados são guardados
type StorageConfig struct {
	Driver         string // postgres ou memory
	MigrationsPath string
	AutoMigrate    bool
}

// IsProduction indica se a API roda em produção
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

// LoadEnvFile carrega o .env informado, ignorando arquivo inexistente
func LoadEnvFile(paths ...string) error {
	if err := godotenv.Load(paths...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("erro ao carregar arquivo .env: %w", err)
	}
	return nil
}

// Load lê as variáveis de ambiente e aplica os valores padrão
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	cfg := &Config{
		App: AppConfig{
			Port:     v.GetString("APP_PORT"),
			Env:      v.GetString("APP_ENV"),
			BasePath: v.GetString("API_BASE_PATH"),
		},
		Database: database.PostgresConfig{
			URL:             v.GetString("DATABASE_URL"),
			Host:            v.GetString("DB_HOST"),
			Port:            v.GetInt("DB_PORT"),
			User:            v.GetString("DB_USER"),
			Password:        v.GetString("DB_PASSWORD"),
			Database:        v.GetString("DB_NAME"),
			SSLMode:         v.GetString("DB_SSL_MODE"),
			MaxConnections:  v.GetInt32("DB_MAX_CONNECTIONS"),
			MinConnections:  v.GetInt32("DB_MIN_CONNECTIONS"),
			MaxConnLifetime: time.Duration(v.GetInt("DB_MAX_LIFETIME")) * time.Second,
		},
		Log: logger.Config{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
			Output: v.GetString("LOG_OUTPUT"),
		},
		HTTP: HTTPConfig{
			CORSAllowOrigins: splitList(v.GetString("CORS_ALLOW_ORIGINS")),
			SwaggerEnabled:   v.GetBool("SWAGGER_ENABLED"),
			ShutdownTimeout:  v.GetDuration("SHUTDOWN_TIMEOUT"),
		},
		Storage: StorageConfig{
			Driver:         strings.ToLower(v.GetString("STORAGE_DRIVER")),
			MigrationsPath: v.GetString("MIGRATIONS_PATH"),
			AutoMigrate:    v.GetBool("AUTO_MIGRATE"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate verifica as combinações inválidas de configuração
func (c *Config) Validate() error {
	if c.App.Port == "" {
		return fmt.Errorf("APP_PORT não pode ser vazio")
	}
	if !strings.HasPrefix(c.App.BasePath, "/") {
		return fmt.Errorf("API_BASE_PATH deve começar com /: %q", c.App.BasePath)
	}
	switch c.Storage.Driver {
	case StoragePostgres, StorageMemory:
	default:
		return fmt.Errorf("STORAGE_DRIVER inválido: %q", c.Storage.Driver)
	}
	if c.Database.MinConnections > c.Database.MaxConnections {
		return fmt.Errorf("DB_MIN_CONNECTIONS maior que DB_MAX_CONNECTIONS")
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("API_BASE_PATH", "/api/v1")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "mercadinho")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_CONNECTIONS", 10)
	v.SetDefault("DB_MIN_CONNECTIONS", 2)
	v.SetDefault("DB_MAX_LIFETIME", 300)

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("LOG_OUTPUT", "stdout")

	v.SetDefault("CORS_ALLOW_ORIGINS", "*")
	v.SetDefault("SWAGGER_ENABLED", true)
	v.SetDefault("SHUTDOWN_TIMEOUT", "10s")

	v.SetDefault("STORAGE_DRIVER", StoragePostgres)
	v.SetDefault("MIGRATIONS_PATH", "migrations")
	v.SetDefault("AUTO_MIGRATE", false)
}

func splitList(value string) []string {
	var result []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	return result
}
