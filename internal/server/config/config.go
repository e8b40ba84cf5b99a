package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config содержит runtime конфигурацию сервера
type Config struct {
	ListenAddr          string        `mapstructure:"listen_addr"`           // адрес HTTP сервера
	PublicURL           string        `mapstructure:"public_url"`            // публичный базовый URL (для OAuth redirect)
	Secret              string        `mapstructure:"secret"`                // секрет для подписи API ключей и сессий
	GithubClientID      string        `mapstructure:"github_client_id"`      // OAuth client id
	GithubClientSecret  string        `mapstructure:"github_client_secret"`  // OAuth client secret
	RequiredEmailDomain string        `mapstructure:"required_email_domain"` // суффикс email для signup gating, пусто = без ограничений
	DatabasePath        string        `mapstructure:"database_path"`         // путь к sqlite файлу
	SubmitRateLimit     int           `mapstructure:"submit_rate_limit"`     // лимит запросов на /api/submit
	SubmitRateWindow    time.Duration `mapstructure:"submit_rate_window"`    // окно rate limiter'а
	SessionTTL          time.Duration `mapstructure:"session_ttl"`           // время жизни session cookie
	ShutdownTimeout     time.Duration `mapstructure:"shutdown_timeout"`      // таймаут graceful shutdown
}

// Load читает конфигурацию из environment переменных (префикс CCBOARD_),
// опционального .env файла и опционального config.yaml в рабочей директории.
// Environment имеет приоритет над файлом.
func Load() (*Config, error) {
	// .env загружаем best-effort: отсутствие файла не ошибка
	_ = godotenv.Load()

	v := viper.New()

	// Пустые значения по умолчанию регистрируют ключи в viper,
	// иначе AutomaticEnv не свяжет их с environment переменными при Unmarshal
	v.SetDefault("secret", "")
	v.SetDefault("github_client_id", "")
	v.SetDefault("github_client_secret", "")
	v.SetDefault("required_email_domain", "")

	v.SetDefault("listen_addr", ":8080")
	v.SetDefault("public_url", "http://localhost:8080")
	v.SetDefault("database_path", "data/ccboard.db")
	v.SetDefault("submit_rate_limit", 100)
	v.SetDefault("submit_rate_window", time.Hour)
	v.SetDefault("session_ttl", 7*24*time.Hour)
	v.SetDefault("shutdown_timeout", 10*time.Second)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix("CCBOARD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate проверяет обязательные поля конфигурации
func (c *Config) validate() error {
	if c.Secret == "" {
		return fmt.Errorf("CCBOARD_SECRET is required")
	}

	if c.SubmitRateLimit <= 0 {
		return fmt.Errorf("submit_rate_limit must be positive")
	}

	if c.SubmitRateWindow <= 0 {
		return fmt.Errorf("submit_rate_window must be positive")
	}

	return nil
}
