package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config содержит конфигурацию приложения
type Config struct {
	Environment string `env:"ENV" env-default:"development"`
	Server      ServerConfig
	Database    DatabaseConfig
	CORS        CORSConfig
	JWT         JWTConfig
	Admin       AdminConfig
	Log         LogConfig
}

// ServerConfig содержит конфигурацию HTTP-сервера
type ServerConfig struct {
	Port                int    `env:"SERVER_PORT" env-default:"8080"`
	BasePath            string `env:"SERVER_BASE_PATH" env-default:"/api"`
	ReadTimeoutSeconds  int    `env:"SERVER_READ_TIMEOUT" env-default:"15"`
	WriteTimeoutSeconds int    `env:"SERVER_WRITE_TIMEOUT" env-default:"15"`
	IdleTimeoutSeconds  int    `env:"SERVER_IDLE_TIMEOUT" env-default:"60"`
}

// DatabaseConfig содержит конфигурацию базы данных
type DatabaseConfig struct {
	Host               string `env:"DB_HOST" env-default:"localhost"`
	Port               int    `env:"DB_PORT" env-default:"5432"`
	User               string `env:"DB_USER" env-default:"postgres"`
	Password           string `env:"DB_PASSWORD" env-default:"postgres"`
	Name               string `env:"DB_NAME" env-default:"bbs"`
	SSLMode            string `env:"DB_SSL_MODE" env-default:"disable"`
	MaxConnections     int    `env:"DB_MAX_CONNECTIONS" env-default:"10"`
	MaxConnIdleMinutes int    `env:"DB_MAX_IDLE_MINUTES" env-default:"5"`
}

// CORSConfig содержит конфигурацию CORS
type CORSConfig struct {
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" env-default:"http://localhost:3000,http://localhost:8080"`
}

// JWTConfig содержит секрет проверки подписи токенов.
// Выпуском токенов занимается внешний сервис аутентификации.
type JWTConfig struct {
	Secret string `env:"JWT_SECRET" env-required:"true"`
}

// AdminConfig содержит данные начальной учетной записи оператора
type AdminConfig struct {
	Username string `env:"ADMIN_USERNAME"`
	Password string `env:"ADMIN_PASSWORD"`
}

// LogConfig содержит настройки логирования
type LogConfig struct {
	Level string `env:"LOG_LEVEL" env-default:"info"`
}

// ConnectionString возвращает строку подключения к базе данных
func (c DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Name, c.SSLMode)
}

// Load загружает конфигурацию из переменных окружения
func Load() (Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return cfg, fmt.Errorf("read environment: %w", err)
	}
	return cfg, nil
}
