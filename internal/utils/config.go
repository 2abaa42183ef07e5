package utils

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type DatabaseConfig struct {
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
}

func (c *DatabaseConfig) DSN() string {
	return "host=localhost user=" + c.PostgresUser +
		" password=" + c.PostgresPassword +
		" dbname=" + c.PostgresDB +
		" port=5432 sslmode=disable TimeZone=UTC"
}

type ServerConfig struct {
	Port string
}

type AdminConfig struct {
	Username string
	Password string
}

// TokenConfig carries the signing secrets and lifetimes for both token
// families. Access and refresh tokens are signed with separate secrets so a
// leaked key for one family cannot forge the other.
type TokenConfig struct {
	AccessTokenSecret  string
	RefreshTokenSecret string
	// AccessTokenExpiry is in minutes, RefreshTokenExpiry in hours.
	AccessTokenExpiry  int
	RefreshTokenExpiry int
}

type Config struct {
	Database *DatabaseConfig
	Server   *ServerConfig
	Admin    *AdminConfig
	Token    *TokenConfig
}

func LoadConfig(dotenvPath string) (*Config, error) {
	err := godotenv.Load(dotenvPath)
	if err != nil {
		return nil, err
	}

	dbCfg := &DatabaseConfig{
		PostgresUser:     os.Getenv("POSTGRES_USER"),
		PostgresPassword: os.Getenv("POSTGRES_PASSWORD"),
		PostgresDB:       os.Getenv("POSTGRES_DB"),
	}
	serverCfg := &ServerConfig{
		Port: os.Getenv("SERVER_PORT"),
	}
	adminCfg := &AdminConfig{
		Username: os.Getenv("ADMIN_USERNAME"),
		Password: os.Getenv("ADMIN_PASSWORD"),
	}
	tokenCfg := &TokenConfig{
		AccessTokenSecret:  os.Getenv("JWT_SECRET"),
		RefreshTokenSecret: os.Getenv("JWT_REFRESH_SECRET"),
		AccessTokenExpiry:  intEnv("ACCESS_TOKEN_EXPIRY_MINUTES", 15),
		RefreshTokenExpiry: intEnv("REFRESH_TOKEN_EXPIRY_HOURS", 168),
	}

	cfg := &Config{dbCfg, serverCfg, adminCfg, tokenCfg}
	return cfg, nil
}

func intEnv(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return parsed
}
