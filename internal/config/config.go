package config

import (
	"time"

	"github.com/AchilleasB/gordon-events/student-identity-service/internal/core/domain"
)

type Config struct {
	Port     string
	LogLevel string

	DirectoryBaseURL string
	DirectoryAPIKey  string
	DirectoryTimeout time.Duration

	InstitutionalDomain string
	SecretComparison    string
	DepartmentsFile     string

	// Optional. When empty, verification attempts are not recorded.
	DatabaseURL string

	CORSAllowedOrigins []string
}

func Load() *Config {
	return &Config{
		Port:     getenv("PORT", "8080"),
		LogLevel: getenv("LOG_LEVEL", "info"),

		DirectoryBaseURL: mustGetenv("DIRECTORY_BASE_URL"),
		DirectoryAPIKey:  mustGetenv("DIRECTORY_API_KEY"),
		DirectoryTimeout: getenvDuration("DIRECTORY_TIMEOUT", 10*time.Second),

		InstitutionalDomain: getenv("INSTITUTIONAL_DOMAIN", domain.InstitutionalDomain),
		SecretComparison:    getenv("SECRET_COMPARISON", "constant_time"),
		DepartmentsFile:     getenv("DEPARTMENTS_FILE", ""),

		DatabaseURL: getenv("DB_CONNECTION_STRING", ""),

		CORSAllowedOrigins: getenvList("CORS_ALLOWED_ORIGINS", []string{"*"}),
	}
}
