package config

import (
	"errors"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	SourceFile     = "file"
	SourcePostgres = "postgres"
)

type Config struct {
	App      AppConfig
	Server   ServerConfig
	Dataset  DatasetConfig
	Database DatabaseConfig
	JWT      JWTConfig
}

type AppConfig struct {
	Name        string
	Version     string
	Environment string
}

type ServerConfig struct {
	Port string
}

type DatasetConfig struct {
	ManifestPath string
	Source       string
	ReloadCron   string
	// 0 means "use the manifest value"
	NeighborsK int
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

type JWTConfig struct {
	SecretKey string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	k := 0
	if raw := os.Getenv("NEIGHBORS_K"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 {
			return nil, errors.New("NEIGHBORS_K must be a positive integer")
		}
		k = v
	}

	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Platform Recommendation API"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			Environment: getEnv("APP_ENV", "development"),
		},
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
		},
		Dataset: DatasetConfig{
			ManifestPath: getEnv("DATASET_MANIFEST", "datasets.yaml"),
			Source:       getEnv("DATASET_SOURCE", SourceFile),
			ReloadCron:   getEnv("DATASET_RELOAD_CRON", ""),
			NeighborsK:   k,
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "platform_reco"),
			SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		},
		JWT: JWTConfig{
			SecretKey: getEnv("JWT_SECRET", ""),
		},
	}

	switch cfg.Dataset.Source {
	case SourceFile:
	case SourcePostgres:
		if cfg.Database.Password == "" {
			return nil, errors.New("missing database password")
		}
	default:
		return nil, errors.New("DATASET_SOURCE must be \"file\" or \"postgres\"")
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}

	return defaultVal
}
