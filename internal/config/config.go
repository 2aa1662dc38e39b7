package config

import (
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Config holds everything the server reads from the environment.
type Config struct {
	ListenAddr        string `envconfig:"LISTEN_ADDR" default:":8080"`
	BaseURL           string `envconfig:"BASE_URL" default:"http://localhost:8080"`
	DBDSN             string `envconfig:"DB_DSN" required:"true"`
	JWTSecret         string `envconfig:"JWT_SECRET" required:"true"`
	CORSOrigins       string `envconfig:"CORS_ORIGINS" default:"http://localhost:5173"`
	UploadDir         string `envconfig:"UPLOAD_DIR" default:"./uploads"`
	BackupDir         string `envconfig:"BACKUP_DIR" default:"./backups"`
	AllowRegistration bool   `envconfig:"ALLOW_REGISTRATION" default:"false"`
	SeedDemoData      bool   `envconfig:"SEED_DEMO_DATA" default:"false"`
	GinMode           string `envconfig:"GIN_MODE" default:"debug"`
}

// Load reads .env (if present) and parses the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Warn("no .env file found, using environment only")
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, errors.Wrap(err, "parse environment")
	}
	return &cfg, nil
}

// CORSOriginList splits the comma-separated CORS_ORIGINS value.
func (c *Config) CORSOriginList() []string {
	parts := strings.Split(c.CORSOrigins, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
