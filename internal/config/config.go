package config

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port        string        `envconfig:"PORT" default:"8080"`
	APIBaseURL  string        `envconfig:"API_BASE_URL"`
	ServeAPI    bool          `envconfig:"SERVE_API" default:"true"`
	DBDSN       string        `envconfig:"DB_DSN" default:"catalog.db"`
	LogLevel    string        `envconfig:"LOG_LEVEL" default:"info"`
	LogFile     string        `envconfig:"LOG_FILE"`
	APITimeout  time.Duration `envconfig:"API_TIMEOUT" default:"10s"`
	FeedbackTTL time.Duration `envconfig:"FEEDBACK_TTL" default:"4s"`
	SessionTTL  time.Duration `envconfig:"SESSION_TTL" default:"30m"`
	MaxSessions int           `envconfig:"MAX_SESSIONS" default:"1000"`
}

// Load reads an optional .env file and then the process environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("[config] could not read .env: %v", err)
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, err
	}
	if cfg.APIBaseURL == "" {
		// Same-origin API, like the page and the API sharing one server.
		cfg.APIBaseURL = "http://127.0.0.1:" + cfg.Port + "/api"
	}
	cfg.APIBaseURL = strings.TrimRight(cfg.APIBaseURL, "/")

	log.Printf("[config] PORT=%s API_BASE_URL=%s SERVE_API=%t DB_DSN=%s LOG_LEVEL=%s API_TIMEOUT=%s FEEDBACK_TTL=%s",
		cfg.Port, cfg.APIBaseURL, cfg.ServeAPI, cfg.DBDSN, cfg.LogLevel, cfg.APITimeout, cfg.FeedbackTTL)
	return cfg, nil
}
