package cliparse

import (
	"errors"
	"flag"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port          int
	DatabaseURL   string
	DatabaseType  string
	CookieSecret  string
	TemplateDir   string
	ProdMode      bool
	RedisAddr     string
	ResultsTTL    time.Duration
	PublicBaseURL string
}

// ParseFlags validates flags and falls back to environment variables
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("vote-web", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL or sqlite file")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")
	fs.StringVar(&cfg.TemplateDir, "templates", "", "Reload templates from this directory (dev)")
	fs.StringVar(&cfg.RedisAddr, "redis", "", "Redis address for the results cache")
	fs.DurationVar(&cfg.ResultsTTL, "cache-ttl", 0, "Results cache TTL")
	fs.StringVar(&cfg.PublicBaseURL, "base-url", "", "Public base URL used in share links")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.CookieSecret, "cookie-secret", "", "Voter cookie signing secret (prefer env)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 8080 // default
		}
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("MAPDB_FILE")
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = "vote.db"
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = "sqlite"
		}
	}
	if cfg.DatabaseType != "sqlite" && cfg.DatabaseType != "postgres" {
		return Config{}, errors.New("database type must be sqlite or postgres")
	}

	cfg.ProdMode = os.Getenv("PROD") == "true"
	if cfg.TemplateDir == "" && !cfg.ProdMode {
		cfg.TemplateDir = os.Getenv("TEMPLATE_DIR")
	}
	if cfg.ProdMode {
		// Never read templates from disk in production
		cfg.TemplateDir = ""
	}

	if cfg.RedisAddr == "" {
		cfg.RedisAddr = os.Getenv("REDIS_ADDR")
	}

	if cfg.ResultsTTL == 0 {
		if ttlStr := os.Getenv("RESULTS_CACHE_TTL"); ttlStr != "" {
			ttl, err := time.ParseDuration(ttlStr)
			if err != nil {
				return Config{}, errors.New("invalid RESULTS_CACHE_TTL env variable")
			}
			cfg.ResultsTTL = ttl
		} else {
			cfg.ResultsTTL = time.Minute
		}
	}

	if cfg.PublicBaseURL == "" {
		cfg.PublicBaseURL = os.Getenv("PUBLIC_BASE_URL")
	}

	// Secrets - MUST be provided
	if cfg.CookieSecret == "" {
		cfg.CookieSecret = os.Getenv("COOKIE_SECRET")
	}
	if cfg.CookieSecret == "" {
		return Config{}, errors.New("COOKIE_SECRET required")
	}

	return cfg, nil
}
