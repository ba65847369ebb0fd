package config

import (
	"fmt"
	"patternquiz/internal/quiz"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is read from the environment at start-up
type Config struct {
	MongoURI string `env:"MONGO_URI" envDefault:"mongodb://localhost:27017"`
	MongoDB  string `env:"MONGO_DB" envDefault:"patternquiz"`
	RedisURI string `env:"REDIS_URI" envDefault:"localhost:6379"`
	Port     string `env:"PORT" envDefault:"8080"`

	JWTSecret     string `env:"JWT_SECRET" envDefault:"super-secret-key-change-in-production"`
	AdminUsername string `env:"ADMIN_USERNAME" envDefault:"admin"`
	AdminPassword string `env:"ADMIN_PASSWORD" envDefault:"password123"`

	CORSAllowedOrigins string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*"`
	CORSAllowedMethods string `env:"CORS_ALLOWED_METHODS" envDefault:"GET, POST, PUT, DELETE, OPTIONS"`
	CORSAllowedHeaders string `env:"CORS_ALLOWED_HEADERS" envDefault:"Content-Type, Authorization"`

	ShareBaseURL string        `env:"SHARE_BASE_URL" envDefault:"http://localhost:8080/results"`
	SessionTTL   time.Duration `env:"SESSION_TTL" envDefault:"720h"`
	LogLevel     string        `env:"LOG_LEVEL" envDefault:"info"`

	// "tag" or "keyword"
	TieBreakMatcher string `env:"TIEBREAK_MATCHER" envDefault:"tag"`

	StrongThreshold         int `env:"STRONG_THRESHOLD" envDefault:"70"`
	ModerateThreshold       int `env:"MODERATE_THRESHOLD" envDefault:"50"`
	ResultBalancedThreshold int `env:"RESULT_BALANCED_THRESHOLD" envDefault:"40"`
	ReportBalancedThreshold int `env:"REPORT_BALANCED_THRESHOLD" envDefault:"30"`
}

// Load parses the environment into a Config
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	// Accept redis://host:port as well as host:port
	cfg.RedisURI = strings.TrimPrefix(cfg.RedisURI, "redis://")

	switch cfg.TieBreakMatcher {
	case "tag", "keyword":
	default:
		return nil, fmt.Errorf("unknown TIEBREAK_MATCHER %q", cfg.TieBreakMatcher)
	}
	return cfg, nil
}

// ResultThresholds label the results view
func (c *Config) ResultThresholds() quiz.LabelThresholds {
	return quiz.LabelThresholds{
		Strong:   c.StrongThreshold,
		Moderate: c.ModerateThreshold,
		Balanced: c.ResultBalancedThreshold,
	}
}

// ReportThresholds label the report and share view
func (c *Config) ReportThresholds() quiz.LabelThresholds {
	return quiz.LabelThresholds{
		Strong:   c.StrongThreshold,
		Moderate: c.ModerateThreshold,
		Balanced: c.ReportBalancedThreshold,
	}
}

// Matcher returns the configured tie-breaker matching strategy
func (c *Config) Matcher() quiz.Matcher {
	if c.TieBreakMatcher == "keyword" {
		return quiz.KeywordMatcher{}
	}
	return quiz.TagMatcher{}
}
