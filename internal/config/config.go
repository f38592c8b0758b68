// Package config defines configuration parsing and helpers.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds all application configuration parsed from environment variables.
// BackendBaseURL is resolved once at startup and never reassigned.
type Config struct {
	AppEnv string `env:"APP_ENV" envDefault:"dev"`
	Port   int    `env:"PORT" envDefault:"8080"`
	// BackendBaseURL is the base URL of the external test case generation
	// service. The service is an opaque collaborator; only /health and
	// /generate_test_cases are called.
	BackendBaseURL string `env:"BACKEND_BASE_URL" envDefault:"https://testcasegenerator-backend-production.up.railway.app"`
	// GenerateTimeout bounds the single generation call. There is no retry;
	// the user re-triggers after a failure.
	GenerateTimeout time.Duration `env:"GENERATE_TIMEOUT" envDefault:"120s"`
	HealthTimeout   time.Duration `env:"HEALTH_TIMEOUT" envDefault:"10s"`
	MaxUploadMB     int64         `env:"MAX_UPLOAD_MB" envDefault:"10"`
	// AdvertisedCharLimit is shown in the UI copy. Enforcement is delegated
	// to the backend; the client never truncates.
	AdvertisedCharLimit   int           `env:"ADVERTISED_CHAR_LIMIT" envDefault:"5000"`
	CORSAllowOrigins      string        `env:"CORS_ALLOW_ORIGINS" envDefault:"*"`
	RateLimitPerMin       int           `env:"RATE_LIMIT_PER_MIN" envDefault:"30"`
	ServerShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" envDefault:"30s"`
	HTTPReadTimeout       time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"15s"`
	// HTTPWriteTimeout must exceed GenerateTimeout or the generate response
	// gets cut off while the backend is still within budget.
	HTTPWriteTimeout time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"150s"`
	HTTPIdleTimeout  time.Duration `env:"HTTP_IDLE_TIMEOUT" envDefault:"60s"`
	OTLPEndpoint     string        `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:""`
	OTELServiceName  string        `env:"OTEL_SERVICE_NAME" envDefault:"testcase-generator-frontend"`
}

// Load parses environment variables into a Config.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("op=config.Load: %w", err)
	}
	return cfg, nil
}

// IsDev reports whether the app is running in development mode.
func (c Config) IsDev() bool { return strings.ToLower(c.AppEnv) == "dev" }

// IsProd reports whether the app is running in production mode.
func (c Config) IsProd() bool { return strings.ToLower(c.AppEnv) == "prod" }

// IsTest reports whether the app is running in test mode.
func (c Config) IsTest() bool { return strings.ToLower(c.AppEnv) == "test" }
