package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rdawebb/fixture-fetcher/internal/platform/logging"
)

// Config stores runtime configuration for the CLI.
type Config struct {
	AppEnv                            string
	LogLevel                          logging.Level
	LogFormat                         string
	FootballDataBaseURL               string
	FootballDataToken                 string
	FootballDataTimeout               time.Duration
	FootballDataMaxRetries            int
	FootballDataCircuitEnabled        bool
	FootballDataCircuitFailureCount   int
	FootballDataCircuitOpenTimeout    time.Duration
	FootballDataCircuitHalfOpenMaxReq int
	CacheDir                          string
	TeamCachePath                     string
	OverridesPath                     string
	OutputDir                         string
	CalendarTimezone                  string
	CalendarLocation                  *time.Location
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	formatDefault := logging.FormatJSON
	if appEnv == EnvDev {
		formatDefault = logging.FormatConsole
	}
	logFormat, err := parseLogFormat(getEnv("LOG_FORMAT", formatDefault))
	if err != nil {
		return Config{}, err
	}

	timeout, err := time.ParseDuration(getEnv("FOOTBALL_DATA_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse FOOTBALL_DATA_TIMEOUT: %w", err)
	}
	if timeout <= 0 {
		return Config{}, fmt.Errorf("FOOTBALL_DATA_TIMEOUT must be > 0")
	}
	maxRetries, err := getEnvAsInt("FOOTBALL_DATA_MAX_RETRIES", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse FOOTBALL_DATA_MAX_RETRIES: %w", err)
	}
	if maxRetries < 0 {
		return Config{}, fmt.Errorf("FOOTBALL_DATA_MAX_RETRIES must be >= 0")
	}

	circuitEnabled, err := strconv.ParseBool(getEnv("FOOTBALL_DATA_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse FOOTBALL_DATA_CIRCUIT_ENABLED: %w", err)
	}
	circuitFailureCount, err := getEnvAsInt("FOOTBALL_DATA_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse FOOTBALL_DATA_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if circuitFailureCount < 1 {
		return Config{}, fmt.Errorf("FOOTBALL_DATA_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	circuitOpenTimeout, err := time.ParseDuration(getEnv("FOOTBALL_DATA_CIRCUIT_OPEN_TIMEOUT", "30s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse FOOTBALL_DATA_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	if circuitOpenTimeout <= 0 {
		return Config{}, fmt.Errorf("FOOTBALL_DATA_CIRCUIT_OPEN_TIMEOUT must be > 0")
	}
	circuitHalfOpenMaxReq, err := getEnvAsInt("FOOTBALL_DATA_CIRCUIT_HALF_OPEN_MAX_REQ", 1)
	if err != nil {
		return Config{}, fmt.Errorf("parse FOOTBALL_DATA_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if circuitHalfOpenMaxReq < 1 {
		return Config{}, fmt.Errorf("FOOTBALL_DATA_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}

	timezone := strings.TrimSpace(getEnv("CALENDAR_TIMEZONE", "Europe/London"))
	location, err := time.LoadLocation(timezone)
	if err != nil {
		return Config{}, fmt.Errorf("parse CALENDAR_TIMEZONE: %w", err)
	}

	cacheDir := strings.TrimSpace(getEnv("CACHE_DIR", "data/cache"))

	return Config{
		AppEnv:                            appEnv,
		LogLevel:                          logging.ParseLevel(getEnv("LOG_LEVEL", "info")),
		LogFormat:                         logFormat,
		FootballDataBaseURL:               strings.TrimSpace(getEnv("FOOTBALL_DATA_API", "https://api.football-data.org/v4/")),
		FootballDataToken:                 strings.TrimSpace(getEnv("FOOTBALL_DATA_API_TOKEN", "")),
		FootballDataTimeout:               timeout,
		FootballDataMaxRetries:            maxRetries,
		FootballDataCircuitEnabled:        circuitEnabled,
		FootballDataCircuitFailureCount:   circuitFailureCount,
		FootballDataCircuitOpenTimeout:    circuitOpenTimeout,
		FootballDataCircuitHalfOpenMaxReq: circuitHalfOpenMaxReq,
		CacheDir:                          cacheDir,
		TeamCachePath:                     strings.TrimSpace(getEnv("CACHE_PATH", cacheDir+"/teams.yaml")),
		OverridesPath:                     strings.TrimSpace(getEnv("TV_OVERRIDES_PATH", "data/overrides/tv_overrides.yaml")),
		OutputDir:                         strings.TrimSpace(getEnv("OUTPUT_DIR", "public/calendars")),
		CalendarTimezone:                  timezone,
		CalendarLocation:                  location,
	}, nil
}

// RequireAPIToken fails when no football-data token is configured. Only
// commands that call the API need one.
func (c Config) RequireAPIToken() error {
	if strings.TrimSpace(c.FootballDataToken) == "" {
		return fmt.Errorf("FOOTBALL_DATA_API_TOKEN is required for this command")
	}
	return nil
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	case "staging":
		return EnvStage, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}

func parseLogFormat(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case logging.FormatJSON, logging.FormatConsole:
		return value, nil
	default:
		return "", fmt.Errorf("invalid LOG_FORMAT %q: valid values are %s, %s", v, logging.FormatJSON, logging.FormatConsole)
	}
}
