package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/teambition/rrule-go"
	"gopkg.in/yaml.v3"
)

const (
	envAPIBaseURL       = "INNCTL_API_BASE_URL"
	envAuditDatabaseURL = "INNCTL_AUDIT_DATABASE_URL"
	envUsername         = "INNCTL_USERNAME"
	envPassword         = "INNCTL_PASSWORD"
)

// ClosedDay is a recurring date on which no cleaning is planned
type ClosedDay struct {
	RRule  string `yaml:"rrule" validate:"required"`
	Reason string `yaml:"reason,omitempty"`
}

// RetryConfig controls retries of idempotent reads
type RetryConfig struct {
	MaxAttempts    int           `yaml:"maxAttempts" validate:"min=1,max=10"`
	InitialBackoff time.Duration `yaml:"initialBackoff" validate:"min=0"`
	MaxBackoff     time.Duration `yaml:"maxBackoff" validate:"min=0"`
	Multiplier     float64       `yaml:"multiplier" validate:"min=1"`
}

// Config represents the application configuration
type Config struct {
	APIBaseURL            string        `yaml:"apiBaseURL" validate:"required,url"`
	HotelID               int           `yaml:"hotelID" validate:"required,min=1"`
	RequestTimeout        time.Duration `yaml:"requestTimeout" validate:"min=0"`
	MaxConcurrentRequests int           `yaml:"maxConcurrentRequests" validate:"min=1,max=50"`
	Floors                []int         `yaml:"floors,omitempty" validate:"dive,min=0"`
	CleaningHorizonWeeks  int           `yaml:"cleaningHorizonWeeks" validate:"min=1,max=52"`
	Retry                 RetryConfig   `yaml:"retry"`
	ClosedDays            []ClosedDay   `yaml:"closedDays,omitempty" validate:"dive"`
	AuditDatabaseURL      string        `yaml:"auditDatabaseURL,omitempty"`

	// Credentials come from the environment only
	Username string `yaml:"-"`
	Password string `yaml:"-"`
}

// ClosedDayRules returns the raw rrule strings of all closed days
func (c *Config) ClosedDayRules() []string {
	rules := make([]string, 0, len(c.ClosedDays))
	for _, cd := range c.ClosedDays {
		rules = append(rules, cd.RRule)
	}
	return rules
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

func defaults() Config {
	return Config{
		RequestTimeout:        10 * time.Second,
		MaxConcurrentRequests: 10,
		CleaningHorizonWeeks:  4,
		Retry: RetryConfig{
			MaxAttempts:    3,
			InitialBackoff: 300 * time.Millisecond,
			MaxBackoff:     3 * time.Second,
			Multiplier:     2,
		},
	}
}

// LoadWithEnv loads the configuration for an environment.
// It looks for inncontrol_config.<env>.yaml, then inncontrol_config.yaml, in the
// current directory first and then in the user's home directory. A .env file in
// the current directory may override values.
func LoadWithEnv(env string) (*Config, error) {
	configPath, err := findConfigFile(env)
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := defaults()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyEnvOverrides(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv(envAPIBaseURL); v != "" {
		cfg.APIBaseURL = v
	}
	if v := os.Getenv(envAuditDatabaseURL); v != "" {
		cfg.AuditDatabaseURL = v
	}
	cfg.Username = os.Getenv(envUsername)
	cfg.Password = os.Getenv(envPassword)
}

// Validate validates the configuration struct and checks rrule syntax
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	if cfg.Retry.MaxBackoff < cfg.Retry.InitialBackoff {
		return fmt.Errorf("config validation failed: retry.maxBackoff (%s) is below retry.initialBackoff (%s)",
			cfg.Retry.MaxBackoff, cfg.Retry.InitialBackoff)
	}

	for i, cd := range cfg.ClosedDays {
		if _, err := rrule.StrToRRule(cd.RRule); err != nil {
			return fmt.Errorf("invalid rrule in closedDays[%d]: %w", i, err)
		}
	}

	return nil
}

// findConfigFile searches the current and home directories for the env-specific
// config file, then for the shared one
func findConfigFile(env string) (string, error) {
	names := []string{"inncontrol_config.yaml"}
	if env != "" {
		names = append([]string{fmt.Sprintf("inncontrol_config.%s.yaml", env)}, names...)
	}

	homeDir, homeErr := os.UserHomeDir()

	for _, name := range names {
		if _, err := os.Stat(name); err == nil {
			return name, nil
		}

		if homeErr != nil {
			continue
		}
		homeConfigPath := filepath.Join(homeDir, name)
		if _, err := os.Stat(homeConfigPath); err == nil {
			return homeConfigPath, nil
		}
	}

	if homeErr != nil {
		return "", fmt.Errorf("failed to get home directory: %w", homeErr)
	}
	return "", fmt.Errorf("config file not found in current directory or home directory")
}
