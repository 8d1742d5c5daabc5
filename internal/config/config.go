package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/lk16/othengine/internal/engine"
)

const (
	defaultBoardSize      = 8
	defaultSearchDepth    = engine.DefaultDepth
	defaultPassRule       = "continue"
	defaultDatabaseDriver = "sqlite3"
	defaultServerHost     = "localhost"
	defaultServerPort     = "3000"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// Board sizes must be even so the starting square sits in the middle.
	_ = v.RegisterValidation("even", func(fl validator.FieldLevel) bool {
		return fl.Field().Int()%2 == 0
	})

	_ = v.RegisterValidation("searchdepth", func(fl validator.FieldLevel) bool {
		return fl.Field().Int() <= engine.MaxDepth
	})

	return v
}

// Config holds all configuration values loaded from environment variables.
type Config struct {
	BoardSize      int    `validate:"min=4,max=16,even"`
	SearchDepth    int    `validate:"min=1,searchdepth"`
	PassRule       string `validate:"oneof=continue sentinel"`
	Seed           uint64
	Pause          bool
	DatabaseDriver string `validate:"oneof=sqlite3 postgres"`
	DatabaseURL    string
	RedisURL       string `validate:"omitempty,url"`
	ServerHost     string `validate:"required"`
	ServerPort     string `validate:"required,numeric"`
	APIToken       string
}

// Load loads configuration from environment variables. A .env file in the working directory is
// read first if present; variables already set in the environment win.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	boardSize, err := getEnvInt("OTHENGINE_BOARD_SIZE", defaultBoardSize)
	if err != nil {
		return nil, err
	}

	searchDepth, err := getEnvInt("OTHENGINE_SEARCH_DEPTH", defaultSearchDepth)
	if err != nil {
		return nil, err
	}

	seed, err := getEnvUint("OTHENGINE_SEED", 0)
	if err != nil {
		return nil, err
	}

	pause, err := getEnvBool("OTHENGINE_PAUSE", false)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		BoardSize:      boardSize,
		SearchDepth:    searchDepth,
		PassRule:       getEnv("OTHENGINE_PASS_RULE", defaultPassRule),
		Seed:           seed,
		Pause:          pause,
		DatabaseDriver: getEnv("OTHENGINE_DATABASE_DRIVER", defaultDatabaseDriver),
		DatabaseURL:    getEnv("OTHENGINE_DATABASE_URL", ""),
		RedisURL:       getEnv("OTHENGINE_REDIS_URL", ""),
		ServerHost:     getEnv("OTHENGINE_SERVER_HOST", defaultServerHost),
		ServerPort:     getEnv("OTHENGINE_SERVER_PORT", defaultServerPort),
		APIToken:       getEnv("OTHENGINE_API_TOKEN", ""),
	}

	if err = cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks all fields.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %s", ValidationDetails(err))
	}
	return nil
}

// ValidationDetails turns validator errors into one readable line.
func ValidationDetails(err error) string {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return err.Error()
	}

	var details strings.Builder
	for _, err := range errs {
		if details.Len() > 0 {
			details.WriteString("; ")
		}

		switch err.Tag() {
		case "required":
			fmt.Fprintf(&details, "%s is required", err.Field())
		case "oneof":
			fmt.Fprintf(&details, "%s must be one of [%s]", err.Field(), err.Param())
		case "min":
			if err.Kind() == reflect.String {
				fmt.Fprintf(&details, "%s must be at least %s characters", err.Field(), err.Param())
			} else {
				fmt.Fprintf(&details, "%s must be at least %s", err.Field(), err.Param())
			}
		case "max":
			if err.Kind() == reflect.String {
				fmt.Fprintf(&details, "%s must be at most %s characters", err.Field(), err.Param())
			} else {
				fmt.Fprintf(&details, "%s must be at most %s", err.Field(), err.Param())
			}
		case "even":
			fmt.Fprintf(&details, "%s must be even", err.Field())
		case "searchdepth":
			fmt.Fprintf(&details, "%s must be at most %d", err.Field(), engine.MaxDepth)
		default:
			fmt.Fprintf(&details, "%s failed %s validation", err.Field(), err.Tag())
		}
	}

	return details.String()
}

// Struct validates any struct with the shared validator.
func Struct(s any) error {
	return validate.Struct(s)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}

	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("environment variable %s must be an integer, got %q", key, value)
	}
	return parsed, nil
}

func getEnvUint(key string, fallback uint64) (uint64, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}

	parsed, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("environment variable %s must be a positive integer, got %q", key, value)
	}
	return parsed, nil
}

func getEnvBool(key string, fallback bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}

	if value != "true" && value != "false" {
		return false, fmt.Errorf("environment variable %s must be \"true\" or \"false\", got %q", key, value)
	}

	return value == "true", nil
}
